package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"article-hand/config"
	"article-hand/providers/s3image"
	"article-hand/services"
	"article-hand/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// routerDeps sind alles, was die HTTP-Schicht braucht.
type routerDeps struct {
	Articles articleAPI
	Images   imageUploader
	Health   func(ctx context.Context) error
	Dev      bool
	Log      *zap.Logger
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				d.Log.Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupArticleRoutes(router, d.Articles, d.Dev, d.Log)
	setupUploadRoutes(router, d.Images, d.Dev, d.Log)
	return router
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Setup Database Connection
	db, err := storage.OpenPostgres(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logging.Fatal("Failed to access database handle", zap.Error(err))
	}
	logging.Info("Successfully connected to articles database.")
	if err := storage.Migrate(db, logging); err != nil {
		logging.Fatal("Database migration failed", zap.Error(err))
	}
	articleStore := storage.NewArticleStore(db, logging)

	// Optionaler Redis-Cache. Ein nil-Interface schaltet ihn im Service ab.
	var cache services.ArticleCache
	rdb, err := storage.NewRedisClient(ctx, cfg.RedisAddr, logging)
	if err != nil {
		logging.Warn("Redis unavailable, continuing without article cache", zap.Error(err))
	} else if rdb != nil {
		defer rdb.Close()
		cache = storage.NewArticleCache(rdb, cfg.CacheTTL)
	}

	// Setup Services
	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	bucket := storage.NewBucket(s3Client, cfg)
	imageService := services.NewImageService(s3image.NewUploader(bucket, logging), logging)

	articleService := services.NewArticleService(articleStore, cache, logging, services.Options{
		WriteTimeout:     cfg.WriteTimeout,
		MaxSlugAttempts:  cfg.MaxSlugAttempts,
		PageSize:         cfg.PageSize,
		TrustCachedStats: cfg.TrustCachedStats,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(routerDeps{
		Articles: articleService,
		Images:   imageService,
		Health:   sqlDB.PingContext,
		Dev:      cfg.IsDevelopment(),
		Log:      logging,
	})

	// Setup Cron
	cronScheduler := cron.New()
	refresher := services.NewStatsRefresher(articleStore, logging)
	if _, err := refresher.Schedule(cronScheduler, cfg.StatsCronSchedule); err != nil {
		logging.Fatal("Invalid stats cron schedule", zap.String("schedule", cfg.StatsCronSchedule), zap.Error(err))
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", zap.Error(err))
	}
}
