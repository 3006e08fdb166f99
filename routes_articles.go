package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"article-hand/content"
	"article-hand/providers"
	"article-hand/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type articleAPI interface {
	Create(ctx context.Context, p content.ArticlePayload) (services.WriteResult, error)
	Update(ctx context.Context, slug string, p content.ArticlePayload) (services.WriteResult, error)
	Get(ctx context.Context, slug string) (content.Article, error)
	List(ctx context.Context, params services.ListParams) (services.ListResult, error)
	Delete(ctx context.Context, slug string) error
}

// respondError übersetzt Service-Fehler in HTTP-Antworten. Details interner Fehler
// gehen nur im Development-Modus raus.
func respondError(c *gin.Context, err error, dev bool, log *zap.Logger) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": verr.Messages()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Article not found"})
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Article was modified by someone else, reload and retry"})
	case errors.Is(err, services.ErrSlugConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An article with this slug already exists"})
	case errors.Is(err, providers.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Uploaded file is not a supported image"})
	default:
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body := gin.H{"success": false, "message": "Internal server error"}
		if dev {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func setupArticleRoutes(router *gin.Engine, svc articleAPI, dev bool, log *zap.Logger) {
	rg := router.Group("/articles")

	// GET - einzelner Artikel per ?slug= oder paginierte Liste
	rg.GET("", func(c *gin.Context) {
		if slug := c.Query("slug"); slug != "" {
			article, err := svc.Get(c.Request.Context(), slug)
			if err != nil {
				respondError(c, err, dev, log)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
			return
		}

		res, err := svc.List(c.Request.Context(), services.ListParams{
			Page:       queryInt(c, "page"),
			Limit:      queryInt(c, "limit"),
			CategoryID: c.Query("category"),
			Search:     c.Query("search"),
			UserID:     c.Query("userId"),
		})
		if err != nil {
			respondError(c, err, dev, log)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "articles": res.Articles, "pagination": res.Pagination})
	})

	// POST - neuen Artikel anlegen
	rg.POST("", func(c *gin.Context) {
		var p content.ArticlePayload
		if err := c.ShouldBindJSON(&p); err != nil {
			log.Warn("Invalid request body for article creation", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		res, err := svc.Create(c.Request.Context(), p)
		if err != nil {
			log.Info("Article write failed", zap.Any("states", res.States), zap.Error(err))
			respondError(c, err, dev, log)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "article": res.Article})
	})

	// PUT - Artikel vollständig ersetzen
	rg.PUT("/:slug", func(c *gin.Context) {
		slug := c.Param("slug")
		var p content.ArticlePayload
		if err := c.ShouldBindJSON(&p); err != nil {
			log.Warn("Invalid request body for article update", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		res, err := svc.Update(c.Request.Context(), slug, p)
		if err != nil {
			log.Info("Article write failed", zap.String("slug", slug), zap.Any("states", res.States), zap.Error(err))
			respondError(c, err, dev, log)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "article": res.Article})
	})

	// DELETE - Artikel samt Sections und Blocks löschen
	rg.DELETE("/:slug", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
			respondError(c, err, dev, log)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article deleted"})
	})
}
