package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`
	// development gibt Fehlerdetails in Antworten zurück
	AppEnv string `envconfig:"APP_ENV" default:"production"`

	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3Key       string `envconfig:"S3_KEY" required:"true"`
	S3Secret    string `envconfig:"S3_SECRET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`

	// Leer = kein Cache
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	WriteTimeout     time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	MaxSlugAttempts  int           `envconfig:"MAX_SLUG_ATTEMPTS" default:"100"`
	PageSize         int           `envconfig:"PAGE_SIZE" default:"20"`
	TrustCachedStats bool          `envconfig:"TRUST_CACHED_STATS" default:"false"`

	StatsCronSchedule string `envconfig:"STATS_CRON_SCHEDULE" default:"*/30 * * * *"`

	// Backup (cmd/backup)
	BackupPrefix string `envconfig:"BACKUP_PREFIX" default:"backups/"`
	KeepBackups  int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// IsDevelopment meldet, ob Fehlerdetails nach außen gegeben werden dürfen.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// PublicBaseURL ist die Basis für öffentliche Links auf hochgeladene Objekte.
// Ohne S3_PUBLIC_URL wird path-style auf den Endpoint verlinkt.
func (c *Config) PublicBaseURL() string {
	if c.S3PublicURL != "" {
		return strings.TrimRight(c.S3PublicURL, "/")
	}
	return strings.TrimRight(c.S3URL, "/") + "/" + c.S3Bucket
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if c.MaxSlugAttempts <= 0 {
		return nil, fmt.Errorf("MAX_SLUG_ATTEMPTS must be positive, got %d", c.MaxSlugAttempts)
	}
	if c.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return &c, nil
}
