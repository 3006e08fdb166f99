package storage

import (
	"errors"
	"fmt"

	"article-hand/config"
	"article-hand/models"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenPostgres öffnet die Datenbankverbindung. TranslateError sorgt dafür, dass
// Unique-Verletzungen als gorm.ErrDuplicatedKey ankommen.
func OpenPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Migrate legt alle Tabellen des Artikel-Graphen an bzw. aktualisiert sie.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database auto-migration...")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// IsUniqueViolation erkennt Unique-Verletzungen, egal ob GORM sie übersetzt hat
// oder der Treiberfehler direkt durchgereicht wurde.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
