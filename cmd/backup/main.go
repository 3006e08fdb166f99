package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"

	"article-hand/config"
	"article-hand/storage"

	"go.uber.org/zap"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	logging.Info("Starte Backup-Prozess...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	ctx := context.Background()

	// 1. Datenbank-Dump erstellen
	var dump bytes.Buffer
	if err := createDump(ctx, cfg, &dump); err != nil {
		logging.Fatal("Fehler beim Erstellen des DB-Dumps", zap.Error(err))
	}

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}
	bucket := storage.NewBucket(s3Client, cfg)

	// 3. Backup nach S3 hochladen
	key := backupKey(cfg.BackupPrefix, time.Now())
	if _, err := bucket.UploadFile(ctx, key, "application/gzip", dump.Bytes()); err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Backup hochgeladen", zap.String("bucket", cfg.S3Bucket), zap.String("key", key), zap.Int("bytes", dump.Len()))

	// 4. Alte Backups rotieren
	deleted, err := bucket.Rotate(ctx, cfg.BackupPrefix, cfg.KeepBackups)
	if err != nil {
		logging.Fatal("Fehler bei der Rotation alter Backups", zap.Error(err))
	}
	logging.Info("Backup-Prozess erfolgreich abgeschlossen.", zap.Strings("deleted", deleted))
}

func backupKey(prefix string, at time.Time) string {
	return fmt.Sprintf("%sbackup-%s.sql.gz", prefix, at.UTC().Format("2006-01-02T15-04-05Z"))
}

// createDump schreibt einen gzip-komprimierten pg_dump nach w.
func createDump(ctx context.Context, cfg *config.Config, w io.Writer) error {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // Passwort wird über PGPASSWORD bereitgestellt
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+cfg.DBPassword)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start pg_dump: %w", err)
	}

	gzipWriter := gzip.NewWriter(w)
	if _, err := io.Copy(gzipWriter, stdout); err != nil {
		return err
	}
	if err := gzipWriter.Close(); err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("pg_dump: %w", err)
	}
	return nil
}
