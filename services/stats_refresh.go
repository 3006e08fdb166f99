package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"article-hand/content"
	"article-hand/models"
)

const statsBatchSize = 50

// StatsStore ist der Teil der Persistenz, den der Refresher braucht.
type StatsStore interface {
	UpdatedSince(ctx context.Context, since time.Time, batchSize int, fn func([]models.Article) error) error
	UpdateStats(ctx context.Context, id string, wordCount, readingTime int) error
}

// StatsRefresher berechnet wordCount und readingTime der seit dem letzten Lauf
// geänderten Artikel neu und schreibt abweichende Werte zurück.
type StatsRefresher struct {
	Store  StatsStore
	Logger *zap.Logger

	normalizer *content.Normalizer
	now        func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewStatsRefresher(store StatsStore, logger *zap.Logger) *StatsRefresher {
	return &StatsRefresher{
		Store:      store,
		Logger:     logger.With(zap.String("job", "stats_refresh")),
		normalizer: content.NewNormalizer(logger),
		now:        time.Now,
	}
}

// Run führt einen Durchlauf aus und gibt die Anzahl aktualisierter Artikel zurück.
// Der erste Lauf prüft alle Artikel. Überlappende Läufe warten aufeinander.
func (r *StatsRefresher) Run(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.now()
	updated := 0
	err := r.Store.UpdatedSince(ctx, r.lastRun, statsBatchSize, func(batch []models.Article) error {
		for _, row := range batch {
			stats := content.ComputeReadingStats(content.AllBlocks(r.normalizer.Sections(row.Sections)))
			if stats.WordCount == row.WordCount && stats.ReadingTime == row.ReadingTime {
				continue
			}
			if err := r.Store.UpdateStats(ctx, row.ID, stats.WordCount, stats.ReadingTime); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return updated, fmt.Errorf("refresh stats: %w", err)
	}
	r.lastRun = started
	statsRefreshed.Add(float64(updated))
	return updated, nil
}

// Schedule hängt den Refresher an den Cron-Scheduler.
func (r *StatsRefresher) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		r.Logger.Info("Running scheduled stats refresh...")
		n, err := r.Run(context.Background())
		if err != nil {
			r.Logger.Error("Stats refresh failed", zap.Error(err))
			return
		}
		r.Logger.Info("Stats refresh completed", zap.Int("updated_articles", n))
	})
}
