package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"article-hand/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound        = errors.New("article not found")
	ErrDuplicateSlug   = errors.New("slug already taken")
	ErrVersionConflict = errors.New("article was modified concurrently")
)

// blockChildren sind alle Unterentitäten eines Blocks, die beim Lesen mitgeladen werden.
var blockChildren = []string{
	"Rating", "Highlights", "Pros", "Cons", "Ingredients",
	"IngredientItems", "BulletPoints", "FAQItems", "Specifications", "CustomFields",
}

// ListQuery filtert und paginiert die Artikelliste.
type ListQuery struct {
	Page       int
	Limit      int
	CategoryID string
	Search     string
	UserID     string
}

// ArticleStore kapselt alle Datenbankzugriffe auf den Artikel-Graphen.
type ArticleStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewArticleStore(db *gorm.DB, log *zap.Logger) *ArticleStore {
	return &ArticleStore{db: db, log: log.With(zap.String("component", "article_store"))}
}

// withTree lädt Sections, Blocks und alle Unterentitäten, jeweils nach position sortiert.
func withTree(db *gorm.DB) *gorm.DB {
	q := db.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Preload("Sections.Blocks", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
	for _, child := range blockChildren {
		q = q.Preload("Sections.Blocks." + child)
	}
	return q
}

// SlugExists prüft, ob ein Slug bereits vergeben ist.
func (s *ArticleStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check slug %q: %w", slug, err)
	}
	return n > 0, nil
}

// FindBySlug lädt einen Artikel mit dem vollständigen Baum.
func (s *ArticleStore) FindBySlug(ctx context.Context, slug string) (models.Article, error) {
	var a models.Article
	err := withTree(s.db.WithContext(ctx)).Where("slug = ?", slug).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("find article %q: %w", slug, err)
	}
	return a, nil
}

// List liefert eine Seite von Artikeln ohne Blocks; nur die Section-IDs werden für
// die Anzahl geladen.
func (s *ArticleStore) List(ctx context.Context, q ListQuery) ([]models.Article, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Article{})
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + term + "%"
		query = query.Where("title ILIKE ? OR meta_description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	var articles []models.Article
	err := query.
		Preload("Sections", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "article_id") }).
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return articles, total, nil
}

// Create speichert den Artikel samt Baum in einem verschachtelten Insert.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Replace ersetzt einen Artikel vollständig. Die Zeile wird gesperrt, die Version
// geprüft (expectedVersion 0 = keine Prüfung), alle Sections gelöscht und neu angelegt.
// Die Blocks und Unterentitäten verschwinden über ON DELETE CASCADE.
func (s *ArticleStore) Replace(ctx context.Context, slug string, expectedVersion int, next *models.Article) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Article
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("slug = ?", slug).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if expectedVersion > 0 && current.Version != expectedVersion {
			return ErrVersionConflict
		}

		if err := tx.Where("article_id = ?", current.ID).Delete(&models.Section{}).Error; err != nil {
			return fmt.Errorf("delete sections: %w", err)
		}

		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.Version = current.Version + 1
		if err := tx.Omit(clause.Associations).Save(next).Error; err != nil {
			return err
		}
		if len(next.Sections) > 0 {
			for i := range next.Sections {
				next.Sections[i].ArticleID = current.ID
			}
			if err := tx.Create(&next.Sections).Error; err != nil {
				return fmt.Errorf("create sections: %w", err)
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVersionConflict):
		return err
	case IsUniqueViolation(err):
		return ErrDuplicateSlug
	}
	return fmt.Errorf("replace article %q: %w", slug, err)
}

// DeleteBySlug löscht einen Artikel; der Baum folgt per Cascade.
func (s *ArticleStore) DeleteBySlug(ctx context.Context, slug string) error {
	res := s.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Article{})
	if res.Error != nil {
		return fmt.Errorf("delete article %q: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStats schreibt die gecachten Kennzahlen, ohne updated_at anzufassen.
func (s *ArticleStore) UpdateStats(ctx context.Context, id string, wordCount, readingTime int) error {
	err := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).
		UpdateColumns(map[string]any{"word_count": wordCount, "reading_time": readingTime}).Error
	if err != nil {
		return fmt.Errorf("update stats of %s: %w", id, err)
	}
	return nil
}

// UpdatedSince ruft fn batchweise mit allen seit since geänderten Artikeln (vollständiger Baum) auf.
func (s *ArticleStore) UpdatedSince(ctx context.Context, since time.Time, batchSize int, fn func([]models.Article) error) error {
	var batch []models.Article
	res := withTree(s.db.WithContext(ctx)).Where("updated_at >= ?", since).
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, n int) error {
			s.log.Debug("Processing article batch", zap.Int("batch", n), zap.Int("size", len(batch)))
			return fn(batch)
		})
	if res.Error != nil {
		return fmt.Errorf("scan updated articles: %w", res.Error)
	}
	return nil
}
