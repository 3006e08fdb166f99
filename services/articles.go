package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"article-hand/content"
	"article-hand/models"
	"article-hand/storage"
)

var (
	ErrNotFound        = storage.ErrNotFound
	ErrVersionConflict = storage.ErrVersionConflict
	ErrSlugConflict    = errors.New("slug conflict")
)

const maxPageLimit = 100

// ArticleStore ist die Persistenz, die der ArticleService braucht.
type ArticleStore interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindBySlug(ctx context.Context, slug string) (models.Article, error)
	List(ctx context.Context, q storage.ListQuery) ([]models.Article, int64, error)
	Create(ctx context.Context, a *models.Article) error
	Replace(ctx context.Context, slug string, expectedVersion int, next *models.Article) error
	DeleteBySlug(ctx context.Context, slug string) error
}

// ArticleCache ist der optionale Lese-Cache.
type ArticleCache interface {
	Get(ctx context.Context, slug string) (content.Article, bool, error)
	Generation(ctx context.Context, slug string) (int64, error)
	SetIfCurrent(ctx context.Context, a content.Article, gen int64) (bool, error)
	Invalidate(ctx context.Context, slugs ...string) error
}

type Options struct {
	WriteTimeout     time.Duration
	MaxSlugAttempts  int
	PageSize         int
	TrustCachedStats bool
}

// ArticleService orchestriert Lese- und Schreibpfad der Artikel.
type ArticleService struct {
	Store      ArticleStore
	Cache      ArticleCache
	Logger     *zap.Logger
	Options    Options
	normalizer *content.Normalizer
	decomposer *content.Decomposer
}

// NewArticleService erstellt den Service. cache darf nil sein.
func NewArticleService(store ArticleStore, cache ArticleCache, logger *zap.Logger, opts Options) *ArticleService {
	if opts.MaxSlugAttempts <= 0 {
		opts.MaxSlugAttempts = content.DefaultMaxSlugAttempts
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	n := content.NewNormalizer(logger)
	return &ArticleService{
		Store:      store,
		Cache:      cache,
		Logger:     logger,
		Options:    opts,
		normalizer: n,
		decomposer: content.NewDecomposer(n, nil),
	}
}

// WriteResult ist das Ergebnis eines erfolgreichen Schreibvorgangs.
type WriteResult struct {
	Article content.Article
	States  []content.WriteState
}

func (s *ArticleService) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Options.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Options.WriteTimeout)
}

func (s *ArticleService) validate(lc *content.WriteLifecycle, op string, p content.ArticlePayload) error {
	if err := content.Validate(p); err != nil {
		_ = lc.Advance(content.StateRejected)
		articleWrites.WithLabelValues(op, string(lc.State)).Inc()
		return err
	}
	return lc.Advance(content.StateValidated)
}

// Create validiert, vergibt einen freien Slug und speichert den Artikel in einem
// verschachtelten Insert. Ein Unique-Konflikt beim Commit führt zurück zur Slug-Auflösung.
func (s *ArticleService) Create(ctx context.Context, p content.ArticlePayload) (WriteResult, error) {
	lc := content.NewWriteLifecycle()
	if err := s.validate(lc, "create", p); err != nil {
		return WriteResult{States: lc.History}, err
	}

	ctx, cancel := s.writeContext(ctx)
	defer cancel()

	base := content.GenerateSlug(p.Title)
	if p.Slug != "" {
		base = content.GenerateSlug(p.Slug)
	}
	log := s.Logger.With(zap.String("base_slug", base))

	for attempt := 0; attempt < s.Options.MaxSlugAttempts; attempt++ {
		slug, err := content.ResolveSlug(ctx, base, s.Options.MaxSlugAttempts, s.Store.SlugExists)
		if err != nil {
			return WriteResult{States: lc.History}, s.slugError(err)
		}
		if err := lc.Advance(content.StateSlugResolved); err != nil {
			return WriteResult{States: lc.History}, err
		}

		row := s.decomposer.Article(p, "", slug)
		err = s.Store.Create(ctx, &row)
		if errors.Is(err, storage.ErrDuplicateSlug) {
			slugConflicts.Inc()
			log.Warn("Slug taken on commit, resolving again", zap.String("slug", slug), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return WriteResult{States: lc.History}, err
		}

		_ = lc.Advance(content.StatePersisted)
		articleWrites.WithLabelValues("create", string(lc.State)).Inc()
		log.Info("Article created", zap.String("id", row.ID), zap.String("slug", slug), zap.Int("sections", len(row.Sections)))
		return WriteResult{Article: s.normalizer.BuildArticle(row, false), States: lc.History}, nil
	}
	return WriteResult{States: lc.History}, fmt.Errorf("%w: no free slug for %q after %d attempts", ErrSlugConflict, base, s.Options.MaxSlugAttempts)
}

// Update ersetzt einen Artikel vollständig. p.Version ist die Version, auf der der
// Client gearbeitet hat; 0 überspringt die Prüfung.
func (s *ArticleService) Update(ctx context.Context, slug string, p content.ArticlePayload) (WriteResult, error) {
	lc := content.NewWriteLifecycle()
	if err := s.validate(lc, "update", p); err != nil {
		return WriteResult{States: lc.History}, err
	}

	ctx, cancel := s.writeContext(ctx)
	defer cancel()
	log := s.Logger.With(zap.String("slug", slug))

	current, err := s.Store.FindBySlug(ctx, slug)
	if err != nil {
		return WriteResult{States: lc.History}, err
	}
	if p.Version == 0 {
		log.Warn("Update without version, skipping concurrency check")
	}

	// Ohne expliziten neuen Slug bleibt der bisherige erhalten.
	base := slug
	if p.Slug != "" {
		base = content.GenerateSlug(p.Slug)
	}
	exists := func(ctx context.Context, candidate string) (bool, error) {
		if candidate == slug {
			return false, nil
		}
		return s.Store.SlugExists(ctx, candidate)
	}

	for attempt := 0; attempt < s.Options.MaxSlugAttempts; attempt++ {
		next, err := content.ResolveSlug(ctx, base, s.Options.MaxSlugAttempts, exists)
		if err != nil {
			return WriteResult{States: lc.History}, s.slugError(err)
		}
		if err := lc.Advance(content.StateSlugResolved); err != nil {
			return WriteResult{States: lc.History}, err
		}

		row := s.decomposer.Article(p, current.ID, next)
		err = s.Store.Replace(ctx, slug, p.Version, &row)
		if errors.Is(err, storage.ErrDuplicateSlug) {
			slugConflicts.Inc()
			log.Warn("Slug taken on commit, resolving again", zap.String("new_slug", next), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return WriteResult{States: lc.History}, err
		}

		_ = lc.Advance(content.StatePersisted)
		articleWrites.WithLabelValues("update", string(lc.State)).Inc()
		s.invalidate(ctx, slug, next)
		log.Info("Article updated", zap.String("id", row.ID), zap.String("new_slug", next), zap.Int("version", row.Version))
		return WriteResult{Article: s.normalizer.BuildArticle(row, false), States: lc.History}, nil
	}
	return WriteResult{States: lc.History}, fmt.Errorf("%w: no free slug for %q after %d attempts", ErrSlugConflict, base, s.Options.MaxSlugAttempts)
}

func (s *ArticleService) slugError(err error) error {
	if errors.Is(err, content.ErrSlugExhausted) {
		return fmt.Errorf("%w: %v", ErrSlugConflict, err)
	}
	return err
}

// Get liefert die aggregierte Lese-Sicht, bevorzugt aus dem Cache.
func (s *ArticleService) Get(ctx context.Context, slug string) (content.Article, error) {
	// Die Generation wird vor dem Lesen aus der Datenbank gemerkt. Lief inzwischen ein
	// Invalidate, wird der gelesene Stand nicht mehr in den Cache geschrieben.
	var (
		gen       int64
		cacheable bool
	)
	if s.Cache != nil {
		a, ok, err := s.Cache.Get(ctx, slug)
		switch {
		case err != nil:
			cacheRequests.WithLabelValues("error").Inc()
			s.Logger.Warn("Article cache read failed", zap.String("slug", slug), zap.Error(err))
		case ok:
			cacheRequests.WithLabelValues("hit").Inc()
			return a, nil
		default:
			cacheRequests.WithLabelValues("miss").Inc()
		}
		if gen, err = s.Cache.Generation(ctx, slug); err != nil {
			s.Logger.Warn("Article cache generation read failed", zap.String("slug", slug), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	row, err := s.Store.FindBySlug(ctx, slug)
	if err != nil {
		return content.Article{}, err
	}
	a := s.normalizer.BuildArticle(row, s.Options.TrustCachedStats)

	if cacheable {
		stored, err := s.Cache.SetIfCurrent(ctx, a, gen)
		switch {
		case err != nil:
			s.Logger.Warn("Article cache write failed", zap.String("slug", slug), zap.Error(err))
		case !stored:
			cacheRequests.WithLabelValues("stale").Inc()
			s.Logger.Debug("Skipped cache write, article changed during read", zap.String("slug", slug))
		}
	}
	return a, nil
}

type ListParams struct {
	Page       int
	Limit      int
	CategoryID string
	Search     string
	UserID     string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListResult struct {
	Articles   []content.Summary `json:"articles"`
	Pagination Pagination        `json:"pagination"`
}

// List liefert eine Seite von Artikel-Zusammenfassungen.
func (s *ArticleService) List(ctx context.Context, params ListParams) (ListResult, error) {
	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.Options.PageSize
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	rows, total, err := s.Store.List(ctx, storage.ListQuery{
		Page: page, Limit: limit,
		CategoryID: params.CategoryID, Search: params.Search, UserID: params.UserID,
	})
	if err != nil {
		return ListResult{}, err
	}

	summaries := make([]content.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, content.Summarize(row))
	}
	return ListResult{
		Articles: summaries,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

// Delete löscht einen Artikel samt Baum.
func (s *ArticleService) Delete(ctx context.Context, slug string) error {
	ctx, cancel := s.writeContext(ctx)
	defer cancel()

	if err := s.Store.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	s.invalidate(ctx, slug)
	s.Logger.Info("Article deleted", zap.String("slug", slug))
	return nil
}

func (s *ArticleService) invalidate(ctx context.Context, slugs ...string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, slugs...); err != nil {
		s.Logger.Warn("Article cache invalidation failed", zap.Strings("slugs", slugs), zap.Error(err))
	}
}
