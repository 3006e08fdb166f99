package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"article-hand/content"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "article:slug:"
	genKeyPrefix   = "article:gen:"
	// genTTL muss deutlich länger sein als jeder Lesevorgang zwischen Generation und SetIfCurrent.
	genTTL = 24 * time.Hour
)

// setIfCurrent schreibt den Eintrag nur, wenn die Generation des Slugs seit dem Lesen
// unverändert ist. Eine fehlende Generation zählt als 0.
var setIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// NewRedisClient verbindet sich mit Redis. Ohne Adresse gibt es keinen Client (nil, nil),
// der Service läuft dann ohne Cache.
func NewRedisClient(ctx context.Context, addr string, log *zap.Logger) (*redis.Client, error) {
	if addr == "" {
		log.Info("REDIS_ADDR not set, article cache disabled")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	log.Info("Connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// ArticleCache hält die aggregierte Lese-Sicht eines Artikels pro Slug.
type ArticleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewArticleCache(client redis.Cmdable, ttl time.Duration) *ArticleCache {
	return &ArticleCache{client: client, ttl: ttl}
}

func cacheKey(slug string) string {
	return cacheKeyPrefix + slug
}

func genKey(slug string) string {
	return genKeyPrefix + slug
}

// Get liefert den gecachten Artikel; ok ist false bei einem Miss.
func (c *ArticleCache) Get(ctx context.Context, slug string) (content.Article, bool, error) {
	var a content.Article
	raw, err := c.client.Get(ctx, cacheKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return a, false, nil
	}
	if err != nil {
		return a, false, fmt.Errorf("cache get %s: %w", slug, err)
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, false, fmt.Errorf("cache decode %s: %w", slug, err)
	}
	return a, true, nil
}

// Generation liefert den Invalidierungszähler eines Slugs (0, wenn nie invalidiert).
func (c *ArticleCache) Generation(ctx context.Context, slug string) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(slug)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation %s: %w", slug, err)
	}
	return gen, nil
}

// SetIfCurrent schreibt den Artikel nur, wenn seit Generation kein Invalidate lief.
// stored ist false, wenn der Eintrag verworfen wurde.
func (c *ArticleCache) SetIfCurrent(ctx context.Context, a content.Article, gen int64) (bool, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("cache encode %s: %w", a.Slug, err)
	}
	n, err := setIfCurrent.Run(ctx, c.client,
		[]string{genKey(a.Slug), cacheKey(a.Slug)},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache set %s: %w", a.Slug, err)
	}
	return n == 1, nil
}

func (c *ArticleCache) Set(ctx context.Context, a content.Article) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", a.Slug, err)
	}
	if err := c.client.Set(ctx, cacheKey(a.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", a.Slug, err)
	}
	return nil
}

// Invalidate entfernt die Einträge aller übergebenen Slugs und erhöht ihre Generation,
// damit parallel laufende Lesevorgänge keinen alten Stand mehr zurückschreiben.
func (c *ArticleCache) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range slugs {
			pipe.Del(ctx, cacheKey(s))
			pipe.Incr(ctx, genKey(s))
			pipe.Expire(ctx, genKey(s), genTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
