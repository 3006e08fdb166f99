package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength ist die maximale Länge des Basis-Slugs (ohne Zähler-Suffix).
const MaxSlugLength = 50

// DefaultMaxSlugAttempts begrenzt die Suche nach einem freien Slug.
const DefaultMaxSlugAttempts = 100

// ErrSlugExhausted wird geliefert, wenn alle Slug-Kandidaten belegt sind.
var ErrSlugExhausted = errors.New("no free slug found")

var (
	slugWhitespace = regexp.MustCompile(`[\s\p{Z}]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9_-]+`)
	slugHyphens    = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug leitet aus einem Titel einen URL-tauglichen Slug ab:
// Akzente entfernen, klein schreiben, Leerraum zu "-", alles andere außer [a-z0-9_-] entfernen.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(foldDiacritics(title)))
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	if s == "" {
		return "article"
	}
	return s
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// SlugExistsFunc prüft, ob ein Slug bereits vergeben ist.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// ResolveSlug probiert base, base-1, base-2, ... bis exists false meldet.
// Nach maxAttempts Kandidaten wird ErrSlugExhausted geliefert.
func ResolveSlug(ctx context.Context, base string, maxAttempts int, exists SlugExistsFunc) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxSlugAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts for %q", ErrSlugExhausted, maxAttempts, base)
}
