package content

import (
	"html"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// WordsPerMinute ist die angenommene Lesegeschwindigkeit.
const WordsPerMinute = 200

var stripTagsPolicy = bluemonday.StripTagsPolicy()

var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬆ", "st",
)

// ReadingStats sind die abgeleiteten Lesekennzahlen eines Artikels.
type ReadingStats struct {
	WordCount   int `json:"wordCount"`
	ReadingTime int `json:"readingTime"`
}

// ComputeReadingStats zählt die Wörter aller Blocks mit Inhalt. Überschriften sind
// Strukturelemente und zählen nicht zum Fließtext.
func ComputeReadingStats(blocks []Block) ReadingStats {
	words := 0
	for _, b := range blocks {
		if b.Type == TypeHeading || b.Content == "" {
			continue
		}
		words += CountWords(b.Content)
	}
	return ReadingStats{WordCount: words, ReadingTime: ReadingTimeFor(words)}
}

// ReadingTimeFor liefert die Lesezeit in Minuten, mindestens 1.
func ReadingTimeFor(words int) int {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// CountWords zählt whitespace-getrennte Tokens; HTML-Tags werden vorher entfernt.
func CountWords(s string) int {
	return len(strings.Fields(PlainText(s)))
}

// PlainText entfernt HTML, löst Entities auf und normalisiert Unicode (NFC, Ligaturen).
func PlainText(s string) string {
	if strings.ContainsRune(s, '<') {
		// Tags durch Leerzeichen ersetzen, damit "<p>a</p><p>b</p>" zwei Wörter bleibt
		s = stripTagsPolicy.Sanitize(strings.ReplaceAll(s, "<", " <"))
		s = html.UnescapeString(s)
	}
	s = ligatures.Replace(s)
	normalized, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return normalized
}
