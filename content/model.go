package content

import (
	"time"

	"article-hand/models"
)

// Section ist eine normalisierte Section mit ihren Blocks.
type Section struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	ArticleID string    `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Blocks    []Block   `json:"blocks"`
}

// Article ist die vollständig aggregierte Lese-Sicht eines Artikels. Blocks ist die
// flache, abwärtskompatible Sicht und wird immer aus Sections berechnet.
type Article struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	PublishDate     *time.Time  `json:"publishDate"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	ImageURL        string      `json:"imageUrl"`
	UserID          string      `json:"userId"`
	CategoryID      *string     `json:"categoryId"`
	MetaDescription string      `json:"metaDescription"`
	FocusKeyword    string      `json:"focusKeyword"`
	SEOTitle        string      `json:"seoTitle"`
	SEOScore        int         `json:"seoScore"`
	WordCount       int         `json:"wordCount"`
	ReadingTime     int         `json:"readingTime"`
	SectionCount    int         `json:"sectionCount"`
	Version         int         `json:"version"`
	Sections        []Section   `json:"sections"`
	Blocks          []FlatBlock `json:"blocks"`
}

// Summary ist die leichte Listen-Sicht eines Artikels.
type Summary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	PublishDate     *time.Time `json:"publishDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	ImageURL        string     `json:"imageUrl"`
	UserID          string     `json:"userId"`
	CategoryID      *string    `json:"categoryId"`
	MetaDescription string     `json:"metaDescription"`
	WordCount       int        `json:"wordCount"`
	ReadingTime     int        `json:"readingTime"`
	SectionCount    int        `json:"sectionCount"`
}

// BuildArticle normalisiert und aggregiert einen gespeicherten Artikel. Mit trustCached
// werden die gespeicherten Kennzahlen übernommen, sofern vorhanden.
func (n *Normalizer) BuildArticle(row models.Article, trustCached bool) Article {
	agg := Aggregate(n.Sections(row.Sections))

	a := Article{
		ID:              row.ID,
		Title:           row.Title,
		Slug:            row.Slug,
		PublishDate:     row.PublishDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		ImageURL:        row.ImageURL,
		UserID:          row.UserID,
		CategoryID:      row.CategoryID,
		MetaDescription: row.MetaDescription,
		FocusKeyword:    row.FocusKeyword,
		SEOTitle:        row.SEOTitle,
		SEOScore:        row.SEOScore,
		WordCount:       agg.WordCount,
		ReadingTime:     agg.ReadingTime,
		SectionCount:    len(agg.Sections),
		Version:         row.Version,
		Sections:        agg.Sections,
		Blocks:          agg.FlatBlocks,
	}
	if trustCached && row.WordCount > 0 {
		a.WordCount = row.WordCount
		a.ReadingTime = ReadingTimeFor(row.WordCount)
	}
	return a
}

// Summarize baut die Listen-Sicht aus einem gespeicherten Artikel und seinen gecachten Kennzahlen.
func Summarize(row models.Article) Summary {
	return Summary{
		ID:              row.ID,
		Title:           row.Title,
		Slug:            row.Slug,
		PublishDate:     row.PublishDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		ImageURL:        row.ImageURL,
		UserID:          row.UserID,
		CategoryID:      row.CategoryID,
		MetaDescription: row.MetaDescription,
		WordCount:       row.WordCount,
		ReadingTime:     ReadingTimeFor(row.WordCount),
		SectionCount:    len(row.Sections),
	}
}
