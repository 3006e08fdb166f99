package models

import "time"

// Article ist die oberste Inhaltseinheit. Sie besitzt eine geordnete Liste von Sections.
type Article struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`

	// Besitzer und Klassifizierung
	UserID     string  `json:"userId" gorm:"index;not null"`
	CategoryID *string `json:"categoryId,omitempty" gorm:"index"`

	// SEO
	MetaDescription string `json:"metaDescription,omitempty" gorm:"type:text"`
	FocusKeyword    string `json:"focusKeyword,omitempty"`
	SEOTitle        string `json:"seoTitle,omitempty" gorm:"column:seo_title"`
	SEOScore        int    `json:"seoScore" gorm:"column:seo_score;default:0"`

	// Abgeleitete Kennzahlen (Cache)
	WordCount   int `json:"wordCount" gorm:"default:0"`
	ReadingTime int `json:"readingTime" gorm:"default:1"`

	// Version wird bei jedem erfolgreichen Update erhöht (optimistische Nebenläufigkeit).
	Version int `json:"version" gorm:"not null;default:1"`

	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// TableName gibt explizit den Tabellennamen an.
func (Article) TableName() string {
	return "articles"
}

// Section gruppiert Blocks innerhalb eines Artikels.
type Section struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title     string `json:"title"`
	Order     *int   `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	ArticleID string `json:"articleId" gorm:"type:uuid;index;not null"`

	Blocks []Block `json:"blocks,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

func (Section) TableName() string {
	return "sections"
}
