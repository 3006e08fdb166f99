package content

import (
	"encoding/json"

	"article-hand/models"
)

// FlatBlock ist die abwärtskompatible, flache JSON-Form eines Blocks. Jedes Feld ist
// vorhanden; typfremde Felder sind leer ("", [], 0 oder null).
type FlatBlock struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Content      string `json:"content"`
	Order        int    `json:"order"`
	SectionID    string `json:"sectionId"`
	SectionTitle string `json:"sectionTitle,omitempty"`

	Level              int                 `json:"level"`
	ImageURL           string              `json:"imageUrl"`
	ImageCaption       string              `json:"imageCaption"`
	ImageAlt           string              `json:"imageAlt"`
	ResponsiveSettings *ResponsiveSettings `json:"responsiveSettings"`
	ListType           string              `json:"listType"`
	ProductName        string              `json:"productName"`
	Introduction       string              `json:"introduction"`
	CTAText            string              `json:"ctaText"`
	CTAButtonText      string              `json:"ctaButtonText"`
	CTAButtonLink      string              `json:"ctaButtonLink"`
	BackgroundColor    string              `json:"backgroundColor"`

	Rating          *Rating          `json:"rating"`
	Highlights      []ListItem       `json:"highlights"`
	Pros            []ListItem       `json:"pros"`
	Cons            []ListItem       `json:"cons"`
	Ingredients     []ListItem       `json:"ingredients"`
	IngredientItems []IngredientItem `json:"ingredientItems"`
	BulletPoints    []BulletPoint    `json:"bulletPoints"`
	FAQItems        []FAQItem        `json:"faqItems"`
	Specifications  []Specification  `json:"specifications"`
	CustomFields    []CustomField    `json:"customFields"`
}

// Flat liefert die flache Sicht auf den Block.
func (b Block) Flat() FlatBlock {
	f := FlatBlock{
		ID:              b.ID,
		Type:            string(b.Type),
		Content:         b.Content,
		Order:           b.Order,
		SectionID:       b.SectionID,
		Highlights:      []ListItem{},
		Pros:            []ListItem{},
		Cons:            []ListItem{},
		Ingredients:     []ListItem{},
		IngredientItems: []IngredientItem{},
		BulletPoints:    []BulletPoint{},
		FAQItems:        []FAQItem{},
		Specifications:  []Specification{},
		CustomFields:    nonNil(b.CustomFields),
	}

	switch d := b.Data.(type) {
	case *HeadingData:
		f.Level = d.Level
	case *ImageData:
		f.ImageURL, f.ImageCaption, f.ImageAlt = d.URL, d.Caption, d.Alt
		f.ResponsiveSettings = d.Responsive
	case *ListData:
		f.ListType = string(d.ListType)
	case *RatingData:
		f.ProductName = d.ProductName
		f.Rating = d.Rating
		f.Highlights = nonNil(d.Highlights)
	case *ProsConsData:
		f.Pros, f.Cons, f.Ingredients = nonNil(d.Pros), nonNil(d.Cons), nonNil(d.Ingredients)
	case *IngredientsData:
		f.ProductName, f.Introduction = d.ProductName, d.Introduction
		f.IngredientItems = nonNil(d.Items)
	case *CTAData:
		f.CTAText, f.CTAButtonText, f.CTAButtonLink, f.BackgroundColor = d.Text, d.ButtonText, d.ButtonLink, d.BackgroundColor
	case *FAQData:
		f.FAQItems = nonNil(d.Items)
	case *SpecificationsData:
		f.Specifications = nonNil(d.Items)
	case *BulletListData:
		f.BulletPoints = nonNil(d.Points)
	}
	return f
}

// MarshalJSON schreibt den Block in der flachen Legacy-Form.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Flat())
}

// UnmarshalJSON liest die flache Form (oder einen rohen Datensatz) und normalisiert sie.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw models.Block
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = NormalizeBlock(raw)
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
