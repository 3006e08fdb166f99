package content

import (
	"strings"

	"go.uber.org/zap"

	"article-hand/models"
)

// Normalizer wandelt rohe Block-Datensätze in vollständig befüllte, typisierte Blocks um.
// Er sortiert nichts um; das übernimmt der Aggregator.
type Normalizer struct {
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

var defaultNormalizer = NewNormalizer(nil)

// NormalizeBlock normalisiert einen Block ohne Logging.
func NormalizeBlock(raw models.Block) Block {
	return defaultNormalizer.Block(raw)
}

// Block normalisiert einen einzelnen rohen Block.
func (n *Normalizer) Block(raw models.Block) Block {
	b := Block{
		ID:           raw.ID,
		Type:         BlockType(raw.Type),
		Content:      str(raw.Content),
		Order:        num(raw.Order, 0),
		SectionID:    raw.SectionID,
		CustomFields: customFields(raw.CustomFields),
	}

	switch b.Type {
	case TypeHeading:
		b.Data = &HeadingData{Level: headingLevel(raw.Level)}
	case TypeImage:
		b.Data = &ImageData{
			URL:        str(raw.ImageURL),
			Caption:    str(raw.ImageCaption),
			Alt:        str(raw.ImageAlt),
			Responsive: n.responsiveSettings(raw, b.CustomFields),
		}
	case TypeList:
		b.Data = &ListData{ListType: listType(raw.ListType)}
	case TypeRating:
		b.Data = &RatingData{
			ProductName: str(raw.ProductName),
			Rating:      rating(raw.Rating),
			Highlights:  orderedTexts(raw.Highlights, func(h models.Highlight) models.OrderedText { return h.OrderedText }),
		}
	case TypeProsCons:
		b.Data = &ProsConsData{
			Pros:        orderedTexts(raw.Pros, func(p models.Pro) models.OrderedText { return p.OrderedText }),
			Cons:        orderedTexts(raw.Cons, func(c models.Con) models.OrderedText { return c.OrderedText }),
			Ingredients: orderedTexts(raw.Ingredients, func(i models.Ingredient) models.OrderedText { return i.OrderedText }),
		}
	case TypeIngredients:
		b.Data = &IngredientsData{
			ProductName:  str(raw.ProductName),
			Introduction: str(raw.Introduction),
			Items:        ingredientItems(raw.IngredientItems),
		}
	case TypeCTA:
		b.Data = &CTAData{
			Text:            str(raw.CTAText),
			ButtonText:      str(raw.CTAButtonText),
			ButtonLink:      str(raw.CTAButtonLink),
			BackgroundColor: str(raw.BackgroundColor),
		}
	case TypeFAQ:
		b.Data = &FAQData{Items: faqItems(raw.FAQItems)}
	case TypeSpecifications:
		b.Data = &SpecificationsData{Items: specifications(raw.Specifications)}
	case TypeBulletList:
		b.Data = &BulletListData{
			Points: orderedTexts(raw.BulletPoints, func(p models.BulletPoint) models.OrderedText { return p.OrderedText }),
		}
	}
	return b
}

// Section normalisiert eine Section samt Blocks (ohne Sortierung).
func (n *Normalizer) Section(raw models.Section) Section {
	s := Section{
		ID:        raw.ID,
		Title:     raw.Title,
		Order:     num(raw.Order, 0),
		ArticleID: raw.ArticleID,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Blocks:    make([]Block, 0, len(raw.Blocks)),
	}
	for _, rb := range raw.Blocks {
		s.Blocks = append(s.Blocks, n.Block(rb))
	}
	return s
}

// Sections normalisiert alle Sections eines Artikels.
func (n *Normalizer) Sections(raw []models.Section) []Section {
	out := make([]Section, 0, len(raw))
	for _, rs := range raw {
		out = append(out, n.Section(rs))
	}
	return out
}

// responsiveSettings bevorzugt die typisierte Spalte und migriert sonst aus dem Legacy-CustomField.
func (n *Normalizer) responsiveSettings(raw models.Block, fields []CustomField) *ResponsiveSettings {
	if doc := strings.TrimSpace(string(raw.Responsive)); doc != "" && doc != "null" {
		s := DecodeResponsiveSettings(doc, n.logger.With(zap.String("block_id", raw.ID)))
		return &s
	}
	if value, ok := CustomFieldValue(fields, ResponsiveSettingsField); ok {
		s := DecodeResponsiveSettings(value, n.logger.With(zap.String("block_id", raw.ID)))
		return &s
	}
	return nil
}

// headingLevel behandelt 0 wie ein fehlendes Level; die flache Sicht schreibt level:0
// für alle Nicht-Überschriften.
func headingLevel(level *int) int {
	if level == nil || *level == 0 {
		return DefaultHeadingLevel
	}
	switch {
	case *level < MinHeadingLevel:
		return MinHeadingLevel
	case *level > MaxHeadingLevel:
		return MaxHeadingLevel
	}
	return *level
}

func listType(lt *string) ListType {
	if lt != nil && ListType(*lt) == ListOrdered {
		return ListOrdered
	}
	return ListUnordered
}

func rating(r *models.Rating) *Rating {
	if r == nil {
		return nil
	}
	return &Rating{
		ID:            r.ID,
		Ingredients:   copyFloat(r.Ingredients),
		Value:         copyFloat(r.Value),
		Manufacturer:  copyFloat(r.Manufacturer),
		Safety:        copyFloat(r.Safety),
		Effectiveness: copyFloat(r.Effectiveness),
	}
}

func customFields(raw []models.CustomField) []CustomField {
	out := make([]CustomField, 0, len(raw))
	for _, f := range raw {
		out = append(out, CustomField{ID: f.ID, Name: f.Name, Value: f.Value})
	}
	return out
}

// orderedTexts übernimmt die Reihenfolge unverändert; fehlende order-Werte werden zur Position.
func orderedTexts[T any](raw []T, text func(T) models.OrderedText) []ListItem {
	out := make([]ListItem, 0, len(raw))
	for i, item := range raw {
		t := text(item)
		out = append(out, ListItem{ID: t.ID, Content: t.Content, Order: num(t.Order, i)})
	}
	return out
}

func ingredientItems(raw []models.IngredientItem) []IngredientItem {
	out := make([]IngredientItem, 0, len(raw))
	for i, item := range raw {
		out = append(out, IngredientItem{
			ID:          item.ID,
			Name:        item.Name,
			ImageURL:    item.ImageURL,
			Description: item.Description,
			Order:       num(item.Order, i),
			StudyURL:    str(item.StudyURL),
			StudyTitle:  str(item.StudyTitle),
			StudyYear:   num(item.StudyYear, 0),
		})
	}
	return out
}

func faqItems(raw []models.FAQItem) []FAQItem {
	out := make([]FAQItem, 0, len(raw))
	for i, item := range raw {
		out = append(out, FAQItem{ID: item.ID, Question: item.Question, Answer: item.Answer, Order: num(item.Order, i)})
	}
	return out
}

func specifications(raw []models.Specification) []Specification {
	out := make([]Specification, 0, len(raw))
	for i, item := range raw {
		out = append(out, Specification{ID: item.ID, Name: item.Name, Value: item.Value, Order: num(item.Order, i)})
	}
	return out
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int, fallback int) int {
	if n == nil {
		return fallback
	}
	return *n
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
