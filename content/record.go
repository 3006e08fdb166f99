package content

import (
	"encoding/json"

	"gorm.io/datatypes"

	"article-hand/models"
)

// Record wandelt einen normalisierten Block zurück in den rohen Datensatz.
// NormalizeBlock(b.Record()) ergibt wieder b.
func (b Block) Record() models.Block {
	r := models.Block{
		ID:           b.ID,
		Type:         string(b.Type),
		Content:      ptr(b.Content),
		Order:        ptr(b.Order),
		SectionID:    b.SectionID,
		CustomFields: make([]models.CustomField, 0, len(b.CustomFields)),
	}
	for _, f := range b.CustomFields {
		r.CustomFields = append(r.CustomFields, models.CustomField{ID: f.ID, Name: f.Name, Value: f.Value, BlockID: b.ID})
	}

	switch d := b.Data.(type) {
	case *HeadingData:
		r.Level = ptr(d.Level)
	case *ImageData:
		r.ImageURL = ptr(d.URL)
		r.ImageCaption = ptr(d.Caption)
		r.ImageAlt = ptr(d.Alt)
		if d.Responsive != nil {
			if raw, err := json.Marshal(d.Responsive); err == nil {
				r.Responsive = datatypes.JSON(raw)
			}
		}
	case *ListData:
		r.ListType = ptr(string(d.ListType))
	case *RatingData:
		r.ProductName = ptr(d.ProductName)
		if d.Rating != nil {
			r.Rating = &models.Rating{
				ID:            d.Rating.ID,
				Ingredients:   copyFloat(d.Rating.Ingredients),
				Value:         copyFloat(d.Rating.Value),
				Manufacturer:  copyFloat(d.Rating.Manufacturer),
				Safety:        copyFloat(d.Rating.Safety),
				Effectiveness: copyFloat(d.Rating.Effectiveness),
				BlockID:       b.ID,
			}
		}
		for _, h := range d.Highlights {
			r.Highlights = append(r.Highlights, models.Highlight{OrderedText: orderedRecord(h, b.ID)})
		}
	case *ProsConsData:
		for _, p := range d.Pros {
			r.Pros = append(r.Pros, models.Pro{OrderedText: orderedRecord(p, b.ID)})
		}
		for _, c := range d.Cons {
			r.Cons = append(r.Cons, models.Con{OrderedText: orderedRecord(c, b.ID)})
		}
		for _, i := range d.Ingredients {
			r.Ingredients = append(r.Ingredients, models.Ingredient{OrderedText: orderedRecord(i, b.ID)})
		}
	case *IngredientsData:
		r.ProductName = ptr(d.ProductName)
		r.Introduction = ptr(d.Introduction)
		for _, item := range d.Items {
			r.IngredientItems = append(r.IngredientItems, models.IngredientItem{
				ID:          item.ID,
				Name:        item.Name,
				ImageURL:    item.ImageURL,
				Description: item.Description,
				Order:       ptr(item.Order),
				StudyURL:    optional(item.StudyURL),
				StudyTitle:  optional(item.StudyTitle),
				StudyYear:   optional(item.StudyYear),
				BlockID:     b.ID,
			})
		}
	case *CTAData:
		r.CTAText = ptr(d.Text)
		r.CTAButtonText = ptr(d.ButtonText)
		r.CTAButtonLink = ptr(d.ButtonLink)
		r.BackgroundColor = ptr(d.BackgroundColor)
	case *FAQData:
		for _, item := range d.Items {
			r.FAQItems = append(r.FAQItems, models.FAQItem{
				ID: item.ID, Question: item.Question, Answer: item.Answer, Order: ptr(item.Order), BlockID: b.ID,
			})
		}
	case *SpecificationsData:
		for _, item := range d.Items {
			r.Specifications = append(r.Specifications, models.Specification{
				ID: item.ID, Name: item.Name, Value: item.Value, Order: ptr(item.Order), BlockID: b.ID,
			})
		}
	case *BulletListData:
		for _, p := range d.Points {
			r.BulletPoints = append(r.BulletPoints, models.BulletPoint{OrderedText: orderedRecord(p, b.ID)})
		}
	}
	return r
}

// Record wandelt eine Section (inklusive Blocks) zurück in den rohen Datensatz.
func (s Section) Record() models.Section {
	r := models.Section{
		ID:        s.ID,
		Title:     s.Title,
		Order:     ptr(s.Order),
		ArticleID: s.ArticleID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Blocks:    make([]models.Block, 0, len(s.Blocks)),
	}
	for _, b := range s.Blocks {
		r.Blocks = append(r.Blocks, b.Record())
	}
	return r
}

func orderedRecord(item ListItem, blockID string) models.OrderedText {
	return models.OrderedText{ID: item.ID, Content: item.Content, Order: ptr(item.Order), BlockID: blockID}
}

func ptr[T any](v T) *T {
	return &v
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
