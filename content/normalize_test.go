package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"article-hand/models"
)

func sp(s string) *string { return &s }
func ip(i int) *int       { return &i }
func fp(f float64) *float64 {
	return &f
}

func TestNormalizeBlock_FAQWithoutItems(t *testing.T) {
	b := NormalizeBlock(models.Block{ID: "b1", Type: "faq"})

	data, ok := b.Data.(*FAQData)
	require.True(t, ok)
	assert.NotNil(t, data.Items)
	assert.Empty(t, data.Items)
	assert.Equal(t, "", b.Content)
	assert.Equal(t, 0, b.Order)
	assert.NotNil(t, b.CustomFields)
}

func TestNormalizeBlock_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		raw   models.Block
		check func(t *testing.T, b Block)
	}{
		{
			name: "heading without level defaults to 2",
			raw:  models.Block{ID: "h", Type: "heading", Content: sp("Intro")},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, &HeadingData{Level: 2}, b.Data)
			},
		},
		{
			name: "heading level is clamped",
			raw:  models.Block{ID: "h", Type: "heading", Level: ip(7)},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, &HeadingData{Level: 3}, b.Data)
			},
		},
		{
			name: "heading level zero counts as unset",
			raw:  models.Block{ID: "h", Type: "heading", Level: ip(0)},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, &HeadingData{Level: 2}, b.Data)
			},
		},
		{
			name: "negative heading level is clamped",
			raw:  models.Block{ID: "h", Type: "heading", Level: ip(-4)},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, &HeadingData{Level: 1}, b.Data)
			},
		},
		{
			name: "list defaults to unordered",
			raw:  models.Block{ID: "l", Type: "list", ListType: sp("weird")},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, &ListData{ListType: ListUnordered}, b.Data)
			},
		},
		{
			name: "paragraph has no payload",
			raw:  models.Block{ID: "p", Type: "paragraph", Content: sp("Hello"), Level: ip(1)},
			check: func(t *testing.T, b Block) {
				assert.Nil(t, b.Data)
				assert.Equal(t, "Hello", b.Content)
			},
		},
		{
			name: "unknown type falls back to base shape",
			raw:  models.Block{ID: "x", Type: "carousel", Content: sp("c"), ImageURL: sp("ignored")},
			check: func(t *testing.T, b Block) {
				assert.Equal(t, BlockType("carousel"), b.Type)
				assert.Nil(t, b.Data)
				assert.Equal(t, "c", b.Content)
			},
		},
		{
			name: "rating keeps nil sub-scores",
			raw: models.Block{ID: "r", Type: "rating", ProductName: sp("Serum"),
				Rating: &models.Rating{Ingredients: fp(4), Value: fp(3)}},
			check: func(t *testing.T, b Block) {
				d := b.Data.(*RatingData)
				assert.Equal(t, "Serum", d.ProductName)
				require.NotNil(t, d.Rating)
				assert.Nil(t, d.Rating.Safety)
				assert.Equal(t, 4.0, *d.Rating.Ingredients)
				assert.Empty(t, d.Highlights)
			},
		},
		{
			name: "sub-entities are not re-sorted and missing order becomes position",
			raw: models.Block{ID: "pc", Type: "pros-cons", Pros: []models.Pro{
				{OrderedText: models.OrderedText{Content: "b", Order: ip(1)}},
				{OrderedText: models.OrderedText{Content: "a", Order: ip(0)}},
				{OrderedText: models.OrderedText{Content: "c"}},
			}},
			check: func(t *testing.T, b Block) {
				d := b.Data.(*ProsConsData)
				require.Len(t, d.Pros, 3)
				assert.Equal(t, "b", d.Pros[0].Content)
				assert.Equal(t, 1, d.Pros[0].Order)
				assert.Equal(t, 2, d.Pros[2].Order)
				assert.Empty(t, d.Cons)
				assert.Empty(t, d.Ingredients)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, NormalizeBlock(tc.raw))
		})
	}
}

func TestNormalizeBlock_ResponsiveSettings(t *testing.T) {
	settings := DefaultResponsiveSettings()
	settings.Mobile.Width = "50%"
	field, err := EncodeResponsiveSettings(settings)
	require.NoError(t, err)

	t.Run("migrates legacy custom field", func(t *testing.T) {
		b := NormalizeBlock(models.Block{ID: "i", Type: "image",
			CustomFields: []models.CustomField{{Name: field.Name, Value: field.Value}}})
		d := b.Data.(*ImageData)
		require.NotNil(t, d.Responsive)
		assert.Equal(t, settings, *d.Responsive)
	})

	t.Run("prefers typed column", func(t *testing.T) {
		typed := DefaultResponsiveSettings()
		raw, _ := json.Marshal(typed)
		b := NormalizeBlock(models.Block{ID: "i", Type: "image", Responsive: datatypes.JSON(raw),
			CustomFields: []models.CustomField{{Name: field.Name, Value: field.Value}}})
		assert.Equal(t, typed, *b.Data.(*ImageData).Responsive)
	})

	t.Run("corrupt value falls back to default", func(t *testing.T) {
		b := NormalizeBlock(models.Block{ID: "i", Type: "image",
			CustomFields: []models.CustomField{{Name: ResponsiveSettingsField, Value: "{nope"}}})
		assert.Equal(t, DefaultResponsiveSettings(), *b.Data.(*ImageData).Responsive)
	})

	t.Run("json null column means absent", func(t *testing.T) {
		b := NormalizeBlock(models.Block{ID: "i", Type: "image", Responsive: datatypes.JSON("null")})
		assert.Nil(t, b.Data.(*ImageData).Responsive)
	})
}

func rawSamples() []models.Block {
	settings, _ := EncodeResponsiveSettings(DefaultResponsiveSettings())
	return []models.Block{
		{ID: "1", Type: "paragraph", Content: sp("Hello world")},
		{ID: "2", Type: "heading", Content: sp("Intro"), Level: ip(1), Order: ip(1)},
		{ID: "3", Type: "image", ImageURL: sp("https://img/x.jpg"), ImageAlt: sp("alt"),
			CustomFields: []models.CustomField{{ID: "cf", Name: settings.Name, Value: settings.Value}}},
		{ID: "4", Type: "list", Content: sp("a\nb"), ListType: sp("ordered")},
		{ID: "5", Type: "quote"},
		{ID: "6", Type: "code", Content: sp("fmt.Println()")},
		{ID: "7", Type: "cta", CTAText: sp("Buy"), CTAButtonLink: sp("/buy")},
		{ID: "8", Type: "rating", ProductName: sp("P"), Rating: &models.Rating{ID: "r", Safety: fp(5)},
			Highlights: []models.Highlight{{OrderedText: models.OrderedText{ID: "h", Content: "good"}}}},
		{ID: "9", Type: "pros-cons", Pros: []models.Pro{{OrderedText: models.OrderedText{Content: "x", Order: ip(3)}}},
			Cons: []models.Con{{OrderedText: models.OrderedText{Content: "y"}}}},
		{ID: "10", Type: "ingredients", ProductName: sp("P"), Introduction: sp("intro"),
			IngredientItems: []models.IngredientItem{{Name: "Vitamin C", StudyYear: ip(2020), StudyURL: sp("https://study")}}},
		{ID: "11", Type: "bullet-list", BulletPoints: []models.BulletPoint{{OrderedText: models.OrderedText{Content: "p"}}}},
		{ID: "12", Type: "faq", FAQItems: []models.FAQItem{{Question: "q", Answer: "a", Order: ip(0)}, {Question: "q2", Answer: "a2", Order: ip(0)}}},
		{ID: "13", Type: "specifications", Specifications: []models.Specification{{Name: "Size", Value: "30ml"}}},
		{ID: "14", Type: "mystery", Content: sp("?")},
		{ID: "15", Type: "faq"},
	}
}

func TestNormalizeBlock_Idempotent(t *testing.T) {
	for _, raw := range rawSamples() {
		t.Run(raw.Type, func(t *testing.T) {
			once := NormalizeBlock(raw)
			twice := NormalizeBlock(once.Record())
			assert.Equal(t, once, twice)
		})
	}
}

func TestBlock_JSONRoundTrip(t *testing.T) {
	for _, raw := range rawSamples() {
		t.Run(raw.Type, func(t *testing.T) {
			b := NormalizeBlock(raw)
			encoded, err := json.Marshal(b)
			require.NoError(t, err)

			var decoded Block
			require.NoError(t, json.Unmarshal(encoded, &decoded))
			assert.Equal(t, b, decoded)
		})
	}
}

func TestBlock_FlatShapeHasEveryField(t *testing.T) {
	b := NormalizeBlock(models.Block{ID: "p", Type: "paragraph"})
	encoded, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(encoded, &m))
	for _, key := range []string{"pros", "cons", "ingredients", "faqItems", "specifications", "bulletPoints", "highlights", "ingredientItems", "customFields"} {
		assert.Equal(t, []any{}, m[key], key)
	}
	assert.Nil(t, m["rating"])
	assert.Equal(t, "", m["content"])
	assert.Equal(t, float64(0), m["order"])
}

func TestBlock_TypeSwitchToHeadingGetsDefaultLevel(t *testing.T) {
	b := NormalizeBlock(models.Block{ID: "p", Type: "paragraph", Content: sp("Zwischentitel")})
	encoded, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(encoded, &m))
	assert.Equal(t, float64(0), m["level"])
	m["type"] = "heading"
	edited, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Block
	require.NoError(t, json.Unmarshal(edited, &decoded))
	assert.Equal(t, TypeHeading, decoded.Type)
	assert.Equal(t, &HeadingData{Level: DefaultHeadingLevel}, decoded.Data)
}
