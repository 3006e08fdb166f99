package content

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-hand/models"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func samplePayload() ArticlePayload {
	return ArticlePayload{
		Title:  "  Best Vitamin C Serum!!  ",
		UserID: "user-1",
		Sections: []SectionPayload{
			{ID: "client-s2", Title: "Second", Order: ip(5), Blocks: []models.Block{
				{ID: "client-b", Type: "paragraph", Content: sp("later words")},
			}},
			{ID: "client-s1", Title: "First", Order: ip(2), Blocks: []models.Block{
				{ID: "x", Type: "paragraph", Content: sp("two"), Order: ip(9)},
				{ID: "y", Type: "heading", Content: sp("Intro"), Order: ip(1)},
				{ID: "z", Type: "faq", Order: ip(4), FAQItems: []models.FAQItem{
					{ID: "client-faq", Question: "b", Order: ip(7)},
					{ID: "client-faq2", Question: "a", Order: ip(3)},
				}},
			}},
			{Title: "Empty", Order: ip(9)},
		},
	}
}

func TestDecomposer_Article(t *testing.T) {
	d := NewDecomposer(nil, sequentialIDs())
	a := d.Article(samplePayload(), "", "best-vitamin-c-serum")

	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "Best Vitamin C Serum!!", a.Title)
	assert.Equal(t, "best-vitamin-c-serum", a.Slug)
	assert.Equal(t, 1, a.Version)
	assert.Equal(t, 3, a.WordCount)
	assert.Equal(t, 1, a.ReadingTime)

	require.Len(t, a.Sections, 3)
	titles := []string{a.Sections[0].Title, a.Sections[1].Title, a.Sections[2].Title}
	assert.Equal(t, []string{"First", "Second", "Empty"}, titles)

	for i, s := range a.Sections {
		assert.Equal(t, i, *s.Order, "section order contiguous")
		assert.Equal(t, a.ID, s.ArticleID)
		assert.NotContains(t, s.ID, "client")
		for j, b := range s.Blocks {
			assert.Equal(t, j, *b.Order, "block order contiguous")
			assert.Equal(t, s.ID, b.SectionID)
		}
	}
	assert.Empty(t, a.Sections[2].Blocks)

	first := a.Sections[0].Blocks
	require.Len(t, first, 3)
	assert.Equal(t, "heading", first[0].Type)
	assert.Equal(t, "faq", first[1].Type)
	assert.Equal(t, "paragraph", first[2].Type)

	faq := first[1]
	require.Len(t, faq.FAQItems, 2)
	assert.Equal(t, "a", faq.FAQItems[0].Question)
	for i, item := range faq.FAQItems {
		assert.Equal(t, i, *item.Order)
		assert.Equal(t, faq.ID, item.BlockID)
		assert.NotContains(t, item.ID, "client")
		assert.NotEmpty(t, item.ID)
	}
}

func TestDecomposer_StampsEveryChild(t *testing.T) {
	d := NewDecomposer(nil, sequentialIDs())
	raw := models.Block{
		ID: "client", Type: "rating",
		Rating:       &models.Rating{ID: "client-rating", Safety: fp(4)},
		Highlights:   []models.Highlight{{OrderedText: models.OrderedText{ID: "client-h", Content: "h"}}},
		CustomFields: []models.CustomField{{ID: "client-cf", Name: "section", Value: "overview"}},
	}

	rec := d.Block(raw, "sec-1", 4)

	assert.Equal(t, "sec-1", rec.SectionID)
	assert.Equal(t, 4, *rec.Order)
	assert.NotEqual(t, "client", rec.ID)
	require.NotNil(t, rec.Rating)
	assert.Equal(t, rec.ID, rec.Rating.BlockID)
	assert.NotEqual(t, "client-rating", rec.Rating.ID)
	require.Len(t, rec.Highlights, 1)
	assert.Equal(t, rec.ID, rec.Highlights[0].BlockID)
	require.Len(t, rec.CustomFields, 1)
	assert.Equal(t, rec.ID, rec.CustomFields[0].BlockID)
	assert.NotEqual(t, "client-cf", rec.CustomFields[0].ID)
}

func TestDecomposer_MigratesResponsiveSettings(t *testing.T) {
	field, err := EncodeResponsiveSettings(DefaultResponsiveSettings())
	require.NoError(t, err)
	d := NewDecomposer(nil, sequentialIDs())

	rec := d.Block(models.Block{Type: "image", CustomFields: []models.CustomField{{Name: field.Name, Value: field.Value}}}, "s", 0)

	assert.NotEmpty(t, rec.Responsive)
	assert.Equal(t, DefaultResponsiveSettings(), *NormalizeBlock(rec).Data.(*ImageData).Responsive)
}

func TestDecomposer_StructurallyStable(t *testing.T) {
	a := NewDecomposer(nil, sequentialIDs()).Article(samplePayload(), "", "s")
	b := NewDecomposer(nil, func() string { return "other" }).Article(samplePayload(), "", "s")

	require.Len(t, b.Sections, len(a.Sections))
	for i := range a.Sections {
		assert.Equal(t, a.Sections[i].Title, b.Sections[i].Title)
		assert.Equal(t, len(a.Sections[i].Blocks), len(b.Sections[i].Blocks))
	}
}
