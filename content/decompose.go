package content

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"article-hand/models"
)

// IDFunc erzeugt neue, opake IDs.
type IDFunc func() string

// Decomposer zerlegt einen Editor-Payload in die verschachtelten Datensätze für die
// Persistenz. Alle IDs werden neu vergeben, Client-IDs werden verworfen, und jede
// Unterentität bekommt die ID ihres Eltern-Datensatzes.
type Decomposer struct {
	normalizer *Normalizer
	newID      IDFunc
}

func NewDecomposer(normalizer *Normalizer, newID IDFunc) *Decomposer {
	if normalizer == nil {
		normalizer = defaultNormalizer
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Decomposer{normalizer: normalizer, newID: newID}
}

// Article baut den vollständigen Artikel-Datensatz für einen einzigen verschachtelten Create.
// Ist articleID leer, wird eine neue ID vergeben.
func (d *Decomposer) Article(p ArticlePayload, articleID, slug string) models.Article {
	if articleID == "" {
		articleID = d.newID()
	}
	a := models.Article{
		ID:              articleID,
		Title:           strings.TrimSpace(p.Title),
		Slug:            slug,
		PublishDate:     p.PublishDate,
		ImageURL:        p.ImageURL,
		UserID:          strings.TrimSpace(p.UserID),
		CategoryID:      p.CategoryID,
		MetaDescription: p.MetaDescription,
		FocusKeyword:    p.FocusKeyword,
		SEOTitle:        p.SEOTitle,
		SEOScore:        p.SEOScore,
		Version:         1,
		Sections:        d.Sections(articleID, p.Sections),
	}
	stats := ComputeReadingStats(AllBlocks(d.normalizer.Sections(a.Sections)))
	a.WordCount, a.ReadingTime = stats.WordCount, stats.ReadingTime
	return a
}

// Sections zerlegt alle Sections. Die Reihenfolge folgt dem expliziten order-Wert,
// sonst der Position; danach wird lückenlos ab 0 nummeriert.
func (d *Decomposer) Sections(articleID string, payloads []SectionPayload) []models.Section {
	idx := orderedPositions(len(payloads), func(i int) *int { return payloads[i].Order })
	out := make([]models.Section, 0, len(payloads))
	for order, i := range idx {
		p := payloads[i]
		s := models.Section{
			ID:        d.newID(),
			Title:     p.Title,
			Order:     ptr(order),
			ArticleID: articleID,
		}
		s.Blocks = d.Blocks(s.ID, p.Blocks)
		out = append(out, s)
	}
	return out
}

// Blocks zerlegt die Blocks einer Section.
func (d *Decomposer) Blocks(sectionID string, raws []models.Block) []models.Block {
	idx := orderedPositions(len(raws), func(i int) *int { return raws[i].Order })
	out := make([]models.Block, 0, len(raws))
	for order, i := range idx {
		out = append(out, d.Block(raws[i], sectionID, order))
	}
	return out
}

// Block normalisiert einen rohen Block und vergibt ID, order und Verknüpfungen neu.
func (d *Decomposer) Block(raw models.Block, sectionID string, index int) models.Block {
	b := d.normalizer.Block(raw)
	b.ID = d.newID()
	b.SectionID = sectionID
	b.Order = index
	for i := range b.CustomFields {
		b.CustomFields[i].ID = d.newID()
	}
	b.Data = d.freshChildren(b.Data)
	return b.Record()
}

// freshChildren sortiert Unterlisten nach order, nummeriert sie lückenlos und vergibt neue IDs.
func (d *Decomposer) freshChildren(data BlockData) BlockData {
	switch v := data.(type) {
	case *RatingData:
		c := *v
		if v.Rating != nil {
			r := *v.Rating
			r.ID = d.newID()
			c.Rating = &r
		}
		c.Highlights = d.freshItems(v.Highlights)
		return &c
	case *ProsConsData:
		return &ProsConsData{
			Pros:        d.freshItems(v.Pros),
			Cons:        d.freshItems(v.Cons),
			Ingredients: d.freshItems(v.Ingredients),
		}
	case *IngredientsData:
		c := *v
		c.Items = sortedBy(v.Items, func(i IngredientItem) int { return i.Order })
		for i := range c.Items {
			c.Items[i].ID, c.Items[i].Order = d.newID(), i
		}
		return &c
	case *FAQData:
		items := sortedBy(v.Items, func(i FAQItem) int { return i.Order })
		for i := range items {
			items[i].ID, items[i].Order = d.newID(), i
		}
		return &FAQData{Items: items}
	case *SpecificationsData:
		items := sortedBy(v.Items, func(i Specification) int { return i.Order })
		for i := range items {
			items[i].ID, items[i].Order = d.newID(), i
		}
		return &SpecificationsData{Items: items}
	case *BulletListData:
		return &BulletListData{Points: d.freshItems(v.Points)}
	}
	return data
}

func (d *Decomposer) freshItems(items []ListItem) []ListItem {
	out := sortedItems(items)
	for i := range out {
		out[i].ID, out[i].Order = d.newID(), i
	}
	return out
}

// orderedPositions liefert die Positionen 0..n-1 stabil sortiert nach explizitem order
// (fehlend = eigene Position).
func orderedPositions(n int, explicit func(i int) *int) []int {
	type keyed struct{ key, pos int }
	keys := make([]keyed, n)
	for i := 0; i < n; i++ {
		keys[i] = keyed{key: num(explicit(i), i), pos: i}
	}
	sort.SliceStable(keys, func(a, b int) bool { return keys[a].key < keys[b].key })
	out := make([]int, n)
	for i, k := range keys {
		out[i] = k.pos
	}
	return out
}
