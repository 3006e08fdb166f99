package content

import (
	"math"
	"sort"
)

// Aggregation ist das Ergebnis von Aggregate.
type Aggregation struct {
	Sections    []Section
	FlatBlocks  []FlatBlock
	WordCount   int
	ReadingTime int
}

// Aggregate sortiert Sections, Blocks und Unterlisten nach order und berechnet die
// flache Block-Sicht sowie die Lesekennzahlen. Die Eingabe wird nicht verändert.
func Aggregate(sections []Section) Aggregation {
	sorted := make([]Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	agg := Aggregation{Sections: sorted, FlatBlocks: []FlatBlock{}}
	var all []Block
	for i := range sorted {
		blocks := make([]Block, len(sorted[i].Blocks))
		for j, b := range sorted[i].Blocks {
			blocks[j] = sortChildren(b)
		}
		sort.SliceStable(blocks, func(a, b int) bool { return blocks[a].Order < blocks[b].Order })
		sorted[i].Blocks = blocks

		for _, b := range blocks {
			flat := b.Flat()
			flat.SectionID = sorted[i].ID
			flat.SectionTitle = sorted[i].Title
			agg.FlatBlocks = append(agg.FlatBlocks, flat)
		}
		all = append(all, blocks...)
	}

	stats := ComputeReadingStats(all)
	agg.WordCount, agg.ReadingTime = stats.WordCount, stats.ReadingTime
	return agg
}

// ExtractByType filtert Blocks nach Typ, in Dokumentreihenfolge.
func ExtractByType(blocks []Block, t BlockType) []Block {
	out := []Block{}
	for _, b := range blocks {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

// FirstOfType liefert den ersten Block eines Singleton-Typs (z.B. rating, faq).
// Weitere Blocks desselben Typs werden ignoriert.
func FirstOfType(blocks []Block, t BlockType) (Block, bool) {
	for _, b := range blocks {
		if b.Type == t {
			return b, true
		}
	}
	return Block{}, false
}

// AllBlocks liefert die Blocks aller Sections in Dokumentreihenfolge.
func AllBlocks(sections []Section) []Block {
	var out []Block
	for _, s := range sections {
		out = append(out, s.Blocks...)
	}
	return out
}

// GetCustomFieldValue durchsucht die CustomFields aller Blocks; der erste Treffer gewinnt,
// sonst "". Der Wert kann ein eingebettetes JSON-Dokument sein.
func GetCustomFieldValue(blocks []Block, name string) string {
	for _, b := range blocks {
		if v, ok := CustomFieldValue(b.CustomFields, name); ok {
			return v
		}
	}
	return ""
}

// OverallRating mittelt alle gesetzten Teilbewertungen, gerundet auf eine Nachkommastelle.
func OverallRating(r *Rating) (float64, bool) {
	var sum float64
	var n int
	for _, s := range r.Scores() {
		if s == nil {
			continue
		}
		sum += *s
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(sum/float64(n)*10) / 10, true
}

func sortChildren(b Block) Block {
	switch d := b.Data.(type) {
	case *RatingData:
		c := *d
		c.Highlights = sortedItems(d.Highlights)
		b.Data = &c
	case *ProsConsData:
		c := ProsConsData{Pros: sortedItems(d.Pros), Cons: sortedItems(d.Cons), Ingredients: sortedItems(d.Ingredients)}
		b.Data = &c
	case *IngredientsData:
		c := *d
		c.Items = sortedBy(d.Items, func(i IngredientItem) int { return i.Order })
		b.Data = &c
	case *FAQData:
		b.Data = &FAQData{Items: sortedBy(d.Items, func(i FAQItem) int { return i.Order })}
	case *SpecificationsData:
		b.Data = &SpecificationsData{Items: sortedBy(d.Items, func(i Specification) int { return i.Order })}
	case *BulletListData:
		b.Data = &BulletListData{Points: sortedItems(d.Points)}
	}
	return b
}

func sortedItems(items []ListItem) []ListItem {
	return sortedBy(items, func(i ListItem) int { return i.Order })
}

func sortedBy[T any](items []T, order func(T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return order(out[i]) < order(out[j]) })
	return out
}
