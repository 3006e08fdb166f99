package content

// Renumber vergibt fortlaufende order-Werte 0..n-1 in Slice-Reihenfolge.
func Renumber[T any](items []T, setOrder func(*T, int)) []T {
	for i := range items {
		setOrder(&items[i], i)
	}
	return items
}

// Insert fügt item an Position at ein (geklemmt auf [0, len]) und nummeriert neu.
func Insert[T any](items []T, at int, item T, setOrder func(*T, int)) []T {
	at = clamp(at, 0, len(items))
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:at]...)
	out = append(out, item)
	out = append(out, items[at:]...)
	return Renumber(out, setOrder)
}

// Remove entfernt das Element an Position at und nummeriert neu.
func Remove[T any](items []T, at int, setOrder func(*T, int)) []T {
	if at < 0 || at >= len(items) {
		return Renumber(append([]T(nil), items...), setOrder)
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:at]...)
	out = append(out, items[at+1:]...)
	return Renumber(out, setOrder)
}

// Move verschiebt das Element von Position from nach to und nummeriert neu.
func Move[T any](items []T, from, to int, setOrder func(*T, int)) []T {
	out := append([]T(nil), items...)
	if from < 0 || from >= len(out) {
		return Renumber(out, setOrder)
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	to = clamp(to, 0, len(out))
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return Renumber(out, setOrder)
}

func setSectionOrder(s *Section, i int) { s.Order = i }
func setBlockOrder(b *Block, i int)     { b.Order = i }

// InsertSection, RemoveSection und MoveSection halten die Section-Reihenfolge lückenlos.
func InsertSection(sections []Section, at int, s Section) []Section {
	return Insert(sections, at, s, setSectionOrder)
}

func RemoveSection(sections []Section, at int) []Section {
	return Remove(sections, at, setSectionOrder)
}

func MoveSection(sections []Section, from, to int) []Section {
	return Move(sections, from, to, setSectionOrder)
}

func InsertBlock(blocks []Block, at int, b Block) []Block {
	return Insert(blocks, at, b, setBlockOrder)
}

func RemoveBlock(blocks []Block, at int) []Block {
	return Remove(blocks, at, setBlockOrder)
}

func MoveBlock(blocks []Block, from, to int) []Block {
	return Move(blocks, from, to, setBlockOrder)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
