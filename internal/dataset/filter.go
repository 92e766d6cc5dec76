package dataset

// AllGenres is the wildcard selection label.
const AllGenres = "All"

// Selection is the current genre filter: either the wildcard or one genre.
type Selection struct {
	genre string
	one   bool
}

// SelectAll returns the wildcard selection.
func SelectAll() Selection { return Selection{} }

// SelectGenre returns a selection for one genre. The wildcard label selects
// everything.
func SelectGenre(genre string) Selection {
	if genre == AllGenres {
		return Selection{}
	}
	return Selection{genre: genre, one: true}
}

// IsAll reports whether the selection is the wildcard.
func (s Selection) IsAll() bool { return !s.one }

// Genre returns the selected genre, or AllGenres for the wildcard.
func (s Selection) Genre() string {
	if s.IsAll() {
		return AllGenres
	}
	return s.genre
}

func (s Selection) String() string { return s.Genre() }

// Match reports whether r is visible under the selection.
func (s Selection) Match(r Record) bool {
	return s.IsAll() || r.Genre == s.genre
}

// Filter returns the visible subset of records, preserving order.
func Filter(records []Record, sel Selection) []Record {
	if sel.IsAll() {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if sel.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Genres returns the distinct genres of records in first-seen order.
func Genres(records []Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		if seen[r.Genre] {
			continue
		}
		seen[r.Genre] = true
		out = append(out, r.Genre)
	}
	return out
}
