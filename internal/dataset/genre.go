package dataset

import "strings"

// DefaultGenres lists the genres books are bucketed into, in palette order.
var DefaultGenres = []string{
	"Science Fiction",
	"Fantasy Fiction",
	"Young Adult Fiction",
	"Historical Fiction",
	"Mystery Fiction",
	"General Fiction",
	"Short Stories",
	"Humor",
	"Western Fiction",
	"Adventure Fiction",
}

// genreRules is checked in order; the first subject fragment found decides.
var genreRules = []struct {
	fragment string
	genre    string
}{
	{"Science fiction", "Science Fiction"},
	{"Fantasy", "Fantasy Fiction"},
	{"Juvenile fiction", "Young Adult Fiction"},
	{"Mystery fiction", "Mystery Fiction"},
	{"Historical fiction", "Historical Fiction"},
	{"Humor", "Humor"},
	{"Western", "Western Fiction"},
	{"Adventure", "Adventure Fiction"},
	{"Short stories", "Short Stories"},
}

// ClassifyGenre buckets a catalogue subject string into a genre.
func ClassifyGenre(subjects string) string {
	for _, rule := range genreRules {
		if strings.Contains(subjects, rule.fragment) {
			return rule.genre
		}
	}
	return "General Fiction"
}
