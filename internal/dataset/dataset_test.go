package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKey(t *testing.T) {
	assert.Equal(t, "b1", Record{ID: "b1", Genre: "Humor", X: 1, Y: 2}.Key())
	assert.Equal(t, "id_Fantasy_0_0", Record{Genre: "Fantasy"}.Key())
	assert.Equal(t, "id_Western_10.5_-3", Record{Genre: "Western", X: -3, Y: 10.5}.Key())
}

func TestClassifyGenre(t *testing.T) {
	tests := []struct {
		subjects string
		want     string
	}{
		{"{'Science fiction', 'Fantasy'}", "Science Fiction"},
		{"{'Fantasy', 'Juvenile fiction'}", "Fantasy Fiction"},
		{"{'Juvenile fiction'}", "Young Adult Fiction"},
		{"{'Detective and Mystery fiction'}", "Mystery Fiction"},
		{"{'Historical fiction', 'Humor'}", "Historical Fiction"},
		{"{'Humor', 'Western stories'}", "Humor"},
		{"{'Western stories'}", "Western Fiction"},
		{"{'Adventure stories'}", "Adventure Fiction"},
		{"{'Short stories'}", "Short Stories"},
		{"{'Love stories'}", "General Fiction"},
		{"", "General Fiction"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyGenre(tt.subjects), tt.subjects)
	}
}

func TestFilter(t *testing.T) {
	recs := []Record{
		{ID: "1", Genre: "Fantasy"},
		{ID: "2", Genre: "Western"},
		{ID: "3", Genre: "Fantasy"},
	}

	assert.Equal(t, recs, Filter(recs, SelectAll()))
	assert.Equal(t, recs, Filter(recs, SelectGenre(AllGenres)))
	assert.Equal(t, []Record{recs[0], recs[2]}, Filter(recs, SelectGenre("Fantasy")))
	assert.Empty(t, Filter(recs, SelectGenre("Humor")))
	assert.Empty(t, Filter(nil, SelectAll()))
}

func TestSelection(t *testing.T) {
	assert.True(t, SelectAll().IsAll())
	assert.Equal(t, AllGenres, SelectAll().Genre())
	assert.Equal(t, SelectAll(), Selection{})

	blank := SelectGenre("")
	assert.False(t, blank.IsAll())
	assert.True(t, blank.Match(Record{}))
	assert.False(t, blank.Match(Record{Genre: "Humor"}))
	assert.Equal(t, []Record{{ID: "b"}}, Filter([]Record{{ID: "a", Genre: "Humor"}, {ID: "b"}}, blank))
	s := SelectGenre("Humor")
	assert.False(t, s.IsAll())
	assert.Equal(t, "Humor", s.String())
	assert.True(t, s.Match(Record{Genre: "Humor"}))
	assert.False(t, s.Match(Record{Genre: "humor"}))
}

func TestGenres(t *testing.T) {
	recs := []Record{{Genre: "B"}, {Genre: "A"}, {Genre: "B"}, {Genre: "C"}}
	assert.Equal(t, []string{"B", "A", "C"}, Genres(recs))
	assert.Nil(t, Genres(nil))
}

func TestComputeExtent(t *testing.T) {
	_, ok := ComputeExtent(nil)
	assert.False(t, ok)

	e, ok := ComputeExtent([]Record{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 0, Y: 0}})
	assert.True(t, ok)
	assert.Equal(t, Extent{MinX: -2, MinY: -1, MaxX: 3, MaxY: 4}, e)
}
