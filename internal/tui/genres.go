package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"bookscatter/internal/dataset"
	"bookscatter/internal/plot"
)

type genreItem struct {
	name  string
	count int
}

func (g genreItem) Title() string       { return g.name }
func (g genreItem) Description() string { return fmt.Sprintf("%d books", g.count) }
func (g genreItem) FilterValue() string { return g.name }

// genreChoices returns the selectable genres followed by the wildcard.
func (m Model) genreChoices() []string {
	genres := m.ctrl.State().Genres
	return append(genres[:len(genres):len(genres)], dataset.AllGenres)
}

// refreshGenres fills the sidebar from the loaded records.
func (m *Model) refreshGenres() {
	st := m.ctrl.State()
	counts := make(map[string]int, len(st.Genres))
	for _, r := range st.Records {
		counts[r.Genre]++
	}
	items := make([]list.Item, 0, len(st.Genres)+1)
	for _, g := range st.Genres {
		items = append(items, genreItem{name: g, count: counts[g]})
	}
	items = append(items, genreItem{name: dataset.AllGenres, count: len(st.Records)})
	m.l.SetItems(items)
	m.syncList()
}

// syncList moves the sidebar cursor to the current selection.
func (m *Model) syncList() {
	cur := m.ctrl.State().Selection.Genre()
	for i, it := range m.l.Items() {
		if it.(genreItem).name == cur {
			m.l.Select(i)
			return
		}
	}
}

// selectGenre applies a genre filter and reports the result in the status line.
func (m *Model) selectGenre(name string) tea.Cmd {
	if !m.ctrl.State().Loaded {
		m.status = "no data loaded"
		return nil
	}
	sel := dataset.SelectGenre(name)
	eff := m.ctrl.Dispatch(plot.SelectionChanged{Selection: sel})
	m.syncList()
	m.status = fmt.Sprintf("genre: %s  %d books", sel, m.ctrl.Visible())
	return m.animate(eff)
}

// cycleGenre steps the selection by d through the genre choices.
func (m *Model) cycleGenre(d int) tea.Cmd {
	choices := m.genreChoices()
	cur := m.ctrl.State().Selection.Genre()
	i := 0
	for j, g := range choices {
		if g == cur {
			i = j
			break
		}
	}
	n := len(choices)
	return m.selectGenre(choices[((i+d)%n+n)%n])
}
