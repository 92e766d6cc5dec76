package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscatter/internal/dataset"
	"bookscatter/internal/palette"
	"bookscatter/internal/plot"
)

var books = []dataset.Record{
	{ID: "f", Title: "The Hobbit", Author: "Tolkien", Genre: "Fantasy", BirthYear: 1892, X: 0, Y: 0},
	{ID: "w", Title: "Riders of the Purple Sage", Author: "Grey", Genre: "Western", X: 100, Y: 100},
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = update(t, m, msg)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T) Model {
	t.Helper()
	o := plot.DefaultOptions()
	o.WidthFraction, o.HeightFraction = 1, 1
	o.Colors = palette.New([]string{"Fantasy", "Western"}, palette.Set3, "")
	ctrl := plot.New(o, zerolog.Nop())
	return New(ctrl, Options{Path: "books.json", FrameInterval: time.Second, Log: zerolog.Nop()})
}

// loaded returns an 80x24 model with books loaded and all transitions done.
func loaded(t *testing.T) Model {
	t.Helper()
	m := send(t, newModel(t),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		plot.DataLoaded{Data: dataset.Data{Path: "books.json", Records: books}},
	)
	m.ctrl.Dispatch(plot.Frame{DT: 10 * time.Second})
	return m
}

func view(m Model) string { return ansi.Strip(m.View()) }

// screenOf returns the screen cell of the mark with key.
func screenOf(t *testing.T, m Model, key string) (int, int) {
	t.Helper()
	l := m.layout()
	for _, mk := range m.ctrl.Marks() {
		if mk.Key == key {
			return l.canvasX + int(mk.CX)/2, l.canvasY + int(mk.CY)/4
		}
	}
	require.FailNow(t, "no mark", key)
	return 0, 0
}

func TestView_EmptyBeforeSize(t *testing.T) {
	assert.Equal(t, "", newModel(t).View())
}

func TestView_Loading(t *testing.T) {
	m := send(t, newModel(t), tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, view(m), "loading books.json")
	assert.NotNil(t, m.Init())
}

func TestView_LoadError(t *testing.T) {
	m := send(t, newModel(t),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		plot.LoadFailed{Err: errors.New("read books.json: no such file")},
	)
	v := view(m)
	assert.Contains(t, v, "could not load data")
	assert.Contains(t, v, "no such file")
	assert.Contains(t, m.status, "load error")
}

func TestInit_LoadCmd(t *testing.T) {
	m := New(plot.New(plot.DefaultOptions(), zerolog.Nop()), Options{Path: "testdata/missing.json"})
	cmd := m.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(plot.LoadFailed)
	require.True(t, ok)
	assert.Error(t, msg.Err)

	m = New(plot.New(plot.DefaultOptions(), zerolog.Nop()), Options{})
	assert.Nil(t, m.Init())
}

func TestUpdate_Loaded(t *testing.T) {
	m := loaded(t)
	assert.Equal(t, "loaded: books.json  2 books", m.status)
	v := view(m)
	assert.Contains(t, v, "bookscatter")
	assert.Contains(t, v, "genre: All  2/2 books  zoom 1.00x")
	assert.Contains(t, v, "q/ctrl+c")
}

func TestUpdate_CycleGenres(t *testing.T) {
	m := loaded(t)
	m, cmd := update(t, m, keyRunes("g"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Fantasy", m.ctrl.State().Selection.Genre())
	assert.Equal(t, "genre: Fantasy  1 books", m.status)

	m = send(t, m, keyRunes("g"))
	assert.Equal(t, "Western", m.ctrl.State().Selection.Genre())
	m = send(t, m, keyRunes("g"))
	assert.True(t, m.ctrl.State().Selection.IsAll())
	m = send(t, m, keyRunes("G"))
	assert.Equal(t, "Western", m.ctrl.State().Selection.Genre())

	m = send(t, m, keyRunes("a"))
	assert.True(t, m.ctrl.State().Selection.IsAll())
}

func TestUpdate_FramesRunUntilSettled(t *testing.T) {
	m := loaded(t)
	m, cmd := update(t, m, keyRunes("g"))
	require.NotNil(t, cmd)
	assert.True(t, m.ticking)

	t0 := time.Now()
	m, cmd = update(t, m, frameMsg(t0))
	assert.NotNil(t, cmd)
	m, cmd = update(t, m, frameMsg(t0.Add(time.Second)))
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)
	assert.Len(t, m.ctrl.Marks(), 1)
}

func TestUpdate_SidebarApply(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.showSidebar)
	assert.Contains(t, view(m), "Genres")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Western", m.ctrl.State().Selection.Genre())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.showSidebar)
}

func TestUpdate_ZoomPanReset(t *testing.T) {
	m := loaded(t)
	m = send(t, m, keyRunes("+"))
	assert.InDelta(t, 1.2, m.ctrl.State().Transform.K, 1e-9)
	assert.Equal(t, "zoom: 1.20x", m.status)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.InDelta(t, 1.2, m.ctrl.State().Transform.K, 1e-9)

	m = send(t, m, keyRunes("0"))
	assert.Equal(t, 1.0, m.ctrl.State().Transform.K)
	assert.Equal(t, 0.0, m.ctrl.State().Transform.X)

	for i := 0; i < 20; i++ {
		m = send(t, m, keyRunes("+"))
	}
	assert.InDelta(t, 5, m.ctrl.State().Transform.K, 1e-9)
}

func TestMouse_HoverShowsTooltip(t *testing.T) {
	m := loaded(t)
	sx, sy := screenOf(t, m, "f")
	m = send(t, m, tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionMotion})
	tip := m.ctrl.Tooltip()
	require.True(t, tip.Visible)
	assert.Equal(t, "f", tip.Key)
	assert.Equal(t, "f", m.hoverKey)
	v := view(m)
	assert.Contains(t, v, "Title: The Hobbit")
	assert.Contains(t, v, "Born: 1892")

	m = send(t, m, tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionMotion})
	assert.Equal(t, sx, m.ctrl.Tooltip().PageX)

	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.ctrl.Tooltip().Visible)
	assert.Empty(t, m.hoverKey)
	assert.NotContains(t, view(m), "Title: The Hobbit")
	assert.True(t, m.ctrl.State().Selection.IsAll())
}

func TestMouse_TooltipFollowsViewChanges(t *testing.T) {
	m := loaded(t)
	sx, sy := screenOf(t, m, "f")
	m = send(t, m, tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionMotion})
	require.True(t, m.ctrl.Tooltip().Visible)

	m = send(t, m, keyRunes("l"), keyRunes("l"))
	assert.False(t, m.ctrl.Tooltip().Visible)
	assert.Empty(t, m.hoverKey)
	assert.NotContains(t, view(m), "Title: The Hobbit")

	m = send(t, m, keyRunes("0"))
	assert.True(t, m.ctrl.Tooltip().Visible)
	assert.Equal(t, "f", m.hoverKey)
	assert.Equal(t, sx, m.ctrl.Tooltip().PageX)

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	nx, _ := screenOf(t, m, "f")
	require.Greater(t, nx, sx+4)
	assert.False(t, m.ctrl.Tooltip().Visible)
	assert.Empty(t, m.hoverKey)
}

func TestMouse_WheelZoomsAboutPointer(t *testing.T) {
	m := loaded(t)
	sx, sy := screenOf(t, m, "f")
	before := m.ctrl.Marks()[0]
	m = send(t, m, tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, 1.2, m.ctrl.State().Transform.K, 1e-9)
	after := m.ctrl.Marks()[0]
	// the mark sits within a cell of the pointer, so it barely moves
	assert.InDelta(t, before.CX, after.CX, 1)
	assert.InDelta(t, before.CY, after.CY, 1)

	m = send(t, m, tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.InDelta(t, 1, m.ctrl.State().Transform.K, 1e-9)
}

func TestMouse_DragPans(t *testing.T) {
	m := loaded(t)
	l := m.layout()
	x, y := l.canvasX+5, l.canvasY+5
	m = send(t, m,
		tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: x + 3, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: x + 3, Y: y + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	tr := m.ctrl.State().Transform
	assert.Equal(t, 6.0, tr.X)
	assert.Equal(t, 4.0, tr.Y)
	assert.False(t, m.dragging)
}

func TestUpdate_HelpAndQuit(t *testing.T) {
	m := loaded(t)
	m = send(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, view(m), "pan left")

	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(4, 1)
	b.setPixel(0, 0, "")
	b.setPixel(1, 3, "")
	b.label(1, 0, "hi", "")
	b.setPixel(-1, 0, "")
	b.setPixel(100, 0, "")
	assert.Equal(t, []string{"⢁hi "}, b.toLines())

	b.setPixel(2, 0, "")
	assert.Equal(t, []string{"⢁⠁i "}, b.toLines())
}

func TestOverlay(t *testing.T) {
	assert.Equal(t, "aaaa\nbXYb", overlay("aaaa\nbbbb", "XY", 1, 1))
	assert.Equal(t, "aa  XY", overlay("aa", "XY", 4, 0))
	assert.Equal(t, "aa", overlay("aa", "XY", 0, 3))
}
