package plot

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscatter/internal/dataset"
	"bookscatter/internal/palette"
	"bookscatter/internal/reconcile"
)

var (
	fantasy = dataset.Record{ID: "f", Genre: "Fantasy", X: 0, Y: 0}
	western = dataset.Record{ID: "w", Genre: "Western", X: 10, Y: 10}
)

func testOptions() Options {
	o := DefaultOptions()
	o.WidthFraction, o.HeightFraction = 1, 1
	o.Colors = palette.New([]string{"Fantasy", "Western"}, palette.Set3, "")
	return o
}

// newLoaded returns a 400x300 controller with both books loaded and settled.
func newLoaded(t *testing.T, recs ...dataset.Record) *Controller {
	t.Helper()
	if len(recs) == 0 {
		recs = []dataset.Record{fantasy, western}
	}
	c := New(testOptions(), zerolog.Nop())
	c.Dispatch(Resize{Width: 400, Height: 300})
	c.Dispatch(DataLoaded{Data: dataset.Data{Path: "books.json", Records: recs}})
	settle(c)
	return c
}

func settle(c *Controller) {
	c.Dispatch(Frame{DT: 10 * time.Second})
}

func mark(t *testing.T, c *Controller, key string) reconcile.Mark {
	t.Helper()
	for _, m := range c.Marks() {
		if m.Key == key {
			return m
		}
	}
	require.FailNow(t, "no mark", key)
	return reconcile.Mark{}
}

func TestController_LoadRendersAll(t *testing.T) {
	c := newLoaded(t)
	st := c.State()
	assert.True(t, st.Loaded)
	assert.Equal(t, []string{"Fantasy", "Western"}, st.Genres)
	assert.True(t, st.Selection.IsAll())
	require.Len(t, c.Marks(), 2)
	assert.Equal(t, 2, c.Visible())

	f := mark(t, c, "f")
	assert.InDelta(t, 200, f.CX, 1e-9)
	assert.InDelta(t, 150, f.CY, 1e-9)
	w := mark(t, c, "w")
	assert.InDelta(t, 209.5, w.CX, 1e-9)
	assert.InDelta(t, 143, w.CY, 1e-9)

	assert.Equal(t, lipgloss.Color("#8dd3c7"), c.ColorOf("Fantasy"))
	assert.Equal(t, lipgloss.Color("#ffffb3"), c.ColorOf("Western"))
	c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Western")})
	assert.Equal(t, lipgloss.Color("#8dd3c7"), c.ColorOf("Fantasy"))
}

func TestController_SelectGenreExitsOthers(t *testing.T) {
	c := newLoaded(t)
	eff := c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Fantasy")})
	assert.True(t, eff.Animate)

	assert.Equal(t, reconcile.Exiting, mark(t, c, "w").Phase())
	assert.Equal(t, reconcile.Updating, mark(t, c, "f").Phase())
	assert.Equal(t, 1, c.Visible())

	settle(c)
	require.Len(t, c.Marks(), 1)
	assert.Equal(t, "f", c.Marks()[0].Key)
}

func TestController_ReselectAllReenters(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Fantasy")})
	settle(c)

	c.Dispatch(SelectionChanged{Selection: dataset.SelectAll()})
	w := mark(t, c, "w")
	assert.Equal(t, reconcile.Entering, w.Phase())
	assert.InDelta(t, 0, w.CX, 1e-9)
	assert.Equal(t, reconcile.Updating, mark(t, c, "f").Phase())

	settle(c)
	assert.InDelta(t, 209.5, mark(t, c, "w").CX, 1e-9)
}

func TestController_ZoomRepositions(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(ZoomTo{K: 2, X: 200, Y: 150})

	tr := c.State().Transform
	assert.InDelta(t, 2, tr.K, 1e-9)
	require.Len(t, c.Marks(), 2)
	f := mark(t, c, "f")
	assert.InDelta(t, 200, f.CX, 1e-9)
	assert.InDelta(t, 150, f.CY, 1e-9)
	w := mark(t, c, "w")
	assert.InDelta(t, 219, w.CX, 1e-9)
	assert.InDelta(t, 136, w.CY, 1e-9)
	assert.Equal(t, reconcile.Idle, w.Phase())

	x, y := c.Mappers()
	assert.InDelta(t, w.CX, x.Map(western.X), 1e-9)
	assert.InDelta(t, w.CY, y.Map(western.Y), 1e-9)
}

func TestController_ZoomClamps(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(ZoomTo{K: 10, X: 200, Y: 150})
	assert.InDelta(t, 5, c.State().Transform.K, 1e-9)

	c.Dispatch(ZoomBy{Factor: 0.01, X: 200, Y: 150})
	assert.InDelta(t, 0.5, c.State().Transform.K, 1e-9)

	c.Dispatch(ResetView{})
	assert.InDelta(t, 1, c.State().Transform.K, 1e-9)
	assert.InDelta(t, 200, mark(t, c, "f").CX, 1e-9)
}

func TestController_PanMovesMarks(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(PanBy{DX: 20, DY: -10})
	f := mark(t, c, "f")
	assert.InDelta(t, 220, f.CX, 1e-9)
	assert.InDelta(t, 140, f.CY, 1e-9)
	require.NotEmpty(t, c.Axes().X)
}

func TestController_VisibleMatchesSelection(t *testing.T) {
	recs := []dataset.Record{
		fantasy, western,
		{ID: "h", Genre: "Horror", X: -50, Y: 20},
		{ID: "f2", Genre: "Fantasy", X: 40, Y: -40},
	}
	c := newLoaded(t, recs...)
	for _, sel := range []dataset.Selection{
		dataset.SelectGenre("Fantasy"),
		dataset.SelectGenre("Horror"),
		dataset.SelectAll(),
		dataset.SelectGenre("Romance"),
		dataset.SelectGenre("Fantasy"),
	} {
		c.Dispatch(SelectionChanged{Selection: sel})
		var want []string
		for _, r := range dataset.Filter(recs, sel) {
			want = append(want, r.Key())
		}
		var got []string
		for _, m := range c.Marks() {
			if m.Live() {
				got = append(got, m.Key)
			}
		}
		assert.ElementsMatch(t, want, got, sel.String())
		c.Dispatch(Frame{DT: 100 * time.Millisecond})
	}
}

func TestController_ReselectIsIdempotent(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(SelectionChanged{Selection: dataset.SelectAll()})
	for _, m := range c.Marks() {
		assert.Contains(t, []reconcile.Phase{reconcile.Updating, reconcile.Idle}, m.Phase())
	}
	assert.Equal(t, 2, c.Visible())
}

func TestController_Tooltip(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Fantasy")})
	settle(c)
	c.Dispatch(ZoomTo{K: 2, X: 200, Y: 150})
	before := c.State()
	marks := c.Marks()

	c.Dispatch(PointerHover{Key: "f", PageX: 3, PageY: 4})
	tip := c.Tooltip()
	require.True(t, tip.Visible)
	assert.Equal(t, "Fantasy", tip.Record.Genre)
	assert.Equal(t, 3, tip.PageX)

	c.Dispatch(PointerMove{PageX: 7, PageY: 8})
	assert.Equal(t, 7, c.Tooltip().PageX)
	assert.Equal(t, 8, c.Tooltip().PageY)

	c.Dispatch(PointerLeave{})
	assert.False(t, c.Tooltip().Visible)

	c.Dispatch(PointerMove{PageX: 1, PageY: 1})
	assert.False(t, c.Tooltip().Visible)

	c.Dispatch(PointerHover{Key: "nope"})
	assert.False(t, c.Tooltip().Visible)

	after := c.State()
	assert.Equal(t, before.Selection, after.Selection)
	assert.Equal(t, before.Transform, after.Transform)
	assert.Equal(t, marks, c.Marks())
}

func TestController_SelectBlankGenre(t *testing.T) {
	c := newLoaded(t, fantasy, dataset.Record{ID: "b", X: 5, Y: 5})
	assert.Equal(t, []string{"Fantasy", ""}, c.State().Genres)

	c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("")})
	settle(c)
	assert.False(t, c.State().Selection.IsAll())
	assert.Equal(t, 1, c.Visible())
	require.Len(t, c.Marks(), 1)
	assert.Equal(t, "b", c.Marks()[0].Key)
}

func TestController_TooltipClearedWhenMarkLeaves(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(PointerHover{Key: "w"})
	c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Fantasy")})
	assert.True(t, c.Tooltip().Visible)

	c.Dispatch(PointerHover{Key: "w"})
	settle(c)
	assert.False(t, c.Tooltip().Visible)
}

func TestController_HitTest(t *testing.T) {
	c := newLoaded(t)
	m, ok := c.HitTest(202, 151, 0)
	require.True(t, ok)
	assert.Equal(t, "f", m.Key)

	m, ok = c.HitTest(208, 144, 0)
	require.True(t, ok)
	assert.Equal(t, "w", m.Key)

	_, ok = c.HitTest(50, 50, 0)
	assert.False(t, ok)
	_, ok = c.HitTest(50, 50, 200)
	assert.True(t, ok)
}

func TestController_ResizeRepositions(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(Resize{Width: 200, Height: 100})
	w, h := c.Canvas()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
	f := mark(t, c, "f")
	assert.InDelta(t, 100, f.CX, 1e-9)
	assert.InDelta(t, 50, f.CY, 1e-9)
}

func TestController_ExtentDomain(t *testing.T) {
	o := testOptions()
	o.Domain = ExtentDomain
	c := New(o, zerolog.Nop())
	c.Dispatch(Resize{Width: 400, Height: 300})
	c.Dispatch(DataLoaded{Data: dataset.Data{Records: []dataset.Record{fantasy, western}}})
	settle(c)

	f := mark(t, c, "f")
	assert.InDelta(t, o.Margin.Left, f.CX, 1e-9)
	assert.InDelta(t, 300-o.Margin.Bottom, f.CY, 1e-9)
	w := mark(t, c, "w")
	assert.InDelta(t, 400-o.Margin.Right, w.CX, 1e-9)
	assert.InDelta(t, o.Margin.Top, w.CY, 1e-9)
}

func TestController_LoadOnce(t *testing.T) {
	c := newLoaded(t)
	c.Dispatch(DataLoaded{Data: dataset.Data{Path: "other.json", Records: []dataset.Record{{ID: "z", Genre: "Horror"}}}})
	assert.Equal(t, "books.json", c.State().Source)
	assert.Len(t, c.Marks(), 2)

	c.Dispatch(LoadFailed{Err: errors.New("late")})
	assert.NoError(t, c.State().Err)
}

func TestController_BeforeLoad(t *testing.T) {
	c := New(testOptions(), zerolog.Nop())
	eff := c.Dispatch(SelectionChanged{Selection: dataset.SelectGenre("Fantasy")})
	assert.False(t, eff.Animate)
	assert.True(t, c.State().Selection.IsAll())
	assert.Nil(t, c.Marks())

	c.Dispatch(ZoomTo{K: 2})
	c.Dispatch(Frame{DT: time.Second})
	_, ok := c.HitTest(0, 0, 10)
	assert.False(t, ok)

	err := errors.New("boom")
	c.Dispatch(LoadFailed{Err: err})
	assert.ErrorIs(t, c.State().Err, err)
	assert.False(t, c.State().Loaded)
}
