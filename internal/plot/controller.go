// Package plot holds the scatterplot's application state and the single
// controller every UI event goes through.
package plot

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"bookscatter/internal/dataset"
	"bookscatter/internal/reconcile"
	"bookscatter/internal/scale"
	"bookscatter/internal/viewport"
)

// Controller owns the State, the marks and the viewport.
type Controller struct {
	opts Options
	log  zerolog.Logger

	state   State
	tooltip Tooltip

	width, height float64
	domX, domY    [2]float64
	baseX, baseY  scale.Linear

	view  *viewport.Controller
	marks *reconcile.Reconciler
	axes  viewport.Axes
}

// New returns a controller waiting for data.
func New(opts Options, log zerolog.Logger) *Controller {
	if opts.Colors == nil {
		opts.Colors = DefaultOptions().Colors
	}
	c := &Controller{
		opts:  opts,
		log:   log,
		state: State{Selection: dataset.SelectAll(), Transform: scale.Identity},
	}
	c.view = viewport.New(opts.Viewport, 0, 0, log)
	return c
}

// Dispatch applies one event.
func (c *Controller) Dispatch(ev Event) Effect {
	switch ev := ev.(type) {
	case DataLoaded:
		c.init(ev.Data)
	case LoadFailed:
		if !c.state.Loaded {
			c.state.Err = ev.Err
			c.log.Error().Err(ev.Err).Msg("data load failed")
		}
	case SelectionChanged:
		if !c.ready("selection change") {
			break
		}
		c.state.Selection = ev.Selection
		c.log.Debug().Stringer("selection", ev.Selection).Msg("selection changed")
		c.reconcile()
	case PointerHover:
		if m, ok := c.liveMark(ev.Key); ok {
			c.tooltip = Tooltip{Visible: true, Key: m.Key, Record: m.Record, PageX: ev.PageX, PageY: ev.PageY}
		}
	case PointerMove:
		if c.tooltip.Visible {
			c.tooltip.PageX, c.tooltip.PageY = ev.PageX, ev.PageY
		}
	case PointerLeave:
		c.tooltip = Tooltip{}
	case ZoomBy:
		c.transformed(c.view.ZoomBy(ev.Factor, ev.X, ev.Y))
	case ZoomTo:
		c.transformed(c.view.ZoomTo(ev.K, ev.X, ev.Y))
	case PanBy:
		c.transformed(c.view.PanBy(ev.DX, ev.DY))
	case ResetView:
		c.transformed(c.view.Reset())
	case Frame:
		if c.marks != nil {
			c.marks.Advance(ev.DT)
			if c.tooltip.Visible {
				if _, ok := c.marks.Get(c.tooltip.Key); !ok {
					c.tooltip = Tooltip{}
				}
			}
		}
	case Resize:
		c.resize(ev.Width, ev.Height)
	}
	return Effect{Animate: c.marks != nil && c.marks.Animating()}
}

func (c *Controller) ready(what string) bool {
	if c.marks == nil {
		c.log.Debug().Str("event", what).Msg("ignored before data is loaded")
		return false
	}
	return true
}

// init runs once, on the first successful load.
func (c *Controller) init(d dataset.Data) {
	if c.state.Loaded {
		c.log.Warn().Str("source", d.Path).Msg("ignoring second data load")
		return
	}
	c.state.Loaded = true
	c.state.Err = nil
	c.state.Source = d.Path
	c.state.Records = d.Records
	c.state.Duplicates = d.Duplicates
	c.state.Genres = dataset.Genres(d.Records)

	c.domX, c.domY = c.opts.DomainX, c.opts.DomainY
	if c.opts.Domain == ExtentDomain {
		if e, ok := dataset.ComputeExtent(d.Records); ok {
			c.domX = [2]float64{e.MinX, e.MaxX}
			c.domY = [2]float64{e.MinY, e.MaxY}
		} else {
			c.log.Warn().Msg("empty dataset, using the configured domain")
		}
	}
	c.baseMappers()
	c.state.Transform = c.view.Transform()

	mo := c.opts.Marks
	mo.Origin = 0
	x, y := c.view.Rescaled(c.baseX, c.baseY)
	c.marks = reconcile.New(mo, x, y, c.log)
	c.axes = c.view.Axes(c.baseX, c.baseY)

	for _, g := range c.state.Genres {
		if !c.opts.Colors.Known(g) {
			c.log.Warn().Str("genre", g).Msg("genre has no palette entry, using the unknown color")
		}
	}
	c.log.Info().
		Str("source", d.Path).
		Int("records", len(d.Records)).
		Int("duplicates", d.Duplicates).
		Int("genres", len(c.state.Genres)).
		Msg("plot initialized")
	c.reconcile()
}

func (c *Controller) reconcile() {
	c.marks.Reconcile(dataset.Filter(c.state.Records, c.state.Selection))
}

// baseMappers maps the domain onto the canvas. Fixed mode insets by the
// padding, extent mode by the margins; y grows upward.
func (c *Controller) baseMappers() {
	w, h := c.width, c.height
	var x0, x1, y0, y1 float64
	if c.opts.Domain == ExtentDomain {
		m := c.opts.Margin
		x0, x1 = m.Left, w-m.Right
		y0, y1 = h-m.Bottom, m.Top
	} else {
		p := c.opts.Padding
		x0, x1 = p, w-p
		y0, y1 = h-p, p
	}
	// keep the range the right way round on canvases smaller than the insets
	if x1 < x0 {
		x0, x1 = w/2, w/2
	}
	if y1 > y0 {
		y0, y1 = h/2, h/2
	}
	c.baseX = scale.NewLinear(c.domX[0], c.domX[1], x0, x1)
	c.baseY = scale.NewLinear(c.domY[0], c.domY[1], y0, y1)
}

func (c *Controller) resize(vw, vh float64) {
	w := math.Floor(math.Max(vw, 0) * c.opts.WidthFraction)
	h := math.Floor(math.Max(vh, 0) * c.opts.HeightFraction)
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.view.Resize(w, h)
	c.state.Transform = c.view.Transform()
	if c.marks == nil {
		return
	}
	c.baseMappers()
	c.reposition()
}

func (c *Controller) transformed(changed bool) {
	c.state.Transform = c.view.Transform()
	if !changed || c.marks == nil {
		return
	}
	c.reposition()
}

// reposition moves marks and ticks to the current transform without
// touching mark identity or transitions.
func (c *Controller) reposition() {
	c.state.Transform = c.view.Transform()
	x, y := c.view.Rescaled(c.baseX, c.baseY)
	c.marks.Reposition(x, y)
	c.axes = c.view.Axes(c.baseX, c.baseY)
}

func (c *Controller) liveMark(key string) (reconcile.Mark, bool) {
	if c.marks == nil {
		return reconcile.Mark{}, false
	}
	m, ok := c.marks.Get(key)
	if !ok || !m.Live() {
		return reconcile.Mark{}, false
	}
	return m, true
}

// HitTest returns the live mark nearest to canvas point (px, py) within its
// radius. tol widens the radius for coarse pointers.
func (c *Controller) HitTest(px, py, tol float64) (reconcile.Mark, bool) {
	if c.marks == nil {
		return reconcile.Mark{}, false
	}
	best, found := math.Inf(1), false
	var hit reconcile.Mark
	for _, m := range c.marks.Marks() {
		if !m.Live() {
			continue
		}
		d := math.Hypot(m.CX-px, m.CY-py)
		if d <= math.Max(m.R, c.marks.Radius())+tol && d < best {
			best, hit, found = d, m, true
		}
	}
	return hit, found
}

// State returns a copy of the application state.
func (c *Controller) State() State { return c.state }

// Tooltip returns the hover popup state.
func (c *Controller) Tooltip() Tooltip { return c.tooltip }

// Marks returns the marks ordered by key, or nil before the data is loaded.
func (c *Controller) Marks() []reconcile.Mark {
	if c.marks == nil {
		return nil
	}
	return c.marks.Marks()
}

// Visible returns the number of marks that are not exiting.
func (c *Controller) Visible() int {
	if c.marks == nil {
		return 0
	}
	return len(c.marks.LiveKeys())
}

// Axes returns the grid for the current transform.
func (c *Controller) Axes() viewport.Axes { return c.axes }

// Canvas returns the canvas size in canvas units.
func (c *Controller) Canvas() (w, h float64) { return c.width, c.height }

// Mappers returns the rescaled mappers marks are positioned with.
func (c *Controller) Mappers() (x, y scale.Linear) {
	return c.view.Rescaled(c.baseX, c.baseY)
}

// ColorOf resolves a genre to its display color.
func (c *Controller) ColorOf(genre string) lipgloss.Color {
	return c.opts.Colors.ColorOf(genre)
}

// Radius returns the resting mark radius.
func (c *Controller) Radius() float64 { return c.opts.Marks.Radius }
