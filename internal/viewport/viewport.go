// Package viewport tracks the pan/zoom transform of the plot and derives the
// rescaled axis mappers and tick positions from it.
package viewport

import (
	"math"

	"github.com/rs/zerolog"

	"bookscatter/internal/scale"
)

// Rect is an axis-aligned canvas rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Grow returns r expanded by pad on every side.
func (r Rect) Grow(pad float64) Rect {
	return Rect{X0: r.X0 - pad, Y0: r.Y0 - pad, X1: r.X1 + pad, Y1: r.Y1 + pad}
}

// Config bounds the transform.
type Config struct {
	ScaleMin, ScaleMax float64
	// TranslatePad grows the canvas extent into the pan limit.
	TranslatePad float64
	// Ticks is the maximum number of ticks per axis.
	Ticks int
}

// DefaultConfig clamps zoom to [0.5, 5].
func DefaultConfig() Config {
	return Config{ScaleMin: 0.5, ScaleMax: 5, TranslatePad: 100, Ticks: 10}
}

// Controller owns the current transform. Every mutation clamps; none fails.
type Controller struct {
	cfg       Config
	extent    Rect
	translate Rect
	t         scale.Transform
	log       zerolog.Logger
}

// New returns a controller for a w by h canvas at the identity transform.
func New(cfg Config, w, h float64, log zerolog.Logger) *Controller {
	if cfg.ScaleMin <= 0 {
		cfg.ScaleMin = DefaultConfig().ScaleMin
	}
	if cfg.ScaleMax < cfg.ScaleMin {
		cfg.ScaleMax = cfg.ScaleMin
	}
	c := &Controller{cfg: cfg, t: scale.Identity, log: log}
	c.Resize(w, h)
	return c
}

// Resize updates the canvas extent and re-applies the pan limits.
func (c *Controller) Resize(w, h float64) bool {
	c.extent = Rect{X1: math.Max(w, 0), Y1: math.Max(h, 0)}
	c.translate = c.extent.Grow(c.cfg.TranslatePad)
	return c.apply(c.t)
}

// Transform returns the effective transform.
func (c *Controller) Transform() scale.Transform { return c.t }

// Extent returns the canvas rectangle.
func (c *Controller) Extent() Rect { return c.extent }

// Set replaces the transform. The scale is clamped into the configured range
// and the translation is constrained to the pan limits. Non-finite or
// non-positive requests are ignored. It reports whether the effective
// transform changed.
func (c *Controller) Set(t scale.Transform) bool {
	if !finite(t.K) || !finite(t.X) || !finite(t.Y) || t.K <= 0 {
		c.log.Debug().Stringer("requested", t).Msg("ignoring invalid transform")
		return false
	}
	t.K = c.clampScale(t.K)
	return c.apply(t)
}

// ZoomTo sets the scale to k while keeping canvas point (px, py) fixed.
func (c *Controller) ZoomTo(k, px, py float64) bool {
	if !finite(k) || k <= 0 || !finite(px) || !finite(py) {
		return false
	}
	k = c.clampScale(k)
	ix, iy := c.t.InvertX(px), c.t.InvertY(py)
	return c.apply(scale.Transform{K: k, X: px - ix*k, Y: py - iy*k})
}

// ZoomBy multiplies the scale by factor about (px, py).
func (c *Controller) ZoomBy(factor, px, py float64) bool {
	return c.ZoomTo(c.t.K*factor, px, py)
}

// PanBy moves the view by (dx, dy) canvas units.
func (c *Controller) PanBy(dx, dy float64) bool {
	if !finite(dx) || !finite(dy) {
		return false
	}
	return c.apply(scale.Transform{K: c.t.K, X: c.t.X + dx, Y: c.t.Y + dy})
}

// Reset returns to the identity transform.
func (c *Controller) Reset() bool {
	return c.apply(scale.Identity)
}

func (c *Controller) clampScale(k float64) float64 {
	return math.Max(c.cfg.ScaleMin, math.Min(c.cfg.ScaleMax, k))
}

func (c *Controller) apply(t scale.Transform) bool {
	t = c.constrain(t)
	if t == c.t {
		return false
	}
	c.t = t
	return true
}

// constrain shifts t so the visible extent stays inside the pan limits,
// centring it when the view is wider than the limits.
func (c *Controller) constrain(t scale.Transform) scale.Transform {
	dx0 := t.InvertX(c.extent.X0) - c.translate.X0
	dx1 := t.InvertX(c.extent.X1) - c.translate.X1
	dy0 := t.InvertY(c.extent.Y0) - c.translate.Y0
	dy1 := t.InvertY(c.extent.Y1) - c.translate.Y1
	return t.Translate(fit(dx0, dx1), fit(dy0, dy1))
}

func fit(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if v := math.Min(0, d0); v != 0 {
		return v
	}
	return math.Max(0, d1)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
