package scale

import "fmt"

// Transform is a uniform scale followed by a translation, applied in canvas
// space: p' = p*K + (X, Y).
type Transform struct {
	K, X, Y float64
}

// Identity is the transform that changes nothing.
var Identity = Transform{K: 1}

func (t Transform) ApplyX(x float64) float64 { return x*t.K + t.X }
func (t Transform) ApplyY(y float64) float64 { return y*t.K + t.Y }

func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Translate moves the transform by (dx, dy) in untransformed units.
func (t Transform) Translate(dx, dy float64) Transform {
	return Transform{K: t.K, X: t.X + t.K*dx, Y: t.Y + t.K*dy}
}

// Scale multiplies the zoom factor, keeping the translation.
func (t Transform) Scale(k float64) Transform {
	return Transform{K: t.K * k, X: t.X, Y: t.Y}
}

// RescaleX returns a mapper with m's range whose domain is what is visible
// through t. The result satisfies RescaleX(m).Map(v) == t.ApplyX(m.Map(v)).
func (t Transform) RescaleX(m Linear) Linear {
	return NewLinear(m.Invert(t.InvertX(m.RangeMin)), m.Invert(t.InvertX(m.RangeMax)), m.RangeMin, m.RangeMax)
}

// RescaleY is RescaleX for the vertical axis.
func (t Transform) RescaleY(m Linear) Linear {
	return NewLinear(m.Invert(t.InvertY(m.RangeMin)), m.Invert(t.InvertY(m.RangeMax)), m.RangeMin, m.RangeMax)
}

func (t Transform) String() string {
	return fmt.Sprintf("translate(%.1f,%.1f) scale(%.2f)", t.X, t.Y, t.K)
}
