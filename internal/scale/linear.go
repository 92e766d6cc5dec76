// Package scale maps data-space values to canvas coordinates and composes
// those mappings with a pan/zoom transform.
package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
)

// Mapper maps a data value to a canvas coordinate.
type Mapper interface {
	Map(v float64) float64
}

// Linear is a linear domain to range mapping for one axis.
type Linear struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewLinear returns the mapping of [d0, d1] onto [r0, r1]. Either interval
// may be reversed.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{DomainMin: d0, DomainMax: d1, RangeMin: r0, RangeMax: r1}
}

func (l Linear) unit() mscale.Linear {
	return mscale.Linear{Min: l.DomainMin, Max: l.DomainMax, Base: 10}
}

// Degenerate reports whether the domain has zero width.
func (l Linear) Degenerate() bool { return l.DomainMin == l.DomainMax }

// Map interpolates v into the range. A zero-width domain maps every value to
// the middle of the range.
func (l Linear) Map(v float64) float64 {
	if l.Degenerate() {
		return (l.RangeMin + l.RangeMax) / 2
	}
	s := l.unit()
	return l.RangeMin + s.Map(v)*(l.RangeMax-l.RangeMin)
}

// Invert maps a range coordinate back into the domain. A zero-width range
// inverts to the middle of the domain.
func (l Linear) Invert(px float64) float64 {
	if l.RangeMin == l.RangeMax {
		return (l.DomainMin + l.DomainMax) / 2
	}
	s := l.unit()
	return s.Unmap((px - l.RangeMin) / (l.RangeMax - l.RangeMin))
}

// WithRange returns a copy with a new output range.
func (l Linear) WithRange(r0, r1 float64) Linear {
	l.RangeMin, l.RangeMax = r0, r1
	return l
}

// Ticks returns at most n evenly spaced round values within the domain, in
// increasing order.
func (l Linear) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	lo, hi := math.Min(l.DomainMin, l.DomainMax), math.Max(l.DomainMin, l.DomainMax)
	if lo == hi {
		return []float64{lo}
	}
	s := mscale.Linear{Min: lo, Max: hi, Base: 10}
	major, _ := s.Ticks(mscale.TickOptions{Max: n})
	eps := (hi - lo) * 1e-9
	out := major[:0:0]
	for _, v := range major {
		if v >= lo-eps && v <= hi+eps {
			out = append(out, v)
		}
	}
	return out
}
