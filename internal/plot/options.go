package plot

import (
	"strings"

	"bookscatter/internal/config"
	"bookscatter/internal/dataset"
	"bookscatter/internal/palette"
	"bookscatter/internal/reconcile"
	"bookscatter/internal/viewport"
)

// DomainMode selects where the data-space domain comes from.
type DomainMode int

const (
	// FixedDomain uses the configured domain for both axes.
	FixedDomain DomainMode = iota
	// ExtentDomain uses the min/max of the loaded records.
	ExtentDomain
)

// Margin insets the plotted range from the canvas edge in extent mode.
type Margin struct {
	Top, Bottom, Left, Right float64
}

// Options configures a Controller.
type Options struct {
	WidthFraction  float64
	HeightFraction float64
	Margin         Margin
	Padding        float64

	Domain  DomainMode
	DomainX [2]float64
	DomainY [2]float64

	Marks    reconcile.Options
	Viewport viewport.Config
	Colors   *palette.Resolver
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{
		WidthFraction:  0.7,
		HeightFraction: 0.7,
		Margin:         Margin{Top: 20, Bottom: 60, Left: 60, Right: 40},
		Padding:        10,
		Domain:         FixedDomain,
		DomainX:        [2]float64{-200, 200},
		DomainY:        [2]float64{-200, 200},
		Marks:          reconcile.DefaultOptions(),
		Viewport:       viewport.DefaultConfig(),
		Colors:         palette.New(dataset.DefaultGenres, palette.Set3, ""),
	}
}

// FromSettings builds Options from validated settings.
func FromSettings(s config.Settings) Options {
	o := DefaultOptions()
	o.WidthFraction = s.Canvas.WidthFraction
	o.HeightFraction = s.Canvas.HeightFraction
	o.Margin = Margin(s.Canvas.Margin)
	o.Padding = s.Canvas.Padding
	if strings.EqualFold(s.Domain.Mode, "extent") {
		o.Domain = ExtentDomain
	}
	if len(s.Domain.X) == 2 {
		o.DomainX = [2]float64{s.Domain.X[0], s.Domain.X[1]}
	}
	if len(s.Domain.Y) == 2 {
		o.DomainY = [2]float64{s.Domain.Y[0], s.Domain.Y[1]}
	}
	o.Marks.Radius = s.Mark.Radius
	o.Marks.Enter = s.Transition.Enter
	o.Marks.Pulse = s.Transition.Pulse
	o.Marks.Exit = s.Transition.Exit
	o.Viewport = viewport.Config{
		ScaleMin:     s.Zoom.ScaleMin,
		ScaleMax:     s.Zoom.ScaleMax,
		TranslatePad: s.Zoom.TranslatePad,
		Ticks:        s.Axis.Ticks,
	}
	o.Colors = palette.New(s.Palette.Categories, s.Palette.Colors, s.Palette.Unknown)
	return o
}
