package plot

import (
	"time"

	"bookscatter/internal/dataset"
)

// Event is anything the Controller reacts to. Events are dispatched one at
// a time from the UI loop.
type Event interface {
	event()
}

// DataLoaded delivers the record set. Only the first one initializes the plot.
type DataLoaded struct{ Data dataset.Data }

// LoadFailed reports that the record set could not be loaded.
type LoadFailed struct{ Err error }

// SelectionChanged sets the genre filter and triggers one reconciliation.
type SelectionChanged struct{ Selection dataset.Selection }

// PointerHover reports the pointer entering the mark with Key. PageX and
// PageY are screen coordinates used to place the tooltip.
type PointerHover struct {
	Key          string
	PageX, PageY int
}

// PointerMove reports the pointer moving within the hovered mark.
type PointerMove struct{ PageX, PageY int }

// PointerLeave reports the pointer leaving the hovered mark.
type PointerLeave struct{}

// ZoomBy multiplies the zoom about canvas point (X, Y).
type ZoomBy struct{ Factor, X, Y float64 }

// ZoomTo sets the zoom to K about canvas point (X, Y).
type ZoomTo struct{ K, X, Y float64 }

// PanBy moves the view by canvas units.
type PanBy struct{ DX, DY float64 }

// ResetView returns to the identity transform.
type ResetView struct{}

// Frame advances transitions by DT.
type Frame struct{ DT time.Duration }

// Resize reports the space available to the plot, in canvas units.
type Resize struct{ Width, Height float64 }

func (DataLoaded) event()       {}
func (LoadFailed) event()       {}
func (SelectionChanged) event() {}
func (PointerHover) event()     {}
func (PointerMove) event()      {}
func (PointerLeave) event()     {}
func (ZoomBy) event()           {}
func (ZoomTo) event()           {}
func (PanBy) event()            {}
func (ResetView) event()        {}
func (Frame) event()            {}
func (Resize) event()           {}

// Effect tells the UI loop what to do after an event.
type Effect struct {
	// Animate is true while transitions need more frames.
	Animate bool
}
