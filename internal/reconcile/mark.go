package reconcile

import "bookscatter/internal/dataset"

// Phase is the transition a mark is currently in.
type Phase int

const (
	Idle Phase = iota
	Entering
	Updating
	Exiting
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Updating:
		return "updating"
	case Exiting:
		return "exiting"
	}
	return "idle"
}

// Mark is the on-screen proxy of one visible record. CX and CY are canvas
// coordinates, R the radius in canvas units and Opacity in [0, 1].
type Mark struct {
	Key     string
	Record  dataset.Record
	CX, CY  float64
	R       float64
	Opacity float64

	progress float64
	exiting  bool
	x        *tween
	pulse    []*tween
	fade     *tween
}

// Phase reports the mark's active transition. Exiting wins over the others.
func (m Mark) Phase() Phase {
	switch {
	case m.exiting:
		return Exiting
	case m.x != nil:
		return Entering
	case len(m.pulse) > 0 || m.fade != nil:
		return Updating
	}
	return Idle
}

// Live reports whether the mark still belongs to the visible set.
func (m Mark) Live() bool { return !m.exiting }

func (m *Mark) animating() bool {
	return m.x != nil || len(m.pulse) > 0 || m.fade != nil
}
