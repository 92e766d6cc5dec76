// Package reconcile keeps the set of on-screen marks in step with a filtered
// record set and animates marks as they enter, persist and leave.
package reconcile

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"bookscatter/internal/dataset"
	"bookscatter/internal/scale"
)

// Options configures mark geometry and transition timing.
type Options struct {
	// Radius is the resting mark radius in canvas units.
	Radius float64
	// PulseScale is the radius multiplier at the peak of an update pulse.
	PulseScale float64
	// Origin is the canvas x coordinate entering marks fly in from.
	Origin float64

	Enter time.Duration
	Pulse time.Duration // each half of the update pulse
	Exit  time.Duration

	Ease ease.TweenFunc
}

// DefaultOptions returns one-second enter and exit fades with a 3x pulse.
func DefaultOptions() Options {
	return Options{
		Radius:     5,
		PulseScale: 3,
		Enter:      time.Second,
		Pulse:      250 * time.Millisecond,
		Exit:       time.Second,
		Ease:       ease.InOutCubic,
	}
}

// Reconciler owns the marks. It is not safe for concurrent use; all calls
// are expected to come from the UI event loop.
type Reconciler struct {
	opts  Options
	x, y  scale.Linear
	marks map[string]*Mark
	log   zerolog.Logger
}

// New returns an empty reconciler positioning marks with x and y.
func New(opts Options, x, y scale.Linear, log zerolog.Logger) *Reconciler {
	if opts.Ease == nil {
		opts.Ease = ease.InOutCubic
	}
	if opts.PulseScale == 0 {
		opts.PulseScale = 3
	}
	return &Reconciler{
		opts:  opts,
		x:     x,
		y:     y,
		marks: map[string]*Mark{},
		log:   log,
	}
}

// Reconcile makes records the visible set. Every mark touched by the pass has
// its in-flight transitions replaced, starting from its current attributes.
func (r *Reconciler) Reconcile(records []dataset.Record) Plan {
	prev := make([]string, 0, len(r.marks))
	for k := range r.marks {
		prev = append(prev, k)
	}
	p := Diff(prev, records)
	for _, rec := range p.Enter {
		r.enter(rec)
	}
	for _, rec := range p.Update {
		r.update(rec)
	}
	for _, k := range p.Exit {
		r.exit(k)
	}
	r.log.Debug().
		Int("enter", len(p.Enter)).
		Int("update", len(p.Update)).
		Int("exit", len(p.Exit)).
		Msg("reconciled marks")
	return p
}

func (r *Reconciler) enter(rec dataset.Record) {
	m := &Mark{
		Key:     rec.Key(),
		Record:  rec,
		R:       r.opts.Radius,
		Opacity: 1,
	}
	m.x = newTween(0, 1, r.opts.Enter, r.opts.Ease)
	r.marks[m.Key] = m
	r.place(m)
}

func (r *Reconciler) update(rec dataset.Record) {
	m := r.marks[rec.Key()]
	m.Record = rec
	peak := r.opts.Radius * r.opts.PulseScale
	m.pulse = []*tween{
		newTween(m.R, peak, r.opts.Pulse, r.opts.Ease),
		newTween(peak, r.opts.Radius, r.opts.Pulse, r.opts.Ease),
	}
	if m.exiting {
		m.exiting = false
		m.fade = newTween(m.Opacity, 1, 2*r.opts.Pulse, r.opts.Ease)
	}
	if m.x != nil || m.progress < 1 {
		m.x = newTween(m.progress, 1, 2*r.opts.Pulse, r.opts.Ease)
	}
}

func (r *Reconciler) exit(key string) {
	m := r.marks[key]
	if m.exiting {
		return
	}
	m.exiting = true
	m.x = nil
	m.pulse = nil
	m.fade = newTween(m.Opacity, 0, r.opts.Exit, r.opts.Ease)
}

// place derives the canvas position of m from the current mappers.
func (r *Reconciler) place(m *Mark) {
	target := r.x.Map(m.Record.X)
	m.CX = r.opts.Origin + (target-r.opts.Origin)*m.progress
	m.CY = r.y.Map(m.Record.Y)
}

// Advance steps every transition by dt, destroys marks whose exit finished and
// reports whether anything is still animating.
func (r *Reconciler) Advance(dt time.Duration) bool {
	d := float32(dt.Seconds())
	for k, m := range r.marks {
		if m.x != nil {
			v, done := m.x.step(d)
			m.progress = v
			if done {
				m.x = nil
			}
		}
		for rest := d; len(m.pulse) > 0; {
			v, done := m.pulse[0].step(rest)
			m.R = v
			if !done {
				break
			}
			rest = m.pulse[0].left
			m.pulse = m.pulse[1:]
		}
		if m.fade != nil {
			v, done := m.fade.step(d)
			m.Opacity = v
			if done {
				m.fade = nil
				if m.exiting {
					delete(r.marks, k)
					continue
				}
			}
		}
		r.place(m)
	}
	return r.Animating()
}

// Settle finishes every transition at once.
func (r *Reconciler) Settle() {
	for k, m := range r.marks {
		if m.exiting {
			delete(r.marks, k)
			continue
		}
		m.x, m.pulse, m.fade = nil, nil, nil
		m.progress, m.R, m.Opacity = 1, r.opts.Radius, 1
		r.place(m)
	}
}

// Animating reports whether any mark has a transition in flight.
func (r *Reconciler) Animating() bool {
	for _, m := range r.marks {
		if m.animating() {
			return true
		}
	}
	return false
}

// Reposition swaps in new mappers and moves every mark accordingly. No mark
// is created or destroyed and no transition is touched.
func (r *Reconciler) Reposition(x, y scale.Linear) {
	r.x, r.y = x, y
	for _, m := range r.marks {
		r.place(m)
	}
}

// Radius returns the resting mark radius.
func (r *Reconciler) Radius() float64 { return r.opts.Radius }

// Len returns the number of marks, exiting ones included.
func (r *Reconciler) Len() int { return len(r.marks) }

// Get returns a copy of the mark for key.
func (r *Reconciler) Get(key string) (Mark, bool) {
	m, ok := r.marks[key]
	if !ok {
		return Mark{}, false
	}
	return *m, true
}

// Marks returns copies of all marks ordered by key.
func (r *Reconciler) Marks() []Mark {
	out := make([]Mark, 0, len(r.marks))
	for _, m := range r.marks {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LiveKeys returns the sorted keys of marks that are not exiting.
func (r *Reconciler) LiveKeys() []string {
	var out []string
	for k, m := range r.marks {
		if !m.exiting {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
