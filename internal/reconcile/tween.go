package reconcile

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tween is a gween tween that lands exactly on its target when it finishes.
type tween struct {
	tw   *gween.Tween
	to   float64
	left float32 // time past the end of the last step
}

func newTween(from, to float64, d time.Duration, fn ease.TweenFunc) *tween {
	t := &tween{to: to}
	if d > 0 && from != to {
		t.tw = gween.New(float32(from), float32(to), float32(d.Seconds()), fn)
	}
	return t
}

func (t *tween) step(dt float32) (float64, bool) {
	if t.tw == nil {
		t.left = dt
		return t.to, true
	}
	v, done := t.tw.Update(dt)
	if done {
		t.left = t.tw.Overflow
		return t.to, true
	}
	return float64(v), false
}
