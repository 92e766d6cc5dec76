package reconcile

import (
	"sort"

	"bookscatter/internal/dataset"
)

// Plan is the keyed difference between the marks on screen and the records
// that should be visible.
type Plan struct {
	Enter  []dataset.Record
	Update []dataset.Record
	Exit   []string
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Enter) == 0 && len(p.Update) == 0 && len(p.Exit) == 0
}

// Diff splits next into records that need a new mark and records whose mark
// already exists, and lists the keys in prev that are no longer wanted.
// Enter and Update keep the order of next; a key repeated in next is only
// used once. Exit is sorted.
func Diff(prev []string, next []dataset.Record) Plan {
	var p Plan
	have := make(map[string]bool, len(prev))
	for _, k := range prev {
		have[k] = true
	}
	want := make(map[string]bool, len(next))
	for _, r := range next {
		k := r.Key()
		if want[k] {
			continue
		}
		want[k] = true
		if have[k] {
			p.Update = append(p.Update, r)
		} else {
			p.Enter = append(p.Enter, r)
		}
	}
	for k := range have {
		if !want[k] {
			p.Exit = append(p.Exit, k)
		}
	}
	sort.Strings(p.Exit)
	return p
}
