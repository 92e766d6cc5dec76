package plot

import (
	"bookscatter/internal/dataset"
	"bookscatter/internal/scale"
)

// State is the application state. Only Controller.Dispatch mutates it.
type State struct {
	Source     string
	Records    []dataset.Record
	Genres     []string
	Duplicates int
	Selection  dataset.Selection
	Transform  scale.Transform
	Loaded     bool
	Err        error
}

// Tooltip is the hover popup.
type Tooltip struct {
	Visible      bool
	Key          string
	Record       dataset.Record
	PageX, PageY int
}
