package dataset

import (
	"fmt"
	"strconv"
)

// Extent is the data-space bounding box of a record set.
type Extent struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Record is one book projected into the 2D plane.
type Record struct {
	ID        string
	Title     string
	Author    string
	Genre     string
	Subjects  string
	BirthYear int
	X         float64
	Y         float64
}

// Key returns the stable identity of the record. An explicit ID wins; without
// one the key is derived from genre and coordinates.
func (r Record) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return "id_" + r.Genre + "_" + strconv.FormatFloat(r.Y, 'g', -1, 64) + "_" + strconv.FormatFloat(r.X, 'g', -1, 64)
}

// Coords formats the record's coordinates for display.
func (r Record) Coords() string {
	return fmt.Sprintf("%g, %g", r.X, r.Y)
}

// ComputeExtent returns the min/max of both axes. ok is false for an empty set.
func ComputeExtent(records []Record) (e Extent, ok bool) {
	for i, r := range records {
		if i == 0 {
			e = Extent{MinX: r.X, MinY: r.Y, MaxX: r.X, MaxY: r.Y}
			continue
		}
		if r.X < e.MinX {
			e.MinX = r.X
		}
		if r.Y < e.MinY {
			e.MinY = r.Y
		}
		if r.X > e.MaxX {
			e.MaxX = r.X
		}
		if r.Y > e.MaxY {
			e.MaxY = r.Y
		}
	}
	return e, len(records) > 0
}
