package dataset

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// number accepts a JSON number or a numeric string.
type number struct {
	v  float64
	ok bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// "UNKNOWN" birth years and similar placeholders read as absent
		return nil
	}
	n.v, n.ok = f, true
	return nil
}

// text accepts a JSON string or number.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(b)
	return nil
}

type jsonRecord struct {
	ID        text   `json:"id"`
	Title     text   `json:"title"`
	Author    text   `json:"author"`
	Genre     text   `json:"genre"`
	Subjects  text   `json:"subjects"`
	BirthYear number `json:"birth_year"`
	X         number `json:"x_coord"`
	Y         number `json:"y_coord"`
}

// ParseJSON decodes an array of book objects. Entries without both
// coordinates are skipped.
func ParseJSON(b []byte) ([]Record, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var raw []jsonRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	out := make([]Record, 0, len(raw))
	for _, jr := range raw {
		if !jr.X.ok || !jr.Y.ok {
			continue
		}
		r := Record{
			ID:       string(jr.ID),
			Title:    string(jr.Title),
			Author:   string(jr.Author),
			Genre:    string(jr.Genre),
			Subjects: string(jr.Subjects),
			X:        jr.X.v,
			Y:        jr.Y.v,
		}
		if jr.BirthYear.ok {
			r.BirthYear = int(jr.BirthYear.v)
		}
		out = append(out, r)
	}
	return out, nil
}
