package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
)

// ParseCSV reads a header row and book rows.
// Column detection (case-insensitive): x_coord|x, y_coord|y, genre, title,
// author, id, subjects, birth_year|authoryearofbirth.
func ParseCSV(b []byte) ([]Record, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	r := csv.NewReader(bytes.NewReader(b))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	idx := map[string]int{}
	for i, h := range recs[0] {
		col := strings.ToLower(strings.TrimSpace(h))
		switch col {
		case "x", "x_coord":
			col = "x"
		case "y", "y_coord":
			col = "y"
		case "birth_year", "authoryearofbirth":
			col = "birth_year"
		}
		if _, dup := idx[col]; !dup {
			idx[col] = i
		}
	}
	if _, ok := idx["x"]; !ok {
		return nil, errors.New("csv: x_coord column not found")
	}
	if _, ok := idx["y"]; !ok {
		return nil, errors.New("csv: y_coord column not found")
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	out := make([]Record, 0, len(recs)-1)
	for _, row := range recs[1:] {
		x, err1 := strconv.ParseFloat(cell(row, "x"), 64)
		y, err2 := strconv.ParseFloat(cell(row, "y"), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		rec := Record{
			ID:       cell(row, "id"),
			Title:    cell(row, "title"),
			Author:   cell(row, "author"),
			Genre:    cell(row, "genre"),
			Subjects: cell(row, "subjects"),
			X:        x,
			Y:        y,
		}
		if by, err := strconv.ParseFloat(cell(row, "birth_year"), 64); err == nil {
			rec.BirthYear = int(by)
		}
		out = append(out, rec)
	}
	return out, nil
}
