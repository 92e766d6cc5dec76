package dataset

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ParseGeoJSON reads a FeatureCollection (or a single Feature) of Point
// features. Coordinates give x/y; properties carry the book fields.
func ParseGeoJSON(b []byte) ([]Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	var features []any
	switch t, _ := raw["type"].(string); t {
	case "FeatureCollection":
		features, _ = raw["features"].([]any)
	case "Feature":
		features = []any{raw}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		return nil, errors.New("unsupported geojson type: " + t)
	}
	parsePoint := func(v any) (x, y float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			return x, y, xok && yok
		}
		return 0, 0, false
	}
	str := func(props map[string]any, k string) string {
		switch v := props[k].(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%g", v)
		}
		return ""
	}
	out := make([]Record, 0, len(features))
	for _, f := range features {
		fm, _ := f.(map[string]any)
		g, _ := fm["geometry"].(map[string]any)
		if gt, _ := g["type"].(string); gt != "Point" {
			continue
		}
		x, y, ok := parsePoint(g["coordinates"])
		if !ok {
			continue
		}
		props, _ := fm["properties"].(map[string]any)
		r := Record{
			ID:       str(props, "id"),
			Title:    str(props, "title"),
			Author:   str(props, "author"),
			Genre:    str(props, "genre"),
			Subjects: str(props, "subjects"),
			X:        x,
			Y:        y,
		}
		if r.ID == "" {
			switch id := fm["id"].(type) {
			case string:
				r.ID = id
			case float64:
				r.ID = fmt.Sprintf("%g", id)
			}
		}
		if by, ok := props["birth_year"].(float64); ok {
			r.BirthYear = int(by)
		}
		out = append(out, r)
	}
	return out, nil
}
