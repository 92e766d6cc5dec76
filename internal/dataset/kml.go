package dataset

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name"`
	Description string    `xml:"description"`
	Data        []kmlData `xml:"ExtendedData>Data"`
	Point       *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// ParseKML reads Placemark points at any depth. The placemark name is the
// title; ExtendedData entries fill the other book fields. Only the first
// coordinate tuple of a point is used and altitude is ignored.
func ParseKML(b []byte) ([]Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	var out []Record
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		if r, ok := pm.record(); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (pm kmlPlacemark) record() (Record, bool) {
	if pm.Point == nil {
		return Record{}, false
	}
	tuple := strings.Fields(pm.Point.Coordinates)
	if len(tuple) == 0 {
		return Record{}, false
	}
	vals := strings.Split(tuple[0], ",")
	if len(vals) < 2 {
		return Record{}, false
	}
	x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
	if err1 != nil || err2 != nil {
		return Record{}, false
	}
	r := Record{ID: pm.ID, Title: strings.TrimSpace(pm.Name), X: x, Y: y}
	for _, d := range pm.Data {
		v := strings.TrimSpace(d.Value)
		switch strings.ToLower(d.Name) {
		case "id":
			r.ID = v
		case "title":
			r.Title = v
		case "author":
			r.Author = v
		case "genre":
			r.Genre = v
		case "subjects":
			r.Subjects = v
		case "birth_year":
			if n, err := strconv.Atoi(v); err == nil {
				r.BirthYear = n
			}
		}
	}
	if r.Subjects == "" {
		r.Subjects = strings.TrimSpace(pm.Description)
	}
	return r, true
}
