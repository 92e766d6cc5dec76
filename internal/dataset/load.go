package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for data files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported data file")

// Data is the loaded record set and what normalization did to it.
type Data struct {
	Path       string
	Records    []Record
	Extent     Extent
	HasExtent  bool
	Duplicates int
}

// Load reads a record file, choosing the decoder from the extension.
func Load(ctx context.Context, path string) (Data, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	var recs []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		recs, err = ParseJSON(b)
	case ".csv":
		recs, err = ParseCSV(b)
	case ".geojson":
		recs, err = ParseGeoJSON(b)
	case ".kml":
		recs, err = ParseKML(b)
	default:
		return Data{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Data{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	d := normalize(recs)
	d.Path = path
	return d, nil
}

// normalize gives every record a genre and drops records whose key was already seen.
func normalize(recs []Record) Data {
	var d Data
	seen := make(map[string]bool, len(recs))
	d.Records = make([]Record, 0, len(recs))
	for _, r := range recs {
		r.Genre = strings.TrimSpace(r.Genre)
		if r.Genre == "" {
			r.Genre = ClassifyGenre(r.Subjects)
		}
		k := r.Key()
		if seen[k] {
			d.Duplicates++
			continue
		}
		seen[k] = true
		d.Records = append(d.Records, r)
	}
	d.Extent, d.HasExtent = ComputeExtent(d.Records)
	return d
}
