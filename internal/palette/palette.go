// Package palette resolves genre labels to display colors.
package palette

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Set3 is the ColorBrewer Set3 qualitative scheme.
var Set3 = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Unknown is the default color for categories outside the known list.
const Unknown = "#9CA3AF"

// Resolver maps categories to colors by their position in a fixed list.
type Resolver struct {
	categories []string
	index      map[string]int
	colors     []lipgloss.Color
	unknown    lipgloss.Color
}

// New pairs categories with colors by position. When there are fewer colors
// than categories the colors repeat. An empty unknown uses Unknown.
func New(categories, colors []string, unknown string) *Resolver {
	if unknown == "" {
		unknown = Unknown
	}
	r := &Resolver{
		index:   make(map[string]int, len(categories)),
		unknown: lipgloss.Color(unknown),
	}
	for _, c := range categories {
		if _, dup := r.index[c]; dup {
			continue
		}
		r.index[c] = len(r.categories)
		r.categories = append(r.categories, c)
	}
	for _, c := range colors {
		r.colors = append(r.colors, lipgloss.Color(c))
	}
	return r
}

// ColorOf returns the color for category. Categories that are not in the
// known list, or that have no color, get the unknown color.
func (r *Resolver) ColorOf(category string) lipgloss.Color {
	i, ok := r.index[category]
	if !ok || len(r.colors) == 0 {
		return r.unknown
	}
	return r.colors[i%len(r.colors)]
}

// Known reports whether category is in the known list.
func (r *Resolver) Known(category string) bool {
	_, ok := r.index[category]
	return ok
}

// Categories returns the known categories in order.
func (r *Resolver) Categories() []string {
	return append([]string(nil), r.categories...)
}

// Fade blends c toward bg so that opacity 1 is c and 0 is bg. Colors that do
// not parse as hex are returned unchanged.
func Fade(c, bg lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return c
	}
	fg, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	back, err := colorful.Hex(string(bg))
	if err != nil {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	return lipgloss.Color(back.BlendLab(fg, opacity).Clamped().Hex())
}
