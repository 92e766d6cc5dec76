package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"bookscatter/internal/plot"
)

// tooltipMaxWidth bounds the tooltip box, border included.
const tooltipMaxWidth = 48

func tooltipText(tip plot.Tooltip) string {
	r := tip.Record
	lines := []string{
		"ID: " + r.ID,
		"Title: " + r.Title,
		"Author: " + r.Author,
	}
	if r.BirthYear != 0 {
		lines = append(lines, fmt.Sprintf("Born: %d", r.BirthYear))
	}
	lines = append(lines, "Genre: "+r.Genre, "Coord: "+r.Coords())
	for i, ln := range lines {
		lines[i] = ansi.Truncate(ln, tooltipMaxWidth-4, "…")
	}
	return strings.Join(lines, "\n")
}

// overlayTooltip draws the tooltip next to the pointer, flipping it to the
// other side of the pointer when it would run off screen.
func overlayTooltip(ui string, tip plot.Tooltip, width, height int) string {
	box := tooltipStyle.Render(tooltipText(tip))
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)

	x := tip.PageX + 2
	if x+bw > width {
		x = tip.PageX - bw - 1
	}
	y := tip.PageY - 1
	if y+bh > height {
		y = height - bh
	}
	return overlay(ui, box, clamp(x, 0, max(0, width-bw)), clamp(y, 0, max(0, height-bh)))
}
