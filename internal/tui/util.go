package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// overlay draws box over base with its top-left corner at (x, y), keeping
// the styled text of base on either side.
func overlay(base, box string, x, y int) string {
	lines := strings.Split(base, "\n")
	for i, bl := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]
		w := ansi.StringWidth(bl)
		if pad := x - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[row] = ansi.Truncate(line, x, "") + bl + ansi.TruncateLeft(line, x+w, "")
	}
	return strings.Join(lines, "\n")
}
