package tui

import (
	"fmt"
	"math"

	"bookscatter/internal/palette"
	"bookscatter/internal/reconcile"
)

// renderCanvas draws the axes, tick labels and marks onto a cols x rows
// braille grid.
func (m Model) renderCanvas(cols, rows int) []string {
	b := newBrailleBuf(cols, rows)
	dotsW, dotsH := cols*2, rows*4
	a := m.ctrl.Axes()

	ay := int(math.Floor(a.XAxisY))
	ax := int(math.Floor(a.YAxisX))
	b.drawLineMicro(0, ay, dotsW-1, ay, axisCol)
	b.drawLineMicro(ax, 0, ax, dotsH-1, axisCol)

	for _, t := range a.X {
		px := int(math.Floor(t.Pos))
		b.drawLineMicro(px, ay-1, px, ay+1, axisCol)
	}
	for _, t := range a.Y {
		py := int(math.Floor(t.Pos))
		b.drawLineMicro(ax-1, py, ax+1, py, axisCol)
	}

	// x labels sit on the row under the axis, centred on their tick
	labelRow, nextFree := ay/4+1, math.MinInt
	for _, t := range a.X {
		s := tickLabel(t.Value)
		cx := int(math.Floor(t.Pos))/2 - len(s)/2
		if cx < nextFree {
			continue
		}
		b.label(cx, labelRow, s, tickCol)
		nextFree = cx + len(s) + 1
	}
	// y labels sit right of the axis, one per row at most
	lastRow := math.MinInt
	for _, t := range a.Y {
		row := int(math.Floor(t.Pos)) / 4
		if row == lastRow {
			continue
		}
		b.label(ax/2+1, row, tickLabel(t.Value), tickCol)
		lastRow = row
	}

	tip := m.ctrl.Tooltip()
	var hovered *reconcile.Mark
	marks := m.ctrl.Marks()
	for i, mk := range marks {
		if mk.Opacity <= 0 {
			continue
		}
		c := palette.Fade(m.ctrl.ColorOf(mk.Record.Genre), subtleBg, mk.Opacity)
		b.disc(mk.CX, mk.CY, mk.R, c)
		if tip.Visible && mk.Key == tip.Key {
			hovered = &marks[i]
		}
	}
	if hovered != nil {
		b.ring(hovered.CX, hovered.CY, hovered.R+1.5, hoverCol)
	}
	return b.toLines()
}

func tickLabel(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
