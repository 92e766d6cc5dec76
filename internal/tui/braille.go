package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a grid of terminal cells, each holding a 2x4 braille dot
// mask and one foreground color. Text written into a cell hides its dots
// until a later dot lands there.
type brailleBuf struct {
	w, h int // in cells
	m    [][]uint8
	fg   [][]lipgloss.Color
	text [][]rune
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.fg = make([][]lipgloss.Color, h)
	b.text = make([][]rune, h)
	for i := range b.m {
		b.m[i] = make([]uint8, w)
		b.fg[i] = make([]lipgloss.Color, w)
		b.text[i] = make([]rune, w)
	}
	return b
}

// dotBits indexes [column][row] within a cell.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a dot at dot coordinates (2x4 per cell) and colors its cell.
func (b *brailleBuf) setPixel(mx, my int, c lipgloss.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
	b.fg[cy][cx] = c
	b.text[cy][cx] = 0
}

// drawLineMicro draws a line on the dot grid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c lipgloss.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// disc fills every dot whose centre lies within r of (cx, cy). A disc too
// small to cover any dot centre still lights the dot under its centre.
func (b *brailleBuf) disc(cx, cy, r float64, c lipgloss.Color) {
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	lit := false
	for my := y0; my <= y1; my++ {
		for mx := x0; mx <= x1; mx++ {
			if math.Hypot(float64(mx)+0.5-cx, float64(my)+0.5-cy) <= r {
				b.setPixel(mx, my, c)
				lit = true
			}
		}
	}
	if !lit {
		b.setPixel(int(math.Floor(cx)), int(math.Floor(cy)), c)
	}
}

// ring draws the outline of a circle of radius r.
func (b *brailleBuf) ring(cx, cy, r float64, c lipgloss.Color) {
	steps := max(16, int(2*math.Pi*r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		b.setPixel(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), c)
	}
}

// label writes s into the cells starting at (cx, cy), clipped to the grid.
func (b *brailleBuf) label(cx, cy int, s string, c lipgloss.Color) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= b.w {
			continue
		}
		b.text[cy][x] = r
		b.fg[cy][x] = c
	}
}

// toLines renders each row, styling runs of cells that share a color.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb, run strings.Builder
		var cur lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(cur).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < b.w; x++ {
			ch, fg := ' ', b.fg[y][x]
			switch {
			case b.text[y][x] != 0:
				ch = b.text[y][x]
			case b.m[y][x] != 0:
				ch = rune(0x2800 + int(b.m[y][x]))
			default:
				fg = ""
			}
			if fg != cur {
				flush()
				cur = fg
			}
			run.WriteRune(ch)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
