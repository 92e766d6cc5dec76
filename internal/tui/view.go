package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// layout is the screen geometry shared by View and the mouse handler.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
	// canvas placement inside the map area, in cells
	canvasX, canvasY int
	cols, rows       int
}

func (m Model) layout() layout {
	var l layout
	footerHeight := 1 + lipgloss.Height(m.help.View(m.keys))
	l.contentW = max(10, m.width)
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	if m.showSidebar {
		l.mapX = sidebarWidth + 1
	}
	l.mapY = headerHeight
	l.mapW = max(10, l.contentW-l.mapX)
	l.mapH = l.contentH

	w, h := m.ctrl.Canvas()
	l.cols = min(l.mapW, int(math.Ceil(w/2)))
	l.rows = min(l.mapH, int(math.Ceil(h/4)))
	l.canvasX = l.mapX + (l.mapW-l.cols)/2
	l.canvasY = l.mapY + (l.mapH-l.rows)/2
	return l
}

// toCanvas maps a screen cell to the canvas point at its centre.
func (l layout) toCanvas(sx, sy int) (px, py float64, inside bool) {
	cx, cy := sx-l.canvasX, sy-l.canvasY
	inside = cx >= 0 && cx < l.cols && cy >= 0 && cy < l.rows
	return float64(cx*2 + 1), float64(cy*4 + 2), inside
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	header := titleStyle.Render(" bookscatter ─ books mapped by genre ")
	header = lipgloss.NewStyle().Width(l.contentW).Render(header)

	plotView := lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderPlot(l))
	body := plotView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(l.mapH).MaxHeight(l.mapH).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", plotView)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus(l.contentW), m.help.View(m.keys))
	if tip := m.ctrl.Tooltip(); tip.Visible {
		ui = overlayTooltip(ui, tip, l.contentW, m.height)
	}
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

// renderPlot draws the map area: the canvas once data is in, otherwise a
// loading or error panel.
func (m Model) renderPlot(l layout) string {
	st := m.ctrl.State()
	switch {
	case st.Err != nil:
		msg := errStyle.Width(min(l.mapW-2, 64)).Render("could not load data\n\n" + st.Err.Error())
		return lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, msg)
	case !st.Loaded && m.opts.Path == "":
		return lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, dimStyle.Render("no dataset given"))
	case !st.Loaded:
		return lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, dimStyle.Render("loading "+m.opts.Path+" …"))
	}
	pad := strings.Repeat(" ", l.canvasX-l.mapX)
	out := make([]string, l.canvasY-l.mapY, l.mapH)
	for _, ln := range m.renderCanvas(l.cols, l.rows) {
		out = append(out, pad+ln)
	}
	return strings.Join(out, "\n")
}

func (m Model) renderStatus(width int) string {
	st := m.ctrl.State()
	status := dimStyle.Render(" " + m.status + " ")
	info := ""
	if st.Loaded {
		info = dimStyle.Render(fmt.Sprintf(" genre: %s  %d/%d books  zoom %.2fx ",
			st.Selection, m.ctrl.Visible(), len(st.Records), st.Transform.K))
	}
	spacerW := max(0, width-lipgloss.Width(status)-lipgloss.Width(info))
	return status + strings.Repeat(" ", spacerW) + info
}
