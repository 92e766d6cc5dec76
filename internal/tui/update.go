package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"bookscatter/internal/dataset"
	"bookscatter/internal/plot"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncSize()
	case plot.DataLoaded:
		eff := m.ctrl.Dispatch(msg)
		st := m.ctrl.State()
		if st.Source != msg.Data.Path {
			return m, nil
		}
		m.refreshGenres()
		m.status = fmt.Sprintf("loaded: %s  %d books", filepath.Base(st.Source), len(st.Records))
		if st.Duplicates > 0 {
			m.status += fmt.Sprintf("  (%d duplicate ids dropped)", st.Duplicates)
		}
		return m, m.animate(eff)
	case plot.LoadFailed:
		m.ctrl.Dispatch(msg)
		m.status = "load error: " + msg.Err.Error()
	case frameMsg:
		return m.frame(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// syncSize hands the map area to the controller in dots.
func (m *Model) syncSize() {
	l := m.layout()
	m.ctrl.Dispatch(plot.Resize{Width: float64(l.mapW * 2), Height: float64(l.mapH * 4)})
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.mapH-2)
	}
	m.rehover()
}

func (m Model) frame(t time.Time) (tea.Model, tea.Cmd) {
	dt := m.opts.FrameInterval
	if !m.lastFrame.IsZero() {
		if d := t.Sub(m.lastFrame); d > 0 && d < 4*m.opts.FrameInterval {
			dt = d
		}
	}
	m.lastFrame = t
	eff := m.ctrl.Dispatch(plot.Frame{DT: dt})
	m.hoverKey = m.ctrl.Tooltip().Key
	if eff.Animate {
		return m, m.tick()
	}
	m.ticking = false
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the sidebar filter is open every key belongs to the list.
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncSize()
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		m.syncSize()
	case m.showSidebar && key.Matches(msg, m.keys.Apply):
		if it, ok := m.l.SelectedItem().(genreItem); ok {
			return m, m.selectGenre(it.name)
		}
	case m.showSidebar && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)):
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		return m, m.cycleGenre(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.cycleGenre(-1)
	case key.Matches(msg, m.keys.All):
		return m, m.selectGenre(dataset.AllGenres)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoomCentre(zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoomCentre(1 / zoomStep)
	case key.Matches(msg, m.keys.Up):
		m.pan(0, -panStepY)
	case key.Matches(msg, m.keys.Down):
		m.pan(0, panStepY)
	case key.Matches(msg, m.keys.Left):
		m.pan(-panStepX, 0)
	case key.Matches(msg, m.keys.Right):
		m.pan(panStepX, 0)
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Dispatch(plot.ResetView{})
		m.rehover()
		m.status = "view reset"
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) zoomCentre(factor float64) {
	w, h := m.ctrl.Canvas()
	m.zoom(factor, w/2, h/2)
}

func (m *Model) zoom(factor, px, py float64) {
	m.ctrl.Dispatch(plot.ZoomBy{Factor: factor, X: px, Y: py})
	m.rehover()
	m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.State().Transform.K)
}

func (m *Model) pan(dx, dy float64) {
	m.ctrl.Dispatch(plot.PanBy{DX: dx, DY: dy})
	m.rehover()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	px, py, inside := l.toCanvas(msg.X, msg.Y)
	m.pointer, m.ptrX, m.ptrY = true, msg.X, msg.Y
	switch {
	case msg.Button == tea.MouseButtonWheelUp && inside:
		m.zoom(zoomStep, px, py)
	case msg.Button == tea.MouseButtonWheelDown && inside:
		m.zoom(1/zoomStep, px, py)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.pan(float64((msg.X-m.dragX)*2), float64((msg.Y-m.dragY)*4))
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion:
		m.hover(px, py, inside, msg.X, msg.Y)
	}
	return m, nil
}

// rehover runs hit testing again at the last pointer cell so the tooltip
// follows marks moved under a still pointer.
func (m *Model) rehover() {
	if !m.pointer {
		return
	}
	px, py, inside := m.layout().toCanvas(m.ptrX, m.ptrY)
	m.hover(px, py, inside, m.ptrX, m.ptrY)
}

// hover turns pointer motion into hover, move and leave events for the mark
// under the pointer.
func (m *Model) hover(px, py float64, inside bool, sx, sy int) {
	hit, found := "", false
	if inside {
		if mk, ok := m.ctrl.HitTest(px, py, hoverTolerance); ok {
			hit, found = mk.Key, true
		}
	}
	switch {
	case found && hit == m.hoverKey:
		m.ctrl.Dispatch(plot.PointerMove{PageX: sx, PageY: sy})
	case found:
		m.ctrl.Dispatch(plot.PointerHover{Key: hit, PageX: sx, PageY: sy})
	case m.hoverKey != "":
		m.ctrl.Dispatch(plot.PointerLeave{})
	}
	m.hoverKey = m.ctrl.Tooltip().Key
}
