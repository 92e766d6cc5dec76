// Package tui is the terminal front end: it turns Bubble Tea messages into
// plot events and renders the plot as a braille scatter.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"bookscatter/internal/dataset"
	"bookscatter/internal/plot"
)

const (
	sidebarWidth = 28
	headerHeight = 1

	zoomStep = 1.2
	panStepX = 8 // dots, four cells
	panStepY = 8 // dots, two rows

	hoverTolerance = 2
)

// Options configures a Model.
type Options struct {
	// Path is the dataset loaded on Init.
	Path string
	// FrameInterval is the tick period while marks are animating.
	FrameInterval time.Duration
	Context       context.Context
	Log           zerolog.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	status      string

	ctrl *plot.Controller
	opts Options
	log  zerolog.Logger

	// genre sidebar
	l list.Model

	help help.Model
	keys keyMap

	// pointer state
	hoverKey     string
	dragging     bool
	dragX, dragY int
	pointer      bool
	ptrX, ptrY   int

	// frame clock
	ticking   bool
	lastFrame time.Time
}

// New returns a Model driving ctrl.
func New(ctrl *plot.Controller, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	m := Model{
		status: "bookscatter ready",
		ctrl:   ctrl,
		opts:   opts,
		log:    opts.Log,
		help:   help.New(),
		keys:   keys,
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Genres"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.Path == "" {
		m.log.Warn().Msg("no dataset path configured")
		return nil
	}
	m.log.Info().Str("path", m.opts.Path).Msg("loading dataset")
	return load(m.opts.Context, m.opts.Path)
}

// load reads the dataset off the UI loop.
func load(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		d, err := dataset.Load(ctx, path)
		if err != nil {
			return plot.LoadFailed{Err: err}
		}
		return plot.DataLoaded{Data: d}
	}
}

type frameMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// animate starts the frame clock if the controller asked for frames.
func (m *Model) animate(eff plot.Effect) tea.Cmd {
	if !eff.Animate || m.ticking {
		return nil
	}
	m.ticking = true
	m.lastFrame = time.Time{}
	return m.tick()
}
