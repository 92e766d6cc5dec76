package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"bookscatter/internal/config"
	"bookscatter/internal/logging"
	"bookscatter/internal/plot"
	"bookscatter/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bookscatter:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	e, err := config.ParseEnv()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		e.DataPath = args[0]
	}
	s, err := config.Load(e)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(s.LogFile, s.LogLevel, s.Graylog)
	if err != nil {
		return err
	}
	defer closer.Close()
	if f := config.ConfigFileUsed(); f != "" {
		log.Info().Str("file", f).Msg("config file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := plot.New(plot.FromSettings(s), log)
	m := tui.New(ctrl, tui.Options{
		Path:          s.Data.Path,
		FrameInterval: s.FrameInterval(),
		Context:       ctx,
		Log:           log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("ui exited")
		return err
	}
	log.Info().Msg("bye")
	return nil
}
