// Package logging builds the zerolog logger. The terminal belongs to the UI,
// so log output goes to a file and, optionally, to a Graylog server.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

func console(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
}

func build(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// New returns a plain-text logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	return build(console(w), level)
}

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Open appends to the log file at path. When graylog is a host:port, JSON
// events are also sent there over GELF/UDP. The returned closer releases
// both.
func Open(path, level, graylog string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	cs := closers{f}
	var out io.Writer = console(f)
	if graylog != "" {
		gw, err := gelf.NewWriter(graylog)
		if err != nil {
			f.Close()
			return zerolog.Nop(), nil, fmt.Errorf("open graylog writer: %w", err)
		}
		if c, ok := any(gw).(io.Closer); ok {
			cs = append(cs, c)
		}
		out = zerolog.MultiLevelWriter(console(f), gw)
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	l := build(out, level)
	l.Info().Str("loglevel", l.GetLevel().String()).Bool("graylog", graylog != "").Msg("Logging set up")
	return l, cs, nil
}
