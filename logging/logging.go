// Package logging builds the slog loggers used by the snakewalls commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

type Options struct {
	Format    string
	Level     string
	AddSource bool
}

// ParseLevel accepts debug, info, warn and error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing to w in the requested format.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level := slog.LevelInfo
	if opts.Level != "" {
		var err error
		if level, err = ParseLevel(opts.Level); err != nil {
			return nil, err
		}
	}
	ho := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, ho)
	case FormatJSON:
		h = slog.NewJSONHandler(w, ho)
	case FormatPretty:
		h = NewPrettyHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(h), nil
}

// Discard is a logger that drops everything, for tests and optional wiring.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
