package app

import (
	"bytes"
	"log/slog"

	"fordview/hal"
	"fordview/internal/config"
)

// lineWriter feeds slog's text output into the host's line logger.
type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	if w.l != nil {
		w.l.WriteLineBytes(bytes.TrimRight(p, "\n"))
	}
	return len(p), nil
}

func newLogger(l hal.Logger, cfg config.Config) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(lineWriter{l: l}, &slog.HandlerOptions{Level: level}))
}
