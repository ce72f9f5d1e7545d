// Package logging sets up the file-backed slog logger. The terminal is
// owned by the TUI, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup opens (or creates) the log file and returns a logger plus a close
// function. Level "off" discards everything and opens no file.
func Setup(path, level string) (*slog.Logger, func(), error) {
	if strings.EqualFold(level, "off") {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = file.Close() }, nil
}

// NewDiscard is for tests and callers that want a non-nil silent logger.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
