// Package logging builds the slog loggers used by the command line and the
// interactive screen.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ParseLevel converts a config level name to a slog.Level. Unknown names
// map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a human readable logger writing to w, as used by one-shot
// commands. Output is styled only when w is a terminal.
func New(w io.Writer, level string) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(ParseLevel(level)),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(handler)
}

// Null returns a logger that discards everything.
func Null() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenFile returns a JSON logger appending to path. The interactive screen
// owns the terminal, so it logs here instead of stderr. The returned closer
// must be called on exit. An empty path yields a discard logger.
func OpenFile(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Null(), nopCloser{}, nil
	}

	logPath, err := expandHome(path)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler), f, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
