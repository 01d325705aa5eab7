// Package logging builds the application slog logger
// The terminal belongs to the renderer, so logs go to a file or nowhere
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultPath is used when debug is on and no file is configured
	DefaultPath = "logs/orrery.log"
	// MaxLogSize is the size above which an existing log is rotated on open
	MaxLogSize = 10 * 1024 * 1024
)

// New creates a text logger on w with "error" keys shortened to "err"
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a logger writing to path at info level, or debug level when debug is set
// An empty path with debug off discards; an empty path with debug on uses DefaultPath
// The returned closer must be closed on exit
func Open(path string, debug bool) (*slog.Logger, io.Closer, error) {
	if path == "" {
		if !debug {
			return NewNop(), nopCloser{}, nil
		}
		path = DefaultPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	if err := rotate(path, time.Now()); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return New(f, level), f, nil
}

// rotate renames path to a timestamped sibling when it exceeds MaxLogSize
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxLogSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "-" + now.Format("20060102-150405") + ext
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
