// Package runlog sets up the per-run log file written by extraction runs.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Log is an open run log.
type Log struct {
	*slog.Logger
	RunID string
	Path  string

	f *os.File
}

// Open creates (or truncates) the log file at path, creating its directory,
// and returns a text logger tagged with a fresh run id.
func Open(path string, level slog.Level) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	l := New(f, level)
	l.Path = path
	l.f = f
	return l, nil
}

// New returns a run log writing to w.
func New(w io.Writer, level slog.Level) *Log {
	id := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", id)
	return &Log{Logger: logger, RunID: id}
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
