// Package logging builds the application logger. While the TUI owns the
// terminal, logs go to a file in logfmt; headless commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFile is the log file name used next to the score database.
const DefaultFile = "bevuihoc.log"

// New returns a logger writing human-readable lines to w.
func New(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "bevuihoc",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile appends logfmt records to path, creating parent directories.
// The returned closer closes the file.
func OpenFile(path string, lvl log.Level) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, f, nil
}

// Component tags a logger with the subsystem it belongs to.
func Component(l *log.Logger, name string) *log.Logger {
	return l.With("component", name)
}
