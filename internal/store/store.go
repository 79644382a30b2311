// Package store persists the best score of each subject. Two backends
// are available: SQLite (the default) and a plain JSON file holding a
// single object that maps subject to score.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/internal/logging"
)

// Backends accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// EnvDB overrides the score file location.
const EnvDB = "BEVUIHOC_DB"

// Store keeps one best score per subject.
type Store interface {
	// BestScores returns every recorded subject with its best score.
	// The map is never nil.
	BestScores(ctx context.Context) (map[string]int, error)

	// Best returns the best score for subject, or 0 if none is recorded.
	Best(ctx context.Context, subject string) (int, error)

	// Record saves score when it beats the stored best for subject and
	// reports whether it did.
	Record(ctx context.Context, subject string, score int) (bool, error)

	// Reset forgets every score.
	Reset(ctx context.Context) error

	Close() error
}

// Open returns the backend named by backend. An empty path resolves to
// DefaultPath(backend).
func Open(backend, path string, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if path == "" {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	} else if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("create score directory: %w", err)
	}

	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path, logger)
	case BackendJSON:
		return OpenJSON(path, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// DefaultPath resolves the score file path in priority order:
// 1. BEVUIHOC_DB environment variable
// 2. $XDG_DATA_HOME/bevuihoc/scores.{db,json}
// 3. ~/.local/share/bevuihoc/scores.{db,json}
func DefaultPath(backend string) (string, error) {
	if p := os.Getenv(EnvDB); p != "" {
		return p, ensureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}

	name := "scores.db"
	if backend == BackendJSON {
		name = "scores.json"
	}
	p := filepath.Join(dir, name)
	return p, ensureDir(p)
}

// DataDir is the per-user directory for scores and logs.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bevuihoc"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
