package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// JSONFile keeps best scores as one JSON object, e.g. {"MATH": 120}.
// The file is rewritten whole on every improvement.
type JSONFile struct {
	path   string
	logger *log.Logger

	mu sync.Mutex
}

var _ Store = (*JSONFile)(nil)

// OpenJSON returns a store backed by path. The file is created on the
// first improvement.
func OpenJSON(path string, logger *log.Logger) *JSONFile {
	return &JSONFile{path: path, logger: logger}
}

// Path is the backing file.
func (j *JSONFile) Path() string { return j.path }

func (j *JSONFile) BestScores(ctx context.Context) (map[string]int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

func (j *JSONFile) Best(ctx context.Context, subject string) (int, error) {
	scores, err := j.BestScores(ctx)
	if err != nil {
		return 0, err
	}
	return scores[subject], nil
}

func (j *JSONFile) Record(ctx context.Context, subject string, score int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	scores, err := j.read()
	if err != nil {
		return false, err
	}
	previous := scores[subject]
	if score <= previous {
		return false, nil
	}
	scores[subject] = score
	if err := j.write(scores); err != nil {
		return false, err
	}

	j.logger.Info("new best score", "subject", subject, "score", score, "previous", previous)
	return true, nil
}

func (j *JSONFile) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear scores: %w", err)
	}
	j.logger.Info("scores reset")
	return nil
}

func (j *JSONFile) Close() error { return nil }

// read returns an empty map when the file does not exist yet.
func (j *JSONFile) read() (map[string]int, error) {
	scores := make(map[string]int)
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return scores, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	if len(data) == 0 {
		return scores, nil
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", j.path, err)
	}
	return scores, nil
}

// write replaces the file via a temp file and rename so readers never
// see a partial object.
func (j *JSONFile) write(scores map[string]int) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.path), ".scores-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}
