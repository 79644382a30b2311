// Package config loads the YAML settings file: round timing, level
// overrides, logging, score storage and content location.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/store"
)

// Store backends.
const (
	BackendSQLite = store.BackendSQLite
	BackendJSON   = store.BackendJSON
)

// Config is the whole settings file.
type Config struct {
	Session SessionConfig          `yaml:"session"`
	Levels  map[string]LevelConfig `yaml:"levels"`
	Log     LogConfig              `yaml:"log"`
	Store   StoreConfig            `yaml:"store"`
	Content ContentConfig          `yaml:"content"`
	Audio   AudioConfig            `yaml:"audio"`
	Seed    int64                  `yaml:"seed"`

	// Source is where the config was read from, or "embedded".
	Source string `yaml:"-"`
}

// SessionConfig holds round defaults shared by every level.
type SessionConfig struct {
	FeedbackDelayMS int `yaml:"feedback_delay_ms"`
}

// LevelConfig overrides a catalog level.
type LevelConfig struct {
	Questions  int            `yaml:"questions"`
	TimeLimits map[string]int `yaml:"time_limits"` // seconds by difficulty
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// StoreConfig selects where best scores are kept.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ContentConfig points at an external content pack.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig controls the terminal sound cues.
type AudioConfig struct {
	Bell bool `yaml:"bell"`
}

// FeedbackDelay is the default pause after an answer.
func (c Config) FeedbackDelay() time.Duration {
	return time.Duration(c.Session.FeedbackDelayMS) * time.Millisecond
}

// LogLevel parses Log.Level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate reports every problem in the file at once.
func (c Config) Validate() error {
	var errs []error
	if c.Session.FeedbackDelayMS < 0 {
		errs = append(errs, fmt.Errorf("session.feedback_delay_ms must not be negative, got %d", c.Session.FeedbackDelayMS))
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	switch c.Store.Backend {
	case BackendSQLite, BackendJSON:
	default:
		errs = append(errs, fmt.Errorf("store.backend must be %q or %q, got %q", BackendSQLite, BackendJSON, c.Store.Backend))
	}
	for name, lc := range c.Levels {
		if _, ok := levels.Lookup(levels.Kind(name)); !ok {
			errs = append(errs, fmt.Errorf("levels.%s: unknown level", name))
			continue
		}
		if lc.Questions < 0 {
			errs = append(errs, fmt.Errorf("levels.%s.questions must not be negative", name))
		}
		for d, secs := range lc.TimeLimits {
			if _, err := content.ParseDifficulty(d); err != nil {
				errs = append(errs, fmt.Errorf("levels.%s.time_limits: %w", name, err))
			}
			if secs < 1 {
				errs = append(errs, fmt.Errorf("levels.%s.time_limits.%s must be at least 1 second", name, d))
			}
		}
	}
	return errors.Join(errs...)
}

// Level returns the catalog level with any configured overrides applied.
func (c Config) Level(kind levels.Kind) (levels.Level, bool) {
	l, ok := levels.Lookup(kind)
	if !ok {
		return levels.Level{}, false
	}
	lc, ok := c.Levels[string(kind)]
	if !ok {
		return l, true
	}
	limits := make(map[content.Difficulty]time.Duration, len(lc.TimeLimits))
	for name, secs := range lc.TimeLimits {
		if d, err := content.ParseDifficulty(name); err == nil {
			limits[d] = time.Duration(secs) * time.Second
		}
	}
	return l.WithOverrides(lc.Questions, limits), true
}

// LevelsIn returns the levels of g with overrides applied.
func (c Config) LevelsIn(g levels.Group) []levels.Level {
	out := levels.InGroup(g)
	for i, l := range out {
		out[i], _ = c.Level(l.Kind)
	}
	return out
}
