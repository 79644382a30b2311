package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
)

// isolate points every discovery location at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv(EnvConfig, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())
	return xdg
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, SourceEmbedded, cfg.Source)
	assert.Equal(t, time.Second, cfg.FeedbackDelay())
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.True(t, cfg.Audio.Bell)
	assert.Zero(t, cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmbeddedWhenNothingFound(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, cfg.Source)
}

func TestLoad_SearchOrder(t *testing.T) {
	xdg := isolate(t)
	userPath := filepath.Join(xdg, "bevuihoc", "config.yaml")
	writeFile(t, localPath, "seed: 3\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, localPath, cfg.Source)
	assert.Equal(t, int64(3), cfg.Seed)

	writeFile(t, userPath, "seed: 2\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, userPath, cfg.Source)

	envPath := filepath.Join(t.TempDir(), "env.yaml")
	writeFile(t, envPath, "seed: 1\n")
	t.Setenv(EnvConfig, envPath)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.Seed)

	flagPath := filepath.Join(t.TempDir(), "flag.yaml")
	writeFile(t, flagPath, "seed: 9\n")
	cfg, err = Load(flagPath)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, flagPath, cfg.Source)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "store:\n  backend: json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, time.Second, cfg.FeedbackDelay())
	assert.True(t, cfg.Audio.Bell)
}

func TestLoad_ExplicitPathErrors(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "session: [\n")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoad_BrokenDiscoveredFileIsSkipped(t *testing.T) {
	xdg := isolate(t)
	writeFile(t, filepath.Join(xdg, "bevuihoc", "config.yaml"), "session: [\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, cfg.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative delay", func(c *Config) { c.Session.FeedbackDelayMS = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"unknown level", func(c *Config) { c.Levels = map[string]LevelConfig{"chess": {}} }},
		{"negative questions", func(c *Config) { c.Levels = map[string]LevelConfig{"math": {Questions: -1}} }},
		{"bad difficulty", func(c *Config) {
			c.Levels = map[string]LevelConfig{"math": {TimeLimits: map[string]int{"insane": 30}}}
		}},
		{"zero time limit", func(c *Config) {
			c.Levels = map[string]LevelConfig{"math": {TimeLimits: map[string]int{"easy": 0}}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLevel_AppliesOverrides(t *testing.T) {
	cfg := Default()
	cfg.Levels = map[string]LevelConfig{
		"math": {Questions: 3, TimeLimits: map[string]int{"EASY": 45}},
	}

	l, ok := cfg.Level(levels.KindMath)
	require.True(t, ok)
	assert.Equal(t, 3, l.Questions)
	assert.Equal(t, 45*time.Second, l.TimeLimit(content.DifficultyEasy))
	assert.Equal(t, 90*time.Second, l.TimeLimit(content.DifficultyHard))

	plain, ok := cfg.Level(levels.KindClickTarget)
	require.True(t, ok)
	assert.Equal(t, 5, plain.Questions)

	_, ok = cfg.Level("chess")
	assert.False(t, ok)

	for _, l := range cfg.LevelsIn(levels.GroupGrade1) {
		if l.Kind == levels.KindMath {
			assert.Equal(t, 3, l.Questions)
		}
	}
}

func TestLoad_LevelOverridesFromYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, `
levels:
  vi-scramble:
    questions: 2
    time_limits:
      hard: 200
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	l, _ := cfg.Level(levels.KindVietnameseScramble)
	assert.Equal(t, 2, l.Questions)
	assert.Equal(t, 200*time.Second, l.TimeLimit(content.DifficultyHard))
}

func TestMarshal_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Seed = 77
	data, err := Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	writeFile(t, path, string(data))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(77), got.Seed)
}
