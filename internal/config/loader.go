package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/bevuihoc.yaml
var defaultYAML []byte

// EnvConfig names a config file to use when no --config flag is given.
const EnvConfig = "BEVUIHOC_CONFIG"

// SourceEmbedded marks a config built from the compiled-in defaults.
const SourceEmbedded = "embedded"

// localPath is tried relative to the working directory.
var localPath = filepath.Join("configs", "bevuihoc.yaml")

// Default returns the compiled-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return hardcoded()
	}
	cfg.Source = SourceEmbedded
	return cfg
}

func hardcoded() Config {
	return Config{
		Session: SessionConfig{FeedbackDelayMS: 1000},
		Log:     LogConfig{Level: "info"},
		Store:   StoreConfig{Backend: BackendSQLite},
		Audio:   AudioConfig{Bell: true},
		Source:  SourceEmbedded,
	}
}

// Load reads the configuration. Keys missing from the file keep their
// default values.
// Search order: customPath -> $BEVUIHOC_CONFIG -> $XDG_CONFIG_HOME/bevuihoc/config.yaml
// -> ./configs/bevuihoc.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// An explicit path must exist and parse.
	for _, path := range []string{customPath, os.Getenv(EnvConfig)} {
		if path == "" {
			continue
		}
		cfg, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		return cfg, cfg.Validate()
	}

	// Discovered files are skipped when unreadable.
	for _, path := range []string{userConfigPath(), localPath} {
		if path == "" {
			continue
		}
		if cfg, err := readFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	return Default(), nil
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if no config
// directory is available.
func userConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "bevuihoc", "config.yaml")
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
