package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/app"
	"github.com/bevuihoc/bevuihoc/internal/audio"
	"github.com/bevuihoc/bevuihoc/internal/config"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/session"
	"github.com/bevuihoc/bevuihoc/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bevuihoc",
	Short: "Learning games for young children",
	Long:  "Bé Vui Học: terminal mini-games for preschool and first grade (math, Vietnamese, English, typing).",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-welcome")
		return runApp(cmd, app.Options{SkipWelcome: skip})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides BEVUIHOC_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to the score file (overrides BEVUIHOC_DB env var)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for reproducible rounds (0 uses the config value)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps are the services every command builds from the config.
type deps struct {
	cfg     config.Config
	logger  *log.Logger
	content *content.Loader

	store   store.Store
	closers []io.Closer
}

// loadConfig reads the config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := log.ParseLevel(lvl); err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
		cfg.Log.Level = lvl
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.Path = db
	}
	return cfg, nil
}

// openDeps builds the logger and content loader. While the TUI owns the
// terminal logs go to a file; otherwise they go to stderr.
func openDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	if tui {
		path, err := logPath(cfg)
		if err != nil {
			return nil, err
		}
		logger, closer, err := logging.OpenFile(path, cfg.LogLevel())
		if err != nil {
			return nil, err
		}
		d.logger = logger
		d.closers = append(d.closers, closer)
	} else {
		d.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel())
	}
	d.logger.Debug("config loaded", "source", cfg.Source)

	d.content, err = content.Open(cfg.Content.Dir, logging.Component(d.logger, "content"))
	if err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// openStore opens the score backend named in the config.
func (d *deps) openStore() (store.Store, error) {
	if d.store != nil {
		return d.store, nil
	}
	st, err := store.Open(d.cfg.Store.Backend, d.cfg.Store.Path, logging.Component(d.logger, "store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)
	return st, nil
}

// env assembles the services handed to the TUI screens.
func (d *deps) env(st store.Store, bell io.Writer) screen.Env {
	return screen.Env{
		Config:    d.cfg,
		Content:   d.content,
		Scores:    st,
		Audio:     audio.NewTerminal(bell, d.cfg.Audio.Bell, logging.Component(d.logger, "audio")),
		Logger:    d.logger,
		Scheduler: session.RealScheduler{},
	}
}

// Close releases everything in reverse order of opening.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && d.logger != nil {
			d.logger.Warn("close failed", "error", err)
		}
	}
	d.closers = nil
}

func logPath(cfg config.Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return filepath.Join(dir, logging.DefaultFile), nil
}

// runApp opens the store, builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	st, err := d.openStore()
	if err != nil {
		return err
	}
	// stdout belongs to the renderer.
	opts.Env = d.env(st, os.Stderr)
	d.logger.Info("starting", "version", version, "store", d.cfg.Store.Backend)
	return app.Run(opts)
}
