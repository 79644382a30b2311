package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/app"
	"github.com/bevuihoc/bevuihoc/internal/config"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Jump straight into a level",
	Long: `Open the TUI on a level instead of the welcome screen.

Run "bevuihoc levels" to list level names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		l, d, err := resolveLevel(cmd, cfg)
		if err != nil {
			return err
		}
		return runApp(cmd, app.Options{SkipWelcome: true, Level: &l, Difficulty: d})
	},
}

func init() {
	addLevelFlags(playCmd)
}

func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().String("level", "", "Level name, e.g. math or vi-scramble (required)")
	cmd.Flags().String("difficulty", "", "easy, medium or hard (defaults to the level's first)")
	_ = cmd.MarkFlagRequired("level")
}

// resolveLevel reads --level and --difficulty, applying config overrides.
func resolveLevel(cmd *cobra.Command, cfg config.Config) (levels.Level, content.Difficulty, error) {
	name, _ := cmd.Flags().GetString("level")
	l, ok := cfg.Level(levels.Kind(strings.ToLower(strings.TrimSpace(name))))
	if !ok {
		return levels.Level{}, "", fmt.Errorf("unknown level %q: run \"bevuihoc levels\" for the list", name)
	}

	diff, _ := cmd.Flags().GetString("difficulty")
	if diff == "" {
		return l, l.DefaultDifficulty(), nil
	}
	d, err := content.ParseDifficulty(diff)
	if err != nil {
		return levels.Level{}, "", err
	}
	if !l.Supports(d) {
		return levels.Level{}, "", fmt.Errorf("level %s does not offer difficulty %s", l.Kind, d)
	}
	return l, d, nil
}
