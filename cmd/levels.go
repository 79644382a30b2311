package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/config"
	"github.com/bevuihoc/bevuihoc/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List every level with its difficulties and round length",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printLevels(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func printLevels(w io.Writer, cfg config.Config) {
	for _, g := range []levels.Group{levels.GroupGrade1, levels.GroupPreschool} {
		fmt.Fprintf(w, "── %s ──\n", g)
		fmt.Fprintf(w, "%-20s  %-20s  %-9s  %s\n", "LEVEL", "TITLE", "QUESTIONS", "DIFFICULTY (TIME)")
		for _, l := range cfg.LevelsIn(g) {
			questions := "all"
			if l.Questions > 0 {
				questions = fmt.Sprint(l.Questions)
			}
			var diffs []string
			for _, d := range l.Difficulties {
				limit := "untimed"
				if l.Timed(d) {
					limit = fmt.Sprintf("%ds", int(l.TimeLimit(d).Seconds()))
				}
				diffs = append(diffs, fmt.Sprintf("%s (%s)", d, limit))
			}
			fmt.Fprintf(w, "%-20s  %-20s  %-9s  %s\n", l.Kind, l.Title, questions, strings.Join(diffs, ", "))
		}
		fmt.Fprintln(w)
	}
}
