package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/levels"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best score of every subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		st, err := d.openStore()
		if err != nil {
			return err
		}
		best, err := st.BestScores(cmd.Context())
		if err != nil {
			return fmt.Errorf("read scores: %w", err)
		}
		printScores(cmd.OutOrStdout(), best)
		return nil
	},
}

func printScores(w io.Writer, best map[string]int) {
	fmt.Fprintf(w, "%-20s  %-20s  %6s\n", "SUBJECT", "TITLE", "BEST")
	total := 0
	for _, s := range levels.Subjects() {
		score := best[string(s)]
		total += score
		fmt.Fprintf(w, "%-20s  %-20s  %6d\n", s, s.Title(), score)
	}
	fmt.Fprintf(w, "%-20s  %-20s  %6d\n", "", "Tổng", total)
}
