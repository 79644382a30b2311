package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect the content pack",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate every content file against its schema",
	Long: `Load every category strictly and report all problems.

Without an argument the configured pack (or the embedded one) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		loader := d.content
		if len(args) == 1 {
			if loader, err = content.Open(args[0], d.logger); err != nil {
				return err
			}
		}
		m, err := loader.Manifest()
		if err != nil {
			return err
		}
		if err := loader.Check(cmd.Context()); err != nil {
			return fmt.Errorf("content pack is invalid:\n%w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Content pack OK (format %s, %d categories)\n", m.Format, len(content.Categories))
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentCheckCmd)
}
