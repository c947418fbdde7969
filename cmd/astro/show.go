// ABOUTME: Astro show command
// ABOUTME: Computes and prints the chart of a saved profile

package main

import (
	"fmt"

	"github.com/harper/astro/internal/chart"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the chart of a saved profile",
	Long: `Compute the chart of a saved profile.

Examples:
  astro show darpan
  astro show darpan --json
  astro show darpan --tags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		p, err := db.GetProfileByName(name)
		if err != nil {
			return fmt.Errorf("profile '%s' not found", name)
		}

		eng, err := openEngine()
		if err != nil {
			return err
		}

		c, err := chart.Build(cmd.Context(), eng, chart.FromProfile(p))
		if err != nil {
			return fmt.Errorf("failed to compute chart for %s: %w", name, err)
		}

		return printChart(cmd, c)
	},
}

func init() {
	addChartOutputFlags(showCmd)

	rootCmd.AddCommand(showCmd)
}
