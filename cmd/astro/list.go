// ABOUTME: Astro list command
// ABOUTME: Lists all saved birth profiles

package main

import (
	"fmt"

	"github.com/harper/astro/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := db.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(profiles) == 0 {
			fmt.Fprintln(out, "No profiles saved yet. Use 'astro save' to add one.")
			return nil
		}

		for _, p := range profiles {
			fmt.Fprintln(out, ui.FormatProfile(p))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
