// ABOUTME: Astro remove command
// ABOUTME: Removes a saved birth profile

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		p, err := db.GetProfileByName(name)
		if err != nil {
			return fmt.Errorf("profile '%s' not found", name)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm && !askYes(cmd, fmt.Sprintf("Remove '%s'?", name)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}

		if err := db.DeleteProfile(p.ID); err != nil {
			return fmt.Errorf("failed to remove profile: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Removed %s", name))
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
