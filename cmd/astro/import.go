// ABOUTME: Import command for restoring profiles from YAML backup
// ABOUTME: Supports importing backup files created by the backup command

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/astro/internal/storage"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a YAML backup",
	Long: `Import profiles from a YAML backup file.

This restores data from a backup created with 'astro backup'.

WARNING: This adds to existing profiles. The import stops at the first
profile whose name is already taken.

Examples:
  astro import profiles.yaml
  astro import ~/backups/astro-20241214.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		out := cmd.OutOrStdout()

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm && !askYes(cmd, fmt.Sprintf("Import profiles from '%s'?", filename)) {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		before, err := db.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		if err := storage.ImportBackup(db, data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		after, err := db.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("Import complete"))
		fmt.Fprintf(out, "  %d imported, %d profiles in database\n", len(after)-len(before), len(after))

		return nil
	},
}

// askYes prompts on cmd's input and reports whether the answer was yes.
func askYes(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
