// ABOUTME: Install-skill command for the astro agent skill
// ABOUTME: Writes the embedded SKILL.md under ~/.claude/skills/astro/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the astro skill for Claude Code.

The skill definition is written to ~/.claude/skills/astro/ and
describes the chart, profile, and export commands.`,
	Annotations: map[string]string{noDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd, home)
	},
}

func init() {
	installSkillCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPathIn(home string) string {
	return filepath.Join(home, ".claude", "skills", "astro", "SKILL.md")
}

// installSkill writes the embedded skill below home, asking first unless --yes is set.
func installSkill(cmd *cobra.Command, home string) error {
	out := cmd.OutOrStdout()
	skillPath := skillPathIn(home)

	fmt.Fprintf(out, "Skill destination: %s\n", color.CyanString(skillPath))
	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, color.YellowString("An existing skill file will be overwritten."))
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !askYes(cmd, "Install the astro skill?") {
		fmt.Fprintln(out, "Canceled.")
		return nil
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(skillPath), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("✓ Installed astro skill"))
	return nil
}
