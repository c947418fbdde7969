// ABOUTME: Entry point for the astro CLI
// ABOUTME: Executes the root command and exits non-zero on failure

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	// Cobra's own error output is silenced so each failure is printed once.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
