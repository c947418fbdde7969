// ABOUTME: Migration command for moving saved profiles to another data directory
// ABOUTME: Copies the current database into a fresh one with safety checks

package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harper/astro/internal/config"
	"github.com/harper/astro/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy saved profiles to another data directory",
	Long: `Copy every saved profile from the current database into a new database
in the target data directory. Profile IDs are kept.

Does NOT update the config file; verify the migration was successful then
set "data_dir" in config.json manually.

Examples:
  astro migrate --to ~/astro-data
  astro migrate --to /mnt/backup/astro --force`,
	RunE: runMigrate,
}

var (
	migrateTo    string
	migrateForce bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target data directory")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target directory")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	targetDir := config.ExpandPath(migrateTo)
	if targetDir == "" {
		return fmt.Errorf("--to is required")
	}
	targetPath := filepath.Join(targetDir, storage.DBFilename)

	if sq, ok := db.(*storage.SQLiteDB); ok {
		if src, err := filepath.Abs(sq.Path()); err == nil {
			if dst, err := filepath.Abs(targetPath); err == nil && src == dst {
				return fmt.Errorf("target %q is the current database", targetPath)
			}
		}
	}

	nonEmpty, err := storage.IsDirNonEmpty(targetDir)
	if err != nil {
		return fmt.Errorf("check target directory: %w", err)
	}
	if nonEmpty && !migrateForce {
		return fmt.Errorf("target directory %q is not empty; use --force to write into it", targetDir)
	}

	dst, err := storage.NewSQLiteDB(targetPath)
	if err != nil {
		return fmt.Errorf("open target database: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target database: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.YellowString("Migrating profiles:"))
	fmt.Fprintf(out, "  Target:  %s\n\n", targetPath)

	summary, err := storage.MigrateData(db, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("Migration complete!"))
	fmt.Fprintf(out, "  Profiles: %d\n\n", summary.Profiles)
	fmt.Fprintln(out, color.YellowString("Note: config.json was NOT updated. To switch to the new database, edit:"))
	fmt.Fprintf(out, "  %s\n", config.GetConfigPath())
	fmt.Fprintf(out, "  Set \"data_dir\": %q\n", migrateTo)

	return nil
}
