// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, sets up logging, and opens the profile database and ephemeris engine

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/astro/internal/config"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/logging"
	"github.com/harper/astro/internal/storage"
	"github.com/spf13/cobra"
)

// noDBAnnotation marks commands that never touch saved profiles.
const noDBAnnotation = "astro/no-db"

var (
	db     storage.Repository
	cfg    *config.Config
	engine ephemeris.Engine
	logger = logging.New(os.Stderr, log.WarnLevel)

	dbPathFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "astro",
	Short: "Astrological charts from the command line",
	Long: `
 █████╗ ███████╗████████╗██████╗  ██████╗
██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔═══██╗
███████║███████╗   ██║   ██████╔╝██║   ██║
██╔══██║╚════██║   ██║   ██╔══██╗██║   ██║
██║  ██║███████║   ██║   ██║  ██║╚██████╔╝
╚═╝  ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝

     Zodiac positions, houses, and saved birth charts

Examples:
  astro chart "1986-12-22 08:34" --lat 28.6 --lng 77.2
  astro save darpan "1986-12-22 08:34" --lat 28.6 --lng 77.2
  astro show darpan --json
  astro list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, err := logging.ParseLevel(cfg.GetLogLevel())
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		logger = logging.New(os.Stderr, level)

		if cmd.Annotations[noDBAnnotation] == "true" {
			return nil
		}

		if dbPathFlag != "" {
			logger.Debug("opening database", "path", dbPathFlag)
			db, err = storage.NewSQLiteDB(dbPathFlag)
		} else {
			logger.Debug("opening database", "path", cfg.DBPath())
			db, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "database path (default: <data_dir>/astro.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}

// openEngine returns the configured ephemeris engine, building it on first use.
// Only commands that compute charts call this, so a missing ephemeris
// directory never blocks profile management.
func openEngine() (ephemeris.Engine, error) {
	if engine != nil {
		return engine, nil
	}
	c := cfg
	if c == nil {
		c = &config.Config{}
	}
	eng, err := c.OpenEngine(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ephemeris engine: %w", err)
	}
	engine = eng
	return engine, nil
}
