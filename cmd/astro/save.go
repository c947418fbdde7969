// ABOUTME: Astro save command
// ABOUTME: Stores a named birth moment and optional birth place

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/astro/internal/models"
	"github.com/harper/astro/internal/storage"
	"github.com/harper/astro/internal/ui"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:     "save <name> <datetime>",
	Aliases: []string{"s"},
	Short:   "Save a birth profile",
	Long: `Save a named birth profile. Charts are computed from it on demand.

Use --force to replace the birth data of an existing profile.

Examples:
  astro save darpan "1986-12-22 08:34"
  astro save darpan "1986-12-22 08:34" --lat 28.6 --lng 77.2
  astro save darpan "1986-12-22 08:40" --lat 28.6 --lng 77.2 --force`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if err := models.ValidateName(name); err != nil {
			return err
		}

		bornAt, err := models.ParseBirthTime(args[1])
		if err != nil {
			return err
		}

		lat, lng, err := locationFromFlags(cmd)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")

		verb := "Saved"
		p := models.NewProfile(name, bornAt, lat, lng)
		err = db.CreateProfile(p)
		if errors.Is(err, storage.ErrDuplicate) && force {
			p, err = replaceProfile(name, bornAt, lat, lng)
			verb = "Updated"
		}
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("profile '%s' already exists (use --force to replace it)", name)
			}
			return fmt.Errorf("failed to save profile: %w", err)
		}

		color.Green("✓ %s %s", verb, name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n",
			color.New(color.Faint).Sprint(p.ID.String()[:6]),
			p.BornAt.Format("2006-01-02 15:04")+" UTC",
			ui.FormatLocation(p.Latitude, p.Longitude))

		return nil
	},
}

// replaceProfile overwrites the birth data of the named profile, keeping its ID.
func replaceProfile(name string, bornAt time.Time, lat, lng *float64) (*models.Profile, error) {
	p, err := db.GetProfileByName(name)
	if err != nil {
		return nil, err
	}
	p.BornAt = bornAt
	p.Latitude = lat
	p.Longitude = lng
	if err := db.UpdateProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

func init() {
	addLocationFlags(saveCmd)
	saveCmd.Flags().Bool("force", false, "replace an existing profile with the same name")

	rootCmd.AddCommand(saveCmd)
}
