// ABOUTME: Export command for generating JSON, markdown, GeoJSON, and YAML output
// ABOUTME: Renders saved profiles and their charts for use outside astro

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/geojson"
	"github.com/harper/astro/internal/models"
	"github.com/harper/astro/internal/storage"
	"github.com/spf13/cobra"
)

var exportFormats = []string{"json", "markdown", "geojson", "yaml"}

var exportCmd = &cobra.Command{
	Use:     "export [name]",
	Aliases: []string{"e"},
	Short:   "Export profiles and charts in various formats",
	Long: `Export saved profiles as chart JSON, a markdown report, GeoJSON birth
places, or a YAML backup.

Examples:
  # Chart document for one profile
  astro export darpan --format json

  # Chart documents for every profile, keyed by name
  astro export --format json

  # Markdown chart tables
  astro export --format markdown --output charts.md

  # Birth places on a map
  astro export --format geojson --output births.geojson

  # YAML backup (always every profile)
  astro export --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if !validFormat(format) {
			return fmt.Errorf("unsupported format: %s (use 'json', 'markdown', 'geojson', or 'yaml')", format)
		}
		if format == "yaml" && len(args) == 1 {
			return fmt.Errorf("yaml export always includes every profile")
		}

		profiles, err := selectProfiles(args)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")

		var data []byte
		switch format {
		case "yaml":
			data, err = storage.ExportToYAML(db)
		case "markdown":
			data, err = exportMarkdown(cmd.Context(), profiles, args)
		case "geojson":
			data, err = exportGeoJSON(cmd.Context(), profiles)
		default:
			data, err = exportJSON(cmd.Context(), profiles, args)
		}
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", format, err)
		}

		return writeOutput(cmd.OutOrStdout(), output, data, format)
	},
}

func validFormat(format string) bool {
	for _, f := range exportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func selectProfiles(args []string) ([]*models.Profile, error) {
	if len(args) == 1 {
		p, err := db.GetProfileByName(args[0])
		if err != nil {
			return nil, fmt.Errorf("profile '%s' not found", args[0])
		}
		return []*models.Profile{p}, nil
	}
	profiles, err := db.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func buildCharts(ctx context.Context, eng ephemeris.Engine, profiles []*models.Profile) (map[uuid.UUID]*chart.Chart, error) {
	charts := make(map[uuid.UUID]*chart.Chart, len(profiles))
	for _, p := range profiles {
		c, err := chart.Build(ctx, eng, chart.FromProfile(p))
		if err != nil {
			return nil, fmt.Errorf("chart for %s: %w", p.Name, err)
		}
		charts[p.ID] = c
	}
	return charts, nil
}

func exportJSON(ctx context.Context, profiles []*models.Profile, args []string) ([]byte, error) {
	eng, err := openEngine()
	if err != nil {
		return nil, err
	}
	charts, err := buildCharts(ctx, eng, profiles)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		return charts[profiles[0].ID].JSONIndent()
	}

	docs := make(map[string]chart.Document, len(profiles))
	for _, p := range profiles {
		docs[p.Name] = charts[p.ID].Document()
	}
	return json.MarshalIndent(docs, "", "  ")
}

func exportMarkdown(ctx context.Context, profiles []*models.Profile, args []string) ([]byte, error) {
	eng, err := openEngine()
	if err != nil {
		return nil, err
	}
	var profileID *uuid.UUID
	if len(args) == 1 {
		profileID = &profiles[0].ID
	}
	return storage.ExportToMarkdown(ctx, db, eng, profileID)
}

func exportGeoJSON(ctx context.Context, profiles []*models.Profile) ([]byte, error) {
	located := make([]*models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.HasLocation() {
			located = append(located, p)
		}
	}
	if len(located) == 0 {
		return nil, fmt.Errorf("no profiles with a birth place")
	}

	eng, err := openEngine()
	if err != nil {
		return nil, err
	}
	charts, err := buildCharts(ctx, eng, located)
	if err != nil {
		return nil, err
	}

	fc := geojson.ToPointsFeatureCollection(located, func(id uuid.UUID) *chart.Chart {
		return charts[id]
	})
	return fc.ToJSONIndent()
}

func writeOutput(stdout io.Writer, output string, data []byte, format string) error {
	if output == "" {
		_, err := stdout.Write(data)
		if err == nil && (len(data) == 0 || data[len(data)-1] != '\n') {
			_, err = io.WriteString(stdout, "\n")
		}
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", format, output)
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "output format (json, markdown, geojson, yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
