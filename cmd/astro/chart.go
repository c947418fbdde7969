// ABOUTME: Astro chart command
// ABOUTME: Computes and prints a chart for a moment and optional birth place

package main

import (
	"fmt"
	"io"

	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/models"
	"github.com/harper/astro/internal/ui"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:     "chart <datetime>",
	Aliases: []string{"c"},
	Short:   "Compute a chart",
	Long: `Compute zodiac positions for every body, plus houses and ascendant
when both --lat and --lng are given.

The datetime is read as UTC: RFC3339 values are converted to UTC,
"YYYY-MM-DD HH:MM" is taken as-is.

Examples:
  astro chart "1986-12-22 08:34"
  astro chart 1986-12-22T14:04:00+05:30 --lat 28.6 --lng 77.2
  astro chart "1986-12-22 08:34" --lat 28.6 --lng 77.2 --json`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noDBAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		bornAt, err := models.ParseBirthTime(args[0])
		if err != nil {
			return err
		}
		lat, lng, err := locationFromFlags(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		eng, err := openEngine()
		if err != nil {
			return err
		}

		c, err := chart.Build(cmd.Context(), eng, chart.Input{
			Name:      name,
			Time:      bornAt,
			Latitude:  lat,
			Longitude: lng,
		})
		if err != nil {
			return fmt.Errorf("failed to compute chart: %w", err)
		}
		logger.Debug("computed chart", "jd", c.JulianDay, "houses", c.HasHouses())

		return printChart(cmd, c)
	},
}

// printChart writes c in the format selected by --json and --tags.
func printChart(cmd *cobra.Command, c *chart.Chart) error {
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := c.JSONIndent()
		if err != nil {
			return fmt.Errorf("failed to encode chart: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if tags, _ := cmd.Flags().GetBool("tags"); tags {
		return printTags(out, c)
	}

	_, err := fmt.Fprint(out, ui.FormatChart(c))
	return err
}

func printTags(out io.Writer, c *chart.Chart) error {
	for _, tag := range c.Tags() {
		if _, err := fmt.Fprintln(out, tag); err != nil {
			return err
		}
	}
	return nil
}

func addChartOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "print the chart document as JSON")
	cmd.Flags().Bool("tags", false, "print one Body-in-Sign tag per line")
}

func init() {
	addLocationFlags(chartCmd)
	addChartOutputFlags(chartCmd)
	chartCmd.Flags().StringP("name", "n", "", "label shown in the chart summary")

	rootCmd.AddCommand(chartCmd)
}
