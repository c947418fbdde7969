// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for charts and saved profiles

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/models"
)

// RetrogradeMarker is shown after bodies with negative speed.
const RetrogradeMarker = "℞"

// FormatDegrees formats a longitude as degrees and minutes within its sign,
// e.g. 270.19 becomes "0°11' Capricorn".
func FormatDegrees(lon float64) string {
	sign := models.SignOf(lon)
	if sign == "" {
		return color.New(color.Faint).Sprint("(invalid)")
	}
	within := math.Mod(lon, 30)
	if within < 0 {
		within += 30
	}
	minutes := int(math.Floor(within*60 + 1e-9))
	return fmt.Sprintf("%d°%02d' %s", minutes/60, minutes%60, sign)
}

// FormatLocation formats optional coordinates.
func FormatLocation(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return color.New(color.Faint).Sprint("(no location)")
	}
	return fmt.Sprintf("(%.4f, %.4f)", *lat, *lng)
}

// FormatBody formats one body line of a chart. Houses are shown 1-based.
func FormatBody(p *models.BodyPosition) string {
	if p == nil {
		return color.New(color.Faint).Sprint("  (no body)")
	}

	// Pad inside the color codes so columns line up.
	line := fmt.Sprintf("  %s %-18s", color.CyanString("%-20s", p.Name), FormatDegrees(p.Longitude))

	if p.House != nil && *p.House != chart.NoHouse {
		line += fmt.Sprintf(" house %-2d", *p.House+1)
	}
	if p.Retrograde() {
		line += " " + color.YellowString(RetrogradeMarker)
	}
	return strings.TrimRight(line, " ")
}

// FormatChart formats a whole chart for terminal display.
func FormatChart(c *chart.Chart) string {
	if c == nil {
		return color.New(color.Faint).Sprint("(no chart)")
	}

	var sb strings.Builder
	sb.WriteString(color.GreenString(c.String()))
	sb.WriteString(" ")
	sb.WriteString(color.New(color.Faint).Sprint(FormatLocation(c.Latitude, c.Longitude)))
	sb.WriteString("\n")

	if c.HasHouses() {
		sb.WriteString(fmt.Sprintf("  Ascendant: %s\n", color.MagentaString(FormatDegrees(*c.Ascendant))))
	}
	sb.WriteString("\n")

	for _, p := range c.Positions {
		sb.WriteString(FormatBody(p))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatProfile formats a saved profile for list output.
func FormatProfile(p *models.Profile) string {
	if p == nil {
		return color.New(color.Faint).Sprint("(invalid profile)")
	}
	return fmt.Sprintf("%s - %s %s (%s)",
		color.GreenString(p.Name),
		p.BornAt.Format("2006-01-02 15:04")+" UTC",
		color.New(color.Faint).Sprint(FormatLocation(p.Latitude, p.Longitude)),
		color.New(color.Faint).Sprint("saved "+FormatRelativeTime(p.CreatedAt)))
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
