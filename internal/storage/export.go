// ABOUTME: Export and import functionality for saved profiles
// ABOUTME: Supports YAML backup format and markdown chart export

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string          `yaml:"version"`
	ExportedAt time.Time       `yaml:"exported_at"`
	Tool       string          `yaml:"tool"`
	Profiles   []ProfileBackup `yaml:"profiles"`
}

// ProfileBackup represents a profile in the backup format.
type ProfileBackup struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	BornAt    time.Time `yaml:"born_at"`
	Latitude  *float64  `yaml:"latitude,omitempty"`
	Longitude *float64  `yaml:"longitude,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// ExportToYAML exports all profiles to YAML format.
func ExportToYAML(repo Repository) ([]byte, error) {
	profiles, err := repo.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "astro",
		Profiles:   make([]ProfileBackup, len(profiles)),
	}

	for i, p := range profiles {
		backup.Profiles[i] = ProfileBackup{
			ID:        p.ID.String(),
			Name:      p.Name,
			BornAt:    p.BornAt.UTC(),
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			CreatedAt: p.CreatedAt,
		}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML imports profiles from YAML format.
// Existing profiles with the same name cause the import to fail.
func ImportFromYAML(repo Repository, data []byte) error {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != "astro" {
		return fmt.Errorf("wrong tool: %s (expected astro)", backup.Tool)
	}

	for _, pb := range backup.Profiles {
		id, err := uuid.Parse(pb.ID)
		if err != nil {
			return fmt.Errorf("invalid profile ID %s: %w", pb.ID, err)
		}
		if err := models.ValidateName(pb.Name); err != nil {
			return fmt.Errorf("profile %s: %w", pb.ID, err)
		}
		if err := models.ValidateLocation(pb.Latitude, pb.Longitude); err != nil {
			return fmt.Errorf("profile %s: %w", pb.Name, err)
		}

		p := &models.Profile{
			ID:        id,
			Name:      pb.Name,
			BornAt:    pb.BornAt.UTC(),
			Latitude:  pb.Latitude,
			Longitude: pb.Longitude,
			CreatedAt: pb.CreatedAt,
		}
		if err := repo.CreateProfile(p); err != nil {
			return fmt.Errorf("create profile %s: %w", pb.Name, err)
		}
	}

	return nil
}

// ExportToMarkdown renders the chart of each profile as a markdown table.
// If profileID is nil, exports all profiles.
func ExportToMarkdown(ctx context.Context, repo Repository, eng ephemeris.Engine, profileID *uuid.UUID) ([]byte, error) {
	profiles, err := selectProfiles(repo, profileID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# Astro Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(profiles) == 0 {
		sb.WriteString("No profiles saved.\n")
		return []byte(sb.String()), nil
	}

	for _, p := range profiles {
		c, err := chart.Build(ctx, eng, chart.FromProfile(p))
		if err != nil {
			return nil, fmt.Errorf("chart for %s: %w", p.Name, err)
		}
		writeChartMarkdown(&sb, p, c)
	}

	return []byte(sb.String()), nil
}

func writeChartMarkdown(sb *strings.Builder, p *models.Profile, c *chart.Chart) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", p.Name))

	born := p.BornAt.Format("2006-01-02 15:04") + " UTC"
	if p.HasLocation() {
		born += fmt.Sprintf(" (%.4f, %.4f)", *p.Latitude, *p.Longitude)
	}
	sb.WriteString(fmt.Sprintf("Born: %s\n\n", born))

	if c.HasHouses() {
		sb.WriteString(fmt.Sprintf("Ascendant: %.3f (%s)\n\n", *c.Ascendant, c.AscendantSign))
	}

	sb.WriteString("| Body | Sign | Longitude | Speed | House |\n")
	sb.WriteString("|------|------|-----------|-------|-------|\n")

	for _, v := range c.Document().Planets {
		house := "-"
		if v.House != nil && *v.House != chart.NoHouse {
			house = fmt.Sprintf("%d", *v.House+1)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %.3f | %.3f | %s |\n", v.Name, v.Sign, v.X, v.DX, house))
	}

	sb.WriteString("\n")
}

func selectProfiles(repo Repository, profileID *uuid.UUID) ([]*models.Profile, error) {
	if profileID != nil {
		p, err := repo.GetProfile(*profileID)
		if err != nil {
			return nil, err
		}
		return []*models.Profile{p}, nil
	}
	return repo.ListProfiles()
}

// ExportBackup creates a YAML backup (alias for ExportToYAML).
func ExportBackup(repo Repository) ([]byte, error) {
	return ExportToYAML(repo)
}

// ImportBackup restores from a YAML backup (alias for ImportFromYAML).
func ImportBackup(repo Repository, data []byte) error {
	return ImportFromYAML(repo, data)
}
