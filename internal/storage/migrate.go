// ABOUTME: Data migration between profile databases
// ABOUTME: Copies every saved profile from a source to a destination repository

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profiles int
}

// MigrateData copies all profiles from src to dst, keeping their IDs and
// creation times. The destination should be empty before calling this.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	profiles, err := src.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("list source profiles: %w", err)
	}

	for _, p := range profiles {
		if err := dst.CreateProfile(p); err != nil {
			return summary, fmt.Errorf("create profile %q: %w", p.Name, err)
		}
		summary.Profiles++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
