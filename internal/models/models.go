// ABOUTME: Saved birth profiles and input validation
// ABOUTME: Provides constructors and validators shared by the CLI and MCP server

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateLocation validates an optional coordinate pair.
// Either both values are set or neither is.
func ValidateLocation(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return fmt.Errorf("latitude and longitude must be given together")
	}
	return ValidateCoordinates(*lat, *lng)
}

// ValidateName checks if a name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// Profile is a saved birth moment and optional birthplace.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BornAt    time.Time `json:"born_at"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile creates a profile with a generated UUID. BornAt is stored in UTC.
func NewProfile(name string, bornAt time.Time, lat, lng *float64) *Profile {
	return &Profile{
		ID:        uuid.New(),
		Name:      name,
		BornAt:    bornAt.UTC(),
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: time.Now(),
	}
}

// HasLocation reports whether both coordinates are set.
func (p *Profile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// birthTimeLayouts are the wall clock layouts accepted besides RFC3339.
var birthTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseBirthTime parses a birth moment. RFC3339 values are converted to UTC;
// zone-less values are taken as UTC.
func ParseBirthTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range birthTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339 or YYYY-MM-DD HH:MM)", s)
}
