// ABOUTME: Engine that replays ephemeris snapshots from YAML
// ABOUTME: Used for offline runs and deterministic tests

package ephemeris

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// jdTolerance is how close a requested Julian day must be to a snapshot (~0.1s).
const jdTolerance = 1e-6

// coordTolerance matches recorded house locations.
const coordTolerance = 1e-6

// FixtureFile is the YAML layout read by Fixture.
type FixtureFile struct {
	Snapshots []Snapshot `yaml:"snapshots"`
}

// Snapshot is the recorded engine output for one Julian day.
type Snapshot struct {
	JulianDay float64       `yaml:"julian_day"`
	Bodies    [][6]float64  `yaml:"bodies"`
	Houses    []HouseRecord `yaml:"houses,omitempty"`
	Note      string        `yaml:"note,omitempty"`
}

// HouseRecord holds recorded cusps for one location.
type HouseRecord struct {
	Latitude  float64     `yaml:"latitude"`
	Longitude float64     `yaml:"longitude"`
	Cusps     [12]float64 `yaml:"cusps"`
}

// Fixture answers engine calls from recorded snapshots.
type Fixture struct {
	snapshots []Snapshot
}

// Compile-time check that Fixture implements Engine.
var _ Engine = (*Fixture)(nil)

// NewFixture loads a fixture file.
func NewFixture(path string) (*Fixture, error) {
	if path == "" {
		return nil, fmt.Errorf("fixture path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &Fixture{snapshots: file.Snapshots}, nil
}

// JulianDay converts a UTC civil date to a Julian day.
func (f *Fixture) JulianDay(year, month, day int, hour float64) float64 {
	return JulianDay(year, month, day, hour)
}

// ComputeBody returns the recorded row for body at jd.
func (f *Fixture) ComputeBody(_ context.Context, jd float64, body int) (Coordinates, error) {
	snap, err := f.snapshot(jd)
	if err != nil {
		return Coordinates{}, err
	}
	if body < 0 || body >= len(snap.Bodies) {
		return Coordinates{}, fmt.Errorf("%w: %d", ErrUnknownBody, body)
	}
	row := snap.Bodies[body]
	return Coordinates{
		Longitude:      row[0],
		Latitude:       row[1],
		Distance:       row[2],
		LongitudeSpeed: row[3],
		LatitudeSpeed:  row[4],
		DistanceSpeed:  row[5],
	}, nil
}

// ComputeHouses returns the recorded cusps for the location at jd.
func (f *Fixture) ComputeHouses(_ context.Context, jd, lat, lng float64) (Cusps, error) {
	snap, err := f.snapshot(jd)
	if err != nil {
		return Cusps{}, err
	}
	for _, h := range snap.Houses {
		if math.Abs(h.Latitude-lat) < coordTolerance && math.Abs(h.Longitude-lng) < coordTolerance {
			return Cusps(h.Cusps), nil
		}
	}
	return Cusps{}, fmt.Errorf("%w: houses at jd %f for (%f, %f)", ErrNotRecorded, jd, lat, lng)
}

func (f *Fixture) snapshot(jd float64) (*Snapshot, error) {
	for i := range f.snapshots {
		if math.Abs(f.snapshots[i].JulianDay-jd) < jdTolerance {
			return &f.snapshots[i], nil
		}
	}
	return nil, fmt.Errorf("%w: jd %f", ErrNotRecorded, jd)
}
