// ABOUTME: Ephemeris engine contract and engine selection
// ABOUTME: Charts delegate every astronomical computation to an Engine

package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

var (
	// ErrDataPath is returned when the ephemeris data directory is unset or missing.
	ErrDataPath = errors.New("ephemeris data path not available")

	// ErrUnknownBody is returned for a body index outside the catalog.
	ErrUnknownBody = errors.New("unknown body index")

	// ErrNotRecorded is returned by a Fixture that has no data for the request.
	ErrNotRecorded = errors.New("not recorded in fixture")

	// ErrMalformedOutput is returned when engine output cannot be parsed.
	ErrMalformedOutput = errors.New("malformed engine output")
)

// Coordinates is the raw result of computing one body.
type Coordinates struct {
	Longitude      float64
	Latitude       float64
	Distance       float64
	LongitudeSpeed float64
	LatitudeSpeed  float64
	DistanceSpeed  float64
}

// Cusps holds the twelve house cusp longitudes; index 0 is the ascendant.
type Cusps [12]float64

// Engine computes body positions and house cusps for a Julian day.
type Engine interface {
	// JulianDay converts a UTC civil date and fractional hour to a Julian day.
	JulianDay(year, month, day int, hour float64) float64

	// ComputeBody returns the ecliptic coordinates of body at jd.
	ComputeBody(ctx context.Context, jd float64, body int) (Coordinates, error)

	// ComputeHouses returns the house cusps at jd for a geographic location.
	ComputeHouses(ctx context.Context, jd, lat, lng float64) (Cusps, error)
}

// Kind selects an Engine implementation.
type Kind int

const (
	KindSwetest Kind = iota // Swiss Ephemeris swetest executable (default)
	KindFixture             // Recorded output replayed from YAML
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSwetest:
		return "swetest"
	case KindFixture:
		return "fixture"
	default:
		return "unknown"
	}
}

// ParseKind parses an engine kind name. Empty selects swetest.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "swetest":
		return KindSwetest, nil
	case "fixture":
		return KindFixture, nil
	default:
		return 0, fmt.Errorf("unknown engine: %q", s)
	}
}

// Config carries everything an engine needs. It is handed to the engine
// constructor instead of living in process-wide state.
type Config struct {
	Kind Kind

	// DataPath is the directory holding the ephemeris data files.
	DataPath string

	// Binary is the swetest executable name or path.
	Binary string

	// FixturePath is the YAML file read by the fixture engine.
	FixturePath string

	Logger *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

// New builds the engine selected by cfg.Kind.
func New(cfg Config) (Engine, error) {
	switch cfg.Kind {
	case KindSwetest:
		return NewSwetest(cfg)
	case KindFixture:
		return NewFixture(cfg.FixturePath)
	default:
		return nil, fmt.Errorf("unsupported engine kind: %s", cfg.Kind)
	}
}
