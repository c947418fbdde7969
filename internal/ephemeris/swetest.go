// ABOUTME: Engine backed by the Swiss Ephemeris swetest executable
// ABOUTME: Runs one process per request and parses its plain decimal output

package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the swetest executable looked up on PATH.
const DefaultBinary = "swetest"

// houseSystem is Placidus, the engine's default house system.
const houseSystem = "P"

// bodyLetters maps catalog indexes to swetest planet selectors.
var bodyLetters = [...]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"m", "t", "A", "B", "C", "D", "E", "F", "G", "H", "I",
	"c", "g",
}

// runFunc executes a command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Swetest computes positions by invoking swetest.
type Swetest struct {
	binary   string
	dataPath string
	logger   *log.Logger
	run      runFunc
}

// Compile-time check that Swetest implements Engine.
var _ Engine = (*Swetest)(nil)

// NewSwetest creates a swetest engine reading data files from cfg.DataPath.
func NewSwetest(cfg Config) (*Swetest, error) {
	if cfg.DataPath == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrDataPath)
	}
	info, err := os.Stat(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDataPath, cfg.DataPath)
	}

	binary := cfg.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	return &Swetest{
		binary:   binary,
		dataPath: cfg.DataPath,
		logger:   cfg.logger(),
		run:      execRun,
	}, nil
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// JulianDay converts a UTC civil date to a Julian day.
func (s *Swetest) JulianDay(year, month, day int, hour float64) float64 {
	return JulianDay(year, month, day, hour)
}

// ComputeBody runs swetest for a single body.
func (s *Swetest) ComputeBody(ctx context.Context, jd float64, body int) (Coordinates, error) {
	if body < 0 || body >= len(bodyLetters) {
		return Coordinates{}, fmt.Errorf("%w: %d", ErrUnknownBody, body)
	}

	args := []string{
		"-bj" + formatJD(jd),
		"-ut",
		"-p" + bodyLetters[body],
		"-fPlbrs",
		"-head",
		"-edir" + s.dataPath,
	}
	s.logger.Debug("compute body", "body", body, "jd", jd)

	out, err := s.run(ctx, s.binary, args...)
	if err != nil {
		return Coordinates{}, fmt.Errorf("compute body %d: %w", body, err)
	}
	return parseBodyOutput(out)
}

// ComputeHouses runs swetest with a house request.
func (s *Swetest) ComputeHouses(ctx context.Context, jd, lat, lng float64) (Cusps, error) {
	args := []string{
		"-bj" + formatJD(jd),
		"-ut",
		"-p0",
		fmt.Sprintf("-house%s,%s,%s", formatCoord(lng), formatCoord(lat), houseSystem),
		"-fPl",
		"-head",
		"-edir" + s.dataPath,
	}
	s.logger.Debug("compute houses", "jd", jd, "lat", lat, "lng", lng)

	out, err := s.run(ctx, s.binary, args...)
	if err != nil {
		return Cusps{}, fmt.Errorf("compute houses: %w", err)
	}
	return parseHouseOutput(out)
}

func formatJD(jd float64) string {
	return strconv.FormatFloat(jd, 'f', 8, 64)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseBodyOutput reads the last line ending in four numbers:
// longitude, latitude, distance and longitude speed. swetest does not print
// latitude and distance speeds in this format, so they are reported as zero.
func parseBodyOutput(out []byte) (Coordinates, error) {
	if err := dataDiagnostic(out); err != nil {
		return Coordinates{}, err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			continue
		}
		vals, ok := parseFloats(fields[len(fields)-4:])
		if !ok {
			continue
		}
		return Coordinates{
			Longitude:      vals[0],
			Latitude:       vals[1],
			Distance:       vals[2],
			LongitudeSpeed: vals[3],
		}, nil
	}
	return Coordinates{}, fmt.Errorf("%w: %s", ErrMalformedOutput, excerpt(out))
}

// parseHouseOutput collects "house N <longitude>" lines.
func parseHouseOutput(out []byte) (Cusps, error) {
	if err := dataDiagnostic(out); err != nil {
		return Cusps{}, err
	}
	var cusps Cusps
	var found [12]bool

	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.EqualFold(fields[0], "house") {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > 12 {
			continue
		}
		v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return Cusps{}, fmt.Errorf("%w: house %d: %v", ErrMalformedOutput, n, err)
		}
		cusps[n-1] = v
		found[n-1] = true
	}

	for i, ok := range found {
		if !ok {
			return Cusps{}, fmt.Errorf("%w: missing house %d", ErrMalformedOutput, i+1)
		}
	}
	return cusps, nil
}

// dataDiagnostic reports ErrDataPath when swetest complains about its data
// files, including a silent fallback to the built-in Moshier model.
func dataDiagnostic(out []byte) error {
	for _, line := range strings.Split(string(out), "\n") {
		l := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(l, "error:") || strings.HasPrefix(l, "warning:") ||
			strings.Contains(l, "not found") || strings.Contains(l, "moshier") {
			return fmt.Errorf("%w: %s", ErrDataPath, strings.TrimSpace(line))
		}
	}
	return nil
}

func parseFloats(fields []string) ([]float64, bool) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func excerpt(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	if s == "" {
		return "(empty)"
	}
	return s
}
