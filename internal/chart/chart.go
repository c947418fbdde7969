// ABOUTME: Astrological chart assembled from ephemeris engine output
// ABOUTME: Computes every catalog body, optional house cusps, and house placements

package chart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/models"
)

// NoHouse is the house number given to a longitude that no cusp interval
// contains. It only occurs with malformed cusp data.
const NoHouse = -1

// Input describes the moment and place of a chart.
type Input struct {
	Name string

	// Time is read as a UTC civil time: its wall clock fields are used as-is,
	// with no zone conversion. Seconds are ignored.
	Time time.Time

	Latitude  *float64
	Longitude *float64
}

// FromProfile builds chart input for a saved profile.
func FromProfile(p *models.Profile) Input {
	return Input{
		Name:      p.Name,
		Time:      p.BornAt,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

// Chart is a fully computed chart. House fields are either all set or all nil.
type Chart struct {
	Name      string
	Time      time.Time
	JulianDay float64
	Latitude  *float64
	Longitude *float64

	// Positions holds one entry per catalog body, in catalog order.
	Positions []*models.BodyPosition

	Houses        *ephemeris.Cusps
	Ascendant     *float64
	AscendantSign models.Sign
}

// Build computes a chart. Any engine failure aborts the build and is returned
// wrapped; a partial chart is never returned.
func Build(ctx context.Context, eng ephemeris.Engine, in Input) (*Chart, error) {
	t := in.Time
	hour := float64(t.Hour()) + float64(t.Minute())/60
	jd := eng.JulianDay(t.Year(), int(t.Month()), t.Day(), hour)

	c := &Chart{
		Name:      in.Name,
		Time:      t,
		JulianDay: jd,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Positions: make([]*models.BodyPosition, 0, models.BodyCount),
	}

	for _, b := range models.Bodies {
		xx, err := eng.ComputeBody(ctx, jd, b.Index)
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", b.Code, err)
		}
		c.Positions = append(c.Positions, models.NewBodyPosition(b.Index, b.Code, b.Name,
			xx.Longitude, xx.Latitude, xx.Distance,
			xx.LongitudeSpeed, xx.LatitudeSpeed, xx.DistanceSpeed))
	}

	if in.Latitude != nil && in.Longitude != nil {
		cusps, err := eng.ComputeHouses(ctx, jd, *in.Latitude, *in.Longitude)
		if err != nil {
			return nil, fmt.Errorf("compute houses: %w", err)
		}
		asc := cusps[0]
		c.Houses = &cusps
		c.Ascendant = &asc
		c.AscendantSign = models.SignOf(asc)

		for _, p := range c.Positions {
			h := FindHouse(cusps, p.Longitude)
			p.House = &h
		}
	}

	return c, nil
}

// FindHouse returns the first house i (0..11) whose circular interval
// [cusps[i], cusps[i+1]] contains lon. Both ends are inclusive, so a longitude
// on a cusp belongs to the earlier house. Returns NoHouse if nothing matches.
func FindHouse(cusps ephemeris.Cusps, lon float64) int {
	for i := 0; i < 12; i++ {
		lo, hi := cusps[i], cusps[(i+1)%12]
		if lo < hi {
			if lo <= lon && lon <= hi {
				return i
			}
		} else if lon >= lo || lon <= hi {
			return i
		}
	}
	return NoHouse
}

// HasHouses reports whether house cusps were computed.
func (c *Chart) HasHouses() bool {
	return c.Houses != nil
}

// Planet looks up a body position by catalog code.
func (c *Chart) Planet(code string) (*models.BodyPosition, bool) {
	b, ok := models.BodyByCode(code)
	if !ok {
		return nil, false
	}
	for _, p := range c.Positions {
		if p.Index == b.Index {
			return p, true
		}
	}
	return nil, false
}

// String summarizes the chart as "<name> <time>: <Sun sign>".
func (c *Chart) String() string {
	var sun models.Sign
	if p, ok := c.Planet("sun"); ok {
		sun = p.Sign
	}
	return fmt.Sprintf("%s %s: %s", c.Name, c.Time.Format("2006-01-02 15:04:05"), sun)
}

// Tags returns one "<Body>-in-<Sign>" tag per body, in catalog order.
func (c *Chart) Tags() []string {
	tags := make([]string, len(c.Positions))
	for i, p := range c.Positions {
		tags[i] = fmt.Sprintf("%s-in-%s", strings.ReplaceAll(p.Name, " ", "_"), p.Sign)
	}
	return tags
}
