// ABOUTME: Computed position of one body in a chart
// ABOUTME: Derives the zodiac sign and exposes a rounded serialization view

package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// BodyPosition holds a body's ecliptic longitude and its daily motion.
// Sign is derived from Longitude when the value is constructed.
type BodyPosition struct {
	Index     int
	Code      string
	Name      string
	Longitude float64
	Speed     float64
	Sign      Sign
	House     *int
}

// NewBodyPosition wraps raw engine output for one body. Only longitude and its
// rate of change are kept; latitude, distance and their rates are dropped.
// Longitude is expected in [0, 360) as produced by the engine.
func NewBodyPosition(index int, code, name string, lon, lat, dist, dlon, dlat, ddist float64) *BodyPosition {
	return &BodyPosition{
		Index:     index,
		Code:      code,
		Name:      name,
		Longitude: lon,
		Speed:     dlon,
		Sign:      SignOf(lon),
	}
}

// Retrograde reports whether the body moves backwards along the ecliptic.
func (p *BodyPosition) Retrograde() bool {
	return p.Speed < 0
}

// PositionView is the serialized shape of a BodyPosition.
type PositionView struct {
	Index int     `json:"index"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	DX    float64 `json:"dx"`
	Sign  Sign    `json:"sign"`
	House *int    `json:"house,omitempty"`
}

// View returns the position with longitude and speed rounded to 3 places.
func (p *BodyPosition) View() PositionView {
	return PositionView{
		Index: p.Index,
		Code:  p.Code,
		Name:  p.Name,
		X:     Round3(p.Longitude),
		DX:    Round3(p.Speed),
		Sign:  p.Sign,
		House: p.House,
	}
}

// Round3 rounds to 3 decimal places, half away from zero, working on the
// shortest decimal representation of f. Round3(1.2345) is 1.235.
func Round3(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, _ := decimal.NewFromFloat(f).Round(3).Float64()
	return r
}
