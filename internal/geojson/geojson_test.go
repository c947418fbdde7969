// ABOUTME: Unit tests for GeoJSON generation
// ABOUTME: Tests the birth place Point feature collection builder

package geojson

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/models"
)

func fptr(f float64) *float64 { return &f }

var born = time.Date(1986, 12, 22, 8, 34, 0, 0, time.UTC)

func TestToPointsFeatureCollection(t *testing.T) {
	profiles := []*models.Profile{
		models.NewProfile("darpan", born, fptr(28.6), fptr(77.2)),
	}

	fc := ToPointsFeatureCollection(profiles, nil)

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Type != "Feature" {
		t.Errorf("expected Feature type, got %s", feature.Type)
	}
	if feature.Geometry.Type != "Point" {
		t.Errorf("expected Point geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(PointCoordinates)
	if !ok {
		t.Fatal("expected PointCoordinates")
	}
	// GeoJSON uses [lng, lat] order
	if coords[0] != 77.2 {
		t.Errorf("expected longitude 77.2, got %f", coords[0])
	}
	if coords[1] != 28.6 {
		t.Errorf("expected latitude 28.6, got %f", coords[1])
	}

	if feature.Properties["name"] != "darpan" {
		t.Errorf("expected name 'darpan', got %v", feature.Properties["name"])
	}
	if feature.Properties["born_at"] != "1986-12-22T08:34:00Z" {
		t.Errorf("expected born_at, got %v", feature.Properties["born_at"])
	}
	if _, ok := feature.Properties["sun_sign"]; ok {
		t.Error("chart properties set without lookup")
	}
}

func TestToPointsFeatureCollection_SkipsNoLocation(t *testing.T) {
	profiles := []*models.Profile{
		models.NewProfile("nowhere", born, nil, nil),
		models.NewProfile("darpan", born, fptr(28.6), fptr(77.2)),
	}

	fc := ToPointsFeatureCollection(profiles, nil)
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "darpan" {
		t.Errorf("wrong profile kept: %v", fc.Features[0].Properties["name"])
	}
}

func TestToPointsFeatureCollection_WithCharts(t *testing.T) {
	p := models.NewProfile("darpan", born, fptr(28.6), fptr(77.2))
	cusps := ephemeris.Cusps{330.4012, 0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300}
	asc := cusps[0]
	c := &chart.Chart{
		Positions: []*models.BodyPosition{
			models.NewBodyPosition(0, "sun", "Sun", 270.19, 0, 1, 1.019, 0, 0),
			models.NewBodyPosition(1, "moon", "Moon", 15.5, 0, 1, 13.2, 0, 0),
		},
		Houses:        &cusps,
		Ascendant:     &asc,
		AscendantSign: models.SignOf(asc),
	}

	lookup := func(id uuid.UUID) *chart.Chart {
		if id == p.ID {
			return c
		}
		return nil
	}

	fc := ToPointsFeatureCollection([]*models.Profile{p}, lookup)
	props := fc.Features[0].Properties

	if props["sun_sign"] != "Capricorn" {
		t.Errorf("expected sun_sign Capricorn, got %v", props["sun_sign"])
	}
	if props["moon_sign"] != "Aries" {
		t.Errorf("expected moon_sign Aries, got %v", props["moon_sign"])
	}
	if props["ascendant_sign"] != "Pisces" {
		t.Errorf("expected ascendant_sign Pisces, got %v", props["ascendant_sign"])
	}
	if props["ascendant"] != 330.401 {
		t.Errorf("expected rounded ascendant, got %v", props["ascendant"])
	}
}

func TestToPointsFeatureCollection_Empty(t *testing.T) {
	fc := ToPointsFeatureCollection(nil, nil)

	data, err := fc.ToJSON()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"type":"FeatureCollection","features":[]}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestFeatureCollection_ToJSON(t *testing.T) {
	fc := ToPointsFeatureCollection([]*models.Profile{
		models.NewProfile("darpan", born, fptr(28.6), fptr(77.2)),
	}, nil)

	jsonBytes, err := fc.ToJSONIndent()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if parsed["type"] != "FeatureCollection" {
		t.Error("expected type FeatureCollection in JSON")
	}
	features := parsed["features"].([]interface{})
	geometry := features[0].(map[string]interface{})["geometry"].(map[string]interface{})
	coords := geometry["coordinates"].([]interface{})
	if coords[0] != 77.2 || coords[1] != 28.6 {
		t.Errorf("expected [77.2, 28.6], got %v", coords)
	}
}
