// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts birth locations of saved profiles to GeoJSON FeatureCollections

package geojson

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/models"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude] for a Point.
type PointCoordinates [2]float64

// ChartLookup resolves a profile ID to its computed chart, or nil.
type ChartLookup func(profileID uuid.UUID) *chart.Chart

// ToPointsFeatureCollection converts profiles to a FeatureCollection of birth
// place Points. Profiles without a location are skipped.
func ToPointsFeatureCollection(profiles []*models.Profile, lookup ChartLookup) *FeatureCollection {
	features := make([]Feature, 0, len(profiles))

	for _, p := range profiles {
		if !p.HasLocation() {
			continue
		}

		props := map[string]interface{}{
			"name":    p.Name,
			"born_at": p.BornAt.UTC().Format(time.RFC3339),
		}
		if lookup != nil {
			if c := lookup(p.ID); c != nil {
				addChartProperties(props, c)
			}
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{*p.Longitude, *p.Latitude},
			},
			Properties: props,
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func addChartProperties(props map[string]interface{}, c *chart.Chart) {
	if sun, ok := c.Planet("sun"); ok {
		props["sun_sign"] = string(sun.Sign)
	}
	if moon, ok := c.Planet("moon"); ok {
		props["moon_sign"] = string(moon.Sign)
	}
	if c.HasHouses() {
		props["ascendant"] = models.Round3(*c.Ascendant)
		props["ascendant_sign"] = string(c.AscendantSign)
	}
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
