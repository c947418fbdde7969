// ABOUTME: Serialized chart document
// ABOUTME: Fixed shape with planets in catalog order, houses, and ascendant

package chart

import (
	"bytes"
	"encoding/json"

	"github.com/harper/astro/internal/models"
)

// Document is the serialized form of a Chart.
type Document struct {
	Planets   Planets   `json:"planets"`
	Houses    []float64 `json:"houses"`
	Ascendant *float64  `json:"ascendant"`
}

// Planets encodes as a JSON object keyed by body code, keeping catalog order.
type Planets []models.PositionView

// MarshalJSON writes the views as an ordered object.
func (p Planets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ByCode returns the views keyed by body code.
func (p Planets) ByCode() map[string]models.PositionView {
	m := make(map[string]models.PositionView, len(p))
	for _, v := range p {
		m[v.Code] = v
	}
	return m
}

// Document returns the chart's serialized form. Houses and ascendant are raw
// engine values; planet longitude and speed are rounded to 3 places.
func (c *Chart) Document() Document {
	doc := Document{
		Planets: make(Planets, len(c.Positions)),
	}
	for i, p := range c.Positions {
		doc.Planets[i] = p.View()
	}
	if c.Houses != nil {
		doc.Houses = append([]float64(nil), c.Houses[:]...)
		asc := *c.Ascendant
		doc.Ascendant = &asc
	}
	return doc
}

// MarshalJSON encodes the chart as its Document.
func (c *Chart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

// JSONIndent encodes the chart document with two-space indentation.
func (c *Chart) JSONIndent() ([]byte, error) {
	return json.MarshalIndent(c.Document(), "", "  ")
}
