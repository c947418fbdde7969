// ABOUTME: Zodiac sign table and longitude-to-sign mapping
// ABOUTME: Each sign spans 30 degrees of ecliptic longitude starting at 0 Aries

package models

import "math"

// Sign is the name of a zodiac sign.
type Sign string

// Zodiac lists the twelve signs in ecliptic order.
var Zodiac = [12]Sign{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignIndex returns floor(longitude/30) mod 12, always in 0..11.
// Non-finite longitudes return -1.
func SignIndex(longitude float64) int {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return -1
	}
	i := int(math.Floor(longitude/30)) % 12
	if i < 0 {
		i += 12
	}
	return i
}

// SignOf returns the sign containing longitude, or "" for non-finite input.
func SignOf(longitude float64) Sign {
	i := SignIndex(longitude)
	if i < 0 {
		return ""
	}
	return Zodiac[i]
}
