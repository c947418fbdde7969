// ABOUTME: Julian day conversion for civil UTC dates
// ABOUTME: Uses the proleptic Gregorian calendar, as the engine does

package ephemeris

import "github.com/soniakeys/meeus/v3/julian"

// JulianDay converts a Gregorian calendar date and fractional UTC hour to a Julian day.
func JulianDay(year, month, day int, hour float64) float64 {
	return julian.CalendarGregorianToJD(year, month, float64(day)+hour/24)
}
