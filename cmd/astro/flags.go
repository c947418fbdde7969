// ABOUTME: Shared flag helpers for commands that take a birth place
// ABOUTME: Reads optional --lat/--lng flags and validates them together

package main

import (
	"github.com/harper/astro/internal/models"
	"github.com/spf13/cobra"
)

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("lat", 0, "birth latitude (-90 to 90)")
	cmd.Flags().Float64("lng", 0, "birth longitude (-180 to 180)")
}

// locationFromFlags returns nil coordinates for flags that were not given.
// Zero is a real coordinate, so presence is decided by Changed.
func locationFromFlags(cmd *cobra.Command) (*float64, *float64, error) {
	var lat, lng *float64
	if cmd.Flags().Changed("lat") {
		v, err := cmd.Flags().GetFloat64("lat")
		if err != nil {
			return nil, nil, err
		}
		lat = &v
	}
	if cmd.Flags().Changed("lng") {
		v, err := cmd.Flags().GetFloat64("lng")
		if err != nil {
			return nil, nil, err
		}
		lng = &v
	}
	if err := models.ValidateLocation(lat, lng); err != nil {
		return nil, nil, err
	}
	return lat, lng, nil
}
