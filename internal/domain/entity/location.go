// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/paulmach/orb"
)

// Location is a geographic coordinate pair attached to a provider.
type Location struct {
	Latitude  float64 `json:"latitude"`  // The geographic latitude in degrees.
	Longitude float64 `json:"longitude"` // The geographic longitude in degrees.
}

// IsValid reports whether both coordinates are finite numbers.
// A record with unparseable coordinates is rejected at creation and never persisted.
func (l Location) IsValid() bool {
	return isFinite(l.Latitude) && isFinite(l.Longitude)
}

// Point converts the location to an orb.Point (longitude first, per orb convention).
func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
