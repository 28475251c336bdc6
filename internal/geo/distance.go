// Package geo implements great-circle distance and proximity ranking for
// directory search results.
package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance calculates the great-circle distance between two points in
// kilometers using the haversine formula. Symmetric in its arguments.
func Distance(p1, p2 orb.Point) float64 {
	lat1Rad := p1[1] * math.Pi / 180
	lng1Rad := p1[0] * math.Pi / 180
	lat2Rad := p2[1] * math.Pi / 180
	lng2Rad := p2[0] * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceTo computes the distance from origin to a candidate location.
// A missing point on either side is not an error, just unrankable: ok is
// false and the distance is undefined.
func DistanceTo(origin, candidate *orb.Point) (km float64, ok bool) {
	if origin == nil || candidate == nil {
		return 0, false
	}

	return Distance(*origin, *candidate), true
}

// Ranked pairs a candidate with its computed distance from the origin.
// Unrankable candidates carry HasDistance=false and sort last.
type Ranked[T any] struct {
	Item        T
	DistanceKm  float64
	HasDistance bool
}

// RankByDistance stable-sorts candidates ascending by distance from origin.
// Candidates without a resolvable location are treated as +Inf away, so they
// keep their relative order at the end of the result. Ranking an already
// ranked list with the same origin yields the same order.
func RankByDistance[T any](origin orb.Point, candidates []T, locate func(T) *orb.Point) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(candidates))
	for _, candidate := range candidates {
		km, ok := DistanceTo(&origin, locate(candidate))
		ranked = append(ranked, Ranked[T]{Item: candidate, DistanceKm: km, HasDistance: ok})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sortKey() < ranked[j].sortKey()
	})

	return ranked
}

func (r Ranked[T]) sortKey() float64 {
	if !r.HasDistance {
		return math.Inf(1)
	}

	return r.DistanceKm
}
