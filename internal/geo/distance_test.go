package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	delhi  = orb.Point{77.2090, 28.6139}
	mumbai = orb.Point{72.8777, 19.0760}
)

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Zero(t, Distance(delhi, delhi))
	assert.Zero(t, Distance(mumbai, mumbai))
}

func TestDistance_Symmetric(t *testing.T) {
	assert.Equal(t, Distance(delhi, mumbai), Distance(mumbai, delhi))
}

func TestDistance_DelhiToMumbai(t *testing.T) {
	// Great-circle distance Delhi to Mumbai is roughly 1150 km.
	km := Distance(delhi, mumbai)
	assert.InDelta(t, 1150, km, 30)
}

func TestDistanceTo_MissingPoints(t *testing.T) {
	_, ok := DistanceTo(nil, &mumbai)
	assert.False(t, ok)

	_, ok = DistanceTo(&delhi, nil)
	assert.False(t, ok)

	km, ok := DistanceTo(&delhi, &mumbai)
	assert.True(t, ok)
	assert.Greater(t, km, 1000.0)
}

type site struct {
	name string
	loc  *orb.Point
}

func locateSite(s site) *orb.Point { return s.loc }

func TestRankByDistance_NearestFirst(t *testing.T) {
	candidates := []site{
		{name: "Mumbai Hospital", loc: &mumbai},
		{name: "Delhi Clinic", loc: &delhi},
	}

	ranked := RankByDistance(delhi, candidates, locateSite)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Delhi Clinic", ranked[0].Item.name)
	assert.Zero(t, ranked[0].DistanceKm)
	assert.Equal(t, "Mumbai Hospital", ranked[1].Item.name)
	assert.InDelta(t, 1150, ranked[1].DistanceKm, 30)
}

func TestRankByDistance_MissingLocationSortsLast(t *testing.T) {
	candidates := []site{
		{name: "Nowhere A"},
		{name: "Mumbai Hospital", loc: &mumbai},
		{name: "Nowhere B"},
	}

	ranked := RankByDistance(delhi, candidates, locateSite)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Mumbai Hospital", ranked[0].Item.name)
	// Unrankable candidates keep their relative order at the tail.
	assert.Equal(t, "Nowhere A", ranked[1].Item.name)
	assert.False(t, ranked[1].HasDistance)
	assert.Equal(t, "Nowhere B", ranked[2].Item.name)
}

func TestRankByDistance_Idempotent(t *testing.T) {
	candidates := []site{
		{name: "Mumbai Hospital", loc: &mumbai},
		{name: "Delhi Clinic", loc: &delhi},
		{name: "Unlocated"},
	}

	first := RankByDistance(delhi, candidates, locateSite)

	reordered := make([]site, 0, len(first))
	for _, r := range first {
		reordered = append(reordered, r.Item)
	}
	second := RankByDistance(delhi, reordered, locateSite)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Item.name, second[i].Item.name)
	}
}
