package geo_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/geo"
	"github.com/katalvlaran/colony/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b geo.Coordinates
		want float64
		tol  float64
	}{
		{"same point", geo.Coordinates{Lat: 40.2, Lng: 28.9}, geo.Coordinates{Lat: 40.2, Lng: 28.9}, 0, 0},
		// One degree of longitude on the equator: R·π/180.
		{"equator degree", geo.Coordinates{}, geo.Coordinates{Lng: 1}, geo.EarthRadiusKm * math.Pi / 180, 1e-9},
		{"pole to pole", geo.Coordinates{Lat: 90}, geo.Coordinates{Lat: -90}, geo.EarthRadiusKm * math.Pi, 1e-6},
		{"antipodal on equator", geo.Coordinates{Lng: 0}, geo.Coordinates{Lng: 180}, geo.EarthRadiusKm * math.Pi, 1e-6},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, geo.Haversine(tc.a, tc.b), tc.tol)
			assert.Equal(t, geo.Haversine(tc.a, tc.b), geo.Haversine(tc.b, tc.a))
		})
	}
}

func TestHaversineMatrix_Campus(t *testing.T) {
	t.Parallel()

	stops := geo.CampusStops()
	m, labels, err := geo.HaversineMatrix(stops)
	require.NoError(t, err)
	require.Equal(t, len(stops), m.Rows())
	require.Len(t, labels, len(stops))
	require.Equal(t, stops[0].Name, labels[0])

	require.NoError(t, matrix.ValidateDistance(m, 0), "exactly symmetric")

	// The campus spans roughly one kilometre.
	st, err := matrix.DistanceStats(m)
	require.NoError(t, err)
	assert.Greater(t, st.Min, 0.0)
	assert.Less(t, st.Max, 2.0)

	res, err := aco.Optimize(m, aco.NewOptions(aco.WithAnts(10), aco.WithIterations(20), aco.WithSeed(1)))
	require.NoError(t, err)
	require.NoError(t, aco.ValidatePermutation(res.Route, len(stops)))
}

func TestLabels_Errors(t *testing.T) {
	t.Parallel()

	ok := geo.Coordinates{Lat: 1, Lng: 1}
	tests := []struct {
		name  string
		stops []geo.Stop
		want  error
	}{
		{"empty", nil, geo.ErrNoStops},
		{"no name", []geo.Stop{{Coordinates: ok}}, geo.ErrEmptyName},
		{"duplicate", []geo.Stop{{Name: "a", Coordinates: ok}, {Name: "a", Coordinates: ok}}, geo.ErrDuplicateName},
		{"lat range", []geo.Stop{{Name: "a", Coordinates: geo.Coordinates{Lat: 91}}}, geo.ErrBadCoordinates},
		{"lng range", []geo.Stop{{Name: "a", Coordinates: geo.Coordinates{Lng: -180.5}}}, geo.ErrBadCoordinates},
		{"NaN", []geo.Stop{{Name: "a", Coordinates: geo.Coordinates{Lat: math.NaN()}}}, geo.ErrBadCoordinates},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := geo.HaversineMatrix(tc.stops)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCampusStops_FreshCopy(t *testing.T) {
	a := geo.CampusStops()
	a[0].Name = "changed"
	b := geo.CampusStops()
	assert.NotEqual(t, "changed", b[0].Name)
	assert.Len(t, b, 10)
}
