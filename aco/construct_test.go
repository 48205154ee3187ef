package aco

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/colony/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConstructor(t *testing.T, rows [][]float64, alpha, beta float64) constructor {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	ct, err := newCostTable(m, beta)
	require.NoError(t, err)

	return constructor{costs: ct, alpha: alpha}
}

func TestBuildRoute_Permutation(t *testing.T) {
	c := newTestConstructor(t, [][]float64{
		{0, 2, 9, 10, 7},
		{2, 0, 6, 4, 3},
		{9, 6, 0, 8, 5},
		{10, 4, 8, 0, 6},
		{7, 3, 5, 6, 0},
	}, DefaultAlpha, DefaultBeta)
	ph := newPheromones(5)

	for seed := int64(0); seed < 50; seed++ {
		rng := rngFromSeed(seed)
		start := int(seed % 5)
		route := c.buildRoute(start, ph, rng)
		require.NoError(t, ValidatePermutation(route, 5))
		require.Equal(t, start, route[0])
	}
}

// All-zero distances leave every heuristic at 0, so every step falls back
// to a uniform draw.
func TestBuildRoute_UniformFallback(t *testing.T) {
	c := newTestConstructor(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, 1, 2)
	ph := newPheromones(3)

	seen := map[[3]int]bool{}
	rng := rngFromSeed(11)
	for i := 0; i < 200; i++ {
		route := c.buildRoute(0, ph, rng)
		require.NoError(t, ValidatePermutation(route, 3))
		seen[[3]int{route[0], route[1], route[2]}] = true
	}
	assert.Len(t, seen, 2, "both orientations from stop 0 should appear")
}

// Trails do not mutate while a route is built.
func TestBuildRoute_ReadOnlyTrails(t *testing.T) {
	c := newTestConstructor(t, [][]float64{{0, 1, 2}, {1, 0, 1}, {2, 1, 0}}, 1, 1)
	ph := newPheromones(3)
	ph.reinforce([]int{0, 1, 2}, 3)
	before := append([]float64(nil), ph.tau...)

	_ = c.buildRoute(2, ph, rngFromSeed(5))
	assert.Equal(t, before, ph.tau)
}

func TestBuildRoute_SameStreamSameRoute(t *testing.T) {
	c := newTestConstructor(t, [][]float64{
		{0, 3, 4, 2},
		{3, 0, 1, 5},
		{4, 1, 0, 6},
		{2, 5, 6, 0},
	}, 1, 2)
	ph := newPheromones(4)

	a := c.buildRoute(1, ph, rngFromSeed(99))
	b := c.buildRoute(1, ph, rngFromSeed(99))
	assert.Equal(t, a, b)
}

func TestChoose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inf := math.Inf(1)

	t.Run("zero sum is uniform in range", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			got := choose([]float64{0, 0, 0, 0}, 0, rng)
			require.GreaterOrEqual(t, got, 0)
			require.Less(t, got, 4)
		}
	})

	t.Run("single live weight always wins", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			require.Equal(t, 2, choose([]float64{0, 0, 5, 0}, 5, rng))
		}
	})

	t.Run("infinite weights share the draw", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			got := choose([]float64{1, inf, 2, inf}, inf, rng)
			require.Contains(t, []int{1, 3}, got)
		}
	})

	t.Run("overflowing finite sum rescales", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			w := []float64{math.MaxFloat64, 0, math.MaxFloat64}
			got := choose(w, w[0]+w[2], rng)
			require.Contains(t, []int{0, 2}, got)
		}
	})

	t.Run("rounding falls back to last live weight", func(t *testing.T) {
		// A sum larger than the real total forces r past the cumulative scan.
		got := choose([]float64{0, 1e-300, 0}, 1, rand.New(rand.NewSource(3)))
		require.Equal(t, 1, got)
	})
}
