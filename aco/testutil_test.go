// Package aco_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package aco_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/matrix"
	"github.com/stretchr/testify/require"
)

const (
	// seedDet is the fixed seed used by determinism-sensitive tests.
	seedDet = int64(42)

	// epsTiny is the tolerance for float comparisons that should be exact up to rounding.
	epsTiny = 1e-9
)

// fourCities is the 4-stop scenario matrix; every closed tour over it costs 14.
var fourCities = [][]float64{
	{0, 1, 2, 3},
	{1, 0, 4, 5},
	{2, 4, 0, 6},
	{3, 5, 6, 0},
}

// testDense is a minimal matrix.Matrix that, unlike matrix.Dense, may be 0×0.
type testDense struct{ a [][]float64 }

var _ matrix.Matrix = testDense{}

func (m testDense) Rows() int { return len(m.a) }
func (m testDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}

	return len(m.a[0])
}
func (m testDense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrIndexOutOfBounds
	}

	return m.a[i][j], nil
}
func (m testDense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrIndexOutOfBounds
	}
	m.a[i][j] = v

	return nil
}
func (m testDense) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	for i := range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}

	return testDense{a: cp}
}

// mustDense builds a *matrix.Dense from a literal or fails the test.
func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// ringMetric returns d(i,j) = min(|i-j|, n-|i-j|); the optimal tour costs n.
func ringMetric(n int) [][]float64 {
	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			diff := i - j
			if diff < 0 {
				diff = -diff
			}
			if n-diff < diff {
				diff = n - diff
			}
			a[i][j] = float64(diff)
		}
	}

	return a
}

// euclid returns the symmetric Euclidean distance matrix of pts.
func euclid(pts [][2]float64) [][]float64 {
	n := len(pts)
	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i != j {
				a[i][j] = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			}
		}
	}

	return a
}

// bruteForceOptimum enumerates all tours starting at 0 (n ≤ 8).
func bruteForceOptimum(t testing.TB, dist [][]float64) float64 {
	t.Helper()
	n := len(dist)
	m := mustDense(t, dist)
	rest := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		rest = append(rest, i)
	}

	best := math.Inf(1)
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			route := append([]int{0}, rest...)
			l, err := aco.TourLength(m, route)
			require.NoError(t, err)
			if l < best {
				best = l
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}

// requireNonIncreasing asserts history[i] >= history[i+1] for all i.
func requireNonIncreasing(t *testing.T, history []float64) {
	t.Helper()
	for i := 0; i+1 < len(history); i++ {
		require.GreaterOrEqualf(t, history[i], history[i+1], "history increased at %d: %v", i, history)
	}
}
