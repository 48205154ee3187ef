// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/colony/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceStats(t *testing.T) {
	t.Parallel()

	// Off-diagonal cells: 1,2,1,3,2,3 → sorted 1,1,2,2,3,3.
	m := mustRows(t, [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}})
	st, err := matrix.DistanceStats(m)
	require.NoError(t, err)

	assert.Equal(t, 6, st.Count)
	assert.Equal(t, 1.0, st.Min)
	assert.Equal(t, 3.0, st.Max)
	assert.InDelta(t, 2.0, st.Mean, 1e-12)
	assert.InDelta(t, 2.0, st.Median, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), st.Std, 1e-12)
}

func TestDistanceStats_SkipsNonFiniteAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	m := mustRows(t, [][]float64{{0, math.Inf(1)}, {4, 0}})
	st, err := matrix.DistanceStats(m)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 4.0, st.Median)

	one := mustRows(t, [][]float64{{0}})
	_, err = matrix.DistanceStats(one)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestNearestNeighbors(t *testing.T) {
	t.Parallel()

	m := mustRows(t, [][]float64{
		{0, 5, 2, 2, math.Inf(1)},
		{5, 0, 1, 1, 1},
		{2, 1, 0, 1, 1},
		{2, 1, 1, 0, 1},
		{math.Inf(1), 1, 1, 1, 0},
	})
	before := m.String()

	got, err := matrix.NearestNeighbors(m, 0, 3)
	require.NoError(t, err)
	require.Equal(t, []matrix.Neighbor{{Index: 2, Distance: 2}, {Index: 3, Distance: 2}, {Index: 1, Distance: 5}}, got)
	require.Equal(t, before, m.String(), "query must not mutate the matrix")

	got, err = matrix.NearestNeighbors(m, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 3, "the +Inf cell is excluded")

	got, err = matrix.NearestNeighbors(m, 0, 0)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = matrix.NearestNeighbors(m, 7, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestNormalizeByMax(t *testing.T) {
	t.Parallel()

	m := mustRows(t, [][]float64{{0, 2}, {4, 0}})
	out, err := matrix.NormalizeByMax(m)
	require.NoError(t, err)
	require.Equal(t, "[0, 0.5]\n[1, 0]\n", out.String())
	require.Equal(t, "[0, 2]\n[4, 0]\n", m.String())

	zero := mustRows(t, [][]float64{{0, 0}, {0, 0}})
	out, err = matrix.NormalizeByMax(zero)
	require.NoError(t, err)
	require.Equal(t, zero.String(), out.String())

	_, err = matrix.NormalizeByMax(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
