// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide read-only summaries over distance tables: off-diagonal
//     statistics, k-nearest neighbours and max-normalisation.
//   - Never mutate the input; every transform returns a fresh *Dense.
//
// Exposed API:
//   - DistanceStats(m)         -> Stats                 // min/max/mean/median/std of off-diagonal cells
//   - NearestNeighbors(m,i,k)  -> []Neighbor            // k closest other rows of row i
//   - NormalizeByMax(m)        -> *Dense                // copy scaled by the largest finite entry
//
// Determinism & Performance:
//   - Fixed i→j traversal for all loops; ties broken by lower index.
//   - Non-finite cells (NaN, ±Inf) are skipped by statistics and neighbours,
//     which keeps "no edge" sentinels from poisoning summaries.

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Operation name constants for unified error wrapping.
const (
	opDistanceStats    = "DistanceStats"
	opNearestNeighbors = "NearestNeighbors"
	opNormalizeByMax   = "NormalizeByMax"
)

// Stats summarises the off-diagonal cells of a square matrix.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64 // population standard deviation
	Count  int     // number of finite off-diagonal cells summarised
}

// Neighbor is one entry of a nearest-neighbour query.
type Neighbor struct {
	Index    int
	Distance float64
}

// DistanceStats computes Stats over finite off-diagonal entries of a square m.
//
// Errors:
//   - ErrNilMatrix / ErrNonSquare from ValidateSquare.
//   - ErrBadShape when no finite off-diagonal cell exists (e.g., 1×1).
//
// Complexity: Time O(n² log n) (median sort), Space O(n²).
func DistanceStats(m Matrix) (Stats, error) {
	if err := ValidateSquare(m); err != nil {
		return Stats{}, validatorErrorf(opDistanceStats, err)
	}
	var (
		n    = m.Rows()
		vals = make([]float64, 0, n*n)
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = m.At(i, j); err != nil {
				return Stats{}, validatorErrorf(opDistanceStats, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Stats{}, validatorErrorf(opDistanceStats, ErrBadShape)
	}

	slices.Sort(vals)
	var (
		cnt = float64(len(vals))
		sum float64
		sq  float64
		st  Stats
	)
	for _, v = range vals {
		sum += v
	}
	st.Count = len(vals)
	st.Min = vals[0]
	st.Max = vals[len(vals)-1]
	st.Mean = sum / cnt
	for _, v = range vals {
		sq += (v - st.Mean) * (v - st.Mean)
	}
	st.Std = math.Sqrt(sq / cnt)
	if mid := len(vals) / 2; len(vals)%2 == 1 {
		st.Median = vals[mid]
	} else {
		st.Median = (vals[mid-1] + vals[mid]) / 2
	}

	return st, nil
}

// NearestNeighbors returns up to k rows closest to row i, ordered by distance
// ascending then index ascending. Row i itself and non-finite cells are
// excluded. k<=0 yields an empty slice.
//
// Errors:
//   - ErrNilMatrix / ErrNonSquare from ValidateSquare.
//   - ErrOutOfRange when i is not a valid row.
//
// Complexity: Time O(n log n), Space O(n).
func NearestNeighbors(m Matrix, i, k int) ([]Neighbor, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, validatorErrorf(opNearestNeighbors, err)
	}
	n := m.Rows()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%s: row %d: %w", opNearestNeighbors, i, ErrOutOfRange)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	var (
		out = make([]Neighbor, 0, n-1)
		j   int
		v   float64
		err error
	)
	for j = 0; j < n; j++ {
		if j == i {
			continue
		}
		if v, err = m.At(i, j); err != nil {
			return nil, validatorErrorf(opNearestNeighbors, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, Neighbor{Index: j, Distance: v})
	}
	slices.SortStableFunc(out, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	if len(out) > k {
		out = out[:k]
	}

	return out, nil
}

// NormalizeByMax returns a copy of m with every cell divided by the largest
// finite cell. When that maximum is 0 the copy is returned unscaled.
//
// Errors:
//   - ErrNilMatrix from ValidateNotNil.
//
// Complexity: Time O(r*c), Space O(r*c).
func NormalizeByMax(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, validatorErrorf(opNormalizeByMax, err)
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, validatorErrorf(opNormalizeByMax, err)
	}

	var (
		maxV float64
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, validatorErrorf(opNormalizeByMax, err)
			}
			out.data[i*out.c+j] = v
			if !math.IsInf(v, 0) && !math.IsNaN(v) && v > maxV {
				maxV = v
			}
		}
	}
	if maxV == 0 {
		return out, nil
	}
	for i = range out.data {
		out.data[i] /= maxV
	}

	return out, nil
}
