// Package aco - cost utilities.
//
// costTable is a read-only snapshot of the validated distance matrix taken
// once per run: flat distances for scoring and the precomputed heuristic
// term (1/d)^beta for construction. Ants share it by pointer without locks.
//
// TourLength is the public scorer for any route over any matrix.Matrix; it
// sums edges in the same order as the internal scorer, so a route scores
// bit-identically through both.
package aco

import (
	"fmt"
	"math"

	"github.com/katalvlaran/colony/matrix"
)

type costTable struct {
	n       int
	dist    []float64 // dist[i*n+j]
	etaBeta []float64 // (1/dist)^beta, or 0 where dist == 0
}

// newCostTable copies dist into flat buffers and precomputes the heuristic.
// dist must already satisfy matrix.ValidateDistance.
//
// Complexity: O(n²) time and space.
func newCostTable(dist matrix.Matrix, beta float64) (*costTable, error) {
	var (
		n    = dist.Rows()
		ct   = &costTable{n: n, dist: make([]float64, n*n), etaBeta: make([]float64, n*n)}
		i, j int
		d    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if d, err = dist.At(i, j); err != nil {
				return nil, err
			}
			ct.dist[i*n+j] = d
			if d > 0 {
				ct.etaBeta[i*n+j] = math.Pow(1/d, beta)
			}
		}
	}

	return ct, nil
}

// length sums the closed tour. Routes of length ≤1 cost 0.
//
// Complexity: O(len(route)).
func (ct *costTable) length(route []int) float64 {
	if len(route) < 2 {
		return 0
	}
	var (
		sum float64
		k   int
	)
	for k = 0; k < len(route)-1; k++ {
		sum += ct.dist[route[k]*ct.n+route[k+1]]
	}
	sum += ct.dist[route[len(route)-1]*ct.n+route[0]]

	return sum
}

// TourLength returns the length of route as a closed tour over dist:
// Σ dist[route[i]][route[i+1]] for i in [0, len-2] plus the closing edge
// dist[route[len-1]][route[0]]. Routes with fewer than two stops cost 0.
// The function is pure; it does not require route to be a permutation.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrNonSquare for a malformed matrix.
//   - ErrInvalidRoute when a stop index is outside [0, n).
//
// Complexity: O(len(route)).
func TourLength(dist matrix.Matrix, route []int) (float64, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, err
	}
	n := dist.Rows()
	for k, v := range route {
		if v < 0 || v >= n {
			return 0, fmt.Errorf("route[%d]=%d with %d stops: %w", k, v, n, ErrInvalidRoute)
		}
	}
	if len(route) < 2 {
		return 0, nil
	}

	var (
		sum  float64
		w    float64
		err  error
		k    int
		last = len(route) - 1
	)
	for k = 0; k < last; k++ {
		if w, err = dist.At(route[k], route[k+1]); err != nil {
			return 0, err
		}
		sum += w
	}
	if w, err = dist.At(route[last], route[0]); err != nil {
		return 0, err
	}
	sum += w

	return sum, nil
}
