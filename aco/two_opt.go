// Package aco - 2-opt local search post-pass.
//
// TwoOpt performs deterministic first-improvement 2-opt on a route produced
// by Optimize (or any permutation). For cut points 1 ≤ i < k ≤ n−1 on the
// closed sequence T = route + route[0] it evaluates
//
//	Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d),  a=T[i−1], b=T[i], c=T[k], d=T[k+1]
//
// and reverses T[i..k] whenever Δ < −eps. The first stop stays fixed.
//
// Design:
//   - Deterministic scanning order; no RNG usage.
//   - The returned length is recomputed from scratch, so it equals
//     TourLength(dist, route) exactly rather than an accumulated Δ sum.
//   - Symmetric instances only (the colony already requires symmetry).
//
// Complexity:
//   - One pass: O(n²) candidate checks; first-improvement restarts after each move.
//   - Overall: O(moves·n²) time; O(n²) extra space for the weight snapshot.
package aco

import (
	"fmt"

	"github.com/katalvlaran/colony/matrix"
)

// twoOptEps is the strict improvement threshold for accepting a move.
const twoOptEps = 1e-12

// TwoOpt improves route by 2-opt moves until a local optimum or maxMoves
// accepted moves (maxMoves ≤ 0 ⇒ unlimited). route is not modified.
//
// Errors:
//   - ErrValidation wrapping the matrix sentinel when dist breaks the contract.
//   - ErrInvalidRoute when route is not a permutation of dist's stops.
func TwoOpt(dist matrix.Matrix, route []int, maxMoves int) ([]int, float64, error) {
	if err := matrix.ValidateDistance(dist, matrix.DefaultSymmetryTol); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	n := dist.Rows()
	if err := ValidatePermutation(route, n); err != nil {
		return nil, 0, err
	}
	ct, err := newCostTable(dist, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if n < 4 {
		// Every tour over ≤3 stops has the same length.
		out := copyRoute(route)
		return out, ct.length(out), nil
	}
	at := func(u, v int) float64 { return ct.dist[u*n+v] }

	// Closed working copy: cur[n] == cur[0].
	cur := make([]int, n+1)
	copy(cur, route)
	cur[n] = route[0]

	accepted := 0
	for {
		improved := false

		var (
			a, b, c, d int
			delta      float64
			i, k       int
		)
		for i = 1; i <= n-2 && !improved; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b, c, d = cur[i-1], cur[i], cur[k], cur[k+1]
				delta = (at(a, c) + at(b, d)) - (at(a, b) + at(c, d))
				if delta >= -twoOptEps {
					continue
				}
				reverseInPlace(cur, i, k)
				accepted++
				improved = true
				break
			}
		}
		if !improved || (maxMoves > 0 && accepted >= maxMoves) {
			break
		}
	}

	out := cur[:n:n]
	return out, ct.length(out), nil
}

// reverseInPlace reverses a[i..k] inclusive.
//
// Complexity: O(k−i).
func reverseInPlace(a []int, i, k int) {
	for i < k {
		a[i], a[k] = a[k], a[i]
		i++
		k--
	}
}
