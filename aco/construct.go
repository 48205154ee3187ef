// Package aco - probabilistic route construction.
//
// buildRoute is the only consumer of randomness in a run. For the current
// stop c and each unvisited candidate j it weighs
//
//	w(j) = tau[c][j]^alpha · eta[c][j]^beta,  eta = 1/d if d > 0 else 0,
//
// and draws the next stop with probability w(j)/Σw. Candidates are scanned
// in ascending index order so a given stream always makes the same choice.
//
// Numerical policy:
//   - Σw == 0 (no trail or no heuristic left): draw uniformly among the
//     unvisited candidates.
//   - Σw == +Inf (overflowing trails): draw uniformly among the candidates
//     whose own weight is +Inf, or proportionally after rescaling when only
//     the sum overflowed.
//   - NaN weights (0·Inf) count as 0.
package aco

import (
	"math"
	"math/rand"
)

// constructor holds the read-only inputs shared by all ants of a run.
type constructor struct {
	costs *costTable
	alpha float64
}

// buildRoute builds one closed tour starting at start, reading ph without
// mutating it. The returned route is a fresh permutation of [0, n).
//
// Complexity: O(n²) time, O(n) space.
func (c *constructor) buildRoute(start int, ph *pheromones, rng *rand.Rand) []int {
	var (
		n         = c.costs.n
		route     = make([]int, 0, n)
		unvisited = make([]int, 0, n-1)
		weights   = make([]float64, n)
		cur       = start
		j         int
	)
	route = append(route, start)
	for j = 0; j < n; j++ {
		if j != start {
			unvisited = append(unvisited, j)
		}
	}

	var (
		pick int
		sum  float64
		w    float64
		idx  int
		row  int
	)
	for len(unvisited) > 0 {
		row = cur * n
		sum = 0
		for idx, j = range unvisited {
			w = math.Pow(ph.at(cur, j), c.alpha) * c.costs.etaBeta[row+j]
			if math.IsNaN(w) {
				w = 0
			}
			weights[idx] = w
			sum += w
		}
		pick = choose(weights[:len(unvisited)], sum, rng)

		cur = unvisited[pick]
		route = append(route, cur)
		// Order-preserving removal keeps the candidate scan deterministic.
		unvisited = append(unvisited[:pick], unvisited[pick+1:]...)
	}

	return route
}

// choose draws an index from weights (all ≥0) whose total is sum.
// Exactly one rng draw is consumed per call.
//
// Complexity: O(len(weights)).
func choose(weights []float64, sum float64, rng *rand.Rand) int {
	switch {
	case sum == 0:
		return rng.Intn(len(weights))
	case math.IsInf(sum, 1):
		return chooseInfinite(weights, rng)
	}

	var (
		r        = rng.Float64() * sum
		acc      float64
		lastLive = -1
		i        int
	)
	for i = range weights {
		if weights[i] <= 0 {
			continue
		}
		lastLive = i
		acc += weights[i]
		if r < acc {
			return i
		}
	}

	// Rounding can leave r ≥ acc; the last positive weight absorbs it.
	return lastLive
}

// chooseInfinite draws uniformly among the +Inf weights. When the total
// overflowed from finite weights only, the weights are rescaled by their
// maximum and drawn proportionally instead.
func chooseInfinite(weights []float64, rng *rand.Rand) int {
	var (
		count int
		maxW  float64
		i     int
	)
	for i = range weights {
		if math.IsInf(weights[i], 1) {
			count++
		}
		if weights[i] > maxW {
			maxW = weights[i]
		}
	}
	if count == 0 {
		var sum float64
		for i = range weights {
			weights[i] /= maxW
			sum += weights[i]
		}
		return choose(weights, sum, rng)
	}

	target := rng.Intn(count)
	for i = range weights {
		if math.IsInf(weights[i], 1) {
			if target == 0 {
				return i
			}
			target--
		}
	}

	return len(weights) - 1
}
