// Package aco - pheromone trail state.
//
// pheromones is the single mutable state of a run. It is created by
// Optimize after validation, written only between iterations (evaporate,
// reinforce) and read concurrently by ants while they build tours. It never
// escapes the Optimize call that created it.
package aco

// initialTrail is the uniform starting strength of every trail.
const initialTrail = 1.0

// pheromones is an n×n row-major grid of non-negative trail strengths.
// The diagonal is initialized like any other cell but never read.
type pheromones struct {
	n   int
	tau []float64
}

// newPheromones allocates an n×n grid filled with initialTrail.
//
// Complexity: O(n²).
func newPheromones(n int) *pheromones {
	tau := make([]float64, n*n)
	for i := range tau {
		tau[i] = initialTrail
	}

	return &pheromones{n: n, tau: tau}
}

// at returns the trail strength on edge (i, j).
func (p *pheromones) at(i, j int) float64 { return p.tau[i*p.n+j] }

// evaporate scales every trail by (1 - rate) in place.
// A non-negative trail stays non-negative for rate ∈ [0,1].
//
// Complexity: O(n²).
func (p *pheromones) evaporate(rate float64) {
	keep := 1 - rate
	for i := range p.tau {
		p.tau[i] *= keep
	}
}

// reinforce adds delta to both directions of every edge of the closed tour
// route, including the closing edge route[len-1] → route[0].
//
// Complexity: O(len(route)).
func (p *pheromones) reinforce(route []int, delta float64) {
	if len(route) < 2 || delta == 0 {
		return
	}
	var (
		a, b int
		k    int
		last = len(route) - 1
	)
	for k = 0; k <= last; k++ {
		a = route[k]
		if k == last {
			b = route[0]
		} else {
			b = route[k+1]
		}
		p.tau[a*p.n+b] += delta
		p.tau[b*p.n+a] += delta
	}
}
