package aco

import "errors"

// Error categories. Every error returned by Optimize matches exactly one of
// them via errors.Is, and additionally matches the precise cause (a matrix
// sentinel such as matrix.ErrAsymmetry, or one of the option sentinels below).
var (
	// ErrValidation reports a distance matrix that violates the contract
	// (nil, non-square, non-finite, asymmetric, non-zero diagonal, negative).
	ErrValidation = errors.New("aco: invalid distance matrix")

	// ErrDegenerateInput reports a matrix with fewer than two stops.
	ErrDegenerateInput = errors.New("aco: at least two stops are required")

	// ErrConfiguration reports invalid Options.
	ErrConfiguration = errors.New("aco: invalid configuration")
)

// Option-level causes, always wrapped together with ErrConfiguration.
var (
	ErrBadAnts        = errors.New("aco: ants must be >= 1")
	ErrBadIterations  = errors.New("aco: iterations must be >= 1")
	ErrBadEvaporation = errors.New("aco: evaporation rate must be within [0,1]")
	ErrBadQ           = errors.New("aco: q must be finite and > 0")
	ErrBadExponent    = errors.New("aco: alpha and beta must be finite and >= 0")
	ErrBadWorkers     = errors.New("aco: workers must be >= 0")
	ErrBadTolerance   = errors.New("aco: symmetry tolerance must be finite and >= 0")
)

// ErrInvalidRoute is returned by route helpers (TourLength, ValidatePermutation,
// TwoOpt) when a route holds out-of-range, duplicate or missing stops.
var ErrInvalidRoute = errors.New("aco: invalid route")

// Result is the outcome of one Optimize run. It is owned by the caller.
type Result struct {
	// Route is the best tour found: a permutation of [0..n-1] interpreted as a
	// closed cycle (the edge Route[n-1]→Route[0] is implicit).
	Route []int

	// Distance is the total length of Route including the closing edge.
	Distance float64

	// History holds, for every iteration, the best distance known after it.
	// len(History) == Options.Iterations and History is non-increasing.
	History []float64

	// BestIteration is the zero-based iteration in which Route was found.
	BestIteration int

	// Seed is the seed the run actually used. Replaying the run with
	// WithSeed(Seed) and the same options reproduces this Result.
	Seed int64
}

// IterationStats is delivered to Options.OnIteration after each iteration's
// pheromone update has completed.
type IterationStats struct {
	Iteration     int     // zero-based iteration index
	IterationBest float64 // shortest tour built by the ants of this iteration
	GlobalBest    float64 // best distance known after this iteration
}
