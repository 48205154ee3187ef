// Package aco - colony configuration.
//
// Options is an immutable value: callers build it once (DefaultOptions or
// NewOptions with functional options), Optimize only reads it. Omitted
// functional options keep the documented defaults.
package aco

import (
	"fmt"
	"math"

	"github.com/katalvlaran/colony/matrix"
)

// Documented defaults.
const (
	DefaultAnts        = 20
	DefaultIterations  = 100
	DefaultAlpha       = 1.0
	DefaultBeta        = 5.0
	DefaultEvaporation = 0.5
	DefaultQ           = 100.0
	DefaultWorkers     = 1
)

// Options configures one colony run.
type Options struct {
	// Ants is the number of tours built per iteration (≥1).
	Ants int

	// Iterations is the number of construct→evaporate→reinforce rounds (≥1).
	Iterations int

	// Alpha is the pheromone influence exponent (≥0).
	Alpha float64

	// Beta is the heuristic (inverse distance) influence exponent (≥0).
	Beta float64

	// Evaporation is the fraction of every trail removed per iteration, in [0,1].
	Evaporation float64

	// Q is the reinforcement constant; each ant deposits Q/length (>0).
	Q float64

	// Seed fixes the random stream. nil draws a fresh seed from the clock;
	// the seed used is reported in Result.Seed.
	Seed *int64

	// Workers bounds how many ants build tours concurrently within one
	// iteration. 0 and 1 run sequentially. The result does not depend on it.
	Workers int

	// SymmetryTol is the absolute tolerance of the symmetry check.
	SymmetryTol float64

	// OnIteration, when non-nil, is called synchronously after every iteration.
	OnIteration func(IterationStats)
}

// Option mutates Options during NewOptions.
type Option func(*Options)

// DefaultOptions returns the documented defaults: 20 ants, 100 iterations,
// alpha 1, beta 5, evaporation 0.5, q 100, no seed, sequential construction.
func DefaultOptions() Options {
	return Options{
		Ants:        DefaultAnts,
		Iterations:  DefaultIterations,
		Alpha:       DefaultAlpha,
		Beta:        DefaultBeta,
		Evaporation: DefaultEvaporation,
		Q:           DefaultQ,
		Workers:     DefaultWorkers,
		SymmetryTol: matrix.DefaultSymmetryTol,
	}
}

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// WithAnts sets the number of ants per iteration.
func WithAnts(n int) Option { return func(o *Options) { o.Ants = n } }

// WithIterations sets the number of iterations.
func WithIterations(n int) Option { return func(o *Options) { o.Iterations = n } }

// WithAlpha sets the pheromone exponent.
func WithAlpha(a float64) Option { return func(o *Options) { o.Alpha = a } }

// WithBeta sets the heuristic exponent.
func WithBeta(b float64) Option { return func(o *Options) { o.Beta = b } }

// WithEvaporation sets the evaporation rate.
func WithEvaporation(r float64) Option { return func(o *Options) { o.Evaporation = r } }

// WithQ sets the reinforcement constant.
func WithQ(q float64) Option { return func(o *Options) { o.Q = q } }

// WithSeed fixes the random seed.
func WithSeed(s int64) Option {
	return func(o *Options) {
		v := s
		o.Seed = &v
	}
}

// WithWorkers sets the per-iteration construction parallelism.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithSymmetryTol sets the symmetry tolerance used during validation.
func WithSymmetryTol(tol float64) Option { return func(o *Options) { o.SymmetryTol = tol } }

// WithOnIteration installs a per-iteration observer.
func WithOnIteration(fn func(IterationStats)) Option {
	return func(o *Options) { o.OnIteration = fn }
}

// Validate checks Options without touching any matrix.
// The returned error matches ErrConfiguration and the specific cause.
//
// Complexity: O(1).
func (o Options) Validate() error {
	switch {
	case o.Ants < 1:
		return configErrorf(fmt.Sprintf("ants=%d", o.Ants), ErrBadAnts)
	case o.Iterations < 1:
		return configErrorf(fmt.Sprintf("iterations=%d", o.Iterations), ErrBadIterations)
	case !finiteNonNegative(o.Alpha):
		return configErrorf(fmt.Sprintf("alpha=%g", o.Alpha), ErrBadExponent)
	case !finiteNonNegative(o.Beta):
		return configErrorf(fmt.Sprintf("beta=%g", o.Beta), ErrBadExponent)
	case math.IsNaN(o.Evaporation) || o.Evaporation < 0 || o.Evaporation > 1:
		return configErrorf(fmt.Sprintf("evaporation=%g", o.Evaporation), ErrBadEvaporation)
	case math.IsNaN(o.Q) || math.IsInf(o.Q, 0) || o.Q <= 0:
		return configErrorf(fmt.Sprintf("q=%g", o.Q), ErrBadQ)
	case o.Workers < 0:
		return configErrorf(fmt.Sprintf("workers=%d", o.Workers), ErrBadWorkers)
	case !finiteNonNegative(o.SymmetryTol):
		return configErrorf(fmt.Sprintf("symmetry tolerance=%g", o.SymmetryTol), ErrBadTolerance)
	}

	return nil
}

func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}

// configErrorf joins ErrConfiguration, the offending field and its cause.
func configErrorf(detail string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, detail, cause)
}
