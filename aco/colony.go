// Package aco - colony runner.
//
// Optimize drives one run through its stages:
//
//	validating → ready → iterating → done
//
//   - validating: Options, then the distance matrix, then its size. Any
//     failure returns before a single pheromone cell is allocated.
//   - ready: snapshot costs, allocate trails at 1.0, best = +Inf, history empty.
//   - iterating: per iteration, every ant builds and scores a tour against the
//     same unmutated trails; the global best is updated in ant order
//     (strictly shorter wins, ties keep the earlier tour); trails evaporate,
//     then every ant reinforces its own tour with Q/length; history records
//     the global best. The next iteration never starts before this barrier.
//   - done: the best tour, its length and the history are returned.
//
// Parallelism: with Workers > 1 the ants of one iteration run on an
// errgroup bounded by Workers. Each ant owns its stream and writes only its
// own result slot, so the merge is identical to the sequential path.
package aco

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/colony/matrix"
	"golang.org/x/sync/errgroup"
)

// run is the private state of one Optimize call.
type run struct {
	opts    Options
	n       int
	seed    int64
	build   constructor
	trails  *pheromones
	streams []*rand.Rand

	// per-iteration scratch, one slot per ant
	routes  [][]int
	lengths []float64

	bestRoute []int
	bestDist  float64
	bestIter  int
	conv      *convergence
}

// Optimize searches for a short closed tour over dist.
//
// Contract:
//   - opts must pass Options.Validate (else ErrConfiguration).
//   - dist must pass matrix.ValidateDistance with opts.SymmetryTol (else ErrValidation).
//   - dist must hold at least two stops (else ErrDegenerateInput).
//   - dist is only read; it must not be mutated while Optimize runs.
//
// Determinism: identical dist and opts with a fixed seed give an identical
// Result, for any Workers value.
//
// Complexity: O(Iterations · Ants · n²) time, O(n² + Ants·n) space.
func Optimize(dist matrix.Matrix, opts Options) (Result, error) {
	// Stage 1 - validating.
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := matrix.ValidateDistance(dist, opts.SymmetryTol); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if n := dist.Rows(); n < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrDegenerateInput, n)
	}

	// Stage 2 - ready.
	r, err := newRun(dist, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// Stage 3 - iterating.
	var it int
	for it = 0; it < opts.Iterations; it++ {
		if err = r.iterate(it); err != nil {
			return Result{}, err
		}
	}

	// Stage 4 - done.
	return Result{
		Route:         r.bestRoute,
		Distance:      r.bestDist,
		History:       r.conv.history(),
		BestIteration: r.bestIter,
		Seed:          r.seed,
	}, nil
}

// newRun allocates the run state for an already validated input.
func newRun(dist matrix.Matrix, opts Options) (*run, error) {
	costs, err := newCostTable(dist, opts.Beta)
	if err != nil {
		return nil, err
	}
	seed := resolveSeed(opts.Seed)

	return &run{
		opts:     opts,
		n:        costs.n,
		seed:     seed,
		build:    constructor{costs: costs, alpha: opts.Alpha},
		trails:   newPheromones(costs.n),
		streams:  antStreams(seed, opts.Ants),
		routes:   make([][]int, opts.Ants),
		lengths:  make([]float64, opts.Ants),
		bestDist: math.Inf(1),
		conv:     newConvergence(opts.Iterations),
	}, nil
}

// iterate performs one full construct → score → evaporate → reinforce → record round.
func (r *run) iterate(it int) error {
	if err := r.constructAll(); err != nil {
		return err
	}

	iterBest := math.Inf(1)
	var k int
	for k = 0; k < r.opts.Ants; k++ {
		if r.lengths[k] < iterBest {
			iterBest = r.lengths[k]
		}
		// Strictly shorter replaces; equal lengths keep the earlier tour.
		// A nil best only remains if every length overflowed to +Inf.
		if r.lengths[k] < r.bestDist || r.bestRoute == nil {
			r.bestDist = r.lengths[k]
			r.bestRoute = copyRoute(r.routes[k])
			r.bestIter = it
		}
	}

	r.trails.evaporate(r.opts.Evaporation)
	for k = 0; k < r.opts.Ants; k++ {
		r.trails.reinforce(r.routes[k], r.deposit(r.lengths[k]))
	}

	r.conv.record(r.bestDist)
	if r.opts.OnIteration != nil {
		r.opts.OnIteration(IterationStats{Iteration: it, IterationBest: iterBest, GlobalBest: r.bestDist})
	}

	return nil
}

// deposit is Q/length, or 0 for a zero-length tour.
func (r *run) deposit(length float64) float64 {
	if length <= 0 {
		return 0
	}

	return r.opts.Q / length
}

// constructAll lets every ant build and score one tour against the current
// trails. Trails are only read here.
func (r *run) constructAll() error {
	if r.opts.Workers <= 1 {
		for k := 0; k < r.opts.Ants; k++ {
			r.runAnt(k)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for k := 0; k < r.opts.Ants; k++ {
		k := k
		g.Go(func() error {
			r.runAnt(k)
			return nil
		})
	}

	return g.Wait()
}

// runAnt builds ant k's tour from a uniformly random start using its own stream.
func (r *run) runAnt(k int) {
	rng := r.streams[k]
	start := rng.Intn(r.n)
	route := r.build.buildRoute(start, r.trails, rng)
	r.routes[k] = route
	r.lengths[k] = r.build.costs.length(route)
}
