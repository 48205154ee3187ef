package aco

// convergence is the append-only per-iteration record of the best distance.
// Values never increase because the global best only ever improves.
type convergence struct {
	values []float64
}

func newConvergence(iterations int) *convergence {
	return &convergence{values: make([]float64, 0, iterations)}
}

// record appends the best distance known after one completed iteration.
func (c *convergence) record(best float64) { c.values = append(c.values, best) }

// history hands the accumulated sequence to the caller.
func (c *convergence) history() []float64 { return c.values }
