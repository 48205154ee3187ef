// Package aco provides an Ant Colony Optimization engine for the closed-tour
// routing problem (symmetric TSP) on a distance matrix (matrix.Matrix).
//
// One call to Optimize runs a colony for a fixed number of iterations:
//
//   - every ant picks a uniformly random start stop and builds a complete
//     tour, choosing each next stop with probability proportional to
//     pheromone^Alpha · (1/distance)^Beta over the unvisited stops;
//   - after all ants of an iteration finish, every trail evaporates by
//     Evaporation and each ant deposits Q/length on the edges of its tour;
//   - the best tour found so far is recorded after every iteration.
//
// The distance matrix must be square, finite, symmetric, zero on the
// diagonal and non-negative, with at least two stops. Invalid input is
// rejected before any work starts (ErrValidation, ErrDegenerateInput,
// ErrConfiguration).
//
// Determinism: a fixed Options.Seed reproduces the result bit for bit,
// regardless of Options.Workers. Each ant owns a random stream derived
// from the run seed, and parallel ants are merged back in ant order.
//
// The package does not log and performs no I/O.
package aco
