// Package colony plans short closed routes over a set of stops with Ant
// Colony Optimization.
//
// Layout:
//
//	matrix/       - Dense cost table, distance-matrix validators, statistics
//	aco/          - the colony: Options, Optimize, TourLength, TwoOpt
//	geo/          - coordinates, great-circle distances, campus sample stops
//	distance/     - Provider boundary: haversine and OSRM tables, pair cache
//	store/        - SQLite distance cache and run history
//	cmd/colony/   - command-line front end
//
// Quick start:
//
//	dist, _ := matrix.NewDenseFromRows([][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}})
//	res, err := aco.Optimize(dist, aco.NewOptions(aco.WithSeed(42)))
//
// The core packages (matrix, aco, geo) are pure: no I/O, no logging, no
// global state. Runs are deterministic for a fixed seed, whatever the
// number of workers.
package colony
