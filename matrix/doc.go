// Package matrix offers the dense cost-table representation shared by the
// colony packages.
//
// The matrix package provides:
//
//   - Matrix, a small bounds-checked interface, and Dense, its row-major
//     implementation with O(1) lookups and O(n²) memory.
//   - Validators for the distance-matrix contract: square, finite,
//     symmetric within a tolerance, zero diagonal, no negative entries.
//   - Read-only utilities over distance tables: off-diagonal statistics,
//     k-nearest neighbours and max-normalisation.
//
// No function in this package logs or panics on user input; failures are
// reported through the sentinels in errors.go.
package matrix
