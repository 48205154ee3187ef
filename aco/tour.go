// Package aco - tour utilities.
//
// Routes are open permutations of [0..n-1]; the closing edge back to the
// first stop is implicit. Helpers here operate purely on index sequences.
package aco

import "fmt"

// ValidatePermutation checks that route is a permutation of [0..n-1] of length n.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(route []int, n int) error {
	if n <= 0 || len(route) != n {
		return fmt.Errorf("route has %d stops, want %d: %w", len(route), n, ErrInvalidRoute)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = route[i]
		if v < 0 || v >= n {
			return fmt.Errorf("route[%d]=%d out of range: %w", i, v, ErrInvalidRoute)
		}
		if seen[v] {
			return fmt.Errorf("route[%d]=%d repeated: %w", i, v, ErrInvalidRoute)
		}
		seen[v] = true
	}

	return nil
}

// RotateToStart returns a copy of route rotated so that it begins at start.
// The closed tour is unchanged; only its reading origin moves.
//
// Complexity: O(n).
func RotateToStart(route []int, start int) ([]int, error) {
	pivot := -1
	for i, v := range route {
		if v == start {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return nil, fmt.Errorf("stop %d not on route: %w", start, ErrInvalidRoute)
	}
	out := make([]int, len(route))
	for i := range route {
		out[i] = route[(pivot+i)%len(route)]
	}

	return out, nil
}

// copyRoute returns an independent copy of route.
func copyRoute(route []int) []int {
	out := make([]int, len(route))
	copy(out, route)

	return out
}
