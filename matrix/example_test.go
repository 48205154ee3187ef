// SPDX-License-Identifier: MIT
package matrix_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/colony/matrix"
)

// ExampleValidateDistance shows the first violated precondition being reported.
func ExampleValidateDistance() {
	ok, _ := matrix.NewDenseFromRows([][]float64{{0, 2}, {2, 0}})
	fmt.Println(matrix.ValidateDistance(ok, matrix.DefaultSymmetryTol))

	bad, _ := matrix.NewDenseFromRows([][]float64{{0, 2}, {3, 0}})
	err := matrix.ValidateDistance(bad, matrix.DefaultSymmetryTol)
	fmt.Println(errors.Is(err, matrix.ErrAsymmetry))
	// Output:
	// <nil>
	// true
}

// ExampleNearestNeighbors lists the two closest stops to stop 0.
func ExampleNearestNeighbors() {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{0, 2, 1},
		{2, 0, 3},
		{1, 3, 0},
	})
	nb, _ := matrix.NearestNeighbors(m, 0, 2)
	for _, n := range nb {
		fmt.Printf("stop %d at %g\n", n.Index, n.Distance)
	}
	// Output:
	// stop 2 at 1
	// stop 1 at 2
}

// ExampleDistanceStats summarises the off-diagonal cells.
func ExampleDistanceStats() {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{0, 2, 1},
		{2, 0, 3},
		{1, 3, 0},
	})
	st, _ := matrix.DistanceStats(m)
	fmt.Printf("min=%g max=%g mean=%g median=%g std=%.3f n=%d\n", st.Min, st.Max, st.Mean, st.Median, st.Std, st.Count)
	// Output:
	// min=1 max=3 mean=2 median=2 std=0.816 n=6
}
