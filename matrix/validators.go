// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the distance-matrix contract.
//  - Keep solvers minimal by delegating shape/nil/symmetry checks here.
//  - Wrap sentinel errors with the validator tag and offending coordinates so
//    callers can both match (errors.Is) and report which precondition failed.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and never mutate the input.
//  - Each check is O(n²) at most; symmetry scans the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Square → ...).
//  - Each validator describes what it validates and what it assumes.

package matrix

import (
	"fmt"
	"math"
)

// DefaultSymmetryTol is the tolerance used by ValidateDistance callers that
// have no stronger opinion on floating-point symmetry noise.
const DefaultSymmetryTol = 1e-9

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// cellErrorf wraps err with the validator tag and the offending cell.
func cellErrorf(tag string, i, j int, v float64, err error) error {
	return fmt.Errorf("%s: [%d][%d]=%g: %w", tag, i, j, v, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a nil
// *Dense stored in a non-nil interface.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and Rows == Cols.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSquare: %dx%d", m.Rows(), m.Cols()), ErrNonSquare)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in m.
// Assumes m is non-nil.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cellErrorf("ValidateFinite", i, j, v, ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateSymmetric checks |m[i][j] − m[j][i]| ≤ tol for every pair.
// Assumes m is square and non-nil.
// Complexity: O(n²/2).
func ValidateSymmetric(m Matrix, tol float64) error {
	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // upper triangle only
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > tol {
				return cellErrorf("ValidateSymmetric", i, j, aij, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks m[i][i] == 0 exactly.
// Assumes m is square and non-nil.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix) error {
	var (
		i   int
		v   float64
		err error
	)
	for i = 0; i < m.Rows(); i++ {
		if v, err = m.At(i, i); err != nil {
			return validatorErrorf("ValidateZeroDiagonal", err)
		}
		if v != 0 {
			return cellErrorf("ValidateZeroDiagonal", i, i, v, ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateNonNegative checks m[i][j] ≥ 0 for every cell.
// Assumes m is non-nil.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateNonNegative", err)
			}
			if v < 0 {
				return cellErrorf("ValidateNonNegative", i, j, v, ErrNegativeEntry)
			}
		}
	}

	return nil
}

// ValidateDistance is the composite distance-matrix contract:
// NotNil → Square → Finite → Symmetric(tol) → ZeroDiagonal → NonNegative.
//
// The first violated precondition is returned; m is never mutated, so the
// check is idempotent. A 0×0 matrix passes: size policy belongs to callers.
//
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if err := ValidateFinite(m); err != nil {
		return err
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return err
	}
	if err := ValidateZeroDiagonal(m); err != nil {
		return err
	}

	return ValidateNonNegative(m)
}
