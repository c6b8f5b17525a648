// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small element-wise comparison kernels (ew*) shared by AllClose
//     and MaxAbsDiff, with a *Dense fast path and a generic At() fallback.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1). No allocations.
//
// AI-Hints:
//   - Separable filter results group their sums differently and must be
//     compared with AllClose, not Equal.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ewVisitPairs calls f on every aligned pair (a[i,j], b[i,j]) in i→j order
// until f returns false. Shapes must already be validated.
func ewVisitPairs(a, b Matrix, f func(x, y float64) bool) error {
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for k := range da.data {
				if !f(da.data[k], db.data[k]) {
					return nil
				}
			}
			return nil
		}
	}

	r, c := a.Rows(), a.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x, err := a.At(i, j)
			if err != nil {
				return err
			}
			y, err := b.At(i, j)
			if err != nil {
				return err
			}
			if !f(x, y) {
				return nil
			}
		}
	}

	return nil
}

// ewAllClose reports whether every pair satisfies
// |x-y| <= atol  OR  |x-y| <= rtol*max(|x|,|y|)  (gonum scalar.EqualWithinAbsOrRel).
// NaN never compares close; equal infinities do.
// Time: O(r*c). Space: O(1).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	ok := true
	err := ewVisitPairs(a, b, func(x, y float64) bool {
		if x == y { // covers equal infinities
			return true
		}
		if !scalar.EqualWithinAbsOrRel(x, y, atol, rtol) {
			ok = false
			return false
		}
		return true
	})
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	return ok, nil
}

// ewMaxAbsDiff returns max |a[i,j]-b[i,j]| (0 for zero-area operands).
// A NaN on either side propagates as NaN.
func ewMaxAbsDiff(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}

	maxDiff := 0.0
	err := ewVisitPairs(a, b, func(x, y float64) bool {
		d := math.Abs(x - y)
		if math.IsNaN(d) {
			maxDiff = d
			return false
		}
		if d > maxDiff {
			maxDiff = d
		}
		return true
	})
	if err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}

	return maxDiff, nil
}
