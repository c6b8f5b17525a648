// SPDX-License-Identifier: MIT

// Package matrix - gonum interop.
//
// Purpose:
//   - Hand Dense grids to gonum factorizations (filter2d's separable test
//     runs an SVD on the kernel) without exposing gonum types in the core API.
//
// Notes:
//   - gonum forbids zero-area matrices (mat.ErrZeroLength panics); ToMat
//     reports ErrInvalidDimensions instead of panicking.

package matrix

import "gonum.org/v1/gonum/mat"

// ToMat copies m into a new *mat.Dense.
//
// Errors:
//   - ErrNilMatrix for nil m.
//   - ErrInvalidDimensions for zero-area m.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ToMat(m *Dense) (*mat.Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opToMat, ErrNilMatrix)
	}
	if m.IsEmpty() {
		return nil, matrixErrorf(opToMat, ErrInvalidDimensions)
	}

	return mat.NewDense(m.r, m.c, m.Data()), nil
}
