// SPDX-License-Identifier: MIT
// Package matrix - public comparison surface (facades over ew* kernels).

package matrix

// AllClose reports whether a and b have the same shape and every pair of
// cells satisfies |a-b| <= atol or |a-b| <= rtol*max(|a|,|b|).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1).
//
// AI-Hints:
//   - rtol=1e-9, atol=1e-12 is the tolerance filter2d tests use for reordered sums.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// AllCloseOpts is AllClose with tolerances taken from options
// (WithRelTol, WithEpsilon; defaults DefaultRelTol, DefaultEpsilon).
func AllCloseOpts(a, b Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)

	return ewAllClose(a, b, o.rtol, o.eps)
}

// MaxAbsDiff returns the largest absolute cellwise difference between a and b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func MaxAbsDiff(a, b Matrix) (float64, error) {
	return ewMaxAbsDiff(a, b)
}

// AsDense returns m as *Dense without copying when it already is one;
// otherwise it materializes a copy through At().
// Errors: ErrNilMatrix, accessor errors.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	r, c := m.Rows(), m.Cols()
	out, err := NewDenseWithOptions(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := m.At(i, j)
			if e != nil {
				return nil, e
			}
			out.data[i*c+j] = v
		}
	}
	out.validateNaNInf = DefaultValidateNaNInf

	return out, nil
}
