// SPDX-License-Identifier: MIT

package filter2d

import "github.com/katalvlaran/lvfilter/matrix"

const (
	opConvolveM  = "ConvolveMatrix"
	opCollective = "ConvolveCollective"
	opRun        = "Run"
)

// HalfWidth returns the integer half-size (n/2) of a kernel dimension.
func HalfWidth(n int) int { return n / 2 }

// ValidRegion returns the output cells whose window lies fully inside an
// m×n image for an mf×nf kernel: rows [mf/2, m-mf/2), cols [nf/2, n-nf/2).
// The region is Empty when the kernel does not fit.
func ValidRegion(m, n, mf, nf int) Region {
	mf2, nf2 := HalfWidth(mf), HalfWidth(nf)
	r := Region{Row0: mf2, Row1: m - mf2, Col0: nf2, Col1: n - nf2}
	if r.Row1 < r.Row0 {
		r.Row1 = r.Row0
	}
	if r.Col1 < r.Col0 {
		r.Col1 = r.Col0
	}

	return r
}

// Convolve returns the full-shape convolution of image with filt.
//
// Contract:
//   - Result shape == image shape. Border cells are 0.
//   - Each interior cell is accumulated from 0.0 in ii-outer, jj-inner order,
//     one rounded product at a time, so results are bit-reproducible.
//   - nil operands are treated as 0×0.
//   - Neither operand is mutated.
//
// Complexity:
//   - Time O(M·N·Mf·Nf), Space O(M·N).
func Convolve(image, filt *matrix.Dense) *matrix.Dense {
	image, filt = orEmpty(image), orEmpty(filt)
	m, n := image.Shape()
	mf, nf := filt.Shape()
	out := newResult(m, n)

	region := ValidRegion(m, n, mf, nf)
	if region.Empty() {
		return out
	}
	convolveRows(out.RawData(), 0, image.RawData(), n, filt.RawData(), mf, nf, region.Row0, region.Row1)

	return out
}

// ConvolveMatrix is Convolve over the Matrix interface. Non-Dense operands are
// materialized once through At().
// Errors: matrix.ErrNilMatrix, accessor errors.
func ConvolveMatrix(image, filt matrix.Matrix) (*matrix.Dense, error) {
	a, err := matrix.AsDense(image)
	if err != nil {
		return nil, filter2dErrorf(opConvolveM, err)
	}
	k, err := matrix.AsDense(filt)
	if err != nil {
		return nil, filter2dErrorf(opConvolveM, err)
	}

	return Convolve(a, k), nil
}

// convolveRows writes output rows [lo,hi) of the valid region into dst, where
// dst row 0 corresponds to output row dstRow0. img is row-major with n
// columns, k is row-major mf×nf. Callers guarantee [lo,hi) ⊆ valid rows.
//
// The float64 conversion on each product forces rounding before the add and
// prevents fused multiply-add, which keeps every variant bit-identical.
func convolveRows(dst []float64, dstRow0 int, img []float64, n int, k []float64, mf, nf, lo, hi int) {
	mf2, nf2 := HalfWidth(mf), HalfWidth(nf)
	var (
		i, j, ii, jj int
		krow, irow   int
		num          float64
	)
	for i = lo; i < hi; i++ {
		drow := (i - dstRow0) * n
		for j = nf2; j < n-nf2; j++ {
			num = 0.0
			for ii = 0; ii < mf; ii++ {
				krow = (mf - 1 - ii) * nf
				irow = (i-mf2+ii)*n + (j - nf2)
				for jj = 0; jj < nf; jj++ {
					num += float64(k[krow+nf-1-jj] * img[irow+jj])
				}
			}
			dst[drow+j] = num
		}
	}
}

// newResult allocates an m×n zero grid. Shapes come from existing Dense
// values, so the error path is unreachable.
func newResult(m, n int) *matrix.Dense {
	out, err := matrix.NewDense(m, n)
	if err != nil {
		panic(err)
	}

	return out
}

func orEmpty(d *matrix.Dense) *matrix.Dense {
	if d == nil {
		return newResult(0, 0)
	}

	return d
}
