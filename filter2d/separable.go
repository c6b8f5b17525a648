// SPDX-License-Identifier: MIT

package filter2d

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfilter/matrix"
)

// ConvolveSeparable evaluates the convolution as a horizontal pass followed by
// a vertical pass when filt is numerically rank-1 (K ≈ u·vᵀ).
//
// Returns (result, true) on success. The result equals Convolve(image, filt)
// within floating-point tolerance, not bit for bit: the sums are grouped
// differently. Returns (nil, false) when the kernel is not separable, is
// all zero or is not finite; callers fall back to a direct variant.
//
// Kernels with zero area, or that do not fit the image, give the all-zero
// result directly (true).
//
// Complexity:
//   - Time O(M·N·(Mf+Nf)) plus an O(Mf·Nf·min(Mf,Nf)) SVD.
//   - Space O(M·N) for the intermediate pass.
func ConvolveSeparable(image, filt *matrix.Dense, opts ...Option) (*matrix.Dense, bool) {
	o := gatherOptions(opts...)
	image, filt = orEmpty(image), orEmpty(filt)
	m, n := image.Shape()
	mf, nf := filt.Shape()

	region := ValidRegion(m, n, mf, nf)
	if region.Empty() || filt.IsEmpty() {
		return newResult(m, n), true
	}

	u, v, ok := factorRank1(filt, o.separableTol)
	if !ok {
		o.logger.Debug("filter2d: kernel not separable", "kernel_rows", mf, "kernel_cols", nf)
		return nil, false
	}

	mf2, nf2 := HalfWidth(mf), HalfWidth(nf)
	img := image.RawData()

	// Horizontal pass over every image row a vertical window can touch.
	tmp := make([]float64, m*n)
	rLo, rHi := region.Row0-mf2, region.Row1-mf2+mf-1
	var r, i, j, t int
	var num float64
	for r = rLo; r < rHi; r++ {
		for j = region.Col0; j < region.Col1; j++ {
			num = 0.0
			base := r*n + j - nf2
			for t = 0; t < nf; t++ {
				num += float64(v[nf-1-t] * img[base+t])
			}
			tmp[r*n+j] = num
		}
	}

	out := newResult(m, n)
	dst := out.RawData()
	for i = region.Row0; i < region.Row1; i++ {
		for j = region.Col0; j < region.Col1; j++ {
			num = 0.0
			for t = 0; t < mf; t++ {
				num += float64(u[mf-1-t] * tmp[(i-mf2+t)*n+j])
			}
			dst[i*n+j] = num
		}
	}

	return out, true
}

// factorRank1 returns u, v with K[a,b] ≈ u[a]·v[b], or ok=false when σ₂/σ₁
// exceeds tol, K is zero or K holds NaN/±Inf. Single-row and single-column
// kernels factor exactly without an SVD.
func factorRank1(k *matrix.Dense, tol float64) (u, v []float64, ok bool) {
	if matrix.ValidateFinite(k) != nil {
		return nil, nil, false
	}
	mf, nf := k.Shape()
	data := k.RawData()
	switch {
	case mf == 1:
		return []float64{1}, append([]float64(nil), data...), true
	case nf == 1:
		return append([]float64(nil), data...), []float64{1}, true
	}

	km, err := matrix.ToMat(k)
	if err != nil {
		return nil, nil, false
	}
	var svd mat.SVD
	if !svd.Factorize(km, mat.SVDThin) {
		return nil, nil, false
	}
	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 || math.IsNaN(s[0]) || math.IsInf(s[0], 0) {
		return nil, nil, false
	}
	if len(s) > 1 && s[1] > tol*s[0] {
		return nil, nil, false
	}

	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	scale := math.Sqrt(s[0])
	u = make([]float64, mf)
	v = make([]float64, nf)
	for a := 0; a < mf; a++ {
		u[a] = U.At(a, 0) * scale
	}
	for b := 0; b < nf; b++ {
		v[b] = V.At(b, 0) * scale
	}

	return u, v, true
}
