// SPDX-License-Identifier: MIT

package filter2d

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvfilter/matrix"
)

// Bands splits the half-open row range [lo,hi) into at most parts contiguous,
// disjoint bands covering it exactly. Sizes differ by at most one; the first
// (hi-lo)%parts bands carry the extra row. Returns nil for an empty range.
// Panics if parts < 1.
func Bands(lo, hi, parts int) []Band {
	if parts < 1 {
		panic("filter2d: Bands(parts<1)")
	}
	total := hi - lo
	if total <= 0 {
		return nil
	}
	if parts > total {
		parts = total
	}

	size, rem := total/parts, total%parts
	out := make([]Band, parts)
	start := lo
	for p := 0; p < parts; p++ {
		end := start + size
		if p < rem {
			end++
		}
		out[p] = Band{Lo: start, Hi: end}
		start = end
	}

	return out
}

// ConvolveParallel computes the same result as Convolve, bit for bit, by
// evaluating disjoint row bands of the valid region concurrently.
//
// Each goroutine writes only its own band of the shared result buffer, so no
// synchronization beyond the final Wait is needed.
//
// Options: WithWorkers (default GOMAXPROCS), WithMinRowsPerBand, WithLogger.
func ConvolveParallel(image, filt *matrix.Dense, opts ...Option) *matrix.Dense {
	o := gatherOptions(opts...)
	image, filt = orEmpty(image), orEmpty(filt)
	m, n := image.Shape()
	mf, nf := filt.Shape()
	out := newResult(m, n)

	region := ValidRegion(m, n, mf, nf)
	if region.Empty() {
		return out
	}

	parts := o.workers
	if maxParts := (region.Rows() + o.minRowsPerBand - 1) / o.minRowsPerBand; parts > maxParts {
		parts = maxParts
	}
	bands := Bands(region.Row0, region.Row1, parts)
	o.logger.Debug("filter2d: parallel convolve",
		"rows", m, "cols", n, "kernel_rows", mf, "kernel_cols", nf, "bands", len(bands))

	dst, img, k := out.RawData(), image.RawData(), filt.RawData()
	var g errgroup.Group
	g.SetLimit(o.workers)
	for _, b := range bands {
		g.Go(func() error {
			convolveRows(dst, 0, img, n, k, mf, nf, b.Lo, b.Hi)
			return nil
		})
	}
	_ = g.Wait() // bands never fail

	return out
}
