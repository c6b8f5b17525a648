// SPDX-License-Identifier: MIT

package filter2d

import (
	"context"

	"github.com/katalvlaran/lvfilter/collective"
	"github.com/katalvlaran/lvfilter/matrix"
)

const rootRank = 0

// ConvolveCollective distributes the convolution over a world of ranks
// (WithWorkers sets the world size, default GOMAXPROCS).
//
// Rank 0 owns the operands. It broadcasts the shapes, then the image and the
// kernel; every rank computes one band of the valid rows; rank 0 gathers the
// bands into the full-shape result. The result is bit-identical to Convolve.
// Ranks beyond the number of valid rows contribute empty bands.
//
// Errors: context cancellation, collective.ErrAborted causes.
func ConvolveCollective(ctx context.Context, image, filt *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	image, filt = orEmpty(image), orEmpty(filt)

	var result *matrix.Dense
	err := collective.Run(ctx, o.workers, func(ctx context.Context, c *collective.Comm) error {
		var (
			hdr    = make([]float64, 4)
			img, k []float64
		)
		if c.Rank() == rootRank {
			m, n := image.Shape()
			mf, nf := filt.Shape()
			hdr[0], hdr[1], hdr[2], hdr[3] = float64(m), float64(n), float64(mf), float64(nf)
			img, k = image.RawData(), filt.RawData()
		}
		if err := c.Bcast(rootRank, hdr); err != nil {
			return err
		}
		m, n, mf, nf := int(hdr[0]), int(hdr[1]), int(hdr[2]), int(hdr[3])
		if c.Rank() != rootRank {
			img, k = make([]float64, m*n), make([]float64, mf*nf)
		}
		if err := c.Bcast(rootRank, img); err != nil {
			return err
		}
		if err := c.Bcast(rootRank, k); err != nil {
			return err
		}

		region := ValidRegion(m, n, mf, nf)
		var bands []Band
		if !region.Empty() {
			bands = Bands(region.Row0, region.Row1, c.Size())
		}
		var local []float64
		if c.Rank() < len(bands) {
			b := bands[c.Rank()]
			local = make([]float64, b.Len()*n)
			convolveRows(local, b.Lo, img, n, k, mf, nf, b.Lo, b.Hi)
		}

		parts, err := c.Gather(rootRank, local)
		if err != nil {
			return err
		}
		if c.Rank() != rootRank {
			return nil
		}

		res := newResult(m, n)
		dst := res.RawData()
		for r, b := range bands {
			copy(dst[b.Lo*n:b.Hi*n], parts[r])
		}
		o.logger.DebugContext(ctx, "filter2d: collective convolve",
			"ranks", c.Size(), "bands", len(bands), "rows", m, "cols", n)
		result = res

		return nil
	})
	if err != nil {
		return nil, filter2dErrorf(opCollective, err)
	}

	return result, nil
}
