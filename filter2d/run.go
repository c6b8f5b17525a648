// SPDX-License-Identifier: MIT

package filter2d

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvfilter/matrix"
)

// Run dispatches to the variant selected by mode. ModeSeparable falls back to
// ConvolveParallel for kernels that are not rank-1.
//
// Errors: ErrUnknownMode, ConvolveCollective errors.
func Run(ctx context.Context, mode Mode, image, filt *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	switch mode {
	case ModeSerial:
		return Convolve(image, filt), nil
	case ModeParallel:
		return ConvolveParallel(image, filt, opts...), nil
	case ModeSeparable:
		if out, ok := ConvolveSeparable(image, filt, opts...); ok {
			return out, nil
		}
		gatherOptions(opts...).logger.DebugContext(ctx, "filter2d: separable fallback to parallel")
		return ConvolveParallel(image, filt, opts...), nil
	case ModeCollective:
		return ConvolveCollective(ctx, image, filt, opts...)
	default:
		return nil, filter2dErrorf(opRun, fmt.Errorf("mode %d: %w", int(mode), ErrUnknownMode))
	}
}
