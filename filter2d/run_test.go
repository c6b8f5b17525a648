// SPDX-License-Identifier: MIT

package filter2d_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/filter2d"
	"github.com/katalvlaran/lvfilter/matrix"
)

func TestParseMode(t *testing.T) {
	for _, m := range []filter2d.Mode{filter2d.ModeSerial, filter2d.ModeParallel, filter2d.ModeSeparable, filter2d.ModeCollective} {
		got, err := filter2d.ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := filter2d.ParseMode("gpu")
	require.ErrorIs(t, err, filter2d.ErrUnknownMode)
	require.Equal(t, "unknown", filter2d.Mode(42).String())
}

func TestRun_AllModesAgree(t *testing.T) {
	img := random(t, 30, 30, 0, 1, 50)
	sep := outer(t, []float64{1, 4, 6, 4, 1}, []float64{1, 4, 6, 4, 1})
	full := random(t, 3, 3, 0, 1, 51)

	for _, mode := range []filter2d.Mode{filter2d.ModeSerial, filter2d.ModeParallel, filter2d.ModeSeparable, filter2d.ModeCollective} {
		for _, k := range []*matrix.Dense{sep, full} {
			got, err := filter2d.Run(context.Background(), mode, img, k, filter2d.WithWorkers(3))
			require.NoError(t, err, mode.String())
			requireClose(t, filter2d.Convolve(img, k), got)
		}
	}
}

func TestRun_UnknownMode(t *testing.T) {
	_, err := filter2d.Run(context.Background(), filter2d.Mode(9), filled(t, 3, 3, 1), filled(t, 1, 1, 1))
	require.ErrorIs(t, err, filter2d.ErrUnknownMode)
}
