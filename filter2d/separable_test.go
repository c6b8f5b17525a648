// SPDX-License-Identifier: MIT

package filter2d_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/filter2d"
	"github.com/katalvlaran/lvfilter/matrix"
)

func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, 1e-9, 1e-12)
	require.NoError(t, err)
	if !ok {
		d, _ := matrix.MaxAbsDiff(want, got)
		t.Fatalf("results differ, max |Δ| = %g", d)
	}
}

func TestConvolveSeparable_OuterProduct(t *testing.T) {
	tests := []struct {
		name string
		u, v []float64
	}{
		{"Binomial3", []float64{1, 2, 1}, []float64{1, 2, 1}},
		{"Sobel", []float64{1, 2, 1}, []float64{1, 0, -1}},
		{"Rect5x3", []float64{0.1, 0.2, 0.4, 0.2, 0.1}, []float64{3, 1, 2}},
		{"Even4x2", []float64{1, 3, 3, 1}, []float64{0.5, 0.5}},
	}
	img := random(t, 24, 19, 0, 1, 30)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := outer(t, tc.u, tc.v)
			got, ok := filter2d.ConvolveSeparable(img, k)
			require.True(t, ok)
			requireClose(t, filter2d.Convolve(img, k), got)
		})
	}
}

func TestConvolveSeparable_RowAndColumnKernels(t *testing.T) {
	img := random(t, 10, 12, -1, 1, 31)
	for _, k := range []*matrix.Dense{
		grid(t, [][]float64{{1, -2, 3, 0.5}}),
		grid(t, [][]float64{{1}, {-2}, {3}}),
		grid(t, [][]float64{{7}}),
	} {
		got, ok := filter2d.ConvolveSeparable(img, k)
		require.True(t, ok)
		want := filter2d.Convolve(img, k)
		if diff := cmp.Diff(want.Rows2D(), got.Rows2D(), cmpopts.EquateApprox(1e-9, 1e-12)); diff != "" {
			t.Errorf("kernel %dx%d (-direct +separable):\n%s", k.Rows(), k.Cols(), diff)
		}
	}
}

func TestConvolveSeparable_RejectsFullRank(t *testing.T) {
	k := grid(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	got, ok := filter2d.ConvolveSeparable(filled(t, 6, 6, 1), k)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestConvolveSeparable_RejectsZeroKernel(t *testing.T) {
	_, ok := filter2d.ConvolveSeparable(filled(t, 6, 6, 1), filled(t, 3, 3, 0))
	require.False(t, ok)
}

func TestConvolveSeparable_NothingToCompute(t *testing.T) {
	got, ok := filter2d.ConvolveSeparable(filled(t, 2, 2, 1), filled(t, 5, 5, 1))
	require.True(t, ok)
	require.Equal(t, []float64{0, 0, 0, 0}, got.RawData())

	got, ok = filter2d.ConvolveSeparable(filled(t, 3, 3, 1), filled(t, 0, 0, 1))
	require.True(t, ok)
	require.Equal(t, make([]float64, 9), got.RawData())
}

func TestConvolveSeparable_Tolerance(t *testing.T) {
	// A tiny rank-2 perturbation passes only under a loose threshold.
	k := grid(t, [][]float64{
		{1, 2, 1},
		{2, 4 + 1e-6, 2},
		{1, 2, 1},
	})
	img := filled(t, 5, 5, 1)
	_, ok := filter2d.ConvolveSeparable(img, k)
	require.False(t, ok)
	_, ok = filter2d.ConvolveSeparable(img, k, filter2d.WithSeparableTol(1e-3))
	require.True(t, ok)
}

func TestConvolveSeparable_RejectsNonFiniteKernel(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		k, err := matrix.NewFromRows([][]float64{
			{1, 2, 1},
			{2, bad, 2},
			{1, 2, 1},
		}, matrix.WithNoValidateNaNInf())
		require.NoError(t, err)
		got, ok := filter2d.ConvolveSeparable(filled(t, 5, 5, 1), k)
		require.False(t, ok)
		require.Nil(t, got)
	}
}
