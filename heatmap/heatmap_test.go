// SPDX-License-Identifier: MIT

package heatmap_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvfilter/heatmap"
	"github.com/katalvlaran/lvfilter/matrix"
)

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, st.Size())
}

func TestRender_PNGAndSVG(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{
		{0, 1, 2},
		{3, 4, 5},
	})
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, heatmap.Render(m, path,
			heatmap.WithTitle("result"), heatmap.WithSize(3*vg.Inch, 2*vg.Inch), heatmap.WithPaletteSize(16)))
		requireNonEmptyFile(t, path)
	}
}

func TestRender_ConstantGrid(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{7, 7}, {7, 7}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "flat.png")
	require.NoError(t, heatmap.Render(m, path))
	requireNonEmptyFile(t, path)
}

func TestRender_Errors(t *testing.T) {
	empty, err := matrix.NewDense(0, 3)
	require.NoError(t, err)
	require.ErrorIs(t, heatmap.Render(empty, filepath.Join(t.TempDir(), "x.png")), heatmap.ErrEmptyGrid)
	require.ErrorIs(t, heatmap.Render(nil, "x.png"), matrix.ErrNilMatrix)

	one, err := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Error(t, heatmap.Render(one, filepath.Join(t.TempDir(), "x.unknown")))
}

func TestRender_NonFiniteCells(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{
		{1, math.NaN()},
		{math.Inf(1), 3},
	}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "holes.png")
	require.NoError(t, heatmap.Render(m, path))
	requireNonEmptyFile(t, path)

	allNaN, err := matrix.NewFromRows([][]float64{{math.NaN(), math.Inf(-1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, heatmap.Render(allNaN, filepath.Join(t.TempDir(), "x.png")), heatmap.ErrNoFiniteCells)
}
