// SPDX-License-Identifier: MIT

package filter2d_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/matrix"
)

// grid builds a Dense from literal rows.
func grid(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// filled returns an r×c Dense with every cell set to v.
func filled(t testing.TB, r, c int, v float64) *matrix.Dense {
	t.Helper()
	data := make([]float64, r*c)
	for i := range data {
		data[i] = v
	}
	m, err := matrix.NewFromData(r, c, data)
	require.NoError(t, err)

	return m
}

// random returns an r×c Dense of uniform values in [lo,hi), seeded for reproducibility.
func random(t testing.TB, r, c int, lo, hi float64, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = lo + (hi-lo)*rng.Float64()
	}
	m, err := matrix.NewFromData(r, c, data)
	require.NoError(t, err)

	return m
}

// outer returns the kernel u·vᵀ.
func outer(t testing.TB, u, v []float64) *matrix.Dense {
	t.Helper()
	data := make([]float64, 0, len(u)*len(v))
	for _, a := range u {
		for _, b := range v {
			data = append(data, a*b)
		}
	}
	m, err := matrix.NewFromData(len(u), len(v), data)
	require.NoError(t, err)

	return m
}

// at reads (i,j) or fails the test.
func at(t testing.TB, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}
