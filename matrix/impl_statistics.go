// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Summarize a grid in one deterministic pass (range, sum, mean, support),
//     for logging filter results and sanity-checking inputs.
//
// Exposed API:
//   - Summarize(X) -> (Summary, error)
//
// Determinism & Performance:
//   - *Dense fast path runs gonum floats kernels over the flat buffer.
//   - Fallback walks At() in fixed i→j order.
//   - Zero-size grids yield the zero Summary.
//
// AI-Hints:
//   - Sanitize inputs first if NaN propagation into Sum/Mean is undesired;
//     NaNs are counted separately and excluded from Min/Max.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const opSummarize = "Summarize"

// Summary describes the values of a grid.
type Summary struct {
	Rows, Cols int
	Min, Max   float64 // over non-NaN cells; 0 when there are none
	Sum, Mean  float64
	NonZero    int // cells != 0
	NaNs       int
}

// Summarize computes a Summary of X.
//
// Errors:
//   - ErrNilMatrix; wrapped At() errors on the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(1) (Dense) or O(r*c) (fallback copy).
func Summarize(X Matrix) (Summary, error) {
	if err := ValidateNotNil(X); err != nil {
		return Summary{}, matrixErrorf(opSummarize, err)
	}

	r, c := X.Rows(), X.Cols()
	s := Summary{Rows: r, Cols: c}
	if r == 0 || c == 0 {
		return s, nil
	}

	var vals []float64
	if d, ok := X.(*Dense); ok {
		vals = d.data
	} else {
		vals = make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, err := X.At(i, j)
				if err != nil {
					return Summary{}, matrixErrorf(opSummarize, err)
				}
				vals = append(vals, v)
			}
		}
	}

	// Stage 1: support and NaN census.
	for _, v := range vals {
		switch {
		case math.IsNaN(v):
			s.NaNs++
		case v != 0:
			s.NonZero++
		}
	}

	// Stage 2: aggregates. floats.Min/Max do not skip NaN; scan manually then.
	s.Sum = floats.Sum(vals)
	s.Mean = s.Sum / float64(len(vals))
	if s.NaNs == 0 {
		s.Min, s.Max = floats.Min(vals), floats.Max(vals)
		return s, nil
	}

	first := true
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if first {
			s.Min, s.Max, first = v, v, false
			continue
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}

	return s, nil
}
