// Package matrix provides the dense 2-D float64 storage used by lvfilter.
//
// The matrix package provides:
//
//   - Dense: a row-major grid with safe accessors (At/Set return errors,
//     never panic), zero-area shapes (0×N, M×0) and an optional finite-only
//     numeric policy.
//   - Constructors from nested rows (NewFromRows) and flat buffers (NewFromData).
//   - Elementwise kernels (Add, Sub, Scale) and tolerant comparison
//     (AllClose, MaxAbsDiff) used to check linearity of filters.
//   - Summarize for one-pass grid statistics, and ToMat to hand a grid to
//     gonum factorizations.
//
// Grids, kernels and filter results are all *Dense values; see package
// filter2d for the convolution kernels that consume them.
package matrix
