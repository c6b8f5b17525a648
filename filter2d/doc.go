// SPDX-License-Identifier: MIT

// Package filter2d applies a fixed 2-D kernel to a 2-D grid by direct
// sliding-window convolution.
//
// What:
//
//   - Convolve evaluates, for every output cell whose window lies fully
//     inside the image,
//
//     R[i,j] = Σ_ii Σ_jj K[Mf-1-ii, Nf-1-jj] · A[i-Mf2+ii, j-Nf2+jj]
//
//     with Mf2 = Mf/2, Nf2 = Nf/2 (integer division). The kernel index is
//     reversed in both axes: this is true convolution, not cross-correlation.
//   - Every other cell (the border band of Mf2 rows and Nf2 columns) is 0.
//   - The result always has the image's shape. A kernel larger than the
//     image in either dimension yields an all-zero result; nothing fails.
//
// Variants:
//
//   - Convolve: serial reference kernel (ii-outer, jj-inner
//     accumulation from 0.0; bit-reproducible).
//   - ConvolveParallel: the valid row range split into disjoint bands,
//     one goroutine per band (errgroup); bit-identical to Convolve.
//   - ConvolveSeparable: two 1-D passes when the kernel is numerically
//     rank-1 (gonum SVD); equal to Convolve within floating-point tolerance.
//   - ConvolveCollective: rank 0 broadcasts image and kernel to a world of
//     ranks (package collective), each rank computes a band, rank 0 gathers;
//     bit-identical to Convolve.
//
// Even kernel sizes are accepted and keep the arithmetic above exactly,
// which makes the window asymmetric (one more cell after the centre than
// before it).
//
// Complexity:
//
//   - Direct: O(M·N·Mf·Nf) time, O(M·N) space for the result.
//   - Separable: O(M·N·(Mf+Nf)) time, O(M·N) extra space.
package filter2d
