// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All constructors and kernels MUST return these sentinels and tests
// MUST check them via errors.Is. No kernel should panic on user-triggered
// error conditions. Panics are reserved for invalid option parameters.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) at the
// call site when coordinates matter; callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch.

var (
	// ErrInvalidDimensions indicates that requested dimensions are negative,
	// or that a zero-area grid was handed to a consumer that cannot hold one.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub on different shapes, or a flat buffer whose length != r*c.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonRectangular indicates row slices of differing lengths.
	ErrNonRectangular = errors.New("matrix: rows must have the same length")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
