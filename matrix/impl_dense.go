// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Allow zero-area shapes (0×N, M×0, 0×0): grids and kernels of any
//     non-negative size are legal filter operands.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Hot kernels outside this package read through RawData() and write into a
//     freshly allocated result; never write into an operand's RawData().
//   - Use Do for read-only scans that need coordinates (heatmap range, border checks).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Do: O(r*c).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"          // method tag used in error wrappers
	ctxSet      = "Set"         // method tag used in error wrappers
	ctxFromRows = "NewFromRows" // ctor tag
	ctxFromData = "NewFromData" // ctor tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols), both >= 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set (policy default from options.go).
type Dense struct {
	r, c           int       // row and column counts (>=0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil) // *Dense implements our public Matrix interface
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with shape validation and default numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - Zero-area shapes are legal: a 0×N grid filtered by any kernel is a 0×N result.
//
// Inputs:
//   - rows: non-negative number of rows
//   - cols: non-negative number of columns
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (negative shape).
//
// Determinism:
//   - Fixed zero initialization; no randomness.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	return NewDenseWithOptions(rows, cols)
}

// NewDenseWithOptions is NewDense with an explicit numeric policy.
//
// Inputs:
//   - rows, cols: non-negative dimensions.
//   - opts: WithValidateNaNInf / WithNoValidateNaNInf.
//
// Errors:
//   - ErrInvalidDimensions on negatives.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func NewDenseWithOptions(rows, cols int, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	// make() zero-fills deterministically; len 0 is legal for zero-area shapes.
	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// ZerosLike allocates a fresh zero matrix with the shape of m, inheriting the
// numeric policy when m is a *Dense.
// Errors: ErrNilMatrix.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		out.validateNaNInf = d.validateNaNInf
	}

	return out, nil
}

// NewFromRows builds a Dense from nested row slices (copying the values).
// MAIN DESCRIPTION:
//   - Convenience ingestion for literals and parsed text grids.
//
// Implementation:
//   - Stage 1: rows = len(data), cols = len(data[0]) (0 when no rows).
//   - Stage 2: reject ragged rows with ErrNonRectangular.
//   - Stage 3: copy row by row; enforce the numeric policy per cell.
//
// Behavior highlights:
//   - nil or empty input yields a legal 0×0 Dense.
//   - A single empty row yields 1×0.
//
// Errors:
//   - ErrNonRectangular (row i has a different length than row 0).
//   - ErrNaNInf (non-finite value under the default policy).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(data [][]float64, opts ...Option) (*Dense, error) {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	m, err := NewDenseWithOptions(rows, cols, opts...)
	if err != nil {
		return nil, err
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		if len(data[i]) != cols {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w",
				ctxFromRows, i, len(data[i]), cols, ErrNonRectangular)
		}
		for j = 0; j < cols; j++ {
			v = data[i][j]
			if m.validateNaNInf && isNonFinite(v) {
				return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
			}
			m.data[i*cols+j] = v
		}
	}

	return m, nil
}

// NewFromData builds an r×c Dense from a row-major flat slice (copied).
// Errors: ErrInvalidDimensions, ErrDimensionMismatch (len(data) != r*c), ErrNaNInf.
// Complexity: O(r*c).
func NewFromData(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDenseWithOptions(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: got %d values for %dx%d: %w",
			ctxFromData, len(data), rows, cols, ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for k, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFromData, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// IsEmpty reports a zero-area matrix (no cells).
func (m *Dense) IsEmpty() bool { return m.r == 0 || m.c == 0 }

// indexOf computes the row-major offset or returns ErrOutOfRange.
//
// Behavior highlights:
//   - Returns a sentinel (ErrOutOfRange) without adding context; public
//     methods (At/Set) wrap with coordinates and method name.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// MAIN DESCRIPTION:
//   - Safe element read at coordinates.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: load from flat buffer.
//
// Errors:
//   - ErrOutOfRange when out of bounds
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Prefer At in external code; hot paths read RawData directly.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	// Numeric policy: optional finite-only enforcement.
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() Matrix {
	return m.Copy()
}

// Copy is Clone with the concrete return type.
func (m *Dense) Copy() *Dense {
	cp := make([]float64, len(m.data)) // allocate same length
	copy(cp, m.data)                   // deep copy

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// RawData returns the backing row-major buffer WITHOUT copying.
//
// Behavior highlights:
//   - len(RawData()) == Rows()*Cols().
//   - Writes bypass the numeric policy and are visible to every holder of m.
//
// Notes:
//   - Intended for read-only hot loops (filter kernels) and for filling a
//     freshly allocated result that nobody else references yet.
func (m *Dense) RawData() []float64 { return m.data }

// Data returns a row-major copy of the values.
// Complexity: O(r*c).
func (m *Dense) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Rows2D returns a nested [][]float64 copy, convenient for go-cmp and
// testify comparisons. Complexity: O(r*c).
func (m *Dense) Rows2D() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Equal reports exact (bitwise for non-NaN) equality of shape and values.
// Two NaNs at the same position are NOT equal, matching IEEE semantics.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Implementation:
//   - Stage 1: iterate rows/cols deterministically.
//   - Stage 2: write values (shortest round-trip %g) into strings.Builder.
//
// Behavior highlights:
//   - Not for hot paths; intended for logs and debugging.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			b.WriteString(strconv.FormatFloat(m.data[base+j], 'g', -1, 64))
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false.
//
// Determinism:
//   - Fixed i→j order.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int

	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return // early exit requested by caller
			}
		}
	}
}
