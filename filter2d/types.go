// SPDX-License-Identifier: MIT

package filter2d

import "fmt"

// Region is a half-open rectangle [Row0,Row1)×[Col0,Col1) of output cells.
type Region struct {
	Row0, Row1 int // rows   [Row0, Row1)
	Col0, Col1 int // columns [Col0, Col1)
}

// Empty reports whether the region contains no cells.
func (r Region) Empty() bool { return r.Row0 >= r.Row1 || r.Col0 >= r.Col1 }

// Rows returns the number of rows in the region (0 when empty).
func (r Region) Rows() int {
	if r.Row1 <= r.Row0 {
		return 0
	}

	return r.Row1 - r.Row0
}

// Cols returns the number of columns in the region (0 when empty).
func (r Region) Cols() int {
	if r.Col1 <= r.Col0 {
		return 0
	}

	return r.Col1 - r.Col0
}

// Contains reports whether (i,j) lies inside the region.
func (r Region) Contains(i, j int) bool {
	return i >= r.Row0 && i < r.Row1 && j >= r.Col0 && j < r.Col1
}

// Band is a half-open row range [Lo,Hi) assigned to one worker.
type Band struct {
	Lo, Hi int
}

// Len returns the number of rows in the band.
func (b Band) Len() int { return b.Hi - b.Lo }

// Mode selects how a filter job is executed.
type Mode int

const (
	// ModeSerial runs the reference kernel on the calling goroutine.
	ModeSerial Mode = iota
	// ModeParallel splits the valid rows into bands, one goroutine each.
	ModeParallel
	// ModeSeparable uses two 1-D passes for rank-1 kernels and falls back
	// to ModeParallel otherwise.
	ModeSeparable
	// ModeCollective broadcasts operands to a world of ranks and gathers bands.
	ModeCollective
)

var modeNames = [...]string{
	ModeSerial:     "serial",
	ModeParallel:   "parallel",
	ModeSeparable:  "separable",
	ModeCollective: "collective",
}

// String returns the canonical lowercase name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}

	return modeNames[m]
}

// ParseMode maps a canonical name back to a Mode.
// Errors: ErrUnknownMode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}

	return ModeSerial, filter2dErrorf("ParseMode", fmt.Errorf("%q: %w", s, ErrUnknownMode))
}
