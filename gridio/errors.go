// SPDX-License-Identifier: MIT

package gridio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrid is matched by every *MalformedGridError.
	ErrMalformedGrid = errors.New("gridio: malformed grid")

	// ErrUnknownFormat indicates an unrecognized format name.
	ErrUnknownFormat = errors.New("gridio: unknown format")
)

// MalformedGridError locates a token that cannot become part of a
// rectangular finite grid. Line and Column are 1-based; Column counts bytes.
type MalformedGridError struct {
	File   string
	Line   int
	Column int
	Token  string
	Reason string
	Err    error // underlying cause, may be nil
}

// Error renders "file:line:col: reason".
func (e *MalformedGridError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Reason)
}

// Unwrap exposes both ErrMalformedGrid and the underlying cause.
func (e *MalformedGridError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedGrid}
	}

	return []error{ErrMalformedGrid, e.Err}
}
