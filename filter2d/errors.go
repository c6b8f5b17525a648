// SPDX-License-Identifier: MIT

package filter2d

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates an unrecognized execution mode name.
	ErrUnknownMode = errors.New("filter2d: unknown mode")
)

// filter2dErrorf wraps err with an operation tag, preserving it for errors.Is.
func filter2dErrorf(tag string, err error) error {
	return fmt.Errorf("filter2d.%s: %w", tag, err)
}
