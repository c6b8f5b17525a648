// SPDX-License-Identifier: MIT

package collective

import "errors"

var (
	// ErrBadSize indicates a world size below 1.
	ErrBadSize = errors.New("collective: world size must be >= 1")

	// ErrBadRoot indicates a root rank outside [0, size).
	ErrBadRoot = errors.New("collective: root rank out of range")

	// ErrBufferLength indicates a receive buffer whose length differs from
	// the root's.
	ErrBufferLength = errors.New("collective: buffer length mismatch")

	// ErrAborted is returned by collectives after another rank failed or the
	// context was cancelled.
	ErrAborted = errors.New("collective: world aborted")
)
