// SPDX-License-Identifier: MIT

package main

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *ExitError) Unwrap() error { return e.Err }

// usageError marks err as a command-line mistake (exit code 2).
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}
