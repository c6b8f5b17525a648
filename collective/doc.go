// SPDX-License-Identifier: MIT

// Package collective runs a fixed-size world of cooperating ranks inside one
// process and gives them the two collectives the distributed filter needs:
// broadcast from a root and gather to a root, plus a barrier.
//
// Each rank runs on its own goroutine. Every collective call must be made by
// all ranks in the same order; a call blocks until all ranks reach it.
// When any rank returns an error, or the parent context is cancelled, the
// world is aborted: ranks blocked in (or later entering) a collective return
// ErrAborted and Run reports the first cause.
package collective
