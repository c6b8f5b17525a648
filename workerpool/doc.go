// SPDX-License-Identifier: MIT

// Package workerpool runs independent jobs on a bounded number of goroutines
// and hands each result back through a Future.
//
// A job receives its input by value and returns its result by value; jobs
// share nothing, so no locking is needed inside them. Joining is done by
// awaiting the futures, in submission order.
package workerpool
