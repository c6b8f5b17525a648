// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvfilter/internal/ctxlog"
)

// ErrPanic wraps a panic recovered from a job.
var ErrPanic = errors.New("workerpool: job panicked")

// Pool bounds how many jobs run at once. The zero value is not usable; call New.
type Pool struct {
	slots chan struct{}
}

// New returns a pool running at most workers jobs concurrently (min 1).
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	return &Pool{slots: make(chan struct{}, workers)}
}

// Size returns the concurrency limit.
func (p *Pool) Size() int { return cap(p.slots) }

// Future is the pending result of one job.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

// Done is closed once the job has finished (or was never started because
// ctx ended while it waited for a slot).
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// Await blocks until the job finishes or ctx ends.
func (f *Future[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Submit schedules fn(ctx, in) on p and returns immediately. The job starts
// once a slot is free; if ctx ends first, the future resolves to ctx.Err().
// A panic inside fn resolves the future to an error wrapping ErrPanic.
func Submit[T, R any](ctx context.Context, p *Pool, in T, fn func(context.Context, T) (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case p.slots <- struct{}{}:
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		}
		defer func() { <-p.slots }()

		defer func() {
			if r := recover(); r != nil {
				ctxlog.FromContext(ctx).Error("Job panicked.", "panic", r, "stack", string(debug.Stack()))
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		f.val, f.err = fn(ctx, in)
	}()

	return f
}

// JoinAll awaits every future and returns the results in submission order.
// The first error (by position) is returned; results of failed jobs are the
// zero value.
func JoinAll[R any](ctx context.Context, futures []*Future[R]) ([]R, error) {
	out := make([]R, len(futures))
	errs := make([]error, len(futures))

	var g errgroup.Group
	for i, f := range futures {
		g.Go(func() error {
			out[i], errs[i] = f.Await(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return out, fmt.Errorf("workerpool: job %d: %w", i, err)
		}
	}

	return out, nil
}

// Map runs fn over inputs on a pool of the given size and joins the results.
func Map[T, R any](ctx context.Context, workers int, inputs []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	p := New(workers)
	futures := make([]*Future[R], len(inputs))
	for i, in := range inputs {
		futures[i] = Submit(ctx, p, in, fn)
	}

	return JoinAll(ctx, futures)
}
