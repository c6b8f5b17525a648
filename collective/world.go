// SPDX-License-Identifier: MIT

package collective

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// world is the shared state of one Run.
type world struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	gen     uint64
	aborted bool
	cause   error

	slot  []float64   // broadcast payload, owned by the root between barriers
	parts [][]float64 // gather contributions indexed by rank
}

func newWorld(size int) *world {
	w := &world{size: size, parts: make([][]float64, size)}
	w.cond = sync.NewCond(&w.mu)

	return w
}

// barrier is a reusable generation barrier. The last arrival advances the
// generation and releases the others.
func (w *world) barrier() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.aborted {
		return ErrAborted
	}
	gen := w.gen
	w.arrived++
	if w.arrived == w.size {
		w.arrived = 0
		w.gen++
		w.cond.Broadcast()
		return nil
	}
	for gen == w.gen && !w.aborted {
		w.cond.Wait()
	}
	if gen == w.gen {
		return ErrAborted
	}

	return nil
}

// abort records the first cause and wakes every waiter.
func (w *world) abort(cause error) {
	w.mu.Lock()
	if !w.aborted {
		w.aborted = true
		w.cause = cause
	}
	w.mu.Unlock()
	w.cond.Broadcast()
}

func (w *world) firstCause() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cause
}

// Run starts size ranks, each calling fn with its own Comm, and waits for all
// of them. It returns nil when every rank returns nil, otherwise the first
// failure (a rank error or the context's cause).
func Run(ctx context.Context, size int, fn func(ctx context.Context, c *Comm) error) error {
	if size < 1 {
		return fmt.Errorf("collective.Run(size=%d): %w", size, ErrBadSize)
	}

	w := newWorld(size)
	stop := context.AfterFunc(ctx, func() { w.abort(context.Cause(ctx)) })
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < size; r++ {
		c := &Comm{w: w, rank: r}
		g.Go(func() error {
			if err := fn(gctx, c); err != nil {
				err = fmt.Errorf("collective: rank %d: %w", c.rank, err)
				w.abort(err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if cause := w.firstCause(); cause != nil {
			return cause
		}
		return err
	}

	return nil
}
