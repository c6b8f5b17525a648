// SPDX-License-Identifier: MIT

package collective

import "fmt"

// Comm is one rank's handle on the world. It is only valid inside the fn
// passed to Run and must not be shared between goroutines.
type Comm struct {
	w    *world
	rank int
}

// Rank returns this rank's index in [0, Size()).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the world.
func (c *Comm) Size() int { return c.w.size }

// Barrier blocks until every rank has called Barrier.
func (c *Comm) Barrier() error { return c.w.barrier() }

// Bcast copies root's buf into buf on every other rank. All ranks must pass
// buffers of the root's length. The root's buffer is only read.
//
// Errors: ErrBadRoot, ErrBufferLength, ErrAborted.
func (c *Comm) Bcast(root int, buf []float64) error {
	if err := c.checkRoot(root); err != nil {
		return err
	}

	w := c.w
	if c.rank == root {
		w.mu.Lock()
		w.slot = buf
		w.mu.Unlock()
	}
	if err := w.barrier(); err != nil {
		return err
	}

	if c.rank != root {
		w.mu.Lock()
		src := w.slot
		w.mu.Unlock()
		if len(src) != len(buf) {
			return fmt.Errorf("collective.Bcast(rank=%d, root=%d): want %d, have %d: %w",
				c.rank, root, len(src), len(buf), ErrBufferLength)
		}
		copy(buf, src)
	}

	// Second phase: the root may reuse its buffer once every rank has copied.
	return w.barrier()
}

// Gather collects every rank's buf at root. On the root it returns a slice
// indexed by rank holding copies of each contribution; other ranks get nil.
// Contributions may differ in length.
//
// Errors: ErrBadRoot, ErrAborted.
func (c *Comm) Gather(root int, buf []float64) ([][]float64, error) {
	if err := c.checkRoot(root); err != nil {
		return nil, err
	}

	w := c.w
	w.mu.Lock()
	w.parts[c.rank] = buf
	w.mu.Unlock()
	if err := w.barrier(); err != nil {
		return nil, err
	}

	var out [][]float64
	if c.rank == root {
		w.mu.Lock()
		out = make([][]float64, w.size)
		for r, p := range w.parts {
			out[r] = append([]float64(nil), p...)
		}
		w.mu.Unlock()
	}
	if err := w.barrier(); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Comm) checkRoot(root int) error {
	if root < 0 || root >= c.w.size {
		return fmt.Errorf("collective(rank=%d, root=%d, size=%d): %w", c.rank, root, c.w.size, ErrBadRoot)
	}

	return nil
}
