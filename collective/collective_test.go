// SPDX-License-Identifier: MIT

package collective_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/collective"
)

func TestRun_BadSize(t *testing.T) {
	err := collective.Run(context.Background(), 0, func(context.Context, *collective.Comm) error { return nil })
	require.ErrorIs(t, err, collective.ErrBadSize)
}

func TestRun_RankAndSize(t *testing.T) {
	const size = 5
	var seen [size]atomic.Int32
	err := collective.Run(context.Background(), size, func(_ context.Context, c *collective.Comm) error {
		require.Equal(t, size, c.Size())
		seen[c.Rank()].Add(1)
		return c.Barrier()
	})
	require.NoError(t, err)
	for r := range seen {
		require.Equal(t, int32(1), seen[r].Load(), "rank %d", r)
	}
}

func TestBcast_FromEveryRoot(t *testing.T) {
	const size = 4
	for root := 0; root < size; root++ {
		err := collective.Run(context.Background(), size, func(_ context.Context, c *collective.Comm) error {
			buf := make([]float64, 3)
			if c.Rank() == root {
				buf = []float64{float64(root), 1.5, -2}
			}
			if err := c.Bcast(root, buf); err != nil {
				return err
			}
			if buf[0] != float64(root) || buf[1] != 1.5 || buf[2] != -2 {
				return errors.New("unexpected payload")
			}
			return nil
		})
		require.NoError(t, err, "root %d", root)
	}
}

func TestBcast_RootBufferUntouched(t *testing.T) {
	src := []float64{1, 2, 3}
	err := collective.Run(context.Background(), 3, func(_ context.Context, c *collective.Comm) error {
		if c.Rank() == 0 {
			return c.Bcast(0, src)
		}
		buf := make([]float64, 3)
		if err := c.Bcast(0, buf); err != nil {
			return err
		}
		buf[0] = 99
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, src)
}

func TestBcast_RepeatedRounds(t *testing.T) {
	err := collective.Run(context.Background(), 3, func(_ context.Context, c *collective.Comm) error {
		for round := 0; round < 50; round++ {
			buf := []float64{0}
			if c.Rank() == round%3 {
				buf[0] = float64(round)
			}
			if err := c.Bcast(round%3, buf); err != nil {
				return err
			}
			if buf[0] != float64(round) {
				return errors.New("stale broadcast")
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestBcast_BadRoot(t *testing.T) {
	err := collective.Run(context.Background(), 2, func(_ context.Context, c *collective.Comm) error {
		return c.Bcast(2, nil)
	})
	require.ErrorIs(t, err, collective.ErrBadRoot)
}

func TestBcast_LengthMismatch(t *testing.T) {
	err := collective.Run(context.Background(), 3, func(_ context.Context, c *collective.Comm) error {
		buf := make([]float64, 4)
		if c.Rank() == 2 {
			buf = make([]float64, 2)
		}
		return c.Bcast(0, buf)
	})
	require.ErrorIs(t, err, collective.ErrBufferLength)
}

func TestGather_CollectsByRank(t *testing.T) {
	const size, root = 4, 1
	var got [][]float64
	err := collective.Run(context.Background(), size, func(_ context.Context, c *collective.Comm) error {
		buf := make([]float64, c.Rank()) // ragged on purpose
		for i := range buf {
			buf[i] = float64(c.Rank())
		}
		parts, err := c.Gather(root, buf)
		if err != nil {
			return err
		}
		if c.Rank() == root {
			got = parts
		} else if parts != nil {
			return errors.New("non-root received parts")
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, size)
	for r := 0; r < size; r++ {
		require.Len(t, got[r], r)
		for _, v := range got[r] {
			require.Equal(t, float64(r), v)
		}
	}
}

func TestRun_RankErrorAbortsOthers(t *testing.T) {
	boom := errors.New("boom")
	var aborted atomic.Int32
	err := collective.Run(context.Background(), 4, func(_ context.Context, c *collective.Comm) error {
		if c.Rank() == 3 {
			return boom
		}
		err := c.Barrier()
		if errors.Is(err, collective.ErrAborted) {
			aborted.Add(1)
		}
		return err
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int32(3), aborted.Load())
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- collective.Run(ctx, 3, func(ctx context.Context, c *collective.Comm) error {
			if c.Rank() == 0 {
				<-ctx.Done()
				return ctx.Err()
			}
			return c.Barrier()
		})
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
