package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		var offsets []int
		var processed int

		err = p.Process(context.Background(), items, func(_ context.Context, batch []int, offset int) error {
			offsets = append(offsets, offset)
			processed += len(batch)
			assert.Equal(t, offset, batch[0])
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 25, processed)
		assert.Equal(t, []int{0, 10, 20}, offsets)
	})

	t.Run("ConcurrentKeepsOrderByOffset", func(t *testing.T) {
		p, err := NewProcessor[int](4)
		require.NoError(t, err)
		out := make([]int, len(items))

		err = p.ProcessConcurrent(context.Background(), items, func(_ context.Context, batch []int, offset int) error {
			for i, v := range batch {
				out[offset+i] = v * 2
			}
			return nil
		}, 3)
		require.NoError(t, err)
		for i := range items {
			assert.Equal(t, i*2, out[i])
		}
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		err = p.Process(context.Background(), items, func(_ context.Context, _ []int, offset int) error {
			if offset == 10 {
				return errors.New("fail")
			}
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("ConcurrentError", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		boom := errors.New("boom")
		err = p.ProcessConcurrent(context.Background(), items, func(_ context.Context, _ []int, offset int) error {
			if offset == 5 {
				return boom
			}
			return nil
		}, 2)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int32
		cb := func(context.Context, []int, int) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		assert.ErrorIs(t, p.Process(ctx, items, cb), context.Canceled)
		assert.ErrorIs(t, p.ProcessConcurrent(ctx, items, cb, 2), context.Canceled)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrEmptyItems, p.Process(context.Background(), nil, nil))
	})

	t.Run("NilCallback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrNilCallback, p.ProcessConcurrent(context.Background(), items, nil, 1))
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewProcessor[int](2000)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

func TestProcessor_ProgressCallback(t *testing.T) {
	items := make([]string, 7)
	p, err := NewProcessor[string](3)
	require.NoError(t, err)

	var mu sync.Mutex
	var snaps []ProgressSnapshot
	p.WithProgressCallback(func(s ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, s)
	})

	require.NoError(t, p.ProcessConcurrent(context.Background(), items,
		func(context.Context, []string, int) error { return nil }, 2))

	require.Len(t, snaps, 3)
	last := snaps[0]
	for _, s := range snaps {
		if s.ProcessedBatches > last.ProcessedBatches {
			last = s
		}
	}
	assert.Equal(t, 7, last.ProcessedItems)
	assert.Equal(t, 3, last.TotalBatches)
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
}

func TestProgress(t *testing.T) {
	p := NewProgress(100, 10, 10)

	snap := p.AddProcessed(10)
	assert.Equal(t, 10.0, snap.PercentComplete)
	assert.Equal(t, 1, snap.ProcessedBatches)
	assert.Equal(t, 100, snap.TotalItems)
	assert.Equal(t, 10, snap.BatchSize)

	snap = p.AddProcessed(90)
	assert.Equal(t, 100.0, snap.PercentComplete)
	assert.Equal(t, 100, snap.ProcessedItems)
	assert.Equal(t, 2, snap.ProcessedBatches)
	assert.GreaterOrEqual(t, snap.Elapsed, time.Duration(0))

	assert.Equal(t, 0.0, NewProgress(0, 0, 10).AddProcessed(0).PercentComplete)
}

func TestProcessor_Bounds(t *testing.T) {
	p, err := NewProcessor[int](10)
	require.NoError(t, err)
	b := p.Bounds(25)
	require.Len(t, b, 3)
	assert.Equal(t, [2]int{0, 10}, b[0])
	assert.Equal(t, [2]int{10, 20}, b[1])
	assert.Equal(t, [2]int{20, 25}, b[2])
	assert.Equal(t, 10, p.BatchSize())
	assert.Empty(t, p.Bounds(0))
}
