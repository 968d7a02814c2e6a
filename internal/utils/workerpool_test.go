package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, n int) int { return n })
	assert.Equal(t, 1, pool.workers)
}

func TestPool_Process(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		pool := NewPool(3, func(ctx context.Context, n int) int {
			time.Sleep(time.Duration(5-n) * time.Millisecond)
			return n * 2
		})

		results, err := pool.Process(context.Background(), []int{1, 2, 3, 4, 5})

		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6, 8, 10}, results)
	})

	t.Run("empty input", func(t *testing.T) {
		pool := NewPool(2, func(ctx context.Context, n int) int { return n })
		results, err := pool.Process(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("bounded concurrency", func(t *testing.T) {
		var running, peak int32
		pool := NewPool(2, func(ctx context.Context, n int) int {
			cur := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return n
		})

		_, err := pool.Process(context.Background(), []int{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("on done callback", func(t *testing.T) {
		var done int
		pool := NewPool(4, func(ctx context.Context, n int) int { return n }).
			OnDone(func(int) { done++ })

		_, err := pool.Process(context.Background(), []int{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, done)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pool := NewPool(1, func(ctx context.Context, n int) int { return n })
		_, err := pool.Process(ctx, []int{1, 2, 3})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
