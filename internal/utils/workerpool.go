package utils

import (
	"context"
	"sync"
)

// Worker is a function that processes one item
type Worker[T, R any] func(ctx context.Context, item T) R

// Pool runs a worker over a slice of items with bounded concurrency
type Pool[T, R any] struct {
	workers int
	worker  Worker[T, R]
	onDone  func(R)
}

// NewPool creates a new worker pool. workers below 1 is treated as 1.
func NewPool[T, R any](workers int, worker Worker[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		worker:  worker,
	}
}

// OnDone registers a callback invoked after each item completes.
// Calls are serialized.
func (p *Pool[T, R]) OnDone(fn func(R)) *Pool[T, R] {
	p.onDone = fn
	return p
}

// Process runs the worker on every item and returns results in input order.
// Items not started before ctx is cancelled keep the zero value of R.
func (p *Pool[T, R]) Process(ctx context.Context, items []T) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	indexes := make(chan int)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				r := p.worker(ctx, items[idx])
				mu.Lock()
				results[idx] = r
				if p.onDone != nil {
					p.onDone(r)
				}
				mu.Unlock()
			}
		}()
	}

submit:
	for i := range items {
		select {
		case <-ctx.Done():
			break submit
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return results, ctx.Err()
}
