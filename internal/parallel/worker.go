// Package parallel provides the worker pool used to apply stats to many
// groups at once.
//
// Work items are processed by a fixed number of goroutines and results are
// returned in input order, so callers can fold them sequentially afterwards
// (e.g. to assign group-id offsets) and get the same output as a sequential run.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool. A non-positive count selects
// runtime.NumCPU().
func NewWorkerPool(numWorkers int) *WorkerPool {
	return NewWorkerPoolWithContext(context.Background(), numWorkers)
}

// NewWorkerPoolWithContext creates a worker pool that stops handing out work
// once ctx is done.
func NewWorkerPoolWithContext(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Workers returns the number of goroutines the pool runs.
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// ProcessIndexed executes work items in parallel while preserving order.
//
// If any worker fails, ProcessIndexed returns the error of the lowest failing
// index, which is the error a sequential run would have stopped at. A panic in
// a worker is recovered and reported as that item's error.
func ProcessIndexed[T, R any](
	wp *WorkerPool,
	items []T,
	worker func(int, T) (R, error),
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	itemCh := make(chan indexedItem[T], len(items))
	resultCh := make(chan indexedResult[R], len(items))

	var wg sync.WaitGroup
	workers := min(wp.numWorkers, len(items))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemCh {
				select {
				case <-wp.ctx.Done():
					resultCh <- indexedResult[R]{index: item.index, err: wp.ctx.Err()}
				default:
					resultCh <- run(item, worker)
				}
			}
		}()
	}

	for i, item := range items {
		itemCh <- indexedItem[T]{index: i, value: item}
	}
	close(itemCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]R, len(items))
	errs := make([]error, len(items))
	for result := range resultCh {
		results[result.index] = result.result
		errs[result.index] = result.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func run[T, R any](item indexedItem[T], worker func(int, T) (R, error)) (res indexedResult[R]) {
	res.index = item.index
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("worker %d panicked: %v", item.index, r)
		}
	}()
	res.result, res.err = worker(item.index, item.value)
	return res
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.cancel()
}

// indexedItem holds an item with its index
type indexedItem[T any] struct {
	index int
	value T
}

// indexedResult holds a result with its index
type indexedResult[R any] struct {
	index  int
	result R
	err    error
}
