package parallel_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/paveg/plotframe/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()
	assert.Positive(t, pool.Workers())

	pool2 := parallel.NewWorkerPool(4)
	defer pool2.Close()
	assert.Equal(t, 4, pool2.Workers())
}

func TestProcessIndexed(t *testing.T) {
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	input := []string{"a", "b", "c", "d"}
	results, err := parallel.ProcessIndexed(pool, input, func(index int, value string) (string, error) {
		return fmt.Sprintf("%s%d", value, index), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a0", "b1", "c2", "d3"}, results)
}

func TestProcessIndexedEmpty(t *testing.T) {
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	results, err := parallel.ProcessIndexed(pool, []int{}, func(_ int, x int) (int, error) {
		return x, nil
	})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestProcessIndexedLargeInputKeepsOrder(t *testing.T) {
	pool := parallel.NewWorkerPool(8)
	defer pool.Close()

	input := make([]int, 1000)
	for i := range input {
		input[i] = i
	}
	var calls atomic.Int64
	results, err := parallel.ProcessIndexed(pool, input, func(_ int, x int) (int, error) {
		calls.Add(1)
		return x * x, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1000), calls.Load())
	for i, r := range results {
		assert.Equal(t, i*i, r)
	}
}

func TestProcessIndexedReportsLowestFailingIndex(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	input := []int{0, 1, 2, 3, 4, 5, 6, 7}
	_, err := parallel.ProcessIndexed(pool, input, func(_ int, x int) (int, error) {
		if x >= 3 {
			return 0, fmt.Errorf("item %d failed", x)
		}
		return x, nil
	})

	require.Error(t, err)
	assert.Equal(t, "item 3 failed", err.Error())
}

func TestProcessIndexedRecoversPanics(t *testing.T) {
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	_, err := parallel.ProcessIndexed(pool, []int{1, 2}, func(_ int, x int) (int, error) {
		if x == 2 {
			panic("boom")
		}
		return x, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestProcessIndexedCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := parallel.NewWorkerPoolWithContext(ctx, 2)
	defer pool.Close()

	_, err := parallel.ProcessIndexed(pool, []int{1, 2, 3}, func(_ int, x int) (int, error) {
		return x, nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
}
