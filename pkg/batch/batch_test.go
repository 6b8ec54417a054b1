package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_PreservesInputOrder(t *testing.T) {
	// Slower items must not displace faster ones in the output
	delays := map[string]time.Duration{
		"a": 30 * time.Millisecond,
		"b": 10 * time.Millisecond,
		"c": 20 * time.Millisecond,
	}
	items := []string{"a", "b", "c"}

	results, err := Run(context.Background(), items, func(ctx context.Context, item string, index int) (string, error) {
		time.Sleep(delays[item])
		return "result-" + item, nil
	}, 3, nil)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "result-a", results[0].Value)
	assert.Equal(t, "result-b", results[1].Value)
	assert.Equal(t, "result-c", results[2].Value)
}

func TestRun_FailureDoesNotAbortSiblings(t *testing.T) {
	items := []int{1, 2, 3}
	failure := errors.New("boom")

	results, err := Run(context.Background(), items, func(ctx context.Context, item, index int) (int, error) {
		if item == 2 {
			return 0, failure
		}
		return item * 10, nil
	}, 3, nil)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 10, results[0].Value)
	assert.ErrorIs(t, results[1].Err, failure)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 30, results[2].Value)
}

func TestRun_ConcurrencyCeiling(t *testing.T) {
	const concurrency = 3
	var inFlight, maxInFlight int64

	items := make([]int, 20)
	_, err := Run(context.Background(), items, func(ctx context.Context, item, index int) (struct{}, error) {
		current := atomic.AddInt64(&inFlight, 1)
		for {
			observed := atomic.LoadInt64(&maxInFlight)
			if current <= observed || atomic.CompareAndSwapInt64(&maxInFlight, observed, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return struct{}{}, nil
	}, concurrency, nil)

	assert.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(concurrency))
}

func TestRun_EmptyItems(t *testing.T) {
	called := false
	results, err := Run(context.Background(), nil, func(ctx context.Context, item, index int) (int, error) {
		called = true
		return 0, nil
	}, 5, func(text string) {
		called = true
	})

	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestRun_InvalidConcurrency(t *testing.T) {
	_, err := Run(context.Background(), []int{1}, func(ctx context.Context, item, index int) (int, error) {
		return item, nil
	}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)

	_, err = Run(context.Background(), []int{1}, func(ctx context.Context, item, index int) (int, error) {
		return item, nil
	}, -3, nil)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestRun_PanicCapturedAsError(t *testing.T) {
	items := []int{1, 2, 3}

	results, err := Run(context.Background(), items, func(ctx context.Context, item, index int) (int, error) {
		if item == 2 {
			panic("unexpected state")
		}
		return item, nil
	}, 2, nil)

	assert.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "unexpected state")
	assert.NoError(t, results[2].Err)
}

func TestRun_ProgressReported(t *testing.T) {
	var mu sync.Mutex
	var progress []string

	items := []int{1, 2, 3, 4}
	_, err := Run(context.Background(), items, func(ctx context.Context, item, index int) (int, error) {
		return item, nil
	}, 2, func(text string) {
		mu.Lock()
		progress = append(progress, text)
		mu.Unlock()
	})

	assert.NoError(t, err)
	assert.Len(t, progress, 4)
	assert.Contains(t, progress, "4/4")
	for i, text := range progress {
		assert.Equal(t, fmt.Sprintf("%d/4", i+1), text)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var started int64
	items := make([]int, 50)
	results, err := Run(ctx, items, func(ctx context.Context, item, index int) (int, error) {
		if atomic.AddInt64(&started, 1) == 1 {
			cancel()
		}
		time.Sleep(time.Millisecond)
		return index, nil
	}, 1, nil)

	assert.NoError(t, err)
	assert.Len(t, results, 50)
	// First item ran; the rest fail with the context error once cancel lands
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[49].Err, context.Canceled)
}

func TestFailureCount(t *testing.T) {
	outcomes := []Outcome[int]{
		{Value: 1},
		{Err: errors.New("x")},
		{Value: 3},
		{Err: errors.New("y")},
	}
	assert.Equal(t, 2, FailureCount(outcomes))
	assert.Equal(t, 0, FailureCount([]Outcome[int]{}))
}
