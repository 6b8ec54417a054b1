// Package batch runs independent operations over a slice with a fixed
// concurrency ceiling, collecting a per-item outcome so a single failure
// never aborts the rest of the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

// Outcome holds the result slot for one input item: either the handler's
// value or the error it failed with. Exactly one of the two is meaningful.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Run executes handler over items with at most concurrency invocations in
// flight at once. The returned slice has exactly len(items) slots and slot i
// always corresponds to items[i], regardless of completion order.
//
// A handler error (or panic) is captured in that item's slot and does not
// affect its siblings. onProgress, when non-nil, is called serially, once per
// completed item, with a "done/total" text; it must not call back into Run.
// If ctx is cancelled, items not yet started fail with ctx.Err() but
// in-flight handlers are left to finish.
func Run[T, R any](ctx context.Context, items []T, handler func(ctx context.Context, item T, index int) (R, error), concurrency int, onProgress func(text string)) ([]Outcome[R], error) {
	if concurrency < 1 {
		return nil, ErrInvalidConcurrency
	}

	results := make([]Outcome[R], len(items))
	if len(items) == 0 {
		return results, nil
	}

	if concurrency > len(items) {
		concurrency = len(items)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		next int
		done int
	)

	runOne := func(item T, index int) (val R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("handler panicked: %v", r)
			}
		}()
		return handler(ctx, item, index)
	}

	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if next >= len(items) {
					mu.Unlock()
					return
				}
				index := next
				next++
				mu.Unlock()

				var out Outcome[R]
				if err := ctx.Err(); err != nil {
					out.Err = err
				} else {
					out.Value, out.Err = runOne(items[index], index)
				}

				mu.Lock()
				results[index] = out
				done++
				if onProgress != nil {
					onProgress(fmt.Sprintf("%d/%d", done, len(items)))
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return results, nil
}

// FailureCount reports how many outcome slots carry an error.
func FailureCount[R any](outcomes []Outcome[R]) int {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	return failed
}
