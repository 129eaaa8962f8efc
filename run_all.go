package threadpool

import (
	"context"
	"errors"
	"fmt"
)

// RunAll submits every task to p and waits for all of them.
//
// Semantics:
//   - Results are returned in input order; the slot of a failed task holds the zero value.
//   - The returned error is errors.Join of all task and submission errors (nil if none).
//   - Submission stops at the first rejected task; the remaining tasks are reported as not submitted.
//   - If ctx is done before every outcome arrives, RunAll returns what it has so far along with ctx.Err().
//     Tasks already queued keep running on the pool.
func RunAll[R any](ctx context.Context, p *Pool, tasks []Task[R]) ([]R, error) {
	futures, errs := submitAll(p, tasks)
	results := make([]R, len(tasks))

	for i, f := range futures {
		if f == nil {
			continue
		}
		r, err := f.GetContext(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return results, errors.Join(append(errs, ctxErr)...)
			}
			errs = append(errs, err)
			continue
		}
		results[i] = r
	}
	return results, errors.Join(errs...)
}

// submitAll submits tasks until the first rejection. futures has one slot per task; nil means not submitted.
func submitAll[R any](p *Pool, tasks []Task[R]) (futures []*Future[R], errs []error) {
	futures = make([]*Future[R], len(tasks))
	for i, t := range tasks {
		f, err := Submit(p, t)
		if err != nil {
			errs = append(errs, fmt.Errorf("task %d of %d not submitted: %w", i, len(tasks), err))
			break
		}
		futures[i] = f
	}
	return futures, errs
}
