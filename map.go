package threadpool

import "context"

// Map fans out items through fn on p and returns results in input order and the aggregated error.
// It delegates to RunAll after binding each item into a Task that calls fn(item).
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	tasks := make([]Task[R], 0, len(items))
	for _, item := range items {
		tasks = append(tasks, Bind(fn, item))
	}
	return RunAll(ctx, p, tasks)
}
