package threadpool

import "context"

// ForEach applies fn to each item concurrently on p.
// It returns the aggregated error (errors.Join) or nil when all succeed.
func ForEach[T any](ctx context.Context, p *Pool, items []T, fn func(T) error) error {
	if len(items) == 0 {
		return nil
	}
	tasks := make([]Task[struct{}], 0, len(items))
	for _, item := range items {
		tasks = append(tasks, TaskError[struct{}](func() error { return fn(item) }))
	}
	_, err := RunAll(ctx, p, tasks)
	return err
}
