package threadpool

import "github.com/google/uuid"

// Submit enqueues t for execution and returns the Future delivering its outcome.
//
// Semantics:
//   - Safe for concurrent use by multiple goroutines; never blocks beyond a queue push.
//   - Returns ErrPoolInactive when the pool is disabled; the task is not enqueued.
//   - Tasks are dequeued in insertion order, which under contention is the order in which
//     submitters acquired the queue lock, not the order in which Submit was called.
//   - An error returned by t, or a panic raised by it, is delivered through the Future
//     as an error matching ErrTaskFailed. The worker keeps running.
//   - If the pool is stopped before t runs, the Future yields ErrAbandoned.
func Submit[R any](p *Pool, t Task[R]) (*Future[R], error) {
	if t == nil {
		return nil, ErrNilTask
	}
	if !p.enabled.Load() {
		p.obs.taskRejected()
		return nil, p.inactive()
	}

	f, pr := newFuture[R]()
	j := &job[R]{fn: t, promise: pr, id: uuid.New(), obs: p.obs}

	p.mu.Lock()
	// re-check under the lock so that a concurrent Stop cannot miss this task
	if !p.enabled.Load() {
		p.mu.Unlock()
		p.obs.taskRejected()
		return nil, p.inactive()
	}
	j.seq = p.seq
	p.seq++
	p.queue.push(j)
	p.obs.taskSubmitted()
	p.mu.Unlock()

	p.cond.Signal()
	return f, nil
}

// SubmitValue submits a task that cannot fail.
func SubmitValue[R any](p *Pool, fn func() R) (*Future[R], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return Submit(p, TaskValue(fn))
}

// Go submits a task producing no value. The Future reports completion and failure only.
func Go(p *Pool, fn func() error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return Submit(p, TaskError[struct{}](fn))
}
