package threadpool

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is the canonical task shape used throughout the package.
// It takes no arguments and returns a result of type R and an error.
// Use TaskFunc / TaskValue / TaskError / Bind helpers to adapt common function signatures.
//
// Example:
//
//	t := TaskValue(func() int { return 42 })
//	_ = t
//
// Arguments are captured by the closure at the time it is built.
type Task[R any] func() (R, error)

// TaskFunc adapts func() (R, error) to Task[R].
func TaskFunc[R any](fn func() (R, error)) Task[R] { return Task[R](fn) }

// TaskValue adapts func() R to Task[R].
func TaskValue[R any](fn func() R) Task[R] {
	return func() (R, error) { return fn(), nil }
}

// TaskError adapts func() error to Task[R].
// The returned Task yields the zero value of R alongside the error.
func TaskError[R any](fn func() error) Task[R] {
	return func() (R, error) { var zero R; return zero, fn() }
}

// Bind snapshots a into a Task calling fn(a).
func Bind[A, R any](fn func(A) (R, error), a A) Task[R] {
	return func() (R, error) { return fn(a) }
}

// Bind2 snapshots a and b into a Task calling fn(a, b).
func Bind2[A, B, R any](fn func(A, B) (R, error), a A, b B) Task[R] {
	return func() (R, error) { return fn(a, b) }
}

// runnable is the type-erased unit stored in the queue.
// Exactly one of run or abandon is called for each runnable.
type runnable interface {
	run()
	abandon()
}

// job binds a Task to the producer half of its Future.
type job[R any] struct {
	fn      Task[R]
	promise *promise[R]
	id      uuid.UUID
	seq     uint64
	obs     *observer
}

func (j *job[R]) run() {
	start := time.Now()
	returned := false
	// runtime.Goexit skips recover; the future must still resolve.
	defer func() {
		if returned {
			return
		}
		var zero R
		err := newTaskFailedError(ErrTaskExited, j.id, j.seq)
		j.obs.taskDone(j.id, j.seq, time.Since(start), err)
		j.promise.resolve(zero, err)
	}()

	res, err := execTask(j.fn)
	returned = true
	if err != nil {
		err = newTaskFailedError(err, j.id, j.seq)
	}
	j.obs.taskDone(j.id, j.seq, time.Since(start), err)
	j.promise.resolve(res, err)
}

func (j *job[R]) abandon() {
	j.obs.taskAbandoned(j.id, j.seq)
	j.promise.abandon()
}

// execTask runs call and converts a panic into an ErrTaskPanicked error.
func execTask[R any](call Task[R]) (result R, err error) {
	defer func() {
		if ePanic := recover(); ePanic != nil {
			var zero R
			result = zero
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic)
		}
	}()

	return call()
}
