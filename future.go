package threadpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// outcome is the single value written into a result channel.
type outcome[R any] struct {
	value R
	err   error
}

// Future is the consumer half of a task's result channel.
// Get yields the task outcome exactly once; it blocks until the outcome is available.
type Future[R any] struct {
	done     chan struct{}
	out      outcome[R]
	consumed atomic.Bool
}

// promise is the producer half held by the queued job.
// Only the first resolve or abandon call has an effect.
type promise[R any] struct {
	f    *Future[R]
	once sync.Once
}

func newFuture[R any]() (*Future[R], *promise[R]) {
	f := &Future[R]{done: make(chan struct{})}
	return f, &promise[R]{f: f}
}

func (p *promise[R]) resolve(v R, err error) {
	p.once.Do(func() {
		p.f.out = outcome[R]{value: v, err: err}
		close(p.f.done)
	})
}

func (p *promise[R]) abandon() {
	var zero R
	p.resolve(zero, ErrAbandoned)
}

// Get blocks until the task outcome is available and returns it.
// Calling Get again after it returned yields ErrResultRetrieved.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.take()
}

// GetContext is like Get but gives up when ctx is done, returning ctx.Err().
// An outcome not yet taken stays available for a later call.
func (f *Future[R]) GetContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.take()
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the outcome is available.
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// IsDone reports whether the outcome is available without blocking.
func (f *Future[R]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[R]) take() (R, error) {
	if !f.consumed.CompareAndSwap(false, true) {
		var zero R
		return zero, ErrResultRetrieved
	}
	return f.out.value, f.out.err
}
