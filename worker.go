package threadpool

// worker owns one goroutine running the dequeue-then-run loop.
// quit and exited are guarded by the pool mutex; done is closed when the goroutine returns.
type worker struct {
	id     uint64
	quit   bool
	exited bool
	done   chan struct{}
}

func newWorker(id uint64) *worker {
	return &worker{id: id, done: make(chan struct{})}
}

// loop waits for work on the pool condition variable and runs one runnable at a time.
// It terminates when asked to quit, or when the queue is empty and the pool is disabled.
func (w *worker) loop(p *Pool) {
	defer close(w.done)
	defer p.obs.workerExited(w.id)
	clean := false
	defer func() {
		p.mu.Lock()
		w.exited = true
		// a task ended the goroutine with runtime.Goexit; keep the pool staffed
		if !clean && !w.quit {
			p.spawnLocked(1)
		}
		p.mu.Unlock()
	}()

	for {
		p.mu.Lock()
		for p.queue.len() == 0 && p.enabled.Load() && !w.quit {
			p.cond.Wait()
		}
		if w.quit || (p.queue.len() == 0 && !p.enabled.Load()) {
			clean = true
			p.mu.Unlock()
			return
		}
		r, _ := p.queue.pop()
		p.mu.Unlock()

		p.obs.taskDequeued()
		r.run()
	}
}

// join blocks until the worker goroutine has returned. Joining twice is safe.
func (w *worker) join() { <-w.done }
