package threadpool

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// Pool runs submitted tasks on a set of long-lived worker goroutines sharing one FIFO queue.
// Pool is a concrete struct; methods are safe for concurrent use.
// Start, Stop and Resize are serialized internally; Enable, Disable and Submit never wait for them.
type Pool struct {
	// noCopy prevents accidental copying of the controller.
	//go:nocopy
	nc noCopy

	config *config
	obs    *observer

	// lifeMu serializes Start, Stop and Resize.
	lifeMu sync.Mutex
	// target is the worker count restored by Start. Guarded by lifeMu.
	target int

	// mu guards queue, workers, seq, nextWorker and every worker's quit/exited flags.
	mu         sync.Mutex
	cond       *sync.Cond
	queue      fifo
	workers    []*worker
	seq        uint64
	nextWorker uint64

	// enabled is written under mu so that a worker waiting on cond observes it once woken.
	enabled atomic.Bool
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
// It works with the "-copylocks" analyzer via the presence of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a new Pool using functional options.
// Unless WithStartDisabled is given, the pool is enabled and its workers are running on return.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	p := &Pool{
		config: &cfg,
		obs:    newObserver(cfg.Name, cfg.Logger, cfg.Metrics),
		target: int(cfg.Workers),
	}
	p.cond = sync.NewCond(&p.mu)

	if !cfg.StartDisabled {
		p.Start()
	}
	return p, nil
}

// Start enables the pool and spawns workers up to the configured count.
// It is a no-op when the pool is already enabled with all its workers running.
// Workers that exited after Disable are joined and replaced.
func (p *Pool) Start() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()

	p.mu.Lock()
	p.reapLocked()
	missing := p.target - len(p.workers)
	if p.enabled.Load() && missing <= 0 {
		p.mu.Unlock()
		return
	}
	p.enabled.Store(true)
	p.spawnLocked(missing)
	live := len(p.workers)
	p.mu.Unlock()

	p.obs.log.Info("pool started", slog.Int("workers", live))
}

// Stop disables the pool, lets every worker finish its current task, and joins all of them.
// Tasks still queued when the workers are gone are abandoned: their futures fail with ErrAbandoned.
// Stop is idempotent.
func (p *Pool) Stop() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()

	p.stopLocked()
}

// stopLocked requires lifeMu.
func (p *Pool) stopLocked() {
	var abandoned int
	retired := retirement{
		signal: func() []*worker {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.enabled.Store(false)
			for _, w := range p.workers {
				w.quit = true
			}
			p.cond.Broadcast()
			return slices.Clone(p.workers)
		},
		join: joinAll,
		compact: func(ws []*worker) []runnable {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.workers = removeWorkers(p.workers, ws)
			rest := p.queue.drain()
			abandoned = len(rest)
			return rest
		},
		abandon: abandonAll,
	}.run()

	if retired > 0 || abandoned > 0 {
		p.obs.log.Info("pool stopped", slog.Int("retired", retired), slog.Int("abandoned", abandoned))
	}
}

// Enable makes the pool accept new tasks. It neither spawns nor joins workers; see Start.
func (p *Pool) Enable() {
	p.mu.Lock()
	p.enabled.Store(true)
	p.mu.Unlock()
}

// Disable makes Submit reject new tasks. Workers drain the tasks already queued
// and exit once the queue is empty. Disable does not wait for them; see Stop.
func (p *Pool) Disable() {
	p.mu.Lock()
	p.enabled.Store(false)
	p.cond.Broadcast()
	p.mu.Unlock()
}

// IsEnabled reports whether the pool accepts new tasks.
func (p *Pool) IsEnabled() bool { return p.enabled.Load() }

// Resize grows the pool by delta workers when delta > 0, or shrinks it by -delta when delta < 0.
//
// Semantics:
//   - Returns ErrPoolInactive when the pool is disabled.
//   - Growth spawns new workers sharing the same queue. When WithMaxWorkers is configured
//     and the ceiling would be exceeded, returns ErrUnsupportedResize and changes nothing.
//   - Shrinking asks the most recently started workers to exit after their current task,
//     joins them, then removes them from the pool. Queued tasks stay for the remaining workers.
//   - Shrinking by at least the live worker count is equivalent to Stop.
func (p *Pool) Resize(delta int) error {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()

	if !p.enabled.Load() {
		return p.inactive()
	}

	switch {
	case delta > 0:
		return p.growLocked(delta)
	case delta < 0:
		n := -delta
		if n < 0 {
			// -math.MinInt overflows back to math.MinInt
			n = math.MaxInt
		}
		p.shrinkLocked(n)
	}
	return nil
}

// growLocked requires lifeMu.
func (p *Pool) growLocked(n int) error {
	p.mu.Lock()
	p.reapLocked()
	live := len(p.workers)
	if maxWorkers := int(p.config.MaxWorkers); maxWorkers > 0 && (live >= maxWorkers || n > maxWorkers-live) {
		p.mu.Unlock()
		return errorc.With(
			ErrUnsupportedResize,
			errorc.String("pool", p.config.Name),
			errorc.String("live", strconv.Itoa(live)),
			errorc.String("delta", strconv.Itoa(n)),
			errorc.String("maxWorkers", strconv.Itoa(maxWorkers)),
		)
	}
	p.spawnLocked(n)
	p.target = len(p.workers)
	p.mu.Unlock()

	p.obs.log.Info("pool grown", slog.Int("delta", n), slog.Int("workers", p.Size()))
	return nil
}

// shrinkLocked requires lifeMu.
func (p *Pool) shrinkLocked(n int) {
	p.mu.Lock()
	p.reapLocked()
	live := len(p.workers)
	p.mu.Unlock()

	if n < 0 || n >= live {
		p.stopLocked()
		return
	}

	retirement{
		signal: func() []*worker {
			p.mu.Lock()
			defer p.mu.Unlock()
			targets := slices.Clone(p.workers[len(p.workers)-n:])
			for _, w := range targets {
				w.quit = true
			}
			p.cond.Broadcast()
			return targets
		},
		join: joinAll,
		compact: func(ws []*worker) []runnable {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.workers = removeWorkers(p.workers, ws)
			p.target = len(p.workers)
			return nil
		},
	}.run()

	p.obs.log.Info("pool shrunk", slog.Int("delta", -n), slog.Int("workers", live-n))
}

// Size returns the number of live workers.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, w := range p.workers {
		if !w.exited {
			n++
		}
	}
	return n
}

// Pending returns the number of queued tasks not yet picked up by a worker.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.len()
}

// Name returns the pool name.
func (p *Pool) Name() string { return p.config.Name }

// spawnLocked requires mu.
func (p *Pool) spawnLocked(n int) {
	for range n {
		p.nextWorker++
		w := newWorker(p.nextWorker)
		p.workers = append(p.workers, w)
		p.obs.workerStarted(w.id)
		go w.loop(p)
	}
}

// reapLocked joins and drops workers that exited on their own after Disable. Requires mu.
// An exited worker no longer touches mu, so joining it here cannot deadlock.
func (p *Pool) reapLocked() {
	p.workers = slices.DeleteFunc(p.workers, func(w *worker) bool {
		if !w.exited {
			return false
		}
		w.join()
		return true
	})
}

func (p *Pool) inactive() error {
	return errorc.With(ErrPoolInactive, errorc.String("pool", p.config.Name))
}

// removeWorkers returns live without the workers in gone, preserving order.
func removeWorkers(live, gone []*worker) []*worker {
	drop := make(map[*worker]struct{}, len(gone))
	for _, w := range gone {
		drop[w] = struct{}{}
	}
	return slices.DeleteFunc(live, func(w *worker) bool {
		_, ok := drop[w]
		return ok
	})
}
