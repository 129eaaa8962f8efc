package threadpool

// retirement encapsulates the ordered sequence taking workers out of service.
// It is a wiring helper used by Stop and by shrinking Resize: it doesn't own the
// workers or the queue; it orchestrates signalling, joins and cleanup in a
// deterministic order.
//
// Steps:
// 1) signal: pick the target workers and ask them to quit (under the pool lock)
// 2) join: wait for every target goroutine to return (no lock held)
// 3) compact: drop joined handles and collect work left behind (under the pool lock)
// 4) abandon: fail the leftover work with ErrAbandoned
type retirement struct {
	signal  func() []*worker
	join    func([]*worker)
	compact func([]*worker) []runnable
	abandon func([]runnable)
}

// run executes the sequence and returns the number of retired workers.
func (r retirement) run() int {
	targets := r.signal()
	if r.join != nil {
		r.join(targets)
	}
	var leftover []runnable
	if r.compact != nil {
		leftover = r.compact(targets)
	}
	if r.abandon != nil && len(leftover) > 0 {
		r.abandon(leftover)
	}
	return len(targets)
}

func joinAll(ws []*worker) {
	for _, w := range ws {
		w.join()
	}
}

func abandonAll(rs []runnable) {
	for _, r := range rs {
		r.abandon()
	}
}
