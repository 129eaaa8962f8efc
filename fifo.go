package threadpool

// fifo is an unbounded first-in first-out buffer of runnables.
// It is not safe for concurrent use; the Pool guards it with its mutex.
type fifo struct {
	items []runnable
	head  int
}

func (q *fifo) push(r runnable) { q.items = append(q.items, r) }

// pop removes and returns the oldest runnable. ok is false when the queue is empty.
func (q *fifo) pop() (r runnable, ok bool) {
	if q.head == len(q.items) {
		return nil, false
	}
	r = q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// reclaim the consumed prefix once it dominates the backing array
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return r, true
}

func (q *fifo) len() int { return len(q.items) - q.head }

// drain empties the queue and returns its contents in insertion order.
func (q *fifo) drain() []runnable {
	out := make([]runnable, q.len())
	copy(out, q.items[q.head:])
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return out
}
