package threadpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetirement_OrderAndHandOff(t *testing.T) {
	var steps []string
	var abandoned []int

	w1, w2 := newWorker(1), newWorker(2)
	close(w1.done)
	close(w2.done)

	leftover := []runnable{
		recordRunnable{id: 1, log: &abandoned},
		recordRunnable{id: 2, log: &abandoned},
	}

	n := retirement{
		signal: func() []*worker {
			steps = append(steps, "signal")
			return []*worker{w1, w2}
		},
		join: func(ws []*worker) {
			steps = append(steps, "join")
			require.Equal(t, []*worker{w1, w2}, ws)
			joinAll(ws)
		},
		compact: func(ws []*worker) []runnable {
			steps = append(steps, "compact")
			require.Len(t, ws, 2)
			return leftover
		},
		abandon: func(rs []runnable) {
			steps = append(steps, "abandon")
			abandonAll(rs)
		},
	}.run()

	require.Equal(t, 2, n)
	require.Equal(t, []string{"signal", "join", "compact", "abandon"}, steps)
	require.Equal(t, []int{-1, -2}, abandoned)
}

func TestRetirement_NoLeftover_SkipsAbandon(t *testing.T) {
	called := false
	n := retirement{
		signal:  func() []*worker { return nil },
		join:    joinAll,
		compact: func([]*worker) []runnable { return nil },
		abandon: func([]runnable) { called = true },
	}.run()

	require.Zero(t, n)
	require.False(t, called)
}

func TestRemoveWorkers_PreservesOrder(t *testing.T) {
	ws := []*worker{newWorker(1), newWorker(2), newWorker(3), newWorker(4)}
	gone := []*worker{ws[1], ws[3]}
	want := []*worker{ws[0], ws[2]}

	require.Equal(t, want, removeWorkers(ws, gone))
}
