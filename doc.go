// Package threadpool provides a fixed-capacity pool of worker goroutines executing
// submitted tasks from one unbounded FIFO queue and delivering each outcome through a Future.
//
// Construction
//   - New(opts ...Option): options-based constructor. The pool is an ordinary value owned by
//     the caller; there is no package-level instance.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created pool:
//   - Workers: runtime.NumCPU()
//   - MaxWorkers: 0 (Resize may grow without a ceiling)
//   - StartDisabled: false (workers are running when New returns)
//   - Name: "threadpool"
//   - Logger: discards everything
//   - Metrics: no-op provider
//
// Lifecycle
//   - Start: enable and spawn workers up to the configured count.
//   - Stop: disable, let running tasks finish, join every worker, abandon queued tasks.
//   - Enable / Disable: toggle task admission only. After Disable, workers drain the queue and exit.
//   - Resize: grow or shrink the live worker set.
//
// Results
// Submit returns a *Future. Future.Get blocks until the task has run (or was abandoned at Stop)
// and yields its outcome exactly once. Task errors and panics match ErrTaskFailed and carry
// the task ID and submission sequence (see ExtractTaskID, ExtractTaskSeq).
package threadpool
