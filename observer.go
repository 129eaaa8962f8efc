package threadpool

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ygrebnov/threadpool/metrics"
)

// Metric names recorded by every Pool.
const (
	MetricTasksSubmitted = "threadpool_tasks_submitted_total"
	MetricTasksRejected  = "threadpool_tasks_rejected_total"
	MetricTasksCompleted = "threadpool_tasks_completed_total"
	MetricTasksFailed    = "threadpool_tasks_failed_total"
	MetricTasksAbandoned = "threadpool_tasks_abandoned_total"
	MetricWorkers        = "threadpool_workers"
	MetricQueueDepth     = "threadpool_queue_depth"
	MetricTaskDuration   = "threadpool_task_duration_seconds"
)

// observer records pool events into metrics instruments and the logger.
type observer struct {
	log *slog.Logger

	submitted metrics.Counter
	rejected  metrics.Counter
	completed metrics.Counter
	failed    metrics.Counter
	abandoned metrics.Counter
	workers   metrics.UpDownCounter
	queue     metrics.UpDownCounter
	duration  metrics.Histogram
}

func newObserver(name string, log *slog.Logger, p metrics.Provider) *observer {
	attrs := metrics.WithAttributes(map[string]string{"pool": name})
	return &observer{
		log: log.With(slog.String("pool", name)),
		submitted: p.Counter(MetricTasksSubmitted,
			metrics.WithDescription("Tasks accepted by Submit"), metrics.WithUnit("1"), attrs),
		rejected: p.Counter(MetricTasksRejected,
			metrics.WithDescription("Tasks rejected because the pool was inactive"), metrics.WithUnit("1"), attrs),
		completed: p.Counter(MetricTasksCompleted,
			metrics.WithDescription("Tasks executed, successfully or not"), metrics.WithUnit("1"), attrs),
		failed: p.Counter(MetricTasksFailed,
			metrics.WithDescription("Tasks that returned an error or panicked"), metrics.WithUnit("1"), attrs),
		abandoned: p.Counter(MetricTasksAbandoned,
			metrics.WithDescription("Tasks discarded at Stop before execution"), metrics.WithUnit("1"), attrs),
		workers: p.UpDownCounter(MetricWorkers,
			metrics.WithDescription("Live workers"), metrics.WithUnit("1"), attrs),
		queue: p.UpDownCounter(MetricQueueDepth,
			metrics.WithDescription("Tasks waiting in the queue"), metrics.WithUnit("1"), attrs),
		duration: p.Histogram(MetricTaskDuration,
			metrics.WithDescription("Task execution time"), metrics.WithUnit("seconds"), attrs),
	}
}

func (o *observer) taskSubmitted() {
	o.submitted.Add(1)
	o.queue.Add(1)
}

func (o *observer) taskRejected() { o.rejected.Add(1) }

func (o *observer) taskDequeued() { o.queue.Add(-1) }

func (o *observer) taskDone(id uuid.UUID, seq uint64, d time.Duration, err error) {
	o.completed.Add(1)
	o.duration.Record(d.Seconds())
	if err != nil {
		o.failed.Add(1)
		o.log.Debug("task failed",
			slog.String("task", id.String()), slog.Uint64("seq", seq), slog.Any("error", err))
	}
}

func (o *observer) taskAbandoned(id uuid.UUID, seq uint64) {
	o.abandoned.Add(1)
	o.queue.Add(-1)
	o.log.Debug("task abandoned", slog.String("task", id.String()), slog.Uint64("seq", seq))
}

func (o *observer) workerStarted(id uint64) {
	o.workers.Add(1)
	o.log.Debug("worker started", slog.Uint64("worker", id))
}

func (o *observer) workerExited(id uint64) {
	o.workers.Add(-1)
	o.log.Debug("worker exited", slog.Uint64("worker", id))
}
