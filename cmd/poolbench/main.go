// Command poolbench exercises a threadpool.Pool with sleeping tasks and reports
// the results, optionally exposing pool metrics for Prometheus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ygrebnov/threadpool"
	"github.com/ygrebnov/threadpool/metrics/prom"
)

type options struct {
	workers     uint
	tasks       int
	sleep       time.Duration
	failEvery   int
	metricsAddr string
	verbose     bool
}

func main() {
	var o options
	flag.UintVar(&o.workers, "workers", uint(runtime.NumCPU()), "number of workers")
	flag.IntVar(&o.tasks, "tasks", 10, "number of tasks to submit")
	flag.DurationVar(&o.sleep, "sleep", 10*time.Millisecond, "time each task sleeps")
	flag.IntVar(&o.failEvery, "fail-every", 0, "make every n-th task fail (0 disables)")
	flag.StringVar(&o.metricsAddr, "metrics-addr", "", "serve /metrics on this address and wait for a signal after the run")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, logger); err != nil {
		logger.Error("poolbench failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	p, err := threadpool.New(
		threadpool.WithWorkers(o.workers),
		threadpool.WithName("poolbench"),
		threadpool.WithLogger(logger),
		threadpool.WithMetrics(prom.NewProvider(reg, "")),
	)
	if err != nil {
		return err
	}
	defer p.Stop()

	var srv *http.Server
	if o.metricsAddr != "" {
		srv = &http.Server{
			Addr:              o.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		logger.Info("serving metrics", slog.String("addr", o.metricsAddr))
	}

	tasks := make([]threadpool.Task[int], 0, o.tasks)
	for i := 0; i < o.tasks; i++ {
		tasks = append(tasks, threadpool.Bind(func(n int) (int, error) {
			time.Sleep(o.sleep)
			if o.failEvery > 0 && (n+1)%o.failEvery == 0 {
				return 0, fmt.Errorf("task %d failed on purpose", n)
			}
			return n, nil
		}, i))
	}

	start := time.Now()
	results, err := threadpool.RunAll(ctx, p, tasks)
	elapsed := time.Since(start)

	sum := 0
	for _, r := range results {
		sum += r
	}
	fmt.Printf("tasks=%d workers=%d sum=%d elapsed=%s\n", o.tasks, p.Size(), sum, elapsed.Round(time.Millisecond))
	if err != nil {
		logger.Warn("some tasks failed", slog.Any("error", err))
	}

	if srv != nil {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}
