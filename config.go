package threadpool

import (
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/threadpool/metrics"
)

// config holds Pool configuration.
type config struct {
	// Workers defines the number of workers started by Start.
	// Default: runtime.NumCPU().
	Workers uint

	// MaxWorkers caps the live worker count reachable through Resize.
	// Zero means no ceiling.
	// Default: 0.
	MaxWorkers uint

	// StartDisabled leaves the pool disabled after New; call Start to spawn workers.
	// Default: false (workers are started by New).
	StartDisabled bool

	// Name identifies the pool in logs and errors.
	// Default: "threadpool".
	Name string

	// Logger receives lifecycle and failure records.
	// Default: a logger discarding everything.
	Logger *slog.Logger

	// Metrics provides instruments for pool counters.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers:       uint(runtime.NumCPU()),
		MaxWorkers:    0,
		StartDisabled: false,
		Name:          Namespace,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:       metrics.NewNoopProvider(),
	}
}

// validateConfig checks cross-option invariants that single options cannot see.
func validateConfig(cfg *config) error {
	if cfg.MaxWorkers > 0 && cfg.Workers > cfg.MaxWorkers {
		return errorc.With(
			ErrInvalidConfig,
			errorc.String("workers", strconv.FormatUint(uint64(cfg.Workers), 10)),
			errorc.String("maxWorkers", strconv.FormatUint(uint64(cfg.MaxWorkers), 10)),
		)
	}
	return nil
}

// Option configures a Pool. Use New(opts...) to construct a Pool via options.
type Option func(*config) error

// WithWorkers sets the number of workers (must be > 0).
func WithWorkers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWorkers requires n > 0"))
		}
		cfg.Workers = n
		return nil
	}
}

// WithMaxWorkers sets a ceiling for growing the pool through Resize (must be > 0).
func WithMaxWorkers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxWorkers requires n > 0"))
		}
		cfg.MaxWorkers = n
		return nil
	}
}

// WithStartDisabled constructs the pool in the disabled state without workers.
func WithStartDisabled() Option {
	return func(cfg *config) error { cfg.StartDisabled = true; return nil }
}

// WithName sets the pool name used in logs and error context.
func WithName(name string) Option {
	return func(cfg *config) error {
		if name == "" {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithName requires a non-empty name"))
		}
		cfg.Name = name
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider used to create pool instruments.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}
