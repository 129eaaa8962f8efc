package threadpool

import (
	"bytes"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/threadpool/metrics"
)

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := defaultConfig()
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("validateConfig returned error for defaults: %v", err)
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Workers != uint(runtime.NumCPU()) {
		t.Fatalf("Workers default = %d; want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.MaxWorkers != 0 {
		t.Fatalf("MaxWorkers default = %d; want 0", cfg.MaxWorkers)
	}
	if cfg.StartDisabled {
		t.Fatalf("StartDisabled default = %v; want false", cfg.StartDisabled)
	}
	if cfg.Name != Namespace {
		t.Fatalf("Name default = %q; want %q", cfg.Name, Namespace)
	}
	if cfg.Logger == nil || cfg.Metrics == nil {
		t.Fatalf("Logger and Metrics defaults must be non-nil")
	}
}

func TestOptions_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "zero workers", opt: WithWorkers(0)},
		{name: "zero max workers", opt: WithMaxWorkers(0)},
		{name: "empty name", opt: WithName("")},
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "nil metrics", opt: WithMetrics(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(tt.opt)
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Nil(t, p)
		})
	}
}

func TestNew_WorkersAboveCeiling_ReturnsError(t *testing.T) {
	p, err := New(WithWorkers(4), WithMaxWorkers(2))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Nil(t, p)
}

func TestNew_ValidOptions_Succeeds(t *testing.T) {
	var buf bytes.Buffer

	p, err := New(
		nil, // nil options are skipped
		WithWorkers(2),
		WithMaxWorkers(4),
		WithName("ingest"),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithMetrics(metrics.NewBasicProvider()),
	)
	require.NoError(t, err)
	require.NotNil(t, p)

	require.Equal(t, "ingest", p.Name())
	require.True(t, p.IsEnabled())
	require.Equal(t, 2, p.Size())

	p.Stop()
	require.Contains(t, buf.String(), "pool started")
	require.Contains(t, buf.String(), "pool=ingest")
}

func TestNew_StartDisabled_NoWorkers(t *testing.T) {
	p, err := New(WithWorkers(3), WithStartDisabled())
	require.NoError(t, err)
	defer p.Stop()

	require.False(t, p.IsEnabled())
	require.Equal(t, 0, p.Size())

	p.Start()
	require.True(t, p.IsEnabled())
	require.Equal(t, 3, p.Size())
}
