// Package prom exposes Pool metrics through the Prometheus client library.
package prom

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/threadpool/metrics"
)

// Provider implements metrics.Provider on top of a prometheus.Registerer.
// Counters map to prometheus counters, up/down counters to gauges and histograms to
// histograms with prometheus.DefBuckets. Instrument attributes become constant labels.
//
// Like prometheus.MustRegister, instrument creation panics when the registerer rejects
// a collector for any reason other than it being registered already.
type Provider struct {
	reg       prometheus.Registerer
	namespace string

	mu         sync.Mutex
	counters   map[string]counter
	gauges     map[string]gauge
	histograms map[string]histogram
}

var _ metrics.Provider = (*Provider)(nil)

// NewProvider returns a Provider registering into reg (prometheus.DefaultRegisterer when nil).
// A non-empty namespace is prepended to every metric name.
func NewProvider(reg prometheus.Registerer, namespace string) *Provider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Provider{
		reg:        reg,
		namespace:  namespace,
		counters:   make(map[string]counter),
		gauges:     make(map[string]gauge),
		histograms: make(map[string]histogram),
	}
}

func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	cfg := metrics.NewInstrumentConfig(opts...)
	key := instrumentKey(name, cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[key]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   p.namespace,
		Name:        name,
		Help:        help(name, cfg),
		ConstLabels: cfg.Attributes,
	})
	out := counter{c: register(p.reg, c)}
	p.counters[key] = out
	return out
}

func (p *Provider) UpDownCounter(name string, opts ...metrics.InstrumentOption) metrics.UpDownCounter {
	cfg := metrics.NewInstrumentConfig(opts...)
	key := instrumentKey(name, cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.gauges[key]; ok {
		return g
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   p.namespace,
		Name:        name,
		Help:        help(name, cfg),
		ConstLabels: cfg.Attributes,
	})
	out := gauge{g: register(p.reg, g)}
	p.gauges[key] = out
	return out
}

func (p *Provider) Histogram(name string, opts ...metrics.InstrumentOption) metrics.Histogram {
	cfg := metrics.NewInstrumentConfig(opts...)
	key := instrumentKey(name, cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[key]; ok {
		return h
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   p.namespace,
		Name:        name,
		Help:        help(name, cfg),
		ConstLabels: cfg.Attributes,
		Buckets:     prometheus.DefBuckets,
	})
	out := histogram{h: register(p.reg, h)}
	p.histograms[key] = out
	return out
}

// register registers c, or returns the collector registered before it under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func help(name string, cfg metrics.InstrumentConfig) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return name
}

// instrumentKey identifies an instrument by name and constant labels.
func instrumentKey(name string, attrs map[string]string) string {
	if len(attrs) == 0 {
		return name
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attrs[k])
	}
	return b.String()
}

type counter struct{ c prometheus.Counter }

func (c counter) Add(n int64) { c.c.Add(float64(n)) }

type gauge struct{ g prometheus.Gauge }

func (g gauge) Add(n int64) { g.g.Add(float64(n)) }

type histogram struct{ h prometheus.Histogram }

func (h histogram) Record(v float64) { h.h.Observe(v) }
