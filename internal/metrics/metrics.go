// Package metrics exports translator activity as Prometheus metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msto63/etds/foundation/etds"
)

// OutcomeOK labels a successful compile; failures use the error kind
const OutcomeOK = "ok"

// Config holds metric naming
type Config struct {
	Namespace string
	// DurationBuckets in seconds; compiles are sub-millisecond for typical input
	DurationBuckets []float64
}

// DefaultConfig returns the default metric naming
func DefaultConfig() Config {
	return Config{
		Namespace:       "etds",
		DurationBuckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}
}

// Collector owns the translator metrics and their registry
type Collector struct {
	registry *prometheus.Registry

	compiles *prometheus.CounterVec
	duration *prometheus.HistogramVec
	symbols  prometheus.Histogram
	cache    *prometheus.CounterVec
}

// New registers the translator metrics on a private registry
func New(cfg Config) *Collector {
	def := DefaultConfig()
	if cfg.Namespace == "" {
		cfg.Namespace = def.Namespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = def.DurationBuckets
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "compiles_total",
			Help:      "Compiled expressions by source and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time spent answering a compile, cache lookups included.",
			Buckets:   cfg.DurationBuckets,
		}, []string{"source"}),
		symbols: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "symbols_per_expression",
			Help:      "Distinct identifiers in successfully compiled expressions.",
			Buckets:   prometheus.LinearBuckets(0, 2, 8),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(c.compiles, c.duration, c.symbols, c.cache)
	return c
}

// ObserveCompile records one compile answered for source
func (c *Collector) ObserveCompile(source string, res *etds.Result, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = string(etds.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	c.compiles.WithLabelValues(source, outcome).Inc()
	c.duration.WithLabelValues(source).Observe(elapsed.Seconds())
	if res != nil && res.Symbols != nil {
		c.symbols.Observe(float64(res.Symbols.Len()))
	}
}

// ObserveCache records a result cache lookup
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.cache.WithLabelValues("hit").Inc()
		return
	}
	c.cache.WithLabelValues("miss").Inc()
}

// Registry returns the registry the metrics live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
