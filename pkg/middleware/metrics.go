package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	lserrors "github.com/vango-dev/labelselect/internal/errors"
	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/labelselect"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "labelselect").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for call duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "labelselect",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	callErrors    *prometheus.CounterVec
	eventsEmitted *prometheus.CounterVec
	activePages   prometheus.Gauge
	wsErrors      *prometheus.CounterVec
}

// globalMetrics is created on the first call to Prometheus.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		callsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "calls_total",
			Help:        "Total number of control calls handled",
			ConstLabels: config.ConstLabels,
		}, []string{"call", "status"}),

		callDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "call_duration_seconds",
			Help:        "Control call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"call"}),

		callErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "call_errors_total",
			Help:        "Total number of failed control calls by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"call", "code"}),

		eventsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_emitted_total",
			Help:        "Total number of semantic events emitted by controls",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		activePages: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_pages",
			Help:        "Number of pages with a live connection",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that collects metrics for every call a
// registry handles.
//
// Metrics collected:
//   - labelselect_calls_total: Counter of calls by kind and status
//   - labelselect_call_duration_seconds: Histogram of call duration
//   - labelselect_call_errors_total: Counter of failed calls by error code
//   - labelselect_events_emitted_total: Counter of emitted events (via EmitHook)
//   - labelselect_active_pages: Gauge of live pages
//   - labelselect_websocket_errors_total: Counter of WebSocket errors
func Prometheus(opts ...MetricsOption) labelselect.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := ensureMetrics(config)

	return func(next labelselect.Handler) labelselect.Handler {
		return func(ctx context.Context, host *dom.Element, call labelselect.Call) (any, error) {
			kind := call.Kind()
			start := time.Now()

			v, err := next(ctx, host, call)

			m.callDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			status := "success"
			if err != nil {
				status = "error"
				m.callErrors.WithLabelValues(kind, errorCode(err)).Inc()
			}
			m.callsTotal.WithLabelValues(kind, status).Inc()

			return v, err
		}
	}
}

func ensureMetrics(config MetricsConfig) *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	return globalMetrics
}

// errorCode keeps the label set bounded: coded errors report their code,
// everything else is "internal".
func errorCode(err error) string {
	if code := lserrors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

// EmitHook returns a hook that counts emitted events. It is a no-op until
// Prometheus has been called.
func EmitHook() labelselect.EmitHook {
	return func(_ *dom.Element, event string) {
		if m := current(); m != nil {
			m.eventsEmitted.WithLabelValues(event).Inc()
		}
	}
}

func current() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// RecordPageOpen records a page gaining a live connection.
func RecordPageOpen() {
	if m := current(); m != nil {
		m.activePages.Inc()
	}
}

// RecordPageClose records a page losing its connection.
func RecordPageClose() {
	if m := current(); m != nil {
		m.activePages.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if m := current(); m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

// Collector exposes the metrics for custom registrations and tests.
type Collector struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	callErrors    *prometheus.CounterVec
	eventsEmitted *prometheus.CounterVec
	activePages   prometheus.Gauge
	wsErrors      *prometheus.CounterVec
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	m := current()
	if m == nil {
		return nil
	}
	return &Collector{
		callsTotal:    m.callsTotal,
		callDuration:  m.callDuration,
		callErrors:    m.callErrors,
		eventsEmitted: m.eventsEmitted,
		activePages:   m.activePages,
		wsErrors:      m.wsErrors,
	}
}
