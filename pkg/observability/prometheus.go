package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flowgraph"

// Prometheus implements every hook interface by recording Prometheus
// counters and histograms. Create it with [NewPrometheus] and register it
// with the Set*Hooks functions.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	graphNodes    prometheus.Histogram

	cacheOps   *prometheus.CounterVec
	cacheBytes *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec

	viewPasses   *prometheus.CounterVec
	viewDuration prometheus.Histogram
	navigations  prometheus.Counter
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
	_ ViewHooks     = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg.
// It panics if a collector with the same name is already registered.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		graphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of jobs per laid out graph.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "HTTP requests that failed with an error.",
		}, []string{"method", "route"}),
		viewPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_render_passes_total",
			Help:      "Interactive render passes by operation and outcome.",
		}, []string{"op", "outcome"}),
		viewDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_render_duration_seconds",
			Help:      "Duration of interactive render passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		navigations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_navigations_total",
			Help:      "Navigation intents raised by node clicks.",
		}),
	}
	reg.MustRegister(
		m.stageDuration, m.stageErrors, m.graphNodes,
		m.cacheOps, m.cacheBytes,
		m.httpRequests, m.httpDuration, m.httpErrors,
		m.viewPasses, m.viewDuration, m.navigations,
	)
	return m
}

func (m *Prometheus) observeStage(stage string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (m *Prometheus) OnParseStart(context.Context, string) {}

func (m *Prometheus) OnParseComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	m.observeStage("parse", d, err)
}

func (m *Prometheus) OnLayoutStart(context.Context, int) {}

func (m *Prometheus) OnLayoutComplete(_ context.Context, nodeCount, _ int, d time.Duration, err error) {
	m.observeStage("layout", d, err)
	if err == nil {
		m.graphNodes.Observe(float64(nodeCount))
	}
}

func (m *Prometheus) OnRenderStart(context.Context, []string) {}

func (m *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.observeStage("render", d, err)
}

func (m *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Prometheus) OnRequest(context.Context, string, string) {}

func (m *Prometheus) OnResponse(_ context.Context, method, route string, statusCode int, d time.Duration) {
	method = strings.ToUpper(method)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	m.httpErrors.WithLabelValues(strings.ToUpper(method), route).Inc()
}

func (m *Prometheus) OnRenderPass(op string, _ int, restored bool, d time.Duration, err error) {
	outcome := "fit"
	switch {
	case err != nil:
		outcome = "error"
	case restored:
		outcome = "restored"
	}
	m.viewPasses.WithLabelValues(op, outcome).Inc()
	m.viewDuration.Observe(d.Seconds())
}

func (m *Prometheus) OnNavigate(string) {
	m.navigations.Inc()
}
