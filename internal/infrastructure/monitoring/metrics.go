package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Trace metrics
	TraceParses       *prometheus.CounterVec
	TraceParseSeconds *prometheus.HistogramVec
	TraceGroups       prometheus.Gauge
	TraceTasks        prometheus.Gauge

	// Storage circuit breaker state (0 closed, 1 half-open, 2 open)
	BreakerState *prometheus.GaugeVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalDuration float64 `json:"-"`
	RequestCount  int64   `json:"-"`
	Parses        int64   `json:"parses"`
	ParseFailures int64   `json:"parse_failures"`
	LastGroups    int     `json:"last_groups"`
	LastTasks     int     `json:"last_tasks"`
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several servers can coexist in one process.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracegroups_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracegroups_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracegroups_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracegroups_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		TraceParses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracegroups_trace_parses_total",
				Help: "Total number of trace parses",
			},
			[]string{"source", "result"},
		),
		TraceParseSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracegroups_trace_parse_duration_seconds",
				Help:    "Trace load and parse duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"source"},
		),
		TraceGroups: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracegroups_trace_groups",
				Help: "Number of task groups in the last successful parse",
			},
		),
		TraceTasks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracegroups_trace_tasks",
				Help: "Number of tasks in the last successful parse",
			},
		),

		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracegroups_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "tracegroups_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return m.Uptime().Seconds() },
	)

	return m
}

// Registry exposes the underlying registry for the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Uptime returns the time since the collector was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordParse records the outcome of one trace parse.
func (m *Metrics) RecordParse(source, result string, duration time.Duration, groups, tasks int) {
	m.TraceParses.WithLabelValues(source, result).Inc()
	m.TraceParseSeconds.WithLabelValues(source).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot.Parses++
	if result != ResultSuccess {
		m.snapshot.ParseFailures++
		return
	}
	m.TraceGroups.Set(float64(groups))
	m.TraceTasks.Set(float64(tasks))
	m.snapshot.LastGroups = groups
	m.snapshot.LastTasks = tasks
}

// SetBreakerState records the state of a named circuit breaker.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// AverageLatency returns the mean HTTP request duration.
func (s Snapshot) AverageLatency() time.Duration {
	if s.RequestCount == 0 {
		return 0
	}
	return time.Duration(s.TotalDuration / float64(s.RequestCount) * float64(time.Second))
}

// ErrorRate returns the fraction of requests answered with 4xx or 5xx.
func (s Snapshot) ErrorRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.TotalErrors) / float64(s.TotalRequests)
}
