package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/resilience"
)

// MetricsSnapshot is the JSON view of service metrics
type MetricsSnapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Summary   MetricsSummary `json:"summary"`
	Trace     TraceMetrics   `json:"trace"`
	Breaker   BreakerMetrics `json:"breaker"`
}

// MetricsSummary provides high-level request metrics
type MetricsSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// TraceMetrics summarizes parse activity
type TraceMetrics struct {
	Parses        int64 `json:"parses"`
	ParseFailures int64 `json:"parse_failures"`
	LastGroups    int   `json:"last_groups"`
	LastTasks     int   `json:"last_tasks"`
}

// BreakerMetrics reports the storage circuit breaker
type BreakerMetrics struct {
	Name   string            `json:"name"`
	State  string            `json:"state"`
	Counts resilience.Counts `json:"counts"`
}

// GetMetricsJSON returns a JSON snapshot of service metrics
func (h *Handlers) GetMetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, buildSnapshot(h.metrics, h.breaker))
}

func buildSnapshot(metrics *monitoring.Metrics, breaker *resilience.Breaker) MetricsSnapshot {
	snap := metrics.Snapshot()

	return MetricsSnapshot{
		Timestamp: time.Now(),
		Summary: MetricsSummary{
			TotalRequests:    snap.TotalRequests,
			AverageLatencyMs: float64(snap.AverageLatency()) / float64(time.Millisecond),
			ErrorRate:        snap.ErrorRate(),
			UptimeSeconds:    metrics.Uptime().Seconds(),
		},
		Trace: TraceMetrics{
			Parses:        snap.Parses,
			ParseFailures: snap.ParseFailures,
			LastGroups:    snap.LastGroups,
			LastTasks:     snap.LastTasks,
		},
		Breaker: BreakerMetrics{
			Name:   breaker.Name(),
			State:  breaker.State().String(),
			Counts: breaker.Counts(),
		},
	}
}
