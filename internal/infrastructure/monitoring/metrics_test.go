package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolated(t *testing.T) {
	// Separate registries must not collide on registration
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.RecordParse("file", ResultSuccess, time.Millisecond, 2, 5)

	assert.Equal(t, float64(1), testutil.ToFloat64(m1.TraceParses.WithLabelValues("file", ResultSuccess)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.TraceParses.WithLabelValues("file", ResultSuccess)))
}

func TestRecordParse(t *testing.T) {
	m := NewMetrics()

	m.RecordParse("file", ResultSuccess, time.Millisecond, 3, 7)
	m.RecordParse("body", ResultError, time.Millisecond, 0, 0)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.TraceGroups))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.TraceTasks))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TraceParses.WithLabelValues("body", ResultError)))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Parses)
	assert.Equal(t, int64(1), snap.ParseFailures)
	assert.Equal(t, 3, snap.LastGroups)
	assert.Equal(t, 7, snap.LastTasks)
}

func TestRecordHTTPRequestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest("GET", "/api/tasks", "200", 100*time.Millisecond, 0, 512)
	m.RecordHTTPRequest("GET", "/api/tasks", "404", 300*time.Millisecond, 0, 64)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.Equal(t, 0.5, snap.ErrorRate())
	assert.InDelta(t, float64(200*time.Millisecond), float64(snap.AverageLatency()), float64(time.Millisecond))
}

func TestEmptySnapshot(t *testing.T) {
	var snap Snapshot
	assert.Zero(t, snap.ErrorRate())
	assert.Zero(t, snap.AverageLatency())
}

func TestTimerStop(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "file").Stop(nil, 1, 2)
	NewTimer(m, "file").Stop(errors.New("boom"), 0, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.TraceParses.WithLabelValues("file", ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TraceParses.WithLabelValues("file", ResultError)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	router.GET("/metrics", gin.WrapH(Handler(m)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/tasks", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedPath, "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tracegroups_http_requests_total")
	assert.Contains(t, w.Body.String(), "tracegroups_uptime_seconds")
}
