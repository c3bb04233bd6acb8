package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Parse results and sources used as metric labels
const (
	ResultSuccess = "success"
	ResultError   = "error"

	SourceFile = "file"
	SourceBody = "body"
)

// unmatchedPath labels requests that hit no registered route (static assets)
const unmatchedPath = "unmatched"

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// Route patterns keep label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Handler serves the Prometheus exposition format for metrics.
func Handler(metrics *Metrics) http.Handler {
	return promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
}

// Timer measures one trace parse
type Timer struct {
	start   time.Time
	metrics *Metrics
	source  string
}

// NewTimer creates a new timer for a parse from source ("file" or "body")
func NewTimer(metrics *Metrics, source string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		source:  source,
	}
}

// Stop stops the timer and records the parse outcome
func (t *Timer) Stop(err error, groups, tasks int) time.Duration {
	duration := time.Since(t.start)
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	t.metrics.RecordParse(t.source, result, duration, groups, tasks)
	return duration
}
