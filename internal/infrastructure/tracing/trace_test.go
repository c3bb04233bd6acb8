package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/tracegroups/internal/shared/id"
)

func newObservedTracer() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestStartSpanNewTrace(t *testing.T) {
	tracer, _ := newObservedTracer()
	defer tracer.Close()

	span, ctx := tracer.StartSpan(context.Background(), "load")

	assert.True(t, strings.HasPrefix(string(span.TraceID), "trace_"))
	assert.True(t, strings.HasPrefix(string(span.SpanID), "span_"))
	assert.Empty(t, span.ParentID)
	assert.Equal(t, span.TraceID, GetTraceID(ctx))
	assert.Equal(t, span.SpanID, GetSpanID(ctx))
}

func TestStartSpanChild(t *testing.T) {
	tracer, _ := newObservedTracer()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "request")
	child, _ := tracer.StartSpan(ctx, "parse")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
}

func TestExtractTraceContext(t *testing.T) {
	traceID, spanID := ExtractTraceContext(map[string]string{
		HeaderTraceID: "trace_a",
		HeaderSpanID:  "span_b",
	})
	assert.Equal(t, TraceID("trace_a"), traceID)
	assert.Equal(t, SpanID("span_b"), spanID)

	traceID, spanID = ExtractTraceContext(map[string]string{})
	assert.Empty(t, traceID)
	assert.Empty(t, spanID)
}

func TestRequestID(t *testing.T) {
	upstream := string(id.NewRequestID())

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "missing", header: ""},
		{name: "not a ulid", header: "abc-123"},
		{name: "ulid", header: upstream, keep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requestID(tt.header)
			if tt.keep {
				assert.Equal(t, id.RequestID(tt.header), got)
				return
			}
			assert.True(t, strings.HasPrefix(string(got), id.RequestPrefix+"_"))
		})
	}
}

func TestSpanErrorKeepsClientStatus(t *testing.T) {
	span := &Span{Tags: map[string]string{}}
	span.SetStatus(404)
	span.SetError(errors.New("missing"))
	assert.Equal(t, 404, span.StatusCode)

	span = &Span{Tags: map[string]string{}}
	span.SetError(errors.New("boom"))
	assert.Equal(t, 500, span.StatusCode)
}

func TestCloseFlushesSpans(t *testing.T) {
	tracer, logs := newObservedTracer()

	for i := 0; i < 3; i++ {
		span, _ := tracer.StartSpan(context.Background(), "op")
		span.Finish()
		tracer.Submit(span)
	}
	tracer.Close()
	tracer.Close()

	assert.Equal(t, 3, logs.FilterMessage("span completed").Len())

	// Dropped silently once closed
	span, _ := tracer.StartSpan(context.Background(), "late")
	tracer.Submit(span)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObservedTracer()

	var seen TraceID
	var seenRequest id.RequestID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/api/tasks", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		seenRequest = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set(HeaderTraceID, "trace_upstream")
	req.Header.Set(HeaderSpanID, "span_upstream")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace_upstream", w.Header().Get(HeaderTraceID))
	assert.NotEqual(t, "span_upstream", w.Header().Get(HeaderSpanID))
	assert.Equal(t, TraceID("trace_upstream"), seen)
	assert.NotEmpty(t, seenRequest)
	assert.Equal(t, string(seenRequest), w.Header().Get(HeaderRequestID))

	tracer.Close()

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /api/tasks", fields["operation"])
	assert.Equal(t, "span_upstream", fields["parent_id"])
	assert.Equal(t, "200", fields["http.status"])
	assert.Equal(t, string(seenRequest), fields["request.id"])
}
