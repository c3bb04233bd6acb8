package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tracegroups/internal/domain/trace"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/tracing"
)

const (
	serviceName = "tracegroups"
	version     = "0.1.0"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	loader      *trace.Loader
	location    string
	maxBodySize int64
	breaker     *resilience.Breaker
	metrics     *monitoring.Metrics
	tracer      *tracing.Tracer
	logger      *logging.Logger
}

// NewHandlers creates a new handler set serving the trace at location
func NewHandlers(
	loader *trace.Loader,
	location string,
	maxBodySize int64,
	breaker *resilience.Breaker,
	metrics *monitoring.Metrics,
	tracer *tracing.Tracer,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		loader:      loader,
		location:    location,
		maxBodySize: maxBodySize,
		breaker:     breaker,
		metrics:     metrics,
		tracer:      tracer,
		logger:      logger,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": serviceName,
		"version": version,
	})
}

// Health reports whether the configured trace is reachable
func (h *Handlers) Health(c *gin.Context) {
	exists := h.loader.Exists(c.Request.Context(), h.location)

	status := "healthy"
	if !exists || h.breaker.State() == resilience.StateOpen {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"trace": gin.H{
			"location": h.location,
			"exists":   exists,
		},
		"breaker": h.breaker.State().String(),
	})
}

// requestLogger returns the handler logger tagged with the request's trace,
// span and request IDs
func (h *Handlers) requestLogger(c *gin.Context) *logging.Logger {
	ctx := c.Request.Context()
	logger := h.logger.WithTrace(string(tracing.GetTraceID(ctx)))

	var fields []zap.Field
	if spanID := tracing.GetSpanID(ctx); spanID != "" {
		fields = append(fields, zap.String("span_id", string(spanID)))
	}
	if requestID := tracing.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", string(requestID)))
	}
	if len(fields) == 0 {
		return logger
	}
	return logging.Wrap(logger.With(fields...))
}
