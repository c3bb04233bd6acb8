package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tracegroups/internal/domain/trace"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/tracegroups/internal/shared/utils"
)

// ListTaskGroups loads the configured trace and returns its task groups
func (h *Handlers) ListTaskGroups(c *gin.Context) {
	span, ctx := h.tracer.StartSpan(c.Request.Context(), "trace.load")
	span.SetTag("trace.location", h.location)

	timer := monitoring.NewTimer(h.metrics, monitoring.SourceFile)
	groups, err := resilience.Call(h.breaker, func() ([]trace.TaskGroup, error) {
		return h.loader.Load(ctx, h.location)
	})
	stats := trace.Summarize(groups)
	duration := timer.Stop(err, stats.Groups, stats.Tasks)

	if err != nil {
		span.SetError(err)
	}
	span.Finish()
	h.tracer.Submit(span)

	if err != nil {
		h.respondError(c, err)
		return
	}

	h.requestLogger(c).Debug("Trace loaded",
		zap.String("location", h.location),
		zap.Int("groups", stats.Groups),
		zap.Int("tasks", stats.Tasks),
		zap.Duration("duration", duration),
	)
	h.renderGroups(c, groups)
}

// ParseTrace parses a trace posted as the request body
func (h *Handlers) ParseTrace(c *gin.Context) {
	body := c.Request.Body
	if h.maxBodySize > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxBodySize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(c, &trace.IOError{Op: "read", Err: trace.ErrTooLarge})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body", Code: CodeBadRequest})
		return
	}

	timer := monitoring.NewTimer(h.metrics, monitoring.SourceBody)
	groups, err := trace.ParseBytes(data)
	stats := trace.Summarize(groups)
	timer.Stop(err, stats.Groups, stats.Tasks)

	if err != nil {
		h.respondError(c, err)
		return
	}
	h.renderGroups(c, groups)
}

// renderGroups writes groups as a JSON array with an ETag. A matching
// If-None-Match gets 304.
func (h *Handlers) renderGroups(c *gin.Context, groups []trace.TaskGroup) {
	if groups == nil {
		groups = []trace.TaskGroup{}
	}
	data, err := sonic.Marshal(groups)
	if err != nil {
		h.requestLogger(c).Error("Failed to encode task groups", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to encode response", Code: "encode_failed"})
		return
	}

	etag := utils.ETag(data)
	c.Header("ETag", etag)
	if utils.MatchesETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
