package http

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tracegroups/internal/domain/trace"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/resilience"
)

// Error codes returned in JSON error bodies
const (
	CodeEmptyTrace         = "empty_trace"
	CodeMalformedHeader    = "malformed_header"
	CodeInvalidEncoding    = "invalid_encoding"
	CodeTraceTooLarge      = "trace_too_large"
	CodeTraceNotFound      = "trace_not_found"
	CodeTraceUnreadable    = "trace_unreadable"
	CodeStorageUnavailable = "storage_unavailable"
	CodeClientClosed       = "client_closed_request"
	CodeTooManyEntries     = "too_many_entries"
	CodeBadRequest         = "bad_request"
)

// StatusClientClosedRequest is the nginx convention for a request the client
// abandoned before the reply
const StatusClientClosedRequest = 499

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// classify maps a trace or storage error to a status, code and client message.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return http.StatusServiceUnavailable, CodeStorageUnavailable, "trace storage is temporarily unavailable"
	case errors.Is(err, trace.ErrEmptyInput):
		return http.StatusUnprocessableEntity, CodeEmptyTrace, err.Error()
	case errors.Is(err, trace.ErrMalformedHeader):
		return http.StatusUnprocessableEntity, CodeMalformedHeader, err.Error()
	case errors.Is(err, trace.ErrInvalidEncoding):
		return http.StatusUnprocessableEntity, CodeInvalidEncoding, encodingMessage(err)
	case errors.Is(err, trace.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, CodeTraceTooLarge, trace.ErrTooLarge.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusClientClosedRequest, CodeClientClosed, "request cancelled"
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound, CodeTraceNotFound, "trace file not found"
	default:
		return http.StatusInternalServerError, CodeTraceUnreadable, "trace file could not be read"
	}
}

// respondError logs err and writes the matching JSON error reply
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, code, message := classify(err)

	logger := h.requestLogger(c)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", code),
		zap.Int("status", status),
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Trace request failed", fields...)
	case status == StatusClientClosedRequest:
		logger.Info("Trace request cancelled", fields...)
	default:
		logger.Warn("Trace request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// encodingMessage drops the path from a decode failure, keeping the charset hint
func encodingMessage(err error) string {
	var ioErr *trace.IOError
	if errors.As(err, &ioErr) && ioErr.Err != nil {
		return ioErr.Err.Error()
	}
	return trace.ErrInvalidEncoding.Error()
}
