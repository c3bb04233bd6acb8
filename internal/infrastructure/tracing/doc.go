/*
Package tracing provides lightweight request tracing.

Every HTTP request gets a span. Incoming X-Trace-ID and X-Span-ID headers are
honoured so a caller can stitch the request into its own trace. An
X-Request-ID that is a ULID is kept, otherwise a req_ ID is minted. The IDs in
effect are echoed back on the response. Finished spans are buffered and
logged through zap by a background collector.

# Usage

	tracer := tracing.New("tracegroups", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	traceID := tracing.GetTraceID(c.Request.Context())
*/
package tracing
