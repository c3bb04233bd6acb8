// Package http provides HTTP handlers for the trace grouping API.
//
// Endpoints:
//   - Banner and health: / and /health
//   - Task groups: GET /api/tasks (configured trace), POST /api/tasks/parse (request body)
//   - Metrics: /metrics/json
//   - UI logs: POST /api/logs
//
// Trace errors are mapped to JSON error bodies of the form
// {"error": "...", "code": "..."} with 404, 413, 422, 500 or 503 status.
//
// Example Usage:
//
//	handlers := http.NewHandlers(loader, "/data/trace.txt", 64<<20, breaker, metrics, tracer, logger)
//	router.GET("/api/tasks", handlers.ListTaskGroups)
//	router.POST("/api/tasks/parse", handlers.ParseTrace)
package http
