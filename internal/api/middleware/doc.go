// Package middleware provides HTTP middleware for the trace API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing so a separately hosted UI can read /api/tasks
//   - RateLimit: Per-IP token bucket rate limiting with idle client eviction
//   - GlobalRateLimit: One token bucket shared by every client
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 200}))
//	router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}))
package middleware
