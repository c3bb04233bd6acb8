// Package config provides 12-factor configuration management for the trace
// service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown budget)
//   - Trace: Location and size cap of the served trace file
//   - Static: Frontend asset directory
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Breaker: Circuit breaker around trace storage reads
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - TRACE_PATH, TRACE_MAX_BYTES, STATIC_DIR
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - BREAKER_FAILURES, BREAKER_TIMEOUT
package config
