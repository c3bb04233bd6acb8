// Package main is the entry point for the trace grouping server.
//
// The server reads a tab-separated task trace, groups tasks by base name
// (the name without a trailing " (n)" repetition suffix) and serves the
// groups as JSON next to a static frontend.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 3000 -trace /data/trace.txt -static public
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
