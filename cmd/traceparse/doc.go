// Command traceparse prints the task groups of a trace file as JSON.
//
// Usage:
//
//	traceparse [-pretty] <location>
//
// The location may be a local path or any URL the afs storage layer
// resolves. LOG_LEVEL, LOG_DEV and TRACE_MAX_BYTES are read from the
// environment. Failures are logged and exit with status 1.
package main
