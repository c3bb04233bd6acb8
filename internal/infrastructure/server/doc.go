// Package server wires configuration, logging, metrics, tracing and the trace
// loader into a gin HTTP server.
//
// Middleware order: recovery, tracing, metrics, CORS, then optional per-IP
// rate limiting. Unmatched GET and HEAD requests fall through to the static
// frontend directory.
//
// Example Usage:
//
//	srv, err := server.NewServer(config.LoadOrDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	defer srv.Shutdown(context.Background())
package server
