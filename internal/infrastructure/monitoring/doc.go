/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the trace
service, tracking HTTP requests, trace parses and circuit breaker state.
Each Metrics value owns a private registry.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(monitoring.Handler(metrics)))

	timer := monitoring.NewTimer(metrics, "file")
	groups, err := loader.Load(ctx, path)
	stats := trace.Summarize(groups)
	timer.Stop(err, stats.Groups, stats.Tasks)
*/
package monitoring
