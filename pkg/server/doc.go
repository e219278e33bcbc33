// Package server exposes the resolution pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                       liveness
//	GET  /api/catalog/{category}        components of a category
//	GET  /api/deps/{category}/{handle}  dependency order of one component
//	GET  /api/resolve                   ordered file set for a selection
//	POST /api/highlight                 render code blocks, return their assets
//	GET  <metricsPath>                  Prometheus metrics
//
// Every request is traced with OpenTelemetry using the global tracer
// provider and counted by pkg/metrics.
package server
