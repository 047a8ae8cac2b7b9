// Package server exposes the agent's metrics and health over HTTP.
//
// Routes:
//
//	GET /metrics   Prometheus exposition (path configurable)
//	GET /health    scheduler state, cycle count and last pass summary
//	GET /version   build information
//
// The server is optional and disabled by default:
//
//	telemetry:
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9310
//
// Start listens synchronously so address errors surface before the agent
// begins scanning, then serves on a background goroutine until Shutdown.
package server
