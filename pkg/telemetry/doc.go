// Package telemetry groups the agent's observability packages.
//
// # Components
//
//   - logging: slog loggers whose records carry the cycle id and pattern
//   - metrics: Prometheus counters and gauges for scan passes
//   - tracing: OpenTelemetry spans per scan pass and policy entry
//
// All three are configured from the telemetry section of the settings
// file:
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9310
//	  tracing:
//	    enabled: false
//
// Metrics and health are served by package server.
package telemetry
