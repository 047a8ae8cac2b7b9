// Package tracing provides OpenTelemetry spans for scan passes.
//
// Each pass produces a "sweeper.cycle" span with one "sweeper.pattern"
// child per policy entry. Spans are exported over OTLP gRPC when enabled:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    otlp:
//	      insecure: true
//	      timeout: 10s
//
// When disabled, New returns a tracer backed by a noop provider and no
// connection is attempted.
package tracing
