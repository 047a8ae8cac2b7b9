// Package metrics provides Prometheus metrics for the sweeper agent.
//
// # Metrics
//
// All metric names are prefixed with <namespace>_<subsystem>_, by default
// sweeper_retention_:
//
//   - cycles_total: completed scan passes
//   - cycle_duration_seconds: scan pass duration histogram
//   - candidates_total{pattern}: paths produced by pattern expansion
//   - deletions_total{pattern,kind}: removed files and directories
//   - failures_total{pattern,stage}: expand, stat and delete failures
//   - policy_entries: entries in the most recent policy
//   - scan_interval_seconds: interval of the most recent policy
//   - last_cycle_timestamp_seconds: end of the most recent scan pass
//   - state{state}: 1 for the scheduler's current state, 0 otherwise
//
// # Cardinality
//
// Pattern labels come from the operator's policy file and are capped by
// MaxPatternLabels; patterns beyond the cap are aggregated as "other".
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector is valid and records nothing.
package metrics
