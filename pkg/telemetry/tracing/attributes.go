package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on scan spans.
const (
	AttrCycleID       = "sweeper.cycle_id"
	AttrPolicySource  = "sweeper.policy.source"
	AttrPolicyEntries = "sweeper.policy.entries"
	AttrPattern       = "sweeper.pattern"
	AttrRetentionDays = "sweeper.retention_days"
	AttrCandidates    = "sweeper.candidates"
	AttrDeleted       = "sweeper.deleted"
	AttrFailed        = "sweeper.failed"
)

// SetCycleAttributes sets the attributes describing a scan pass.
func SetCycleAttributes(span trace.Span, cycleID, source string, entries int) {
	span.SetAttributes(
		attribute.String(AttrCycleID, cycleID),
		attribute.String(AttrPolicySource, source),
		attribute.Int(AttrPolicyEntries, entries),
	)
}

// SetPatternAttributes sets the attributes describing one policy entry.
func SetPatternAttributes(span trace.Span, pattern string, days int) {
	span.SetAttributes(
		attribute.String(AttrPattern, pattern),
		attribute.Int(AttrRetentionDays, days),
	)
}

// SetResultAttributes records how many candidates were seen, removed and
// failed.
func SetResultAttributes(span trace.Span, candidates, deleted, failed int) {
	span.SetAttributes(
		attribute.Int(AttrCandidates, candidates),
		attribute.Int(AttrDeleted, deleted),
		attribute.Int(AttrFailed, failed),
	)
}
