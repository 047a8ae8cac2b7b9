package retention

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"mercator-hq/sweeper/pkg/locator"
	"mercator-hq/sweeper/pkg/policy"
	"mercator-hq/sweeper/pkg/telemetry/logging"
	"mercator-hq/sweeper/pkg/telemetry/metrics"
	"mercator-hq/sweeper/pkg/telemetry/tracing"
)

// Candidate is a path produced by expanding a policy entry.
type Candidate struct {
	Path          string
	Pattern       string
	RetentionDays int
}

// Report summarizes one scan pass.
type Report struct {
	CycleID      string        `json:"cycle_id,omitempty"`
	Entries      int           `json:"entries"`
	Candidates   int           `json:"candidates"`
	Expired      int           `json:"expired"`
	Deleted      int           `json:"deleted"`
	Failed       int           `json:"failed"`
	StatErrors   int           `json:"stat_errors"`
	ExpandErrors int           `json:"expand_errors"`
	Duration     time.Duration `json:"duration"`
}

// Sweeper performs a single scan pass over a policy.
//
// The exported fields may be replaced after NewSweeper and before the
// first Sweep.
type Sweeper struct {
	Locator   locator.Locator
	Evaluator *Evaluator
	Purger    *Purger

	// Out receives the operator notices for deletions and failed deletions.
	Out io.Writer

	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Logger  *slog.Logger
}

// NewSweeper creates a Sweeper that works on the local file system and
// writes operator notices to out.
func NewSweeper(out io.Writer) *Sweeper {
	if out == nil {
		out = io.Discard
	}
	return &Sweeper{
		Locator:   locator.NewDirLocator(),
		Evaluator: NewEvaluator(),
		Purger:    NewPurger(nil),
		Out:       out,
		Logger:    slog.Default().With("component", "retention.sweeper"),
	}
}

// Sweep processes every entry of p in order. Failures of one entry or one
// candidate never stop the pass; they are logged and counted in the
// returned Report.
func (s *Sweeper) Sweep(ctx context.Context, p *policy.Policy) Report {
	start := time.Now()
	report := Report{
		CycleID: logging.GetCycleID(ctx),
		Entries: len(p.Entries),
	}

	ctx, span := s.Tracer.Start(ctx, "sweeper.cycle")
	defer span.End()
	tracing.SetCycleAttributes(span, report.CycleID, p.Source, len(p.Entries))

	for _, entry := range p.Entries {
		s.sweepEntry(ctx, entry, &report)
	}

	report.Duration = time.Since(start)
	tracing.SetResultAttributes(span, report.Candidates, report.Deleted, report.Failed)

	return report
}

func (s *Sweeper) sweepEntry(ctx context.Context, entry policy.Entry, report *Report) {
	ctx = logging.WithPattern(ctx, entry.Pattern)
	ctx, span := s.Tracer.Start(ctx, "sweeper.pattern")
	defer span.End()
	tracing.SetPatternAttributes(span, entry.Pattern, entry.RetentionDays)

	paths, err := s.Locator.Expand(entry.Pattern)
	if err != nil {
		report.ExpandErrors++
		s.Metrics.RecordFailure(entry.Pattern, metrics.StageExpand)
		tracing.SetError(span, err)
		s.Logger.WarnContext(ctx, "failed to expand pattern", "error", err)
		return
	}

	s.Metrics.RecordCandidates(entry.Pattern, len(paths))
	s.Logger.DebugContext(ctx, "pattern expanded",
		"candidates", len(paths),
		"retention_days", entry.RetentionDays,
	)

	var deleted, failed int
	for _, path := range paths {
		c := Candidate{Path: path, Pattern: entry.Pattern, RetentionDays: entry.RetentionDays}
		switch s.process(ctx, c, report) {
		case candidateDeleted:
			deleted++
		case candidateFailed:
			failed++
		}
	}

	report.Candidates += len(paths)
	tracing.SetResultAttributes(span, len(paths), deleted, failed)
}

type candidateResult int

const (
	candidateKept candidateResult = iota
	candidateDeleted
	candidateFailed
)

func (s *Sweeper) process(ctx context.Context, c Candidate, report *Report) candidateResult {
	verdict := s.Evaluator.Evaluate(c.Path, c.RetentionDays)
	if verdict.Err != nil {
		report.StatErrors++
		s.Metrics.RecordFailure(c.Pattern, metrics.StageStat)
		s.Logger.WarnContext(ctx, "failed to stat candidate", "path", c.Path, "error", verdict.Err)
		return candidateKept
	}
	if !verdict.Expired {
		return candidateKept
	}
	report.Expired++

	outcome := s.Purger.Purge(c.Path)
	if outcome.Err != nil {
		report.Failed++
		s.Metrics.RecordFailure(c.Pattern, metrics.StageDelete)
		fmt.Fprintf(s.Out, "Failed to delete: %s: %v\n", c.Path, outcome.Err)
		s.Logger.ErrorContext(ctx, "failed to delete expired path", "path", c.Path, "error", outcome.Err)
		return candidateFailed
	}

	report.Deleted++
	s.Metrics.RecordDeletion(c.Pattern, outcome.Dir)
	fmt.Fprintf(s.Out, "Deleted: %s\n", c.Path)
	s.Logger.InfoContext(ctx, "deleted expired path",
		"path", c.Path,
		"dir", outcome.Dir,
		"age", verdict.Age.Round(time.Second),
	)
	return candidateDeleted
}
