package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/sweeper/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Namespace:            "test",
		Subsystem:            "retention",
		MaxPatternLabels:     2,
		CycleDurationBuckets: []float64{0.1, 1, 10},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	collector := NewCollector(nil, nil)

	if collector.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q", collector.config.Namespace)
	}
	if collector.Registry() == nil {
		t.Error("expected a registry to be created")
	}
}

func TestCollector_RecordCycle(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	finished := time.Unix(1700000000, 0)

	collector.RecordCycle(250*time.Millisecond, 3, 60, finished)
	collector.RecordCycle(time.Second, 4, 30, finished.Add(time.Minute))

	sm := collector.scanMetrics
	if got := testutil.ToFloat64(sm.cyclesTotal); got != 2 {
		t.Errorf("cycles_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sm.policyEntries); got != 4 {
		t.Errorf("policy_entries = %v, want 4", got)
	}
	if got := testutil.ToFloat64(sm.scanInterval); got != 30 {
		t.Errorf("scan_interval_seconds = %v, want 30", got)
	}
	if got := testutil.ToFloat64(sm.lastCycleTime); got != 1700000060 {
		t.Errorf("last_cycle_timestamp_seconds = %v", got)
	}
	if n := testutil.CollectAndCount(sm.cycleDuration); n != 1 {
		t.Errorf("cycle_duration_seconds series = %d, want 1", n)
	}
}

func TestCollector_Deletions(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordCandidates("/tmp/*.tmp", 3)
	collector.RecordCandidates("/tmp/*.tmp", 0)
	collector.RecordDeletion("/tmp/*.tmp", false)
	collector.RecordDeletion("/tmp/*.tmp", false)
	collector.RecordDeletion("/tmp/*.tmp", true)
	collector.RecordFailure("/tmp/*.tmp", StageDelete)

	sm := collector.scanMetrics
	if got := testutil.ToFloat64(sm.candidatesTotal.WithLabelValues("/tmp/*.tmp")); got != 3 {
		t.Errorf("candidates_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(sm.deletionsTotal.WithLabelValues("/tmp/*.tmp", "file")); got != 2 {
		t.Errorf("deletions_total{kind=file} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sm.deletionsTotal.WithLabelValues("/tmp/*.tmp", "dir")); got != 1 {
		t.Errorf("deletions_total{kind=dir} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sm.failuresTotal.WithLabelValues("/tmp/*.tmp", StageDelete)); got != 1 {
		t.Errorf("failures_total{stage=delete} = %v, want 1", got)
	}
}

func TestCollector_PatternCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordDeletion("/a/*", false)
	collector.RecordDeletion("/b/*", false)
	collector.RecordDeletion("/c/*", false)
	collector.RecordDeletion("/d/*", false)

	sm := collector.scanMetrics
	if got := testutil.ToFloat64(sm.deletionsTotal.WithLabelValues(otherPattern, "file")); got != 2 {
		t.Errorf("deletions over the cap should aggregate into %q, got %v", otherPattern, got)
	}
	if collector.cardinalityLimiter.Count() != 2 {
		t.Errorf("cardinality = %d, want 2", collector.cardinalityLimiter.Count())
	}
}

func TestCollector_SetState(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	states := []string{"loading", "scanning", "waiting"}

	collector.SetState("scanning", states)

	sm := collector.scanMetrics
	for _, s := range states {
		want := 0.0
		if s == "scanning" {
			want = 1
		}
		if got := testutil.ToFloat64(sm.state.WithLabelValues(s)); got != want {
			t.Errorf("state{%s} = %v, want %v", s, got, want)
		}
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector

	collector.RecordCycle(time.Second, 1, 1, time.Now())
	collector.RecordCandidates("/tmp/*", 1)
	collector.RecordDeletion("/tmp/*", false)
	collector.RecordFailure("/tmp/*", StageStat)
	collector.SetState("waiting", []string{"waiting"})

	if collector.Registry() != nil {
		t.Error("nil collector should have nil registry")
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordDeletion("/tmp/*.tmp", false)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_retention_deletions_total") {
		t.Errorf("metrics output missing deletions counter:\n%s", rec.Body.String())
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(1)

	if !cl.Allow("a") {
		t.Error("first label should be allowed")
	}
	if !cl.Allow("a") {
		t.Error("known label should be allowed")
	}
	if cl.Allow("b") {
		t.Error("label over the cap should be rejected")
	}
}
