package metrics

import (
	"sync"
	"time"

	"mercator-hq/sweeper/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// otherPattern replaces pattern labels beyond the cardinality cap.
const otherPattern = "other"

// Failure stages.
const (
	StageExpand = "expand"
	StageStat   = "stat"
	StageDelete = "delete"
)

// Collector records retention metrics into a Prometheus registry.
// All methods are safe on a nil receiver.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	scanMetrics *ScanMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector. If registry is nil, a new
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{}
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.CycleDurationBuckets) == 0 {
		cfg.CycleDurationBuckets = config.DefaultCycleDurationBuckets
	}
	maxPatterns := cfg.MaxPatternLabels
	if maxPatterns <= 0 {
		maxPatterns = config.DefaultMetricsMaxPatterns
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		scanMetrics:        NewScanMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(maxPatterns),
	}
}

// RecordCycle records a completed scan pass.
func (c *Collector) RecordCycle(duration time.Duration, entries, intervalSeconds int, finished time.Time) {
	if c == nil {
		return
	}
	c.scanMetrics.RecordCycle(duration, entries, intervalSeconds, finished)
}

// RecordCandidates records paths produced by expanding pattern.
func (c *Collector) RecordCandidates(pattern string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.scanMetrics.candidatesTotal.WithLabelValues(c.patternLabel(pattern)).Add(float64(n))
}

// RecordDeletion records a removed path.
func (c *Collector) RecordDeletion(pattern string, dir bool) {
	if c == nil {
		return
	}
	kind := "file"
	if dir {
		kind = "dir"
	}
	c.scanMetrics.deletionsTotal.WithLabelValues(c.patternLabel(pattern), kind).Inc()
}

// RecordFailure records a failure at the given stage (StageExpand,
// StageStat or StageDelete).
func (c *Collector) RecordFailure(pattern, stage string) {
	if c == nil {
		return
	}
	c.scanMetrics.failuresTotal.WithLabelValues(c.patternLabel(pattern), stage).Inc()
}

// SetState marks state as the scheduler's current state.
func (c *Collector) SetState(state string, all []string) {
	if c == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		c.scanMetrics.state.WithLabelValues(s).Set(v)
	}
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) patternLabel(pattern string) string {
	if !c.cardinalityLimiter.Allow(pattern) {
		return otherPattern
	}
	return pattern
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used: it was seen before or
// the limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
