package metrics

import (
	"time"

	"mercator-hq/sweeper/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ScanMetrics tracks scan pass metrics.
type ScanMetrics struct {
	cyclesTotal   prometheus.Counter
	cycleDuration prometheus.Histogram

	candidatesTotal *prometheus.CounterVec
	deletionsTotal  *prometheus.CounterVec
	failuresTotal   *prometheus.CounterVec

	policyEntries prometheus.Gauge
	scanInterval  prometheus.Gauge
	lastCycleTime prometheus.Gauge
	state         *prometheus.GaugeVec
}

// NewScanMetrics creates and registers scan metrics with the provided registry.
func NewScanMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ScanMetrics {
	sm := &ScanMetrics{
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cycles_total",
			Help:      "Total number of completed scan passes",
		}),

		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of scan passes in seconds",
			Buckets:   cfg.CycleDurationBuckets,
		}),

		candidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "candidates_total",
				Help:      "Total number of paths produced by pattern expansion",
			},
			[]string{"pattern"},
		),

		deletionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "deletions_total",
				Help:      "Total number of expired files and directories removed",
			},
			[]string{"pattern", "kind"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "failures_total",
				Help:      "Total number of expand, stat and delete failures",
			},
			[]string{"pattern", "stage"},
		),

		policyEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "policy_entries",
			Help:      "Number of entries in the most recently loaded policy",
		}),

		scanInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "scan_interval_seconds",
			Help:      "Scan interval of the most recently loaded policy",
		}),

		lastCycleTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time the most recent scan pass finished",
		}),

		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "state",
				Help:      "Current scheduler state (1 for the active state)",
			},
			[]string{"state"},
		),
	}

	registry.MustRegister(
		sm.cyclesTotal,
		sm.cycleDuration,
		sm.candidatesTotal,
		sm.deletionsTotal,
		sm.failuresTotal,
		sm.policyEntries,
		sm.scanInterval,
		sm.lastCycleTime,
		sm.state,
	)

	return sm
}

// RecordCycle records a completed scan pass.
func (sm *ScanMetrics) RecordCycle(duration time.Duration, entries, intervalSeconds int, finished time.Time) {
	sm.cyclesTotal.Inc()
	sm.cycleDuration.Observe(duration.Seconds())
	sm.policyEntries.Set(float64(entries))
	sm.scanInterval.Set(float64(intervalSeconds))
	sm.lastCycleTime.Set(float64(finished.Unix()))
}
