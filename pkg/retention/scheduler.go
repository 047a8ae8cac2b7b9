package retention

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/sweeper/pkg/config"
	"mercator-hq/sweeper/pkg/policy"
	"mercator-hq/sweeper/pkg/telemetry/logging"
	"mercator-hq/sweeper/pkg/telemetry/metrics"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// State is a scheduler state.
type State int

const (
	StateLoading State = iota
	StateScanning
	StateWaiting
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "LOADING"
	case StateScanning:
		return "SCANNING"
	case StateWaiting:
		return "WAITING"
	case StateStopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// stateNames lists every state for the metrics state gauge.
var stateNames = []string{
	StateLoading.String(),
	StateScanning.String(),
	StateWaiting.String(),
	StateStopped.String(),
}

const (
	// DefaultTick is the WAITING poll granularity.
	DefaultTick = 50 * time.Millisecond

	// TicksPerSecond is the number of ticks waited per second of scan interval.
	TicksPerSecond = 20
)

// CommandSource reports, without blocking, whether the operator asked the
// agent to stop.
type CommandSource interface {
	Poll() bool
}

// Config contains scheduler settings.
type Config struct {
	// PolicyPath is the policy file, re-read at the start of every cycle.
	PolicyPath string

	// Verbose echoes the parsed policy on the first load.
	Verbose bool

	// Once stops after the first scan pass.
	Once bool

	// Tick overrides DefaultTick.
	Tick time.Duration
}

// Status is a snapshot of the scheduler for health reporting.
type Status struct {
	State     string    `json:"state"`
	Cycles    int64     `json:"cycles"`
	LastCycle time.Time `json:"last_cycle,omitempty"`
	LastRun   *Report   `json:"last_run,omitempty"`

	// NextScan is set only while WAITING.
	NextScan *time.Time `json:"next_scan,omitempty"`
}

// Scheduler runs the LOADING, SCANNING and WAITING cycle until it is
// cancelled or the policy cannot be loaded.
type Scheduler struct {
	config  Config
	sweeper *Sweeper
	source  CommandSource
	out     io.Writer
	metrics *metrics.Collector
	logger  *slog.Logger

	mu        sync.RWMutex
	state     State
	cycles    int64
	lastCycle time.Time
	lastRun   *Report
	nextScan  time.Time
}

// NewScheduler creates a scheduler. Operator output goes to the sweeper's
// writer. A nil source never cancels.
func NewScheduler(cfg Config, sweeper *Sweeper, source CommandSource) *Scheduler {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.PolicyPath == "" {
		cfg.PolicyPath = config.DefaultPolicyPath
	}
	return &Scheduler{
		config:  cfg,
		sweeper: sweeper,
		source:  source,
		out:     sweeper.Out,
		metrics: sweeper.Metrics,
		logger:  slog.Default().With("component", "retention.scheduler"),
		state:   StateLoading,
	}
}

// SetLogger replaces the scheduler's logger.
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Run drives the cycle. It returns nil when the operator cancels, when
// ctx is done, or after the first pass in once mode. It returns an error
// wrapping policy.ErrNoEntries when a load produces no entries.
//
// Cancellation is observed only while WAITING, once per tick; a scan pass
// in progress always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	verbose := s.config.Verbose

	for {
		s.setState(StateLoading)
		p, err := s.load(verbose)
		verbose = false
		if verr := p.Validate(); verr != nil {
			fmt.Fprintf(s.out, "Failed to read configuration file: %s\n", s.config.PolicyPath)
			s.setState(StateStopped)
			if err != nil {
				return fmt.Errorf("%w: %w", verr, err)
			}
			return fmt.Errorf("policy %s: %w", s.config.PolicyPath, verr)
		}

		cycleCtx := logging.WithCycleID(ctx, uuid.NewString())

		s.setState(StateScanning)
		report := s.sweeper.Sweep(cycleCtx, p)
		finished := time.Now()
		s.recordCycle(report, finished)
		s.metrics.RecordCycle(report.Duration, len(p.Entries), p.ScanIntervalSeconds, finished)

		s.logger.InfoContext(cycleCtx, "scan pass completed",
			"entries", report.Entries,
			"candidates", report.Candidates,
			"deleted", report.Deleted,
			"failed", report.Failed,
			"duration", report.Duration,
		)

		if s.config.Once {
			s.setState(StateStopped)
			return nil
		}

		interval := time.Duration(p.ScanIntervalSeconds) * time.Second
		next := cron.Every(interval).Next(finished)
		s.logger.DebugContext(cycleCtx, "waiting for next scan",
			"interval", interval,
			"next_scan", next,
		)

		s.setWaiting(next)
		if s.wait(ctx, p.ScanIntervalSeconds) {
			fmt.Fprintln(s.out, "Exiting...")
			s.setState(StateStopped)
			return nil
		}
	}
}

func (s *Scheduler) load(verbose bool) (*policy.Policy, error) {
	var opts []policy.Option
	if verbose {
		opts = append(opts, policy.WithVerbose(s.out))
	}

	p, err := policy.Load(s.config.PolicyPath, opts...)
	if err != nil {
		s.logger.Warn("failed to load policy", "path", s.config.PolicyPath, "error", err)
	}
	return p, err
}

// wait sleeps for seconds*TicksPerSecond ticks, polling the command
// source and ctx after each one. It reports whether to stop.
func (s *Scheduler) wait(ctx context.Context, seconds int) bool {
	ticks := seconds * TicksPerSecond
	for i := 0; i < ticks; i++ {
		time.Sleep(s.config.Tick)

		if s.source != nil && s.source.Poll() {
			s.logger.Info("exit requested")
			return true
		}
		if ctx.Err() != nil {
			s.logger.Info("context cancelled", "reason", ctx.Err())
			return true
		}
	}
	return false
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.nextScan = time.Time{}
	s.mu.Unlock()

	s.metrics.SetState(state.String(), stateNames)
}

// setWaiting enters WAITING with next as the scheduled start of the next
// scan pass.
func (s *Scheduler) setWaiting(next time.Time) {
	s.setState(StateWaiting)

	s.mu.Lock()
	s.nextScan = next
	s.mu.Unlock()
}

func (s *Scheduler) recordCycle(report Report, finished time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles++
	s.lastCycle = finished
	s.lastRun = &report
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status returns a snapshot for health reporting.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		State:     s.state.String(),
		Cycles:    s.cycles,
		LastCycle: s.lastCycle,
	}
	if s.lastRun != nil {
		r := *s.lastRun
		st.LastRun = &r
	}
	if !s.nextScan.IsZero() {
		next := s.nextScan
		st.NextScan = &next
	}
	return st
}
