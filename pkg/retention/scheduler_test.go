package retention

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mercator-hq/sweeper/pkg/policy"
	"mercator-hq/sweeper/pkg/telemetry/logging"
)

// cancelAfter cancels on the n-th poll.
type cancelAfter struct {
	n     int32
	polls atomic.Int32
}

func (c *cancelAfter) Poll() bool {
	return c.polls.Add(1) >= c.n
}

func newTestScheduler(cfg Config, out *bytes.Buffer, source CommandSource) *Scheduler {
	if cfg.Tick == 0 {
		cfg.Tick = time.Millisecond
	}
	s := NewScheduler(cfg, newTestSweeper(out), source)
	s.SetLogger(logging.Discard())
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateLoading, "LOADING"},
		{StateScanning, "SCANNING"},
		{StateWaiting, "WAITING"},
		{StateStopped, "STOPPED"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestScheduler_NoEntriesIsFatal(t *testing.T) {
	dir := t.TempDir()
	onlyInterval := filepath.Join(dir, "config.ini")
	writeFile(t, onlyInterval, "scan_period_sec = 2\n")

	tests := []struct {
		name string
		path string
	}{
		{name: "only scan period", path: onlyInterval},
		{name: "missing file", path: filepath.Join(dir, "missing.ini")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newTestScheduler(Config{PolicyPath: tt.path}, &out, nil)

			err := s.Run(context.Background())
			if !errors.Is(err, policy.ErrNoEntries) {
				t.Fatalf("Run() error = %v, want ErrNoEntries", err)
			}
			if !strings.Contains(out.String(), "Failed to read configuration file: "+tt.path) {
				t.Errorf("missing failure notice in:\n%s", out.String())
			}
			if s.State() != StateStopped {
				t.Errorf("State() = %v, want STOPPED", s.State())
			}
			if s.Status().Cycles != 0 {
				t.Errorf("no scan pass should have run")
			}
		})
	}
}

func TestScheduler_Once(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "old.tmp"), 3*day)
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("path = %s, 1\n", filepath.Join(dir, "*.tmp")))

	var out bytes.Buffer
	s := newTestScheduler(Config{PolicyPath: cfgPath, Once: true}, &out, nil)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st := s.Status()
	if st.Cycles != 1 || st.State != "STOPPED" {
		t.Errorf("Status() = %+v, want one cycle and STOPPED", st)
	}
	if st.LastRun == nil || st.LastRun.Deleted != 1 || st.LastRun.CycleID == "" {
		t.Errorf("LastRun = %+v, want one deletion with a cycle id", st.LastRun)
	}
	if strings.Contains(out.String(), "Exiting...") {
		t.Error("once mode should not print the exit notice")
	}
}

func TestScheduler_CancelWhileWaiting(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("scan_period_sec = 1\npath = %s, 1\n", filepath.Join(dir, "*.tmp")))

	var out bytes.Buffer
	source := &cancelAfter{n: 3}
	s := newTestScheduler(Config{PolicyPath: cfgPath}, &out, source)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasSuffix(out.String(), "Exiting...\n") {
		t.Errorf("output should end with the exit notice:\n%s", out.String())
	}
	if got := source.polls.Load(); got != 3 {
		t.Errorf("polls = %d, want 3", got)
	}
	if s.Status().Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", s.Status().Cycles)
	}
}

// statusOnPoll records the scheduler status at the first poll, then cancels.
type statusOnPoll struct {
	s    *Scheduler
	seen Status
}

func (p *statusOnPoll) Poll() bool {
	p.seen = p.s.Status()
	return true
}

func TestScheduler_NextScanWhileWaiting(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("scan_period_sec = 30\npath = %s, 1\n", filepath.Join(dir, "*.tmp")))

	var out bytes.Buffer
	source := &statusOnPoll{}
	s := newTestScheduler(Config{PolicyPath: cfgPath}, &out, source)
	source.s = s

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	waiting := source.seen
	if waiting.State != "WAITING" {
		t.Fatalf("State while polling = %q, want WAITING", waiting.State)
	}
	if waiting.NextScan == nil {
		t.Fatal("NextScan not set while WAITING")
	}
	want := waiting.LastCycle.Truncate(time.Second).Add(30 * time.Second)
	if !waiting.NextScan.Equal(want) {
		t.Errorf("NextScan = %v, want %v", waiting.NextScan, want)
	}

	if s.Status().NextScan != nil {
		t.Error("NextScan should be cleared once stopped")
	}
}

func TestScheduler_ReloadsEveryCycle(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("scan_period_sec = 1\npath = %s, 1\n", filepath.Join(dir, "*.tmp")))

	var out bytes.Buffer
	// One full wait of 20 ticks, then cancel during the second wait.
	source := &cancelAfter{n: TicksPerSecond + 5}
	s := newTestScheduler(Config{PolicyPath: cfgPath, Verbose: true}, &out, source)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if s.Status().Cycles != 2 {
		t.Errorf("Cycles = %d, want 2", s.Status().Cycles)
	}
	if n := strings.Count(out.String(), "scan_period_sec = 1"); n != 1 {
		t.Errorf("policy echoed %d times, want only on the first load:\n%s", n, out.String())
	}
}

func TestScheduler_ContextCancel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("scan_period_sec = 60\npath = %s, 1\n", filepath.Join(dir, "*.tmp")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := newTestScheduler(Config{PolicyPath: cfgPath}, &out, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop on context cancellation")
	}

	if s.Status().Cycles != 1 {
		t.Errorf("the scan pass in progress should complete, cycles = %d", s.Status().Cycles)
	}
}

func TestScheduler_PolicyDisappears(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	writeFile(t, cfgPath, fmt.Sprintf("scan_period_sec = 1\npath = %s, 1\n", filepath.Join(dir, "*.tmp")))

	var out bytes.Buffer
	source := &removeOnPoll{path: cfgPath}
	s := newTestScheduler(Config{PolicyPath: cfgPath}, &out, source)

	err := s.Run(context.Background())
	if !errors.Is(err, policy.ErrNoEntries) {
		t.Fatalf("Run() error = %v, want ErrNoEntries", err)
	}
	if s.Status().Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", s.Status().Cycles)
	}
}

// removeOnPoll deletes the policy file on the first poll and never cancels.
type removeOnPoll struct {
	path string
	done bool
}

func (r *removeOnPoll) Poll() bool {
	if !r.done {
		os.Remove(r.path)
		r.done = true
	}
	return false
}
