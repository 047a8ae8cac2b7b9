package control

import (
	"context"
	"errors"
	"sync/atomic"

	"mercator-hq/sweeper/pkg/cli"
)

// Source reports whether the operator asked the agent to stop.
type Source interface {
	// Poll returns true once a cancel has been observed. It never blocks.
	Poll() bool

	// Close releases the source's resources.
	Close() error
}

// latch records a cancel once it has been seen.
type latch struct {
	set atomic.Bool
}

func (f *latch) trip()      { f.set.Store(true) }
func (f *latch) Poll() bool { return f.set.Load() }

// multi polls a list of sources.
type multi []Source

// Any returns a Source that cancels when any of sources cancels. Nil
// sources are skipped.
func Any(sources ...Source) Source {
	var m multi
	for _, s := range sources {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multi) Poll() bool {
	for _, s := range m {
		if s.Poll() {
			return true
		}
	}
	return false
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Context cancels when ctx is done.
type Context struct {
	ctx  context.Context
	stop context.CancelFunc
}

// NewContext wraps ctx as a Source.
func NewContext(ctx context.Context) *Context {
	return &Context{ctx: ctx}
}

// NewSignal returns a Source that cancels on SIGINT or SIGTERM. Close
// restores the default signal behaviour.
func NewSignal() *Context {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	return &Context{ctx: ctx, stop: stop}
}

func (c *Context) Poll() bool { return c.ctx.Err() != nil }

func (c *Context) Close() error {
	if c.stop != nil {
		c.stop()
	}
	return nil
}
