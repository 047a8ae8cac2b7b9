package retention

import (
	"os"
	"time"
)

// secondsPerDay converts retention days into seconds.
const secondsPerDay = 86400

// Verdict is the result of evaluating one candidate.
type Verdict struct {
	// Expired is true when the path is older than its retention.
	Expired bool

	// Age is the time since the last modification. Zero when the path
	// was not examined.
	Age time.Duration

	// Err holds a stat failure. A verdict with an error is never expired.
	Err error
}

// Evaluator decides whether a path is past its retention period.
type Evaluator struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Stat returns file information, following symlinks. Defaults to os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// NewEvaluator creates an Evaluator using the wall clock and os.Stat.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Now:  time.Now,
		Stat: os.Stat,
	}
}

// Evaluate reports whether path has outlived a retention of days.
//
// A retention of 0 days expires every path without examining it. Otherwise
// the whole seconds elapsed since the last modification must be strictly
// greater than days*86400.
func (e *Evaluator) Evaluate(path string, days int) Verdict {
	if days == 0 {
		return Verdict{Expired: true}
	}

	stat := e.Stat
	if stat == nil {
		stat = os.Stat
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}

	info, err := stat(path)
	if err != nil {
		return Verdict{Err: err}
	}

	age := now().Sub(info.ModTime())
	elapsed := int64(age / time.Second)
	return Verdict{
		Expired: elapsed > int64(days)*secondsPerDay,
		Age:     age,
	}
}
