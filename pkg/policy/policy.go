package policy

import (
	"errors"
	"fmt"
)

const (
	// DefaultScanIntervalSeconds is used when the file sets no valid scan_period_sec.
	DefaultScanIntervalSeconds = 1

	// DefaultRetentionDays applies to path entries with a missing or malformed
	// retention period. The unit is days.
	DefaultRetentionDays = 1
)

// ErrNoEntries is returned by Validate for a policy without path entries.
var ErrNoEntries = errors.New("policy has no path entries")

// Entry is one configured path pattern and its retention period.
type Entry struct {
	// Pattern is a file-system path whose last segment may contain wildcards.
	Pattern string `json:"pattern"`

	// RetentionDays is how long matches are kept. 0 makes every match
	// eligible for deletion regardless of age.
	RetentionDays int `json:"retention_days"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s, t=%d", e.Pattern, e.RetentionDays)
}

// Policy is the configuration snapshot used by one scan cycle.
// It is built fresh on every load and never mutated afterwards.
type Policy struct {
	// Source is the file the policy was read from.
	Source string `json:"source"`

	// Entries are kept in file order.
	Entries []Entry `json:"entries"`

	// ScanIntervalSeconds is the wait between scan cycles.
	ScanIntervalSeconds int `json:"scan_period_sec"`
}

// New returns an empty policy with default settings.
func New(source string) *Policy {
	return &Policy{
		Source:              source,
		ScanIntervalSeconds: DefaultScanIntervalSeconds,
	}
}

// Validate returns ErrNoEntries when the policy cannot drive a scan.
func (p *Policy) Validate() error {
	if p == nil || len(p.Entries) == 0 {
		return ErrNoEntries
	}
	return nil
}
