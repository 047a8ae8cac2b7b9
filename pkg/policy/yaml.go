package policy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlPolicy is the on-disk shape of a YAML policy file.
// Numbers are kept as nodes so that one malformed value falls back to its
// default instead of failing the whole document.
type yamlPolicy struct {
	ScanPeriodSec *yaml.Node  `yaml:"scan_period_sec"`
	Paths         []yamlEntry `yaml:"paths"`
}

type yamlEntry struct {
	Path string     `yaml:"path"`
	Days *yaml.Node `yaml:"days"`
}

// parseYAML reads the YAML variant with the same defaults and fallbacks
// as the line-oriented format.
func parseYAML(source string, r io.Reader, o *loadOptions) (*Policy, error) {
	p := New(source)

	var doc yamlPolicy
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		o.printf("Cannot parse configuration file: %s\n", source)
		return p, fmt.Errorf("failed to parse policy file %q: %w", source, err)
	}

	if doc.ScanPeriodSec != nil {
		if seconds, ok := nodeInt(doc.ScanPeriodSec); ok && seconds > 0 {
			p.ScanIntervalSeconds = seconds
			o.printf("scan_period_sec = %d\n", p.ScanIntervalSeconds)
		} else {
			o.printf("Probably an error in scan_period_sec, keeping %d\n", p.ScanIntervalSeconds)
		}
	}

	for _, ye := range doc.Paths {
		pattern := strings.TrimSpace(ye.Path)
		if pattern == "" {
			o.printf("Skipping path directive without a pattern\n")
			continue
		}

		days := DefaultRetentionDays
		if ye.Days == nil {
			o.printf("No period for path %s, defaulting to %d day(s)\n", pattern, DefaultRetentionDays)
		} else if n, ok := nodeInt(ye.Days); ok && n >= 0 {
			days = n
		} else {
			o.printf("Probably an error in the period for path %s, defaulting to %d day(s)\n", pattern, DefaultRetentionDays)
		}

		entry := Entry{Pattern: pattern, RetentionDays: days}
		p.Entries = append(p.Entries, entry)
		o.printf("%s\n", entry)
	}

	return p, nil
}

// nodeInt parses a scalar node with the same rules as the line format.
func nodeInt(n *yaml.Node) (int, bool) {
	if n.Kind != yaml.ScalarNode {
		return 0, false
	}
	return parseInt(n.Value)
}
