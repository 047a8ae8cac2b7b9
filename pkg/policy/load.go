package policy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	directiveScanPeriod = "scan_period_sec"
	directivePath       = "path"

	utf8BOM = "\ufeff"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	echo io.Writer
}

// WithVerbose echoes parsed values and skipped directives to w.
// A nil writer disables the echo.
func WithVerbose(w io.Writer) Option {
	return func(o *loadOptions) {
		o.echo = w
	}
}

// Load reads the policy file at path. The format is chosen by extension:
// .yaml and .yml are YAML, everything else is the line-oriented format.
//
// The returned policy is never nil. When the file cannot be read, Load
// returns an empty policy and the read error.
func Load(path string, opts ...Option) (*Policy, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path)
	if err != nil {
		o.printf("Cannot open configuration file: %s\n", path)
		return New(path), fmt.Errorf("failed to open policy file %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, f, o)
	default:
		return parse(path, f, o)
	}
}

// Parse reads a policy in the line-oriented format from r.
func Parse(source string, r io.Reader, opts ...Option) (*Policy, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return parse(source, r, o)
}

func parse(source string, r io.Reader, o *loadOptions) (*Policy, error) {
	p := New(source)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}
		parseLine(p, line, o)
	}
	if err := scanner.Err(); err != nil {
		return p, fmt.Errorf("failed to read policy file %q: %w", source, err)
	}

	return p, nil
}

// parseLine applies a single directive to p. Malformed directives are
// skipped or fall back to defaults; they never fail the whole load.
func parseLine(p *Policy, line string, o *loadOptions) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return
	}
	key, value := line[:eq], line[eq+1:]

	switch {
	case strings.Contains(key, directiveScanPeriod):
		if comma := strings.LastIndexByte(value, ','); comma >= 0 {
			value = value[:comma]
		}
		seconds, ok := parseInt(value)
		if !ok || seconds <= 0 {
			o.printf("Probably an error in scan_period_sec, keeping %d\n", p.ScanIntervalSeconds)
			return
		}
		p.ScanIntervalSeconds = seconds
		o.printf("scan_period_sec = %d\n", seconds)

	case strings.Contains(key, directivePath):
		pattern := strings.TrimSpace(value)
		days := DefaultRetentionDays
		if comma := strings.LastIndexByte(value, ','); comma >= 0 {
			pattern = strings.TrimSpace(value[:comma])
			if n, ok := parseInt(value[comma+1:]); ok && n >= 0 {
				days = n
			} else {
				o.printf("Probably an error in the period for path %s, defaulting to %d day(s)\n", pattern, DefaultRetentionDays)
			}
		} else {
			o.printf("No period for path %s, defaulting to %d day(s)\n", pattern, DefaultRetentionDays)
		}

		if pattern == "" {
			o.printf("Skipping path directive without a pattern\n")
			return
		}

		entry := Entry{Pattern: pattern, RetentionDays: days}
		p.Entries = append(p.Entries, entry)
		o.printf("%s\n", entry)
	}
}

// parseInt accepts a whole 32-bit integer surrounded by optional whitespace.
// Trailing non-whitespace characters make the value invalid.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func (o *loadOptions) printf(format string, args ...any) {
	if o.echo == nil {
		return
	}
	fmt.Fprintf(o.echo, format, args...)
}
