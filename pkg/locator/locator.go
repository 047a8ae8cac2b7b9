package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locator expands a pattern into absolute paths.
type Locator interface {
	Expand(pattern string) ([]string, error)
}

// DirLocator matches the last segment of a pattern against the entries of
// its parent directory.
type DirLocator struct {
	// WorkDir resolves relative patterns. Empty means the process
	// working directory at the time of the call.
	WorkDir string
}

// NewDirLocator returns a DirLocator rooted at the process working directory.
func NewDirLocator() *DirLocator {
	return &DirLocator{}
}

// Expand returns the sorted absolute paths matching pattern. Missing parent
// directories and empty matches return no paths and no error.
func (l *DirLocator) Expand(pattern string) ([]string, error) {
	abs, err := l.Resolve(pattern)
	if err != nil {
		return nil, err
	}

	dir, name := filepath.Split(abs)
	if name == "" {
		return nil, nil
	}
	if _, err := filepath.Match(name, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %q for pattern %q: %w", dir, pattern, err)
	}

	var matches []string
	for _, entry := range entries {
		ok, _ := filepath.Match(name, entry.Name())
		if ok {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(matches)

	return matches, nil
}

// Resolve returns pattern as an absolute, cleaned path.
func (l *DirLocator) Resolve(pattern string) (string, error) {
	if IsAbs(pattern) {
		return filepath.Clean(pattern), nil
	}

	wd := l.WorkDir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	return filepath.Join(wd, pattern), nil
}

// IsAbs reports whether pattern names a location independent of the
// working directory: it carries a volume name or starts at a path root.
func IsAbs(pattern string) bool {
	if filepath.IsAbs(pattern) || filepath.VolumeName(pattern) != "" {
		return true
	}
	return strings.HasPrefix(pattern, "/") || strings.HasPrefix(pattern, `\`)
}
