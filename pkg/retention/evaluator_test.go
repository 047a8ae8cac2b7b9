package retention

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeInfo struct {
	name    string
	modTime time.Time
	dir     bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0644 }
func (f fakeInfo) ModTime() time.Time { return f.modTime }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

func TestEvaluator_Evaluate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name        string
		age         time.Duration
		days        int
		wantExpired bool
	}{
		{name: "older than retention", age: 8 * day, days: 7, wantExpired: true},
		{name: "younger than retention", age: 6 * day, days: 7, wantExpired: false},
		{name: "exactly at retention is kept", age: 7 * day, days: 7, wantExpired: false},
		{name: "one second past retention", age: 7*day + time.Second, days: 7, wantExpired: true},
		{name: "sub-second past retention is kept", age: 7*day + 900*time.Millisecond, days: 7, wantExpired: false},
		{name: "future modification time", age: -time.Hour, days: 1, wantExpired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Evaluator{
				Now: func() time.Time { return now },
				Stat: func(name string) (os.FileInfo, error) {
					return fakeInfo{name: name, modTime: now.Add(-tt.age)}, nil
				},
			}

			v := e.Evaluate("/tmp/file", tt.days)
			if v.Err != nil {
				t.Fatalf("Evaluate() error = %v", v.Err)
			}
			if v.Expired != tt.wantExpired {
				t.Errorf("Expired = %v, want %v", v.Expired, tt.wantExpired)
			}
			if v.Age != tt.age {
				t.Errorf("Age = %v, want %v", v.Age, tt.age)
			}
		})
	}
}

func TestEvaluator_ZeroDaysSkipsStat(t *testing.T) {
	e := &Evaluator{
		Now: time.Now,
		Stat: func(string) (os.FileInfo, error) {
			t.Error("stat should not be called for zero retention")
			return nil, os.ErrNotExist
		},
	}

	v := e.Evaluate("/does/not/matter", 0)
	if !v.Expired {
		t.Error("zero retention should always expire")
	}
	if v.Err != nil {
		t.Errorf("unexpected error: %v", v.Err)
	}
}

func TestEvaluator_StatError(t *testing.T) {
	statErr := errors.New("permission denied")
	e := &Evaluator{
		Now:  time.Now,
		Stat: func(string) (os.FileInfo, error) { return nil, statErr },
	}

	v := e.Evaluate("/tmp/file", 1)
	if v.Expired {
		t.Error("stat failure must not expire the path")
	}
	if !errors.Is(v.Err, statErr) {
		t.Errorf("Err = %v, want %v", v.Err, statErr)
	}
}

func TestEvaluator_RealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.log")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-3 * 24 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	e := NewEvaluator()
	if v := e.Evaluate(path, 2); !v.Expired {
		t.Errorf("3 day old file should expire with 2 day retention: %+v", v)
	}
	if v := e.Evaluate(path, 5); v.Expired {
		t.Errorf("3 day old file should be kept with 5 day retention: %+v", v)
	}
	if v := e.Evaluate(filepath.Join(filepath.Dir(path), "missing"), 1); v.Err == nil || v.Expired {
		t.Errorf("missing file should report an error and not expire: %+v", v)
	}
}
