package retention

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type failingRemover struct {
	osRemover
	err error
}

func (f failingRemover) Remove(string) error    { return f.err }
func (f failingRemover) RemoveAll(string) error { return f.err }

func TestPurger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.tmp")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out := NewPurger(nil).Purge(path)
	if out.Err != nil {
		t.Fatalf("Purge() error = %v", out.Err)
	}
	if out.Dir {
		t.Error("file reported as directory")
	}
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists: %v", err)
	}
}

func TestPurger_DirectoryRecursive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	if err := os.MkdirAll(filepath.Join(dir, "nested", "deeper"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "deeper", "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out := NewPurger(nil).Purge(dir)
	if out.Err != nil {
		t.Fatalf("Purge() error = %v", out.Err)
	}
	if !out.Dir {
		t.Error("directory not reported as directory")
	}
	if _, err := os.Lstat(dir); !os.IsNotExist(err) {
		t.Errorf("directory still exists: %v", err)
	}
}

func TestPurger_SymlinkKeepsTarget(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	out := NewPurger(nil).Purge(link)
	if out.Err != nil {
		t.Fatalf("Purge() error = %v", out.Err)
	}
	if out.Dir {
		t.Error("symlink reported as directory")
	}
	if _, err := os.Stat(filepath.Join(target, "keep")); err != nil {
		t.Errorf("symlink target was touched: %v", err)
	}
}

func TestPurger_Missing(t *testing.T) {
	out := NewPurger(nil).Purge(filepath.Join(t.TempDir(), "gone"))
	if !errors.Is(out.Err, os.ErrNotExist) {
		t.Errorf("Err = %v, want os.ErrNotExist", out.Err)
	}
}

func TestPurger_RemoveFailure(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.tmp")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	denied := errors.New("access denied")
	p := NewPurger(failingRemover{err: denied})

	for _, path := range []string{file, dir} {
		out := p.Purge(path)
		if !errors.Is(out.Err, denied) {
			t.Errorf("Purge(%s) error = %v, want %v", path, out.Err, denied)
		}
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("file should survive a failed removal: %v", err)
	}
}
