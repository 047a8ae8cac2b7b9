package retention

import "os"

// Remover is the file system surface used by the Purger.
type Remover interface {
	Lstat(name string) (os.FileInfo, error)
	Remove(name string) error
	RemoveAll(path string) error
}

type osRemover struct{}

func (osRemover) Lstat(name string) (os.FileInfo, error) { return os.Lstat(name) }
func (osRemover) Remove(name string) error               { return os.Remove(name) }
func (osRemover) RemoveAll(path string) error            { return os.RemoveAll(path) }

// Outcome is the result of purging one path.
type Outcome struct {
	Path string
	Dir  bool
	Err  error
}

// Purger removes expired paths.
type Purger struct {
	remover Remover
}

// NewPurger creates a Purger. A nil remover uses the operating system.
func NewPurger(remover Remover) *Purger {
	if remover == nil {
		remover = osRemover{}
	}
	return &Purger{remover: remover}
}

// Purge removes path. Directories are removed with their contents; a
// symlink is removed itself and its target is left alone. Errors are
// returned as reported by the Remover.
func (p *Purger) Purge(path string) Outcome {
	out := Outcome{Path: path}

	info, err := p.remover.Lstat(path)
	if err != nil {
		out.Err = err
		return out
	}

	if info.IsDir() {
		out.Dir = true
		out.Err = p.remover.RemoveAll(path)
		return out
	}

	out.Err = p.remover.Remove(path)
	return out
}
