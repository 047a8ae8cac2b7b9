package control

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// StopFile cancels when a stop file is created or written.
type StopFile struct {
	latch
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	closeOnce sync.Once
	doneCh    chan struct{}
}

// NewStopFile watches the directory containing path. A stop file that
// already exists is left alone; only later creates and writes cancel.
func NewStopFile(path string) (*StopFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stop file %q: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access stop file directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stop file parent %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	sf := &StopFile{
		path:    abs,
		watcher: watcher,
		logger:  slog.Default().With("component", "control.stopfile"),
		doneCh:  make(chan struct{}),
	}
	go sf.watch()

	sf.logger.Debug("watching stop file", "path", abs)
	return sf, nil
}

// Path returns the absolute stop file path.
func (sf *StopFile) Path() string {
	return sf.path
}

func (sf *StopFile) watch() {
	defer close(sf.doneCh)

	for {
		select {
		case event, ok := <-sf.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sf.path {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				sf.logger.Info("stop file detected", "path", sf.path, "op", event.Op.String())
				sf.trip()
			}

		case err, ok := <-sf.watcher.Errors:
			if !ok {
				return
			}
			sf.logger.Error("stop file watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (sf *StopFile) Close() error {
	var err error
	sf.closeOnce.Do(func() {
		err = sf.watcher.Close()
		<-sf.doneCh
	})
	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
