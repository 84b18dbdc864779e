package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write before
// reloading, since editors often save in several steps.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	updates  chan *Config
	errors   chan error
}

// NewWatcher creates a watcher for the config file at path. The parent
// directory is watched, so the file may be replaced by rename.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
	}, nil
}

// Updates delivers each valid config loaded after a change.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Errors delivers load and validation failures. A failed reload leaves the
// previous config in effect.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.sendError(fmt.Errorf("config watcher: %w", err))

		case <-timer.C:
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendConfig(cfg)
		}
	}
}

// sendConfig replaces any update the consumer has not picked up yet.
func (w *Watcher) sendConfig(cfg *Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
