package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/focuskit/internal/input/keymap"
)

// ReloadDebounce is the quiet period after a change before the keymap file
// is reloaded.
const ReloadDebounce = 100 * time.Millisecond

// Watcher reloads a keymap file when it changes.
//
// The parent directory is watched so editors that save by writing a temp
// file and renaming it over the original are seen.
type Watcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the keymap file at path. A nil logger
// discards.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", abs, err)
	}
	return &Watcher{path: abs, logger: logger, watcher: w}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes change events until ctx is cancelled, passing each
// successfully reloaded keymap set to fn. Reload failures are logged and
// the previous keymaps stay in effect. Run closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn func([]*keymap.Keymap)) error {
	defer w.watcher.Close()

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(ReloadDebounce)
			reload = timer.C
			return
		}
		timer.Reset(ReloadDebounce)
	}

	w.logger.Debug("keymap watcher started", "path", w.path)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Debug("keymap watcher stopped", "path", w.path)
			return nil

		case <-reload:
			timer, reload = nil, nil
			kms, err := keymap.LoadFile(w.path)
			if err != nil {
				w.logger.Warn("keymap reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("keymap reloaded", "path", w.path, "keymaps", len(kms))
			fn(kms)

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("keymap watcher error", "error", err)
		}
	}
}

// Watch reloads the keymap file at path until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func([]*keymap.Keymap)) error {
	w, err := NewWatcher(path, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
