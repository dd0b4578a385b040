package internal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettleDelay groups the writes an editor makes while saving.
const DefaultSettleDelay = 100 * time.Millisecond

var errAlreadyWatching = errors.New("already watching")

// Watcher calls a handler whenever an expressions file is written.
type Watcher struct {
	path     string
	handle   func(path string)
	delay    time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	watching bool
}

// NewWatcher watches path. The parent directory is watched so files that
// editors replace on save keep being followed.
func NewWatcher(path string, handle func(path string), logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:    abs,
		handle:  handle,
		delay:   DefaultSettleDelay,
		logger:  logger,
		watcher: w,
	}, nil
}

// SetSettleDelay changes how long the watcher waits after the last write.
func (w *Watcher) SetSettleDelay(d time.Duration) {
	w.delay = d
}

// Run delivers change notifications until ctx is done. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return errAlreadyWatching
	}
	w.watching = true
	w.mu.Unlock()
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.logger.Debug("Expressions changed", zap.String("path", w.path))
			w.handle(w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
