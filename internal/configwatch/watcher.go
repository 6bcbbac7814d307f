// Package configwatch reloads the viewer configuration when its file
// changes on disk.
package configwatch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/artchain/lightbox"
)

// Load reads the config file at path, or the defaults when path is empty,
// and applies LIGHTBOX_* environment overrides on top.
func Load(path string) (lightbox.Config, error) {
	cfg := lightbox.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = lightbox.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if err := lightbox.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Watcher delivers a freshly loaded Config every time the watched file is
// written. Invalid files are logged and skipped; the last good config stays
// in effect.
type Watcher struct {
	fs      *fsnotify.Watcher
	path    string
	updates chan lightbox.Config
	stopCh  chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	log     *zap.Logger
}

// New starts watching path. The containing directory is watched so that
// editors replacing the file by rename are noticed too.
func New(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}

	w := &Watcher{
		fs:      fs,
		path:    abs,
		updates: make(chan lightbox.Config, 1),
		stopCh:  make(chan struct{}),
		log:     log,
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates returns the channel of reloaded configs. Only the newest pending
// config is kept; the consumer never sees a stale one after a newer write.
func (w *Watcher) Updates() <-chan lightbox.Config {
	return w.updates
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("config reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("config reloaded", zap.String("path", w.path))

	// Replace any config the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
