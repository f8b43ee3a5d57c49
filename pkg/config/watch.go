package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
)

// Watcher reloads the configuration file when it changes on disk and
// delivers validated snapshots on Updates.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan *EngineConfig
	done    chan struct{}
	stop    sync.Once
}

// Watch starts watching the configuration file at path. Each time the file
// is rewritten, the new configuration is loaded, validated and delivered on
// Updates; snapshots that fail validation are dropped. The watcher runs
// until ctx is cancelled or Stop is called.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config watch requires a file path")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	// Watch the directory, not the file: editors and configmap mounts
	// replace the file by rename, which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:    path,
		fsw:     fsw,
		updates: make(chan *EngineConfig, 1),
		done:    make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Updates returns the channel of validated configuration snapshots. The
// channel is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *EngineConfig {
	return w.updates
}

// Stop stops the watcher and closes the Updates channel. Safe to call more
// than once.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.updates)
	log := logging.Log.WithName("config-watcher").WithValues("path", w.path)
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(event) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				log.Error(err, "ignoring config change that failed to load")
				continue
			}
			log.V(logging.DEBUG).Info("configuration reloaded")
			w.deliver(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error(err, "fsnotify error")
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// deliver replaces any undrained snapshot so a slow consumer always sees
// the latest configuration.
func (w *Watcher) deliver(cfg *EngineConfig) {
	for {
		select {
		case w.updates <- cfg:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}
