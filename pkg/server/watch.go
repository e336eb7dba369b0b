package server

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/vango-dev/labelselect/internal/config"
)

// Watcher reloads a Server when its page file changes.
type Watcher struct {
	path    string
	server  *Server
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Watch starts watching path. The directory is watched rather than the
// file so editors that replace the file on save are followed.
func Watch(path string, s *Server) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		server:  s,
		watcher: fw,
		logger:  slog.Default().With("component", "watcher"),
		done:    make(chan struct{}),
	}
	go w.loop()
	w.logger.Info("watching page config", "path", abs)
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Error("page config reload failed", "error", err)
		return
	}
	w.server.Reload(cfg)
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	if err == nil {
		w.logger.Info("file watcher closed")
	}
	return err
}
