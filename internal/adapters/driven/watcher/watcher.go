// Package watcher rebuilds the knowledge index when the corpus file changes.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ganzhi/internal/logger"
)

var log = logger.Component("watcher")

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Reloader is notified once per settled burst of changes.
// driving.KnowledgeService satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Stats counts watcher activity.
type Stats struct {
	Events  int
	Reloads int
	Errors  int
}

// CorpusWatcher watches a single corpus file.
// The parent directory is watched rather than the file, so saves that
// replace the file by rename are still seen.
type CorpusWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	target   Reloader
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stats    Stats
}

// New creates a watcher for the corpus file at path.
func New(path string, target Reloader) (*CorpusWatcher, error) {
	if path == "" {
		return nil, errors.New("watch corpus: no path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch corpus: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch corpus: %w", err)
	}

	return &CorpusWatcher{
		watcher:  w,
		path:     abs,
		target:   target,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce sets the quiet period before a reload. Call before Start.
func (cw *CorpusWatcher) SetDebounce(d time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.debounce = d
}

// Start begins watching. It does not block.
func (cw *CorpusWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("Watching %s", cw.path)

	go cw.run(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
// It is safe to call more than once, and before Start.
func (cw *CorpusWatcher) Stop() {
	cw.mu.Lock()
	wasRunning := cw.running
	cw.running = false
	cw.mu.Unlock()

	if wasRunning {
		close(cw.stopCh)
		<-cw.doneCh
	}

	if err := cw.watcher.Close(); err != nil {
		log.Error("closing watcher: %v", err)
	}
}

// Stats returns a snapshot of watcher activity.
func (cw *CorpusWatcher) Stats() Stats {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.stats
}

func (cw *CorpusWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	cw.mu.Lock()
	debounce := cw.debounce
	cw.mu.Unlock()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			log.Debug("%s %s", event.Op, event.Name)
			cw.count(func(s *Stats) { s.Events++ })
			timer.Reset(debounce)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Error("%v", err)
			cw.count(func(s *Stats) { s.Errors++ })

		case <-timer.C:
			cw.reload(ctx)
		}
	}
}

// relevant reports whether event changes the watched file's content.
func (cw *CorpusWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

func (cw *CorpusWatcher) reload(ctx context.Context) {
	if err := cw.target.Reload(ctx); err != nil {
		log.Error("reload %s: %v", cw.path, err)
		cw.count(func(s *Stats) { s.Errors++ })
		return
	}
	log.Info("Reloaded %s", cw.path)
	cw.count(func(s *Stats) { s.Reloads++ })
}

func (cw *CorpusWatcher) count(f func(*Stats)) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	f(&cw.stats)
}
