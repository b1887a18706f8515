package mcp

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/draftlab/scriptforge/internal/logger"
)

// reloadDebounce batches bursts of cache writes (one research run can
// touch a dozen files) into a single index rebuild.
const reloadDebounce = 2 * time.Second

// WatchSources watches the article cache directory and rebuilds the
// knowledge index when cached documents change. It blocks until the
// context is cancelled. Callers without a cache port get a no-op.
func (s *Server) WatchSources(ctx context.Context) error {
	if s.ports.Cache == nil {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close() //nolint:errcheck

	dir := s.ports.Cache.Dir()
	if err := watcher.Add(dir); err != nil {
		return err
	}
	logger.Debug("Watching %s for research changes", dir)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := s.ports.Knowledge.LoadDocuments(ctx); err != nil {
				logger.Warn("Index reload failed: %v", err)
			} else {
				logger.Debug("Knowledge index reloaded")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
