package server

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events a single git
// operation produces into one refresh.
const debounceDelay = 250 * time.Millisecond

// startWatcher begins monitoring the repository's .git directory and
// triggers a refresh (debounced) whenever refs or HEAD change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	gitDir := filepath.Join(s.cfg.RepoPath, ".git")
	for _, dir := range []string{gitDir, filepath.Join(gitDir, "refs", "heads"), filepath.Join(gitDir, "refs", "tags")} {
		if err := watcher.Add(dir); err != nil && dir == gitDir {
			watcher.Close()
			return err
		}
	}

	go s.watchLoop(ctx, watcher)
	s.logger.Info("Watching repository for changes", "dir", gitDir)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			s.logger.Debug("Repository change", "file", filepath.Base(event.Name))

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				if err := s.refresh(ctx); err != nil {
					s.logger.Error("Refresh failed", "err", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Watcher error", "err", err)
		}
	}
}

// shouldIgnoreEvent filters out noise: lock files git creates around every
// operation, and the object database (history itself only matters once a
// ref moves).
func shouldIgnoreEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return true
	}
	base := filepath.Base(event.Name)
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.Contains(event.Name, string(filepath.Separator)+"objects"+string(filepath.Separator)) {
		return true
	}
	return false
}
