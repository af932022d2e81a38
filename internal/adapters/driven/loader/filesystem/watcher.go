package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/logger"
)

// Verify interface compliance.
var _ driven.SourceWatcher = (*Loader)(nil)

// DefaultDebounce groups bursts of editor writes into one change.
const DefaultDebounce = 500 * time.Millisecond

// Watch reports changes to any configured source using DefaultDebounce.
func (l *Loader) Watch(ctx context.Context, onChange func()) error {
	return l.WatchWithDebounce(ctx, DefaultDebounce, onChange)
}

// WatchWithDebounce blocks until ctx is done. onChange runs on the
// watching goroutine, so calls never overlap.
func (l *Loader) WatchWithDebounce(ctx context.Context, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	root, err := filepath.Abs(l.cfg.Root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	docsDir, err := filepath.Abs(l.resolve(l.cfg.DocsDir))
	if err != nil {
		return fmt.Errorf("resolving docs directory: %w", err)
	}

	watched := map[string]bool{}
	files := map[string]bool{}
	for _, p := range append([]string{l.cfg.OverviewFile}, l.cfg.Guides...) {
		abs, err := filepath.Abs(l.resolve(p))
		if err != nil {
			continue
		}
		files[abs] = true
		watched[filepath.Dir(abs)] = true
	}
	watched[root] = true
	watched[docsDir] = true

	for dir := range watched {
		if err := w.Add(dir); err != nil {
			if dir == root {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			logger.Warn("not watching %s: %v", dir, err)
			continue
		}
		logger.Debug("watching %s", dir)
	}

	relevant := func(name string) bool {
		if files[name] {
			return true
		}
		if filepath.Dir(name) != docsDir {
			return false
		}
		base := filepath.Base(name)
		if strings.HasPrefix(base, ".") {
			return false
		}
		ok, _ := filepath.Match(l.cfg.DocsPattern, base)
		return ok
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !relevant(event.Name) {
				continue
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
