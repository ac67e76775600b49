// Package watch regenerates the manifest when the docs directory changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/jera/internal/docservice"
)

// debounceInterval collapses bursts of filesystem events (editor save
// patterns, bulk copies) into a single rebuild.
const debounceInterval = 200 * time.Millisecond

// RebuildCallback is called after each successful watcher-driven rebuild.
type RebuildCallback func(*docservice.Summary)

// Watch monitors the docs directory and triggers a full manifest rebuild
// whenever an HTML entry is created, written, removed, or renamed. The scan
// is intentionally non-recursive, matching the manifest's scope. Every
// trigger runs the complete scan-and-rewrite pipeline; the watcher never
// patches the manifest incrementally.
func Watch(ctx context.Context, svc *docservice.Service, docsRoot, manifestName string, logger *slog.Logger, cb RebuildCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(docsRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", docsRoot))

	var rebuildTimer *time.Timer
	var rebuildCh <-chan time.Time

	scheduleRebuild := func() {
		if rebuildTimer == nil {
			rebuildTimer = time.NewTimer(debounceInterval)
			rebuildCh = rebuildTimer.C
		} else {
			rebuildTimer.Reset(debounceInterval)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-rebuildCh:
			sum, err := svc.Rebuild(ctx)
			if err != nil {
				logger.Warn("watcher: rebuild failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("watcher: manifest rebuilt",
				slog.Int("total", sum.Total),
				slog.Int("dated", sum.Dated),
				slog.Int("undated", sum.Undated))
			if cb != nil {
				cb(sum)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name, manifestName) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: change detected",
				slog.String("name", filepath.Base(ev.Name)),
				slog.String("op", ev.Op.String()))
			scheduleRebuild()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant reports whether a change to the named path should trigger a
// rebuild. Only directly-contained .html entries count; the manifest file
// itself and its temp files must not re-trigger the watcher.
func relevant(path, manifestName string) bool {
	base := filepath.Base(path)
	if base == manifestName || strings.HasPrefix(base, ".jera-tmp-") {
		return false
	}
	return strings.HasSuffix(base, ".html")
}
