package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"portfolio.dev/internal/log"
	"portfolio.dev/internal/models"
)

// ReloadFunc receives content that loaded and validated cleanly
type ReloadFunc func(site *models.Site, projects *models.ProjectList)

// debounceDuration collapses the burst of events an editor save produces
const debounceDuration = 500 * time.Millisecond

// WatchContent reloads the data files in dir whenever one of them changes and
// hands the result to onReload. Invalid content is logged and the previous
// content stays live. The watcher stops when ctx is cancelled.
func WatchContent(ctx context.Context, dir string, onReload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so editors that replace files via rename are seen
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := log.WithComponent("config")
	logger.Info().
		Str(log.FieldEvent, "content.watcher_started").
		Str("path", dir).
		Msg("watching content files for changes")

	go watchLoop(ctx, watcher, dir, onReload)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, dir string, onReload ReloadFunc) {
	logger := log.WithComponent("config")
	defer func() { _ = watcher.Close() }()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str(log.FieldEvent, "content.watcher_stopped").Msg("content watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().
				Str(log.FieldEvent, "content.file_changed").
				Str("file", filepath.Base(event.Name)).
				Str("op", event.Op.String()).
				Msg("content file changed")

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDuration, func() {
				if ctx.Err() != nil {
					return
				}
				site, projects, err := ReadContent(dir)
				if err != nil {
					logger.Error().Err(err).Str(log.FieldEvent, "content.reload_failed").Msg("content reload failed, keeping previous content")
					return
				}
				onReload(site, projects)
				logger.Info().
					Str(log.FieldEvent, "content.reloaded").
					Int("projects", len(projects.Projects)).
					Msg("content reloaded")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Str(log.FieldEvent, "content.watcher_error").Msg("content watcher error")
		}
	}
}

func isContentFile(path string) bool {
	switch filepath.Base(path) {
	case ContentFile, ProjectsFile:
		return true
	}
	return false
}
