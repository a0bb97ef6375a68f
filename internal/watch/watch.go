// Package watch re-reads an expression file whenever it changes on disk
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// Options configures File
type Options struct {
	Debounce time.Duration
	Logger   *mdwlog.Logger
}

// File calls fn with the content of path once at start and again after
// every change, until ctx is cancelled. The parent directory is watched
// so that editors which save by renaming a temporary file are followed.
func File(ctx context.Context, path string, opts Options, fn func(content string)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to resolve path").WithCode(mdwerror.CodeInvalidInput)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return mdwerror.Wrap(err, "failed to read expression file").
			WithCode(mdwerror.CodeNotFound).
			WithDetail("path", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create watcher").WithCode(mdwerror.CodeInternal)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeInternal).
			WithDetail("dir", filepath.Dir(abs))
	}
	logger.Info("watching expression file", mdwlog.Fields{"path": abs})

	fn(string(content))

	// A single timer coalesces bursts; it is armed on every relevant event
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(opts.Debounce)

		case <-timer.C:
			content, err := os.ReadFile(abs)
			if err != nil {
				// Mid-rename; the following Create event re-arms the timer
				logger.Debug("expression file not readable", mdwlog.Fields{"error": err.Error()})
				continue
			}
			fn(string(content))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnWithErr("watcher error", err)
		}
	}
}
