package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the file must stay quiet before it is reloaded. A plain
// save arrives as a truncate followed by one or more writes.
const settle = 100 * time.Millisecond

// Watch monitors path for changes and calls onChange with a freshly loaded
// Dataset each time the file settles after a write. It runs until ctx is
// cancelled.
//
// The parent directory is watched rather than the file, so saves that write a
// temp file and rename it over path are picked up too. An empty or missing
// file is treated as a save in progress and skipped.
//
// If a reload fails (malformed row, missing column), the error is logged and
// passed to onError when it is non-nil; the caller keeps its previous dataset.
func Watch(ctx context.Context, path string, cols Columns, onChange func(*Dataset), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("dataset: watching for changes", "path", path)

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(settle)

		case <-timer.C:
			fi, err := os.Stat(path)
			if err != nil || fi.Size() == 0 {
				continue
			}

			ds, err := Load(path, cols)
			if err != nil {
				slog.Error("dataset: reload failed, keeping previous dataset",
					"path", path, "err", err)
				if onError != nil {
					onError(err)
				}
				continue
			}

			slog.Info("dataset: reloaded", "path", path, "records", ds.Len())
			onChange(ds)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("dataset: watcher error", "err", err)
		}
	}
}
