package ingest

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher tails a snapshot directory and hands newly created *.json
// files to a load callback, so daily exports dropped into the directory
// appear in the dashboard without a manual upload.
type Watcher struct {
	dir  string
	load func(path string)
}

// NewWatcher creates a watcher over dir. load is invoked for every new
// snapshot file; it is responsible for surfacing its own failures.
func NewWatcher(dir string, load func(path string)) *Watcher {
	return &Watcher{dir: dir, load: load}
}

// Run watches until the context is cancelled. Watcher setup errors are
// returned; per-file load failures are the callback's concern.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	log.Printf("[Watcher] watching %s for new snapshot files", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(evt.Name), ".json") {
				continue
			}
			log.Printf("[Watcher] detected new snapshot: %s", filepath.Base(evt.Name))
			w.load(evt.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Watcher] error: %v", err)
		}
	}
}
