package filesource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.RecordWatcher = (*Watcher)(nil)

// Watcher reports record files that are created or written.
type Watcher struct{}

// NewWatcher creates a file watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// watchSet decides which events name a watched record.
type watchSet struct {
	files map[string]bool
	dirs  map[string]bool
}

// Watch reports changed records under locations until ctx is cancelled.
// Directories report any record file in them; files report only themselves.
func (w *Watcher) Watch(ctx context.Context, locations []string) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	set := &watchSet{files: map[string]bool{}, dirs: map[string]bool{}}
	for _, loc := range locations {
		info, err := os.Stat(loc)
		if err != nil {
			fw.Close()
			return nil, err
		}
		dir := loc
		if info.IsDir() {
			set.dirs[filepath.Clean(loc)] = true
		} else {
			set.files[filepath.Clean(loc)] = true
			dir = filepath.Dir(loc)
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer fw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				path, ok := set.handleEvent(ev)
				if !ok {
					continue
				}
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("watch: %v", err)
			}
		}
	}()
	return out, nil
}

// handleEvent returns the record path an event concerns, if any.
// Only creates and writes count; removals leave indexed records alone.
func (s *watchSet) handleEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	path := filepath.Clean(ev.Name)
	if strings.HasPrefix(filepath.Base(path), ".") {
		return "", false
	}
	if s.files[path] {
		return path, true
	}
	if !s.dirs[filepath.Dir(path)] || !IsRecordFile(path) {
		return "", false
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
