package feistel

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchSchedule loads the schedule in filename, hands it to onChange, and
// does so again each time the file's contents change, until ctx is done.
// Load errors are handed to onChange too; the watch keeps going.
func WatchSchedule(ctx context.Context, filename string, onChange func(Schedule, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file rather than write it, which drops a
	// watch on the file itself.
	target := filepath.Clean(filename)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	var last string
	load := func() {
		sched, err := LoadSchedule(target)
		if err == nil {
			if sched.String() == last {
				return
			}
			last = sched.String()
		}
		onChange(sched, err)
	}

	load()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			load()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
