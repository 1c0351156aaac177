package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with a freshly loaded config whenever the file at path
// is written, created or replaced. It watches the parent directory so that
// editors that save via rename are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			res, reload, err := reloadOn(ev, target)
			if !reload {
				continue
			}
			if err != nil {
				onChange(nil, err)
				continue
			}
			onChange(res.Config, nil)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("config watcher: %w", err))
		}
	}
}

// reloadOn loads target if ev changed it. A rename or remove that leaves no
// file behind is not a reload: the replacement shows up as its own Create.
func reloadOn(ev fsnotify.Event, target string) (*LoadResult, bool, error) {
	if filepath.Clean(ev.Name) != target {
		return nil, false, nil
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return nil, false, nil
	}
	exists, err := pathExists(target)
	if err != nil {
		return nil, true, err
	}
	if !exists {
		return nil, false, nil
	}
	res, err := LoadFromPath(target)
	return res, true, err
}
