package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"rftidy/internal/logx"
)

// WatchDebounce is how long a changed file must stay quiet before it is reformatted.
var WatchDebounce = 200 * time.Millisecond

// Watch reformats data files under paths whenever they are written or created,
// until ctx is done. Every batch of results is handed to report.
func Watch(ctx context.Context, paths []string, opts FormatOptions, report func([]FormatResult)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	log := logx.FromContext(ctx)
	for _, p := range paths {
		if err := watchRecursive(w, p); err != nil {
			return err
		}
		log.Info("watching", "path", p)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := watchRecursive(w, event.Name); err != nil {
					log.Warn("failed to watch new directory", "path", event.Name, "err", err)
				}
				continue
			}
			if !isDataFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(WatchDebounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				if _, err := os.Stat(f); err == nil {
					files = append(files, f)
				}
			}
			clear(pending)
			if len(files) == 0 {
				continue
			}
			sort.Strings(files)
			results, err := FormatPaths(ctx, files, opts)
			if err != nil {
				log.Error("reformat failed", "err", err)
				continue
			}
			report(results)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "err", err)
		}
	}
}

// watchRecursive adds root (or the directory of a file) and its subdirectories.
func watchRecursive(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
