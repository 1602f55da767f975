package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchIndexes keeps the index.json files under root current until ctx is
// done. A category's index is rewritten whenever an article in it is
// created, removed or renamed; new category directories are picked up.
// The onChange callback, if set, is called after each rewrite.
func WatchIndexes(ctx context.Context, root string, log *zap.Logger, onChange func(category string, files []string)) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return fmt.Errorf("content: watch %s: %w", root, err)
	}
	cats, err := Categories(root)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		if err := w.Add(filepath.Join(root, cat)); err != nil {
			return fmt.Errorf("content: watch %s: %w", cat, err)
		}
	}

	reindex := func(dir string) {
		files, err := WriteIndex(dir)
		if err != nil {
			log.Error("failed to regenerate index", zap.String("dir", dir), zap.Error(err))
			return
		}
		cat := filepath.Base(dir)
		log.Info("index regenerated", zap.String("category", cat), zap.Int("files", len(files)))
		if onChange != nil {
			onChange(cat, files)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(ev.Name) == filepath.Clean(root) {
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						if err := w.Add(ev.Name); err != nil {
							log.Warn("cannot watch new category", zap.String("dir", ev.Name), zap.Error(err))
							continue
						}
						reindex(ev.Name)
					}
				}
				continue
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				reindex(filepath.Dir(ev.Name))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
