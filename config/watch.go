package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce absorbs the write+rename event pairs produced by the
// atomic replace discipline.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the store when the document changes on disk, typically
// because the external configuration editor saved it.
type Watcher struct {
	store    *Store
	onChange func(Config)
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for the store's document. onChange is
// invoked after each successful reload; it runs on the watcher goroutine,
// so callers that touch UI state must post through the UI loop themselves.
func NewWatcher(store *Store, onChange func(Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: the rename step of an atomic
	// save replaces the inode the file watch would be pinned to.
	dir := filepath.Dir(store.Path())
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{store: store, onChange: onChange, fsw: fsw}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.fsw.Close() }()

	target := filepath.Base(w.store.Path())
	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			log.Printf("Config: document changed on disk, reloading")
			cfg := w.store.Reload()
			if w.onChange != nil {
				w.onChange(cfg)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Config: watcher error: %v", err)
		}
	}
}
