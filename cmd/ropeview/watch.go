package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher backs the reload channel returned by watchFile, which
// receives a signal whenever the watched file is written or replaced. Grounded on the teacher's fsnotify-based project watcher, cut
// down to the single-path case: a viewer only ever tracks the one file
// it opened, not a recursive tree.
type fileWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func watchFile(path string) (*fileWatcher, <-chan struct{}, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	// Watch the containing directory rather than the file itself: editors
	// commonly replace a file via rename-over, which drops fsnotify's watch
	// on the original inode.
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		_ = w.Close()
		return nil, nil, err
	}

	reload := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != absPath {
					continue
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					select {
					case reload <- struct{}{}:
					default:
					}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return &fileWatcher{w: w, path: absPath}, reload, nil
}

func (f *fileWatcher) Close() error {
	return f.w.Close()
}
