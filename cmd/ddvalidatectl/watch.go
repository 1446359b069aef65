package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDictionary calls onReload, debounced, whenever the fixture file at
// path is written or created. It touches no cache tier; reloading is
// entirely up to onReload. This is CLI-only tooling: the core validator
// never watches anything itself.
func watchDictionary(path string, onReload func(), onError func(error)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ddvalidatectl: watch %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("ddvalidatectl: watch dir %s: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		const debounce = 50 * time.Millisecond
		var timer *time.Timer
		var pending <-chan time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(abs) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				pending = timer.C
			case <-pending:
				pending = nil
				onReload()
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(watchErr)
				}
			}
		}
	}()

	return func() {
		_ = watcher.Close()
		<-done
	}, nil
}
