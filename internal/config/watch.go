// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	// Updates receives the configuration after every successful
	// reload.
	Updates <-chan Config
	// Errors receives reload and watch errors.
	Errors <-chan error

	w    *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the configuration file at path. The
// directory is watched so that editors replacing the file are
// handled.
func Watch(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watching %s: %w", path, err)
	}
	updates := make(chan Config)
	errs := make(chan error)
	cw := &Watcher{
		Updates: updates,
		Errors:  errs,
		w:       w,
		done:    make(chan struct{}),
	}
	go cw.loop(path, updates, errs)
	return cw, nil
}

func (cw *Watcher) loop(path string, updates chan<- Config, errs chan<- error) {
	defer close(updates)
	defer close(errs)
	clean := filepath.Clean(path)
	for {
		select {
		case <-cw.done:
			return
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != clean || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c, err := Load(path)
			if err != nil {
				select {
				case errs <- err:
				case <-cw.done:
					return
				}
				continue
			}
			select {
			case updates <- c:
			case <-cw.done:
				return
			}
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			case <-cw.done:
				return
			}
		}
	}
}

// Close stops the watcher. Updates and Errors are closed shortly
// after.
func (cw *Watcher) Close() error {
	close(cw.done)
	return cw.w.Close()
}
