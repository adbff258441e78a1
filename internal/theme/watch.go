// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dotctl/dotctl/internal/log"
)

// DefaultDebounce collapses the burst of events an editor or an atomic
// rename produces into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange when a target's current theme file changes.
type Watcher struct {
	targets  []Target
	debounce time.Duration
	onChange func(Target)
	fs       *fsnotify.Watcher
}

// NewWatcher starts watching the directories holding each target's current
// file. Directories are watched rather than files so atomic replacements are
// seen.
func NewWatcher(targets []Target, debounce time.Duration, onChange func(Target)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := map[string]bool{}
	for _, t := range targets {
		dir := filepath.Dir(t.Current)
		if watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			log.Warnf("cannot watch %s for %s: %v", dir, t.Name, err)
			continue
		}
		watched[dir] = true
	}
	if len(watched) == 0 {
		fw.Close()
		return nil, errors.New("no theme directories could be watched")
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{targets: targets, debounce: debounce, onChange: onChange, fs: fw}, nil
}

// Run dispatches change events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	fire := make(chan Target)
	pending := map[string]*time.Timer{}
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			for _, t := range w.targets {
				if filepath.Clean(ev.Name) != filepath.Clean(t.Current) {
					continue
				}
				log.Debugf("theme change: target=%s op=%s", t.Name, ev.Op)
				if timer, ok := pending[t.Name]; ok {
					timer.Stop()
				}
				target := t
				pending[t.Name] = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- target:
					case <-ctx.Done():
					}
				})
			}

		case t := <-fire:
			delete(pending, t.Name)
			w.onChange(t)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warnf("theme watcher: %v", err)
		}
	}
}
