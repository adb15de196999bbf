// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Load sets the code of s to the contents of the
// file at path.
func (s *Shader) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	return s.SetCode(string(b))
}

// Watch loads the file at path into s and then
// reloads it whenever the file is written, until ctx
// is done.
// Reloading happens on a separate goroutine, so s
// (and the materials that use it) must not be
// accessed concurrently by the caller while Watch is
// active. Code that fails to parse is logged and
// ignored. The returned channel is closed once
// watching stops.
func (s *Shader) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	path = filepath.Clean(path)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	// Editors often replace files rather than write
	// to them, so the directory is watched instead.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("shader: %w", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(path); err != nil {
					slog.Warn("shader reload failed", "path", path, "err", err)
				} else {
					slog.Debug("shader reloaded", "path", path)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("shader watcher", "path", path, "err", err)
			}
		}
	}()
	return done, nil
}
