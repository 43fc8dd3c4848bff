// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/notify"
	"github.com/fsnotify/fsnotify"
)

// DefaultFilename is the file name used by [Session.SaveFile]
// when it is given a directory.
const DefaultFilename = "layout.json"

// WatchDelay is how long [Session.Watch] waits after the last change
// to a file before reloading it.
var WatchDelay = 100 * time.Millisecond

// LoadFile reads the document in the given file and sets it. JSON and
// YAML are chosen by extension and legacy documents are migrated. Any
// failure is reported as an error notification, and the current
// document is kept.
func (s *Session) LoadFile(path string) error {
	doc, err := openFile(path)
	if err != nil {
		notify.Errorf(s.Notify(), "loading %s: %v", filepath.Base(path), err)
		return err
	}
	for _, w := range doc.Warnings() {
		s.Notify().Alert(w)
	}
	s.SetDocument(doc)
	s.Notify().Success("loaded " + filepath.Base(path))
	return nil
}

func openFile(path string) (*arch.Document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > arch.MaxSize {
		return nil, fmt.Errorf("%s is too large: %d bytes", path, fi.Size())
	}
	return arch.Open(path)
}

// SaveFile writes the current document as indented JSON to the given
// path, or to [DefaultFilename] in it if it is a directory or empty.
// It returns the path written.
func (s *Session) SaveFile(path string) (string, error) {
	doc := s.Document()
	if doc == nil {
		return "", errors.New("no document to save")
	}
	if path == "" {
		path = DefaultFilename
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}
	if err := doc.Save(path); err != nil {
		notify.Errorf(s.Notify(), "saving %s: %v", filepath.Base(path), err)
		return "", err
	}
	s.Notify().Success("saved " + filepath.Base(path))
	return path, nil
}

// Watch loads the given file, then reloads it every time it changes,
// until the context is done. The directory of the file is watched, so
// that editors that replace the file are followed. Reloads run on the
// loop through [Session.Do], so Run must be running.
func (s *Session) Watch(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	reload := func() {
		errors.Log(s.Do(ctx, func() { s.LoadFile(path) }))
	}
	reload()

	var mu sync.Mutex
	var timer *time.Timer
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			slog.Debug("session: watched file changed", "file", path, "op", ev.Op)
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(WatchDelay, reload)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("session: watching file", "file", path, "err", err)
		}
	}
}
