// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsys provides a [saves.Backend] that stores each document in
// its own directory: {dir}/{id}/saveInfo.json has the summary and
// {dir}/{id}/architecture.json has the document.
package fsys

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"github.com/mitchellh/go-homedir"
)

const (
	// InfoFile is the name of the summary file of a saved document.
	InfoFile = "saveInfo.json"

	// DocumentFile is the name of the document file of a saved document.
	DocumentFile = "architecture.json"
)

// Store is a file system [saves.Backend].
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New returns a store in the given directory, which is created if it
// does not exist. A leading ~ is expanded to the home directory.
func New(dir string) (*Store, error) {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) List(ctx context.Context) ([]saves.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	list := []saves.Summary{}
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dir, e.Name(), InfoFile))
		if err != nil {
			slog.Warn("saves: skipping directory without save info", "dir", e.Name(), "err", err)
			continue
		}
		var sum saves.Summary
		if errors.Log(jsonx.ReadBytes(&sum, b)) != nil {
			continue
		}
		list = append(list, sum)
	}
	saves.SortSummaries(list)
	return list, nil
}

func (s *Store) Get(ctx context.Context, id string) (*arch.Document, error) {
	if saves.ValidID(id) != nil {
		return nil, saves.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(filepath.Join(s.dir, id, DocumentFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, saves.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return arch.Decode(b, arch.JSON)
}

func (s *Store) Put(ctx context.Context, doc *arch.Document) (saves.Summary, error) {
	d, sum := saves.Prepare(doc)
	if err := saves.ValidID(sum.ID); err != nil {
		return saves.Summary{}, err
	}
	db, err := d.Encode()
	if err != nil {
		return saves.Summary{}, err
	}
	ib, err := jsonx.WriteBytesIndent(&sum)
	if err != nil {
		return saves.Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Join(s.dir, sum.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return saves.Summary{}, err
	}
	if err := writeFile(filepath.Join(dir, DocumentFile), db); err != nil {
		return saves.Summary{}, err
	}
	if err := writeFile(filepath.Join(dir, InfoFile), ib); err != nil {
		return saves.Summary{}, err
	}
	return sum, nil
}

func (s *Store) Close() error { return nil }

// writeFile writes through a temporary file, so that readers never
// see a partial file.
func writeFile(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
