// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite provides a [saves.Backend] in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/ennoea/saves/sqlstore"
	"github.com/mitchellh/go-homedir"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// New opens the SQLite database at the given path, creating it and
// its directory if needed. A leading ~ is expanded to the home directory.
func New(ctx context.Context, path string) (*sqlstore.Store, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	st, err := sqlstore.New(ctx, db, sqlstore.Question)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}
