// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlstore provides a [saves.Backend] on top of a database/sql
// database with a single architectures table. The sqlite and postgres
// packages open the database with their drivers.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
)

// Placeholders is the bind parameter style of a driver.
type Placeholders int

const (
	// Question uses ? for every parameter.
	Question Placeholders = iota

	// Dollar uses $1, $2 and so on.
	Dollar
)

// Store is a SQL [saves.Backend].
type Store struct {
	db *sql.DB
	ph Placeholders
}

const schema = `CREATE TABLE IF NOT EXISTS architectures (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	last_saved BIGINT NOT NULL,
	body TEXT NOT NULL
)`

// New returns a store using the given database, creating the
// architectures table if needed. The store owns the database.
func New(ctx context.Context, db *sql.DB, ph Placeholders) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create architectures table: %w", err)
	}
	return &Store{db: db, ph: ph}, nil
}

// DB returns the database of the store.
func (s *Store) DB() *sql.DB { return s.db }

// bind rewrites ? parameters for the placeholder style of the store.
func (s *Store) bind(q string) string {
	if s.ph == Question {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) List(ctx context.Context) ([]saves.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, last_saved FROM architectures`)
	if err != nil {
		return nil, fmt.Errorf("select architectures: %w", err)
	}
	defer func() { _ = rows.Close() }()
	list := []saves.Summary{}
	for rows.Next() {
		var sum saves.Summary
		var ns int64
		if err := rows.Scan(&sum.ID, &sum.Name, &ns); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		sum.LastSaved = time.Unix(0, ns).UTC()
		list = append(list, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	saves.SortSummaries(list)
	return list, nil
}

func (s *Store) Get(ctx context.Context, id string) (*arch.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT body FROM architectures WHERE id = ?`), id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, saves.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select architecture: %w", err)
	}
	return arch.Decode([]byte(body), arch.JSON)
}

func (s *Store) Put(ctx context.Context, doc *arch.Document) (saves.Summary, error) {
	d, sum := saves.Prepare(doc)
	if err := saves.ValidID(sum.ID); err != nil {
		return saves.Summary{}, err
	}
	b, err := d.Encode()
	if err != nil {
		return saves.Summary{}, err
	}
	_, err = s.db.ExecContext(ctx, s.bind(`INSERT INTO architectures (id, name, last_saved, body) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, last_saved = excluded.last_saved, body = excluded.body`),
		sum.ID, sum.Name, sum.LastSaved.UnixNano(), string(b))
	if err != nil {
		return saves.Summary{}, fmt.Errorf("save architecture: %w", err)
	}
	return sum, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
