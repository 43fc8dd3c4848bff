// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postgres provides a [saves.Backend] in a Postgres database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cogentcore.org/ennoea/saves/sqlstore"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// DefaultDSN is used when no data source name is given.
const DefaultDSN = "postgres://localhost/ennoea?sslmode=disable"

// New connects to the Postgres database with the given data source name.
func New(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	st, err := sqlstore.New(ctx, db, sqlstore.Dollar)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}
