// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/saves/fsys"
	"cogentcore.org/ennoea/saves/postgres"
	"cogentcore.org/ennoea/saves/s3"
	"cogentcore.org/ennoea/saves/sqlite"
)

// openBackend returns the save backend named by the config.
func openBackend(ctx context.Context, c *Config) (saves.Backend, error) {
	var b saves.Backend
	var err error
	switch c.Backend {
	case "", "fs":
		b, err = fsys.New(c.SaveDir)
	case "sqlite":
		b, err = sqlite.New(ctx, c.SQLite)
	case "postgres":
		b, err = postgres.New(ctx, c.Postgres)
	case "s3":
		b, err = s3.New(ctx, s3.Config{
			Bucket:    c.S3Bucket,
			Prefix:    c.S3Prefix,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			PathStyle: c.S3Endpoint != "",
		})
	case "memory":
		b = saves.NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend %q (want fs, sqlite, postgres, s3 or memory)", c.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", c.Backend, err)
	}
	slog.Info("saves: backend opened", "backend", c.Backend)
	return b, nil
}
