// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/saves/fsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, doc *arch.Document) string {
	path := filepath.Join(t.TempDir(), "shop.json")
	require.NoError(t, doc.Save(path))
	return path
}

func shopDoc() *arch.Document {
	doc := arch.New("Shop", "An online shop.")
	a, b := arch.NewComponent("web"), arch.NewComponent("db")
	b.Object.Position = arch.V3(8, 0, 0)
	doc.Components = append(doc.Components, a, b)
	doc.Connections = append(doc.Connections, arch.Connection{Source: "web", Target: "db", Flow: arch.FlowOut, OutRate: 2})
	return doc
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	c := &Config{File: dir, Description: "A new architecture."}
	require.NoError(t, New(c))
	path := filepath.Join(dir, "layout.json")
	doc, err := arch.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "layout", doc.Info.Name)
	assert.NoError(t, doc.Validate())

	assert.ErrorContains(t, New(c), "already exists")
	c.Force = true
	c.Name = "Renamed"
	require.NoError(t, New(c))
	doc, err = arch.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", doc.Info.Name)

	assert.Error(t, New(&Config{}))
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	path := writeDoc(t, shopDoc())
	require.NoError(t, validate(&Config{File: path}, &out))
	assert.Contains(t, out.String(), "valid (2 components, 1 connections, 0 groups)")

	bad := shopDoc()
	bad.Info.Description = ""
	bad.Connections = append(bad.Connections, arch.Connection{Source: "web", Target: "dbb"})
	out.Reset()
	err := validate(&Config{File: writeDoc(t, bad)}, &out)
	assert.ErrorContains(t, err, "1 problems")
	assert.Contains(t, out.String(), "description is empty")
	assert.Contains(t, out.String(), `warning: connection`)
	assert.Contains(t, out.String(), `"db"`)

	out.Reset()
	png := filepath.Join(t.TempDir(), "image.json")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o644))
	assert.Error(t, validate(&Config{File: png}, &out))
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, show(&Config{File: writeDoc(t, shopDoc())}, &out))
	s := out.String()
	assert.Contains(t, s, "Shop (version")
	assert.Contains(t, s, "components 2, connections 1, groups 0")
	assert.Contains(t, s, "2 pickable")
	assert.Contains(t, s, "1 pulses")
	// a buffer is not a terminal, so the document is not colored
	assert.Contains(t, s, `"name": "Shop"`)
	assert.NotContains(t, s, "\x1b[")

	legacy := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{
		"info": {"name": "Old", "description": "Legacy."},
		"applications": [{"name": "shop", "color": "#ff0000", "servers": [{"name": "s1"}]}]
	}`), 0o644))
	out.Reset()
	require.NoError(t, show(&Config{File: legacy}, &out))
	assert.Contains(t, out.String(), "components 2, connections 0, groups 1")

	assert.Error(t, show(&Config{File: filepath.Join(t.TempDir(), "missing.json")}, &out))
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := openBackend(ctx, &Config{Backend: "fs", SaveDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &fsys.Store{}, b)

	b, err = openBackend(ctx, &Config{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &saves.Memory{}, b)

	b, err = openBackend(ctx, &Config{Backend: "sqlite", SQLite: filepath.Join(dir, "ennoea.db")})
	require.NoError(t, err)
	assert.NoError(t, b.Close())

	_, err = openBackend(ctx, &Config{Backend: "s3"})
	assert.ErrorContains(t, err, "bucket")

	_, err = openBackend(ctx, &Config{Backend: "floppy"})
	assert.ErrorContains(t, err, "floppy")
}
