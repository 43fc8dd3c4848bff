// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/ennoea/saves/savestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	savestest.Run(t, s)
}

func TestLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")
	s, err := New(dir)
	require.NoError(t, err)
	sum, err := s.Put(context.Background(), savestest.Doc("Layout"))
	require.NoError(t, err)

	info, err := os.ReadFile(filepath.Join(dir, sum.ID, InfoFile))
	require.NoError(t, err)
	assert.Contains(t, string(info), `"lastSaved"`)
	assert.Contains(t, string(info), `"name": "Layout"`)
	_, err = os.Stat(filepath.Join(dir, sum.ID, DocumentFile))
	assert.NoError(t, err)

	// stray entries are ignored
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644))
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sum.ID, list[0].ID)
}
