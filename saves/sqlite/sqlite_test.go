// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"cogentcore.org/ennoea/saves/savestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "db", "saves.db"))
	require.NoError(t, err)
	defer s.Close()
	savestest.Run(t, s)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")
	s, err := New(ctx, path)
	require.NoError(t, err)
	sum, err := s.Put(ctx, savestest.Doc("Kept"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	doc, err := s.Get(ctx, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", doc.Info.Name)
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, sum.LastSaved.Equal(list[0].LastSaved))
}
