// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package savestest provides a shared test of [saves.Backend]
// implementations.
package savestest

import (
	"context"
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Doc returns a small document for saving.
func Doc(name string) *arch.Document {
	doc := arch.New(name, "saved by the backend test")
	web := arch.NewComponent("web")
	db := arch.NewComponent("db")
	db.Object.Position = arch.V3(4, 0, 0)
	doc.Components = append(doc.Components, web, db)
	doc.Connections = append(doc.Connections, arch.Connection{Source: "web", Target: "db", Flow: arch.FlowBi})
	doc.Groups = append(doc.Groups, arch.Group{Name: "all", Components: []string{"web", "db"}})
	return doc
}

// Run tests the list, get and put operations of the given empty backend.
func Run(t *testing.T, b saves.Backend) {
	ctx := context.Background()

	list, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = b.Get(ctx, "missing")
	assert.True(t, errors.Is(err, saves.ErrNotFound), "got %v", err)

	first := Doc("First")
	sum, err := b.Put(ctx, first)
	require.NoError(t, err)
	assert.NotEmpty(t, sum.ID)
	assert.Equal(t, "First", sum.Name)
	assert.False(t, sum.LastSaved.IsZero())
	assert.Empty(t, first.Info.ID, "the saved document is not modified")

	got, err := b.Get(ctx, sum.ID)
	require.NoError(t, err)
	want := first.Clone()
	want.Info.ID = sum.ID
	assert.Equal(t, want, got)

	// saving with the same id replaces the document
	got.Info.Name = "Renamed"
	got.Components = got.Components[:1]
	resum, err := b.Put(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, sum.ID, resum.ID)
	again, err := b.Get(ctx, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Info.Name)
	assert.Len(t, again.Components, 1)

	second, err := b.Put(ctx, Doc("Second"))
	require.NoError(t, err)
	assert.NotEqual(t, sum.ID, second.ID)

	list, err = b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := map[string]string{}
	for _, s := range list {
		names[s.ID] = s.Name
	}
	assert.Equal(t, map[string]string{sum.ID: "Renamed", second.ID: "Second"}, names)
	assert.False(t, list[0].LastSaved.Before(list[1].LastSaved))

	withID := Doc("Chosen")
	withID.Info.ID = "chosen-id"
	cs, err := b.Put(ctx, withID)
	require.NoError(t, err)
	assert.Equal(t, "chosen-id", cs.ID)

	bad := Doc("Bad")
	bad.Info.ID = "../escape"
	_, err = b.Put(ctx, bad)
	assert.Error(t, err)
}
