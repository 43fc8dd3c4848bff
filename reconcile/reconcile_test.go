// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reconcile

import (
	"testing"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

func (r *recorder) ApplyScene(doc *arch.Document)   { r.calls = append(r.calls, "scene") }
func (r *recorder) ApplyObjects(doc *arch.Document) { r.calls = append(r.calls, "objects") }

func testDoc() *arch.Document {
	doc := arch.New("test", "a test")
	a := arch.NewComponent("A")
	b := arch.NewComponent("B")
	b.Object.Position = arch.V3(10, 0, 0)
	b.Object.Geometry = arch.Sphere
	doc.Components = append(doc.Components, a, b)
	doc.Connections = append(doc.Connections, arch.Connection{Source: "A", Target: "B", Flow: arch.FlowOut, OutRate: 5})
	return doc
}

func TestDiffFirstLoad(t *testing.T) {
	assert.Equal(t, Changes{Scene: true, Objects: true}, Diff(nil, testDoc()))
}

func TestDiffIdentical(t *testing.T) {
	d := testDoc()
	assert.False(t, Diff(d, d).Any())
	assert.False(t, Diff(d, d.Clone()).Any())
}

func TestDiffRegions(t *testing.T) {
	d := testDoc()

	n := d.Clone()
	n.Scene.Camera.Position = arch.V3(1, 2, 3)
	assert.Equal(t, Changes{Scene: true}, Diff(d, n))

	n = d.Clone()
	n.Scene.Fog.Far = 500
	assert.Equal(t, Changes{Scene: true}, Diff(d, n))

	n = d.Clone()
	n.Components[1].Object.Color = "#ff0000"
	assert.Equal(t, Changes{Objects: true}, Diff(d, n))

	n = d.Clone()
	n.Connections[0].OutRate = 6
	assert.Equal(t, Changes{Objects: true}, Diff(d, n))

	n = d.Clone()
	n.Groups = append(n.Groups, arch.Group{Name: "G"})
	assert.Equal(t, Changes{Objects: true}, Diff(d, n))

	n = d.Clone()
	n.Scene.Text.Scale = 2
	assert.Equal(t, Changes{Scene: true, Objects: true}, Diff(d, n))

	// info does not affect the scene at all
	n = d.Clone()
	n.Info.Name = "renamed"
	assert.False(t, Diff(d, n).Any())
}

func TestDiffNestedChange(t *testing.T) {
	d := testDoc()
	d.Groups = []arch.Group{{Name: "G", Components: []string{"A"}}}
	n := d.Clone()
	n.Groups[0].Components = append(n.Groups[0].Components, "B")
	assert.True(t, Diff(d, n).Objects)

	n = d.Clone()
	n.Components[0].Object.Visible = arch.Bool(false)
	assert.True(t, Diff(d, n).Objects)

	// a missing section is different from an empty one
	n = d.Clone()
	n.Groups = nil
	assert.True(t, Diff(d, n).Objects)
}

func TestReconcilerApply(t *testing.T) {
	r := &recorder{}
	rc := New(r)
	d := testDoc()

	ch := rc.Apply(d)
	assert.Equal(t, Changes{Scene: true, Objects: true}, ch)
	assert.Equal(t, []string{"scene", "objects"}, r.calls)

	r.calls = nil
	assert.False(t, rc.Apply(d.Clone()).Any())
	assert.Empty(t, r.calls)

	n := d.Clone()
	n.Scene.Fog.Near = 5
	rc.Apply(n)
	assert.Equal(t, []string{"scene"}, r.calls)

	// mutating the applied document afterwards must not hide a change
	n.Components[0].Name = "changed"
	r.calls = nil
	rc.Apply(n)
	assert.Equal(t, []string{"objects"}, r.calls)

	assert.Equal(t, Stats{Applies: 4, SceneRebuilds: 2, ObjectRebuilds: 2, Skipped: 1}, rc.Stats())

	rc.Reset()
	r.calls = nil
	rc.Apply(n)
	assert.Equal(t, []string{"scene", "objects"}, r.calls)
}

func TestReconcilerSubscriber(t *testing.T) {
	r := &recorder{}
	rc := New(r)
	st := store.New()
	st.Subscribe(rc.Subscriber())

	d := testDoc()
	st.Set(d)
	st.Set(d)
	st.Set(d)
	assert.Equal(t, []string{"scene", "objects"}, r.calls)
	assert.Equal(t, 2, rc.Stats().Skipped)
}
