// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func assertBox(t *testing.T, want, got math32.Box3) {
	t.Helper()
	assert.InDelta(t, want.Min.X, got.Min.X, 1e-4)
	assert.InDelta(t, want.Min.Y, got.Min.Y, 1e-4)
	assert.InDelta(t, want.Min.Z, got.Min.Z, 1e-4)
	assert.InDelta(t, want.Max.X, got.Max.X, 1e-4)
	assert.InDelta(t, want.Max.Y, got.Max.Y, 1e-4)
	assert.InDelta(t, want.Max.Z, got.Max.Z, 1e-4)
}

func TestBox(t *testing.T) {
	ms := NewBox(2, 4, 6)
	assert.Equal(t, 12, ms.NTriangles())
	// 4 vertices per face, so each face has its own normals
	assert.Len(t, ms.Vertex, 24)
	assertBox(t, math32.B3(-1, -2, -3, 1, 2, 3), ms.BBox)
}

func TestSolidBounds(t *testing.T) {
	assertBox(t, math32.B3(-1, -1, -1, 1, 1, 1), NewSphere(1, 32, 16).BBox)
	assertBox(t, math32.B3(-1, -1, -1, 1, 1, 1), NewCylinder(1, 1, 2, 32).BBox)
	assertBox(t, math32.B3(-1, -1, -1, 1, 1, 1), NewCone(1, 2, 32).BBox)
	assertBox(t, math32.B3(-.5, -1, -.5, .5, 1, .5), NewCapsule(.5, 1, 4, 16).BBox)
	assertBox(t, math32.B3(-.5, -.5, 0, .5, .5, 0), NewPlane(1, 1).BBox)
	assertBox(t, math32.B3(-1, -1, 0, 1, 1, 0), NewCircle(1, 32).BBox)
	assertBox(t, math32.B3(-1.4, -1.4, -.4, 1.4, 1.4, .4), NewTorus(1, .4, 16, 64).BBox)
	for _, ms := range []*Mesh{NewTetrahedron(1), NewOctahedron(1), NewIcosahedron(1), NewDodecahedron(1)} {
		for _, v := range ms.Vertex {
			assert.InDelta(t, 1, v.Length(), 1e-5, ms.Name)
		}
		for i := range ms.Index {
			assert.Less(t, int(ms.Index[i]), len(ms.Vertex), ms.Name)
		}
	}
	assert.Equal(t, 4, NewTetrahedron(1).NTriangles())
	assert.Equal(t, 8, NewOctahedron(1).NTriangles())
	assert.Equal(t, 20, NewIcosahedron(1).NTriangles())
	assert.Equal(t, 36, NewDodecahedron(1).NTriangles())
}

func TestSolidTriangles(t *testing.T) {
	for _, ms := range []*Mesh{NewBox(1, 1, 1), NewPlane(1, 1), NewSphere(1, 8, 4), NewCylinder(1, 1, 2, 8),
		NewCone(1, 2, 8), NewCapsule(.5, 1, 4, 8), NewTorus(1, .4, 8, 8)} {
		assert.Greater(t, ms.NTriangles(), 0, ms.Name)
		assert.Zero(t, len(ms.Index)%3, ms.Name)
		for _, i := range ms.Index {
			assert.Less(t, int(i), len(ms.Vertex), ms.Name)
		}
	}
	assert.Equal(t, 2, NewPlane(1, 1).NTriangles())
	assert.Equal(t, 8*8*2, NewTorus(1, .4, 8, 8).NTriangles())
}

func TestTorusKnot(t *testing.T) {
	ms := NewTorusKnot(1, .4, 64, 8, 2, 3)
	assert.Equal(t, "torusKnot", ms.Name)
	assert.Equal(t, 64*8*2, ms.NTriangles())
	assert.False(t, ms.BBox.IsEmpty())
	assert.Less(t, ms.BBox.Size().X, float32(4))
}

func TestLines(t *testing.T) {
	pts := QuadraticBezier(math32.Vec3(0, 0, 0), math32.Vec3(5, -2, 0), math32.Vec3(10, 0, 0), 50)
	assert.Len(t, pts, 51)
	assert.Equal(t, math32.Vec3(0, 0, 0), pts[0])
	assert.Equal(t, math32.Vec3(10, 0, 0), pts[50])
	assert.InDelta(t, -1, pts[25].Y, 1e-5)

	ls := NewLineStrip(pts)
	assert.True(t, ls.Lines)
	assert.Equal(t, 50, ls.NSegments())
	assert.Equal(t, 0, ls.NTriangles())

	wb := NewWireBox(math32.Vec3(2, 2, 2))
	assert.Equal(t, 12, wb.NSegments())
	assertBox(t, math32.B3(-1, -1, -1, 1, 1, 1), wb.BBox)
}

func TestText(t *testing.T) {
	assert.Greater(t, TextWidth("server"), TextWidth("db"))
	assert.Equal(t, float32(0), TextWidth(""))

	ms := NewText("hello", 1)
	assert.InDelta(t, 0, ms.BBox.Min.X, 1e-5)
	assert.InDelta(t, 1, ms.BBox.Max.Y, 1e-5)
	ms.Center()
	c := ms.BBox.Center()
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
	assert.InDelta(t, 0, c.Z, 1e-5)
}
