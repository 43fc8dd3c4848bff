// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides pure constructors for the meshes used by the
// scene: the primitive solids, text slabs, line strips and wire boxes.
// Meshes are plain vertex and index arrays in local coordinates,
// typically centered around 0.
package shape

import (
	"cogentcore.org/core/math32"
)

// Mesh is a set of vertices joined by triangles or, if Lines is set,
// by line segments.
type Mesh struct {

	// Name is the kind of shape, for example "box".
	Name string

	// Vertex has the vertex positions in local coordinates.
	Vertex []math32.Vector3

	// Index has 3 vertex indexes per triangle,
	// or 2 per segment if Lines is set.
	Index []uint32

	// Lines is whether the mesh is drawn as line segments.
	Lines bool

	// BBox is the bounding box in local coordinates.
	// It is updated by [Mesh.ComputeBBox].
	BBox math32.Box3
}

// NTriangles returns the number of triangles, which is 0 for line meshes.
func (ms *Mesh) NTriangles() int {
	if ms.Lines {
		return 0
	}
	return len(ms.Index) / 3
}

// Triangle returns the vertices of the triangle at the given index.
func (ms *Mesh) Triangle(i int) (a, b, c math32.Vector3) {
	i *= 3
	return ms.Vertex[ms.Index[i]], ms.Vertex[ms.Index[i+1]], ms.Vertex[ms.Index[i+2]]
}

// NSegments returns the number of line segments, which is 0 for triangle meshes.
func (ms *Mesh) NSegments() int {
	if !ms.Lines {
		return 0
	}
	return len(ms.Index) / 2
}

// ComputeBBox updates the bounding box from the vertices.
func (ms *Mesh) ComputeBBox() {
	ms.BBox = BBoxFromVertices(ms.Vertex)
}

// Translate moves every vertex by the given offset.
func (ms *Mesh) Translate(off math32.Vector3) {
	for i := range ms.Vertex {
		ms.Vertex[i] = ms.Vertex[i].Add(off)
	}
	ms.ComputeBBox()
}

// Center translates the mesh so that its bounding box is centered on 0.
func (ms *Mesh) Center() {
	ms.Translate(ms.BBox.Center().Negate())
}

// BBoxFromVertices returns the bounding box of the given points.
func BBoxFromVertices(vtx []math32.Vector3) math32.Box3 {
	bb := math32.B3Empty()
	for _, v := range vtx {
		bb.ExpandByPoint(v)
	}
	return bb
}

// newMesh returns a triangle mesh with its bounding box computed.
func newMesh(name string, vtx []math32.Vector3, idx []uint32) *Mesh {
	ms := &Mesh{Name: name, Vertex: vtx, Index: idx}
	ms.ComputeBBox()
	return ms
}

// arrays are the flat vertex data filled by the gpu shape constructors.
type arrays struct {
	vertex, normal, texcoord math32.ArrayF32
	index                    math32.ArrayU32
}

func newArrays(nVertex, nIndex int) *arrays {
	return &arrays{
		vertex:   make(math32.ArrayF32, nVertex*3),
		normal:   make(math32.ArrayF32, nVertex*3),
		texcoord: make(math32.ArrayF32, nVertex*2),
		index:    make(math32.ArrayU32, nIndex),
	}
}

// mesh returns a triangle mesh with the vertices and indexes of the arrays.
func (a *arrays) mesh(name string) *Mesh {
	vtx := make([]math32.Vector3, len(a.vertex)/3)
	for i := range vtx {
		vtx[i] = math32.Vec3(a.vertex[i*3], a.vertex[i*3+1], a.vertex[i*3+2])
	}
	return newMesh(name, vtx, []uint32(a.index))
}

// grid returns a mesh made of a regular grid of (us+1) x (vs+1) vertices,
// with positions given by the function of u and v, both in [0, 1].
// Each grid cell is split into two triangles. Grids are used for every
// curved surface: surfaces of revolution, tori and flat discs.
func grid(name string, us, vs int, f func(u, v float32) math32.Vector3) *Mesh {
	vtx := make([]math32.Vector3, 0, (us+1)*(vs+1))
	for j := 0; j <= vs; j++ {
		v := float32(j) / float32(vs)
		for i := 0; i <= us; i++ {
			u := float32(i) / float32(us)
			vtx = append(vtx, f(u, v))
		}
	}
	idx := make([]uint32, 0, us*vs*6)
	row := uint32(us + 1)
	for j := 0; j < vs; j++ {
		for i := 0; i < us; i++ {
			a := uint32(j)*row + uint32(i)
			b := a + 1
			c := a + row
			d := c + 1
			idx = append(idx, a, c, b, b, c, d)
		}
	}
	return newMesh(name, vtx, idx)
}
