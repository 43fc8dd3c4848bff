// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
)

// newPolyhedron returns a polyhedron whose vertices are the given
// directions projected onto a sphere of the given radius.
func newPolyhedron(name string, radius float32, dirs []float32, idx []uint32) *Mesh {
	vtx := make([]math32.Vector3, len(dirs)/3)
	for i := range vtx {
		vtx[i] = math32.Vec3(dirs[i*3], dirs[i*3+1], dirs[i*3+2]).Normal().MulScalar(radius)
	}
	return newMesh(name, vtx, idx)
}

// NewTetrahedron returns a regular tetrahedron inscribed in a sphere of the given radius.
func NewTetrahedron(radius float32) *Mesh {
	return newPolyhedron("tetrahedron", radius,
		[]float32{1, 1, 1, -1, -1, 1, -1, 1, -1, 1, -1, -1},
		[]uint32{2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1})
}

// NewOctahedron returns a regular octahedron inscribed in a sphere of the given radius.
func NewOctahedron(radius float32) *Mesh {
	return newPolyhedron("octahedron", radius,
		[]float32{1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1},
		[]uint32{0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2, 1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2})
}

// NewIcosahedron returns a regular icosahedron inscribed in a sphere of the given radius.
func NewIcosahedron(radius float32) *Mesh {
	t := float32(math32.Phi)
	return newPolyhedron("icosahedron", radius,
		[]float32{-1, t, 0, 1, t, 0, -1, -t, 0, 1, -t, 0,
			0, -1, t, 0, 1, t, 0, -1, -t, 0, 1, -t,
			t, 0, -1, t, 0, 1, -t, 0, -1, -t, 0, 1},
		[]uint32{0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1})
}

// NewDodecahedron returns a regular dodecahedron inscribed in a sphere of the given radius.
func NewDodecahedron(radius float32) *Mesh {
	t := float32(math32.Phi)
	r := 1 / t
	return newPolyhedron("dodecahedron", radius,
		[]float32{-1, -1, -1, -1, -1, 1, -1, 1, -1, -1, 1, 1,
			1, -1, -1, 1, -1, 1, 1, 1, -1, 1, 1, 1,
			0, -r, -t, 0, -r, t, 0, r, -t, 0, r, t,
			-r, -t, 0, -r, t, 0, r, -t, 0, r, t, 0,
			-t, 0, -r, t, 0, -r, -t, 0, r, t, 0, r},
		[]uint32{3, 11, 7, 3, 7, 15, 3, 15, 13,
			7, 19, 17, 7, 17, 6, 7, 6, 15,
			17, 4, 8, 17, 8, 10, 17, 10, 6,
			8, 0, 16, 8, 16, 2, 8, 2, 10,
			0, 12, 1, 0, 1, 18, 0, 18, 16,
			6, 10, 2, 6, 2, 13, 6, 13, 15,
			2, 16, 18, 2, 18, 3, 2, 3, 13,
			18, 1, 9, 18, 9, 11, 18, 11, 3,
			4, 14, 12, 4, 12, 0, 4, 0, 8,
			11, 9, 5, 11, 5, 19, 11, 19, 7,
			19, 5, 14, 19, 14, 4, 19, 4, 17,
			1, 12, 14, 1, 14, 5, 1, 5, 9})
}
