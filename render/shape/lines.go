// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
)

// NewLineStrip returns a line mesh joining each point to the next one.
func NewLineStrip(points []math32.Vector3) *Mesh {
	ms := &Mesh{Name: "lineStrip", Lines: true, Vertex: append([]math32.Vector3(nil), points...)}
	for i := 1; i < len(points); i++ {
		ms.Index = append(ms.Index, uint32(i-1), uint32(i))
	}
	ms.ComputeBBox()
	return ms
}

// NewWireBox returns the 12 edges of a box with the given size,
// centered on 0.
func NewWireBox(size math32.Vector3) *Mesh {
	h := size.DivScalar(2)
	ms := &Mesh{Name: "wireBox", Lines: true}
	ms.Vertex = []math32.Vector3{
		{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z},
	}
	ms.Index = []uint32{
		0, 1, 1, 2, 2, 3, 3, 0, // back
		4, 5, 5, 6, 6, 7, 7, 4, // front
		0, 4, 1, 5, 2, 6, 3, 7, // sides
	}
	ms.ComputeBBox()
	return ms
}

// QuadraticBezier returns segments+1 points along the quadratic Bezier
// curve from p0 to p2 with control point p1.
func QuadraticBezier(p0, p1, p2 math32.Vector3, segments int) []math32.Vector3 {
	pts := make([]math32.Vector3, segments+1)
	for i := range pts {
		t := float32(i) / float32(segments)
		mt := 1 - t
		pts[i] = p0.MulScalar(mt * mt).Add(p1.MulScalar(2 * mt * t)).Add(p2.MulScalar(t * t))
	}
	return pts
}
