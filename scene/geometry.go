// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/render/shape"
)

// Geometries maps every geometry to the constructor of its mesh,
// with fixed base parameters.
var Geometries = map[arch.Geometry]func() *shape.Mesh{
	arch.Box:          func() *shape.Mesh { return shape.NewBox(1, 1, 1) },
	arch.Capsule:      func() *shape.Mesh { return shape.NewCapsule(.5, 1, 4, 16) },
	arch.Circle:       func() *shape.Mesh { return shape.NewCircle(1, 32) },
	arch.Cone:         func() *shape.Mesh { return shape.NewCone(1, 2, 32) },
	arch.Cylinder:     func() *shape.Mesh { return shape.NewCylinder(1, 1, 2, 32) },
	arch.Dodecahedron: func() *shape.Mesh { return shape.NewDodecahedron(1) },
	arch.Icosahedron:  func() *shape.Mesh { return shape.NewIcosahedron(1) },
	arch.Octahedron:   func() *shape.Mesh { return shape.NewOctahedron(1) },
	arch.Plane:        func() *shape.Mesh { return shape.NewPlane(1, 1) },
	arch.Ring:         func() *shape.Mesh { return shape.NewRing(.5, 1, 32) },
	arch.Sphere:       func() *shape.Mesh { return shape.NewSphere(1, 32, 16) },
	arch.Tetrahedron:  func() *shape.Mesh { return shape.NewTetrahedron(1) },
	arch.Torus:        func() *shape.Mesh { return shape.NewTorus(1, .4, 16, 64) },
	arch.TorusKnot:    func() *shape.Mesh { return shape.NewTorusKnot(1, .4, 128, 16, 2, 3) },
}

// NewGeometry returns a new mesh for the given geometry,
// falling back on a box for unknown or empty values.
func NewGeometry(g arch.Geometry) *shape.Mesh {
	if fn, ok := Geometries[g]; ok {
		return fn()
	}
	if g != "" {
		slog.Debug("scene: unknown geometry, using box", "geometry", g)
	}
	return Geometries[arch.Box]()
}
