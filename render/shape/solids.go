// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	gshape "cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"
)

// NewBox returns a box with the given size along each dimension.
func NewBox(width, height, depth float32) *Mesh {
	segs := math32.Vector3i{X: 1, Y: 1, Z: 1}
	nv, ni := gshape.BoxN(segs)
	a := newArrays(nv, ni)
	gshape.SetBox(a.vertex, a.normal, a.texcoord, a.index, 0, 0, math32.Vec3(width, height, depth), segs, math32.Vector3{})
	return a.mesh("box")
}

// NewPlane returns a flat rectangle in the XY plane, facing +Z.
func NewPlane(width, height float32) *Mesh {
	nv, ni := gshape.PlaneN(1, 1)
	a := newArrays(nv, ni)
	gshape.SetPlane(a.vertex, a.normal, a.texcoord, a.index, 0, 0, math32.X, math32.Y, 1, -1, width, height, -width/2, -height/2, 0, 1, 1, math32.Vector3{})
	return a.mesh("plane")
}

// NewCircle returns a flat disc in the XY plane.
func NewCircle(radius float32, segments int) *Mesh {
	return NewRing(0, radius, segments, "circle")
}

// NewRing returns a flat annulus in the XY plane between the
// given inner and outer radii. The name defaults to "ring".
func NewRing(inner, outer float32, segments int, name ...string) *Mesh {
	nm := "ring"
	if len(name) > 0 {
		nm = name[0]
	}
	return grid(nm, segments, 1, func(u, v float32) math32.Vector3 {
		s, c := math32.Sincos(u * 2 * math32.Pi)
		r := math32.Lerp(inner, outer, v)
		return math32.Vec3(r*c, r*s, 0)
	})
}

// NewCylinder returns a closed cylinder along the Y axis with the given
// top and bottom radii, centered on 0.
func NewCylinder(top, bottom, height float32, segments int) *Mesh {
	nv, ni := gshape.CylinderSectorN(segments, 1, true, true)
	a := newArrays(nv, ni)
	gshape.SetCylinderSector(a.vertex, a.normal, a.texcoord, a.index, 0, 0, height, top, bottom, segments, 1, 0, 360, true, true, math32.Vector3{})
	return a.mesh("cylinder")
}

// NewCone returns a closed cone along the Y axis with its apex at the top.
func NewCone(radius, height float32, segments int) *Mesh {
	ms := NewCylinder(0, radius, height, segments)
	ms.Name = "cone"
	return ms
}

// NewSphere returns a sphere made of the given number of
// longitude and latitude segments.
func NewSphere(radius float32, segments, rings int) *Mesh {
	nv, ni := gshape.SphereSectorN(segments, rings, 0, 180)
	a := newArrays(nv, ni)
	gshape.SetSphereSector(a.vertex, a.normal, a.texcoord, a.index, 0, 0, radius, segments, rings, 0, 360, 0, 180, math32.Vector3{})
	return a.mesh("sphere")
}

// NewCapsule returns an open cylinder of the given length capped by two
// hemispheres, along the Y axis.
func NewCapsule(radius, length float32, capSegments, segments int) *Mesh {
	h := length / 2
	cv, ci := gshape.CylinderSectorN(segments, 1, false, false)
	sv, si := gshape.SphereSectorN(segments, capSegments, 0, 90)
	a := newArrays(cv+2*sv, ci+2*si)
	gshape.SetCylinderSector(a.vertex, a.normal, a.texcoord, a.index, 0, 0, length, radius, radius, segments, 1, 0, 360, false, false, math32.Vector3{})
	gshape.SetSphereSector(a.vertex, a.normal, a.texcoord, a.index, cv, ci, radius, segments, capSegments, 0, 360, 0, 90, math32.Vec3(0, h, 0))
	gshape.SetSphereSector(a.vertex, a.normal, a.texcoord, a.index, cv+sv, ci+si, radius, segments, capSegments, 0, 360, 90, 90, math32.Vec3(0, -h, 0))
	return a.mesh("capsule")
}

// NewTorus returns a torus in the XY plane with the given radius
// from the center to the middle of the tube.
func NewTorus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	nv, ni := gshape.TorusSectorN(radialSegments, tubularSegments)
	a := newArrays(nv, ni)
	gshape.SetTorusSector(a.vertex, a.normal, a.texcoord, a.index, 0, 0, radius, tube, radialSegments, tubularSegments, 0, 360, math32.Vector3{})
	return a.mesh("torus")
}

// NewTorusKnot returns a tube following a (p, q) torus knot.
func NewTorusKnot(radius, tube float32, tubularSegments, radialSegments, p, q int) *Mesh {
	pf, qf := float32(p), float32(q)
	curve := func(u float32) math32.Vector3 {
		s, c := math32.Sincos(u)
		qs, qc := math32.Sincos(qf / pf * u)
		return math32.Vec3(radius*(2+qc)*.5*c, radius*(2+qc)*.5*s, radius*qs*.5)
	}
	return grid("torusKnot", tubularSegments, radialSegments, func(u, v float32) math32.Vector3 {
		t := u * pf * 2 * math32.Pi
		p1 := curve(t)
		p2 := curve(t + .01)
		tan := p2.Sub(p1)
		n := p2.Add(p1)
		b := tan.Cross(n).Normal()
		n = b.Cross(tan).Normal()
		vs, vc := math32.Sincos(v * 2 * math32.Pi)
		return p1.Add(n.MulScalar(-tube * vc)).Add(b.MulScalar(tube * vs))
	})
}
