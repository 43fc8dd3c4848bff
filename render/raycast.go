// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"sort"

	"cogentcore.org/core/math32"
)

// Hit is an intersection of a ray with the surface of an object.
type Hit struct {
	Object *Object

	// Point is the intersection point in world coordinates.
	Point math32.Vector3

	// Distance is the distance from the ray origin to Point.
	Distance float32
}

// Raycaster intersects a ray with the surfaces of objects.
type Raycaster struct {
	Ray math32.Ray
}

// NewRaycaster returns a raycaster for the ray from origin toward dir.
func NewRaycaster(origin, dir math32.Vector3) *Raycaster {
	return &Raycaster{Ray: math32.Ray{Origin: origin, Dir: dir.Normal()}}
}

// SetFromCamera sets the ray from the camera through the given point
// in normalized device coordinates.
func (rc *Raycaster) SetFromCamera(ndc math32.Vector2, cam *Camera) {
	rc.Ray = cam.Ray(ndc)
}

// Intersect returns the hits of the ray with the given objects, nearest
// first, with at most one hit per object. Invisible objects and line
// meshes are never hit. The world bounding box of each object is tested
// first, and only then the triangles of its mesh.
func (rc *Raycaster) Intersect(objs ...*Object) []Hit {
	var hits []Hit
	for _, ob := range objs {
		if h, ok := rc.IntersectObject(ob); ok {
			hits = append(hits, h)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// IntersectObject returns the nearest hit of the ray with the given object.
func (rc *Raycaster) IntersectObject(ob *Object) (Hit, bool) {
	if ob == nil || !ob.Visible || ob.Mesh == nil || ob.Mesh.Lines {
		return Hit{}, false
	}
	if _, ok := rc.Ray.IntersectBox(ob.WorldBBox()); !ok {
		return Hit{}, false
	}
	sc := ob.Pose.Scale
	if sc.X == 0 || sc.Y == 0 || sc.Z == 0 {
		return Hit{}, false
	}
	org := ob.Pose.InverseTransform(rc.Ray.Origin)
	dir := ob.Pose.InverseDirection(rc.Ray.Dir)
	best := math32.Infinity
	ms := ob.Mesh
	for i := range ms.NTriangles() {
		a, b, c := ms.Triangle(i)
		if t, ok := intersectTriangle(org, dir, a, b, c); ok && t < best {
			best = t
		}
	}
	if best == math32.Infinity {
		return Hit{}, false
	}
	pt := rc.Ray.Origin.Add(rc.Ray.Dir.MulScalar(best))
	return Hit{Object: ob, Point: pt, Distance: best * rc.Ray.Dir.Length()}, true
}

// intersectTriangle returns the ray parameter t of the intersection of
// the ray org + t*dir with the triangle abc, from either side.
func intersectTriangle(org, dir, a, b, c math32.Vector3) (float32, bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := org.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
