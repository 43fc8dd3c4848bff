// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/math32"
)

// Pose is the transform of an object: position, rotation and scale.
// A local point p maps to Pos + Quat * (Scale * p), so scale is applied
// to the axis-aligned shape first, then the rotation, then the position.
type Pose struct {

	// Pos is the position in world coordinates.
	Pos math32.Vector3

	// Scale is the per-axis scale.
	Scale math32.Vector3

	// Rot is the Euler XYZ rotation in radians.
	// Always set it through [Pose.SetEuler] so that Quat stays in sync.
	Rot math32.Vector3

	// Quat is the rotation as a quaternion.
	Quat math32.Quat
}

// Defaults sets the identity transform.
func (ps *Pose) Defaults() {
	ps.Pos = math32.Vector3{}
	ps.Scale = math32.Vec3(1, 1, 1)
	ps.SetEuler(math32.Vector3{})
}

// SetEuler sets the rotation from Euler XYZ angles in radians.
func (ps *Pose) SetEuler(rot math32.Vector3) {
	ps.Rot = rot
	ps.Quat = math32.NewQuatEuler(rot)
}

// SetEulerDegrees sets the rotation from Euler XYZ angles in degrees.
func (ps *Pose) SetEulerDegrees(rot math32.Vector3) {
	ps.SetEuler(rot.MulScalar(math32.DegToRadFactor))
}

// EulerDegrees returns the rotation as Euler XYZ angles in degrees.
func (ps *Pose) EulerDegrees() math32.Vector3 {
	return ps.Rot.MulScalar(math32.RadToDegFactor)
}

// Transform returns the world position of the given local point.
func (ps *Pose) Transform(p math32.Vector3) math32.Vector3 {
	return p.Mul(ps.Scale).MulQuat(ps.Quat).Add(ps.Pos)
}

// inverseQuat returns the inverse of the unit rotation quaternion.
func (ps *Pose) inverseQuat() math32.Quat {
	return math32.Quat{X: -ps.Quat.X, Y: -ps.Quat.Y, Z: -ps.Quat.Z, W: ps.Quat.W}
}

// InverseTransform returns the local position of the given world point.
func (ps *Pose) InverseTransform(p math32.Vector3) math32.Vector3 {
	return p.Sub(ps.Pos).MulQuat(ps.inverseQuat()).Div(ps.Scale)
}

// InverseDirection returns the local direction of the given world
// direction. It is not normalized, so that distances along a ray
// are the same parameter in world and local space.
func (ps *Pose) InverseDirection(d math32.Vector3) math32.Vector3 {
	return d.MulQuat(ps.inverseQuat()).Div(ps.Scale)
}

// TransformBox returns the world bounding box of the given local box.
func (ps *Pose) TransformBox(bb math32.Box3) math32.Box3 {
	wb := math32.B3Empty()
	if bb.IsEmpty() {
		return wb
	}
	for i := range 8 {
		c := bb.Min
		if i&1 != 0 {
			c.X = bb.Max.X
		}
		if i&2 != 0 {
			c.Y = bb.Max.Y
		}
		if i&4 != 0 {
			c.Z = bb.Max.Z
		}
		wb.ExpandByPoint(ps.Transform(c))
	}
	return wb
}
