// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
)

// Camera is a perspective camera looking from Pos toward Target.
type Camera struct {

	// Pos is the camera position.
	Pos math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// Up is the up direction of the camera.
	Up math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the width divided by the height of the view.
	Aspect float32

	// Near is the near clipping distance.
	Near float32

	// Far is the far clipping distance.
	Far float32
}

// Defaults sets the default camera parameters.
func (cm *Camera) Defaults() {
	cm.Pos = math32.Vec3(0, 20, 20)
	cm.Target = math32.Vector3{}
	cm.Up = math32.Vec3(0, 1, 0)
	cm.FOV = 45
	cm.Aspect = 1
	cm.Near = .1
	cm.Far = 1000
}

// LookAt points the camera at the given target.
func (cm *Camera) LookAt(target math32.Vector3) {
	cm.Target = target
}

// basis returns the forward, right and up unit vectors of the view.
func (cm *Camera) basis() (fwd, right, up math32.Vector3) {
	fwd = cm.Target.Sub(cm.Pos).Normal()
	if fwd.Length() == 0 {
		fwd = math32.Vec3(0, 0, -1)
	}
	right = fwd.Cross(cm.Up).Normal()
	if right.Length() == 0 {
		// looking straight along the up direction
		right = math32.Vec3(1, 0, 0)
	}
	up = right.Cross(fwd)
	return
}

// Ray returns the ray from the camera through the given point in
// normalized device coordinates, with x and y in [-1, 1] and y up.
func (cm *Camera) Ray(ndc math32.Vector2) math32.Ray {
	fwd, right, up := cm.basis()
	th := math32.Tan(.5 * cm.FOV * math32.DegToRadFactor)
	dir := fwd.Add(right.MulScalar(ndc.X * th * cm.Aspect)).Add(up.MulScalar(ndc.Y * th)).Normal()
	return math32.Ray{Origin: cm.Pos, Dir: dir}
}

// Project returns the normalized device coordinates of the given world
// point, and whether it is in front of the camera.
func (cm *Camera) Project(p math32.Vector3) (math32.Vector2, bool) {
	fwd, right, up := cm.basis()
	d := p.Sub(cm.Pos)
	z := d.Dot(fwd)
	if z <= 0 {
		return math32.Vector2{}, false
	}
	th := math32.Tan(.5 * cm.FOV * math32.DegToRadFactor)
	return math32.Vec2(d.Dot(right)/(z*th*cm.Aspect), d.Dot(up)/(z*th)), true
}

// NDC converts a position in a canvas of the given size, in pixels
// with y down, to normalized device coordinates.
func NDC(x, y, width, height float32) math32.Vector2 {
	return math32.Vec2(2*x/width-1, 1-2*y/height)
}

// Fog is linear distance fog.
type Fog struct {
	Color color.RGBA

	// Near is the distance at which the fog starts.
	Near float32

	// Far is the distance at which the fog is opaque.
	Far float32
}

// Factor returns the fog opacity in [0, 1] at the given distance.
func (fg *Fog) Factor(dist float32) float32 {
	if fg.Far <= fg.Near {
		if dist >= fg.Far {
			return 1
		}
		return 0
	}
	return math32.Clamp((dist-fg.Near)/(fg.Far-fg.Near), 0, 1)
}

// LightKinds are the kinds of lights.
type LightKinds int32 //enums:enum

const (
	// AmbientLight lights every surface equally.
	AmbientLight LightKinds = iota

	// PointLight radiates in every direction from a position.
	PointLight
)

// Light is a light in the scene.
type Light struct {
	Kind LightKinds

	Color color.RGBA

	Intensity float32

	// Pos is the position of a [PointLight].
	Pos math32.Vector3
}

// NewAmbient returns a white ambient light with the given intensity.
func NewAmbient(intensity float32) *Light {
	return &Light{Kind: AmbientLight, Color: colors.White, Intensity: intensity}
}

// NewPoint returns a white point light at the given position.
func NewPoint(pos math32.Vector3, intensity float32) *Light {
	return &Light{Kind: PointLight, Color: colors.White, Intensity: intensity, Pos: pos}
}
