// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/render"
)

// CameraDuration is the duration of camera animations.
const CameraDuration = time.Second

// Names of the camera tweens.
const (
	cameraPosTween    = "camera.position"
	cameraTargetTween = "camera.lookAt"
)

// Animator is the Camera/Fog/Text Animator: it animates the camera,
// sets the fog, and keeps the labels scaled and oriented.
type Animator struct {
	ctx *Context
}

// NewAnimator returns a new animator for the given context. Labels
// are re-oriented after every camera change.
func NewAnimator(ctx *Context) *Animator {
	an := &Animator{ctx: ctx}
	ctx.OnCameraChange(an.OrientLabels)
	return an
}

// ApplyScene applies the scene settings of the given document:
// the camera position and look-at point are animated, and the fog
// and label settings are set directly.
func (an *Animator) ApplyScene(doc *arch.Document) {
	sc := &doc.Scene
	errors.Log(an.SetCameraPosition(sc.Camera.Position.Slice()))
	errors.Log(an.SetCameraLookAt(sc.Camera.Target().Slice()))
	an.SetFog(sc.Fog.Near, sc.Fog.Far)
	an.SetTextScale(sc.Text.Scale)
	an.SetTextRotate(sc.Text.Rotate)
}

// vector returns the vector for the given 3-element slice.
func vector(v []float64) (math32.Vector3, error) {
	av, err := arch.Vec3FromSlice(v)
	if err != nil {
		return math32.Vector3{}, err
	}
	return av.Vector3(), nil
}

// SetCameraPosition animates the camera to the given position. A new
// call cancels any running position animation and starts from the
// current position. An invalid position returns an error and does nothing.
func (an *Animator) SetCameraPosition(pos []float64) error {
	to, err := vector(pos)
	if err != nil {
		return errors.Join(errors.New("invalid camera position"), err)
	}
	cam := an.ctx.Camera()
	an.ctx.Tweens.Start(cameraPosTween, &render.Tween{
		From: cam.Pos, To: to, Duration: CameraDuration, Ease: render.Power1Out,
		Set: func(v math32.Vector3) {
			cam.Pos = v
			an.ctx.CameraChanged()
		},
	})
	return nil
}

// SetCameraLookAt animates the point the camera looks at, the same way
// as [Animator.SetCameraPosition].
func (an *Animator) SetCameraLookAt(pos []float64) error {
	to, err := vector(pos)
	if err != nil {
		return errors.Join(errors.New("invalid camera look-at position"), err)
	}
	cam := an.ctx.Camera()
	an.ctx.Tweens.Start(cameraTargetTween, &render.Tween{
		From: cam.Target, To: to, Duration: CameraDuration, Ease: render.Power1Out,
		Set: func(v math32.Vector3) {
			cam.LookAt(v)
			an.ctx.CameraChanged()
		},
	})
	return nil
}

// CameraPosition returns the current position of the camera.
func (an *Animator) CameraPosition() arch.Vec3 {
	return arch.FromVector3(an.ctx.Camera().Pos)
}

// CameraLookAt returns the current look-at point of the camera.
func (an *Animator) CameraLookAt() arch.Vec3 {
	return arch.FromVector3(an.ctx.Camera().Target)
}

// Animating returns whether a camera animation is running.
func (an *Animator) Animating() bool {
	return an.ctx.Tweens.Get(cameraPosTween) != nil || an.ctx.Tweens.Get(cameraTargetTween) != nil
}

// SetFog sets the fog distances.
func (an *Animator) SetFog(near, far float64) {
	an.ctx.Scene.Fog.Near = float32(near)
	an.ctx.Scene.Fog.Far = float32(far)
}

// SetTextScale sets the scale of every label.
func (an *Animator) SetTextScale(s float64) {
	an.ctx.Text.Scale = s
	an.placeLabels()
}

// SetTextRotate sets whether labels turn to face the camera. Turning it
// off resets every label to the zero rotation.
func (an *Animator) SetTextRotate(rotate bool) {
	an.ctx.Text.Rotate = rotate
	an.OrientLabels()
}

func (an *Animator) placeLabels() {
	rg := &an.ctx.Registry
	cam := an.ctx.Camera().Pos
	for _, lb := range rg.Labels {
		if comp := rg.Component(lb.Name); comp != nil {
			placeLabel(lb, comp, an.ctx.Text, cam)
		}
	}
}

// OrientLabels orients every label according to the text rotation
// setting and the current camera position.
func (an *Animator) OrientLabels() {
	cam := an.ctx.Camera().Pos
	for _, lb := range an.ctx.Registry.Labels {
		orientLabel(lb, an.ctx.Text.Rotate, cam)
	}
}
