// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene translates architecture documents into a live scene:
// it owns the scene context and the Scene Object Registry, builds the
// objects for components, groups and connections, and animates the
// camera, fog and labels.
package scene

import (
	"image/color"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/notify"
	"cogentcore.org/ennoea/render"
)

// SelectedEdgeColor is the edge color of the selection outline.
var SelectedEdgeColor = color.RGBA{255, 0, 0, 255}

// Context is everything that one scene instance owns: the scene graph,
// the compositor with its two outline passes, the clocks that drive
// timers and tweens, the transform gizmo and the object registry.
// There are no package level scene variables, so independent contexts
// can coexist, for example in tests.
type Context struct {
	Scene *render.Scene

	Compositor *render.Compositor

	// HoverPass outlines the objects under the pointer.
	HoverPass *render.OutlinePass

	// SelectedPass outlines the selected objects that are not hovered.
	SelectedPass *render.OutlinePass

	Timers render.Timers

	Tweens render.Tweens

	Gizmo render.Gizmo

	Registry Registry

	// Notify receives user-facing messages such as reference errors.
	Notify notify.Sink

	// Orbit is whether pointer drags orbit the camera.
	// It is disabled while the gizmo is being dragged.
	Orbit bool

	// Text has the current label settings.
	Text arch.Text

	cameraListeners []func()
}

// NewContext returns a new scene context that sends user-facing
// messages to the given sink, or discards them if it is nil.
func NewContext(sink notify.Sink) *Context {
	if sink == nil {
		sink = notify.Discard
	}
	sc := render.NewScene()
	sc.Background = colors.Black
	sc.Fog.Color = colors.Black
	sc.AddLight(render.NewAmbient(1))
	sc.AddLight(render.NewPoint(math32.Vec3(0, 50, 50), 1))
	ctx := &Context{
		Scene:      sc,
		Compositor: render.NewCompositor(sc),
		Notify:     sink,
		Orbit:      true,
		Text:       arch.Text{Scale: 1, Rotate: true},
	}
	ctx.HoverPass = ctx.Compositor.AddPass(render.NewOutlinePass("hover", 10, colors.White, colors.White))
	ctx.SelectedPass = ctx.Compositor.AddPass(render.NewOutlinePass("selected", 10, SelectedEdgeColor, SelectedEdgeColor))
	ctx.Gizmo.OnDraggingChanged = func(dragging bool) {
		ctx.Orbit = !dragging
	}
	return ctx
}

// Camera returns the camera of the scene.
func (ctx *Context) Camera() *render.Camera {
	return &ctx.Scene.Camera
}

// OnCameraChange adds a function to be called after every camera change.
func (ctx *Context) OnCameraChange(fn func()) {
	ctx.cameraListeners = append(ctx.cameraListeners, fn)
}

// CameraChanged must be called after every change to the camera,
// from animation or from orbit input.
func (ctx *Context) CameraChanged() {
	for _, fn := range ctx.cameraListeners {
		fn()
	}
}

// OrbitBy rotates the camera around its target by the given yaw and pitch
// in radians, as orbit input does. It does nothing while orbit is disabled.
func (ctx *Context) OrbitBy(yaw, pitch float32) bool {
	if !ctx.Orbit {
		return false
	}
	cam := ctx.Camera()
	off := cam.Pos.Sub(cam.Target)
	r := off.Length()
	if r == 0 {
		return false
	}
	az := math32.Atan2(off.X, off.Z) + yaw
	el := math32.Clamp(math32.Asin(off.Y/r)+pitch, -math32.Pi/2+.01, math32.Pi/2-.01)
	ce := math32.Cos(el)
	cam.Pos = cam.Target.Add(math32.Vec3(r*ce*math32.Sin(az), r*math32.Sin(el), r*ce*math32.Cos(az)))
	ctx.CameraChanged()
	return true
}

// Advance advances the timers and tweens by dt.
func (ctx *Context) Advance(dt time.Duration) {
	ctx.Timers.Advance(dt)
	ctx.Tweens.Advance(dt)
}

// Render runs the pre-render hooks and renders one frame.
func (ctx *Context) Render() render.Frame {
	return ctx.Compositor.Render()
}
