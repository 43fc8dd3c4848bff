// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sidebar

import (
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
)

// SceneControls is the content of the scene section.
type SceneControls struct {
	CameraPosition arch.Vec3
	CameraLookAt   arch.Vec3
	FogNear        float64
	FogFar         float64
	TextScale      float64
	TextRotate     bool
}

// SceneController edits the scene settings of the document. Every change
// goes through the store, so the camera animates to new positions.
type SceneController struct {
	section
	camera Camera
}

// NewSceneControls returns a new scene controller subscribed to the given
// store. The camera is used to save the live camera position.
func NewSceneControls(st *store.Store, view View, cam Camera) *SceneController {
	sc := &SceneController{camera: cam}
	sc.init(st, view, SceneSection, sc.Render)
	return sc
}

// Render renders the scene settings of the given document.
func (sc *SceneController) Render(doc *arch.Document) {
	s := &doc.Scene
	sc.view.Render(sc.kind, &SceneControls{
		CameraPosition: s.Camera.Position,
		CameraLookAt:   s.Camera.Target(),
		FogNear:        s.Fog.Near,
		FogFar:         s.Fog.Far,
		TextScale:      s.Text.Scale,
		TextRotate:     s.Text.Rotate,
	})
}

// SetCameraPosition sets one axis of the camera position.
func (sc *SceneController) SetCameraPosition(axis int, v float64) {
	if axis < 0 || axis > 2 {
		return
	}
	sc.edit(func(doc *arch.Document) bool {
		doc.Scene.Camera.Position[axis] = v
		return true
	})
}

// SaveCameraPosition writes the live camera position into the document.
func (sc *SceneController) SaveCameraPosition() {
	pos := sc.camera.CameraPosition()
	sc.edit(func(doc *arch.Document) bool {
		doc.Scene.Camera.Position = pos
		return true
	})
}

// SetFog sets the fog distances.
func (sc *SceneController) SetFog(near, far float64) {
	sc.edit(func(doc *arch.Document) bool {
		doc.Scene.Fog = arch.Fog{Near: near, Far: far}
		return true
	})
}

// SetTextScale sets the scale of the labels.
func (sc *SceneController) SetTextScale(s float64) {
	sc.edit(func(doc *arch.Document) bool {
		doc.Scene.Text.Scale = s
		return true
	})
}

// SetTextRotate sets whether labels face the camera.
func (sc *SceneController) SetTextRotate(rotate bool) {
	sc.edit(func(doc *arch.Document) bool {
		doc.Scene.Text.Rotate = rotate
		return true
	})
}
