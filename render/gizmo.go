// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/math32"
)

// GizmoModes are the editing modes of a [Gizmo].
type GizmoModes int32 //enums:enum -transform lower

const (
	// Translate moves the object.
	Translate GizmoModes = iota

	// Rotate rotates the object.
	Rotate

	// Scale scales the object.
	Scale
)

// Gizmo is an interactive transform control attached to one object at a
// time. Dragging a handle changes the pose of the object directly; the
// gizmo reports the start and end of each drag, and the release of the
// pointer, through its callbacks.
type Gizmo struct {
	Mode GizmoModes

	// OnDraggingChanged is called with true when a drag starts
	// and with false when it ends.
	OnDraggingChanged func(dragging bool)

	// OnMouseUp is called when the pointer is released at the end of a drag,
	// after OnDraggingChanged.
	OnMouseUp func()

	// OnChange is called after every change to the pose of the object.
	OnChange func()

	object   *Object
	dragging bool
}

// Attach attaches the gizmo to the given object, detaching
// it from any previous object first.
func (gz *Gizmo) Attach(ob *Object) {
	gz.Detach()
	gz.object = ob
}

// Detach detaches the gizmo from its object, ending any drag
// without reporting a pointer release.
func (gz *Gizmo) Detach() {
	if gz.dragging {
		gz.setDragging(false)
	}
	gz.object = nil
}

// Object returns the attached object, or nil.
func (gz *Gizmo) Object() *Object {
	return gz.object
}

// Dragging returns whether a drag is in progress.
func (gz *Gizmo) Dragging() bool {
	return gz.dragging
}

func (gz *Gizmo) setDragging(d bool) {
	gz.dragging = d
	if gz.OnDraggingChanged != nil {
		gz.OnDraggingChanged(d)
	}
}

// BeginDrag starts a drag of the attached object.
// It returns false if there is no attached object.
func (gz *Gizmo) BeginDrag() bool {
	if gz.object == nil {
		return false
	}
	if !gz.dragging {
		gz.setDragging(true)
	}
	return true
}

// DragTo sets the value edited by the current mode: the position,
// the Euler rotation in radians or the scale.
func (gz *Gizmo) DragTo(v math32.Vector3) {
	if gz.object == nil || !gz.dragging {
		return
	}
	ps := &gz.object.Pose
	switch gz.Mode {
	case Translate:
		ps.Pos = v
	case Rotate:
		ps.SetEuler(v)
	case Scale:
		ps.Scale = v
	}
	if gz.OnChange != nil {
		gz.OnChange()
	}
}

// EndDrag ends the current drag and reports the pointer release.
func (gz *Gizmo) EndDrag() {
	if !gz.dragging {
		return
	}
	gz.setDragging(false)
	if gz.OnMouseUp != nil {
		gz.OnMouseUp()
	}
}
