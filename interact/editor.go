// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"fmt"
	"log/slog"
	"math"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/popup"
	"cogentcore.org/ennoea/render"
	"cogentcore.org/ennoea/scene"
	"cogentcore.org/ennoea/store"
)

// Precision is the number of decimals kept when a transform
// edit is written back into the document.
const Precision = 3

// Round rounds v to [Precision] decimals.
func Round(v float64) float64 {
	p := math.Pow10(Precision)
	return math.Round(v*p) / p
}

func roundVec(v math32.Vector3) arch.Vec3 {
	return arch.V3(Round(float64(v.X)), Round(float64(v.Y)), Round(float64(v.Z)))
}

// ComponentInfo is the content of the information popup of a component.
type ComponentInfo struct {
	Key      string
	Name     string
	Type     string
	Geometry arch.Geometry
	Color    string
	Position arch.Vec3
	Rotation arch.Vec3
	Scale    arch.Vec3

	// Outgoing and Incoming are the labels of the connections
	// with the component as source and as target.
	Outgoing []string
	Incoming []string
}

// NewComponentInfo returns the information about the component of the
// given document with the given identifier.
func NewComponentInfo(doc *arch.Document, key string) (*ComponentInfo, bool) {
	i, ok := doc.FindComponent(key)
	if !ok {
		return nil, false
	}
	c := &doc.Components[i]
	ci := &ComponentInfo{Key: c.Key(), Name: c.Label(), Type: c.Type, Geometry: c.Object.Geometry.Resolved(),
		Color: c.Object.Color, Position: c.Object.Position, Rotation: c.Object.Rotation, Scale: c.Object.Scale}
	for j := range doc.Connections {
		cn := &doc.Connections[j]
		if si, ok := doc.FindComponent(cn.Source); ok && si == i {
			ci.Outgoing = append(ci.Outgoing, cn.Label())
		}
		if ti, ok := doc.FindComponent(cn.Target); ok && ti == i {
			ci.Incoming = append(ci.Incoming, cn.Label())
		}
	}
	return ci, true
}

// Editor runs transform edits of components: it attaches the gizmo of
// the scene to the solid of a component and, when a drag is released,
// writes the new transform back into the document in the store.
// At most one component is edited at a time.
type Editor struct {

	// Parent is the region that popups are shown in.
	Parent math32.Box2

	// OnPopup is called with every popup the editor opens.
	OnPopup func(w *popup.Window)

	ctx   *scene.Context
	store *store.Store
	keys  *KeyStack

	key     string
	keyID   int
	initial render.Pose

	popup    *popup.Window
	popupKey int
}

// NewEditor returns a new editor. The edited solid is re-resolved by
// identifier after every rebuild by the given builder, since rebuilds
// replace every object.
func NewEditor(ctx *scene.Context, bd *scene.Builder, st *store.Store, keys *KeyStack) *Editor {
	ed := &Editor{ctx: ctx, store: st, keys: keys, Parent: math32.B2(0, 0, 1280, 720)}
	ctx.Gizmo.OnMouseUp = ed.commit
	bd.OnBuilt(ed.reattach)
	return ed
}

// Open shows the information popup for the component with the given
// identifier, with Translate, Rotate and Scale actions that begin an edit.
// Any popup opened before is closed.
func (ed *Editor) Open(key string) (*popup.Window, error) {
	ed.ClosePopup()
	doc := ed.store.Get()
	if doc == nil {
		return nil, errors.New("no document")
	}
	ci, ok := NewComponentInfo(doc, key)
	if !ok {
		return nil, fmt.Errorf("component %q not found", key)
	}
	w := popup.New(ed.Parent, ci.Name, ci)
	for _, m := range render.GizmoModesValues() {
		w.AddAction(m.String(), func() {
			errors.Log(ed.Begin(ci.Key, m))
		})
	}
	id := ed.keys.Push(w.HandleKey)
	w.OnClose = func() {
		ed.keys.Remove(id)
		if ed.popup == w {
			ed.popup = nil
		}
	}
	ed.popup, ed.popupKey = w, id
	w.Show()
	if ed.OnPopup != nil {
		ed.OnPopup(w)
	}
	return w, nil
}

// Popup returns the open popup, or nil.
func (ed *Editor) Popup() *popup.Window {
	return ed.popup
}

// ClosePopup closes the open popup, if any.
func (ed *Editor) ClosePopup() {
	if ed.popup != nil {
		ed.popup.Destroy()
	}
}

// Begin starts a transform edit of the component with the given
// identifier in the given mode, canceling any edit in progress.
func (ed *Editor) Begin(key string, mode render.GizmoModes) error {
	ed.Cancel()
	ob := ed.ctx.Registry.Component(key)
	if ob == nil {
		return fmt.Errorf("component %q is not in the scene", key)
	}
	ed.key = key
	ed.initial = ob.Pose
	ed.ctx.Gizmo.Mode = mode
	ed.ctx.Gizmo.Attach(ob)
	ed.keyID = ed.keys.Push(func(k string) bool {
		if k != "Escape" {
			return false
		}
		ed.Cancel()
		return true
	})
	slog.Debug("interact: edit started", "component", key, "mode", mode)
	return nil
}

// Editing returns the identifier of the component being edited, or "".
func (ed *Editor) Editing() string {
	return ed.key
}

// Cancel ends the edit in progress without writing it back,
// restoring the pose the solid had when the edit began.
func (ed *Editor) Cancel() {
	if ed.key == "" {
		return
	}
	if ob := ed.ctx.Gizmo.Object(); ob != nil {
		ob.Pose = ed.initial
	}
	ed.ctx.Gizmo.Detach()
	ed.keys.Remove(ed.keyID)
	slog.Debug("interact: edit canceled", "component", ed.key)
	ed.key = ""
}

// DragStart starts a gizmo drag, returning false if nothing is edited.
func (ed *Editor) DragStart() bool {
	return ed.ctx.Gizmo.BeginDrag()
}

// DragTo moves the active gizmo handle to the given value: a position,
// an Euler rotation in radians or a scale, depending on the mode.
func (ed *Editor) DragTo(v math32.Vector3) {
	ed.ctx.Gizmo.DragTo(v)
}

// DragEnd releases the gizmo, which writes the edit back.
func (ed *Editor) DragEnd() {
	ed.ctx.Gizmo.EndDrag()
}

// commit writes the transform of the edited solid back into the
// component with the same identifier and pushes the document.
func (ed *Editor) commit() {
	ob := ed.ctx.Gizmo.Object()
	if ed.key == "" || ob == nil {
		return
	}
	doc := ed.store.Get()
	if doc == nil {
		return
	}
	i, ok := doc.FindComponent(ed.key)
	if !ok {
		msg := fmt.Sprintf("component %q no longer exists", ed.key)
		slog.Error("interact: " + msg)
		ed.ctx.Notify.Error(msg)
		ed.Cancel()
		return
	}
	obj := &doc.Components[i].Object
	obj.Position = roundVec(ob.Pose.Pos)
	obj.Rotation = roundVec(ob.Pose.EulerDegrees())
	obj.Scale = roundVec(ob.Pose.Scale)
	ed.initial = ob.Pose
	ed.store.Set(doc)
}

// reattach attaches the gizmo to the rebuilt solid of the edited
// component, or cancels the edit if it is gone.
func (ed *Editor) reattach() {
	if ed.key == "" {
		return
	}
	ob := ed.ctx.Registry.Component(ed.key)
	if ob == nil {
		slog.Debug("interact: edited component is gone", "component", ed.key)
		ed.ctx.Gizmo.Detach()
		ed.keys.Remove(ed.keyID)
		ed.key = ""
		return
	}
	if ob != ed.ctx.Gizmo.Object() {
		ed.initial = ob.Pose
		ed.ctx.Gizmo.Attach(ob)
	}
}
