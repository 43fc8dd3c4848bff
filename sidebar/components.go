// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sidebar

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
)

// DarkLuma is the luma below which a color is dark,
// so its title is shown in a light color.
const DarkLuma = 60

// JumpOffset is added to the position of a component to get
// the camera position of the jump-to action.
var JumpOffset = arch.V3(0, 0, 10)

// ComponentRow is a row of the components section.
type ComponentRow struct {
	Key      string
	Name     string
	Color    string
	Dark     bool
	Visible  bool
	Geometry arch.Geometry
	Position arch.Vec3
	Rotation arch.Vec3
	Scale    arch.Vec3

	// Update changes a copy of the component with fn
	// and pushes the document with it.
	Update func(fn func(c *arch.Component))

	// JumpTo moves the camera in front of the component.
	JumpTo func()

	// Delete removes the component from the document.
	Delete func()
}

func (r *ComponentRow) SetName(name string) {
	r.Update(func(c *arch.Component) { c.Name = name })
}

func (r *ComponentRow) SetColor(color string) {
	r.Update(func(c *arch.Component) { c.Object.Color = color })
}

func (r *ComponentRow) SetVisible(v bool) {
	r.Update(func(c *arch.Component) { c.Object.Visible = arch.Bool(v) })
}

func (r *ComponentRow) SetGeometry(g arch.Geometry) {
	r.Update(func(c *arch.Component) { c.Object.Geometry = g })
}

// SetPosition sets one axis of the position.
func (r *ComponentRow) SetPosition(axis int, v float64) {
	r.Update(func(c *arch.Component) { c.Object.Position[axis%3] = v })
}

// SetRotation sets one axis of the rotation, in degrees.
func (r *ComponentRow) SetRotation(axis int, v float64) {
	r.Update(func(c *arch.Component) { c.Object.Rotation[axis%3] = v })
}

// SetScale sets one axis of the scale.
func (r *ComponentRow) SetScale(axis int, v float64) {
	r.Update(func(c *arch.Component) { c.Object.Scale[axis%3] = v })
}

// ComponentsController renders the components of the document as rows.
type ComponentsController struct {
	section
	camera Camera
}

// NewComponents returns a new components controller subscribed
// to the given store.
func NewComponents(st *store.Store, view View, cam Camera) *ComponentsController {
	cc := &ComponentsController{camera: cam}
	cc.init(st, view, ComponentsSection, cc.Render)
	return cc
}

// Render renders the components of the given document
// whose name matches the filter.
func (cc *ComponentsController) Render(doc *arch.Document) {
	if doc.Components == nil {
		slog.Error("sidebar: document has no components section")
		cc.view.Render(cc.kind, []*ComponentRow(nil))
		return
	}
	rows := []*ComponentRow{}
	for i := range doc.Components {
		c := &doc.Components[i]
		if !Matches(cc.filter, c.Label()) {
			continue
		}
		obj := &c.Object
		color := obj.Color
		if color == "" {
			color = "#ffffff"
		}
		key, pos := c.Key(), obj.Position
		l := arch.Luma(color)
		rows = append(rows, &ComponentRow{
			Key: key, Name: c.Label(), Color: color,
			Dark:     l >= 0 && l < DarkLuma,
			Visible:  obj.IsVisible(),
			Geometry: obj.Geometry.Resolved(),
			Position: obj.Position, Rotation: obj.Rotation, Scale: obj.Scale,
			Update: func(fn func(c *arch.Component)) { cc.update(i, key, fn) },
			JumpTo: func() { cc.jumpTo(pos) },
			Delete: func() { cc.Delete(key) },
		})
	}
	cc.view.Render(cc.kind, rows)
}

// update applies fn to a copy of the component at index i,
// if it still has the given identifier, and pushes the document.
func (cc *ComponentsController) update(i int, key string, fn func(c *arch.Component)) {
	cc.edit(func(doc *arch.Document) bool {
		if i >= len(doc.Components) || doc.Components[i].Key() != key {
			slog.Error("sidebar: component changed since it was rendered", "component", key)
			return false
		}
		c := copyOf(&doc.Components[i])
		fn(c)
		doc.Components[i] = *c
		return true
	})
}

func (cc *ComponentsController) jumpTo(pos arch.Vec3) {
	cam := arch.V3(pos[0]+JumpOffset[0], pos[1]+JumpOffset[1], pos[2]+JumpOffset[2])
	errors.Log(cc.camera.SetCameraPosition(cam.Slice()))
	errors.Log(cc.camera.SetCameraLookAt(pos.Slice()))
}

// Create adds a new component with the creation defaults and returns
// its identifier, which is unique in the document.
func (cc *ComponentsController) Create() string {
	var key string
	cc.edit(func(doc *arch.Document) bool {
		key = UniqueName("component", doc.ComponentKeys())
		doc.Components = append(doc.Components, arch.NewComponent(key))
		return true
	})
	return key
}

// Delete removes the component with the given identifier.
// References to it are left dangling.
func (cc *ComponentsController) Delete(key string) {
	cc.edit(func(doc *arch.Document) bool {
		i, ok := doc.FindComponent(key)
		if !ok {
			return false
		}
		doc.Components = slices.Delete(doc.Components, i, i+1)
		return true
	})
}

// UniqueName returns the first of base, base-2, base-3 and so on
// that is not in names.
func UniqueName(base string, names []string) string {
	name := base
	for n := 2; slices.Contains(names, name); n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	return name
}
