// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact provides pointer picking, selection with outline
// highlighting, transform editing of components and key routing.
package interact

import (
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/render"
	"cogentcore.org/ennoea/scene"
)

// Picker maintains the hover and selection sets of a scene from pointer
// input, and the outline sets derived from them before every frame.
type Picker struct {
	ctx *scene.Context
	rc  render.Raycaster

	// OnComponentClick is called with the identifier of the nearest
	// component under the pointer when it is clicked.
	OnComponentClick func(key string)
}

// NewPicker returns a new picker for the given context. Its outline
// accounting runs before every frame rendered by the context.
func NewPicker(ctx *scene.Context) *Picker {
	pk := &Picker{ctx: ctx}
	ctx.Compositor.OnBeforeRender(pk.BeforeRender)
	return pk
}

// PointerMove replaces the hover set with the pickable objects under the
// given canvas position, nearest first.
func (pk *Picker) PointerMove(x, y, width, height float32) {
	pk.PointerMoveNDC(render.NDC(x, y, width, height))
}

// PointerMoveNDC is [Picker.PointerMove] in normalized device coordinates.
func (pk *Picker) PointerMoveNDC(ndc math32.Vector2) {
	rg := &pk.ctx.Registry
	pk.rc.SetFromCamera(ndc, pk.ctx.Camera())
	hits := pk.rc.Intersect(rg.Pickable...)
	hover := make([]*render.Object, len(hits))
	for i, h := range hits {
		hover[i] = h.Object
	}
	rg.Hover = hover
}

// PointerLeave clears the hover set.
func (pk *Picker) PointerLeave() {
	pk.ctx.Registry.Hover = nil
}

// Click replaces the selection set with the hover set. If anything is
// hovered, OnComponentClick is called for the nearest component.
func (pk *Picker) Click() {
	rg := &pk.ctx.Registry
	rg.Selected = slices.Clone(rg.Hover)
	if len(rg.Hover) == 0 || pk.OnComponentClick == nil {
		return
	}
	ob := rg.Hover[0]
	if rg.Component(ob.Name) == ob {
		pk.OnComponentClick(ob.Name)
	}
}

// HoverKeys returns the identifiers of the hovered objects.
func (pk *Picker) HoverKeys() []string {
	return scene.Names(pk.ctx.Registry.Hover)
}

// SelectedKeys returns the identifiers of the selected objects.
func (pk *Picker) SelectedKeys() []string {
	return scene.Names(pk.ctx.Registry.Selected)
}

// BeforeRender recomputes the outline sets: hovered objects are outlined
// as hovered, and selected objects that are not hovered as selected,
// so no object is ever in both.
func (pk *Picker) BeforeRender() {
	rg := &pk.ctx.Registry
	rg.HoverOutlined = slices.Clone(rg.Hover)
	sel := make([]*render.Object, 0, len(rg.Selected))
	for _, ob := range rg.Selected {
		if !slices.Contains(rg.Hover, ob) {
			sel = append(sel, ob)
		}
	}
	rg.SelectedOutlined = sel
	pk.ctx.HoverPass.Selected = rg.HoverOutlined
	pk.ctx.SelectedPass.Selected = rg.SelectedOutlined
}
