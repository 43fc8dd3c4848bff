// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/ennoea/render"
)

// Registry is the Scene Object Registry: the live objects derived from
// the current document. Only the [Builder] adds and removes objects;
// the interaction layer only rewrites the hover, selection and outline
// sets.
type Registry struct {

	// Objects are all of the objects spawned by the builder.
	Objects []*render.Object

	// Pickable are the objects that pointer picking is tested against:
	// the solids of the visible components.
	Pickable []*render.Object

	// Hover are the objects under the pointer, nearest first.
	Hover []*render.Object

	// Selected are the objects selected by the last click.
	Selected []*render.Object

	// HoverOutlined are the objects outlined as hovered.
	HoverOutlined []*render.Object

	// SelectedOutlined are the objects outlined as selected.
	// It never shares an object with HoverOutlined.
	SelectedOutlined []*render.Object

	// Labels are the text labels of the components.
	Labels []*render.Object

	// Lines are the lines of the connections.
	Lines []*render.Object

	// Boxes are the wire boxes of the groups.
	Boxes []*render.Object

	// Pulses are the timers that animate the connection lines.
	Pulses []*render.Timer

	// components are the solids by component identifier.
	components keylist.List[string, *render.Object]
}

// Component returns the solid of the component with the given
// identifier, or nil if it is not in the scene.
func (rg *Registry) Component(key string) *render.Object {
	ob, _ := rg.components.AtTry(key)
	return ob
}

// ComponentKeys returns the identifiers of the components in the scene,
// in build order.
func (rg *Registry) ComponentKeys() []string {
	return slices.Clone(rg.components.Keys)
}

// Label returns the label of the component with the given identifier, or nil.
func (rg *Registry) Label(key string) *render.Object {
	for _, lb := range rg.Labels {
		if lb.Name == key {
			return lb
		}
	}
	return nil
}

// IsPickable returns whether the given object is pickable.
func (rg *Registry) IsPickable(ob *render.Object) bool {
	return slices.Contains(rg.Pickable, ob)
}

// reset clears every derived set.
func (rg *Registry) reset() {
	*rg = Registry{}
}

// Names returns the names of the given objects, in order.
func Names(objs []*render.Object) []string {
	names := make([]string, len(objs))
	for i, ob := range objs {
		names[i] = ob.Name
	}
	return names
}
