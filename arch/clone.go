// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arch

import "slices"

// Clone returns a deep copy of the document that shares no memory
// with it. Nil sections stay nil and empty sections stay empty, so
// that a clone always serializes identically to its source.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	nd := &Document{
		Info:  d.Info,
		Scene: d.Scene.Clone(),
	}
	if d.Components != nil {
		nd.Components = make([]Component, len(d.Components))
		for i := range d.Components {
			nd.Components[i] = d.Components[i].Clone()
		}
	}
	if d.Connections != nil {
		nd.Connections = make([]Connection, len(d.Connections))
		for i := range d.Connections {
			nd.Connections[i] = d.Connections[i].Clone()
		}
	}
	if d.Groups != nil {
		nd.Groups = make([]Group, len(d.Groups))
		for i := range d.Groups {
			nd.Groups[i] = d.Groups[i].Clone()
		}
	}
	return nd
}

// Clone returns a deep copy of the scene settings.
func (s Scene) Clone() Scene {
	if s.Camera.LookAt != nil {
		la := *s.Camera.LookAt
		s.Camera.LookAt = &la
	}
	return s
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	c.Object.Visible = cloneBool(c.Object.Visible)
	return c
}

// Clone returns a deep copy of the connection.
func (c Connection) Clone() Connection {
	c.Visible = cloneBool(c.Visible)
	return c
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	g.Components = slices.Clone(g.Components)
	g.BoundingBox.Visible = cloneBool(g.BoundingBox.Visible)
	return g
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
