// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sidebar

import (
	"log/slog"
	"slices"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
)

// GroupRow is a row of the groups section.
type GroupRow struct {
	Name    string
	Color   string
	Dark    bool
	Visible bool
	Padding float64

	// Members are the component identifiers of the group.
	Members []string

	// Available are the component identifiers that can be added.
	Available []string

	// Update changes a copy of the group with fn
	// and pushes the document with it.
	Update func(fn func(g *arch.Group))

	// Delete removes the group from the document.
	Delete func()
}

func (r *GroupRow) SetName(name string) {
	r.Update(func(g *arch.Group) { g.Name = name })
}

func (r *GroupRow) SetColor(color string) {
	r.Update(func(g *arch.Group) { g.BoundingBox.Color = color })
}

func (r *GroupRow) SetVisible(v bool) {
	r.Update(func(g *arch.Group) { g.BoundingBox.Visible = arch.Bool(v) })
}

func (r *GroupRow) SetPadding(p float64) {
	r.Update(func(g *arch.Group) { g.BoundingBox.Padding = p })
}

// AddMember adds the component with the given identifier to the group,
// if it is not a member already.
func (r *GroupRow) AddMember(key string) {
	if slices.Contains(r.Members, key) {
		return
	}
	r.Update(func(g *arch.Group) { g.Components = append(g.Components, key) })
}

// RemoveMember removes the member at the given index.
func (r *GroupRow) RemoveMember(i int) {
	if i < 0 || i >= len(r.Members) {
		return
	}
	r.Update(func(g *arch.Group) {
		if i < len(g.Components) {
			g.Components = slices.Delete(g.Components, i, i+1)
		}
	})
}

// GroupsController renders the groups of the document as rows.
type GroupsController struct {
	section
}

// NewGroups returns a new groups controller subscribed to the given store.
func NewGroups(st *store.Store, view View) *GroupsController {
	gc := &GroupsController{}
	gc.init(st, view, GroupsSection, gc.Render)
	return gc
}

// Render renders the groups of the given document whose name
// matches the filter.
func (gc *GroupsController) Render(doc *arch.Document) {
	if doc.Components == nil || doc.Groups == nil {
		slog.Error("sidebar: document has no components or groups section")
		gc.view.Render(gc.kind, []*GroupRow(nil))
		return
	}
	keys := doc.ComponentKeys()
	rows := []*GroupRow{}
	for i := range doc.Groups {
		g := &doc.Groups[i]
		if !Matches(gc.filter, g.Name) {
			continue
		}
		bb := &g.BoundingBox
		l := arch.Luma(bb.Color)
		name := g.Name
		var avail []string
		for _, k := range keys {
			if !slices.Contains(g.Components, k) {
				avail = append(avail, k)
			}
		}
		rows = append(rows, &GroupRow{
			Name: name, Color: bb.Color, Dark: l >= 0 && l < DarkLuma,
			Visible: bb.IsVisible(), Padding: bb.Padding,
			Members:   slices.Clone(g.Components),
			Available: avail,
			Update:    func(fn func(g *arch.Group)) { gc.update(i, name, fn) },
			Delete:    func() { gc.delete(i, name) },
		})
	}
	gc.view.Render(gc.kind, rows)
}

func (gc *GroupsController) update(i int, name string, fn func(g *arch.Group)) {
	gc.edit(func(doc *arch.Document) bool {
		if i >= len(doc.Groups) || doc.Groups[i].Name != name {
			slog.Error("sidebar: group changed since it was rendered", "group", name)
			return false
		}
		g := copyOf(&doc.Groups[i])
		fn(g)
		doc.Groups[i] = *g
		return true
	})
}

func (gc *GroupsController) delete(i int, name string) {
	gc.edit(func(doc *arch.Document) bool {
		if i >= len(doc.Groups) || doc.Groups[i].Name != name {
			return false
		}
		doc.Groups = slices.Delete(doc.Groups, i, i+1)
		return true
	})
}

// Create adds a new empty group with a unique name and returns the name.
func (gc *GroupsController) Create() string {
	var name string
	gc.edit(func(doc *arch.Document) bool {
		names := make([]string, len(doc.Groups))
		for i := range doc.Groups {
			names[i] = doc.Groups[i].Name
		}
		name = UniqueName("group", names)
		doc.Groups = append(doc.Groups, arch.Group{
			Name:        name,
			Components:  []string{},
			BoundingBox: arch.BoundingBox{Padding: 1, Color: "#ffffff"},
		})
		return true
	})
	return name
}
