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

// Option is an entry of a dropdown.
type Option struct {
	Value string
	Text  string
}

// ConnectionRow is a row of the connections section.
type ConnectionRow struct {
	Label string
	Name  string

	Source     string
	Target     string
	SourceName string
	TargetName string

	// Components are the options of the source and target dropdowns.
	Components []Option

	Flow          arch.Flow
	InRate        float64
	OutRate       float64
	InPacketSize  float64
	OutPacketSize float64
	Visible       bool

	// Update changes a copy of the connection with fn
	// and pushes the document with it.
	Update func(fn func(c *arch.Connection))

	// Delete removes the connection from the document.
	Delete func()
}

func (r *ConnectionRow) SetName(name string) {
	r.Update(func(c *arch.Connection) { c.Name = name })
}

func (r *ConnectionRow) SetSource(key string) {
	r.Update(func(c *arch.Connection) { c.Source = key })
}

func (r *ConnectionRow) SetTarget(key string) {
	r.Update(func(c *arch.Connection) { c.Target = key })
}

func (r *ConnectionRow) SetFlow(f arch.Flow) {
	r.Update(func(c *arch.Connection) { c.Flow = f })
}

// SetRates sets the in and out pulse rates.
func (r *ConnectionRow) SetRates(in, out float64) {
	r.Update(func(c *arch.Connection) { c.InRate, c.OutRate = in, out })
}

// SetPacketSizes sets the in and out pulse packet sizes.
func (r *ConnectionRow) SetPacketSizes(in, out float64) {
	r.Update(func(c *arch.Connection) { c.InPacketSize, c.OutPacketSize = in, out })
}

func (r *ConnectionRow) SetVisible(v bool) {
	r.Update(func(c *arch.Connection) { c.Visible = arch.Bool(v) })
}

// ConnectionsController renders the connections of the document as rows.
type ConnectionsController struct {
	section
}

// NewConnections returns a new connections controller subscribed
// to the given store.
func NewConnections(st *store.Store, view View) *ConnectionsController {
	cc := &ConnectionsController{}
	cc.init(st, view, ConnectionsSection, cc.Render)
	return cc
}

// Render renders the connections of the given document whose name, or
// the name of either of whose components, matches the filter. Endpoints
// that do not resolve are shown by their identifier.
func (cc *ConnectionsController) Render(doc *arch.Document) {
	if doc.Components == nil || doc.Connections == nil {
		slog.Error("sidebar: document has no components or connections section")
		cc.view.Render(cc.kind, []*ConnectionRow(nil))
		return
	}
	opts := make([]Option, len(doc.Components))
	for i := range doc.Components {
		c := &doc.Components[i]
		opts[i] = Option{Value: c.Key(), Text: c.Label()}
	}
	rows := []*ConnectionRow{}
	for i := range doc.Connections {
		cn := &doc.Connections[i]
		src, tgt := doc.ComponentLabel(cn.Source), doc.ComponentLabel(cn.Target)
		if !Matches(cc.filter, cn.Name, src, tgt) {
			continue
		}
		label := cn.Label()
		rows = append(rows, &ConnectionRow{
			Label: label, Name: cn.Name,
			Source: cn.Source, Target: cn.Target, SourceName: src, TargetName: tgt,
			Components: slices.Clone(opts),
			Flow:       cn.Flow.Resolved(),
			InRate:     cn.InRate, OutRate: cn.OutRate,
			InPacketSize: cn.InPacketSize, OutPacketSize: cn.OutPacketSize,
			Visible: cn.IsVisible(),
			Update:  func(fn func(c *arch.Connection)) { cc.update(i, label, fn) },
			Delete:  func() { cc.delete(i, label) },
		})
	}
	cc.view.Render(cc.kind, rows)
}

func (cc *ConnectionsController) update(i int, label string, fn func(c *arch.Connection)) {
	cc.edit(func(doc *arch.Document) bool {
		if i >= len(doc.Connections) || doc.Connections[i].Label() != label {
			slog.Error("sidebar: connection changed since it was rendered", "connection", label)
			return false
		}
		c := copyOf(&doc.Connections[i])
		fn(c)
		doc.Connections[i] = *c
		return true
	})
}

func (cc *ConnectionsController) delete(i int, label string) {
	cc.edit(func(doc *arch.Document) bool {
		if i >= len(doc.Connections) || doc.Connections[i].Label() != label {
			return false
		}
		doc.Connections = slices.Delete(doc.Connections, i, i+1)
		return true
	})
}

// Create adds a new connection between the first two components,
// or from the first component to itself if there is only one.
// It returns false if the document has no components.
func (cc *ConnectionsController) Create() bool {
	created := false
	cc.edit(func(doc *arch.Document) bool {
		keys := doc.ComponentKeys()
		if len(keys) == 0 {
			return false
		}
		src, tgt := keys[0], keys[0]
		if len(keys) > 1 {
			tgt = keys[1]
		}
		doc.Connections = append(doc.Connections, arch.Connection{
			Source: src, Target: tgt, Flow: arch.FlowOut,
			InRate: 1, OutRate: 1, InPacketSize: .1, OutPacketSize: .1,
		})
		created = true
		return true
	})
	return created
}
