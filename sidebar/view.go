// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sidebar provides the controllers of the sidebar sections,
// which show the document as editable rows and push every edit back
// through the store as a whole new document.
package sidebar

import (
	"strings"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
	"github.com/jinzhu/copier"
	"golang.org/x/text/cases"
)

//go:generate core generate

// Sections are the sections of the sidebar.
type Sections int32 //enums:enum -transform lower-camel

const (
	FileInfoSection Sections = iota
	SceneSection
	ComponentsSection
	GroupsSection
	ConnectionsSection
)

// View displays the content of the sidebar sections. Render replaces
// the whole content of a section: a *[FileInfo], a *[SceneControls] or
// a slice of rows.
type View interface {
	Render(section Sections, content any)
}

// Memory is a [View] that keeps the last content of every section.
// It is safe for concurrent use.
type Memory struct {

	// OnRender is called after every render, if set.
	OnRender func(section Sections, content any)

	mu      sync.Mutex
	content map[Sections]any
	renders map[Sections]int
}

// NewMemory returns a new empty in-memory view.
func NewMemory() *Memory {
	return &Memory{content: map[Sections]any{}, renders: map[Sections]int{}}
}

func (m *Memory) Render(section Sections, content any) {
	m.mu.Lock()
	m.content[section] = content
	m.renders[section]++
	fn := m.OnRender
	m.mu.Unlock()
	if fn != nil {
		fn(section, content)
	}
}

// Content returns the last content of the given section.
func (m *Memory) Content(section Sections) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content[section]
}

// Renders returns the number of times the given section was rendered.
func (m *Memory) Renders(section Sections) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders[section]
}

// Camera is the live camera, as used by the scene controls
// and the jump-to action of components.
type Camera interface {
	SetCameraPosition(pos []float64) error
	SetCameraLookAt(pos []float64) error
	CameraPosition() arch.Vec3
}

// Matches returns whether any of the given names contains the filter,
// compared with Unicode case folding. The empty filter matches everything.
func Matches(filter string, names ...string) bool {
	if filter == "" {
		return true
	}
	c := cases.Fold()
	f := c.String(filter)
	for _, n := range names {
		if strings.Contains(c.String(n), f) {
			return true
		}
	}
	return false
}

// section has what every section controller has in common.
type section struct {
	store *store.Store
	view  View
	kind  Sections
	subID store.SubscriptionID

	// filter is the current filter text.
	filter string

	render func(doc *arch.Document)
}

func (sc *section) init(st *store.Store, view View, kind Sections, render func(doc *arch.Document)) {
	sc.store, sc.view, sc.kind, sc.render = st, view, kind, render
	sc.subID = st.Subscribe(func(doc *arch.Document) error {
		render(doc)
		return nil
	})
	if doc := st.Get(); doc != nil {
		render(doc)
	}
}

// Close unsubscribes the section from the store.
func (sc *section) Close() {
	sc.store.Unsubscribe(sc.subID)
}

// Filter returns the current filter text.
func (sc *section) Filter() string {
	return sc.filter
}

// SetFilter sets the filter text and renders the section again.
// The document is not changed.
func (sc *section) SetFilter(filter string) {
	sc.filter = filter
	if doc := sc.store.Get(); doc != nil {
		sc.render(doc)
	}
}

// edit gets the current document, applies fn to it and pushes it back
// through the store, unless fn returns false.
func (sc *section) edit(fn func(doc *arch.Document) bool) {
	doc := sc.store.Get()
	if doc == nil {
		return
	}
	if fn(doc) {
		sc.store.Set(doc)
	}
}

// copyOf returns a deep copy of an entity, for the row update closures.
func copyOf[T any](v *T) *T {
	var c T
	errors.Log(copier.CopyWithOption(&c, v, copier.Option{DeepCopy: true}))
	return &c
}
