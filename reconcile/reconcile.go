// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reconcile decides which regions of a scene need to be rebuilt
// when the architecture document is replaced, by comparing the serialized
// form of the previous and next documents at two granularities.
package reconcile

import (
	"bytes"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
)

// Changes records which regions of the scene changed between two documents.
type Changes struct {

	// Scene is whether the scene level settings (camera, fog and text) changed.
	Scene bool

	// Objects is whether anything that affects the built objects changed:
	// components, connections, groups or the text settings used for labels.
	Objects bool
}

// Any returns whether any region changed.
func (c Changes) Any() bool {
	return c.Scene || c.Objects
}

// sceneKey is the part of a document that drives scene level settings.
type sceneKey struct {
	Camera arch.Camera
	Fog    arch.Fog
	Text   arch.Text
}

// objectsKey is the part of a document that drives built objects.
type objectsKey struct {
	Components  []arch.Component
	Connections []arch.Connection
	Groups      []arch.Group
	Text        arch.Text
}

func sceneBytes(d *arch.Document) ([]byte, error) {
	return jsonx.WriteBytes(&sceneKey{Camera: d.Scene.Camera, Fog: d.Scene.Fog, Text: d.Scene.Text})
}

func objectsBytes(d *arch.Document) ([]byte, error) {
	return jsonx.WriteBytes(&objectsKey{Components: d.Components, Connections: d.Connections, Groups: d.Groups, Text: d.Scene.Text})
}

// Diff compares the given documents. A nil prev means that everything
// changed. If either side cannot be serialized, the region is treated as
// changed, so that Diff never skips a needed rebuild.
func Diff(prev, next *arch.Document) Changes {
	if prev == nil || next == nil {
		return Changes{Scene: true, Objects: true}
	}
	return Changes{
		Scene:   !sameBytes(sceneBytes, prev, next),
		Objects: !sameBytes(objectsBytes, prev, next),
	}
}

func sameBytes(key func(*arch.Document) ([]byte, error), prev, next *arch.Document) bool {
	pb, err := key(prev)
	if errors.Log(err) != nil {
		return false
	}
	nb, err := key(next)
	if errors.Log(err) != nil {
		return false
	}
	return bytes.Equal(pb, nb)
}

// Target is the scene that a [Reconciler] applies changes to.
type Target interface {

	// ApplyScene applies the scene level settings of the document:
	// camera, fog and text.
	ApplyScene(doc *arch.Document)

	// ApplyObjects rebuilds every object of the document.
	ApplyObjects(doc *arch.Document)
}

// Stats are counters of the work done by a [Reconciler].
type Stats struct {

	// Applies is the number of documents applied.
	Applies int

	// SceneRebuilds is the number of times scene settings were applied.
	SceneRebuilds int

	// ObjectRebuilds is the number of times objects were rebuilt.
	ObjectRebuilds int

	// Skipped is the number of documents for which nothing changed.
	Skipped int
}

// Reconciler applies successive documents to a [Target], calling only
// the stages whose inputs changed since the last applied document.
type Reconciler struct {
	target Target
	prev   *arch.Document
	stats  Stats
}

// New returns a new [Reconciler] for the given target.
func New(target Target) *Reconciler {
	return &Reconciler{target: target}
}

// Apply diffs the given document against the previously applied one,
// applies the changed regions in order (scene before objects) and
// remembers a copy of the document for the next call.
func (rc *Reconciler) Apply(next *arch.Document) Changes {
	ch := Diff(rc.prev, next)
	rc.stats.Applies++
	if next == nil {
		slog.Error("reconcile: no document to apply")
		return Changes{}
	}
	if ch.Scene {
		rc.stats.SceneRebuilds++
		rc.target.ApplyScene(next)
	}
	if ch.Objects {
		rc.stats.ObjectRebuilds++
		rc.target.ApplyObjects(next)
	}
	if !ch.Any() {
		rc.stats.Skipped++
	}
	rc.prev = next.Clone()
	return ch
}

// Subscriber returns a store subscriber that applies every new document.
func (rc *Reconciler) Subscriber() store.Subscriber {
	return func(doc *arch.Document) error {
		rc.Apply(doc)
		return nil
	}
}

// Reset forgets the previously applied document, so that the next
// [Reconciler.Apply] rebuilds everything.
func (rc *Reconciler) Reset() {
	rc.prev = nil
}

// Stats returns the counters of the reconciler.
func (rc *Reconciler) Stats() Stats {
	return rc.stats
}
