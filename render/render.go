// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render is a headless retained-mode scene graph: objects with
// meshes, poses and materials, a perspective camera, fog and lights, a
// raycaster, an outline compositor, a transform gizmo, and the interval
// timers and tweens that animate the scene. It computes everything that
// is observable about a rendered frame (bounds, ray hits, outline sets,
// shader uniforms) without producing pixels.
package render

import (
	"image/color"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/render/shape"
)

//go:generate core generate

// ObjectID is the unique identifier of an object within a [Scene].
type ObjectID uint64

// Kinds are the kinds of objects in a scene.
type Kinds int32 //enums:enum -transform lower-camel

const (
	// Solid is a triangle mesh representing an entity.
	Solid Kinds = iota

	// Label is a text slab.
	Label

	// Line is a line strip.
	Line

	// Arrow is an arrowhead at the end of a line.
	Arrow

	// WireBox is the wireframe box of a group.
	WireBox
)

// Object is a mesh placed in a scene with a pose and a material.
type Object struct {

	// ID is assigned by [Scene.Add].
	ID ObjectID

	// Name is the stable identifier of the entity that the object
	// represents, for example the identifier of a component.
	Name string

	Kind Kinds

	Pose Pose

	Mesh *shape.Mesh

	Material Material

	// Visible is whether the object is drawn.
	Visible bool
}

// NewObject returns a new visible object with an identity pose.
func NewObject(name string, kind Kinds, mesh *shape.Mesh, mat Material) *Object {
	ob := &Object{Name: name, Kind: kind, Mesh: mesh, Material: mat, Visible: true}
	ob.Pose.Defaults()
	return ob
}

// WorldBBox returns the bounding box of the object in world coordinates.
func (ob *Object) WorldBBox() math32.Box3 {
	if ob.Mesh == nil {
		return math32.B3Empty()
	}
	return ob.Pose.TransformBox(ob.Mesh.BBox)
}

// Color returns the base color of the material of the object.
func (ob *Object) Color() color.RGBA {
	if ob.Material == nil {
		return color.RGBA{}
	}
	return ob.Material.BaseColor()
}

// Scene is the root of the scene graph. Objects are kept in the
// order in which they were added.
type Scene struct {
	Camera Camera

	Fog Fog

	Background color.RGBA

	Lights []*Light

	objects keylist.List[ObjectID, *Object]
	nextID  ObjectID
}

// NewScene returns a new empty scene with a default camera.
func NewScene() *Scene {
	sc := &Scene{}
	sc.Camera.Defaults()
	sc.Fog.Far = 1000
	return sc
}

// Add adds the given object to the scene and returns it.
func (sc *Scene) Add(ob *Object) *Object {
	sc.nextID++
	ob.ID = sc.nextID
	sc.objects.Set(ob.ID, ob)
	return ob
}

// Remove removes the given object from the scene,
// returning false if it was not in the scene.
func (sc *Scene) Remove(ob *Object) bool {
	return sc.objects.DeleteByKey(ob.ID)
}

// RemoveObjects removes every given object that is in the scene, in one
// pass over the scene, and returns how many were removed.
func (sc *Scene) RemoveObjects(obs []*Object) int {
	del := make(map[ObjectID]bool, len(obs))
	for _, ob := range obs {
		if sc.Contains(ob) {
			del[ob.ID] = true
		}
	}
	if len(del) == 0 {
		return 0
	}
	if len(del) == sc.objects.Len() {
		sc.objects.Reset()
		return len(del)
	}
	n := 0
	for i, id := range sc.objects.Keys {
		if del[id] {
			continue
		}
		sc.objects.Keys[n] = id
		sc.objects.Values[n] = sc.objects.Values[i]
		n++
	}
	clear(sc.objects.Values[n:])
	sc.objects.Keys = sc.objects.Keys[:n]
	sc.objects.Values = sc.objects.Values[:n]
	sc.objects.UpdateIndexes()
	return len(del)
}

// Contains returns whether the given object is in the scene.
func (sc *Scene) Contains(ob *Object) bool {
	cur, ok := sc.objects.AtTry(ob.ID)
	return ok && cur == ob
}

// Objects returns the objects in the scene, in the order added.
func (sc *Scene) Objects() []*Object {
	return sc.objects.Values
}

// Len returns the number of objects in the scene.
func (sc *Scene) Len() int {
	return sc.objects.Len()
}

// AddLight adds the given light to the scene.
func (sc *Scene) AddLight(lt *Light) {
	sc.Lights = append(sc.Lights, lt)
}
