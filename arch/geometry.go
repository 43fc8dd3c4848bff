// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arch

// Geometry is the primitive used to draw a component.
type Geometry string

const (
	Box          Geometry = "box"
	Capsule      Geometry = "capsule"
	Circle       Geometry = "circle"
	Cone         Geometry = "cone"
	Cylinder     Geometry = "cylinder"
	Dodecahedron Geometry = "dodecahedron"
	Icosahedron  Geometry = "icosahedron"
	Octahedron   Geometry = "octahedron"
	Plane        Geometry = "plane"
	Ring         Geometry = "ring"
	Sphere       Geometry = "sphere"
	Tetrahedron  Geometry = "tetrahedron"
	Torus        Geometry = "torus"
	TorusKnot    Geometry = "torusKnot"
)

// Geometries are all of the supported geometries, in display order.
var Geometries = []Geometry{Box, Capsule, Circle, Cone, Cylinder, Dodecahedron,
	Icosahedron, Octahedron, Plane, Ring, Sphere, Tetrahedron, Torus, TorusKnot}

// IsValid returns whether the geometry is one of [Geometries].
func (g Geometry) IsValid() bool {
	for _, v := range Geometries {
		if g == v {
			return true
		}
	}
	return false
}

// Resolved returns the geometry, or [Box] for unknown or empty values.
func (g Geometry) Resolved() Geometry {
	if g.IsValid() {
		return g
	}
	return Box
}

// Flow is the direction of the pulse animation along a connection.
type Flow string

const (
	// FlowOut pulses travel from source to target only.
	FlowOut Flow = "out"

	// FlowIn pulses travel from target to source only.
	FlowIn Flow = "in"

	// FlowBi pulses travel both ways.
	FlowBi Flow = "bi"
)

// Flows are all of the supported flows.
var Flows = []Flow{FlowOut, FlowIn, FlowBi}

// IsValid returns whether the flow is one of [Flows].
func (f Flow) IsValid() bool {
	return f == FlowOut || f == FlowIn || f == FlowBi
}

// Resolved returns the flow, or [FlowOut] for unknown or empty values.
func (f Flow) Resolved() Flow {
	if f.IsValid() {
		return f
	}
	return FlowOut
}

// Rates returns the effective in and out rates for the flow:
// [FlowOut] zeroes the in rate and [FlowIn] zeroes the out rate.
func (f Flow) Rates(in, out float64) (float64, float64) {
	switch f.Resolved() {
	case FlowIn:
		return in, 0
	case FlowBi:
		return in, out
	}
	return 0, out
}
