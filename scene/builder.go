// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/render"
	"cogentcore.org/ennoea/render/shape"
)

//go:generate core generate

const (
	// LabelGap is the vertical gap between the top of a component
	// and the bottom of its label.
	LabelGap = .5

	// CurveSegments is the number of segments of a connection curve.
	CurveSegments = 50

	// Gravity is the sag of a connection curve as a fraction of the
	// horizontal distance between its ends.
	Gravity = .25

	// PulseRefresh is the interval at which pulse uniforms are advanced.
	PulseRefresh = 50 * time.Millisecond

	// ArrowRadius and ArrowLength are the size of connection arrowheads.
	ArrowRadius = .2
	ArrowLength = .5
)

// States are the states of the [Builder] during a rebuild.
type States int32 //enums:enum

const (
	Idle States = iota
	Clearing
	BuildingComponents
	BuildingGroups
	BuildingConnections
)

// Builder is the Scene Builder: it translates the components, groups and
// connections of a document into objects of the scene, and is the only
// thing that adds objects to or removes objects from the scene.
type Builder struct {
	ctx   *Context
	state States

	stageFuncs []func(States)
	builtFuncs []func()
}

// NewBuilder returns a new builder for the given context.
func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

// State returns the current state of the builder.
func (bd *Builder) State() States {
	return bd.state
}

// OnStage adds a function called at every state change.
func (bd *Builder) OnStage(fn func(States)) {
	bd.stageFuncs = append(bd.stageFuncs, fn)
}

// OnBuilt adds a function called after every rebuild.
func (bd *Builder) OnBuilt(fn func()) {
	bd.builtFuncs = append(bd.builtFuncs, fn)
}

func (bd *Builder) setState(s States) {
	bd.state = s
	slog.Debug("scene: builder state", "state", s)
	for _, fn := range bd.stageFuncs {
		fn(s)
	}
}

// ApplyObjects rebuilds every object of the given document.
func (bd *Builder) ApplyObjects(doc *arch.Document) {
	bd.Build(doc)
}

// Build clears the scene and builds the objects of the given document,
// stage by stage. A document without a components section is malformed:
// it is reported and the previous objects are left in place. A missing
// groups or connections section skips only that stage. Every entity is
// built on its own, so a failure in one entity is reported and the
// stage continues with the next.
func (bd *Builder) Build(doc *arch.Document) {
	if doc == nil || doc.Components == nil {
		slog.Error("scene: document has no components section, not rebuilding")
		return
	}
	bd.clear()

	bd.setState(BuildingComponents)
	for i := range doc.Components {
		c := &doc.Components[i]
		bd.guard("component "+c.Key(), func() { bd.buildComponent(c) })
	}

	if doc.Groups == nil {
		slog.Error("scene: document has no groups section, skipping groups")
	} else {
		bd.setState(BuildingGroups)
		for i := range doc.Groups {
			g := &doc.Groups[i]
			bd.guard("group "+g.Name, func() { bd.buildGroup(doc, g) })
		}
	}

	if doc.Connections == nil {
		slog.Error("scene: document has no connections section, skipping connections")
	} else {
		bd.setState(BuildingConnections)
		for i := range doc.Connections {
			cn := &doc.Connections[i]
			bd.guard("connection "+cn.Label(), func() { bd.buildConnection(doc, cn) })
		}
	}

	bd.setState(Idle)
	for _, fn := range bd.builtFuncs {
		fn()
	}
}

// guard runs fn, reporting a panic as an error for the named entity.
func (bd *Builder) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("could not build %s: %v", name, r)
			slog.Error("scene: "+msg)
			bd.ctx.Notify.Error(msg)
		}
	}()
	fn()
}

// Clear removes every object spawned by the builder from the scene,
// stops every pulse timer, and resets every derived set of the registry.
func (bd *Builder) Clear() {
	bd.clear()
	bd.setState(Idle)
}

// clear is [Builder.Clear] without the return to Idle, so that a
// rebuild goes straight from Clearing to building.
func (bd *Builder) clear() {
	bd.setState(Clearing)
	rg := &bd.ctx.Registry
	bd.ctx.Scene.RemoveObjects(rg.Objects)
	for _, tm := range rg.Pulses {
		tm.Stop()
	}
	rg.reset()
	bd.ctx.HoverPass.Selected = nil
	bd.ctx.SelectedPass.Selected = nil
}

func (bd *Builder) add(ob *render.Object) *render.Object {
	bd.ctx.Scene.Add(ob)
	bd.ctx.Registry.Objects = append(bd.ctx.Registry.Objects, ob)
	return ob
}

// parseColor returns the color for the given hex string,
// or the fallback if it is empty or invalid.
func parseColor(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	c, err := arch.ParseColor(s)
	if err != nil {
		slog.Debug("scene: invalid color, using fallback", "color", s, "err", err)
		return fallback
	}
	return c
}

func (bd *Builder) buildComponent(c *arch.Component) {
	obj := &c.Object
	if !obj.IsVisible() {
		return
	}
	key := c.Key()
	clr := parseColor(obj.Color, colors.White)
	ob := render.NewObject(key, render.Solid, NewGeometry(obj.Geometry), &render.Basic{Color: clr})
	ob.Pose.Pos = obj.Position.Vector3()
	ob.Pose.SetEulerDegrees(obj.Rotation.Vector3())
	ob.Pose.Scale = obj.Scale.Vector3()
	bd.add(ob)
	rg := &bd.ctx.Registry
	rg.Pickable = append(rg.Pickable, ob)
	rg.components.Set(key, ob)

	mesh := shape.NewText(c.Label(), 1)
	mesh.Center()
	lb := render.NewObject(key, render.Label, mesh, &render.Basic{Color: clr})
	bd.add(lb)
	rg.Labels = append(rg.Labels, lb)
	placeLabel(lb, ob, bd.ctx.Text, bd.ctx.Camera().Pos)
}

// placeLabel scales the label, centers it horizontally on the bounds of
// the component, puts it just above the top of the component, and turns
// it toward the horizontal bearing of the camera if text rotation is on.
func placeLabel(lb, comp *render.Object, txt arch.Text, cam math32.Vector3) {
	s := float32(txt.Scale)
	lb.Pose.Scale = math32.Vec3(s, s, s)
	bb := comp.WorldBBox()
	c := bb.Center()
	half := .5 * lb.Mesh.BBox.Size().Y * s
	lb.Pose.Pos = math32.Vec3(c.X, bb.Max.Y+LabelGap+half, c.Z)
	orientLabel(lb, txt.Rotate, cam)
}

// orientLabel turns the label about the vertical axis to face the
// camera, or resets its rotation if rotate is off.
func orientLabel(lb *render.Object, rotate bool, cam math32.Vector3) {
	if !rotate {
		lb.Pose.SetEuler(math32.Vector3{})
		return
	}
	yaw := math32.Atan2(cam.X-lb.Pose.Pos.X, cam.Z-lb.Pose.Pos.Z)
	lb.Pose.SetEuler(math32.Vec3(0, yaw, 0))
}

func (bd *Builder) buildGroup(doc *arch.Document, g *arch.Group) {
	box := &g.BoundingBox
	if !box.IsVisible() {
		return
	}
	rg := &bd.ctx.Registry
	bb := math32.B3Empty()
	for _, ref := range g.Components {
		i, ok := doc.FindComponent(ref)
		if !ok {
			msg := fmt.Sprintf("group %q: component %q not found", g.Name, ref)
			slog.Error("scene: " + msg)
			bd.ctx.Notify.Error(msg)
			continue
		}
		ob := rg.Component(doc.Components[i].Key())
		if ob == nil {
			// invisible members do not count
			continue
		}
		bb.ExpandByBox(ob.WorldBBox())
	}
	if bb.IsEmpty() {
		slog.Debug("scene: group has no members in the scene, skipping", "group", g.Name)
		return
	}
	pad := float32(box.Padding)
	bb.ExpandByScalar(pad)
	clr := parseColor(box.Color, colors.White)
	ob := render.NewObject(g.Name, render.WireBox, shape.NewWireBox(bb.Size()), &render.Basic{Color: clr, Wireframe: true})
	ob.Pose.Pos = bb.Center()
	bd.add(ob)
	rg.Boxes = append(rg.Boxes, ob)
}

func (bd *Builder) buildConnection(doc *arch.Document, cn *arch.Connection) {
	if !cn.IsVisible() {
		return
	}
	si, sok := doc.FindComponent(cn.Source)
	ti, tok := doc.FindComponent(cn.Target)
	if !sok || !tok {
		var missing []string
		if !sok {
			missing = append(missing, fmt.Sprintf("source %q", cn.Source))
		}
		if !tok {
			missing = append(missing, fmt.Sprintf("target %q", cn.Target))
		}
		msg := fmt.Sprintf("connection %q: component not found: %v", cn.Label(), missing)
		slog.Error("scene: " + msg)
		bd.ctx.Notify.Error(msg)
		return
	}
	rg := &bd.ctx.Registry
	src := rg.Component(doc.Components[si].Key())
	tgt := rg.Component(doc.Components[ti].Key())
	if src == nil || tgt == nil {
		slog.Debug("scene: connection endpoint is not visible, skipping", "connection", cn.Label())
		return
	}

	sbb, tbb := src.WorldBBox(), tgt.WorldBBox()
	sc, tc := sbb.Center(), tbb.Center()
	end := surfacePoint(tgt, sc, tc)
	start := surfacePoint(src, tc, sc)
	mid := start.Add(end).MulScalar(.5)
	if sbb.Min.Y != tbb.Min.Y || sbb.Max.Y != tbb.Max.Y {
		dx, dz := end.X-start.X, end.Z-start.Z
		mid.Y -= Gravity * math32.Sqrt(dx*dx+dz*dz)
	}
	pts := shape.QuadraticBezier(start, mid, end, CurveSegments)

	in, out := cn.Flow.Resolved().Rates(cn.InRate, cn.OutRate)
	pm := render.NewPulse(src.Color(), tgt.Color(), float32(in), float32(out), PulseRefresh)
	pm.Uniforms.InPacketSize = float32(cn.InPacketSize)
	pm.Uniforms.OutPacketSize = float32(cn.OutPacketSize)
	line := render.NewObject(cn.Label(), render.Line, shape.NewLineStrip(pts), pm)
	bd.add(line)
	rg.Lines = append(rg.Lines, line)
	rg.Pulses = append(rg.Pulses, bd.ctx.Timers.Every(PulseRefresh, pm.Tick))

	dir := end.Sub(pts[len(pts)-2]).Normal()
	if dir.Length() == 0 {
		dir = end.Sub(start).Normal()
	}
	arrow := render.NewObject(cn.Label(), render.Arrow, shape.NewCone(ArrowRadius, ArrowLength, 16), &render.Basic{Color: tgt.Color()})
	arrow.Pose.Pos = end.Sub(dir.MulScalar(ArrowLength / 2))
	arrow.Pose.SetEuler(ArrowRotation(dir))
	bd.add(arrow)
}

// surfacePoint returns the first point on the surface of the given
// object hit by the ray from one point toward another, or the second
// point if the ray misses.
func surfacePoint(ob *render.Object, from, toward math32.Vector3) math32.Vector3 {
	if from == toward {
		return toward
	}
	rc := render.NewRaycaster(from, toward.Sub(from))
	if h, ok := rc.IntersectObject(ob); ok {
		return h.Point
	}
	return toward
}

// ArrowRotation returns the Euler XYZ rotation that turns the Y axis,
// along which cones are built, to the given unit direction.
func ArrowRotation(d math32.Vector3) math32.Vector3 {
	c := math32.Asin(math32.Clamp(-d.X, -1, 1))
	a := math32.Atan2(d.Z, d.Y)
	return math32.Vec3(a, 0, c)
}
