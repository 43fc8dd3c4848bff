// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"slices"
	"testing"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/render/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got math32.Vector3, msgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, msgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-4, msgs...)
	assert.InDelta(t, want.Z, got.Z, 1e-4, msgs...)
}

func assertColor(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
}

func box(sc *Scene, name string, pos math32.Vector3) *Object {
	ob := NewObject(name, Solid, shape.NewBox(1, 1, 1), &Basic{Color: colors.White})
	ob.Pose.Pos = pos
	return sc.Add(ob)
}

func TestPose(t *testing.T) {
	var ps Pose
	ps.Defaults()
	ps.Pos = math32.Vec3(1, 2, 3)
	ps.Scale = math32.Vec3(2, 1, 1)
	ps.SetEulerDegrees(math32.Vec3(0, 90, 0))

	p := ps.Transform(math32.Vec3(1, 0, 0))
	// scale to (2,0,0), rotate about y to (0,0,-2), then translate
	assertVec(t, math32.Vec3(1, 2, 1), p)
	assertVec(t, math32.Vec3(1, 0, 0), ps.InverseTransform(p))
	assertVec(t, math32.Vec3(0, 90, 0), ps.EulerDegrees())

	bb := ps.TransformBox(math32.B3(-.5, -.5, -.5, .5, .5, .5))
	assertVec(t, math32.Vec3(.5, 1.5, 2), bb.Min)
	assertVec(t, math32.Vec3(1.5, 2.5, 4), bb.Max)
}

func TestCameraRay(t *testing.T) {
	var cam Camera
	cam.Defaults()
	cam.Pos = math32.Vec3(0, 0, 10)
	ray := cam.Ray(math32.Vec2(0, 0))
	assertVec(t, math32.Vec3(0, 0, -1), ray.Dir)

	p := math32.Vec3(2, 1, 0)
	ndc, ok := cam.Project(p)
	require.True(t, ok)
	ray = cam.Ray(ndc)
	// the ray through the projection passes through the point
	d := p.Sub(ray.Origin)
	assertVec(t, d.Normal(), ray.Dir)

	_, ok = cam.Project(math32.Vec3(0, 0, 20))
	assert.False(t, ok)

	assert.Equal(t, math32.Vec2(0, 0), NDC(50, 50, 100, 100))
	assert.Equal(t, math32.Vec2(-1, 1), NDC(0, 0, 100, 100))
}

func TestRaycast(t *testing.T) {
	sc := NewScene()
	far := box(sc, "far", math32.Vec3(0, 0, -5))
	near := box(sc, "near", math32.Vec3(0, 0, 0))
	side := box(sc, "side", math32.Vec3(5, 0, 0))

	rc := NewRaycaster(math32.Vec3(.1, .2, 10), math32.Vec3(0, 0, -1))
	hits := rc.Intersect(far, near, side)
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Object)
	assert.Same(t, far, hits[1].Object)
	assertVec(t, math32.Vec3(.1, .2, .5), hits[0].Point)
	assert.InDelta(t, 9.5, hits[0].Distance, 1e-4)

	near.Visible = false
	hits = rc.Intersect(far, near, side)
	require.Len(t, hits, 1)
	assert.Same(t, far, hits[0].Object)

	line := sc.Add(NewObject("line", Line, shape.NewLineStrip([]math32.Vector3{{Z: -1}, {Z: 1}}), &Basic{}))
	assert.Empty(t, rc.Intersect(line))
}

func TestRaycastTransformed(t *testing.T) {
	sc := NewScene()
	ob := box(sc, "a", math32.Vec3(0, 0, 0))
	ob.Pose.Scale = math32.Vec3(4, 1, 1)
	ob.Pose.SetEulerDegrees(math32.Vec3(0, 90, 0))

	// after rotation, the long axis is along z
	rc := NewRaycaster(math32.Vec3(.1, .2, 10), math32.Vec3(0, 0, -1))
	hits := rc.Intersect(ob)
	require.Len(t, hits, 1)
	assertVec(t, math32.Vec3(.1, .2, 2), hits[0].Point)

	rc = NewRaycaster(math32.Vec3(10, .2, .3), math32.Vec3(-1, 0, 0))
	hits = rc.Intersect(ob)
	require.Len(t, hits, 1)
	assertVec(t, math32.Vec3(.5, .2, .3), hits[0].Point)

	// a sphere is hit on its surface, not its bounding box
	sp := sc.Add(NewObject("s", Solid, shape.NewSphere(1, 32, 16), &Basic{}))
	sp.Pose.Pos = math32.Vec3(10, 10, 0)
	rc = NewRaycaster(math32.Vec3(10.05, 10.05, 10), math32.Vec3(0, 0, -1))
	hits = rc.Intersect(sp)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1, hits[0].Point.Z, .02)
	rc = NewRaycaster(math32.Vec3(10.95, 10.95, 10), math32.Vec3(0, 0, -1))
	assert.Empty(t, rc.Intersect(sp))
}

func TestScene(t *testing.T) {
	sc := NewScene()
	a := box(sc, "a", math32.Vector3{})
	b := box(sc, "b", math32.Vector3{})
	assert.Equal(t, 2, sc.Len())
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, sc.Remove(a))
	assert.False(t, sc.Remove(a))
	assert.False(t, sc.Contains(a))
	assert.True(t, sc.Contains(b))
	assert.Equal(t, []*Object{b}, sc.Objects())
	assert.Equal(t, "wireBox", WireBox.String())
}

func TestRemoveObjects(t *testing.T) {
	sc := NewScene()
	var obs []*Object
	for i := range 100 {
		obs = append(obs, box(sc, fmt.Sprint(i), math32.Vector3{}))
	}
	keep := []*Object{obs[10], obs[50], obs[99]}
	var del []*Object
	for _, ob := range obs {
		if !slices.Contains(keep, ob) {
			del = append(del, ob)
		}
	}
	stranger := NewObject("x", Solid, shape.NewBox(1, 1, 1), &Basic{})
	assert.Equal(t, 97, sc.RemoveObjects(append(del, stranger, del[0])))
	assert.Equal(t, keep, sc.Objects())
	for _, ob := range keep {
		assert.True(t, sc.Contains(ob))
	}
	assert.False(t, sc.Contains(del[0]))
	assert.True(t, sc.Remove(obs[50]))
	assert.Equal(t, 0, sc.RemoveObjects(del))

	assert.Equal(t, 2, sc.RemoveObjects(sc.Objects()))
	assert.Equal(t, 0, sc.Len())
	c := box(sc, "c", math32.Vector3{})
	assert.True(t, sc.Contains(c))
}

func TestPulse(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	pm := NewPulse(red, blue, 0, 0, 50*time.Millisecond)
	assert.False(t, pm.Active())
	assertColor(t, red, pm.ColorAt(0))
	assertColor(t, blue, pm.ColorAt(1))
	assert.Equal(t, red, pm.BaseColor())

	pm.Uniforms.OutRate = 2
	assert.True(t, pm.Active())
	for range 5 {
		pm.Tick()
	}
	assert.Equal(t, 5, pm.Ticks)
	assert.InDelta(t, .25, pm.Uniforms.Time, 1e-5)
	assert.InDelta(t, .5, pm.OutPosition(), 1e-5)
	// the pulse is brightest at its position
	assertColor(t, colors.White, pm.ColorAt(.5))
	assertColor(t, red, pm.ColorAt(0))

	pm.Uniforms.InRate = 1
	assert.InDelta(t, .75, pm.InPosition(), 1e-5)
}

func TestTimers(t *testing.T) {
	var ts Timers
	n := 0
	tm := ts.Every(50*time.Millisecond, func() { n++ })
	assert.Equal(t, 1, ts.Active())
	ts.Advance(40 * time.Millisecond)
	assert.Equal(t, 0, n)
	ts.Advance(70 * time.Millisecond)
	assert.Equal(t, 2, n)
	tm.Stop()
	tm.Stop()
	assert.True(t, tm.Stopped())
	ts.Advance(time.Second)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, ts.Active())

	bad := ts.Every(time.Millisecond, func() { panic("boom") })
	assert.NotPanics(t, func() { ts.Advance(10 * time.Millisecond) })
	assert.True(t, bad.Stopped())
	assert.Equal(t, 0, ts.Active())
}

func TestTweens(t *testing.T) {
	var ts Tweens
	var got math32.Vector3
	set := func(v math32.Vector3) { got = v }
	ts.Start("pos", &Tween{From: math32.Vec3(0, 0, 0), To: math32.Vec3(10, 0, 0), Duration: time.Second, Ease: Power1Out, Set: set})
	ts.Advance(500 * time.Millisecond)
	assert.InDelta(t, 7.5, got.X, 1e-4)

	// redirect mid flight: last call wins
	ts.Start("pos", &Tween{From: got, To: math32.Vec3(0, 10, 0), Duration: time.Second, Ease: Power1Out, Set: set})
	assert.Equal(t, 1, ts.Active())
	ts.Advance(2 * time.Second)
	assertVec(t, math32.Vec3(0, 10, 0), got)
	assert.Equal(t, 0, ts.Active())
	assert.Nil(t, ts.Get("pos"))
}

func TestCompositor(t *testing.T) {
	sc := NewScene()
	a := box(sc, "a", math32.Vector3{})
	b := box(sc, "b", math32.Vector3{})
	cp := NewCompositor(sc)
	hover := cp.AddPass(NewOutlinePass("hover", 10, colors.White, colors.White))
	sel := cp.AddPass(NewOutlinePass("selected", 10, color.RGBA{255, 0, 0, 255}, colors.White))

	var order []string
	cp.OnBeforeRender(func() {
		order = append(order, "hook")
		hover.Selected = []*Object{a}
		sel.Selected = []*Object{b}
	})
	cp.OnBeforeRender(func() { panic("boom") })
	fr := cp.Render()
	assert.Equal(t, []string{"hook"}, order)
	assert.Equal(t, 1, fr.Number)
	assert.Equal(t, 2, fr.Drawn)
	assert.Equal(t, []int{1, 1}, fr.Outlined)
	assert.True(t, hover.Has(a))
	assert.False(t, hover.Has(b))

	sc.Remove(b)
	fr = cp.Render()
	assert.Equal(t, []int{1, 0}, fr.Outlined)
	assert.Equal(t, 2, cp.Frames())
}

func TestGizmo(t *testing.T) {
	sc := NewScene()
	ob := box(sc, "a", math32.Vector3{})
	var gz Gizmo
	var events []string
	gz.OnDraggingChanged = func(d bool) {
		if d {
			events = append(events, "start")
		} else {
			events = append(events, "end")
		}
	}
	gz.OnMouseUp = func() { events = append(events, "up") }

	assert.False(t, gz.BeginDrag())
	gz.Attach(ob)
	assert.True(t, gz.BeginDrag())
	assert.True(t, gz.Dragging())
	gz.DragTo(math32.Vec3(3, 4, 5))
	gz.EndDrag()
	assert.Equal(t, []string{"start", "end", "up"}, events)
	assert.Equal(t, math32.Vec3(3, 4, 5), ob.Pose.Pos)

	gz.Mode = Rotate
	gz.BeginDrag()
	gz.DragTo(math32.Vec3(0, math32.Pi/2, 0))
	events = nil
	gz.Detach()
	assert.Equal(t, []string{"end"}, events)
	assert.Nil(t, gz.Object())
	assertVec(t, math32.Vec3(0, 90, 0), ob.Pose.EulerDegrees())

}

func TestEnumNames(t *testing.T) {
	var m GizmoModes
	require.NoError(t, m.SetString("scale"))
	assert.Equal(t, Scale, m)
	assert.ErrorContains(t, m.SetString("shear"), "GizmoModes")
	assert.Equal(t, Scale, m)
	assert.Equal(t, []GizmoModes{Translate, Rotate, Scale}, GizmoModesValues())
	assert.Equal(t, "translate", Translate.String())

	var k Kinds
	require.NoError(t, k.UnmarshalText([]byte("wireBox")))
	assert.Equal(t, WireBox, k)
	assert.Equal(t, "arrow", Arrow.String())
	assert.Equal(t, "PointLight", PointLight.String())
	assert.Equal(t, "Label is a text slab.", Label.Desc())
}

func TestFog(t *testing.T) {
	fg := Fog{Near: 10, Far: 20}
	assert.Equal(t, float32(0), fg.Factor(5))
	assert.Equal(t, float32(.5), fg.Factor(15))
	assert.Equal(t, float32(1), fg.Factor(25))
}
