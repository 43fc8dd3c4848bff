// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"slices"
)

// OutlinePass is a post-processing pass that draws an edge around
// each of its selected objects.
type OutlinePass struct {
	Name string

	// EdgeStrength is the strength of the edge.
	EdgeStrength float32

	// VisibleEdgeColor is the color of the edge where it is visible.
	VisibleEdgeColor color.RGBA

	// HiddenEdgeColor is the color of the edge where it is behind other objects.
	HiddenEdgeColor color.RGBA

	// Selected are the objects that are outlined.
	Selected []*Object
}

// NewOutlinePass returns a new outline pass.
func NewOutlinePass(name string, strength float32, visible, hidden color.RGBA) *OutlinePass {
	return &OutlinePass{Name: name, EdgeStrength: strength, VisibleEdgeColor: visible, HiddenEdgeColor: hidden}
}

// Has returns whether the given object is outlined by this pass.
func (op *OutlinePass) Has(ob *Object) bool {
	return slices.Contains(op.Selected, ob)
}

// Frame has the results of rendering one frame.
type Frame struct {

	// Number is the number of the frame, starting at 1.
	Number int

	// Drawn is the number of visible objects drawn.
	Drawn int

	// Outlined has the number of outlined objects for each pass.
	Outlined []int
}

// Compositor renders a scene in passes: the scene itself,
// then each of the outline passes. Pre-render hooks run
// before every frame.
type Compositor struct {
	Scene *Scene

	Passes []*OutlinePass

	hooks []func()
	last  Frame
}

// NewCompositor returns a new compositor for the given scene.
func NewCompositor(sc *Scene) *Compositor {
	return &Compositor{Scene: sc}
}

// AddPass adds the given outline pass.
func (cp *Compositor) AddPass(op *OutlinePass) *OutlinePass {
	cp.Passes = append(cp.Passes, op)
	return op
}

// OnBeforeRender adds a function to be called before every frame.
func (cp *Compositor) OnBeforeRender(fn func()) {
	cp.hooks = append(cp.hooks, fn)
}

// Render renders one frame. A panicking hook is logged
// and does not prevent the frame from rendering.
func (cp *Compositor) Render() Frame {
	for _, fn := range cp.hooks {
		runHook(fn)
	}
	fr := Frame{Number: cp.last.Number + 1}
	for _, ob := range cp.Scene.Objects() {
		if ob.Visible {
			fr.Drawn++
		}
	}
	for _, op := range cp.Passes {
		n := 0
		for _, ob := range op.Selected {
			if ob.Visible && cp.Scene.Contains(ob) {
				n++
			}
		}
		fr.Outlined = append(fr.Outlined, n)
	}
	cp.last = fr
	return fr
}

func runHook(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render: pre-render hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Frames returns the number of frames rendered.
func (cp *Compositor) Frames() int {
	return cp.last.Number
}

// LastFrame returns the results of the last frame rendered.
func (cp *Compositor) LastFrame() Frame {
	return cp.last
}
