// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package popup provides a movable window shown on top of the scene,
// used for component information and transform actions.
package popup

import (
	"log/slog"

	"cogentcore.org/core/math32"
)

// DefaultSize is the size of a new window.
var DefaultSize = math32.Vec2(320, 200)

// Action is a button in a window.
type Action struct {
	Name string
	Func func()
}

// Window is a titled window inside a parent region. It can be dragged
// by its title bar, but never outside of its parent, and closes on Escape.
type Window struct {

	// Title is shown in the title bar.
	Title string

	// Content is the view model of the body of the window.
	Content any

	// Actions are the buttons of the window, in order.
	Actions []Action

	// Parent is the region the window must stay inside of.
	Parent math32.Box2

	// Pos is the position of the top left corner of the window.
	Pos math32.Vector2

	// Size is the size of the window.
	Size math32.Vector2

	// OnClose is called once when the window is destroyed.
	OnClose func()

	visible   bool
	destroyed bool
	dragging  bool
	dragOff   math32.Vector2
}

// New returns a new hidden window with the given parent region,
// title and content, centered in its parent.
func New(parent math32.Box2, title string, content any) *Window {
	w := &Window{Title: title, Content: content, Parent: parent, Size: DefaultSize}
	c := parent.Center().Sub(w.Size.MulScalar(.5))
	w.SetPosition(c.X, c.Y)
	return w
}

// AddAction adds a button with the given name.
func (w *Window) AddAction(name string, fn func()) *Window {
	w.Actions = append(w.Actions, Action{Name: name, Func: fn})
	return w
}

// Action runs the action with the given name, returning false
// if there is no such action.
func (w *Window) Action(name string) bool {
	for _, a := range w.Actions {
		if a.Name == name {
			if a.Func != nil {
				a.Func()
			}
			return true
		}
	}
	return false
}

// Show makes the window visible. A destroyed window can not be shown.
func (w *Window) Show() {
	if w.destroyed {
		slog.Debug("popup: show of destroyed window", "title", w.Title)
		return
	}
	w.visible = true
}

// Visible returns whether the window is shown.
func (w *Window) Visible() bool {
	return w.visible
}

// Destroyed returns whether the window has been destroyed.
func (w *Window) Destroyed() bool {
	return w.destroyed
}

// Destroy hides the window for good and calls OnClose.
// It is safe to call more than once.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.visible = false
	w.dragging = false
	if w.OnClose != nil {
		w.OnClose()
	}
}

// SetPosition moves the top left corner of the window to the given
// point, clamped so that the window stays inside its parent.
func (w *Window) SetPosition(x, y float32) {
	maxp := w.Parent.Max.Sub(w.Size)
	maxp.SetMax(w.Parent.Min)
	w.Pos = math32.Box2{Min: w.Parent.Min, Max: maxp}.ClampPoint(math32.Vec2(x, y))
}

// Bounds returns the region covered by the window.
func (w *Window) Bounds() math32.Box2 {
	return math32.Box2{Min: w.Pos, Max: w.Pos.Add(w.Size)}
}

// DragStart starts a title bar drag at the given pointer position.
func (w *Window) DragStart(p math32.Vector2) {
	if !w.visible {
		return
	}
	w.dragging = true
	w.dragOff = p.Sub(w.Pos)
}

// DragMove moves the window with the pointer during a drag.
func (w *Window) DragMove(p math32.Vector2) {
	if !w.dragging {
		return
	}
	np := p.Sub(w.dragOff)
	w.SetPosition(np.X, np.Y)
}

// DragEnd ends a title bar drag.
func (w *Window) DragEnd() {
	w.dragging = false
}

// Dragging returns whether a title bar drag is in progress.
func (w *Window) Dragging() bool {
	return w.dragging
}

// HandleKey handles the given key, returning whether it was used:
// Escape destroys a visible window.
func (w *Window) HandleKey(key string) bool {
	if key != "Escape" || !w.visible {
		return false
	}
	w.Destroy()
	return true
}
