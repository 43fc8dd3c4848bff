// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session wires together one live viewer: the document store,
// the reconciler, the scene with its builder and animator, the
// interaction layer and the sidebars. All of them are driven from a
// single goroutine, the loop started by [Session.Run]; other goroutines
// post work to it with [Session.Do].
package session

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/interact"
	"cogentcore.org/ennoea/notify"
	"cogentcore.org/ennoea/reconcile"
	"cogentcore.org/ennoea/render"
	"cogentcore.org/ennoea/scene"
	"cogentcore.org/ennoea/sidebar"
	"cogentcore.org/ennoea/store"
)

// FrameRate is the default number of frames per second of [Session.Run].
const FrameRate = 60

// ErrClosed is returned by [Session.Do] after the loop has stopped.
var ErrClosed = errors.New("session is closed")

// Options are the options of [New].
type Options struct {

	// Notify receives the notifications of the session,
	// in addition to the listeners added with OnNotification.
	Notify notify.Sink

	// Parent is the region that popups are shown in.
	Parent math32.Box2

	// FrameRate is the number of frames per second of the loop.
	FrameRate int
}

// Session is one live viewer.
type Session struct {
	Context    *scene.Context
	Store      *store.Store
	Reconciler *reconcile.Reconciler
	Builder    *scene.Builder
	Animator   *scene.Animator
	Picker     *interact.Picker
	Editor     *interact.Editor
	Keys       *interact.KeyStack

	// View has the last rendered content of every sidebar section.
	View *sidebar.Memory

	FileInfo      *sidebar.FileInfoController
	SceneControls *sidebar.SceneController
	Components    *sidebar.ComponentsController
	Groups        *sidebar.GroupsController
	Connections   *sidebar.ConnectionsController

	interval  time.Duration
	lastFrame time.Time

	calls chan call
	done  chan struct{}

	docFuncs    []func(doc *arch.Document)
	notifyFuncs []func(n notify.Notification)
}

type call struct {
	fn  func()
	err chan error
}

// target applies the reconciled regions: the scene settings
// to the animator and the objects to the builder.
type target struct {
	an *scene.Animator
	bd *scene.Builder
}

func (t *target) ApplyScene(doc *arch.Document)   { t.an.ApplyScene(doc) }
func (t *target) ApplyObjects(doc *arch.Document) { t.bd.ApplyObjects(doc) }

// New returns a new session with no document. The store subscribers
// run in this order: the reconciler, the sidebars, and then the
// document listeners added with [Session.OnDocument].
func New(opts Options) *Session {
	s := &Session{
		Store: store.New(),
		Keys:  &interact.KeyStack{},
		View:  sidebar.NewMemory(),
		calls: make(chan call),
		done:  make(chan struct{}),
	}
	rate := opts.FrameRate
	if rate <= 0 {
		rate = FrameRate
	}
	s.interval = time.Second / time.Duration(rate)

	sinks := notify.Multi{notify.Func(s.notified)}
	if opts.Notify != nil {
		sinks = append(sinks, opts.Notify)
	}
	s.Context = scene.NewContext(sinks)
	s.Builder = scene.NewBuilder(s.Context)
	s.Animator = scene.NewAnimator(s.Context)
	s.Reconciler = reconcile.New(&target{an: s.Animator, bd: s.Builder})
	s.Store.Subscribe(s.Reconciler.Subscriber())

	s.FileInfo = sidebar.NewFileInfo(s.Store, s.View)
	s.SceneControls = sidebar.NewSceneControls(s.Store, s.View, s.Animator)
	s.Components = sidebar.NewComponents(s.Store, s.View, s.Animator)
	s.Groups = sidebar.NewGroups(s.Store, s.View)
	s.Connections = sidebar.NewConnections(s.Store, s.View)
	s.Store.Subscribe(func(doc *arch.Document) error {
		for _, fn := range s.docFuncs {
			fn(doc)
		}
		return nil
	})

	s.Picker = interact.NewPicker(s.Context)
	s.Editor = interact.NewEditor(s.Context, s.Builder, s.Store, s.Keys)
	if opts.Parent != (math32.Box2{}) {
		s.Editor.Parent = opts.Parent
	}
	s.Picker.OnComponentClick = func(key string) {
		if _, err := s.Editor.Open(key); err != nil {
			notify.Errorf(s.Context.Notify, "%v", err)
		}
	}
	return s
}

// OnDocument adds a function called with every new document,
// after the scene and the sidebars have been updated.
func (s *Session) OnDocument(fn func(doc *arch.Document)) {
	s.docFuncs = append(s.docFuncs, fn)
}

// OnNotification adds a function called with every notification.
func (s *Session) OnNotification(fn func(n notify.Notification)) {
	s.notifyFuncs = append(s.notifyFuncs, fn)
}

func (s *Session) notified(n notify.Notification) {
	for _, fn := range s.notifyFuncs {
		fn(n)
	}
}

// Notify returns the notification sink of the session.
func (s *Session) Notify() notify.Sink {
	return s.Context.Notify
}

// SetDocument replaces the document. Everything derived from it is
// updated before SetDocument returns.
func (s *Session) SetDocument(doc *arch.Document) {
	s.Store.Set(doc)
}

// Document returns a copy of the current document, or nil.
func (s *Session) Document() *arch.Document {
	return s.Store.Get()
}

// Edit applies fn to a copy of the current document and sets the
// result. It returns an error if there is no document.
func (s *Session) Edit(fn func(doc *arch.Document)) error {
	doc := s.Store.Get()
	if doc == nil {
		return errors.New("no document")
	}
	fn(doc)
	s.Store.Set(doc)
	return nil
}

// SetCamera sets the camera position and look-at point of the document,
// so that the camera animates to them. A nil argument is left unchanged.
func (s *Session) SetCamera(pos, lookAt []float64) error {
	var p, l arch.Vec3
	var err error
	if pos != nil {
		if p, err = arch.Vec3FromSlice(pos); err != nil {
			return fmt.Errorf("invalid camera position: %w", err)
		}
	}
	if lookAt != nil {
		if l, err = arch.Vec3FromSlice(lookAt); err != nil {
			return fmt.Errorf("invalid camera look-at position: %w", err)
		}
	}
	return s.Edit(func(doc *arch.Document) {
		if pos != nil {
			doc.Scene.Camera.Position = p
		}
		if lookAt != nil {
			doc.Scene.Camera.LookAt = &l
		}
	})
}

// Key sends a key press to the key handlers, returning whether
// one of them handled it.
func (s *Session) Key(key string) bool {
	return s.Keys.HandleKey(key)
}

// BeginEdit starts a transform edit of a component in the named mode.
func (s *Session) BeginEdit(key, mode string) error {
	var m render.GizmoModes
	if err := m.SetString(mode); err != nil {
		return fmt.Errorf("edit mode: %w", err)
	}
	return s.Editor.Begin(key, m)
}

// Frame advances the clocks by the time since the previous frame
// and renders one frame. The first frame does not advance the clocks.
func (s *Session) Frame(now time.Time) render.Frame {
	if !s.lastFrame.IsZero() && now.After(s.lastFrame) {
		s.Context.Advance(now.Sub(s.lastFrame))
	}
	s.lastFrame = now
	return s.Context.Render()
}

// Run runs the loop of the session until the context is done: it runs
// the functions posted with [Session.Do] and renders frames at the frame
// rate. A panic in a frame or in a posted function is logged, and the
// loop continues. Run must be called only once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	slog.Info("session: running", "frameRate", s.FrameRate())
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-s.calls:
			c.err <- s.protect(c.fn)
		case now := <-tick.C:
			errors.Log(s.protect(func() { s.Frame(now) }))
		}
	}
}

// FrameRate returns the number of frames per second of [Session.Run].
func (s *Session) FrameRate() int {
	return int(time.Second / s.interval)
}

func (s *Session) protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: panic: %v", r)
			slog.Error(err.Error(), "stack", string(debug.Stack()))
		}
	}()
	fn()
	return nil
}

// Do runs fn on the loop goroutine and waits for it to return. It returns
// an error if fn panicked, the context is done, or the loop has stopped.
func (s *Session) Do(ctx context.Context, fn func()) error {
	c := call{fn: fn, err: make(chan error, 1)}
	select {
	case s.calls <- c:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
	select {
	case err := <-c.err:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats are counters of the work done by a session.
type Stats struct {
	Reconcile reconcile.Stats `json:"reconcile"`

	// Version is the number of documents set.
	Version uint64 `json:"version"`

	Frames int `json:"frames"`

	// Pulses is the number of running pulse timers.
	Pulses int `json:"pulses"`

	Pickable int `json:"pickable"`
}

// Stats returns the current counters of the session.
func (s *Session) Stats() Stats {
	return Stats{
		Reconcile: s.Reconciler.Stats(),
		Version:   s.Store.Version(),
		Frames:    s.Context.Compositor.Frames(),
		Pulses:    s.Context.Timers.Active(),
		Pickable:  len(s.Context.Registry.Pickable),
	}
}

// SceneInfo is a summary of the live scene.
type SceneInfo struct {
	State    string    `json:"state"`
	Objects  int       `json:"objects"`
	Pickable int       `json:"pickable"`
	Lines    int       `json:"lines"`
	Boxes    int       `json:"boxes"`
	Labels   int       `json:"labels"`
	Pulses   int       `json:"pulses"`
	Camera   arch.Vec3 `json:"camera"`
	LookAt   arch.Vec3 `json:"lookAt"`
	Hover    []string  `json:"hover"`
	Selected []string  `json:"selected"`
	Editing  string    `json:"editing,omitempty"`
	Popup    string    `json:"popup,omitempty"`
}

// SceneInfo returns a summary of the live scene.
func (s *Session) SceneInfo() *SceneInfo {
	rg := &s.Context.Registry
	si := &SceneInfo{
		State:    s.Builder.State().String(),
		Objects:  len(rg.Objects),
		Pickable: len(rg.Pickable),
		Lines:    len(rg.Lines),
		Boxes:    len(rg.Boxes),
		Labels:   len(rg.Labels),
		Pulses:   s.Context.Timers.Active(),
		Camera:   s.Animator.CameraPosition(),
		LookAt:   s.Animator.CameraLookAt(),
		Hover:    s.Picker.HoverKeys(),
		Selected: s.Picker.SelectedKeys(),
		Editing:  s.Editor.Editing(),
	}
	if w := s.Editor.Popup(); w != nil {
		si.Popup = w.Title
	}
	return si
}
