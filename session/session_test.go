// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/notify"
	"cogentcore.org/ennoea/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *arch.Document {
	doc := arch.New("Shop", "The shop")
	a, b := arch.NewComponent("A"), arch.NewComponent("B")
	b.Object.Position = arch.V3(10, 0, 0)
	doc.Components = append(doc.Components, a, b)
	doc.Connections = append(doc.Connections, arch.Connection{Source: "A", Target: "B", Flow: arch.FlowBi, InRate: 1, OutRate: 2})
	return doc
}

func newTest(t *testing.T) (*Session, *notify.Recorder) {
	rec := &notify.Recorder{}
	return New(Options{Notify: rec}), rec
}

func TestSetDocument(t *testing.T) {
	s, _ := newTest(t)
	var order []string
	s.View.OnRender = func(sec sidebar.Sections, content any) {
		if sec == sidebar.ComponentsSection {
			order = append(order, "sidebar")
		}
	}
	s.OnDocument(func(doc *arch.Document) {
		assert.Len(t, s.Context.Registry.Pickable, 2, "the scene is built before listeners run")
		order = append(order, "listener")
	})

	s.SetDocument(testDoc())
	assert.Equal(t, []string{"sidebar", "listener"}, order)
	assert.Len(t, s.Context.Registry.Pickable, 2)
	assert.Len(t, s.View.Content(sidebar.ComponentsSection).([]*sidebar.ComponentRow), 2)
	assert.Equal(t, 1, s.Stats().Pulses)

	// a scene only change does not rebuild the objects
	require.NoError(t, s.SetCamera([]float64{1, 2, 3}, nil))
	st := s.Stats()
	assert.Equal(t, 1, st.Reconcile.ObjectRebuilds)
	assert.Equal(t, 2, st.Reconcile.SceneRebuilds)
	assert.Equal(t, uint64(2), st.Version)
	assert.Equal(t, arch.V3(1, 2, 3), s.Document().Scene.Camera.Position)

	assert.Error(t, s.SetCamera([]float64{1}, nil))
}

func TestCameraAnimates(t *testing.T) {
	s, _ := newTest(t)
	doc := testDoc()
	doc.Scene.Camera.Position = arch.V3(0, 0, 40)
	s.SetDocument(doc)
	t0 := time.Now()
	s.Frame(t0)
	s.Frame(t0.Add(2 * time.Second))
	assert.Equal(t, arch.V3(0, 0, 40), s.Animator.CameraPosition())
	assert.Equal(t, 2, s.Stats().Frames)
}

func TestClickOpensPopup(t *testing.T) {
	s, _ := newTest(t)
	s.SetDocument(testDoc())
	cam := s.Context.Camera()
	cam.Pos = math32.Vec3(0, 0, 20)
	cam.LookAt(math32.Vector3{})
	s.Picker.PointerMoveNDC(math32.Vec2(0, 0))
	s.Picker.Click()

	si := s.SceneInfo()
	assert.Equal(t, []string{"A"}, si.Hover)
	assert.Equal(t, []string{"A"}, si.Selected)
	assert.Equal(t, "A", si.Popup)

	require.NoError(t, s.BeginEdit("A", "rotate"))
	assert.Equal(t, "A", s.SceneInfo().Editing)
	assert.True(t, s.Key("Escape"))
	assert.Empty(t, s.SceneInfo().Editing)
	assert.Equal(t, "A", s.SceneInfo().Popup)
	assert.True(t, s.Key("Escape"))
	assert.Empty(t, s.SceneInfo().Popup)
	assert.False(t, s.Key("Escape"))

	assert.Error(t, s.BeginEdit("A", "shear"))
	assert.Error(t, s.BeginEdit("missing", "scale"))
}

func TestNotifications(t *testing.T) {
	s, rec := newTest(t)
	var got []notify.Notification
	s.OnNotification(func(n notify.Notification) { got = append(got, n) })
	doc := testDoc()
	doc.Connections = append(doc.Connections, arch.Connection{Source: "A", Target: "Q"})
	s.SetDocument(doc)
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Level)
	assert.Equal(t, 1, rec.Count(notify.Error))
}

func TestFiles(t *testing.T) {
	s, rec := newTest(t)
	dir := t.TempDir()

	_, err := s.SaveFile(dir)
	assert.Error(t, err, "no document")

	s.SetDocument(testDoc())
	path, err := s.SaveFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename), path)

	s2, _ := newTest(t)
	require.NoError(t, s2.LoadFile(path))
	assert.Equal(t, s.Document(), s2.Document())

	yml := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("info:\n  name: Yaml\ncomponents:\n  - id: X\n    name: X\n    object: {geometry: sphere}\nconnections: []\ngroups: []\n"), 0o644))
	require.NoError(t, s2.LoadFile(yml))
	assert.Equal(t, "Yaml", s2.Document().Info.Name)
	assert.Len(t, s2.Context.Registry.Pickable, 1)

	// failures keep the current document
	png := filepath.Join(dir, "image.json")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), 0o644))
	assert.Error(t, s2.LoadFile(png))
	assert.Error(t, s2.LoadFile(filepath.Join(dir, "missing.json")))
	assert.Error(t, s2.LoadFile(dir))
	assert.Equal(t, "Yaml", s2.Document().Info.Name)
	assert.Equal(t, 1, rec.Count(notify.Success))
}

func TestRun(t *testing.T) {
	s := New(Options{FrameRate: 1000})
	assert.Equal(t, 1000, s.FrameRate())
	assert.Equal(t, FrameRate, New(Options{}).FrameRate())
	assert.Equal(t, 7, New(Options{FrameRate: 7}).FrameRate())
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan error, 1)
	go func() { ran <- s.Run(ctx) }()

	require.NoError(t, s.Do(ctx, func() { s.SetDocument(testDoc()) }))
	var pickable int
	require.NoError(t, s.Do(ctx, func() { pickable = len(s.Context.Registry.Pickable) }))
	assert.Equal(t, 2, pickable)

	// a panic is reported and the loop continues
	assert.Error(t, s.Do(ctx, func() { panic("boom") }))
	assert.Eventually(t, func() bool {
		var frames int
		s.Do(ctx, func() { frames = s.Stats().Frames })
		return frames > 2
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-ran)
	assert.ErrorIs(t, s.Do(context.Background(), func() {}), ErrClosed)
}

func TestWatch(t *testing.T) {
	s := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	path := filepath.Join(t.TempDir(), "watched.json")
	doc := testDoc()
	require.NoError(t, doc.Save(path))
	go s.Watch(ctx, path)

	name := func() string {
		var n string
		s.Do(ctx, func() {
			if d := s.Document(); d != nil {
				n = d.Info.Name
			}
		})
		return n
	}
	assert.Eventually(t, func() bool { return name() == "Shop" }, 5*time.Second, 10*time.Millisecond)
	doc.Info.Name = "Changed"
	require.NoError(t, doc.Save(path))
	assert.Eventually(t, func() bool { return name() == "Changed" }, 5*time.Second, 10*time.Millisecond)
}
