// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/session"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(name string) *arch.Document {
	doc := arch.New(name, "A test architecture.")
	a, b := arch.NewComponent("A"), arch.NewComponent("B")
	b.Object.Position = arch.V3(10, 0, 0)
	doc.Components = append(doc.Components, a, b)
	doc.Connections = append(doc.Connections, arch.Connection{Source: "A", Target: "B", Flow: arch.FlowOut, OutRate: 1})
	return doc
}

func encode(t *testing.T, doc *arch.Document) io.Reader {
	b, err := doc.Encode()
	require.NoError(t, err)
	return bytes.NewReader(b)
}

type testServer struct {
	*httptest.Server
	srv     *Server
	session *session.Session
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	sess := session.New(session.Options{})
	srv := New(cfg, saves.NewMemory(), sess)
	ctx, cancel := context.WithCancel(context.Background())
	go sess.Run(ctx)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
		cancel()
	})
	return &testServer{Server: ts, srv: srv, session: sess}
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader) (*http.Response, []byte) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestArchitectures(t *testing.T) {
	ts := newTestServer(t, Config{Live: true})

	resp, b := ts.do(t, http.MethodGet, "/architectures/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(b))

	resp, b = ts.do(t, http.MethodPut, "/architectures/", encode(t, testDoc("Shop")))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	var sum saves.Summary
	require.NoError(t, json.Unmarshal(b, &sum))
	assert.Equal(t, "Shop", sum.Name)
	assert.NotEmpty(t, sum.ID)

	resp, b = ts.do(t, http.MethodGet, "/architectures/"+sum.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := arch.Read(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, sum.ID, doc.Info.ID)
	assert.Len(t, doc.Components, 2)

	resp, b = ts.do(t, http.MethodGet, "/architectures/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []saves.Summary
	require.NoError(t, json.Unmarshal(b, &list))
	require.Len(t, list, 1)
	assert.Equal(t, sum.ID, list[0].ID)

	resp, _ = ts.do(t, http.MethodGet, "/architectures/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// live saving sets the document of the session
	resp, b = ts.do(t, http.MethodGet, "/session/document", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), sum.ID)
}

func TestSaveWithProblems(t *testing.T) {
	ts := newTestServer(t, Config{})
	doc := arch.New("Loose", "")
	doc.Scene.Fog.Far = 5
	a, b := arch.NewComponent("A"), arch.NewComponent("B")
	a.Object.Color, b.Object.Color = "", ""
	b.Object.Position = arch.V3(10, 0, 0)
	doc.Components = append(doc.Components, a, b)
	doc.Connections = append(doc.Connections,
		arch.Connection{Source: "A", Target: "B", Flow: arch.FlowOut, OutRate: 5},
		arch.Connection{Source: "A", Target: "Nope"})

	resp, b2 := ts.do(t, http.MethodPut, "/architectures/", encode(t, doc))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b2))
	var sr saveResponse
	require.NoError(t, json.Unmarshal(b2, &sr))
	assert.NotEmpty(t, sr.ID)
	assert.Equal(t, "Loose", sr.Name)
	problems := strings.Join(sr.Problems, "\n")
	assert.Contains(t, problems, "description is empty")
	assert.Contains(t, problems, "fog far")
	assert.Contains(t, problems, `invalid color ""`)
	assert.Contains(t, problems, `"Nope"`)

	resp, b2 = ts.do(t, http.MethodGet, "/architectures/"+sr.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved, err := arch.Read(bytes.NewReader(b2))
	require.NoError(t, err)
	assert.Len(t, saved.Components, 2)

	resp, b2 = ts.do(t, http.MethodPut, "/architectures/", encode(t, testDoc("Clean")))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(b2), "problems")

	resp, _ = ts.do(t, http.MethodPut, "/architectures/", strings.NewReader("{"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// not live, so the session has no document
	resp, _ = ts.do(t, http.MethodGet, "/session/document", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSession(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, b := ts.do(t, http.MethodPut, "/session/document", encode(t, testDoc("Live")))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	var si session.SceneInfo
	require.NoError(t, json.Unmarshal(b, &si))
	assert.Equal(t, 2, si.Pickable)
	assert.Equal(t, 1, si.Lines)
	assert.Equal(t, 1, si.Pulses)

	resp, b = ts.do(t, http.MethodGet, "/session/scene", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `"pickable":2`)

	resp, b = ts.do(t, http.MethodGet, "/session/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st session.Stats
	require.NoError(t, json.Unmarshal(b, &st))
	assert.Equal(t, 1, st.Reconcile.ObjectRebuilds)

	resp, b = ts.do(t, http.MethodGet, "/session/document", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `"Live"`)
}

func TestNoSession(t *testing.T) {
	srv := New(Config{}, saves.NewMemory(), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	resp, err := ts.Client().Get(ts.URL + "/session/scene")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, b := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(b))

	ts.do(t, http.MethodPut, "/architectures/", encode(t, testDoc("Counted")))
	ts.do(t, http.MethodGet, "/architectures/missing", nil)
	resp, b = ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m := string(b)
	assert.Contains(t, m, "ennoea_saves_total 1")
	assert.Contains(t, m, `ennoea_http_requests_total{code="404",method="GET",route="/architectures/{id}"} 1`)
	assert.Contains(t, m, "ennoea_websocket_clients 0")
	assert.Contains(t, m, "ennoea_session_documents_applied_total")
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>ennoea</h1>"), 0o644))
	ts := newTestServer(t, Config{StaticDir: dir})
	resp, b := ts.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>ennoea</h1>", string(b))
}

func readType(t *testing.T, conn *websocket.Conn, typ string) *Outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var m Outbound
		require.NoError(t, conn.ReadJSON(&m))
		if m.Type == typ {
			return &m
		}
	}
}

func TestWebsocket(t *testing.T) {
	ts := newTestServer(t, Config{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	m := readType(t, conn, SceneMessage)
	assert.Equal(t, 0, m.Scene.Pickable)

	docb, err := testDoc("Socket").Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Inbound{Type: SetDocumentMessage, Document: docb}))
	m = readType(t, conn, DocumentMessage)
	assert.Equal(t, "Socket", m.Document.Info.Name)
	m = readType(t, conn, SceneMessage)
	assert.Equal(t, 2, m.Scene.Pickable)

	require.NoError(t, conn.WriteJSON(Inbound{Type: CameraMessage, Position: []float64{0, 0, 30}, LookAt: []float64{0, 0, 0}}))
	m = readType(t, conn, DocumentMessage)
	assert.Equal(t, arch.V3(0, 0, 30), m.Document.Scene.Camera.Position)

	require.NoError(t, conn.WriteJSON(Inbound{Type: EditMessage, Action: "begin", Component: "B", Mode: "translate"}))
	m = readType(t, conn, SceneMessage)
	assert.Equal(t, "B", m.Scene.Editing)
	require.NoError(t, conn.WriteJSON(Inbound{Type: EditMessage, Action: "move", Value: []float64{10, 2, 0}}))
	readType(t, conn, SceneMessage)
	require.NoError(t, conn.WriteJSON(Inbound{Type: EditMessage, Action: "end"}))
	m = readType(t, conn, DocumentMessage)
	assert.Equal(t, arch.V3(10, 2, 0), m.Document.Components[1].Object.Position)

	require.NoError(t, conn.WriteJSON(Inbound{Type: KeyMessage, Key: "Escape"}))
	m = readType(t, conn, SceneMessage)
	assert.Empty(t, m.Scene.Editing)

	require.NoError(t, conn.WriteJSON(Inbound{Type: "shout"}))
	m = readType(t, conn, ErrorMessage)
	assert.Contains(t, m.Error, "shout")

	// dangling references are notified
	bad := testDoc("Dangling")
	bad.Connections[0].Target = "Nope"
	docb, err = bad.Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Inbound{Type: SetDocumentMessage, Document: docb}))
	m = readType(t, conn, NotificationMessage)
	assert.Contains(t, m.Notification.Message, "Nope")
}
