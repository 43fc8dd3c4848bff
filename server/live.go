// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/notify"
	"cogentcore.org/ennoea/session"
	"github.com/gorilla/websocket"
)

// Types of the messages sent to websocket clients.
const (
	DocumentMessage     = "document"
	NotificationMessage = "notification"
	SceneMessage        = "scene"
	ErrorMessage        = "error"
)

// Types of the messages received from websocket clients.
const (
	SetDocumentMessage = "setDocument"
	PointerMoveMessage = "pointerMove"
	ClickMessage       = "click"
	KeyMessage         = "key"
	EditMessage        = "edit"
	CameraMessage      = "camera"
)

// Outbound is a message sent to websocket clients.
type Outbound struct {
	Type         string               `json:"type"`
	Document     *arch.Document       `json:"document,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Scene        *session.SceneInfo   `json:"scene,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// Inbound is a message received from a websocket client.
type Inbound struct {
	Type string `json:"type"`

	// Document is the document of setDocument.
	Document json.RawMessage `json:"document,omitempty"`

	// Pointer is the pointer position of pointerMove in normalized
	// device coordinates. A missing position means the pointer left.
	Pointer []float32 `json:"pointer,omitempty"`

	// Key is the key of key.
	Key string `json:"key,omitempty"`

	// Action is the edit action: begin, move, end or cancel.
	Action string `json:"action,omitempty"`

	// Component and Mode are the component and mode of an edit begin.
	Component string `json:"component,omitempty"`
	Mode      string `json:"mode,omitempty"`

	// Value is the new gizmo value of an edit move.
	Value []float64 `json:"value,omitempty"`

	// Position and LookAt are the camera settings of camera.
	Position []float64 `json:"position,omitempty"`
	LookAt   []float64 `json:"lookAt,omitempty"`
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// trySend queues the message without blocking, returning
// false if the queue is full or closed.
func (c *client) trySend(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// hub is the set of connected websocket clients.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: map[*client]struct{}{}}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	cs := h.clients
	h.clients = map[*client]struct{}{}
	h.mu.Unlock()
	for c := range cs {
		c.close()
	}
}

// broadcast sends the message to every client. Clients that are
// too slow to keep up lose the message.
func (h *hub) broadcast(m *Outbound) {
	b, err := json.Marshal(m)
	if errors.Log(err) != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.trySend(b) {
			slog.Warn("server: websocket client too slow, dropping message", "type", m.Type)
		}
	}
}

func (h *hub) document(doc *arch.Document) {
	h.broadcast(&Outbound{Type: DocumentMessage, Document: doc})
}

func (h *hub) notification(n notify.Notification) {
	h.broadcast(&Outbound{Type: NotificationMessage, Notification: &n})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWebsocket runs the live channel of one client: it sends the
// current document and scene, and then handles the messages of the
// client on the session loop.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		writeError(w, http.StatusServiceUnavailable, errNoSession)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	go c.writeLoop()

	// broadcasts run on the session loop, so queueing the initial
	// state there puts it before any of them
	err = s.session.Do(s.ctx, func() {
		if doc := s.session.Document(); doc != nil {
			c.queue(&Outbound{Type: DocumentMessage, Document: doc})
		}
		c.queue(&Outbound{Type: SceneMessage, Scene: s.session.SceneInfo()})
		s.hub.add(c)
	})
	if err != nil {
		c.close()
		return
	}
	defer s.hub.remove(c)

	for {
		var in Inbound
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("server: websocket read", "err", err)
			}
			return
		}
		si, err := s.handle(&in)
		if err != nil {
			c.queue(&Outbound{Type: ErrorMessage, Error: err.Error()})
			continue
		}
		if si != nil {
			s.hub.broadcast(&Outbound{Type: SceneMessage, Scene: si})
		}
	}
}

// queue sends a message to the client alone.
func (c *client) queue(m *Outbound) {
	b, err := json.Marshal(m)
	if errors.Log(err) != nil {
		return
	}
	c.trySend(b)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for b := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// handle runs one client message on the session loop, returning the
// summary of the scene after it.
func (s *Server) handle(in *Inbound) (*session.SceneInfo, error) {
	var doc *arch.Document
	if in.Type == SetDocumentMessage {
		var err error
		if doc, err = arch.Decode(in.Document, arch.JSON); err != nil {
			return nil, err
		}
	}
	var si *session.SceneInfo
	var herr error
	err := s.session.Do(s.ctx, func() {
		ss := s.session
		switch in.Type {
		case SetDocumentMessage:
			ss.SetDocument(doc)
		case PointerMoveMessage:
			if len(in.Pointer) != 2 {
				ss.Picker.PointerLeave()
				break
			}
			ss.Picker.PointerMoveNDC(math32.Vec2(in.Pointer[0], in.Pointer[1]))
		case ClickMessage:
			ss.Picker.Click()
		case KeyMessage:
			ss.Key(in.Key)
		case EditMessage:
			herr = s.edit(in)
		case CameraMessage:
			herr = ss.SetCamera(in.Position, in.LookAt)
		default:
			herr = fmt.Errorf("unknown message type %q", in.Type)
		}
		if herr == nil {
			si = ss.SceneInfo()
		}
	})
	if err != nil {
		return nil, err
	}
	return si, herr
}

// edit runs an edit message. It must be called on the session loop.
func (s *Server) edit(in *Inbound) error {
	ed := s.session.Editor
	switch in.Action {
	case "begin":
		return s.session.BeginEdit(in.Component, in.Mode)
	case "move":
		v, err := arch.Vec3FromSlice(in.Value)
		if err != nil {
			return fmt.Errorf("invalid edit value: %w", err)
		}
		if !s.session.Context.Gizmo.Dragging() && !ed.DragStart() {
			return errors.New("no edit in progress")
		}
		ed.DragTo(v.Vector3())
	case "end":
		ed.DragEnd()
	case "cancel":
		ed.Cancel()
	default:
		return fmt.Errorf("unknown edit action %q", in.Action)
	}
	return nil
}
