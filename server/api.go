// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/session"
	"github.com/go-chi/chi/v5"
)

// errNoSession is returned by the session endpoints
// of a server without a session.
var errNoSession = errors.New("no live session")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errors.Log(jsonx.Write(v, w))
}

func writeError(w http.ResponseWriter, status int, err error) {
	http.Error(w, err.Error(), status)
}

// readDocument decodes the document in the request body, responding
// with 400 Bad Request if it cannot be decoded.
func readDocument(w http.ResponseWriter, r *http.Request) (*arch.Document, bool) {
	doc, err := arch.Read(http.MaxBytesReader(w, r.Body, arch.MaxSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) listArchitectures(w http.ResponseWriter, r *http.Request) {
	list, err := s.saves.List(r.Context())
	if err != nil {
		slog.Error("server: listing architectures", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getArchitecture(w http.ResponseWriter, r *http.Request) {
	doc, err := s.saves.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, saves.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		slog.Error("server: getting architecture", "err", err)
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

// saveResponse is the response of putArchitecture: the summary of the
// saved document and the problems [arch.Document.Validate] found in it.
// Documents with problems are saved anyway, since the viewer shows them.
type saveResponse struct {
	saves.Summary
	Problems []string `json:"problems,omitempty"`
}

// putArchitecture saves the document in the body,
// responding with its summary.
func (s *Server) putArchitecture(w http.ResponseWriter, r *http.Request) {
	doc, ok := readDocument(w, r)
	if !ok {
		return
	}
	resp := saveResponse{}
	if err := doc.Validate(); err != nil {
		resp.Problems = strings.Split(err.Error(), "\n")
	}
	resp.Problems = append(resp.Problems, doc.Warnings()...)
	sum, err := s.saves.Put(r.Context(), doc)
	if err != nil {
		slog.Error("server: saving architecture", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp.Summary = sum
	s.metrics.Saves.Inc()
	slog.Info("server: architecture saved", "id", sum.ID, "name", sum.Name, "problems", len(resp.Problems))
	if s.cfg.Live && s.session != nil {
		doc.Info.ID = sum.ID
		errors.Log(s.do(r.Context(), func(ss *session.Session) { ss.SetDocument(doc) }))
	}
	writeJSON(w, http.StatusOK, resp)
}

// do runs fn with the session on its loop.
func (s *Server) do(ctx context.Context, fn func(ss *session.Session)) error {
	if s.session == nil {
		return errNoSession
	}
	return s.session.Do(ctx, func() { fn(s.session) })
}

// sessionError responds to a failed call of the session.
func sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoSession) || errors.Is(err, session.ErrClosed) {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	var doc *arch.Document
	if err := s.do(r.Context(), func(ss *session.Session) { doc = ss.Document() }); err != nil {
		sessionError(w, err)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, errors.New("no document"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// putDocument replaces the document of the session, responding with
// the summary of the rebuilt scene. Dangling references are reported
// through notifications rather than rejected.
func (s *Server) putDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := readDocument(w, r)
	if !ok {
		return
	}
	var si *session.SceneInfo
	err := s.do(r.Context(), func(ss *session.Session) {
		ss.SetDocument(doc)
		si = ss.SceneInfo()
	})
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, si)
}

func (s *Server) getScene(w http.ResponseWriter, r *http.Request) {
	var si *session.SceneInfo
	if err := s.do(r.Context(), func(ss *session.Session) { si = ss.SceneInfo() }); err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, si)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	var st session.Stats
	if err := s.do(r.Context(), func(ss *session.Session) { st = ss.Stats() }); err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
