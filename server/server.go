// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server provides the HTTP server of the viewer: the save API
// for architecture documents, the API and websocket channel of the live
// session, health and metrics endpoints, and the static files of the
// web client.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config has the settings of a [Server].
type Config struct {

	// Addr is the address to listen on.
	Addr string

	// StaticDir is the directory of static files served at the root.
	// No static files are served if it is empty.
	StaticDir string

	// Live is whether saved documents are also set in the live session.
	Live bool

	// AllowedOrigins are the CORS origins. All origins are allowed
	// if it is empty.
	AllowedOrigins []string

	// Timeout is the timeout of API requests.
	Timeout time.Duration
}

// Server serves the save API and the live session.
type Server struct {
	cfg     Config
	saves   saves.Backend
	session *session.Session
	metrics *Metrics
	hub     *hub
	router  chi.Router

	// ctx bounds the work of websocket clients.
	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a new server storing documents in the given backend.
// The session is optional; without it the session endpoints return
// 503 Service Unavailable. The session must not be running yet, since
// the server adds its listeners to it.
func New(cfg Config, backend saves.Backend, sess *session.Session) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	s := &Server{cfg: cfg, saves: backend, session: sess}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.hub = newHub()
	s.metrics = NewMetrics(s.hub, sess)
	if sess != nil {
		sess.OnDocument(s.hub.document)
		sess.OnNotification(s.hub.notification)
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the metrics of the server.
func (s *Server) Metrics() *Metrics { return s.metrics }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if len(s.cfg.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = s.cfg.AllowedOrigins
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", s.metrics.Handler())

	// the websocket outlives any request timeout
	r.Get("/ws", s.serveWebsocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))
		r.Route("/architectures", func(r chi.Router) {
			r.Get("/", s.listArchitectures)
			r.Put("/", s.putArchitecture)
			r.Get("/{id}", s.getArchitecture)
		})
		r.Route("/session", func(r chi.Router) {
			r.Get("/document", s.getDocument)
			r.Put("/document", s.putDocument)
			r.Get("/scene", s.getScene)
			r.Get("/stats", s.getStats)
		})
	})

	if s.cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return r
}

// ListenAndServe serves on the configured address until the context
// is done, and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("server: listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()
	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}
	s.Close()
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := hs.Shutdown(sctx)
	if rerr := <-errc; !errors.Is(rerr, http.ErrServerClosed) && err == nil {
		err = rerr
	}
	slog.Info("server: stopped")
	return err
}

// Close disconnects every websocket client.
func (s *Server) Close() {
	s.cancel()
	s.hub.closeAll()
}
