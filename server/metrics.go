// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the Prometheus metrics of a [Server].
type Metrics struct {
	Registry *prometheus.Registry

	// Requests counts HTTP requests by route pattern, method and status.
	Requests *prometheus.CounterVec

	// Saves counts saved architectures.
	Saves prometheus.Counter
}

// NewMetrics returns the metrics of a server with the given websocket
// hub and optional session.
func NewMetrics(h *hub, sess *session.Session) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ennoea",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		Saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ennoea",
			Name:      "saves_total",
			Help:      "Architectures saved.",
		}),
	}
	m.Registry.MustRegister(
		m.Requests,
		m.Saves,
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "ennoea",
			Name:      "websocket_clients",
			Help:      "Connected websocket clients.",
		}, func() float64 { return float64(h.len()) }),
	)
	if sess != nil {
		m.Registry.MustRegister(newSessionCollector(sess))
	}
	return m
}

// Handler returns the handler of the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// middleware counts every request by its route pattern.
func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(code)).Inc()
	})
}

// sessionCollector collects the counters of a session on its loop.
type sessionCollector struct {
	sess *session.Session

	applies        *prometheus.Desc
	sceneRebuilds  *prometheus.Desc
	objectRebuilds *prometheus.Desc
	skipped        *prometheus.Desc
	frames         *prometheus.Desc
	pulses         *prometheus.Desc
	pickable       *prometheus.Desc
}

func newSessionCollector(sess *session.Session) *sessionCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("ennoea", "session", name), help, nil, nil)
	}
	return &sessionCollector{
		sess:           sess,
		applies:        desc("documents_applied_total", "Documents applied by the reconciler."),
		sceneRebuilds:  desc("scene_rebuilds_total", "Scene settings applications."),
		objectRebuilds: desc("object_rebuilds_total", "Rebuilds of the scene objects."),
		skipped:        desc("documents_skipped_total", "Documents with no changes."),
		frames:         desc("frames_total", "Frames rendered."),
		pulses:         desc("active_pulses", "Running connection pulse timers."),
		pickable:       desc("pickable_objects", "Objects tested by pointer picking."),
	}
}

func (sc *sessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- sc.applies
	ch <- sc.sceneRebuilds
	ch <- sc.objectRebuilds
	ch <- sc.skipped
	ch <- sc.frames
	ch <- sc.pulses
	ch <- sc.pickable
}

func (sc *sessionCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var st session.Stats
	if errors.Log(sc.sess.Do(ctx, func() { st = sc.sess.Stats() })) != nil {
		return
	}
	counter := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	counter(sc.applies, st.Reconcile.Applies)
	counter(sc.sceneRebuilds, st.Reconcile.SceneRebuilds)
	counter(sc.objectRebuilds, st.Reconcile.ObjectRebuilds)
	counter(sc.skipped, st.Reconcile.Skipped)
	counter(sc.frames, st.Frames)
	gauge(sc.pulses, st.Pulses)
	gauge(sc.pickable, st.Pickable)
}
