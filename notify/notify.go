// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notify provides the sinks through which user-facing messages
// (successes, errors and plain alerts) are delivered. Sinks are fire and
// forget: they never return errors to the caller.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

//go:generate core generate

// Duration is how long a notification stays visible before it is
// dismissed automatically.
const Duration = 5 * time.Second

// Levels are the levels of notifications.
type Levels int32 //enums:enum -transform lower

const (
	// Alert is a plain message.
	Alert Levels = iota

	// Success reports that an operation succeeded.
	Success

	// Error reports that an operation failed.
	Error
)

// Notification is a message shown to the user.
type Notification struct {
	Level Levels `json:"level"`

	// Message is the full message, including the level prefix.
	Message string `json:"message"`

	Time time.Time `json:"time"`

	// Duration is how long the notification is shown.
	Duration time.Duration `json:"duration"`
}

// New returns a new notification at the given level, with the message
// prefixed by "Success: " or "Error: " for those levels.
func New(level Levels, msg string) Notification {
	switch level {
	case Success:
		msg = "Success: " + msg
	case Error:
		msg = "Error: " + msg
	}
	return Notification{Level: level, Message: msg, Time: time.Now(), Duration: Duration}
}

// Sink receives notifications.
type Sink interface {
	Success(msg string)
	Error(msg string)
	Alert(msg string)
}

// Errorf sends a formatted error notification to the given sink.
func Errorf(s Sink, format string, args ...any) {
	s.Error(fmt.Sprintf(format, args...))
}

// Func is a [Sink] that calls a function with every notification.
type Func func(n Notification)

func (f Func) Success(msg string) { f(New(Success, msg)) }
func (f Func) Error(msg string)   { f(New(Error, msg)) }
func (f Func) Alert(msg string)   { f(New(Alert, msg)) }

// Multi is a [Sink] that sends every notification to each of its sinks.
type Multi []Sink

func (m Multi) Success(msg string) {
	for _, s := range m {
		s.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, s := range m {
		s.Error(msg)
	}
}

func (m Multi) Alert(msg string) {
	for _, s := range m {
		s.Alert(msg)
	}
}

// Discard is a [Sink] that drops every notification.
var Discard Sink = Func(func(Notification) {})

// Console is a [Sink] that prints notifications in color to a terminal
// and records each one as a structured log record.
type Console struct {
	out *termenv.Output
	mu  sync.Mutex
}

// NewConsole returns a console sink writing to the given writer,
// or to standard error if it is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{out: termenv.NewOutput(w)}
}

func (c *Console) Success(msg string) { c.print(New(Success, msg)) }
func (c *Console) Error(msg string)   { c.print(New(Error, msg)) }
func (c *Console) Alert(msg string)   { c.print(New(Alert, msg)) }

func (c *Console) print(n Notification) {
	st := c.out.String(n.Message)
	switch n.Level {
	case Success:
		st = st.Foreground(c.out.Color("#00c853"))
		slog.Info(n.Message)
	case Error:
		st = st.Foreground(c.out.Color("#ff5252")).Bold()
		slog.Error(n.Message)
	default:
		slog.Info(n.Message)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, st.String())
}

// Recorder is a [Sink] that keeps every notification, for tests and
// for delivering notifications to clients later. It is safe for
// concurrent use.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Success(msg string) { r.add(New(Success, msg)) }
func (r *Recorder) Error(msg string)   { r.add(New(Error, msg)) }
func (r *Recorder) Alert(msg string)   { r.add(New(Alert, msg)) }

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

// All returns a copy of every notification received so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Count returns the number of notifications received at the given level.
func (r *Recorder) Count(level Levels) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, nt := range r.list {
		if nt.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages received at the given level.
func (r *Recorder) Messages(level Levels) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var msgs []string
	for _, nt := range r.list {
		if nt.Level == level {
			msgs = append(msgs, nt.Message)
		}
	}
	return msgs
}

// Reset forgets every notification.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = nil
}
