// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the single authoritative holder of the
// architecture document, with deep-copy isolation at its boundary
// and synchronous change notification.
package store

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/ennoea/arch"
)

// Subscriber is a function called with a private copy of the new
// document every time the document is replaced.
type Subscriber func(doc *arch.Document) error

// SubscriptionID identifies a subscriber for [Store.Unsubscribe].
type SubscriptionID int

// Store holds the current document. Every [Store.Get] returns, and every
// subscriber receives, a copy that shares no memory with the stored state
// or with any other copy.
//
// Store is not safe for concurrent use: all calls must come from the
// goroutine that owns it, which is what makes notifications synchronous
// and ordered.
type Store struct {
	doc     *arch.Document
	subs    keylist.List[SubscriptionID, Subscriber]
	nextID  SubscriptionID
	version uint64
}

// New returns a new empty [Store].
func New() *Store {
	return &Store{}
}

// Get returns a deep copy of the current document, or nil
// if no document has been set.
func (st *Store) Get() *arch.Document {
	return st.doc.Clone()
}

// Set replaces the current document with a deep copy of the given one
// and then notifies every subscriber, in subscription order, each with
// its own deep copy. A subscriber that fails or panics is logged and
// does not prevent the remaining subscribers from running.
func (st *Store) Set(doc *arch.Document) {
	st.doc = doc.Clone()
	st.version++
	// subscribers may unsubscribe while being notified
	ids := append([]SubscriptionID(nil), st.subs.Keys...)
	for _, id := range ids {
		fn, ok := st.subs.AtTry(id)
		if !ok {
			continue
		}
		st.notify(id, fn)
	}
}

func (st *Store) notify(id SubscriptionID, fn Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("store: subscriber panicked", "subscriber", id, "panic", fmt.Sprint(r))
		}
	}()
	if err := fn(st.doc.Clone()); err != nil {
		slog.Error("store: subscriber failed", "subscriber", id, "err", err)
	}
}

// Subscribe adds the given function to the end of the subscriber list.
func (st *Store) Subscribe(fn Subscriber) SubscriptionID {
	st.nextID++
	st.subs.Set(st.nextID, fn)
	return st.nextID
}

// Unsubscribe removes the subscriber with the given id,
// returning false if there is no such subscriber.
func (st *Store) Unsubscribe(id SubscriptionID) bool {
	return st.subs.DeleteByKey(id)
}

// NumSubscribers returns the number of subscribers.
func (st *Store) NumSubscribers() int {
	return st.subs.Len()
}

// Version returns the number of times the document has been set.
func (st *Store) Version() uint64 {
	return st.version
}
