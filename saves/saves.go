// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package saves provides storage of architecture documents by identifier,
// as used by the save server. Backends live in sub-packages; [Memory]
// keeps documents in memory.
package saves

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/ennoea/arch"
	"github.com/google/uuid"
)

// ErrNotFound is returned by [Backend.Get] for an unknown identifier.
var ErrNotFound = errors.New("architecture not found")

// Summary describes a saved document.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastSaved time.Time `json:"lastSaved"`
}

// Backend stores documents by identifier. Implementations are safe
// for concurrent use.
type Backend interface {

	// List returns the summaries of all saved documents,
	// most recently saved first.
	List(ctx context.Context) ([]Summary, error)

	// Get returns the document with the given identifier,
	// or [ErrNotFound].
	Get(ctx context.Context, id string) (*arch.Document, error)

	// Put saves the document, replacing any document with the same
	// identifier. See [Prepare] for how the identifier is chosen.
	Put(ctx context.Context, doc *arch.Document) (Summary, error)

	// Close releases the resources of the backend.
	Close() error
}

// Prepare returns a copy of the document ready to be saved, together with
// its summary: a document without an identifier gets a new random one,
// and the save time is the current time.
func Prepare(doc *arch.Document) (*arch.Document, Summary) {
	d := doc.Clone()
	if d.Info.ID == "" {
		d.Info.ID = uuid.NewString()
	}
	return d, Summary{ID: d.Info.ID, Name: d.Info.Name, LastSaved: time.Now().UTC()}
}

// ValidID returns an error if the identifier cannot be used as a
// storage key. Identifiers are used as path elements by some backends.
func ValidID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid architecture id %q", id)
	}
	return nil
}

// SortSummaries sorts the summaries by descending save time,
// then by identifier.
func SortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.LastSaved.Compare(a.LastSaved); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Memory is a [Backend] that keeps documents in memory.
type Memory struct {
	mu   sync.Mutex
	docs map[string]*arch.Document
	sums map[string]Summary
}

// NewMemory returns a new empty memory backend.
func NewMemory() *Memory {
	return &Memory{docs: map[string]*arch.Document{}, sums: map[string]Summary{}}
}

func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := make([]Summary, 0, len(m.sums))
	for _, sm := range m.sums {
		s = append(s, sm)
	}
	SortSummaries(s)
	return s, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*arch.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d.Clone(), nil
}

func (m *Memory) Put(ctx context.Context, doc *arch.Document) (Summary, error) {
	d, sum := Prepare(doc)
	if err := ValidID(sum.ID); err != nil {
		return Summary{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[sum.ID] = d
	m.sums[sum.ID] = sum
	return sum, nil
}

func (m *Memory) Close() error { return nil }
