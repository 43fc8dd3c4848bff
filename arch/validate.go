// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arch

import (
	"fmt"
	"image/color"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Validate returns all of the problems with the document joined into
// one error, or nil if it is valid. Dangling references are not errors;
// use [Document.Warnings] for those.
//
// The viewer never requires a valid document; validation is applied
// when documents are saved to a server or checked from the command line.
func (d *Document) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	if d.Info.Name == "" {
		add("invalid info: name is empty")
	}
	if d.Info.Description == "" {
		add("invalid info: description is empty")
	}
	if d.Scene.Fog.Near < 0 {
		add("invalid scene: fog near is negative")
	}
	if d.Scene.Fog.Far < 10 {
		add("invalid scene: fog far is less than 10")
	}
	if d.Scene.Text.Scale < 0 {
		add("invalid scene: text scale is negative")
	}

	seen := map[string]bool{}
	for i := range d.Components {
		c := &d.Components[i]
		key := c.Key()
		if key == "" {
			add("invalid component %d: name is empty", i)
		} else if seen[key] {
			add("invalid component %q: duplicate identifier", key)
		}
		seen[key] = true
		if c.Type != "" && c.Type != "app" && c.Type != "server" {
			add("invalid component %q: invalid type %q", key, c.Type)
		}
		if _, err := ParseColor(c.Object.Color); err != nil {
			add("invalid component %q: %w", key, err)
		}
		if c.Object.Geometry != "" && !c.Object.Geometry.IsValid() {
			add("invalid component %q: invalid geometry %q", key, c.Object.Geometry)
		}
	}
	for i := range d.Groups {
		g := &d.Groups[i]
		if g.Name == "" {
			add("invalid group %d: name is empty", i)
		}
		for _, m := range g.Components {
			if m == "" {
				add("invalid group %q: component name is empty", g.Name)
			}
		}
		if g.BoundingBox.Color != "" {
			if _, err := ParseColor(g.BoundingBox.Color); err != nil {
				add("invalid group %q: %w", g.Name, err)
			}
		}
		if g.BoundingBox.Padding < 0 {
			add("invalid group %q: padding is negative", g.Name)
		}
	}
	for i := range d.Connections {
		c := &d.Connections[i]
		if c.Source == "" {
			add("invalid connection %d: source is empty", i)
		}
		if c.Target == "" {
			add("invalid connection %d: target is empty", i)
		}
		if c.Flow != "" && !c.Flow.IsValid() {
			add("invalid connection %q: invalid flow %q", c.Label(), c.Flow)
		}
		if c.InRate < 0 || c.OutRate < 0 {
			add("invalid connection %q: rate is negative", c.Label())
		}
	}
	return errors.Join(errs...)
}

// Warnings returns a message for every reference from a connection or
// group to a component that does not exist, with a suggestion when a
// similar identifier exists.
func (d *Document) Warnings() []string {
	var ws []string
	keys := d.ComponentKeys()
	check := func(owner, ref string) {
		if ref == "" {
			return
		}
		if _, ok := d.FindComponent(ref); ok {
			return
		}
		ws = append(ws, fmt.Sprintf("%s: %s", owner, ReferenceError(ref, keys)))
	}
	for i := range d.Connections {
		c := &d.Connections[i]
		check("connection "+c.Label(), c.Source)
		check("connection "+c.Label(), c.Target)
	}
	for i := range d.Groups {
		g := &d.Groups[i]
		for _, m := range g.Components {
			check("group "+g.Name, m)
		}
	}
	return ws
}

// ReferenceError returns the message for a reference to a component
// that does not exist, suggesting the closest of the given identifiers.
func ReferenceError(ref string, keys []string) string {
	msg := fmt.Sprintf("component %q not found", ref)
	if s, ok := Suggest(ref, keys); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}

// SuggestThreshold is the minimum similarity for [Suggest].
const SuggestThreshold = 0.5

// Suggest returns the candidate most similar to the given string by
// Levenshtein similarity, if any is at least [SuggestThreshold] similar.
func Suggest(s string, candidates []string) (string, bool) {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	best, bestSim := "", 0.0
	for _, c := range slices.Compact(slices.Sorted(slices.Values(candidates))) {
		if c == "" {
			continue
		}
		sim := strutil.Similarity(s, c, lev)
		if sim > bestSim {
			best, bestSim = c, sim
		}
	}
	if bestSim < SuggestThreshold {
		return "", false
	}
	return best, true
}

// ParseColor parses a #RRGGBB hex color.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q: must be #RRGGBB", s)
	}
	c, err := colors.FromHex(s[1:])
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Luma returns the perceived luminance of a #RRGGBB color in [0, 255],
// or -1 if the color is invalid.
func Luma(s string) float64 {
	c, err := ParseColor(s)
	if err != nil {
		return -1
	}
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}
