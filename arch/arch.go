// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arch defines the architecture document: the single structure
// describing the components, connections and groups of a software
// architecture, together with the scene settings used to display it.
//
// A document is always replaced wholesale; it is never patched in place
// by the viewer. Components are referenced from connections and groups by
// identifier, and those references are resolved lazily, so a document may
// contain dangling references (see [Document.FindComponent]).
package arch

import (
	"encoding/json"
	"fmt"

	"cogentcore.org/core/math32"
)

// CurrentVersion is the document format version written by this package.
const CurrentVersion = "1.0.0"

// Document is the root of an architecture document.
type Document struct {

	// Info is the descriptive information about the architecture.
	Info Info `json:"info"`

	// Scene has the scene level settings: camera, fog and text.
	Scene Scene `json:"scene"`

	// Components are the visual entities of the architecture.
	// A nil list means the section is missing, which is different
	// from an empty list.
	Components []Component `json:"components"`

	// Connections are the animated links between components.
	Connections []Connection `json:"connections"`

	// Groups are named clusters of components drawn with a shared
	// bounding wireframe.
	Groups []Group `json:"groups"`
}

// Info has the descriptive information about a document.
type Info struct {

	// ID is the unique identifier used by the save server.
	// It is assigned when a document without one is saved.
	ID string `json:"id,omitempty"`

	// Name is the display name of the architecture.
	Name string `json:"name"`

	// Description is a markdown description of the architecture.
	Description string `json:"description"`

	// Version is the document format version.
	Version string `json:"version,omitempty"`
}

// Scene has the scene level settings of a document.
type Scene struct {
	Camera Camera `json:"camera"`
	Fog    Fog    `json:"fog"`
	Text   Text   `json:"text"`
}

// Camera is the initial camera placement.
type Camera struct {

	// Position is the camera position.
	Position Vec3 `json:"position"`

	// LookAt is the point the camera looks at; nil means the origin.
	LookAt *Vec3 `json:"lookAt,omitempty"`
}

// Target returns the look-at point, defaulting to the origin.
func (c *Camera) Target() Vec3 {
	if c.LookAt == nil {
		return Vec3{}
	}
	return *c.LookAt
}

// Fog is the distance fog of the scene.
type Fog struct {
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
}

// Text has the settings for the labels above each component.
type Text struct {

	// Scale is the global scale of every label.
	Scale float64 `json:"scale"`

	// Rotate makes labels turn to face the horizontal bearing of the camera.
	Rotate bool `json:"rotate"`
}

// Component is a visual entity representing an application or server.
type Component struct {

	// ID is the stable identifier of the component.
	// When empty, [Component.Name] is used as the identifier.
	ID string `json:"id,omitempty"`

	// Name is the display name of the component.
	Name string `json:"name"`

	// Type is the optional kind of component: "app" or "server".
	Type string `json:"type,omitempty"`

	// Object is the 3D representation of the component.
	Object Object `json:"object"`
}

// Key returns the identifier of the component.
func (c *Component) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Label returns the name shown for the component.
func (c *Component) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Object is the 3D representation of a component.
type Object struct {

	// Color is the color as a #RRGGBB hex string.
	Color string `json:"color"`

	// Position is the position in world coordinates.
	Position Vec3 `json:"position"`

	// Rotation is the Euler XYZ rotation in degrees.
	Rotation Vec3 `json:"rotation"`

	// Scale is the per-axis scale.
	Scale Vec3 `json:"scale"`

	// Geometry is the primitive used to draw the component.
	Geometry Geometry `json:"geometry"`

	// Visible is whether the object is drawn; nil means visible.
	Visible *bool `json:"visible,omitempty"`
}

// IsVisible returns whether the object is drawn.
func (o *Object) IsVisible() bool {
	return o.Visible == nil || *o.Visible
}

// Connection is a directed or bidirectional link between two components.
type Connection struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	// Source is the identifier of the source component.
	Source string `json:"source"`

	// Target is the identifier of the target component.
	Target string `json:"target"`

	// Flow is the direction of the pulse animation.
	Flow Flow `json:"flow,omitempty"`

	// InRate is the pulse rate flowing from target to source.
	InRate float64 `json:"inRate"`

	// OutRate is the pulse rate flowing from source to target.
	OutRate float64 `json:"outRate"`

	InPacketSize  float64 `json:"inPacketSize"`
	OutPacketSize float64 `json:"outPacketSize"`

	// Visible is whether the connection is drawn; nil means visible.
	Visible *bool `json:"visible,omitempty"`
}

// IsVisible returns whether the connection is drawn.
func (c *Connection) IsVisible() bool {
	return c.Visible == nil || *c.Visible
}

// Label returns the name shown for the connection.
func (c *Connection) Label() string {
	if c.Name != "" {
		return c.Name
	}
	if c.ID != "" {
		return c.ID
	}
	return c.Source + " -> " + c.Target
}

// Group is a named cluster of components.
type Group struct {
	Name string `json:"name"`

	// Components are the identifiers of the member components.
	Components []string `json:"components"`

	BoundingBox BoundingBox `json:"boundingBox"`
}

// BoundingBox is the wireframe drawn around the members of a group.
type BoundingBox struct {

	// Padding is added to every side of the union of the member bounds.
	Padding float64 `json:"padding"`

	// Color is the color as a #RRGGBB hex string.
	Color string `json:"color"`

	// Visible is whether the box is drawn; nil means visible.
	Visible *bool `json:"visible,omitempty"`
}

// IsVisible returns whether the box is drawn.
func (b *BoundingBox) IsVisible() bool {
	return b.Visible == nil || *b.Visible
}

// Bool returns a pointer to the given value, for the optional
// visibility flags.
func Bool(b bool) *bool {
	return &b
}

// Vec3 is a 3-element vector as stored in documents.
// Decoding anything other than an array of exactly 3 numbers is an error.
type Vec3 [3]float64

// V3 returns a new [Vec3].
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Vec3FromSlice returns a [Vec3] from a slice, which must have 3 elements.
func Vec3FromSlice(s []float64) (Vec3, error) {
	if len(s) != 3 {
		return Vec3{}, fmt.Errorf("vector must have 3 elements, not %d", len(s))
	}
	return Vec3{s[0], s[1], s[2]}, nil
}

func (v *Vec3) UnmarshalJSON(b []byte) error {
	var s []float64
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid vector %s: %w", b, err)
	}
	nv, err := Vec3FromSlice(s)
	if err != nil {
		return err
	}
	*v = nv
	return nil
}

// Vector3 returns the vector in single precision.
func (v Vec3) Vector3() math32.Vector3 {
	return math32.Vec3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// FromVector3 returns a [Vec3] from a single precision vector.
func FromVector3(v math32.Vector3) Vec3 {
	return Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Slice returns the vector as a slice.
func (v Vec3) Slice() []float64 {
	return []float64{v[0], v[1], v[2]}
}

// New returns a new empty document with the default scene settings
// used when creating a document from scratch.
func New(name, description string) *Document {
	return &Document{
		Info: Info{Name: name, Description: description, Version: CurrentVersion},
		Scene: Scene{
			Camera: Camera{Position: V3(0, 20, 20)},
			Fog:    Fog{Near: 0, Far: 100},
			Text:   Text{Scale: 1, Rotate: true},
		},
		Components:  []Component{},
		Connections: []Connection{},
		Groups:      []Group{},
	}
}

// NewComponent returns a component with the defaults used when
// a component is created from the sidebar.
func NewComponent(id string) Component {
	return Component{
		ID:   id,
		Name: id,
		Type: "app",
		Object: Object{
			Color:    "#ffffff",
			Scale:    V3(1, 1, 1),
			Geometry: Box,
		},
	}
}

// FindComponent returns the index of the component with the given
// identifier, falling back on a match by name. It returns false
// if there is no such component.
func (d *Document) FindComponent(ref string) (int, bool) {
	if ref == "" {
		return -1, false
	}
	for i := range d.Components {
		if d.Components[i].Key() == ref {
			return i, true
		}
	}
	for i := range d.Components {
		if d.Components[i].Name == ref {
			return i, true
		}
	}
	return -1, false
}

// ComponentKeys returns the identifiers of all components, in order.
func (d *Document) ComponentKeys() []string {
	keys := make([]string, len(d.Components))
	for i := range d.Components {
		keys[i] = d.Components[i].Key()
	}
	return keys
}

// ComponentLabel returns the display name of the component the given
// reference resolves to, or the reference itself if it does not resolve.
func (d *Document) ComponentLabel(ref string) string {
	if i, ok := d.FindComponent(ref); ok {
		return d.Components[i].Label()
	}
	return ref
}
