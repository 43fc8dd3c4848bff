// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
)

// Material determines how an object is shaded.
type Material interface {

	// BaseColor returns the main color of the material.
	BaseColor() color.RGBA
}

// Basic is a flat colored material.
type Basic struct {

	// Color is the main color.
	Color color.RGBA

	// Emissive is the color emitted by the material, independent of lights.
	Emissive color.RGBA

	// Wireframe draws only the edges of the mesh.
	Wireframe bool
}

func (bm *Basic) BaseColor() color.RGBA {
	return bm.Color
}

// DefaultPacketSize is the length of a pulse along the line,
// as a fraction of the line length, when the packet size is not set.
const DefaultPacketSize = .1

// PulseUniforms are the values that the pulse shader reads each frame.
type PulseUniforms struct {

	// Time is the elapsed animation time in seconds.
	Time float32

	// SourceColor is the color at the start of the line.
	SourceColor color.RGBA

	// TargetColor is the color at the end of the line.
	TargetColor color.RGBA

	// InRate is the number of pulses per second flowing from
	// the end of the line to the start; 0 means none.
	InRate float32

	// OutRate is the number of pulses per second flowing from
	// the start of the line to the end; 0 means none.
	OutRate float32

	// InPacketSize is the length of an in pulse as a fraction
	// of the line; 0 means [DefaultPacketSize].
	InPacketSize float32

	// OutPacketSize is the length of an out pulse as a fraction
	// of the line; 0 means [DefaultPacketSize].
	OutPacketSize float32
}

// Pulse is a shader material for connection lines: the color blends
// from the source color to the target color along the line, and bright
// pulses travel along it at the in and out rates.
type Pulse struct {
	Uniforms PulseUniforms

	// Refresh is the interval at which the uniforms are advanced.
	Refresh time.Duration

	// Ticks is the number of times the uniforms have been advanced.
	Ticks int
}

// NewPulse returns a new pulse material.
func NewPulse(source, target color.RGBA, inRate, outRate float32, refresh time.Duration) *Pulse {
	return &Pulse{
		Uniforms: PulseUniforms{SourceColor: source, TargetColor: target, InRate: inRate, OutRate: outRate},
		Refresh:  refresh,
	}
}

func (pm *Pulse) BaseColor() color.RGBA {
	return pm.Uniforms.SourceColor
}

// Tick advances the time uniform by one refresh interval.
func (pm *Pulse) Tick() {
	pm.Ticks++
	pm.Uniforms.Time += float32(pm.Refresh.Seconds())
}

// Active returns whether any pulse travels along the line.
func (pm *Pulse) Active() bool {
	return pm.Uniforms.InRate > 0 || pm.Uniforms.OutRate > 0
}

// OutPosition returns the position in [0, 1) of the out pulse along the line.
func (pm *Pulse) OutPosition() float32 {
	return fract(pm.Uniforms.Time * pm.Uniforms.OutRate)
}

// InPosition returns the position in (0, 1] of the in pulse along the line.
func (pm *Pulse) InPosition() float32 {
	return 1 - fract(pm.Uniforms.Time*pm.Uniforms.InRate)
}

// ColorAt returns the color of the line at the given position in [0, 1].
func (pm *Pulse) ColorAt(t float32) color.RGBA {
	u := &pm.Uniforms
	base := colors.Blend(colors.RGB, 100*(1-t), u.SourceColor, u.TargetColor)
	var glow float32
	if u.OutRate > 0 {
		glow = math32.Max(glow, pulseGlow(t, pm.OutPosition(), u.OutPacketSize))
	}
	if u.InRate > 0 {
		glow = math32.Max(glow, pulseGlow(t, pm.InPosition(), u.InPacketSize))
	}
	if glow == 0 {
		return base
	}
	return colors.Blend(colors.RGB, 100*(1-glow), base, colors.White)
}

// pulseGlow returns the brightness in [0, 1] at t of a pulse centered at pos.
func pulseGlow(t, pos, size float32) float32 {
	if size <= 0 {
		size = DefaultPacketSize
	}
	return math32.Max(0, 1-math32.Abs(t-pos)/size)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}
