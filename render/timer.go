// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
)

// Timer is a handle to a repeating function registered with [Timers.Every].
// It must be stopped when the thing it animates goes away.
type Timer struct {
	id       int
	interval time.Duration
	next     time.Duration
	fn       func()
	timers   *Timers
}

// Stop stops the timer. It is safe to call more than once.
func (tm *Timer) Stop() {
	if tm == nil || tm.timers == nil {
		return
	}
	tm.timers.list.DeleteByKey(tm.id)
	tm.timers = nil
}

// Stopped returns whether the timer has been stopped.
func (tm *Timer) Stopped() bool {
	return tm == nil || tm.timers == nil
}

// Timers runs repeating functions on a clock that is advanced
// explicitly, by the frame loop or by tests.
type Timers struct {
	now    time.Duration
	list   keylist.List[int, *Timer]
	nextID int
}

// Every calls fn every interval of clock time, starting one interval
// from now. Intervals less than 1ms are raised to 1ms.
func (ts *Timers) Every(interval time.Duration, fn func()) *Timer {
	interval = max(interval, time.Millisecond)
	ts.nextID++
	tm := &Timer{id: ts.nextID, interval: interval, next: ts.now + interval, fn: fn, timers: ts}
	ts.list.Set(tm.id, tm)
	return tm
}

// Advance moves the clock forward by dt, calling every due timer once
// for each interval that elapsed. A panicking timer function is logged
// and stopped.
func (ts *Timers) Advance(dt time.Duration) {
	ts.now += dt
	ids := append([]int(nil), ts.list.Keys...)
	for _, id := range ids {
		tm, ok := ts.list.AtTry(id)
		if !ok {
			continue
		}
		for !tm.Stopped() && tm.next <= ts.now {
			tm.next += tm.interval
			if !ts.call(tm) {
				tm.Stop()
			}
		}
	}
}

func (ts *Timers) call(tm *Timer) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render: timer panicked", "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	tm.fn()
	return true
}

// Active returns the number of timers that have not been stopped.
func (ts *Timers) Active() int {
	return ts.list.Len()
}

// Now returns the current clock time.
func (ts *Timers) Now() time.Duration {
	return ts.now
}

// EaseFunc maps linear progress in [0, 1] to eased progress.
type EaseFunc func(t float32) float32

// Linear is no easing.
func Linear(t float32) float32 { return t }

// Power1Out starts fast and decelerates quadratically.
func Power1Out(t float32) float32 {
	return 1 - (1-t)*(1-t)
}

// Tween animates a vector from one value to another over a duration.
type Tween struct {
	From, To math32.Vector3

	Duration time.Duration

	Ease EaseFunc

	// Set is called with the value at each step, including the final value.
	Set func(v math32.Vector3)

	elapsed time.Duration
}

// Value returns the current value of the tween.
func (tw *Tween) Value() math32.Vector3 {
	t := float32(1)
	if tw.Duration > 0 {
		t = math32.Min(1, float32(tw.elapsed)/float32(tw.Duration))
	}
	if tw.Ease != nil {
		t = tw.Ease(t)
	}
	return tw.From.Add(tw.To.Sub(tw.From).MulScalar(t))
}

// Done returns whether the tween has reached its end.
func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.Duration
}

// Tweens runs named tweens, at most one per name.
type Tweens struct {
	list keylist.List[string, *Tween]
}

// Start starts the given tween under the given name, replacing any
// tween already running under that name. The replaced tween stops
// where it was: it is not completed.
func (ts *Tweens) Start(name string, tw *Tween) {
	ts.list.DeleteByKey(name)
	ts.list.Set(name, tw)
}

// Get returns the running tween with the given name, or nil.
func (ts *Tweens) Get(name string) *Tween {
	tw, _ := ts.list.AtTry(name)
	return tw
}

// Stop stops the tween with the given name without completing it.
func (ts *Tweens) Stop(name string) {
	ts.list.DeleteByKey(name)
}

// Advance advances every tween by dt, calls its Set function, and
// removes the tweens that are done.
func (ts *Tweens) Advance(dt time.Duration) {
	names := append([]string(nil), ts.list.Keys...)
	for _, name := range names {
		tw, ok := ts.list.AtTry(name)
		if !ok {
			continue
		}
		tw.elapsed += dt
		if tw.Set != nil {
			tw.Set(tw.Value())
		}
		// Set may have replaced the tween
		if cur, _ := ts.list.AtTry(name); cur == tw && tw.Done() {
			ts.list.DeleteByKey(name)
		}
	}
}

// Active returns the number of running tweens.
func (ts *Tweens) Active() int {
	return ts.list.Len()
}
