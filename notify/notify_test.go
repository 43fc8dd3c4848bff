// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n := New(Success, "saved")
	assert.Equal(t, "Success: saved", n.Message)
	assert.Equal(t, Duration, n.Duration)
	assert.Equal(t, "Error: failed", New(Error, "failed").Message)
	assert.Equal(t, "hello", New(Alert, "hello").Message)
	assert.Equal(t, "error", Error.String())

	var lv Levels
	require.NoError(t, lv.SetString("success"))
	assert.Equal(t, Success, lv)
	assert.Error(t, lv.SetString("Fatal"))
	b, err := json.Marshal(New(Error, "x"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"level":"error"`)
	var got Notification
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, Error, got.Level)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Success("a")
	r.Error("b")
	Errorf(r, "c %d", 1)
	r.Alert("d")
	assert.Equal(t, 2, r.Count(Error))
	assert.Equal(t, []string{"Error: b", "Error: c 1"}, r.Messages(Error))
	assert.Len(t, r.All(), 4)
	r.Reset()
	assert.Empty(t, r.All())
}

func TestMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	var got []Notification
	m := Multi{a, b, Func(func(n Notification) { got = append(got, n) })}
	m.Error("x")
	m.Success("y")
	m.Alert("z")
	assert.Len(t, a.All(), 3)
	assert.Len(t, b.All(), 3)
	assert.Len(t, got, 3)
	assert.Equal(t, Success, got[1].Level)
	Discard.Error("ignored")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Error("disk full")
	c.Success("saved")
	assert.Contains(t, buf.String(), "Error: disk full")
	assert.Contains(t, buf.String(), "Success: saved")
}
