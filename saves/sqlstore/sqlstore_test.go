// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBind(t *testing.T) {
	q := `UPDATE t SET a = ?, b = ? WHERE id = ?`
	s := &Store{ph: Question}
	assert.Equal(t, q, s.bind(q))
	s.ph = Dollar
	assert.Equal(t, `UPDATE t SET a = $1, b = $2 WHERE id = $3`, s.bind(q))
}
