// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import "cogentcore.org/core/base/keylist"

// KeyHandler handles a key, returning true to stop it from
// reaching any handler pushed before it.
type KeyHandler func(key string) bool

// KeyStack routes keys to handlers in reverse order of registration,
// so the most recently opened thing closes first on Escape.
type KeyStack struct {
	list   keylist.List[int, KeyHandler]
	nextID int
}

// Push adds a handler on top of the stack and returns
// its id for [KeyStack.Remove].
func (ks *KeyStack) Push(fn KeyHandler) int {
	ks.nextID++
	ks.list.Set(ks.nextID, fn)
	return ks.nextID
}

// Remove removes the handler with the given id.
func (ks *KeyStack) Remove(id int) bool {
	return ks.list.DeleteByKey(id)
}

// Len returns the number of handlers.
func (ks *KeyStack) Len() int {
	return ks.list.Len()
}

// HandleKey calls the handlers from the top of the stack down,
// until one of them returns true. It returns whether the key was handled.
func (ks *KeyStack) HandleKey(key string) bool {
	// handlers may remove themselves
	ids := append([]int(nil), ks.list.Keys...)
	for i := len(ids) - 1; i >= 0; i-- {
		fn, ok := ks.list.AtTry(ids[i])
		if !ok {
			continue
		}
		if fn(key) {
			return true
		}
	}
	return false
}
