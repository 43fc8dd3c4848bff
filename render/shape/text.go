// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TextDepth is the depth of a text slab relative to its height.
const TextDepth = .2

// unitsPPEM is the size at which glyphs are measured; advances
// are divided by it to get sizes relative to the font height.
const unitsPPEM = 1024

var labelFont = sync.OnceValue(func() *sfnt.Font {
	return errors.Must1(sfnt.Parse(goregular.TTF))
})

// TextWidth returns the advance width of the given text in the Go
// regular font, for a font height of 1. Runes that the font does not
// have are measured as the replacement glyph.
func TextWidth(text string) float32 {
	f := labelFont()
	var buf sfnt.Buffer
	ppem := fixed.I(unitsPPEM)
	var w fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for i, r := range []rune(text) {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			if k, err := f.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
				w += k
			}
		}
		adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		w += adv
		prev = gi
	}
	return float32(w) / 64 / unitsPPEM
}

// NewText returns a slab in the XY plane sized to hold the given text
// at the given height, with its lower left front corner at 0.
// Use [Mesh.Center] to center it.
func NewText(text string, height float32) *Mesh {
	w := math32.Max(TextWidth(text)*height, height*.1)
	d := height * TextDepth
	ms := NewBox(w, height, d)
	ms.Name = "text"
	ms.Translate(math32.Vec3(w/2, height/2, d/2))
	return ms
}
