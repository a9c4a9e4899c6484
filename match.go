// seehuhn.de/go/pdffont - font resolution for PDF rendering
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdffont

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffont/font/encoding"
)

// matchGlyphWidths compares the widths declared in the font dictionary
// with the glyph widths of the font program, for the character codes
// first to last (inclusive).  If the glyphs of the font program are wider,
// the font matrix is scaled down so that the glyphs fit.  The font is
// never scaled up.
//
// Only codes with a non-zero declared width and an existing glyph are
// considered.  When the font matrix changes, the font is registered again
// in the font directory.
func (f *Font) matchGlyphWidths(first, last int) error {
	if f.Program == nil || f.Widths == nil || f.LastChar < f.FirstChar {
		return nil
	}

	lo := max(f.FirstChar, first, 0)
	hi := min(f.LastChar, last, 255)

	var declared, actual float64
	for code := lo; code <= hi; code++ {
		w, ok := f.Width(byte(code))
		if !ok || w == 0 {
			continue
		}
		var glyphName string
		if f.Encoding != nil {
			glyphName = f.Encoding[code]
			if glyphName == encoding.NotDef {
				continue
			}
		}
		adv, ok := f.Program.Advance(byte(code), glyphName)
		if !ok {
			continue
		}
		declared += w
		actual += math.Hypot(adv.X, adv.Y)
	}

	if declared == 0 || actual == 0 {
		return nil
	}
	ratio := declared / actual
	if ratio >= 1 {
		return nil
	}

	m := f.FontMatrix.Mul(matrix.Scale(ratio, ratio))
	if f.dir != nil {
		id, err := f.dir.Redefine(f.dirID, m)
		if err != nil {
			return err
		}
		f.dirID = id
	}

	f.FontMatrix = m
	scale := 1 / ratio
	for i := range f.Widths {
		f.Widths[i] *= scale
	}
	return nil
}
