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

// Package graphics implements the font related parts of a PDF content
// stream interpreter.
//
// A [Reader] keeps the current font of the graphics state, together with
// an operand stack, and executes the operators which select fonts (Tf) and
// which set glyph metrics inside the glyph procedures of Type 3 fonts (d0
// and d1).  Fonts are loaded using a [pdffont.Engine].
package graphics

import (
	"seehuhn.de/go/pdffont"
)

// State holds the font related parameters of the graphics state.
type State struct {
	// TextFont is the current font.  The State holds a reference to the
	// font, see [pdffont.Font.Acquire].
	TextFont *pdffont.Font

	// TextFontSize is the font size, in text space units.
	TextFontSize float64
}

// SetCurrentFont installs f as the current font.  The state acquires a
// reference to f and releases its reference to the previous font.  The
// caller keeps its own reference to f.
func (s *State) SetCurrentFont(f *pdffont.Font, size float64) {
	s.TextFontSize = size
	if f == s.TextFont {
		return
	}
	f.Acquire()
	old := s.TextFont
	s.TextFont = f
	old.Release()
}

// clone returns a copy of the state, which holds its own font reference.
func (s *State) clone() State {
	s.TextFont.Acquire()
	return *s
}

// release drops the font reference held by the state.
func (s *State) release() {
	s.TextFont.Release()
	s.TextFont = nil
}
