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

// Package program parses font programs and gives access to the glyph
// information needed for font substitution.
//
// Four kinds of font programs are supported: Type 1 fonts (PFA or PFB),
// bare CFF data, OpenType/TrueType fonts, and single faces from TrueType
// collections.
package program

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/pdf"
)

// Program is a parsed font program.
type Program interface {
	// Format returns the format the program was parsed as.
	Format() font.Format

	// PostScriptName returns the name of the font, if known.
	PostScriptName() string

	// FontMatrix maps glyph space to text space.
	FontMatrix() matrix.Matrix

	// BuiltinEncoding returns the encoding stored in the font program,
	// or nil if the font does not have a built-in encoding.
	BuiltinEncoding() []string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// IsCIDKeyed reports whether glyphs are selected by CID.
	IsCIDKeyed() bool

	// Advance returns the advance vector of the glyph for the given
	// character code, in thousandths of text space units.  If glyphName is
	// not empty it is used to select the glyph, otherwise the built-in
	// encoding or character map of the font is used.  The second return
	// value is false if the font has no glyph for the code.
	Advance(code byte, glyphName string) (vec.Vec2, bool)
}

// Parse parses a font program of the given format.  For TrueType
// collections, index selects the face.
//
// Data which cannot be parsed gives an error wrapping
// [pdf.ErrInvalidFont].
func Parse(format font.Format, data []byte, index int) (Program, error) {
	var p Program
	var err error
	switch format {
	case font.Type1:
		p, err = parseType1(data)
	case font.CFF:
		if bytes.HasPrefix(data, []byte("OTTO")) {
			p, err = parseSfnt(data, font.CFF)
		} else {
			p, err = parseCFF(data)
		}
	case font.TrueType:
		if font.IsCollection(data) {
			p, err = parseCollection(data, index)
		} else {
			p, err = parseSfnt(data, font.TrueType)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported font format %s", pdf.ErrInvalidFont, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", pdf.ErrInvalidFont, format, err)
	}
	return p, nil
}

// GlyphWidth returns the horizontal advance of a glyph, in thousandths of
// text space units.
func GlyphWidth(p Program, code byte, glyphName string) (float64, bool) {
	adv, ok := p.Advance(code, glyphName)
	if !ok {
		return 0, false
	}
	return adv.X, true
}

// toMatrix converts the first six entries of a font matrix.
func toMatrix(fm []float64) matrix.Matrix {
	if len(fm) < 6 {
		return matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}
	}
	var m matrix.Matrix
	copy(m[:], fm)
	return m
}

// advance converts a width in glyph space units into an advance vector in
// thousandths of text space units.
func advance(fm matrix.Matrix, w float64) vec.Vec2 {
	return vec.Vec2{
		X: 1000 * fm[0] * w,
		Y: 1000 * fm[1] * w,
	}
}
