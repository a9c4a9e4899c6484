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

package program

import (
	"bytes"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/encoding"
)

// sfntProgram is a TrueType or OpenType font.
type sfntProgram struct {
	f      *sfnt.Font
	format font.Format
	fm     matrix.Matrix
	cmap   cmap.Subtable
}

func parseSfnt(data []byte, format font.Format) (*sfntProgram, error) {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	p := &sfntProgram{
		f:      f,
		format: format,
		fm:     toMatrix(f.FontMatrix[:]),
	}
	// Fonts without a usable cmap can still be used via glyph names.
	if sub, err := f.CMapTable.GetBest(); err == nil {
		p.cmap = sub
	}
	return p, nil
}

func (p *sfntProgram) Format() font.Format {
	return p.format
}

func (p *sfntProgram) PostScriptName() string {
	return p.f.PostScriptName()
}

func (p *sfntProgram) FontMatrix() matrix.Matrix {
	return p.fm
}

func (p *sfntProgram) BuiltinEncoding() []string {
	return nil
}

func (p *sfntProgram) NumGlyphs() int {
	return p.f.NumGlyphs()
}

func (p *sfntProgram) IsCIDKeyed() bool {
	return false
}

func (p *sfntProgram) Advance(code byte, glyphName string) (vec.Vec2, bool) {
	gid := p.lookup(code, glyphName)
	if gid == 0 {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: p.f.GlyphWidthPDF(gid)}, true
}

func (p *sfntProgram) lookup(code byte, glyphName string) glyph.ID {
	if p.cmap == nil {
		return 0
	}
	for _, r := range candidateRunes(code, glyphName, p.f.PostScriptName()) {
		if gid := p.cmap.Lookup(r); gid != 0 && int(gid) < p.f.NumGlyphs() {
			return gid
		}
	}
	return 0
}

// candidateRunes lists the cmap entries to try for a character code.
// If a glyph name is given, only the character it maps to is tried.
// Otherwise the code itself is used, and also the range U+F000 to U+F0FF,
// where symbolic fonts commonly map their codes.
func candidateRunes(code byte, glyphName, fontName string) []rune {
	if glyphName != "" && glyphName != encoding.NotDef {
		rr := []rune(names.ToUnicode(glyphName, fontName))
		if len(rr) != 1 {
			return nil
		}
		return rr
	}
	return []rune{rune(code), 0xF000 + rune(code)}
}
