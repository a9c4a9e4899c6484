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
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdffont/font"
)

// cffProgram is a bare CFF font, as embedded via FontFile3 with subtype
// Type1C or CIDFontType0C.
type cffProgram struct {
	f      *cff.Font
	fm     matrix.Matrix
	byName map[string]glyph.ID
	enc    []string
}

func parseCFF(data []byte) (*cffProgram, error) {
	f, err := cff.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	p := &cffProgram{
		f:      f,
		fm:     toMatrix(f.FontInfo.FontMatrix[:]),
		byName: make(map[string]glyph.ID, len(f.Glyphs)),
	}
	for gid, g := range f.Glyphs {
		if g.Name != "" {
			p.byName[g.Name] = glyph.ID(gid)
		}
	}
	if !f.IsCIDKeyed() && f.Encoding != nil {
		p.enc = make([]string, 256)
		for code, gid := range f.Encoding {
			if code < 256 && gid != 0 && int(gid) < len(f.Glyphs) {
				p.enc[code] = f.Glyphs[gid].Name
			}
		}
	}
	return p, nil
}

func (p *cffProgram) Format() font.Format {
	return font.CFF
}

func (p *cffProgram) PostScriptName() string {
	return p.f.FontInfo.FontName
}

func (p *cffProgram) FontMatrix() matrix.Matrix {
	return p.fm
}

func (p *cffProgram) BuiltinEncoding() []string {
	return p.enc
}

func (p *cffProgram) NumGlyphs() int {
	return len(p.f.Glyphs)
}

func (p *cffProgram) IsCIDKeyed() bool {
	return p.f.IsCIDKeyed()
}

func (p *cffProgram) Advance(code byte, glyphName string) (vec.Vec2, bool) {
	if p.f.IsCIDKeyed() {
		return vec.Vec2{}, false
	}
	if glyphName == "" && p.enc != nil {
		glyphName = p.enc[code]
	}
	gid, ok := p.byName[glyphName]
	if !ok {
		return vec.Vec2{}, false
	}
	return advance(p.fm, float64(p.f.Glyphs[gid].Width)), true
}
