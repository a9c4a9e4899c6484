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
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/pdffont/font"
)

type type1Program struct {
	f  *type1.Font
	fm matrix.Matrix
}

func parseType1(data []byte) (*type1Program, error) {
	f, err := type1.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &type1Program{
		f:  f,
		fm: toMatrix(f.FontInfo.FontMatrix[:]),
	}, nil
}

func (p *type1Program) Format() font.Format {
	return font.Type1
}

func (p *type1Program) PostScriptName() string {
	return p.f.FontInfo.FontName
}

func (p *type1Program) FontMatrix() matrix.Matrix {
	return p.fm
}

func (p *type1Program) BuiltinEncoding() []string {
	return p.f.Encoding
}

func (p *type1Program) NumGlyphs() int {
	return len(p.f.Glyphs)
}

func (p *type1Program) IsCIDKeyed() bool {
	return false
}

func (p *type1Program) Advance(code byte, glyphName string) (vec.Vec2, bool) {
	if glyphName == "" && int(code) < len(p.f.Encoding) {
		glyphName = p.f.Encoding[code]
	}
	g, ok := p.f.Glyphs[glyphName]
	if !ok || g == nil {
		return vec.Vec2{}, false
	}
	return advance(p.fm, float64(g.WidthX)), true
}
