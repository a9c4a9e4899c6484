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
	"fmt"
	"sync"

	xfont "golang.org/x/image/font"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/pdf"
)

// collectionProgram is a single face from a TrueType collection.
type collectionProgram struct {
	f      *xsfnt.Font
	upem   float64
	psName string

	mu  sync.Mutex
	buf xsfnt.Buffer
}

func parseCollection(data []byte, index int) (*collectionProgram, error) {
	c, err := xsfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("%w: face %d not in collection of %d fonts",
			pdf.ErrRangeCheck, index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, err
	}

	p := &collectionProgram{
		f:    f,
		upem: float64(f.UnitsPerEm()),
	}
	if p.upem <= 0 {
		p.upem = 1000
	}
	p.psName, _ = f.Name(&p.buf, xsfnt.NameIDPostScript)
	return p, nil
}

func (p *collectionProgram) Format() font.Format {
	return font.TrueType
}

func (p *collectionProgram) PostScriptName() string {
	return p.psName
}

func (p *collectionProgram) FontMatrix() matrix.Matrix {
	return matrix.Matrix{1 / p.upem, 0, 0, 1 / p.upem, 0, 0}
}

func (p *collectionProgram) BuiltinEncoding() []string {
	return nil
}

func (p *collectionProgram) NumGlyphs() int {
	return p.f.NumGlyphs()
}

func (p *collectionProgram) IsCIDKeyed() bool {
	return false
}

func (p *collectionProgram) Advance(code byte, glyphName string) (vec.Vec2, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range candidateRunes(code, glyphName, p.psName) {
		gid, err := p.f.GlyphIndex(&p.buf, r)
		if err != nil || gid == 0 {
			continue
		}
		// At a size of one unit per em, advances are given in font units.
		ppem := fixed.Int26_6(p.upem * 64)
		adv, err := p.f.GlyphAdvance(&p.buf, gid, ppem, xfont.HintingNone)
		if err != nil {
			return vec.Vec2{}, false
		}
		return vec.Vec2{X: float64(adv) / 64 * 1000 / p.upem}, true
	}
	return vec.Vec2{}, false
}
