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

package graphics

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/pdf"
)

// GlyphContext describes the glyph procedure of a Type 3 font which is
// currently being executed.
type GlyphContext struct {
	Font *pdffont.Font
	Code byte
	Proc *pdf.Stream

	// Width is the glyph displacement, set by the d0 or d1 operator.
	Width vec.Vec2

	// BBox is the glyph bounding box, set by the d1 operator.
	BBox rect.Rect

	// Colored is true if the glyph procedure used d0, i.e. the glyph
	// specifies its own colors and is not cached.
	Colored bool

	// Cached is true if the glyph procedure used d1 and the glyph has
	// been added to the glyph cache of the font.
	Cached bool

	metricsSet bool

	stackDepth    int
	prevResources pdf.Dict
}

// setCharWidth implements the d0 operator.
func (g *GlyphContext) setCharWidth(wx, wy float64) {
	g.Width = vec.Vec2{X: wx, Y: wy}
	g.Colored = true
	g.metricsSet = true
}

// setCacheDevice implements the d1 operator.  The glyph is recorded in
// the font directory, so that the font cannot be redefined while the
// glyph is cached.
func (g *GlyphContext) setCacheDevice(e *pdffont.Engine, wbox [6]float64) error {
	g.Width = vec.Vec2{X: wbox[0], Y: wbox[1]}
	g.BBox = rect.Rect{LLx: wbox[2], LLy: wbox[3], URx: wbox[4], URy: wbox[5]}
	g.metricsSet = true

	if e == nil {
		return nil
	}
	id, ok := g.Font.DirectoryID()
	if !ok {
		return nil
	}
	err := e.Directory().CacheGlyph(id)
	if err != nil {
		return err
	}
	g.Cached = true
	return nil
}

// HasMetrics reports whether the glyph procedure has set the glyph
// metrics using d0 or d1.
func (g *GlyphContext) HasMetrics() bool {
	return g.metricsSet
}
