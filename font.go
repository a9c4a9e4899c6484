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
	"fmt"
	"sync/atomic"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cidmetrics"
	"seehuhn.de/go/pdffont/font/encoding"
	"seehuhn.de/go/pdffont/font/fontdir"
	"seehuhn.de/go/pdffont/font/program"
	"seehuhn.de/go/pdffont/pdf"
)

// Substitution records where the font program of a font came from.
type Substitution int

// These are the possible values of [Substitution].  The values are ordered:
// font resolution only ever moves to a later state.
const (
	// Embedded means that the font program was read from the PDF file.
	Embedded Substitution = iota

	// FromFile means that a font with the requested name was loaded from
	// outside the PDF file.
	FromFile

	// FromFileFallback means that a generic substitute font, selected by
	// the font descriptor flags or the character collection, was loaded.
	FromFileFallback
)

func (s Substitution) String() string {
	switch s {
	case Embedded:
		return "embedded"
	case FromFile:
		return "from file"
	case FromFileFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Substitution(%d)", int(s))
	}
}

// FromFileFlag reports whether the font program was loaded from outside the
// PDF file.
func (s Substitution) FromFileFlag() bool {
	return s != Embedded
}

// SubstituteFlag reports whether a generic substitute is used in place of
// the requested font.
func (s Substitution) SubstituteFlag() bool {
	return s == FromFileFallback
}

// Font is a font which has been loaded for use in a content stream.
//
// Fonts are reference counted.  The engine returns fonts with a reference
// count of one, owned by the caller.  Every call to [Font.Acquire] must be
// balanced by a call to [Font.Release].  When the last reference is
// released, the font is removed from the font directory.
type Font struct {
	// Type is the kind of the font.  Simple fonts have the format of their
	// font program, composite fonts are [font.Type0] and fonts with glyph
	// procedures are [font.Type3].
	Type font.Format

	// Subtype is the value of /Subtype in the font dictionary.
	Subtype pdf.Name

	// Name is the PostScript name of the font, from /BaseFont.
	Name string

	// Ref is the object the font was loaded from, if it was an indirect
	// object.
	Ref pdf.Reference

	// Program is the font program used to render the font.  This is nil
	// for Type 0 and Type 3 fonts.
	Program program.Program

	// IsCID is true for CIDFonts, i.e. for the descendant fonts of Type 0
	// fonts.
	IsCID bool

	// Substitute is set for CIDFonts where the font program was not
	// embedded.
	Substitute bool

	// FontMatrix maps glyph space to text space.  For substituted simple
	// fonts the matrix may be scaled to match the declared glyph widths.
	FontMatrix matrix.Matrix

	// Descriptor is the font descriptor dictionary, if any.
	Descriptor pdf.Dict

	// Flags are the flags from the font descriptor.
	Flags font.Flags

	// FirstChar, LastChar and Widths are the glyph widths declared in the
	// font dictionary of a simple font, in thousandths of text space units
	// (in glyph space units for Type 3 fonts).
	FirstChar int
	LastChar  int
	Widths    []float64

	// Encoding maps character codes to glyph names, for simple fonts.
	// This is nil if the font dictionary does not specify an encoding and
	// the font program has no built-in encoding.
	Encoding *encoding.Encoding

	// ROS identifies the character collection of a CIDFont.
	ROS *cid.SystemInfo

	// Encoding name and writing mode of a Type 0 font.
	CMapName pdf.Name
	WMode    int

	// Descendant is the CIDFont of a Type 0 font.
	Descendant *Font

	// CharProcs and Resources belong to Type 3 fonts.
	CharProcs pdf.Dict
	Resources pdf.Dict

	subst   Substitution
	metrics *cidmetrics.Tables

	dir   *fontdir.Directory
	dirID fontdir.ID

	refs     atomic.Int32
	released atomic.Bool
}

func newFont(tp font.Format) *Font {
	f := &Font{
		Type:       tp,
		FontMatrix: matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
	}
	f.refs.Store(1)
	return f
}

// Substitution records where the font program came from.  The value is
// fixed once the font has been loaded.
func (f *Font) Substitution() Substitution {
	return f.subst
}

// Acquire adds a reference to the font.
func (f *Font) Acquire() {
	if f == nil {
		return
	}
	f.refs.Add(1)
}

// Release drops a reference to the font.  When the last reference is
// dropped, the font is removed from the font directory and the reference
// to the descendant font of a Type 0 font is released.
func (f *Font) Release() {
	if f == nil {
		return
	}
	if f.refs.Add(-1) > 0 {
		return
	}
	if !f.released.CompareAndSwap(false, true) {
		return
	}
	if f.dir != nil {
		f.dir.Purge(f.dirID)
	}
	f.Descendant.Release()
}

// RefCount returns the current number of references to the font.
func (f *Font) RefCount() int {
	return int(f.refs.Load())
}

// DirectoryID returns the ID of the font in the font directory.
// The second return value is false if the font is not registered.
func (f *Font) DirectoryID() (fontdir.ID, bool) {
	if f.dir == nil || f.released.Load() {
		return 0, false
	}
	return f.dirID, true
}

// register adds the font to the font directory.
func (f *Font) register(dir *fontdir.Directory) {
	f.dir = dir
	f.dirID = dir.Define(f.Name, f.FontMatrix)
}

// GlyphMetrics returns the metrics of a glyph in a CID-keyed font.
// For Type 0 fonts, the metrics of the descendant font are returned.
// Other fonts give an error wrapping [pdf.ErrInvalidFont].
func (f *Font) GlyphMetrics(c cid.CID, vertical bool) (cidmetrics.Metrics, error) {
	if f.Type == font.Type0 {
		if f.Descendant == nil {
			return cidmetrics.Metrics{}, fmt.Errorf("%w: Type 0 font without descendant", pdf.ErrInvalidFont)
		}
		return f.Descendant.GlyphMetrics(c, vertical)
	}
	if !f.IsCID || f.metrics == nil {
		return cidmetrics.Metrics{}, fmt.Errorf("%w: %s is not a CIDFont", pdf.ErrInvalidFont, f.Name)
	}
	return f.metrics.Metrics(c, vertical)
}

// Width returns the declared width of the glyph for a character code in a
// simple font.  The second return value is false if the code is outside
// the /Widths array.
func (f *Font) Width(code byte) (float64, bool) {
	idx := int(code) - f.FirstChar
	if idx < 0 || idx >= len(f.Widths) || int(code) > f.LastChar {
		return 0, false
	}
	return f.Widths[idx], true
}
