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
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/fontdir"
	"seehuhn.de/go/pdffont/font/program"
	"seehuhn.de/go/pdffont/pdf"
)

func widthsArray(first, last int, w float64) pdf.Array {
	var a pdf.Array
	for range last - first + 1 {
		a = append(a, pdf.Real(w))
	}
	return a
}

func TestMatchWidthsShrinks(t *testing.T) {
	d := pdf.NewData()
	dict := simpleFontDict(d, "NotInstalled", 0, "", nil)
	dict["FirstChar"] = pdf.Integer(32)
	dict["LastChar"] = pdf.Integer(126)
	dict["Widths"] = widthsArray(32, 126, 100)

	e := New(nil)
	f, err := e.LoadFont(d, dict, false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	if f.Substitution() != FromFileFallback {
		t.Fatalf("wrong substitution state %s", f.Substitution())
	}
	orig := f.Program.FontMatrix()
	ratio := f.FontMatrix[0] / orig[0]
	if ratio >= 1 || ratio <= 0 {
		t.Fatalf("font not scaled down: ratio %g", ratio)
	}
	if math.Abs(f.FontMatrix[3]/orig[3]-ratio) > 1e-9 {
		t.Errorf("non-uniform scaling: %v", f.FontMatrix)
	}
	for i, w := range f.Widths {
		if math.Abs(w*ratio-100) > 1e-6 {
			t.Errorf("Widths[%d] = %g, ratio %g", i, w, ratio)
			break
		}
	}

	id, ok := f.DirectoryID()
	if !ok {
		t.Fatal("font not registered")
	}
	entry, _ := e.Directory().Lookup(id)
	if entry.Matrix != f.FontMatrix {
		t.Errorf("directory has matrix %v, font has %v", entry.Matrix, f.FontMatrix)
	}
	if n := e.Directory().Len(); n != 1 {
		t.Errorf("%d fonts in directory", n)
	}
}

func TestMatchWidthsNeverGrows(t *testing.T) {
	d := pdf.NewData()
	dict := simpleFontDict(d, "NotInstalled", 0, "", nil)
	dict["FirstChar"] = pdf.Integer(96)
	dict["LastChar"] = pdf.Integer(122)
	dict["Widths"] = widthsArray(96, 122, 2000)

	e := New(nil)
	f, err := e.LoadFont(d, dict, false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	if f.FontMatrix != f.Program.FontMatrix() {
		t.Errorf("font matrix changed to %v", f.FontMatrix)
	}
	if f.Widths[0] != 2000 {
		t.Errorf("widths changed: %g", f.Widths[0])
	}
}

func TestMatchWidthsOnlyForFallback(t *testing.T) {
	d := pdf.NewData()
	dict := simpleFontDict(d, "Helvetica", 0, "", nil)
	dict["FirstChar"] = pdf.Integer(96)
	dict["LastChar"] = pdf.Integer(122)
	dict["Widths"] = widthsArray(96, 122, 100)

	e := New(nil)
	f, err := e.LoadFont(d, dict, false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	if f.Substitution() != FromFile {
		t.Fatalf("wrong substitution state %s", f.Substitution())
	}
	if f.FontMatrix != f.Program.FontMatrix() {
		t.Errorf("font matrix changed to %v", f.FontMatrix)
	}
}

func newTestFont(t *testing.T) *Font {
	t.Helper()
	p, err := program.Parse(font.TrueType, goregular.TTF, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := newFont(font.TrueType)
	f.Program = p
	f.FontMatrix = p.FontMatrix()
	return f
}

func TestMatchWidthsWindow(t *testing.T) {
	f := newTestFont(t)
	f.FirstChar = 'a'
	f.LastChar = 'c'
	f.Widths = []float64{0, 0, 50}

	// only 'c' has a non-zero width, but it is outside the window
	err := f.matchGlyphWidths('a', 'b')
	if err != nil {
		t.Fatal(err)
	}
	if f.FontMatrix != f.Program.FontMatrix() {
		t.Error("zero widths were used")
	}

	// the window is inclusive
	err = f.matchGlyphWidths('a', 'c')
	if err != nil {
		t.Fatal(err)
	}
	wc, _ := f.Program.Advance('c', "")
	want := 50 / wc.X
	got := f.FontMatrix[0] / f.Program.FontMatrix()[0]
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ratio %g, expected %g", got, want)
	}
}

func TestMatchWidthsNoOp(t *testing.T) {
	f := newTestFont(t)
	f.FirstChar = 122
	f.LastChar = 96
	f.Widths = []float64{10}
	if err := f.matchGlyphWidths(96, 122); err != nil {
		t.Fatal(err)
	}

	f.FirstChar, f.LastChar = 96, 122
	f.Widths = nil
	if err := f.matchGlyphWidths(96, 122); err != nil {
		t.Fatal(err)
	}
	if f.FontMatrix != f.Program.FontMatrix() {
		t.Error("font matrix changed")
	}
}

func TestMatchWidthsCachedGlyphs(t *testing.T) {
	dir := fontdir.New()
	f := newTestFont(t)
	f.FirstChar = 96
	f.LastChar = 122
	f.Widths = make([]float64, 27)
	for i := range f.Widths {
		f.Widths[i] = 10
	}
	f.register(dir)
	if err := dir.CacheGlyph(f.dirID); err != nil {
		t.Fatal(err)
	}

	err := f.matchGlyphWidths(96, 122)
	if !errors.Is(err, fontdir.ErrGlyphsCached) {
		t.Errorf("expected ErrGlyphsCached, got %v", err)
	}
}

func TestMatchWidthsKeepsSubstitution(t *testing.T) {
	d := pdf.NewData()
	dict := simpleFontDict(d, "NotInstalled", 0, "", nil)
	dict["FirstChar"] = pdf.Integer(32)
	dict["LastChar"] = pdf.Integer(126)
	dict["Widths"] = widthsArray(32, 126, 800)

	e := New(nil)
	f, err := e.LoadFont(d, dict, false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	for range 2 {
		if f.Substitution() != FromFileFallback {
			t.Fatalf("wrong substitution state %s", f.Substitution())
		}
		err = f.matchGlyphWidths(e.opt.MatchWidthsFirst, e.opt.MatchWidthsLast)
		if err != nil {
			t.Fatal(err)
		}
	}
	if f.Substitution() != FromFileFallback {
		t.Errorf("wrong substitution state %s", f.Substitution())
	}
}
