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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/pdf"
)

func type3Font(d *pdf.Data) pdf.Reference {
	proc := d.AddStream(nil, []byte("500 0 0 0 500 500 d1 0 0 500 500 re f"))
	return d.Add(pdf.Dict{
		"Type":       pdf.Name("Font"),
		"Subtype":    pdf.Name("Type3"),
		"FontMatrix": pdf.Array{pdf.Real(0.001), pdf.Integer(0), pdf.Integer(0), pdf.Real(0.001), pdf.Integer(0), pdf.Integer(0)},
		"CharProcs":  pdf.Dict{"box": proc},
		"Encoding": pdf.Dict{
			"Differences": pdf.Array{pdf.Integer(32), pdf.Name("box")},
		},
		"Resources": pdf.Dict{"ProcSet": pdf.Array{pdf.Name("PDF")}},
	})
}

func embeddedFont(d *pdf.Data) pdf.Reference {
	return d.Add(pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("TrueType"),
		"BaseFont": pdf.Name("GoRegular"),
		"FontDescriptor": pdf.Dict{
			"Flags":     pdf.Integer(font.FlagNonsymbolic),
			"FontFile2": d.AddStream(nil, goregular.TTF),
		},
	})
}

func newTestReader() (*Reader, *pdf.Data) {
	d := pdf.NewData()
	res := pdf.Dict{
		"Font": pdf.Dict{
			"F1": embeddedFont(d),
			"T3": type3Font(d),
		},
	}
	return NewReader(d, pdffont.New(nil), res), d
}

func TestTf(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	r.Push(pdf.Name("F1"), pdf.Integer(12))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	if r.TextFont == nil || r.TextFont.Substitution() != pdffont.Embedded {
		t.Fatal("font not loaded from resources")
	}
	if r.TextFontSize != 12 {
		t.Errorf("wrong font size %g", r.TextFontSize)
	}
	if r.StackDepth() != 0 {
		t.Errorf("%d operands left", r.StackDepth())
	}

	// selecting the same font again uses the cached font
	f1 := r.TextFont
	r.Push(pdf.Name("F1"), pdf.Real(9.5))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	if r.TextFont != f1 || r.TextFontSize != 9.5 {
		t.Error("font not reused")
	}
	if n := f1.RefCount(); n != 2 {
		t.Errorf("font has %d references, expected 2", n)
	}
}

func TestTfInternalFallback(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	r.Push(pdf.Name("Helvetica-Bold"), pdf.Integer(10))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	if r.TextFont == nil || r.TextFont.Substitution() != pdffont.FromFile {
		t.Fatal("internal font not loaded")
	}
	if r.TextFont.Name != "Helvetica-Bold" {
		t.Errorf("wrong font %q", r.TextFont.Name)
	}
}

func TestTfStreamResources(t *testing.T) {
	r, d := newTestReader()
	defer r.Close()

	r.Resources = pdf.Dict{
		"Font": pdf.Dict{"F1": type3Font(d)},
	}
	r.Push(pdf.Name("F1"), pdf.Integer(1))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	if r.TextFont.Type != font.Type3 {
		t.Errorf("font from page resources used")
	}
}

func TestTfErrors(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	r.Push(pdf.Integer(12))
	err := r.Do("Tf")
	if !errors.Is(err, pdf.ErrStackUnderflow) {
		t.Errorf("expected stackunderflow, got %v", err)
	}
	if r.StackDepth() != 0 {
		t.Error("operand stack not cleared")
	}

	r.Push(pdf.Name("F1"), pdf.Name("F1"))
	err = r.Do("Tf")
	if !errors.Is(err, pdf.ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}
}

func TestSetCurrentFont(t *testing.T) {
	e := pdffont.New(nil)
	f1, err := e.LoadFontByName("Courier")
	if err != nil {
		t.Fatal(err)
	}
	f2, err := e.LoadFontByName("Times-Roman")
	if err != nil {
		t.Fatal(err)
	}

	var s State
	s.SetCurrentFont(f1, 10)
	if f1.RefCount() != 2 {
		t.Errorf("f1 has %d references", f1.RefCount())
	}
	s.SetCurrentFont(f1, 11)
	if f1.RefCount() != 2 || s.TextFontSize != 11 {
		t.Errorf("f1 has %d references, size %g", f1.RefCount(), s.TextFontSize)
	}
	s.SetCurrentFont(f2, 12)
	if f1.RefCount() != 1 || f2.RefCount() != 2 {
		t.Errorf("references: f1 %d, f2 %d", f1.RefCount(), f2.RefCount())
	}

	f1.Release()
	f2.Release()
	if e.Directory().Len() != 1 {
		t.Errorf("%d fonts in directory", e.Directory().Len())
	}
	s.release()
	if e.Directory().Len() != 0 {
		t.Errorf("%d fonts in directory", e.Directory().Len())
	}
}

// The substitution state of a font does not change once it is in use.
func TestSetCurrentFontSubstitution(t *testing.T) {
	e := pdffont.New(nil)
	f, err := e.LoadFontByName("NoSuchFont")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()
	if f.Substitution() != pdffont.FromFileFallback {
		t.Fatalf("wrong substitution state %s", f.Substitution())
	}

	var s State
	s.SetCurrentFont(f, 10)
	s.SetCurrentFont(f, 12)
	if s.TextFont.Substitution() != pdffont.FromFileFallback {
		t.Errorf("substitution state changed to %s", s.TextFont.Substitution())
	}
	s.release()
	if f.Substitution() != pdffont.FromFileFallback {
		t.Errorf("substitution state changed to %s", f.Substitution())
	}
}

func TestSaveRestore(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	r.Push(pdf.Name("F1"), pdf.Integer(12))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	f1 := r.TextFont

	r.Do("q")
	r.Push(pdf.Name("T3"), pdf.Integer(1))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	r.Do("Q")

	if r.TextFont != f1 || r.TextFontSize != 12 {
		t.Error("font not restored")
	}
}

func TestD0(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	// outside of a glyph procedure
	r.Push(pdf.Integer(500), pdf.Integer(0))
	err := r.Do("d0")
	if !errors.Is(err, pdf.ErrUndefined) {
		t.Errorf("expected undefined, got %v", err)
	}

	r.Push(pdf.Name("T3"), pdf.Integer(1))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	g, err := r.BeginGlyph(' ')
	if err != nil {
		t.Fatal(err)
	}

	r.Push(pdf.Integer(500))
	err = r.Do("d0")
	if !errors.Is(err, pdf.ErrStackUnderflow) {
		t.Errorf("expected stackunderflow, got %v", err)
	}
	if r.StackDepth() != 0 {
		t.Error("operand stack not cleared")
	}

	r.Push(pdf.Name("x"), pdf.Integer(0))
	err = r.Do("d0")
	if !errors.Is(err, pdf.ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}

	r.Push(pdf.Integer(500), pdf.Real(0.5))
	if err := r.Do("d0"); err != nil {
		t.Fatal(err)
	}
	if r.StackDepth() != 0 {
		t.Error("operands not consumed")
	}
	if !g.HasMetrics() || !g.Colored || g.Cached {
		t.Errorf("wrong glyph state %+v", g)
	}
	if g.Width != (vec.Vec2{X: 500, Y: 0.5}) {
		t.Errorf("wrong width %v", g.Width)
	}
	r.EndGlyph()
}

func TestD1(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	r.Push(pdf.Name("T3"), pdf.Integer(1))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	f := r.TextFont
	g, err := r.BeginGlyph(' ')
	if err != nil {
		t.Fatal(err)
	}
	if r.Resources == nil {
		t.Error("font resources not installed")
	}

	r.Push(pdf.Integer(1), pdf.Integer(2), pdf.Integer(3))
	err = r.Do("d1")
	if !errors.Is(err, pdf.ErrStackUnderflow) {
		t.Errorf("expected stackunderflow, got %v", err)
	}

	r.Push(pdf.Integer(500), pdf.Integer(0), pdf.Integer(0), pdf.Integer(-10), pdf.Integer(500), pdf.Real(510.5))
	if err := r.Do("d1"); err != nil {
		t.Fatal(err)
	}
	want := rect.Rect{LLx: 0, LLy: -10, URx: 500, URy: 510.5}
	if d := cmp.Diff(want, g.BBox); d != "" {
		t.Error(d)
	}
	if !g.Cached {
		t.Error("glyph not cached")
	}
	r.EndGlyph()
	if r.Resources != nil {
		t.Error("resources not restored")
	}

	id, ok := f.DirectoryID()
	if !ok {
		t.Fatal("font not registered")
	}
	if n := r.Engine.Directory().CachedGlyphs(id); n != 1 {
		t.Errorf("%d cached glyphs", n)
	}
}

func TestBeginGlyphErrors(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	_, err := r.BeginGlyph('A')
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("no font: %v", err)
	}

	r.Push(pdf.Name("T3"), pdf.Integer(1))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	_, err = r.BeginGlyph('A')
	if !errors.Is(err, pdf.ErrUndefined) {
		t.Errorf("unmapped code: %v", err)
	}
}

func TestUnknownOp(t *testing.T) {
	r, _ := newTestReader()
	defer r.Close()

	var seen []pdf.Object
	r.UnknownOp = func(op string, args []pdf.Object) error {
		seen = append(seen, pdf.Name(op))
		seen = append(seen, args...)
		return nil
	}
	r.Push(pdf.Integer(1), pdf.Integer(0))
	if err := r.Do("Td"); err != nil {
		t.Fatal(err)
	}
	want := []pdf.Object{pdf.Name("Td"), pdf.Integer(1), pdf.Integer(0)}
	if d := cmp.Diff(want, seen); d != "" {
		t.Error(d)
	}
	if r.StackDepth() != 0 {
		t.Error("operand stack not cleared")
	}
}

func TestClose(t *testing.T) {
	r, _ := newTestReader()

	r.Push(pdf.Name("F1"), pdf.Integer(12))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}
	r.Do("q")
	r.Push(pdf.Name("T3"), pdf.Integer(12))
	if err := r.Do("Tf"); err != nil {
		t.Fatal(err)
	}

	r.Close()
	if n := r.Engine.Directory().Len(); n != 0 {
		t.Errorf("%d fonts left in directory", n)
	}
}
