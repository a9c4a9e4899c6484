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
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cidmetrics"
	"seehuhn.de/go/pdffont/font/loader"
	"seehuhn.de/go/pdffont/pdf"
)

func cidFontDict(baseFont, registry, ordering string) pdf.Dict {
	dict := pdf.Dict{
		"Type":    pdf.Name("Font"),
		"Subtype": pdf.Name("CIDFontType2"),
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String(registry),
			"Ordering":   pdf.String(ordering),
			"Supplement": pdf.Integer(2),
		},
		"FontDescriptor": pdf.Dict{
			"Type":  pdf.Name("FontDescriptor"),
			"Flags": pdf.Integer(font.FlagSymbolic),
		},
	}
	if baseFont != "" {
		dict["BaseFont"] = pdf.Name(baseFont)
	}
	return dict
}

func cidTestFS() *recordFS {
	return &recordFS{MapFS: fstest.MapFS{
		"fonts/japan1.ttf":                {Data: goregular.TTF},
		"fonts/fallback.ttf":              {Data: gomono.TTF},
		"CIDFont/KozMinPro-Regular":       {Data: gobold.TTF},
		"CIDFSubst/DroidSansFallback.ttf": {Data: goregular.TTF},
		"CIDFSubst/env.ttf":               {Data: goregular.TTF},
		"CIDFSubst/config.ttf":            {Data: goregular.TTF},
	}}
}

func TestCIDFromFile(t *testing.T) {
	fsys := cidTestFS()
	e := New(&Options{Loader: loader.NewFontLoader(fsys)})

	f, err := e.LoadFont(nil, cidFontDict("ABCDEF+KozMinPro-Regular", "Adobe", "Japan1"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	if f.Substitution() != FromFile || !f.Substitute || !f.IsCID {
		t.Errorf("state %s, substitute %t, CID %t", f.Substitution(), f.Substitute, f.IsCID)
	}
	if got := fsys.lastOpened(); got != "CIDFont/KozMinPro-Regular" {
		t.Errorf("loaded %q", got)
	}
	if f.ROS == nil || f.ROS.Ordering != "Japan1" || f.ROS.Supplement != 2 {
		t.Errorf("wrong ROS %v", f.ROS)
	}
}

func TestCIDFallbackOrder(t *testing.T) {
	type testCase struct {
		name     string
		ordering string
		opt      Options
		env      string
		mapped   bool
		want     string
	}
	cases := []testCase{
		{name: "collection", ordering: "Japan1", mapped: true, want: "fonts/japan1.ttf"},
		{name: "default", ordering: "Korea1", mapped: true, want: "fonts/fallback.ttf"},
		{name: "builtin default", ordering: "Korea1", want: "CIDFSubst/DroidSansFallback.ttf"},
		{name: "env", ordering: "Korea1", env: "env.ttf", want: "CIDFSubst/env.ttf"},
		{
			name:     "config",
			ordering: "Korea1",
			env:      "env.ttf",
			opt:      Options{CIDSubstFont: "config.ttf"},
			want:     "CIDFSubst/config.ttf",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(EnvCIDSubstFont, c.env)

			fsys := cidTestFS()
			l := loader.NewFontLoader(fsys)
			if c.mapped {
				l.AddCIDFont("Adobe-Japan1", loader.Location{Path: "fonts/japan1.ttf"})
				l.AddCIDFont(loader.DefaultCIDFont, loader.Location{Path: "fonts/fallback.ttf"})
			}
			opt := c.opt
			opt.Loader = l
			e := New(&opt)

			f, err := e.LoadFont(nil, cidFontDict("NotAvailable", "Adobe", c.ordering), true)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Release()

			if f.Substitution() != FromFileFallback || !f.Substitute {
				t.Errorf("state %s, substitute %t", f.Substitution(), f.Substitute)
			}
			if got := fsys.lastOpened(); got != c.want {
				t.Errorf("loaded %q, expected %q", got, c.want)
			}
		})
	}
}

func TestCIDFallbackBrokenMapEntry(t *testing.T) {
	fsys := cidTestFS()
	l := loader.NewFontLoader(fsys)
	l.AddCIDFont("Adobe-Japan1", loader.Location{Path: "fonts/missing.ttf"})
	l.AddCIDFont(loader.DefaultCIDFont, loader.Location{Path: "fonts/fallback.ttf"})
	e := New(&Options{Loader: l})

	f, err := e.LoadFont(nil, cidFontDict("", "Adobe", "Japan1"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()
	if got := fsys.lastOpened(); got != "fonts/fallback.ttf" {
		t.Errorf("loaded %q", got)
	}
}

func TestNoCIDFallback(t *testing.T) {
	e := New(&Options{
		NoCIDFallback: true,
		Loader:        loader.NewFontLoader(cidTestFS()),
	})
	_, err := e.LoadFont(nil, cidFontDict("NotAvailable", "Adobe", "GB1"), true)
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("expected invalidfont, got %v", err)
	}

	// without search roots, the generic substitute cannot be found
	e = New(nil)
	_, err = e.LoadFont(nil, cidFontDict("NotAvailable", "Adobe", "GB1"), true)
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("expected invalidfont, got %v", err)
	}
}

func TestCIDEmbedded(t *testing.T) {
	d := pdf.NewData()
	dict := cidFontDict("ABCDEF+GoRegular", "Adobe", "Identity")
	dict["FontDescriptor"] = pdf.Dict{
		"FontFile2": d.AddStream(nil, goregular.TTF),
	}

	e := New(nil)
	f, err := e.LoadFont(d, dict, true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()
	if f.Substitution() != Embedded || f.Substitute {
		t.Errorf("state %s, substitute %t", f.Substitution(), f.Substitute)
	}
}

func type0Dict(d *pdf.Data, cmapName string) pdf.Dict {
	cidFont := cidFontDict("", "Adobe", "Identity")
	cidFont["DW"] = pdf.Integer(900)
	cidFont["W"] = pdf.Array{
		pdf.Integer(1), pdf.Array{pdf.Integer(500), pdf.Integer(600)},
		pdf.Integer(10), pdf.Integer(20), pdf.Real(250),
	}
	cidFont["W2"] = pdf.Array{
		pdf.Integer(10), pdf.Integer(10), pdf.Integer(-500), pdf.Integer(125), pdf.Integer(800),
	}
	cidFont["FontDescriptor"] = pdf.Dict{
		"FontFile2": d.AddStream(nil, goregular.TTF),
	}
	return pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name("GoRegular-" + cmapName),
		"Encoding":        pdf.Name(cmapName),
		"DescendantFonts": pdf.Array{d.Add(cidFont)},
	}
}

func TestType0(t *testing.T) {
	d := pdf.NewData()
	e := New(nil)

	f, err := e.LoadFont(d, type0Dict(d, "Identity-V"), false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()

	if f.Type != font.Type0 || f.WMode != 1 || f.CMapName != "Identity-V" {
		t.Errorf("type %s, WMode %d, CMap %s", f.Type, f.WMode, f.CMapName)
	}
	if f.Descendant == nil || !f.Descendant.IsCID {
		t.Fatal("missing descendant font")
	}

	type testCase struct {
		cid      uint32
		vertical bool
		want     cidmetrics.Metrics
	}
	cases := []testCase{
		{1, false, cidmetrics.Metrics{Width: 500}},
		{2, false, cidmetrics.Metrics{Width: 600}},
		{5, false, cidmetrics.Metrics{Width: 900}},
		{15, false, cidmetrics.Metrics{Width: 250}},
		{5, true, cidmetrics.Metrics{Width: 900, Height: -1000, VX: 450, VY: 880}},
		{10, true, cidmetrics.Metrics{Width: 250, Height: -500, VX: 125, VY: 800}},
	}
	for _, c := range cases {
		got, err := f.GlyphMetrics(cid.CID(c.cid), c.vertical)
		if err != nil {
			t.Errorf("%d: %v", c.cid, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%d, vertical=%t: %s", c.cid, c.vertical, diff)
		}
	}
}

func TestType0Errors(t *testing.T) {
	d := pdf.NewData()
	e := New(nil)

	_, err := e.LoadFont(d, type0Dict(d, "Identity-H"), true)
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("Type 0 descendant: %v", err)
	}

	dict := type0Dict(d, "Identity-H")
	dict["DescendantFonts"] = pdf.Array{}
	_, err = e.LoadFont(d, dict, false)
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("no descendants: %v", err)
	}

	f, err := e.LoadFontByName("Helvetica")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Release()
	_, err = f.GlyphMetrics(1, false)
	if !errors.Is(err, pdf.ErrInvalidFont) {
		t.Errorf("metrics of simple font: %v", err)
	}
}

func TestType0Release(t *testing.T) {
	d := pdf.NewData()
	e := New(nil)

	f, err := e.LoadFont(d, type0Dict(d, "Identity-H"), false)
	if err != nil {
		t.Fatal(err)
	}
	if n := e.Directory().Len(); n != 2 {
		t.Errorf("%d fonts in directory", n)
	}

	f.Acquire()
	f.Release()
	if n := e.Directory().Len(); n != 2 {
		t.Errorf("%d fonts in directory after first release", n)
	}

	desc := f.Descendant
	f.Release()
	if n := e.Directory().Len(); n != 0 {
		t.Errorf("%d fonts in directory after last release", n)
	}
	if desc.RefCount() != 0 {
		t.Errorf("descendant has %d references", desc.RefCount())
	}

	f.Release()
	if desc.RefCount() != 0 {
		t.Errorf("descendant released twice: %d references", desc.RefCount())
	}
	if _, ok := f.DirectoryID(); ok {
		t.Error("released font still registered")
	}
}
