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

// Package pdffont locates and loads the fonts used by PDF content streams.
//
// A font is loaded from its font dictionary by [Engine.LoadFont].  If the
// font program is embedded in the PDF file, the embedded program is used.
// Otherwise, or if the embedded program cannot be used, the engine tries to
// find a font with the same name outside the PDF file, and finally falls
// back to a generic substitute selected from the font descriptor flags
// (for simple fonts) or from the character collection (for CIDFonts).
//
// When a generic substitute is used for a simple font, the font matrix is
// scaled down if the glyphs of the substitute are wider than the widths
// declared in the PDF file.
package pdffont

import (
	"fmt"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cidmetrics"
	"seehuhn.de/go/pdffont/font/encoding"
	"seehuhn.de/go/pdffont/font/fontdir"
	"seehuhn.de/go/pdffont/font/loader"
	"seehuhn.de/go/pdffont/logging"
	"seehuhn.de/go/pdffont/pdf"
)

// Engine loads fonts.  An Engine can be used concurrently from multiple
// goroutines.
type Engine struct {
	opt    *Options
	loader *loader.FontLoader
	dir    *fontdir.Directory
}

// New creates a new font engine.  If opt is nil, default options are used.
func New(opt *Options) *Engine {
	opt = mergeOptions(opt, defaultOptions)
	l := opt.Loader
	if l == nil {
		l = loader.NewFontLoader()
	}
	return &Engine{
		opt:    opt,
		loader: l,
		dir:    fontdir.New(),
	}
}

// Loader returns the font loader used by the engine.
func (e *Engine) Loader() *loader.FontLoader {
	return e.loader
}

// Directory returns the font directory where loaded fonts are registered.
func (e *Engine) Directory() *fontdir.Directory {
	return e.dir
}

// LoadFont loads the font described by a font dictionary.  If cid is true,
// the dictionary is expected to describe a CIDFont, i.e. a descendant
// font of a Type 0 font.
//
// The returned font has a reference count of one, which is owned by the
// caller.
func (e *Engine) LoadFont(r pdf.Getter, fontDict pdf.Object, cid bool) (*Font, error) {
	ref, _ := fontDict.(pdf.Reference)

	dict, err := pdf.GetDict(r, fontDict)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, pdf.Errorf(pdf.ErrTypeCheck, "font dictionary")
	}

	tp, err := pdf.GetName(r, dict["Type"])
	if err != nil {
		return nil, pdf.Wrap(err, "Type")
	}
	if tp != "" && tp != "Font" {
		return nil, fmt.Errorf("%w: font dictionary has /Type /%s", pdf.ErrTypeCheck, tp)
	}
	subtype, err := pdf.GetName(r, dict["Subtype"])
	if err != nil {
		return nil, pdf.Wrap(err, "Subtype")
	}

	switch subtype {
	case "Type0":
		if cid {
			return nil, fmt.Errorf("%w: Type 0 font used as a descendant font", pdf.ErrInvalidFont)
		}
		return e.loadType0(r, ref, dict)
	case "Type3":
		return e.loadType3(r, ref, dict)
	case "CIDFontType0", "CIDFontType2":
		cid = true
	}

	rs, err := e.newResolver(r, ref, dict, subtype, cid)
	if err != nil {
		return nil, err
	}
	prog, state, err := rs.run()
	if err != nil {
		return nil, err
	}

	f := newFont(prog.Format())
	f.Subtype = subtype
	f.Name = rs.baseFont
	f.Ref = ref
	f.Program = prog
	f.subst = state
	f.Descriptor = rs.desc
	f.Flags = rs.flags
	f.FontMatrix = prog.FontMatrix()

	if cid {
		f.IsCID = true
		f.Substitute = state != Embedded
		f.ROS = rs.ros
		f.metrics, err = cidmetrics.Decode(r, dict["DW"], dict["W"], dict["DW2"], dict["W2"])
		if err != nil {
			return nil, err
		}
		f.register(e.dir)
		return f, nil
	}

	f.FirstChar, f.LastChar, f.Widths, err = readWidths(r, dict)
	if err != nil {
		return nil, err
	}
	f.Encoding, err = simpleEncoding(r, dict["Encoding"], f.Name, f.Flags, prog.BuiltinEncoding())
	if err != nil {
		logging.Logger().Warn("ignoring unusable font encoding",
			"font", f.Name, "error", err)
		f.Encoding, _ = simpleEncoding(r, nil, f.Name, f.Flags, prog.BuiltinEncoding())
	}
	f.register(e.dir)

	if state.SubstituteFlag() {
		err = f.matchGlyphWidths(e.opt.MatchWidthsFirst, e.opt.MatchWidthsLast)
		if err != nil {
			f.Release()
			return nil, err
		}
	}
	return f, nil
}

// LoadFontByName loads a font which is not described by a PDF object.
// The name is resolved in the same way as the /BaseFont entry of a
// non-embedded simple font.  If name is empty, the default font is used.
func (e *Engine) LoadFontByName(name string) (*Font, error) {
	dict := pdf.Dict{
		"Type":    pdf.Name("Font"),
		"Subtype": pdf.Name("Type1"),
	}
	if name != "" {
		dict["BaseFont"] = pdf.Name(name)
	}
	return e.LoadFont(nil, dict, false)
}

// readWidths reads /FirstChar, /LastChar and /Widths from a simple font
// dictionary.  Entries of /Widths which are not numbers are set to zero.
func readWidths(r pdf.Getter, dict pdf.Dict) (first, last int, widths []float64, err error) {
	firstChar, err := pdf.GetInt(r, dict["FirstChar"])
	if err != nil {
		return 0, 0, nil, pdf.Wrap(err, "FirstChar")
	}
	lastChar, err := pdf.GetInt(r, dict["LastChar"])
	if err != nil {
		return 0, 0, nil, pdf.Wrap(err, "LastChar")
	}
	a, err := pdf.GetArray(r, dict["Widths"])
	if err != nil {
		return 0, 0, nil, pdf.Wrap(err, "Widths")
	}
	if a == nil {
		return int(firstChar), int(lastChar), nil, nil
	}

	widths = make([]float64, len(a))
	for i, obj := range a {
		w, err := pdf.GetNumber(r, obj)
		if err == nil {
			widths[i] = w
		}
	}
	return int(firstChar), int(lastChar), widths, nil
}

// simpleEncoding determines the encoding of a simple font.  Named encodings
// are ignored for the well-known symbolic fonts, which always use the
// built-in encoding of the font program.  For symbolic fonts, an encoding
// dictionary without /BaseEncoding starts from the built-in encoding.
func simpleEncoding(r pdf.Getter, obj pdf.Object, name string, flags font.Flags, builtin []string) (*encoding.Encoding, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	if _, isName := obj.(pdf.Name); isName && font.IsKnownSymbolic(font.StripSubsetTag(name)) {
		obj = nil
	}
	if obj == nil {
		if builtin == nil {
			return nil, nil
		}
		return encoding.FromBuiltin(builtin), nil
	}
	var base []string
	if flags&font.FlagSymbolic != 0 {
		base = builtin
	}
	return encoding.Decode(r, obj, base)
}
