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

// Package encoding implements the encodings of simple PDF fonts.
//
// An encoding maps single byte character codes to glyph names.  Simple
// fonts either use one of four predefined encodings, or a dictionary which
// modifies a base encoding using a /Differences array.
package encoding

import (
	"fmt"

	"seehuhn.de/go/postscript/psenc"

	"seehuhn.de/go/pdffont/pdf"
)

// NotDef is the glyph name used for unmapped codes.
const NotDef = ".notdef"

// Encoding maps single byte codes to glyph names.
type Encoding [256]string

// Names of the predefined encodings.
const (
	StandardEncoding  pdf.Name = "StandardEncoding"
	WinAnsiEncoding   pdf.Name = "WinAnsiEncoding"
	MacRomanEncoding  pdf.Name = "MacRomanEncoding"
	MacExpertEncoding pdf.Name = "MacExpertEncoding"
)

// Named returns a copy of one of the four predefined encodings.
// If name is not known, ok is false.
func Named(name pdf.Name) (enc *Encoding, ok bool) {
	var src *[256]string
	switch name {
	case StandardEncoding:
		std := [256]string(psenc.StandardEncoding)
		src = &std
	case WinAnsiEncoding:
		src = winAnsi
	case MacRomanEncoding:
		src = macRoman
	case MacExpertEncoding:
		src = macExpert
	default:
		return nil, false
	}

	res := &Encoding{}
	for i, glyphName := range src {
		if glyphName == "" {
			glyphName = NotDef
		}
		res[i] = glyphName
	}
	return res, true
}

// FromBuiltin converts the built-in encoding of a font program into an
// Encoding.  Missing entries are set to ".notdef".
func FromBuiltin(builtin []string) *Encoding {
	res := &Encoding{}
	for i := range res {
		res[i] = NotDef
		if i < len(builtin) && builtin[i] != "" {
			res[i] = builtin[i]
		}
	}
	return res
}

// Decode reads the /Encoding entry of a simple font dictionary.
//
// If obj is a name, the corresponding predefined encoding is returned.
// An unknown name gives an error wrapping [pdf.ErrUndefined].
//
// If obj is a dictionary, the starting point is the encoding named by
// /BaseEncoding.  If /BaseEncoding is missing or unknown, the font's
// built-in encoding is used instead, or StandardEncoding if builtin is nil.
// The entries of the /Differences array are then applied on top.
//
// Some files give the encoding as an array of glyph names, which is
// accepted as well, see [FromArray].
//
// Objects of any other type give an error wrapping [pdf.ErrTypeCheck].
func Decode(r pdf.Getter, obj pdf.Object, builtin []string) (*Encoding, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	switch obj := obj.(type) {
	case pdf.Name:
		enc, ok := Named(obj)
		if !ok {
			return nil, fmt.Errorf("%w: unknown encoding %q", pdf.ErrUndefined, obj)
		}
		return enc, nil

	case pdf.Dict:
		base, _ := pdf.GetName(r, obj["BaseEncoding"])
		enc, ok := Named(base)
		if !ok {
			if builtin != nil {
				enc = FromBuiltin(builtin)
			} else {
				enc, _ = Named(StandardEncoding)
			}
		}

		diffObj, err := pdf.Resolve(r, obj["Differences"])
		if err != nil {
			return nil, err
		}
		if diffObj == nil {
			return enc, nil
		}
		diff, ok := diffObj.(pdf.Array)
		if !ok {
			return nil, pdf.Errorf(pdf.ErrTypeCheck, "Differences")
		}
		err = enc.applyDifferences(r, diff)
		if err != nil {
			return nil, err
		}
		return enc, nil

	case pdf.Array:
		return FromArray(r, obj)

	default:
		return nil, pdf.Errorf(pdf.ErrTypeCheck, "Encoding")
	}
}

// applyDifferences modifies the encoding using a /Differences array.
// Integers set the current code, names are assigned to consecutive codes.
// Names beyond code 255 are ignored.
func (e *Encoding) applyDifferences(r pdf.Getter, diff pdf.Array) error {
	code := 0
	for _, item := range diff {
		item, err := pdf.Resolve(r, item)
		if err != nil {
			return err
		}
		switch item := item.(type) {
		case pdf.Integer:
			code = int(item)
		case pdf.Name:
			if code >= 0 && code < 256 {
				e[code] = string(item)
			}
			code++
		default:
			return pdf.Errorf(pdf.ErrTypeCheck, "Differences")
		}
	}
	return nil
}

// FromArray converts a PDF array of glyph names into an Encoding.
// The array must have at least 256 entries, otherwise an error wrapping
// [pdf.ErrRangeCheck] is returned.  Entries which are not names are
// mapped to ".notdef".
func FromArray(r pdf.Getter, a pdf.Array) (*Encoding, error) {
	if len(a) < 256 {
		return nil, fmt.Errorf("%w: encoding array has %d entries", pdf.ErrRangeCheck, len(a))
	}
	res := &Encoding{}
	for i := range res {
		name, err := pdf.GetName(r, a[i])
		if err != nil || name == "" {
			res[i] = NotDef
			continue
		}
		res[i] = string(name)
	}
	return res, nil
}
