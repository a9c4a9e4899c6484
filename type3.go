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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/encoding"
	"seehuhn.de/go/pdffont/logging"
	"seehuhn.de/go/pdffont/pdf"
)

// loadType3 loads a font where glyphs are given by content stream
// procedures.  No font program is involved, so no substitution takes
// place.
func (e *Engine) loadType3(r pdf.Getter, ref pdf.Reference, dict pdf.Dict) (*Font, error) {
	f := newFont(font.Type3)
	f.Subtype = "Type3"
	f.Ref = ref

	name, err := pdf.GetName(r, dict["Name"])
	if err == nil {
		f.Name = string(name)
	}

	fm, err := pdf.GetArray(r, dict["FontMatrix"])
	if err != nil {
		return nil, pdf.Wrap(err, "FontMatrix")
	}
	if len(fm) == 6 {
		var m matrix.Matrix
		for i, obj := range fm {
			m[i], err = pdf.GetNumber(r, obj)
			if err != nil {
				return nil, pdf.Wrap(err, "FontMatrix")
			}
		}
		f.FontMatrix = m
	} else if fm != nil {
		return nil, fmt.Errorf("%w: font matrix has %d entries", pdf.ErrRangeCheck, len(fm))
	}

	f.CharProcs, err = pdf.GetDict(r, dict["CharProcs"])
	if err != nil {
		return nil, pdf.Wrap(err, "CharProcs")
	}
	if f.CharProcs == nil {
		return nil, fmt.Errorf("%w: Type 3 font without /CharProcs", pdf.ErrInvalidFont)
	}
	f.Resources, err = pdf.GetDict(r, dict["Resources"])
	if err != nil {
		return nil, pdf.Wrap(err, "Resources")
	}

	f.Descriptor, err = pdf.GetDict(r, dict["FontDescriptor"])
	if err != nil {
		return nil, pdf.Wrap(err, "FontDescriptor")
	}
	if f.Descriptor != nil {
		if flags, err := pdf.GetInt(r, f.Descriptor["Flags"]); err == nil {
			f.Flags = font.Flags(flags)
		}
	}

	f.FirstChar, f.LastChar, f.Widths, err = readWidths(r, dict)
	if err != nil {
		return nil, err
	}

	if dict["Encoding"] != nil {
		f.Encoding, err = encoding.Decode(r, dict["Encoding"], nil)
		if err != nil {
			logging.Logger().Warn("ignoring unusable font encoding",
				"object", ref, "error", err)
			f.Encoding = nil
		}
	}

	f.register(e.dir)
	return f, nil
}

// CharProc returns the glyph procedure for a character code of a Type 3
// font.  The second return value is false if the code is not mapped to a
// glyph procedure.
func (f *Font) CharProc(r pdf.Getter, code byte) (*pdf.Stream, bool) {
	if f.Type != font.Type3 || f.Encoding == nil {
		return nil, false
	}
	glyphName := f.Encoding[code]
	if glyphName == encoding.NotDef {
		return nil, false
	}
	stm, err := pdf.GetStream(r, f.CharProcs[pdf.Name(glyphName)])
	if err != nil || stm == nil {
		return nil, false
	}
	return stm, true
}
