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
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/pdf"
)

// loadType0 loads a composite font.  The descendant font is loaded as a
// CIDFont and owned by the Type 0 font.
func (e *Engine) loadType0(r pdf.Getter, ref pdf.Reference, dict pdf.Dict) (*Font, error) {
	baseFont, err := pdf.GetName(r, dict["BaseFont"])
	if err != nil {
		return nil, pdf.Wrap(err, "BaseFont")
	}

	cmapName, wMode, err := readCMapInfo(r, dict["Encoding"])
	if err != nil {
		return nil, pdf.Wrap(err, "Encoding")
	}

	descendants, err := pdf.GetArray(r, dict["DescendantFonts"])
	if err != nil {
		return nil, pdf.Wrap(err, "DescendantFonts")
	}
	if len(descendants) < 1 {
		return nil, fmt.Errorf("%w: Type 0 font without descendant font", pdf.ErrInvalidFont)
	}
	descendant, err := e.LoadFont(r, descendants[0], true)
	if err != nil {
		return nil, err
	}

	f := newFont(font.Type0)
	f.Subtype = "Type0"
	f.Name = string(baseFont)
	f.Ref = ref
	f.FontMatrix = matrix.Identity
	f.CMapName = cmapName
	f.WMode = wMode
	f.Descendant = descendant
	f.subst = descendant.subst
	f.register(e.dir)
	return f, nil
}

// readCMapInfo determines the name and writing mode of the CMap given in
// the /Encoding entry of a Type 0 font.  The entry is either the name of a
// predefined CMap or an embedded CMap stream.
func readCMapInfo(r pdf.Getter, obj pdf.Object) (pdf.Name, int, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return "", 0, err
	}

	switch obj := obj.(type) {
	case pdf.Name:
		wMode := 0
		if strings.HasSuffix(string(obj), "-V") {
			wMode = 1
		}
		return obj, wMode, nil
	case *pdf.Stream:
		name, _ := pdf.GetName(r, obj.Dict["CMapName"])
		wMode, _ := pdf.GetInt(r, obj.Dict["WMode"])
		if wMode != 1 {
			wMode = 0
		}
		return name, int(wMode), nil
	case nil:
		return "", 0, fmt.Errorf("%w: missing CMap", pdf.ErrInvalidFont)
	default:
		return "", 0, pdf.Errorf(pdf.ErrTypeCheck, "CMap")
	}
}
