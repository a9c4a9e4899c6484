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

package loader

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// builtinFont returns replacement font data for the 14 standard fonts.
// The Go fonts do not include a serif design, so the Times family is
// replaced by Go Medium, and the symbol fonts by Go Smallcaps.
func builtinFont(name string) ([]byte, bool) {
	switch name {
	case "Courier":
		return gomono.TTF, true
	case "Courier-Bold":
		return gomonobold.TTF, true
	case "Courier-Oblique":
		return gomonoitalic.TTF, true
	case "Courier-BoldOblique":
		return gomonobolditalic.TTF, true
	case "Helvetica":
		return goregular.TTF, true
	case "Helvetica-Bold":
		return gobold.TTF, true
	case "Helvetica-Oblique":
		return goitalic.TTF, true
	case "Helvetica-BoldOblique":
		return gobolditalic.TTF, true
	case "Times-Roman":
		return gomedium.TTF, true
	case "Times-Bold":
		return gobold.TTF, true
	case "Times-Italic":
		return gomediumitalic.TTF, true
	case "Times-BoldItalic":
		return gobolditalic.TTF, true
	case "Symbol", "ZapfDingbats":
		return gosmallcaps.TTF, true
	}
	return nil, false
}
