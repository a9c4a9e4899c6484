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

package font

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// baseFontNames lists the names of the 14 standard fonts, each followed by
// names which are commonly used for compatible fonts.
var baseFontNames = [][]string{
	{"Courier", "CourierNew", "CourierNewPSMT", "CourierStd"},
	{"Courier-Bold", "CourierNew,Bold", "Courier,Bold", "CourierNewPS-BoldMT", "CourierNew-Bold"},
	{"Courier-Oblique", "CourierNew,Italic", "Courier,Italic", "CourierNewPS-ItalicMT", "CourierNew-Italic"},
	{"Courier-BoldOblique", "CourierNew,BoldItalic", "Courier,BoldItalic", "CourierNewPS-BoldItalicMT", "CourierNew-BoldItalic"},
	{"Helvetica", "ArialMT", "Arial"},
	{"Helvetica-Bold", "Arial-BoldMT", "Arial,Bold", "Arial-Bold", "Helvetica,Bold"},
	{"Helvetica-Oblique", "Arial-ItalicMT", "Arial,Italic", "Arial-Italic", "Helvetica,Italic", "Helvetica-Italic"},
	{"Helvetica-BoldOblique", "Arial-BoldItalicMT", "Arial,BoldItalic", "Arial-BoldItalic", "Helvetica,BoldItalic", "Helvetica-BoldItalic"},
	{"Times-Roman", "TimesNewRomanPSMT", "TimesNewRoman", "TimesNewRomanPS"},
	{"Times-Bold", "TimesNewRomanPS-BoldMT", "TimesNewRoman,Bold", "TimesNewRomanPS-Bold", "TimesNewRoman-Bold"},
	{"Times-Italic", "TimesNewRomanPS-ItalicMT", "TimesNewRoman,Italic", "TimesNewRomanPS-Italic", "TimesNewRoman-Italic"},
	{"Times-BoldItalic", "TimesNewRomanPS-BoldItalicMT", "TimesNewRoman,BoldItalic", "TimesNewRomanPS-BoldItalic", "TimesNewRoman-BoldItalic"},
	{"Symbol", "Symbol,Italic", "Symbol,Bold", "Symbol,BoldItalic", "SymbolMT", "SymbolMT,Italic", "SymbolMT,Bold", "SymbolMT,BoldItalic"},
	{"ZapfDingbats"},
}

// StandardNames returns the names of the 14 standard fonts.
func StandardNames() []string {
	res := make([]string, len(baseFontNames))
	for i, row := range baseFontNames {
		res[i] = row[0]
	}
	return res
}

// CleanName maps a font name to the name of one of the 14 standard fonts,
// if the name is a known alias.  Space characters are ignored when comparing
// names, the comparison is otherwise exact and case sensitive.
// If no match is found, ok is false.
func CleanName(name string) (canonical string, ok bool) {
	name = strings.ReplaceAll(name, " ", "")
	for _, row := range baseFontNames {
		for _, alias := range row {
			if alias == name {
				return row[0], true
			}
		}
	}
	return "", false
}

// SubstituteByFlags chooses one of the standard fonts to replace a font with
// the given font descriptor flags.  Fixed pitch fonts are replaced by Courier,
// serif fonts by Times, and all other fonts by Helvetica.  FlagForceBold
// selects the bold variant and FlagItalic the italic variant.
func SubstituteByFlags(flags Flags) string {
	fixed := flags&FlagFixedPitch != 0
	serif := flags&FlagSerif != 0
	italic := flags&FlagItalic != 0
	bold := flags&FlagForceBold != 0

	var family [4]string // regular, bold, italic, bold italic
	switch {
	case fixed:
		family = [4]string{"Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique"}
	case serif:
		family = [4]string{"Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic"}
	default:
		family = [4]string{"Helvetica", "Helvetica-Bold", "Helvetica-Oblique", "Helvetica-BoldOblique"}
	}

	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	return family[idx]
}

// StripSubsetTag removes a subset tag of the form "ABCDEF+" from the start
// of a font name.
func StripSubsetTag(name string) string {
	if len(name) < 7 || name[6] != '+' {
		return name
	}
	for _, c := range name[:6] {
		if c < 'A' || c > 'Z' {
			return name
		}
	}
	return name[7:]
}

// IsKnownSymbolic reports whether name is one of the symbolic fonts for
// which named encodings in the font dictionary must be ignored.
func IsKnownSymbolic(name string) bool {
	switch name {
	case "Symbol", "Wingdings2", "Wingdings", "ZapfDingbats":
		return true
	}
	return false
}

// DecodeName converts a font name from a PDF file into a string which is
// safe to print.  Names which are not valid UTF-8 are tried as Shift-JIS,
// which is commonly used for Japanese font names.  If decoding fails, the
// name is returned unchanged.
func DecodeName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().String(name)
	if err != nil || !utf8.ValidString(decoded) {
		return name
	}
	return decoded
}
