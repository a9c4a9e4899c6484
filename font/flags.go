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

import "strings"

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of ISO 32000-2:2020.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0  // All glyphs have the same width.
	FlagSerif       Flags = 1 << 1  // Glyphs have serifs.
	FlagSymbolic    Flags = 1 << 2  // Font contains glyphs outside the Adobe standard Latin character set.
	FlagScript      Flags = 1 << 3  // Glyphs resemble cursive handwriting.
	FlagNonsymbolic Flags = 1 << 5  // Font uses the Adobe standard Latin character set or a subset of it.
	FlagItalic      Flags = 1 << 6  // Glyphs have dominant vertical strokes that are slanted.
	FlagAllCap      Flags = 1 << 16 // Font contains no lowercase letters.
	FlagSmallCap    Flags = 1 << 17 // Lowercase letters are small versions of the uppercase letters.
	FlagForceBold   Flags = 1 << 18 // Bold glyphs are painted with extra pixels even at very small text sizes.
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagFixedPitch, "FixedPitch"},
	{FlagSerif, "Serif"},
	{FlagSymbolic, "Symbolic"},
	{FlagScript, "Script"},
	{FlagNonsymbolic, "Nonsymbolic"},
	{FlagItalic, "Italic"},
	{FlagAllCap, "AllCap"},
	{FlagSmallCap, "SmallCap"},
	{FlagForceBold, "ForceBold"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
