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

// Package font implements the foundations of font resolution.
//
// The package classifies font programs by their binary format (see
// [Sniff]), and maps the names of fonts found in PDF files to the names of
// fonts which can be used as replacements (see [CleanName] and
// [SubstituteByFlags]).  Font programs, encodings, glyph metrics and the
// location of font files are handled by the sub-packages.
package font
