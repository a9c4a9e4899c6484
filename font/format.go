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

import "bytes"

// Format is the binary format of a font program.
type Format int

// These are the font formats known to the font resolution code.
// Type3 and Type0 fonts have no font program; the corresponding
// values are used to describe the font dictionary instead.
const (
	Unknown Format = iota
	Type1
	CFF
	TrueType
	Type3
	Type0
)

func (f Format) String() string {
	switch f {
	case Type1:
		return "Type1"
	case CFF:
		return "CFF"
	case TrueType:
		return "TrueType"
	case Type3:
		return "Type3"
	case Type0:
		return "Type0"
	default:
		return "unknown"
	}
}

// Sniff determines the format of a font program from the first bytes of
// the data.  Buffers shorter than four bytes and buffers with an unknown
// signature are classified as [Unknown].
//
// The recognised signatures are, in this order:
//
//   - 00 01 00 00, "true" and "ttcf": TrueType (including collections)
//   - "OTTO": OpenType with CFF outlines
//   - "%!P": Type 1 in PFA format
//   - 01 00 04: bare CFF
//   - 80 01: Type 1 in PFB format
func Sniff(buf []byte) Format {
	if len(buf) < 4 {
		return Unknown
	}
	head := buf[:4]

	switch {
	case bytes.Equal(head, []byte{0x00, 0x01, 0x00, 0x00}),
		bytes.Equal(head, []byte("true")),
		bytes.Equal(head, []byte("ttcf")):
		return TrueType
	case bytes.Equal(head, []byte("OTTO")):
		return CFF
	case bytes.HasPrefix(head, []byte("%!P")):
		return Type1
	case bytes.HasPrefix(head, []byte{0x01, 0x00, 0x04}):
		return CFF
	case bytes.HasPrefix(head, []byte{0x80, 0x01}):
		return Type1
	}
	return Unknown
}

// IsCollection reports whether buf holds a TrueType collection.
func IsCollection(buf []byte) bool {
	return len(buf) >= 4 && string(buf[:4]) == "ttcf"
}
