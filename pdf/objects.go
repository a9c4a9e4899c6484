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

package pdf

import (
	"io"
	"slices"
	"strconv"
)

// Object represents an object in a PDF file.  The nine native types of
// PDF objects implement this interface: Array, Bool, Dict, Integer, Name,
// Real, Reference, Stream, and String.  The Go value nil represents the
// PDF null object.
type Object interface {
	isObject()
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// Integer represents an integer constant in a PDF file.
type Integer int64

// Real represents an real number in a PDF file.
type Real float64

// String represents a string constant in a PDF file.
type String []byte

// Name represents a name in a PDF file.
type Name string

// Array represent an array of objects in a PDF file.
type Array []Object

// Dict represent a Dictionary object in a PDF file.
type Dict map[Name]Object

// Stream represent a stream object in a PDF file.
type Stream struct {
	Dict
	R io.Reader
}

// Reference represents a reference to an indirect object in a PDF file.
type Reference struct {
	Number     uint32
	Generation uint16
}

func (Bool) isObject()      {}
func (Integer) isObject()   {}
func (Real) isObject()      {}
func (String) isObject()    {}
func (Name) isObject()      {}
func (Array) isObject()     {}
func (Dict) isObject()      {}
func (*Stream) isObject()   {}
func (Reference) isObject() {}

// NewReference returns a new reference to an indirect object.
func NewReference(number uint32, generation uint16) Reference {
	return Reference{Number: number, Generation: generation}
}

func (x Reference) String() string {
	res := "obj_" + strconv.FormatUint(uint64(x.Number), 10)
	if x.Generation > 0 {
		res += "@" + strconv.FormatUint(uint64(x.Generation), 10)
	}
	return res
}

// Format returns the PDF syntax for an object, for use in diagnostic
// output.  Dictionary keys are sorted.  For streams, only the stream
// dictionary is shown.
func Format(obj Object) string {
	return string(appendObject(nil, obj))
}

func appendObject(b []byte, obj Object) []byte {
	switch x := obj.(type) {
	case nil:
		return append(b, "null"...)
	case Bool:
		return strconv.AppendBool(b, bool(x))
	case Integer:
		return strconv.AppendInt(b, int64(x), 10)
	case Real:
		start := len(b)
		b = strconv.AppendFloat(b, float64(x), 'f', -1, 64)
		if !slices.Contains(b[start:], '.') {
			b = append(b, ".0"...)
		}
		return b
	case String:
		b = append(b, '(')
		for _, c := range x {
			switch {
			case c == '(' || c == ')' || c == '\\':
				b = append(b, '\\', c)
			case c < 0x20 || c >= 0x7f:
				b = append(b, '\\', '0'+c>>6, '0'+c>>3&7, '0'+c&7)
			default:
				b = append(b, c)
			}
		}
		return append(b, ')')
	case Name:
		b = append(b, '/')
		for _, c := range []byte(x) {
			if c < 0x21 || c > 0x7e || isDelimiter(c) || c == '#' {
				b = append(b, '#', hexDigits[c>>4], hexDigits[c&15])
				continue
			}
			b = append(b, c)
		}
		return b
	case Array:
		b = append(b, '[')
		for i, elem := range x {
			if i > 0 {
				b = append(b, ' ')
			}
			b = appendObject(b, elem)
		}
		return append(b, ']')
	case Dict:
		if x == nil {
			return append(b, "null"...)
		}
		keys := make([]Name, 0, len(x))
		for key, val := range x {
			if val != nil {
				keys = append(keys, key)
			}
		}
		slices.Sort(keys)
		b = append(b, "<<"...)
		for _, key := range keys {
			b = appendObject(b, key)
			b = append(b, ' ')
			b = appendObject(b, x[key])
		}
		return append(b, ">>"...)
	case *Stream:
		b = appendObject(b, x.Dict)
		return append(b, " stream"...)
	case Reference:
		b = strconv.AppendUint(b, uint64(x.Number), 10)
		b = append(b, ' ')
		b = strconv.AppendUint(b, uint64(x.Generation), 10)
		return append(b, " R"...)
	}
	return b
}

const hexDigits = "0123456789abcdef"

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
