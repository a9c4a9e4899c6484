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
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// DecodeStream returns a reader for the decoded stream data.
// The supported filters are FlateDecode (without predictors) and
// ASCIIHexDecode.
func DecodeStream(r Getter, x *Stream) (io.Reader, error) {
	filter, err := Resolve(r, x.Dict["Filter"])
	if err != nil {
		return nil, err
	}

	var names []Name
	switch f := filter.(type) {
	case nil:
		// pass
	case Name:
		names = append(names, f)
	case Array:
		for _, fi := range f {
			name, err := GetName(r, fi)
			if err != nil {
				return nil, Wrap(err, "Filter")
			}
			names = append(names, name)
		}
	default:
		return nil, Errorf(ErrTypeCheck, "invalid /Filter field")
	}

	res := x.R
	if res == nil {
		res = bytes.NewReader(nil)
	}
	for _, name := range names {
		res, err = applyFilter(res, name)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ReadStream reads and decodes the complete contents of a stream.
//
// If maxSize is positive and the decoded data exceeds maxSize bytes,
// an error wrapping [ErrVMError] is returned.
func ReadStream(r Getter, x *Stream, maxSize int64) ([]byte, error) {
	body, err := DecodeStream(r, x)
	if err != nil {
		return nil, err
	}
	return ReadAll(body, maxSize)
}

// ReadAll reads all data from r.  If maxSize is positive and more than maxSize
// bytes are available, an error wrapping [ErrVMError] is returned.
func ReadAll(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: data exceeds %d bytes", ErrVMError, maxSize)
	}
	return data, nil
}

func applyFilter(r io.Reader, name Name) (io.Reader, error) {
	switch name {
	case "FlateDecode", "Fl":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "ASCIIHexDecode", "AHx":
		return &hexReader{r: bufio.NewReader(r)}, nil
	default:
		return nil, fmt.Errorf("unsupported filter %q", name)
	}
}

// hexReader decodes ASCIIHexDecode data.  White space is ignored and
// the '>' character marks the end of the data.
type hexReader struct {
	r    *bufio.Reader
	done bool
}

func (h *hexReader) Read(b []byte) (int, error) {
	n := 0
	var digits [2]byte
	k := 0
	for n < len(b) && !h.done {
		c, err := h.r.ReadByte()
		if err == io.EOF {
			h.done = true
			break
		} else if err != nil {
			return n, err
		}
		switch {
		case c == '>':
			h.done = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0:
			continue
		default:
			digits[k] = c
			k++
			if k < 2 {
				continue
			}
			var out [1]byte
			_, err := hex.Decode(out[:], digits[:])
			if err != nil {
				return n, errors.New("malformed ASCIIHex data")
			}
			b[n] = out[0]
			n++
			k = 0
		}
	}
	if k == 1 {
		digits[1] = '0'
		var out [1]byte
		_, err := hex.Decode(out[:], digits[:])
		if err != nil {
			return n, errors.New("malformed ASCIIHex data")
		}
		b[n] = out[0]
		n++
	}
	if n == 0 && h.done {
		return 0, io.EOF
	}
	return n, nil
}
