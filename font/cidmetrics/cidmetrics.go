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

// Package cidmetrics computes glyph metrics for CID-keyed fonts.
//
// The metrics are given by the /DW, /W, /DW2 and /W2 entries of a CIDFont
// dictionary, see section 9.7.4.3 of ISO 32000-2:2020.  The tables are
// decoded once, when the font is loaded, into a list of ranges.  Lookups
// scan the ranges in order and the first range which contains the CID
// determines the result.
//
// Malformed table entries do not prevent the font from being loaded.
// Instead, a lookup which reaches a malformed entry fails with an error
// wrapping [pdf.ErrTypeCheck].
package cidmetrics

import (
	"errors"
	"fmt"

	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/pdf"
)

// Default values for fonts which do not specify vertical metrics.
const (
	DefaultWidth   = 1000
	DefaultVY      = 880
	DefaultHeight  = -1000
	defaultVXRatio = 0.5
)

// Metrics describes the metrics of a single glyph, in thousandths of text
// space units.
type Metrics struct {
	// Width is the horizontal advance width (w0).
	Width float64

	// Height is the vertical displacement (w1y).  In horizontal mode this
	// is always zero.  The horizontal component w1x of the displacement is
	// zero in both modes.
	Height float64

	// VX and VY give the position vector, which maps the horizontal origin
	// of the glyph to the vertical origin.  These are only set in vertical
	// mode.
	VX, VY float64
}

// Tables holds the decoded metrics tables of a CIDFont.
// A Tables object is not modified after it has been created, and can be
// used concurrently from multiple goroutines.
type Tables struct {
	// DefaultWidth is the width of glyphs not covered by the W table.
	DefaultWidth float64

	// DefaultVY and DefaultHeight give the default vertical metrics.
	DefaultVY     float64
	DefaultHeight float64

	w  []hRange
	w2 []vRange
}

type number struct {
	val float64
	ok  bool
}

// hRange is one entry of the W table.  For the interval form, values has
// length one.  For the array form, values has one entry per CID.
type hRange struct {
	first, last int64
	values      []number
	interval    bool
	err         error
}

type vValues struct {
	height, vx, vy number
}

// vRange is one entry of the W2 table.
type vRange struct {
	first, last int64
	values      []vValues
	interval    bool
	truncated   bool
	err         error
}

// Decode reads the metrics tables of a CIDFont.  Any of the arguments can
// be nil.
//
// An error is returned only if W or W2 is not an array, or if an object
// cannot be read.  Problems inside the tables are reported by
// [Tables.Metrics], for the glyphs affected.
func Decode(r pdf.Getter, dw, w, dw2, w2 pdf.Object) (*Tables, error) {
	t := &Tables{
		DefaultWidth:  DefaultWidth,
		DefaultVY:     DefaultVY,
		DefaultHeight: DefaultHeight,
	}

	if x, err := pdf.GetNumber(r, dw); err == nil {
		t.DefaultWidth = x
	} else if dw != nil && !isTypeCheck(err) {
		return nil, pdf.Wrap(err, "DW")
	}

	dw2Array, err := pdf.GetArray(r, dw2)
	if err != nil && !isTypeCheck(err) {
		return nil, pdf.Wrap(err, "DW2")
	}
	if len(dw2Array) >= 2 {
		vy, err1 := pdf.GetNumber(r, dw2Array[0])
		height, err2 := pdf.GetNumber(r, dw2Array[1])
		if err1 == nil && err2 == nil {
			t.DefaultVY = vy
			t.DefaultHeight = height
		}
	}

	wArray, err := pdf.GetArray(r, w)
	if err != nil {
		return nil, pdf.Wrap(err, "W")
	}
	t.w, err = decodeW(r, wArray)
	if err != nil {
		return nil, pdf.Wrap(err, "W")
	}

	w2Array, err := pdf.GetArray(r, w2)
	if err != nil {
		return nil, pdf.Wrap(err, "W2")
	}
	t.w2, err = decodeW2(r, w2Array)
	if err != nil {
		return nil, pdf.Wrap(err, "W2")
	}

	return t, nil
}

// decodeW converts a W array into a list of ranges.  Decoding stops after
// the first malformed entry, since the layout of the remaining array cannot
// be determined.
func decodeW(r pdf.Getter, a pdf.Array) ([]hRange, error) {
	var res []hRange
	for i := 0; i+1 < len(a); {
		first, err := pdf.Resolve(r, a[i])
		if err != nil {
			return nil, err
		}
		start, ok := first.(pdf.Integer)
		if !ok {
			res = append(res, hRange{err: entryError(i, "CID must be an integer")})
			break
		}

		second, err := pdf.Resolve(r, a[i+1])
		if err != nil {
			return nil, err
		}
		switch second := second.(type) {
		case pdf.Integer:
			if i+2 >= len(a) {
				return res, nil
			}
			w, err := getNumber(r, a[i+2])
			if err != nil {
				return nil, err
			}
			if !w.ok {
				res = append(res, hRange{err: entryError(i+2, "width must be a number")})
				return res, nil
			}
			res = append(res, hRange{
				first:    int64(start),
				last:     int64(second),
				values:   []number{w},
				interval: true,
			})
			i += 3

		case pdf.Array:
			values := make([]number, len(second))
			for k, obj := range second {
				values[k], err = getNumber(r, obj)
				if err != nil {
					return nil, err
				}
			}
			res = append(res, hRange{
				first:  int64(start),
				last:   int64(start) + int64(len(values)) - 1,
				values: values,
			})
			i += 2

		default:
			res = append(res, hRange{err: entryError(i+1, "expected integer or array")})
			return res, nil
		}
	}
	return res, nil
}

// decodeW2 converts a W2 array into a list of ranges.  The interval form
// consists of five elements (first, last, w1y, vx, vy), the array form of
// a start CID followed by an array of (w1y, vx, vy) triples.
func decodeW2(r pdf.Getter, a pdf.Array) ([]vRange, error) {
	var res []vRange
	for i := 0; i+1 < len(a); {
		first, err := pdf.Resolve(r, a[i])
		if err != nil {
			return nil, err
		}
		start, ok := first.(pdf.Integer)
		if !ok {
			res = append(res, vRange{err: entryError(i, "CID must be an integer")})
			break
		}

		second, err := pdf.Resolve(r, a[i+1])
		if err != nil {
			return nil, err
		}
		switch second := second.(type) {
		case pdf.Integer:
			rng := vRange{
				first:    int64(start),
				last:     int64(second),
				interval: true,
			}
			if i+4 >= len(a) {
				rng.truncated = true
			} else {
				var v vValues
				v.height, err = getNumber(r, a[i+2])
				if err == nil {
					v.vx, err = getNumber(r, a[i+3])
				}
				if err == nil {
					v.vy, err = getNumber(r, a[i+4])
				}
				if err != nil {
					return nil, err
				}
				rng.values = []vValues{v}
			}
			res = append(res, rng)
			i += 5

		case pdf.Array:
			n := len(second) / 3
			values := make([]vValues, n)
			for k := range values {
				v := &values[k]
				v.height, err = getNumber(r, second[3*k])
				if err == nil {
					v.vx, err = getNumber(r, second[3*k+1])
				}
				if err == nil {
					v.vy, err = getNumber(r, second[3*k+2])
				}
				if err != nil {
					return nil, err
				}
			}
			res = append(res, vRange{
				first:  int64(start),
				last:   int64(start) + int64(n) - 1,
				values: values,
			})
			i += 2

		default:
			res = append(res, vRange{err: entryError(i+1, "expected integer or array")})
			return res, nil
		}
	}
	return res, nil
}

// Metrics returns the metrics for the glyph with the given CID.
// If vertical is false, only Width is set.
func (t *Tables) Metrics(c cid.CID, vertical bool) (Metrics, error) {
	m := Metrics{Width: t.DefaultWidth}
	key := int64(c)

	for _, rng := range t.w {
		if rng.err != nil {
			return Metrics{}, rng.err
		}
		if key < rng.first || key > rng.last {
			continue
		}
		v := rng.values[0]
		if !rng.interval {
			v = rng.values[key-rng.first]
		}
		if !v.ok {
			return Metrics{}, fmt.Errorf("%w: W entry for CID %d is not a number", pdf.ErrTypeCheck, c)
		}
		m.Width = v.val
		break
	}

	if !vertical {
		return m, nil
	}

	m.Height = t.DefaultHeight
	m.VX = m.Width * defaultVXRatio
	m.VY = t.DefaultVY

	for _, rng := range t.w2 {
		if rng.err != nil {
			return Metrics{}, rng.err
		}
		if key < rng.first || key > rng.last {
			continue
		}
		if rng.truncated {
			break
		}
		v := rng.values[0]
		if !rng.interval {
			v = rng.values[key-rng.first]
		}
		if !v.height.ok || !v.vx.ok || !v.vy.ok {
			return Metrics{}, fmt.Errorf("%w: W2 entry for CID %d is not a number", pdf.ErrTypeCheck, c)
		}
		m.Height = v.height.val
		m.VX = v.vx.val
		m.VY = v.vy.val
		break
	}

	return m, nil
}

func getNumber(r pdf.Getter, obj pdf.Object) (number, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return number{}, err
	}
	switch x := obj.(type) {
	case pdf.Integer:
		return number{float64(x), true}, nil
	case pdf.Real:
		return number{float64(x), true}, nil
	default:
		return number{}, nil
	}
}

func entryError(idx int, msg string) error {
	return fmt.Errorf("%w: element %d: %s", pdf.ErrTypeCheck, idx, msg)
}

func isTypeCheck(err error) bool {
	return errors.Is(err, pdf.ErrTypeCheck)
}
