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
	"errors"
	"strings"
)

// These errors classify failures in the same way as the PostScript error
// names used by PDF interpreters.  Callers should use [errors.Is] to test
// for them, since most errors returned by this module wrap one of these.
var (
	// ErrTypeCheck indicates that an object had the wrong type.
	ErrTypeCheck = errors.New("typecheck")

	// ErrRangeCheck indicates that a value was out of range.
	ErrRangeCheck = errors.New("rangecheck")

	// ErrInvalidFont indicates that no usable font could be found.
	ErrInvalidFont = errors.New("invalidfont")

	// ErrStackUnderflow indicates that an operator found too few operands.
	ErrStackUnderflow = errors.New("stackunderflow")

	// ErrVMError indicates resource exhaustion.  Font resolution does not
	// attempt any substitution after this error.
	ErrVMError = errors.New("VMerror")

	// ErrUndefined indicates that an operator was used in a context where
	// it is not defined.
	ErrUndefined = errors.New("undefined")
)

// MalformedFileError indicates that a PDF file could not be parsed.
type MalformedFileError struct {
	Err error
	Loc []string
}

func (err *MalformedFileError) Error() string {
	parts := make([]string, 0, len(err.Loc)+2)
	parts = append(parts, "malformed PDF")
	for i := len(err.Loc) - 1; i >= 0; i-- {
		parts = append(parts, err.Loc[i])
	}
	if err.Err != nil {
		parts = append(parts, err.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// Wrap adds location information to an error.  If err is a
// MalformedFileError, the location is added to the existing error.
// Other errors are returned unchanged.
func Wrap(err error, loc string) error {
	if err == nil {
		return nil
	}
	var e *MalformedFileError
	if errors.As(err, &e) {
		return &MalformedFileError{
			Err: e.Err,
			Loc: append(append([]string(nil), e.Loc...), loc),
		}
	}
	return err
}

// Errorf returns a MalformedFileError which wraps base.  It is used to
// report objects of the wrong shape, in a way that callers can still test
// for the underlying PostScript error.
func Errorf(base error, loc string) error {
	return &MalformedFileError{
		Err: base,
		Loc: []string{loc},
	}
}
