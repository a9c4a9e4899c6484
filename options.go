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
	"os"

	"seehuhn.de/go/pdffont/font/loader"
)

// Default values for the fields of [Options].
const (
	DefaultCIDSubstPath     = "CIDFSubst/"
	DefaultCIDSubstFont     = "DroidSansFallback.ttf"
	DefaultMaxFontSize      = 64 << 20
	DefaultMatchWidthsFirst = 96
	DefaultMatchWidthsLast  = 122
)

// EnvCIDSubstFont is the name of the environment variable which selects the
// file used as a last resort substitute for CID fonts.
const EnvCIDSubstFont = "CIDSUBSTFONT"

// Options controls how fonts are located and substituted.
type Options struct {
	// NoCIDFallback disables the generic substitute file for CID fonts.
	// If set, a CID font which is neither embedded nor covered by the CID
	// font map cannot be loaded.
	NoCIDFallback bool

	// CIDSubstPath is the directory of the generic CID substitute font.
	CIDSubstPath string

	// CIDSubstFont is the file name of the generic CID substitute font.
	// If empty, the environment variable CIDSUBSTFONT is consulted.
	CIDSubstFont string

	// MaxFontSize limits the size of font programs read into memory.
	// Larger fonts fail to load with an error wrapping [pdf.ErrVMError].
	MaxFontSize int64

	// MatchWidthsFirst and MatchWidthsLast give the range of character
	// codes (inclusive) used to compare declared glyph widths with the
	// widths of a substitute font.  If both are zero, the lower case
	// letters and the grave accent (96 to 122) are used.
	MatchWidthsFirst int
	MatchWidthsLast  int

	// Loader locates font files.  If nil, a loader without search roots
	// is used, which can only provide the builtin fonts.
	Loader *loader.FontLoader
}

var defaultOptions = &Options{
	CIDSubstPath:     DefaultCIDSubstPath,
	MaxFontSize:      DefaultMaxFontSize,
	MatchWidthsFirst: DefaultMatchWidthsFirst,
	MatchWidthsLast:  DefaultMatchWidthsLast,
}

// mergeOptions returns a copy of opt where all unset fields are replaced by
// the values from defaultValues.  opt can be nil.
func mergeOptions(opt, defaultValues *Options) *Options {
	if opt == nil {
		res := *defaultValues
		return &res
	}

	res := *opt
	if res.CIDSubstPath == "" {
		res.CIDSubstPath = defaultValues.CIDSubstPath
	}
	if res.MaxFontSize <= 0 {
		res.MaxFontSize = defaultValues.MaxFontSize
	}
	if res.MatchWidthsFirst == 0 && res.MatchWidthsLast == 0 {
		res.MatchWidthsFirst = defaultValues.MatchWidthsFirst
		res.MatchWidthsLast = defaultValues.MatchWidthsLast
	}
	if res.Loader == nil {
		res.Loader = defaultValues.Loader
	}
	return &res
}

// cidSubstFont returns the file name of the generic CID substitute font.
// An explicit setting takes precedence over the environment, and the
// environment over the default.
func (opt *Options) cidSubstFont() string {
	if opt.CIDSubstFont != "" {
		return opt.CIDSubstFont
	}
	if name := os.Getenv(EnvCIDSubstFont); name != "" {
		return name
	}
	return DefaultCIDSubstFont
}
