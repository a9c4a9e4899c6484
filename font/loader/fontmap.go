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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tokenizer "github.com/benoitkugler/pstokenizer"
)

// AddFontMap reads a font map in Ghostscript's Fontmap format and adds it to
// the loader.  Each entry has one of the forms
//
//	/FontName (path/to/file.pfb) ;
//	/FontName /OtherFontName ;
//
// where the second form defines an alias.  PostScript comments are allowed.
// Any previous mapping for the same name is overwritten.
func (l *FontLoader) AddFontMap(r io.Reader) error {
	entries, err := parseFontMap(r)
	if err != nil {
		return err
	}

	l.Lock()
	defer l.Unlock()
	for _, e := range entries {
		l.fonts[e.name] = e.mapEntry
	}
	return nil
}

// AddCIDFontMap reads a CID font map in Ghostscript's cidfmap format and
// adds it to the loader.  In addition to the forms accepted by
// [FontLoader.AddFontMap], entries can be given as dictionaries:
//
//	/Ryumin-Light << /FileType /TrueType /Path (msmincho.ttc) /SubfontID 1 >> ;
//
// The entry named "CIDFallBack" is used as the default substitute.
func (l *FontLoader) AddCIDFontMap(r io.Reader) error {
	entries, err := parseFontMap(r)
	if err != nil {
		return err
	}

	l.Lock()
	defer l.Unlock()
	for _, e := range entries {
		l.cidFonts[e.name] = e.mapEntry
	}
	return nil
}

type namedEntry struct {
	name string
	mapEntry
}

func parseFontMap(r io.Reader) ([]namedEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	tk := tokenizer.NewTokenizer(data)
	var res []namedEntry
	for {
		tok, err := tk.NextToken()
		if err != nil {
			return nil, fmt.Errorf("font map: %w", err)
		}
		if tok.Kind == tokenizer.EOF {
			break
		}
		if tok.Kind == tokenizer.Other && string(tok.Value) == ";" {
			continue
		}
		if tok.Kind != tokenizer.Name {
			return nil, fmt.Errorf("font map: unexpected token %q", tok.Value)
		}
		name := tokenName(tok)

		val, err := tk.NextToken()
		if err != nil {
			return nil, fmt.Errorf("font map: %s: %w", name, err)
		}
		var e mapEntry
		switch val.Kind {
		case tokenizer.Name:
			e.alias = strings.TrimSuffix(tokenName(val), ";")
		case tokenizer.String:
			e.loc.Path = string(val.Value)
		case tokenizer.StartDic:
			e.loc, err = parseFontMapDict(tk)
			if err != nil {
				return nil, fmt.Errorf("font map: %s: %w", name, err)
			}
		default:
			return nil, fmt.Errorf("font map: %s: unexpected value %q", name, val.Value)
		}
		res = append(res, namedEntry{name: name, mapEntry: e})
	}
	return res, nil
}

// parseFontMapDict reads the dictionary form of a CID font map entry,
// after the opening "<<".
func parseFontMapDict(tk *tokenizer.Tokenizer) (Location, error) {
	var loc Location
	depth := 0
	var key string
	for {
		tok, err := tk.NextToken()
		if err != nil {
			return loc, err
		}
		switch tok.Kind {
		case tokenizer.EOF:
			return loc, errors.New("unexpected end of file")
		case tokenizer.EndDic:
			if depth == 0 {
				if loc.Path == "" {
					return loc, errors.New("missing /Path")
				}
				return loc, nil
			}
			depth--
			continue
		case tokenizer.StartDic, tokenizer.StartArray:
			depth++
			key = ""
			continue
		case tokenizer.EndArray:
			depth--
			continue
		}
		if depth > 0 {
			continue
		}

		if key == "" {
			if tok.Kind != tokenizer.Name {
				return loc, fmt.Errorf("unexpected token %q", tok.Value)
			}
			key = tokenName(tok)
			continue
		}

		switch key {
		case "Path":
			if tok.Kind == tokenizer.String {
				loc.Path = string(tok.Value)
			}
		case "FileType":
			if tok.Kind == tokenizer.Name {
				loc.FileType = tokenName(tok)
			}
		case "SubfontID":
			if tok.Kind == tokenizer.Integer {
				loc.SubfontID, err = strconv.Atoi(string(tok.Value))
				if err != nil || loc.SubfontID < 0 {
					return loc, fmt.Errorf("invalid SubfontID %q", tok.Value)
				}
			}
		}
		key = ""
	}
}

func tokenName(tok tokenizer.Token) string {
	return strings.TrimPrefix(string(tok.Value), "/")
}
