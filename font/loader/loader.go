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

// Package loader locates font files which are not embedded in PDF files.
//
// Fonts are found using Ghostscript-style font maps, by searching a list of
// directories, and finally among the builtin fonts.  The builtin fonts are
// the Go fonts, which serve as replacements for the 14 standard PDF fonts.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultCIDFont is the name of the font map entry which is used for CID
// fonts when no more specific substitute is found.
const DefaultCIDFont = "CIDFallBack"

// maxAliasDepth limits the length of alias chains in font maps.
const maxAliasDepth = 16

// searchExtensions lists the file name extensions tried when a font is
// looked up by name in the search roots.
var searchExtensions = []string{"", ".pfb", ".pfa", ".t1", ".otf", ".ttf", ".ttc", ".cff"}

// Location describes where a font program can be found.
type Location struct {
	// Path is the file name of the font.  Relative paths are resolved
	// against the search roots of the loader.  For builtin fonts, Path is
	// the font name.
	Path string

	// SubfontID selects a face within a TrueType collection.
	SubfontID int

	// FileType is the file type given in a CID font map, if any.
	FileType string

	// Builtin is true for the fonts compiled into the program.
	Builtin bool
}

func (loc Location) String() string {
	if loc.Builtin {
		return "builtin:" + loc.Path
	}
	if loc.SubfontID != 0 {
		return fmt.Sprintf("%s#%d", loc.Path, loc.SubfontID)
	}
	return loc.Path
}

type mapEntry struct {
	alias string
	loc   Location
}

// A FontLoader locates fonts, in case fonts are not embedded in the PDF
// file.  Fonts are found using font maps (see [FontLoader.AddFontMap] and
// [FontLoader.AddCIDFontMap]) and by searching a list of file systems.
// Every FontLoader can provide the 14 standard fonts required by the PDF
// specification, using the Go fonts as replacements.
//
// It is safe to use a FontLoader concurrently from multiple goroutines.
type FontLoader struct {
	sync.RWMutex
	roots    []fs.FS
	fonts    map[string]mapEntry
	cidFonts map[string]mapEntry
}

// NewFontLoader creates a new font loader, which searches the given file
// systems for font files.
func NewFontLoader(roots ...fs.FS) *FontLoader {
	return &FontLoader{
		roots:    roots,
		fonts:    make(map[string]mapEntry),
		cidFonts: make(map[string]mapEntry),
	}
}

// AddRoot adds a file system to the list of search roots.
func (l *FontLoader) AddRoot(fsys fs.FS) {
	l.Lock()
	l.roots = append(l.roots, fsys)
	l.Unlock()
}

// AddFont adds a font file to the font map.  Any previous mapping for the
// same name is overwritten.
func (l *FontLoader) AddFont(name string, fname string) {
	l.Lock()
	l.fonts[name] = mapEntry{loc: Location{Path: fname}}
	l.Unlock()
}

// AddAlias makes name refer to the font map entry for target.
func (l *FontLoader) AddAlias(name, target string) {
	l.Lock()
	l.fonts[name] = mapEntry{alias: target}
	l.Unlock()
}

// AddCIDFont adds a CID font to the CID font map.  Any previous mapping for
// the same name is overwritten.
func (l *FontLoader) AddCIDFont(name string, loc Location) {
	l.Lock()
	l.cidFonts[name] = mapEntry{loc: loc}
	l.Unlock()
}

// Lookup returns the font map entry for the given font name.
// Aliases are followed.
func (l *FontLoader) Lookup(name string) (Location, bool) {
	l.RLock()
	defer l.RUnlock()
	return lookup(l.fonts, name)
}

// LookupCID returns the CID font map entry for the given name.
// Aliases are followed.
func (l *FontLoader) LookupCID(name string) (Location, bool) {
	l.RLock()
	defer l.RUnlock()
	return lookup(l.cidFonts, name)
}

func lookup(m map[string]mapEntry, name string) (Location, bool) {
	for range maxAliasDepth {
		e, ok := m[name]
		if !ok {
			return Location{}, false
		}
		if e.alias == "" {
			return e.loc, true
		}
		name = e.alias
	}
	return Location{}, false
}

// Find locates the font with the given name.  The font map is consulted
// first, then the search roots are searched for a file with the given name
// and one of the usual font file extensions, and finally the builtin fonts
// are tried.  If the font cannot be found, an error wrapping
// [fs.ErrNotExist] is returned.
func (l *FontLoader) Find(name string) (Location, error) {
	if loc, ok := l.Lookup(name); ok {
		return loc, nil
	}

	if isPlainName(name) {
		l.RLock()
		roots := l.roots
		l.RUnlock()
		for _, dir := range []string{"", "Font"} {
			for _, ext := range searchExtensions {
				fname := path.Join(dir, name+ext)
				for _, root := range roots {
					info, err := fs.Stat(root, fname)
					if err == nil && !info.IsDir() {
						return Location{Path: fname}, nil
					}
				}
			}
		}
	}

	if _, ok := builtinFont(name); ok {
		return Location{Path: name, Builtin: true}, nil
	}

	return Location{}, fmt.Errorf("font %q: %w", name, fs.ErrNotExist)
}

// Open opens a font file.  The returned io.ReadCloser must be closed by the
// caller.
func (l *FontLoader) Open(loc Location) (io.ReadCloser, error) {
	if loc.Builtin {
		data, ok := builtinFont(loc.Path)
		if !ok {
			return nil, fmt.Errorf("builtin font %q: %w", loc.Path, fs.ErrNotExist)
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	if filepath.IsAbs(loc.Path) {
		return os.Open(loc.Path)
	}
	return l.openRelative(loc.Path)
}

// OpenResource opens a resource file, for example "CIDFont/Ryumin-Light",
// from the search roots.
func (l *FontLoader) OpenResource(category, name string) (io.ReadCloser, error) {
	if !isPlainName(name) {
		return nil, fmt.Errorf("resource %s/%s: %w", category, name, fs.ErrInvalid)
	}
	return l.openRelative(path.Join(category, name))
}

func (l *FontLoader) openRelative(fname string) (io.ReadCloser, error) {
	fname = path.Clean(strings.TrimPrefix(filepath.ToSlash(fname), "./"))
	if !fs.ValidPath(fname) {
		return nil, fmt.Errorf("%s: %w", fname, fs.ErrInvalid)
	}

	l.RLock()
	roots := l.roots
	l.RUnlock()

	var firstErr error
	for _, root := range roots {
		fd, err := root.Open(fname)
		if err == nil {
			return fd, nil
		}
		if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("%s: %w", fname, fs.ErrNotExist)
}

// isPlainName reports whether name can be used as a file name without
// escaping from the search roots.
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, "/\\\x00")
}
