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

// Package fontdir implements a registry of loaded font programs.
//
// Each registered font is identified by the pair (font program, font matrix).
// Renderers may cache glyph instances per registered font.  When the matrix
// of a font changes, the font must be removed from the directory and
// registered again under a new ID.  This is only allowed while no glyph
// instances are cached for the font.
package fontdir

import (
	"errors"
	"fmt"
	"sync"

	"seehuhn.de/go/geom/matrix"
)

// ID identifies a font registered in a [Directory].
type ID uint64

// Entry describes a registered font.
type Entry struct {
	Name   string
	Matrix matrix.Matrix

	cached int
}

// ErrGlyphsCached is returned when a font with cached glyph instances is
// redefined.
var ErrGlyphsCached = errors.New("font has cached glyph instances")

// ErrUnknownFont is returned for IDs which are not registered.
var ErrUnknownFont = errors.New("font not in directory")

// Directory is a registry of fonts.
// It is safe to use a Directory concurrently from multiple goroutines.
type Directory struct {
	mu     sync.Mutex
	fonts  map[ID]*Entry
	lastID ID
}

// New returns a new, empty font directory.
func New() *Directory {
	return &Directory{
		fonts: make(map[ID]*Entry),
	}
}

// Define registers a font and returns its ID.
func (d *Directory) Define(name string, m matrix.Matrix) ID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastID++
	d.fonts[d.lastID] = &Entry{Name: name, Matrix: m}
	return d.lastID
}

// Purge removes a font, together with all cached glyph instances, from the
// directory.  Purging an unknown ID has no effect.
func (d *Directory) Purge(id ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.fonts, id)
}

// Redefine replaces the matrix of a registered font.  The font is purged and
// registered again, and the new ID is returned.  If glyph instances are
// cached for the font, the directory is left unchanged and
// [ErrGlyphsCached] is returned.
func (d *Directory) Redefine(id ID, m matrix.Matrix) (ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.fonts[id]
	if !ok {
		return 0, fmt.Errorf("font %d: %w", id, ErrUnknownFont)
	}
	if e.cached > 0 {
		return 0, fmt.Errorf("font %d (%s): %w", id, e.Name, ErrGlyphsCached)
	}

	delete(d.fonts, id)
	d.lastID++
	d.fonts[d.lastID] = &Entry{Name: e.Name, Matrix: m}
	return d.lastID, nil
}

// Lookup returns a copy of the entry for the given ID.
func (d *Directory) Lookup(id ID) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.fonts[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// CacheGlyph records that a glyph instance has been cached for the font.
func (d *Directory) CacheGlyph(id ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.fonts[id]
	if !ok {
		return fmt.Errorf("font %d: %w", id, ErrUnknownFont)
	}
	e.cached++
	return nil
}

// CachedGlyphs returns the number of glyph instances cached for the font.
func (d *Directory) CachedGlyphs(id ID) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.fonts[id]; ok {
		return e.cached
	}
	return 0
}

// FlushGlyphs discards all glyph instances cached for the font.
func (d *Directory) FlushGlyphs(id ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.fonts[id]; ok {
		e.cached = 0
	}
}

// Len returns the number of registered fonts.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.fonts)
}
