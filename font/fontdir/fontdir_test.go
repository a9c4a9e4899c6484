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

package fontdir

import (
	"errors"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestRedefine(t *testing.T) {
	d := New()
	id := d.Define("Helvetica", matrix.Identity)
	other := d.Define("Courier", matrix.Identity)

	scaled := matrix.Scale(0.5, 0.5)
	newID, err := d.Redefine(id, scaled)
	if err != nil {
		t.Fatal(err)
	}
	if newID == id || newID == other {
		t.Errorf("redefined font reuses ID %d", newID)
	}
	if _, ok := d.Lookup(id); ok {
		t.Error("old entry still present")
	}
	e, ok := d.Lookup(newID)
	if !ok || e.Name != "Helvetica" || e.Matrix != scaled {
		t.Errorf("wrong entry %v", e)
	}
	if d.Len() != 2 {
		t.Errorf("directory has %d entries", d.Len())
	}
}

func TestRedefineCached(t *testing.T) {
	d := New()
	id := d.Define("F1", matrix.Identity)
	if err := d.CacheGlyph(id); err != nil {
		t.Fatal(err)
	}

	_, err := d.Redefine(id, matrix.Scale(2, 2))
	if !errors.Is(err, ErrGlyphsCached) {
		t.Fatalf("expected ErrGlyphsCached, got %v", err)
	}
	if e, _ := d.Lookup(id); e.Matrix != matrix.Identity {
		t.Error("directory was modified")
	}

	d.FlushGlyphs(id)
	if _, err := d.Redefine(id, matrix.Scale(2, 2)); err != nil {
		t.Error(err)
	}
}

func TestUnknown(t *testing.T) {
	d := New()
	if _, err := d.Redefine(7, matrix.Identity); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("got %v", err)
	}
	if err := d.CacheGlyph(7); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("got %v", err)
	}
	d.Purge(7)
}
