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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Arial", "Helvetica", true},
		{"ArialMT", "Helvetica", true},
		{"Arial,Bold", "Helvetica-Bold", true},
		{"Arial-BoldItalicMT", "Helvetica-BoldOblique", true},
		{"Times New Roman", "Times-Roman", true},
		{"TimesNewRoman,BoldItalic", "Times-BoldItalic", true},
		{"Courier New", "Courier", true},
		{"CourierNewPS-ItalicMT", "Courier-Oblique", true},
		{"SymbolMT,Bold", "Symbol", true},
		{"ZapfDingbats", "ZapfDingbats", true},
		{"Helvetica", "Helvetica", true},
		{"arial", "", false},
		{"Garamond", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := CleanName(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("CleanName(%q) = %q, %t, want %q, %t", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCleanNameCanonical(t *testing.T) {
	for _, name := range StandardNames() {
		got, ok := CleanName(name)
		if !ok || got != name {
			t.Errorf("CleanName(%q) = %q, %t", name, got, ok)
		}
	}
}

func TestSubstituteByFlags(t *testing.T) {
	cases := []struct {
		flags Flags
		want  string
	}{
		{0, "Helvetica"},
		{FlagNonsymbolic, "Helvetica"},
		{FlagItalic, "Helvetica-Oblique"},
		{FlagForceBold, "Helvetica-Bold"},
		{FlagForceBold | FlagItalic, "Helvetica-BoldOblique"},
		{FlagSerif, "Times-Roman"},
		{FlagSerif | FlagItalic, "Times-Italic"},
		{FlagSerif | FlagForceBold, "Times-Bold"},
		{FlagSerif | FlagForceBold | FlagItalic, "Times-BoldItalic"},
		{FlagFixedPitch, "Courier"},
		{FlagFixedPitch | FlagSerif, "Courier"},
		{FlagFixedPitch | FlagItalic, "Courier-Oblique"},
		{FlagFixedPitch | FlagForceBold, "Courier-Bold"},
		{FlagFixedPitch | FlagForceBold | FlagItalic, "Courier-BoldOblique"},
	}
	for _, c := range cases {
		got := SubstituteByFlags(c.flags)
		if got != c.want {
			t.Errorf("SubstituteByFlags(%s) = %q, want %q", c.flags, got, c.want)
		}
	}
}

func TestStripSubsetTag(t *testing.T) {
	in := []string{"ABCDEF+Garamond", "abcdef+Garamond", "ABCDE+Garamond", "Garamond", "ABCDEF+"}
	want := []string{"Garamond", "abcdef+Garamond", "ABCDE+Garamond", "Garamond", ""}
	var got []string
	for _, name := range in {
		got = append(got, StripSubsetTag(name))
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestDecodeName(t *testing.T) {
	sjis := "\x82l\x82r \x83S\x83V\x83b\x83N"
	if got := DecodeName(sjis); got != "ＭＳ ゴシック" {
		t.Errorf("got %q", got)
	}
	if got := DecodeName("Helvetica"); got != "Helvetica" {
		t.Errorf("got %q", got)
	}
}

func TestFlagsString(t *testing.T) {
	f := FlagSerif | FlagItalic | FlagForceBold
	if got := f.String(); got != "Serif|Italic|ForceBold" {
		t.Errorf("got %q", got)
	}
}
