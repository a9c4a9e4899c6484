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

// Pdf-font-resolve shows which font program would be used to render a
// font which is referenced, but maybe not embedded, in a PDF file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/loader"
	"seehuhn.de/go/pdffont/logging"
	"seehuhn.de/go/pdffont/pdf"
	"seehuhn.de/go/pdffont/tools/internal/buildinfo"
)

var (
	fontMapArg    = flag.String("fontmap", "", "read font map from `file`")
	cidFontMapArg = flag.String("cidfmap", "", "read CID font map from `file`")
	cidArg        = flag.Bool("cid", false, "resolve the names as CIDFonts")
	rosArg        = flag.String("ros", "Adobe-Identity", "character collection for CIDFonts, as `registry-ordering`")
	flagsArg      = flag.Uint("flags", 0, "font descriptor flags")
	embedArg      = flag.String("embed", "", "use the font program in `file` as the embedded font")
	noCIDFallback = flag.Bool("nocidfallback", false, "disable the generic CIDFont substitute")
	cidSubstPath  = flag.String("cidsubstpath", "", "directory of the generic CIDFont substitute")
	cidSubstFont  = flag.String("cidsubstfont", "", "file name of the generic CIDFont substitute")
	verboseArg    = flag.Bool("v", false, "show substitution messages")
	quietArg      = flag.Bool("q", false, "never show substitution messages")
)

var searchPath []string

func main() {
	flag.Func("path", "add `dir` to the font search path", func(dir string) error {
		searchPath = append(searchPath, dir)
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdf-font-resolve \u2014 show how PDF fonts are substituted\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdf-font-resolve"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdf-font-resolve [options] <font name>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdf-font-resolve Arial,Bold\n")
		fmt.Fprintf(os.Stderr, "  pdf-font-resolve -flags 35 -path /usr/share/fonts/type1 NimbusRoman\n")
		fmt.Fprintf(os.Stderr, "  pdf-font-resolve -cid -ros Adobe-Japan1 -cidfmap cidfmap Ryumin-Light\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if !*quietArg && (*verboseArg || term.IsTerminal(int(os.Stderr.Fd()))) {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
		logging.SetLogger(slog.New(h))
	}

	l := loader.NewFontLoader()
	for _, dir := range searchPath {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		l.AddRoot(os.DirFS(abs))
	}
	if err := readMap(*fontMapArg, l.AddFontMap); err != nil {
		return err
	}
	if err := readMap(*cidFontMapArg, l.AddCIDFontMap); err != nil {
		return err
	}

	e := pdffont.New(&pdffont.Options{
		NoCIDFallback: *noCIDFallback,
		CIDSubstPath:  *cidSubstPath,
		CIDSubstFont:  *cidSubstFont,
		Loader:        l,
	})

	var embedded []byte
	if *embedArg != "" {
		var err error
		embedded, err = os.ReadFile(*embedArg)
		if err != nil {
			return err
		}
	}

	for _, name := range flag.Args() {
		d := pdf.NewData()
		dict := makeFontDict(d, name, embedded)
		f, err := e.LoadFont(d, dict, *cidArg)
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			continue
		}
		show(name, f)
		f.Release()
	}
	return nil
}

func readMap(fname string, add func(io.Reader) error) error {
	if fname == "" {
		return nil
	}
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()
	err = add(fd)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

// makeFontDict constructs a font dictionary for the given font name, as it
// could appear in a PDF file.
func makeFontDict(d *pdf.Data, name string, embedded []byte) pdf.Dict {
	subtype := pdf.Name("Type1")
	if *cidArg {
		subtype = "CIDFontType2"
	}
	desc := pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": pdf.Name(name),
		"Flags":    pdf.Integer(*flagsArg),
	}
	if embedded != nil {
		key := pdf.Name("FontFile")
		switch font.Sniff(embedded) {
		case font.TrueType:
			key = "FontFile2"
		case font.CFF:
			key = "FontFile3"
		}
		desc[key] = d.AddStream(nil, embedded)
	}

	dict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        subtype,
		"BaseFont":       pdf.Name(name),
		"FontDescriptor": d.Add(desc),
	}
	if *cidArg {
		registry, ordering, _ := strings.Cut(*rosArg, "-")
		dict["CIDSystemInfo"] = pdf.Dict{
			"Registry":   pdf.String(registry),
			"Ordering":   pdf.String(ordering),
			"Supplement": pdf.Integer(0),
		}
	}
	return dict
}

func show(name string, f *pdffont.Font) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  source: %s\n", f.Substitution())
	fmt.Printf("  format: %s\n", f.Type)
	if f.Program != nil {
		fmt.Printf("  font program: %s (%d glyphs)\n",
			f.Program.PostScriptName(), f.Program.NumGlyphs())
	}
	fmt.Printf("  font matrix: %v\n", f.FontMatrix)
	if f.Descriptor != nil {
		fmt.Printf("  descriptor: %s\n", pdf.Format(f.Descriptor))
	}
	if f.IsCID {
		fmt.Printf("  substitute: %t\n", f.Substitute)
		for _, vertical := range []bool{false, true} {
			m, err := f.GlyphMetrics(1, vertical)
			if err != nil {
				continue
			}
			fmt.Printf("  CID 1 (vertical=%t): %+v\n", vertical, m)
		}
	}
}
