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
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/loader"
	"seehuhn.de/go/pdffont/font/program"
	"seehuhn.de/go/pdffont/logging"
	"seehuhn.de/go/pdffont/pdf"
)

// outcome classifies the result of one stage of font resolution.
type outcome int

const (
	stageOK outcome = iota
	stageRecoverable
	stageFatal
)

type stageResult struct {
	outcome outcome
	prog    program.Program
	err     error
}

func succeeded(prog program.Program) stageResult {
	return stageResult{outcome: stageOK, prog: prog}
}

// failed classifies an error.  Running out of memory stops the resolution,
// all other errors allow to try the next stage.
func failed(err error) stageResult {
	if errors.Is(err, pdf.ErrVMError) {
		return stageResult{outcome: stageFatal, err: err}
	}
	return stageResult{outcome: stageRecoverable, err: err}
}

var (
	errNotEmbedded = errors.New("font program not embedded")
	errNoName      = errors.New("font has no name")
)

// resolver holds the information needed to find the font program for a
// simple font or a CIDFont.
type resolver struct {
	e        *Engine
	r        pdf.Getter
	ref      pdf.Reference
	subtype  pdf.Name
	baseFont string
	desc     pdf.Dict
	flags    font.Flags
	isCID    bool
	ros      *cid.SystemInfo
}

func (e *Engine) newResolver(r pdf.Getter, ref pdf.Reference, dict pdf.Dict, subtype pdf.Name, isCID bool) (*resolver, error) {
	rs := &resolver{
		e:       e,
		r:       r,
		ref:     ref,
		subtype: subtype,
		isCID:   isCID,
	}

	// Entries of the wrong type are treated as absent.
	baseFont, err := pdf.GetName(r, dict["BaseFont"])
	if errors.Is(err, pdf.ErrTypeCheck) {
		logging.Logger().Warn("ignoring malformed font name",
			"object", ref, "value", pdf.Format(dict["BaseFont"]), "error", err)
	} else if err != nil {
		return nil, pdf.Wrap(err, "BaseFont")
	}
	rs.baseFont = string(baseFont)

	rs.desc, err = pdf.GetDict(r, dict["FontDescriptor"])
	if errors.Is(err, pdf.ErrTypeCheck) {
		logging.Logger().Warn("ignoring malformed font descriptor",
			"object", ref, "value", pdf.Format(dict["FontDescriptor"]), "error", err)
		rs.desc = nil
	} else if err != nil {
		return nil, pdf.Wrap(err, "FontDescriptor")
	}
	if rs.desc != nil {
		flags, err := pdf.GetInt(r, rs.desc["Flags"])
		if err == nil {
			rs.flags = font.Flags(flags)
		}
	}

	if isCID {
		rs.ros, err = readROS(r, dict["CIDSystemInfo"])
		if err != nil {
			return nil, pdf.Wrap(err, "CIDSystemInfo")
		}
	}
	return rs, nil
}

// run tries the resolution stages in order, until a font program is found.
func (rs *resolver) run() (program.Program, Substitution, error) {
	state := Embedded
	for {
		var res stageResult
		switch state {
		case Embedded:
			res = rs.embedded()
		case FromFile:
			res = rs.fromFile()
		default:
			res = rs.fromFileFallback()
		}

		switch res.outcome {
		case stageOK:
			return res.prog, state, nil
		case stageFatal:
			return nil, state, res.err
		}

		switch state {
		case Embedded:
			if !errors.Is(res.err, errNotEmbedded) {
				logging.Logger().Warn("cannot process embedded stream, attempting to load a substitute font",
					"object", rs.ref, "font", rs.displayName(), "error", res.err)
			}
			state = FromFile
		case FromFile:
			state = FromFileFallback
		default:
			return nil, state, fmt.Errorf("%w: %s: %w", pdf.ErrInvalidFont, rs.displayName(), res.err)
		}
	}
}

// embedded loads the font program from the font descriptor.
func (rs *resolver) embedded() stageResult {
	if rs.desc == nil {
		return failed(errNotEmbedded)
	}

	stm, hint, err := rs.fontFile()
	if err != nil {
		return failed(err)
	}
	if stm == nil {
		return failed(errNotEmbedded)
	}

	data, err := pdf.ReadStream(rs.r, stm, rs.e.opt.MaxFontSize)
	if err != nil {
		return failed(err)
	}
	if len(data) == 0 {
		return failed(fmt.Errorf("%w: empty font stream", pdf.ErrInvalidFont))
	}

	format := font.Sniff(data)
	if format == font.Unknown {
		format = hint
	}
	if format == font.Unknown {
		format = formatFromSubtype(rs.subtype)
	}

	prog, err := program.Parse(format, data, 0)
	if err != nil {
		return failed(err)
	}
	return succeeded(prog)
}

// fontFile returns the embedded font stream, together with the format
// implied by the font descriptor key and the stream subtype.
func (rs *resolver) fontFile() (*pdf.Stream, font.Format, error) {
	for _, key := range []pdf.Name{"FontFile", "FontFile2", "FontFile3"} {
		stm, err := pdf.GetStream(rs.r, rs.desc[key])
		if err != nil {
			return nil, font.Unknown, pdf.Wrap(err, string(key))
		}
		if stm == nil {
			continue
		}

		switch key {
		case "FontFile":
			return stm, font.Type1, nil
		case "FontFile2":
			return stm, font.TrueType, nil
		}
		sub, _ := pdf.GetName(rs.r, stm.Dict["Subtype"])
		switch sub {
		case "Type1":
			return stm, font.Type1, nil
		case "Type1C", "CIDFontType0C", "OpenType":
			return stm, font.CFF, nil
		case "TrueType":
			return stm, font.TrueType, nil
		}
		return stm, font.Unknown, nil
	}
	return nil, font.Unknown, nil
}

// formatFromSubtype gives the font program format implied by the /Subtype
// of the font dictionary.
func formatFromSubtype(subtype pdf.Name) font.Format {
	switch subtype {
	case "", "Type1", "MMType1":
		return font.Type1
	case "Type1C", "CIDFontType0":
		return font.CFF
	case "TrueType", "CIDFontType2":
		return font.TrueType
	default:
		return font.Unknown
	}
}

// fromFile loads a font with the requested name from outside the PDF file.
func (rs *resolver) fromFile() stageResult {
	if rs.baseFont == "" {
		return failed(errNoName)
	}
	if rs.isCID {
		return rs.cidFromFile()
	}

	name := font.StripSubsetTag(rs.baseFont)
	if canonical, ok := font.CleanName(name); ok {
		name = canonical
	}
	loc, err := rs.e.loader.Find(name)
	if alt := font.DecodeName(name); err != nil && alt != name {
		loc, err = rs.e.loader.Find(alt)
	}
	if err != nil {
		return failed(err)
	}

	prog, err := rs.e.loadFile(loc)
	if err != nil {
		return failed(err)
	}
	logging.Logger().Info("loading font from file",
		"font", font.DecodeName(rs.baseFont), "file", loc.String())
	return succeeded(prog)
}

// cidFromFile loads a CIDFont with the requested name from the CID font
// map or from the CIDFont resource directory.
func (rs *resolver) cidFromFile() stageResult {
	name := font.StripSubsetTag(rs.baseFont)

	if loc, ok := rs.e.loader.LookupCID(name); ok {
		prog, err := rs.e.loadFile(loc)
		if err != nil {
			return failed(err)
		}
		logging.Logger().Info("loading CIDFont from file",
			"font", font.DecodeName(rs.baseFont), "file", loc.String())
		return succeeded(prog)
	}

	fd, err := rs.e.loader.OpenResource("CIDFont", name)
	if err != nil {
		return failed(fmt.Errorf("%w: %w", pdf.ErrInvalidFont, err))
	}
	defer fd.Close()
	prog, err := rs.e.readProgram(fd, loader.Location{})
	if err != nil {
		return failed(err)
	}
	logging.Logger().Info("loading CIDFont from file",
		"font", font.DecodeName(rs.baseFont), "file", "CIDFont/"+name)
	return succeeded(prog)
}

// fromFileFallback loads a generic substitute font.
func (rs *resolver) fromFileFallback() stageResult {
	if rs.isCID {
		return rs.cidFallback()
	}

	name := font.SubstituteByFlags(rs.flags)
	loc, err := rs.e.loader.Find(name)
	if err != nil {
		return failed(err)
	}
	prog, err := rs.e.loadFile(loc)
	if err != nil {
		return failed(err)
	}

	if rs.baseFont != "" {
		logging.Logger().Info("loading substitute font",
			"font", font.DecodeName(rs.baseFont), "substitute", name, "file", loc.String())
	} else {
		logging.Logger().Info("loading nameless font",
			"substitute", name, "file", loc.String())
	}
	return succeeded(prog)
}

// cidFallback loads a substitute for a CIDFont.  The CID font map is
// searched for an entry for the character collection, then for the
// default entry.  If neither can be used, the generic substitute file is
// loaded, unless this is disabled in the options.
func (rs *resolver) cidFallback() stageResult {
	var candidates []loader.Location
	if rs.ros != nil && rs.ros.Registry != "" && rs.ros.Ordering != "" {
		if loc, ok := rs.e.loader.LookupCID(rs.ros.Registry + "-" + rs.ros.Ordering); ok {
			candidates = append(candidates, loc)
		}
	}
	if loc, ok := rs.e.loader.LookupCID(loader.DefaultCIDFont); ok {
		candidates = append(candidates, loc)
	}

	var lastErr error
	for _, loc := range candidates {
		prog, err := rs.e.loadFile(loc)
		if errors.Is(err, pdf.ErrVMError) {
			return failed(err)
		} else if err != nil {
			lastErr = err
			continue
		}
		rs.logCIDSubstitute(loc)
		return succeeded(prog)
	}

	if rs.e.opt.NoCIDFallback {
		if lastErr == nil {
			lastErr = errors.New("no substitute in CID font map")
		}
		return failed(fmt.Errorf("%w: %w", pdf.ErrInvalidFont, lastErr))
	}

	fname := rs.e.opt.cidSubstFont()
	if !filepath.IsAbs(fname) {
		fname = filepath.Join(rs.e.opt.CIDSubstPath, fname)
	}
	loc := loader.Location{Path: fname}
	prog, err := rs.e.loadFile(loc)
	if err != nil {
		return failed(fmt.Errorf("%w: %w", pdf.ErrInvalidFont, err))
	}
	rs.logCIDSubstitute(loc)
	return succeeded(prog)
}

func (rs *resolver) logCIDSubstitute(loc loader.Location) {
	if rs.baseFont != "" {
		logging.Logger().Info("loading CIDFont substitute",
			"font", font.DecodeName(rs.baseFont), "file", loc.String())
	} else {
		logging.Logger().Info("loading nameless CIDFont",
			"file", loc.String())
	}
}

func (rs *resolver) displayName() string {
	if rs.baseFont == "" {
		return "(unnamed font)"
	}
	return font.DecodeName(rs.baseFont)
}

// loadFile reads and parses a font file.
func (e *Engine) loadFile(loc loader.Location) (program.Program, error) {
	fd, err := e.loader.Open(loc)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return e.readProgram(fd, loc)
}

// readProgram reads a font program and parses it, using the format found
// by sniffing the data.
func (e *Engine) readProgram(r io.Reader, loc loader.Location) (program.Program, error) {
	data, err := pdf.ReadAll(r, e.opt.MaxFontSize)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font file %s", pdf.ErrInvalidFont, loc)
	}

	format := font.Sniff(data)
	if format == font.Unknown {
		switch {
		case loc.FileType == "TrueType":
			format = font.TrueType
		case bytes.HasPrefix(data, []byte("%!FontType1")):
			format = font.Type1
		}
	}
	return program.Parse(format, data, loc.SubfontID)
}

// readROS reads a /CIDSystemInfo dictionary.  Registry and Ordering are
// expected to be strings, but names are accepted as well.
func readROS(r pdf.Getter, obj pdf.Object) (*cid.SystemInfo, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil || dict == nil {
		return nil, err
	}

	text := func(obj pdf.Object) string {
		obj, _ = pdf.Resolve(r, obj)
		switch x := obj.(type) {
		case pdf.String:
			return string(x)
		case pdf.Name:
			return string(x)
		}
		return ""
	}
	ros := &cid.SystemInfo{
		Registry: text(dict["Registry"]),
		Ordering: text(dict["Ordering"]),
	}
	if supplement, err := pdf.GetInt(r, dict["Supplement"]); err == nil {
		ros.Supplement = int32(supplement)
	}
	return ros, nil
}
