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

package graphics

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/logging"
	"seehuhn.de/go/pdffont/pdf"
)

// A Reader executes the font related operators of a PDF content stream.
// Operands are pushed onto the operand stack using [Reader.Push], and
// operators are executed using [Reader.Do].
//
// A Reader must not be used concurrently from multiple goroutines.
type Reader struct {
	R      pdf.Getter
	Engine *pdffont.Engine

	// PageResources is the /Resources dictionary of the page.
	PageResources pdf.Dict

	// Resources is the /Resources dictionary of the content stream being
	// executed, for example of a form XObject or a glyph procedure.
	// If this is nil, only the page resources are used.
	Resources pdf.Dict

	State

	// UnknownOp, if not nil, is called for operators not handled by the
	// Reader.  The operand stack is cleared afterwards.
	UnknownOp func(op string, args []pdf.Object) error

	operands []pdf.Object
	stack    []State
	glyph    *GlyphContext
	fonts    map[pdf.Reference]*pdffont.Font
}

// NewReader creates a new Reader for the content stream of a page.
func NewReader(r pdf.Getter, e *pdffont.Engine, pageResources pdf.Dict) *Reader {
	return &Reader{
		R:             r,
		Engine:        e,
		PageResources: pageResources,
		fonts:         make(map[pdf.Reference]*pdffont.Font),
	}
}

// Close releases all fonts held by the reader.
func (r *Reader) Close() {
	for len(r.stack) > 0 {
		r.restore()
	}
	r.State.release()
	for ref, f := range r.fonts {
		f.Release()
		delete(r.fonts, ref)
	}
}

// Push pushes operands onto the operand stack.
func (r *Reader) Push(args ...pdf.Object) {
	r.operands = append(r.operands, args...)
}

// StackDepth returns the number of objects on the operand stack.
func (r *Reader) StackDepth() int {
	return len(r.operands)
}

// ClearStack removes all objects from the operand stack.
func (r *Reader) ClearStack() {
	clear(r.operands)
	r.operands = r.operands[:0]
}

// pop removes the top n objects from the operand stack.
func (r *Reader) pop(n int) {
	k := len(r.operands) - n
	clear(r.operands[k:])
	r.operands = r.operands[:k]
}

// numbers returns the top n operands as numbers.  On error, the operand
// stack is cleared.
func (r *Reader) numbers(n int) ([]float64, error) {
	if len(r.operands) < n {
		r.ClearStack()
		return nil, pdf.ErrStackUnderflow
	}
	res := make([]float64, n)
	for i, obj := range r.operands[len(r.operands)-n:] {
		switch x := obj.(type) {
		case pdf.Integer:
			res[i] = float64(x)
		case pdf.Real:
			res[i] = float64(x)
		default:
			r.ClearStack()
			return nil, fmt.Errorf("%w: expected number, got %T", pdf.ErrTypeCheck, obj)
		}
	}
	return res, nil
}

// Do executes an operator, using the operands on the operand stack.
func (r *Reader) Do(op string) error {
	switch op {
	case "q":
		r.stack = append(r.stack, r.State.clone())

	case "Q":
		if len(r.stack) > 0 {
			r.restore()
		}

	case "Tf": // Set text font and size
		return r.doTf()

	case "d0": // Set glyph width in Type 3 font
		wx, err := r.numbers(2)
		if err != nil {
			return err
		}
		if r.glyph == nil {
			r.ClearStack()
			return fmt.Errorf("%w: d0 outside glyph procedure", pdf.ErrUndefined)
		}
		r.glyph.setCharWidth(wx[0], wx[1])
		r.pop(2)

	case "d1": // Set glyph width and bounding box in Type 3 font
		args, err := r.numbers(6)
		if err != nil {
			return err
		}
		if r.glyph == nil {
			r.ClearStack()
			return fmt.Errorf("%w: d1 outside glyph procedure", pdf.ErrUndefined)
		}
		err = r.glyph.setCacheDevice(r.Engine, [6]float64(args))
		if err != nil {
			r.ClearStack()
			return err
		}
		r.pop(6)

	default:
		var err error
		if r.UnknownOp != nil {
			err = r.UnknownOp(op, r.operands)
		}
		r.ClearStack()
		return err
	}
	return nil
}

func (r *Reader) restore() {
	r.State.release()
	r.State = r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = State{}
	r.stack = r.stack[:len(r.stack)-1]
}

// doTf implements the Tf operator.  The font is looked up in the resources
// of the current content stream and then of the page.  If the font cannot
// be loaded, a font with the same name is loaded from outside the PDF file.
func (r *Reader) doTf() error {
	if len(r.operands) < 2 {
		r.ClearStack()
		return pdf.ErrStackUnderflow
	}
	nameObj := r.operands[len(r.operands)-2]
	sizeObj := r.operands[len(r.operands)-1]
	r.pop(2)

	var size float64
	switch x := sizeObj.(type) {
	case pdf.Integer:
		size = float64(x)
	case pdf.Real:
		size = float64(x)
	default:
		return fmt.Errorf("%w: font size %T", pdf.ErrTypeCheck, sizeObj)
	}
	name, ok := nameObj.(pdf.Name)
	if !ok {
		return fmt.Errorf("%w: font name %T", pdf.ErrTypeCheck, nameObj)
	}

	f, err := r.loadResourceFont(name)
	if errors.Is(err, pdf.ErrVMError) {
		return err
	} else if err != nil {
		logging.Logger().Info("cannot load font resource, trying internal font",
			"font", string(name), "error", err)
		f, err = r.Engine.LoadFontByName(font.DecodeName(string(name)))
		if err != nil {
			return err
		}
	}
	r.SetCurrentFont(f, size)
	f.Release()
	return nil
}

// loadResourceFont loads a font from the /Font resources.  The returned
// font holds a reference owned by the caller.
func (r *Reader) loadResourceFont(name pdf.Name) (*pdffont.Font, error) {
	fontObj, err := r.findResource("Font", name)
	if err != nil {
		return nil, err
	}

	ref, isRef := fontObj.(pdf.Reference)
	if isRef {
		if f, ok := r.fonts[ref]; ok {
			f.Acquire()
			return f, nil
		}
	}

	f, err := r.Engine.LoadFont(r.R, fontObj, false)
	if err != nil {
		return nil, err
	}
	if isRef {
		f.Acquire()
		r.fonts[ref] = f
	}
	return f, nil
}

// findResource looks up a resource in the resources of the current content
// stream, and then in the page resources.
func (r *Reader) findResource(category, name pdf.Name) (pdf.Object, error) {
	for _, res := range []pdf.Dict{r.Resources, r.PageResources} {
		if res == nil {
			continue
		}
		dict, err := pdf.GetDict(r.R, res[category])
		if err != nil {
			return nil, err
		}
		if obj := dict[name]; obj != nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: resource /%s /%s", pdf.ErrUndefined, category, name)
}

// BeginGlyph prepares to execute the glyph procedure for a character code
// of the current font, which must be a Type 3 font.  While the glyph
// procedure is executed, the resources of the font are used and the d0 and
// d1 operators are available.  Each call to BeginGlyph must be followed by
// a call to [Reader.EndGlyph].
func (r *Reader) BeginGlyph(code byte) (*GlyphContext, error) {
	f := r.TextFont
	if f == nil || f.Type != font.Type3 {
		return nil, fmt.Errorf("%w: current font is not a Type 3 font", pdf.ErrInvalidFont)
	}
	if r.glyph != nil {
		return nil, errors.New("nested glyph procedures are not supported")
	}
	proc, ok := f.CharProc(r.R, code)
	if !ok {
		return nil, fmt.Errorf("%w: no glyph procedure for code %d", pdf.ErrUndefined, code)
	}

	g := &GlyphContext{
		Font:          f,
		Code:          code,
		Proc:          proc,
		stackDepth:    len(r.stack),
		prevResources: r.Resources,
	}
	r.stack = append(r.stack, r.State.clone())
	r.glyph = g
	r.Resources = f.Resources
	return g, nil
}

// EndGlyph ends the glyph procedure started by [Reader.BeginGlyph] and
// restores the graphics state.
func (r *Reader) EndGlyph() {
	if r.glyph == nil {
		return
	}
	g := r.glyph
	r.glyph = nil
	r.Resources = g.prevResources
	for len(r.stack) > g.stackDepth {
		r.restore()
	}
}
