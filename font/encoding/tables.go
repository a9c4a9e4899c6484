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

package encoding

import "strings"

// The tables below list the glyph names for all 256 codes, eight codes per
// line.  See Annex D.2 of ISO 32000-2:2020.

var winAnsi = parseTable(`
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	space exclam quotedbl numbersign dollar percent ampersand quotesingle
	parenleft parenright asterisk plus comma hyphen period slash
	zero one two three four five six seven
	eight nine colon semicolon less equal greater question
	at A B C D E F G
	H I J K L M N O
	P Q R S T U V W
	X Y Z bracketleft backslash bracketright asciicircum underscore
	grave a b c d e f g
	h i j k l m n o
	p q r s t u v w
	x y z braceleft bar braceright asciitilde bullet
	Euro bullet quotesinglbase florin quotedblbase ellipsis dagger daggerdbl
	circumflex perthousand Scaron guilsinglleft OE bullet Zcaron bullet
	bullet quoteleft quoteright quotedblleft quotedblright bullet endash emdash
	tilde trademark scaron guilsinglright oe bullet zcaron Ydieresis
	space exclamdown cent sterling currency yen brokenbar section
	dieresis copyright ordfeminine guillemotleft logicalnot hyphen registered macron
	degree plusminus twosuperior threesuperior acute mu paragraph periodcentered
	cedilla onesuperior ordmasculine guillemotright onequarter onehalf threequarters questiondown
	Agrave Aacute Acircumflex Atilde Adieresis Aring AE Ccedilla
	Egrave Eacute Ecircumflex Edieresis Igrave Iacute Icircumflex Idieresis
	Eth Ntilde Ograve Oacute Ocircumflex Otilde Odieresis multiply
	Oslash Ugrave Uacute Ucircumflex Udieresis Yacute Thorn germandbls
	agrave aacute acircumflex atilde adieresis aring ae ccedilla
	egrave eacute ecircumflex edieresis igrave iacute icircumflex idieresis
	eth ntilde ograve oacute ocircumflex otilde odieresis divide
	oslash ugrave uacute ucircumflex udieresis yacute thorn ydieresis
`)

var macRoman = parseTable(`
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	space exclam quotedbl numbersign dollar percent ampersand quotesingle
	parenleft parenright asterisk plus comma hyphen period slash
	zero one two three four five six seven
	eight nine colon semicolon less equal greater question
	at A B C D E F G
	H I J K L M N O
	P Q R S T U V W
	X Y Z bracketleft backslash bracketright asciicircum underscore
	grave a b c d e f g
	h i j k l m n o
	p q r s t u v w
	x y z braceleft bar braceright asciitilde .notdef
	Adieresis Aring Ccedilla Eacute Ntilde Odieresis Udieresis aacute
	agrave acircumflex adieresis atilde aring ccedilla eacute egrave
	ecircumflex edieresis iacute igrave icircumflex idieresis ntilde oacute
	ograve ocircumflex odieresis otilde uacute ugrave ucircumflex udieresis
	dagger degree cent sterling section bullet paragraph germandbls
	registered copyright trademark acute dieresis .notdef AE Oslash
	.notdef plusminus .notdef .notdef yen mu .notdef .notdef
	.notdef .notdef .notdef ordfeminine ordmasculine .notdef ae oslash
	questiondown exclamdown logicalnot .notdef florin .notdef .notdef guillemotleft
	guillemotright ellipsis space Agrave Atilde Otilde OE oe
	endash emdash quotedblleft quotedblright quoteleft quoteright divide .notdef
	ydieresis Ydieresis fraction currency guilsinglleft guilsinglright fi fl
	daggerdbl periodcentered quotesinglbase quotedblbase perthousand Acircumflex Ecircumflex Aacute
	Edieresis Egrave Iacute Icircumflex Idieresis Igrave Oacute Ocircumflex
	.notdef Ograve Uacute Ucircumflex Ugrave dotlessi circumflex tilde
	macron breve dotaccent ring cedilla hungarumlaut ogonek caron
`)

var macExpert = parseTable(`
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	.notdef .notdef .notdef .notdef .notdef .notdef .notdef .notdef
	space exclamsmall Hungarumlautsmall centoldstyle dollaroldstyle dollarsuperior ampersandsmall Acutesmall
	parenleftsuperior parenrightsuperior twodotenleader onedotenleader comma hyphen period fraction
	zerooldstyle oneoldstyle twooldstyle threeoldstyle fouroldstyle fiveoldstyle sixoldstyle sevenoldstyle
	eightoldstyle nineoldstyle colon semicolon .notdef threequartersemdash .notdef questionsmall
	.notdef .notdef .notdef .notdef Ethsmall .notdef .notdef onequarter
	onehalf threequarters oneeighth threeeighths fiveeighths seveneighths onethird twothirds
	.notdef .notdef .notdef .notdef .notdef .notdef ff fi
	fl ffi ffl parenleftinferior .notdef parenrightinferior Circumflexsmall hypheninferior
	Gravesmall Asmall Bsmall Csmall Dsmall Esmall Fsmall Gsmall
	Hsmall Ismall Jsmall Ksmall Lsmall Msmall Nsmall Osmall
	Psmall Qsmall Rsmall Ssmall Tsmall Usmall Vsmall Wsmall
	Xsmall Ysmall Zsmall colonmonetary onefitted rupiah Tildesmall .notdef
	.notdef asuperior centsuperior .notdef .notdef .notdef .notdef Aacutesmall
	Agravesmall Acircumflexsmall Adieresissmall Atildesmall Aringsmall Ccedillasmall Eacutesmall Egravesmall
	Ecircumflexsmall Edieresissmall Iacutesmall Igravesmall Icircumflexsmall Idieresissmall Ntildesmall Oacutesmall
	Ogravesmall Ocircumflexsmall Odieresissmall Otildesmall Uacutesmall Ugravesmall Ucircumflexsmall Udieresissmall
	.notdef eightsuperior fourinferior threeinferior sixinferior eightinferior seveninferior Scaronsmall
	.notdef centinferior twoinferior .notdef Dieresissmall .notdef Caronsmall osuperior
	fiveinferior .notdef commainferior periodinferior Yacutesmall .notdef dollarinferior .notdef
	.notdef Thornsmall .notdef nineinferior zeroinferior Zcaronsmall AEsmall Oslashsmall
	questiondownsmall oneinferior Lslashsmall .notdef .notdef .notdef .notdef .notdef
	.notdef Cedillasmall .notdef .notdef .notdef .notdef .notdef OEsmall
	figuredash hyphensuperior .notdef .notdef .notdef .notdef exclamdownsmall .notdef
	Ydieresissmall .notdef onesuperior twosuperior threesuperior foursuperior fivesuperior sixsuperior
	sevensuperior ninesuperior zerosuperior .notdef esuperior rsuperior tsuperior .notdef
	.notdef isuperior ssuperior dsuperior .notdef .notdef .notdef .notdef
	.notdef lsuperior Ogoneksmall Brevesmall Macronsmall bsuperior nsuperior msuperior
	commasuperior periodsuperior Dotaccentsmall Ringsmall .notdef .notdef .notdef .notdef
`)

func parseTable(s string) *[256]string {
	names := strings.Fields(s)
	if len(names) != 256 {
		panic("encoding table must have 256 entries")
	}
	res := &[256]string{}
	copy(res[:], names)
	return res
}
