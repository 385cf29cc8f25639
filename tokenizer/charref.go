package tokenizer

// Character reference decoding: the sub-machine entered when a '&' is
// consumed in a state that declares a return state. Named references are
// resolved by greedy longest-prefix match against the entity table;
// numeric references fold digits into the builder's accumulator and run
// the substitution ladder at the end.

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	// the last two code points of every plane
	return code >= 0xFFFE && code <= 0x10FFFF && (code&0xFFFF == 0xFFFE || code&0xFFFF == 0xFFFF)
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

// windows1252Remap translates the C1 control range of numeric references
// to the characters legacy documents meant by them.
var windows1252Remap = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// inAttribute reports whether the reference was entered while building an
// attribute value. Every flush decides its destination from this alone.
func (z *Tokenizer) inAttribute() bool {
	switch z.returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

// flushCodePointsAsCharacterReference drains the temporary buffer either
// into the active attribute's value or out as character tokens.
func (z *Tokenizer) flushCodePointsAsCharacterReference() {
	if z.inAttribute() {
		for _, r := range z.builder.TempBuffer() {
			z.builder.WriteAttributeValue(r)
		}
		return
	}
	z.emit(z.builder.TempBufferCharTokens()...)
}

func (z *Tokenizer) characterReferenceStateHandler(r rune, eof bool) (bool, tokenizerState) {
	z.builder.ResetTempBuffer()
	z.builder.WriteTempBuffer('&')
	if eof {
		z.flushCodePointsAsCharacterReference()
		return true, z.returnState
	}
	switch {
	case isASCIIAlphanumeric(r):
		return true, namedCharacterReferenceState
	case r == '#':
		z.builder.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	default:
		z.flushCodePointsAsCharacterReference()
		return true, z.returnState
	}
}

// namedCharacterReferenceStateHandler runs the whole longest-match scan in
// one dispatch step. On entry r is the first code point after the '&' and
// the cursor sits just past it.
func (z *Tokenizer) namedCharacterReferenceStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.flushCodePointsAsCharacterReference()
		return true, z.returnState
	}

	start := z.in.position() - 1
	if err := z.in.seek(start); err != nil {
		panic(err)
	}
	name, expansion, ok := z.entities.longestMatch(z.in.peek(z.entities.maxLen))
	if !ok {
		// No table entry is a prefix here. The '&' alone is flushed and
		// the alphanumeric run passes through literally.
		z.flushCodePointsAsCharacterReference()
		return false, ambiguousAmpersandState
	}

	matched := name[1:]
	if err := z.in.seek(start + len(matched)); err != nil {
		panic(err)
	}

	endsInSemicolon := name[len(name)-1] == ';'
	if z.inAttribute() && !endsInSemicolon {
		// Historical compatibility: a semicolonless match inside an
		// attribute value followed by '=' or an alphanumeric is not a
		// reference at all; the consumed text stays verbatim.
		if next := z.in.peek(1); len(next) == 1 && (next[0] == '=' || isASCIIAlphanumeric(next[0])) {
			for _, m := range matched {
				z.builder.WriteTempBuffer(m)
			}
			z.flushCodePointsAsCharacterReference()
			return false, z.returnState
		}
	}
	if !endsInSemicolon {
		z.report(ErrMissingSemicolonAfterCharacterReference)
	}

	z.builder.ResetTempBuffer()
	for _, cp := range expansion {
		z.builder.WriteTempBuffer(cp)
	}
	z.flushCodePointsAsCharacterReference()
	return false, z.returnState
}

func (z *Tokenizer) ambiguousAmpersandStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, z.returnState
	}
	switch {
	case isASCIIAlphanumeric(r):
		if z.inAttribute() {
			z.builder.WriteAttributeValue(r)
		} else {
			z.emit(z.builder.CharacterToken(r))
		}
		return false, ambiguousAmpersandState
	case r == ';':
		z.report(ErrUnknownNamedCharacterReference)
		return true, z.returnState
	default:
		return true, z.returnState
	}
}

func (z *Tokenizer) numericCharacterReferenceStateHandler(r rune, eof bool) (bool, tokenizerState) {
	z.builder.SetCharRef(0)
	if eof {
		return true, decimalCharacterReferenceStartState
	}
	switch r {
	case 'x', 'X':
		z.builder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	default:
		return true, decimalCharacterReferenceStartState
	}
}

func (z *Tokenizer) hexadecimalCharacterReferenceStartStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	z.report(ErrAbsenceOfDigitsInNumericCharacterReference)
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}

func (z *Tokenizer) decimalCharacterReferenceStartStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	z.report(ErrAbsenceOfDigitsInNumericCharacterReference)
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}

func (z *Tokenizer) hexadecimalCharacterReferenceStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrMissingSemicolonAfterCharacterReference)
		return true, numericCharacterReferenceEndState
	}
	switch {
	case isASCIIDigit(r):
		z.builder.MulCharRef(16)
		z.builder.AddCharRef(int(r - '0'))
		return false, hexadecimalCharacterReferenceState
	case r >= 'A' && r <= 'F':
		z.builder.MulCharRef(16)
		z.builder.AddCharRef(int(r-'A') + 10)
		return false, hexadecimalCharacterReferenceState
	case r >= 'a' && r <= 'f':
		z.builder.MulCharRef(16)
		z.builder.AddCharRef(int(r-'a') + 10)
		return false, hexadecimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	default:
		z.report(ErrMissingSemicolonAfterCharacterReference)
		return true, numericCharacterReferenceEndState
	}
}

func (z *Tokenizer) decimalCharacterReferenceStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrMissingSemicolonAfterCharacterReference)
		return true, numericCharacterReferenceEndState
	}
	switch {
	case isASCIIDigit(r):
		z.builder.MulCharRef(10)
		z.builder.AddCharRef(int(r - '0'))
		return false, decimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	default:
		z.report(ErrMissingSemicolonAfterCharacterReference)
		return true, numericCharacterReferenceEndState
	}
}

// numericCharacterReferenceEndStateHandler never acts on its input; it
// always hands the delivered code point back to the return state after
// applying the substitution ladder to the accumulator.
func (z *Tokenizer) numericCharacterReferenceEndStateHandler(_ rune, _ bool) (bool, tokenizerState) {
	code := z.builder.CharRef()
	switch {
	case code == 0:
		z.report(ErrNullCharacterReference)
		code = 0xFFFD
	case code > maxCodePoint:
		z.report(ErrCharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case isSurrogate(code):
		z.report(ErrSurrogateCharacterReference)
		code = 0xFFFD
	case isNonCharacter(code):
		z.report(ErrNoncharacterCharacterReference)
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		z.report(ErrControlCharacterReference)
		if mapped, ok := windows1252Remap[code]; ok {
			code = int(mapped)
		}
	}

	z.builder.ResetTempBuffer()
	z.builder.WriteTempBuffer(rune(code))
	z.flushCodePointsAsCharacterReference()
	return true, z.returnState
}
