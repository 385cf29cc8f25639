package tokenizer

import (
	"strings"

	"github.com/pkg/errors"
)

type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	DoctypeToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "character"
	case StartTagToken:
		return "start-tag"
	case EndTagToken:
		return "end-tag"
	case CommentToken:
		return "comment"
	case DoctypeToken:
		return "doctype"
	case EndOfFileToken:
		return "end-of-file"
	}
	return "unknown"
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Attribute is a single name/value pair on a start tag. Attributes keep
// their source order and duplicates are preserved; dropping duplicates is
// a tree-construction policy, not a tokenization one.
type Attribute struct {
	Name  string
	Value string
}

// Token is a completed unit of tokenizer output. A token is immutable once
// emitted; the fields that apply depend on Type.
type Token struct {
	Type        TokenType
	Data        string // character data or comment text
	Name        string // tag or doctype name
	Attributes  []Attribute
	SelfClosing bool
	ForceQuirks bool
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
}

// attrBuilder accumulates the attribute currently being appended to.
// strings.Builder values must not be copied, so the token builder keeps
// these by pointer.
type attrBuilder struct {
	name  strings.Builder
	value strings.Builder
}

// tokenBuilder owns the token under construction. It is mutated
// field-by-field by the state handlers and drained into an immutable Token
// at emit time. Only the most recently started attribute is writable.
type tokenBuilder struct {
	curTagType  tagType
	name        strings.Builder
	data        strings.Builder
	publicID    strings.Builder
	systemID    strings.Builder
	hasPublicID bool
	hasSystemID bool
	attrs       []*attrBuilder
	selfClosing bool
	forceQuirks bool
	tempBuffer  []rune
	charRef     int
}

func newTokenBuilder() *tokenBuilder {
	return &tokenBuilder{}
}

// NewTag discards any previous current token and starts a fresh tag of the
// given type with an empty name and no attributes.
func (t *tokenBuilder) NewTag(tt tagType) {
	t.curTagType = tt
	t.name.Reset()
	t.attrs = nil
	t.selfClosing = false
}

// NewComment starts a fresh comment token with empty data.
func (t *tokenBuilder) NewComment() {
	t.data.Reset()
}

// NewDoctype starts a fresh doctype token.
func (t *tokenBuilder) NewDoctype() {
	t.name.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.forceQuirks = false
}

// WriteName appends a code point to the current tag or doctype name.
func (t *tokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteData appends a code point to the current comment data.
func (t *tokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// StartAttribute pushes a new empty attribute and makes it the active one.
func (t *tokenBuilder) StartAttribute() {
	t.attrs = append(t.attrs, &attrBuilder{})
}

func (t *tokenBuilder) currentAttr(op string) *attrBuilder {
	if len(t.attrs) == 0 {
		panic(errors.Errorf("tokenizer: %s called before StartAttribute", op))
	}
	return t.attrs[len(t.attrs)-1]
}

// WriteAttributeName appends a code point to the active attribute's name.
// Calling it before an attribute has been started is a contract violation
// and unreachable from a correct state machine.
func (t *tokenBuilder) WriteAttributeName(r rune) {
	t.currentAttr("WriteAttributeName").name.WriteRune(r)
}

// WriteAttributeValue appends a code point to the active attribute's value.
func (t *tokenBuilder) WriteAttributeValue(r rune) {
	t.currentAttr("WriteAttributeValue").value.WriteRune(r)
}

// FinishAttributeName marks the active attribute's name complete and
// reports whether an earlier attribute on the same tag already carries that
// name. The duplicate is kept either way.
func (t *tokenBuilder) FinishAttributeName() bool {
	cur := t.currentAttr("FinishAttributeName")
	name := cur.name.String()
	for _, a := range t.attrs[:len(t.attrs)-1] {
		if a.name.String() == name {
			return true
		}
	}
	return false
}

// SetSelfClosing sets the self-closing flag on the current tag.
func (t *tokenBuilder) SetSelfClosing() {
	t.selfClosing = true
}

// SetForceQuirks sets the force-quirks flag on the current doctype.
func (t *tokenBuilder) SetForceQuirks() {
	t.forceQuirks = true
}

// StartPublicID marks the public identifier present and empty.
func (t *tokenBuilder) StartPublicID() {
	t.publicID.Reset()
	t.hasPublicID = true
}

// StartSystemID marks the system identifier present and empty.
func (t *tokenBuilder) StartSystemID() {
	t.systemID.Reset()
	t.hasSystemID = true
}

// WritePublicID appends a code point to the doctype public identifier.
func (t *tokenBuilder) WritePublicID(r rune) {
	t.publicID.WriteRune(r)
}

// WriteSystemID appends a code point to the doctype system identifier.
func (t *tokenBuilder) WriteSystemID(r rune) {
	t.systemID.WriteRune(r)
}

// ResetTempBuffer clears the character-reference scratch buffer.
func (t *tokenBuilder) ResetTempBuffer() {
	t.tempBuffer = t.tempBuffer[:0]
}

// WriteTempBuffer appends a code point to the scratch buffer.
func (t *tokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer = append(t.tempBuffer, r)
}

// TempBuffer returns the scratch buffer contents.
func (t *tokenBuilder) TempBuffer() []rune {
	return t.tempBuffer
}

const maxCodePoint = 0x10FFFF

// SetCharRef resets the numeric character-reference accumulator.
func (t *tokenBuilder) SetCharRef(i int) {
	t.charRef = i
}

// CharRef returns the numeric character-reference accumulator.
func (t *tokenBuilder) CharRef() int {
	return t.charRef
}

// MulCharRef multiplies the accumulator by the radix, clamping so that a
// long digit run cannot overflow; anything past the maximum code point
// decodes to U+FFFD regardless.
func (t *tokenBuilder) MulCharRef(i int) {
	t.charRef *= i
	if t.charRef > maxCodePoint+1 {
		t.charRef = maxCodePoint + 1
	}
}

// AddCharRef adds a digit value to the accumulator.
func (t *tokenBuilder) AddCharRef(i int) {
	t.charRef += i
	if t.charRef > maxCodePoint+1 {
		t.charRef = maxCodePoint + 1
	}
}

// TagToken materializes the current tag. Ownership of the attribute list
// transfers to the returned token.
func (t *tokenBuilder) TagToken() Token {
	tt := StartTagToken
	if t.curTagType == endTag {
		tt = EndTagToken
	}
	var attrs []Attribute
	for _, a := range t.attrs {
		attrs = append(attrs, Attribute{Name: a.name.String(), Value: a.value.String()})
	}
	return Token{
		Type:        tt,
		Name:        t.name.String(),
		Attributes:  attrs,
		SelfClosing: t.selfClosing,
	}
}

// CharacterToken wraps a single decoded code point.
func (t *tokenBuilder) CharacterToken(r rune) Token {
	return Token{
		Type: CharacterToken,
		Data: string(r),
	}
}

// TempBufferCharTokens returns one character token per code point in the
// scratch buffer, in order.
func (t *tokenBuilder) TempBufferCharTokens() []Token {
	tokens := make([]Token, 0, len(t.tempBuffer))
	for _, r := range t.tempBuffer {
		tokens = append(tokens, t.CharacterToken(r))
	}
	return tokens
}

// CommentToken materializes the current comment.
func (t *tokenBuilder) CommentToken() Token {
	return Token{
		Type: CommentToken,
		Data: t.data.String(),
	}
}

// DoctypeToken materializes the current doctype.
func (t *tokenBuilder) DoctypeToken() Token {
	return Token{
		Type:        DoctypeToken,
		Name:        t.name.String(),
		ForceQuirks: t.forceQuirks,
		PublicID:    t.publicID.String(),
		SystemID:    t.systemID.String(),
		HasPublicID: t.hasPublicID,
		HasSystemID: t.hasSystemID,
	}
}

// EndOfFileToken creates the end-of-input marker.
func (t *tokenBuilder) EndOfFileToken() Token {
	return Token{
		Type: EndOfFileToken,
	}
}
