// Package tokenizer converts a normalized markup character stream into a
// sequence of structural tokens (tags, text, comments, doctypes) by
// running the standard tokenization state machine. Tree construction,
// input decoding, and entity table loading are the caller's collaborators;
// this package only consumes code points and produces tokens.
package tokenizer

import "github.com/pkg/errors"

// Tokenizer owns one tokenization pass: the cursor position, the current
// and return states, the token under construction, and the queue of
// completed tokens. It is not restartable and not safe for concurrent use;
// retokenizing takes a fresh Tokenizer.
type Tokenizer struct {
	in           *cursor
	currentState tokenizerState
	returnState  tokenizerState
	builder      *tokenBuilder
	entities     *entitySet
	onError      ErrorHandler
	pending      []Token
	eofToken     *Token
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithEntities replaces the built-in character reference table.
func WithEntities(table Entities) Option {
	return func(z *Tokenizer) {
		z.entities = newEntitySet(table)
	}
}

// WithErrorHandler installs a sink for classified parse errors. Without
// one, errors are classified and dropped.
func WithErrorHandler(h ErrorHandler) Option {
	return func(z *Tokenizer) {
		z.onError = h
	}
}

// New creates a tokenizer over an already-normalized input: CR and CRLF
// collapsed to LF, invalid byte sequences scrubbed.
func New(input string, opts ...Option) *Tokenizer {
	z := &Tokenizer{
		in:           newCursor(input),
		builder:      newTokenBuilder(),
		currentState: dataState,
	}
	for _, opt := range opts {
		opt(z)
	}
	if z.entities == nil {
		z.entities = newEntitySet(DefaultEntities)
	}
	return z
}

// Next returns the next completed token, running dispatch steps until at
// least one is available. A single step may emit several tokens; they are
// returned in emission order. Once the end-of-file token has been
// returned, every further call returns that same token.
func (z *Tokenizer) Next() (*Token, error) {
	for {
		if tok := z.dequeue(); tok != nil {
			return tok, nil
		}
		if z.eofToken != nil {
			return z.eofToken, nil
		}

		r, eof := z.in.next()
		handler := z.stateHandler(z.currentState)
		if handler == nil {
			// unreachable with an exhaustive dispatch table
			return nil, errors.Errorf("tokenizer: no handler for state %d", z.currentState)
		}
		reconsume, next := handler(r, eof)
		if reconsume {
			z.in.reconsume()
		}
		z.currentState = next
	}
}

func (z *Tokenizer) dequeue() *Token {
	if len(z.pending) == 0 {
		return nil
	}
	tok := z.pending[0]
	z.pending = z.pending[1:]
	if tok.Type == EndOfFileToken {
		z.eofToken = &tok
	}
	return &tok
}

func (z *Tokenizer) emit(tokens ...Token) {
	z.pending = append(z.pending, tokens...)
}

func (z *Tokenizer) report(code ErrorCode) {
	if z.onError != nil {
		z.onError(ParseError{Code: code, Pos: z.in.position()})
	}
}

// emitCurrentTag finishes the tag under construction. An end tag may not
// carry attributes or the self-closing flag; both are classified and
// stripped here rather than at each call site.
func (z *Tokenizer) emitCurrentTag() tokenizerState {
	tok := z.builder.TagToken()
	if tok.Type == EndTagToken {
		if len(tok.Attributes) > 0 {
			z.report(ErrEndTagWithAttributes)
			tok.Attributes = nil
		}
		if tok.SelfClosing {
			z.report(ErrEndTagWithTrailingSolidus)
			tok.SelfClosing = false
		}
	}
	z.emit(tok)
	return dataState
}

func (z *Tokenizer) emitCurrentDoctype() tokenizerState {
	z.emit(z.builder.DoctypeToken())
	return dataState
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIAlpha(r rune) bool {
	return isASCIIUpper(r) || (r >= 'a' && r <= 'z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}

// isWhitespace matches the tokenizer's whitespace class: tab, line feed,
// form feed, space.
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

// A stateHandler consumes one code point (or the end-of-input signal) and
// returns whether to re-deliver it to the next state and which state that
// is. Every handler's default arm is total; there is no fallthrough.
type stateHandler func(r rune, eof bool) (bool, tokenizerState)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

func (z *Tokenizer) stateHandler(state tokenizerState) stateHandler {
	switch state {
	case dataState:
		return z.dataStateHandler
	case tagOpenState:
		return z.tagOpenStateHandler
	case endTagOpenState:
		return z.endTagOpenStateHandler
	case tagNameState:
		return z.tagNameStateHandler
	case beforeAttributeNameState:
		return z.beforeAttributeNameStateHandler
	case attributeNameState:
		return z.attributeNameStateHandler
	case afterAttributeNameState:
		return z.afterAttributeNameStateHandler
	case beforeAttributeValueState:
		return z.beforeAttributeValueStateHandler
	case attributeValueDoubleQuotedState:
		return z.attributeValueDoubleQuotedStateHandler
	case attributeValueSingleQuotedState:
		return z.attributeValueSingleQuotedStateHandler
	case attributeValueUnquotedState:
		return z.attributeValueUnquotedStateHandler
	case afterAttributeValueQuotedState:
		return z.afterAttributeValueQuotedStateHandler
	case selfClosingStartTagState:
		return z.selfClosingStartTagStateHandler
	case bogusCommentState:
		return z.bogusCommentStateHandler
	case markupDeclarationOpenState:
		return z.markupDeclarationOpenStateHandler
	case commentStartState:
		return z.commentStartStateHandler
	case commentStartDashState:
		return z.commentStartDashStateHandler
	case commentState:
		return z.commentStateHandler
	case commentLessThanSignState:
		return z.commentLessThanSignStateHandler
	case commentLessThanSignBangState:
		return z.commentLessThanSignBangStateHandler
	case commentLessThanSignBangDashState:
		return z.commentLessThanSignBangDashStateHandler
	case commentLessThanSignBangDashDashState:
		return z.commentLessThanSignBangDashDashStateHandler
	case commentEndDashState:
		return z.commentEndDashStateHandler
	case commentEndState:
		return z.commentEndStateHandler
	case commentEndBangState:
		return z.commentEndBangStateHandler
	case doctypeState:
		return z.doctypeStateHandler
	case beforeDoctypeNameState:
		return z.beforeDoctypeNameStateHandler
	case doctypeNameState:
		return z.doctypeNameStateHandler
	case afterDoctypeNameState:
		return z.afterDoctypeNameStateHandler
	case afterDoctypePublicKeywordState:
		return z.afterDoctypePublicKeywordStateHandler
	case beforeDoctypePublicIdentifierState:
		return z.beforeDoctypePublicIdentifierStateHandler
	case doctypePublicIdentifierDoubleQuotedState:
		return z.doctypePublicIdentifierDoubleQuotedStateHandler
	case doctypePublicIdentifierSingleQuotedState:
		return z.doctypePublicIdentifierSingleQuotedStateHandler
	case afterDoctypePublicIdentifierState:
		return z.afterDoctypePublicIdentifierStateHandler
	case betweenDoctypePublicAndSystemIdentifiersState:
		return z.betweenDoctypePublicAndSystemIdentifiersStateHandler
	case afterDoctypeSystemKeywordState:
		return z.afterDoctypeSystemKeywordStateHandler
	case beforeDoctypeSystemIdentifierState:
		return z.beforeDoctypeSystemIdentifierStateHandler
	case doctypeSystemIdentifierDoubleQuotedState:
		return z.doctypeSystemIdentifierDoubleQuotedStateHandler
	case doctypeSystemIdentifierSingleQuotedState:
		return z.doctypeSystemIdentifierSingleQuotedStateHandler
	case afterDoctypeSystemIdentifierState:
		return z.afterDoctypeSystemIdentifierStateHandler
	case bogusDoctypeState:
		return z.bogusDoctypeStateHandler
	case characterReferenceState:
		return z.characterReferenceStateHandler
	case namedCharacterReferenceState:
		return z.namedCharacterReferenceStateHandler
	case ambiguousAmpersandState:
		return z.ambiguousAmpersandStateHandler
	case numericCharacterReferenceState:
		return z.numericCharacterReferenceStateHandler
	case hexadecimalCharacterReferenceStartState:
		return z.hexadecimalCharacterReferenceStartStateHandler
	case decimalCharacterReferenceStartState:
		return z.decimalCharacterReferenceStartStateHandler
	case hexadecimalCharacterReferenceState:
		return z.hexadecimalCharacterReferenceStateHandler
	case decimalCharacterReferenceState:
		return z.decimalCharacterReferenceStateHandler
	case numericCharacterReferenceEndState:
		return z.numericCharacterReferenceEndStateHandler
	}

	return nil
}

func (z *Tokenizer) dataStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '&':
		z.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.emit(z.builder.CharacterToken(r))
		return false, dataState
	default:
		z.emit(z.builder.CharacterToken(r))
		return false, dataState
	}
}

func (z *Tokenizer) tagOpenStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFBeforeTagName)
		z.emit(z.builder.CharacterToken('<'), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		z.builder.NewTag(startTag)
		return true, tagNameState
	case r == '?':
		z.report(ErrUnexpectedQuestionMarkInsteadOfTagName)
		z.builder.NewComment()
		return true, bogusCommentState
	default:
		z.report(ErrInvalidFirstCharacterOfTagName)
		z.emit(z.builder.CharacterToken('<'))
		return true, dataState
	}
}

func (z *Tokenizer) endTagOpenStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFBeforeTagName)
		z.emit(z.builder.CharacterToken('<'), z.builder.CharacterToken('/'), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		z.builder.NewTag(endTag)
		return true, tagNameState
	case r == '>':
		z.report(ErrMissingEndTagName)
		return false, dataState
	default:
		z.report(ErrInvalidFirstCharacterOfTagName)
		z.builder.NewComment()
		return true, bogusCommentState
	}
}

func (z *Tokenizer) tagNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, z.emitCurrentTag()
	case isASCIIUpper(r):
		z.builder.WriteName(r + 0x20)
		return false, tagNameState
	case r == '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteName('�')
		return false, tagNameState
	default:
		z.builder.WriteName(r)
		return false, tagNameState
	}
}

func (z *Tokenizer) beforeAttributeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/' || r == '>':
		return true, afterAttributeNameState
	case r == '=':
		z.report(ErrUnexpectedEqualsSignBeforeAttributeName)
		z.builder.StartAttribute()
		z.builder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		z.builder.StartAttribute()
		return true, attributeNameState
	}
}

func (z *Tokenizer) attributeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof || isWhitespace(r) || r == '/' || r == '>' {
		if z.builder.FinishAttributeName() {
			z.report(ErrDuplicateAttribute)
		}
		return true, afterAttributeNameState
	}
	switch {
	case r == '=':
		if z.builder.FinishAttributeName() {
			z.report(ErrDuplicateAttribute)
		}
		return false, beforeAttributeValueState
	case isASCIIUpper(r):
		z.builder.WriteAttributeName(r + 0x20)
		return false, attributeNameState
	case r == '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"' || r == '\'' || r == '<':
		z.report(ErrUnexpectedCharacterInAttributeName)
		z.builder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		z.builder.WriteAttributeName(r)
		return false, attributeNameState
	}
}

func (z *Tokenizer) afterAttributeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, z.emitCurrentTag()
	default:
		z.builder.StartAttribute()
		return true, attributeNameState
	}
}

func (z *Tokenizer) beforeAttributeValueStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		z.report(ErrMissingAttributeValue)
		return false, z.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (z *Tokenizer) attributeValueDoubleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '&':
		z.returnState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		z.builder.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (z *Tokenizer) attributeValueSingleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '&':
		z.returnState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		z.builder.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (z *Tokenizer) attributeValueUnquotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '&':
		z.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		return false, z.emitCurrentTag()
	case r == '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		z.report(ErrUnexpectedCharacterInUnquotedAttributeValue)
		z.builder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		z.builder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (z *Tokenizer) afterAttributeValueQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, z.emitCurrentTag()
	default:
		z.report(ErrMissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (z *Tokenizer) selfClosingStartTagStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInTag)
		z.emit(z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.builder.SetSelfClosing()
		return false, z.emitCurrentTag()
	default:
		z.report(ErrUnexpectedSolidusInTag)
		return true, beforeAttributeNameState
	}
}

func (z *Tokenizer) bogusCommentStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.builder.CommentToken())
		return false, dataState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteData('�')
		return false, bogusCommentState
	default:
		z.builder.WriteData(r)
		return false, bogusCommentState
	}
}

// markupDeclarationOpenStateHandler dispatches on the literal following
// "<!": "--" opens a comment and a case-insensitive "doctype" opens a
// doctype. CDATA sections only exist in foreign content, which is the tree
// constructor's to decide, so "[CDATA[" degrades to a bogus comment
// holding the literal. Any other declaration is swallowed as a bogus
// comment rather than lost.
func (z *Tokenizer) markupDeclarationOpenStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrIncorrectlyOpenedComment)
		z.builder.NewComment()
		return true, bogusCommentState
	}
	switch {
	case r == '-' && z.in.skipLiteral("-"):
		z.builder.NewComment()
		return false, commentStartState
	case (r == 'd' || r == 'D') && z.in.skipLiteral("octype"):
		return false, doctypeState
	case r == '[' && z.in.skipLiteral("CDATA["):
		z.report(ErrCDATAInHTMLContent)
		z.builder.NewComment()
		for _, c := range "[CDATA[" {
			z.builder.WriteData(c)
		}
		return false, bogusCommentState
	default:
		z.report(ErrIncorrectlyOpenedComment)
		z.builder.NewComment()
		return true, bogusCommentState
	}
}

func (z *Tokenizer) commentStartStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		z.report(ErrAbruptClosingOfEmptyComment)
		z.emit(z.builder.CommentToken())
		return false, dataState
	default:
		return true, commentState
	}
}

func (z *Tokenizer) commentStartDashStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInComment)
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		z.report(ErrAbruptClosingOfEmptyComment)
		z.emit(z.builder.CommentToken())
		return false, dataState
	default:
		z.builder.WriteData('-')
		return true, commentState
	}
}

func (z *Tokenizer) commentStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInComment)
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		z.builder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteData('�')
		return false, commentState
	default:
		z.builder.WriteData(r)
		return false, commentState
	}
}

func (z *Tokenizer) commentLessThanSignStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '!':
		z.builder.WriteData(r)
		return false, commentLessThanSignBangState
	case '<':
		z.builder.WriteData(r)
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (z *Tokenizer) commentLessThanSignBangStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentLessThanSignBangDashState
	default:
		return true, commentState
	}
}

func (z *Tokenizer) commentLessThanSignBangDashStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentEndDashState
	}
	switch r {
	case '-':
		return false, commentLessThanSignBangDashDashState
	default:
		return true, commentEndDashState
	}
}

func (z *Tokenizer) commentLessThanSignBangDashDashStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof || r == '>' {
		return true, commentEndState
	}
	z.report(ErrNestedComment)
	return true, commentEndState
}

func (z *Tokenizer) commentEndDashStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInComment)
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	default:
		z.builder.WriteData('-')
		return true, commentState
	}
}

func (z *Tokenizer) commentEndStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInComment)
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.builder.CommentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		z.builder.WriteData('-')
		return false, commentEndState
	default:
		z.builder.WriteData('-')
		z.builder.WriteData('-')
		return true, commentState
	}
}

func (z *Tokenizer) commentEndBangStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInComment)
		z.emit(z.builder.CommentToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.builder.WriteData('-')
		z.builder.WriteData('-')
		z.builder.WriteData('!')
		return false, commentEndDashState
	case '>':
		z.report(ErrIncorrectlyClosedComment)
		z.emit(z.builder.CommentToken())
		return false, dataState
	default:
		z.builder.WriteData('-')
		z.builder.WriteData('-')
		z.builder.WriteData('!')
		return true, commentState
	}
}

func (z *Tokenizer) doctypeStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.NewDoctype()
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	default:
		z.report(ErrMissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

func (z *Tokenizer) beforeDoctypeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.NewDoctype()
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case isASCIIUpper(r):
		z.builder.NewDoctype()
		z.builder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.NewDoctype()
		z.builder.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		z.report(ErrMissingDoctypeName)
		z.builder.NewDoctype()
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.builder.NewDoctype()
		z.builder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *Tokenizer) doctypeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, z.emitCurrentDoctype()
	case isASCIIUpper(r):
		z.builder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteName('�')
		return false, doctypeNameState
	default:
		z.builder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *Tokenizer) afterDoctypeNameStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, z.emitCurrentDoctype()
	case (r == 'p' || r == 'P') && z.in.skipLiteral("ublic"):
		return false, afterDoctypePublicKeywordState
	case (r == 's' || r == 'S') && z.in.skipLiteral("ystem"):
		return false, afterDoctypeSystemKeywordState
	default:
		z.report(ErrInvalidCharacterSequenceAfterDoctypeName)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) afterDoctypePublicKeywordStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.report(ErrMissingWhitespaceAfterDoctypePublicKeyword)
		z.builder.StartPublicID()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.report(ErrMissingWhitespaceAfterDoctypePublicKeyword)
		z.builder.StartPublicID()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.report(ErrMissingDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.report(ErrMissingQuoteBeforeDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) beforeDoctypePublicIdentifierStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.builder.StartPublicID()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.builder.StartPublicID()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.report(ErrMissingDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.report(ErrMissingQuoteBeforeDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) doctypePublicIdentifierDoubleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WritePublicID('�')
		return false, doctypePublicIdentifierDoubleQuotedState
	case '>':
		z.report(ErrAbruptDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.builder.WritePublicID(r)
		return false, doctypePublicIdentifierDoubleQuotedState
	}
}

func (z *Tokenizer) doctypePublicIdentifierSingleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WritePublicID('�')
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		z.report(ErrAbruptDoctypePublicIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.builder.WritePublicID(r)
		return false, doctypePublicIdentifierSingleQuotedState
	}
}

func (z *Tokenizer) afterDoctypePublicIdentifierStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return false, z.emitCurrentDoctype()
	case r == '"':
		z.report(ErrMissingWhitespaceBetweenDoctypePublicAndSystem)
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.report(ErrMissingWhitespaceBetweenDoctypePublicAndSystem)
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.report(ErrMissingQuoteBeforeDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) betweenDoctypePublicAndSystemIdentifiersStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return false, z.emitCurrentDoctype()
	case r == '"':
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.report(ErrMissingQuoteBeforeDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) afterDoctypeSystemKeywordStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.report(ErrMissingWhitespaceAfterDoctypeSystemKeyword)
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.report(ErrMissingWhitespaceAfterDoctypeSystemKeyword)
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.report(ErrMissingDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.report(ErrMissingQuoteBeforeDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) beforeDoctypeSystemIdentifierStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.builder.StartSystemID()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.report(ErrMissingDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.report(ErrMissingQuoteBeforeDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) doctypeSystemIdentifierDoubleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteSystemID('�')
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '>':
		z.report(ErrAbruptDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.builder.WriteSystemID(r)
		return false, doctypeSystemIdentifierDoubleQuotedState
	}
}

func (z *Tokenizer) doctypeSystemIdentifierSingleQuotedStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		z.builder.WriteSystemID('�')
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		z.report(ErrAbruptDoctypeSystemIdentifier)
		z.builder.SetForceQuirks()
		return false, z.emitCurrentDoctype()
	default:
		z.builder.WriteSystemID(r)
		return false, doctypeSystemIdentifierSingleQuotedState
	}
}

func (z *Tokenizer) afterDoctypeSystemIdentifierStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.report(ErrEOFInDoctype)
		z.builder.SetForceQuirks()
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		return false, z.emitCurrentDoctype()
	default:
		z.report(ErrUnexpectedCharacterAfterDoctypeSystemIdentifier)
		return true, bogusDoctypeState
	}
}

func (z *Tokenizer) bogusDoctypeStateHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.builder.DoctypeToken(), z.builder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		return false, z.emitCurrentDoctype()
	case '\u0000':
		z.report(ErrUnexpectedNullCharacter)
		return false, bogusDoctypeState
	default:
		return false, bogusDoctypeState
	}
}
