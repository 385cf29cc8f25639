package tokenizer

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrorCode names a recoverable parse error. The values are stable
// identifiers matching the WHATWG error names; none of these conditions
// alter tokenization, they are purely advisory.
type ErrorCode string

const (
	ErrAbruptClosingOfEmptyComment                      ErrorCode = "abrupt-closing-of-empty-comment"
	ErrAbruptDoctypePublicIdentifier                    ErrorCode = "abrupt-doctype-public-identifier"
	ErrAbruptDoctypeSystemIdentifier                    ErrorCode = "abrupt-doctype-system-identifier"
	ErrAbsenceOfDigitsInNumericCharacterReference       ErrorCode = "absence-of-digits-in-numeric-character-reference"
	ErrCDATAInHTMLContent                               ErrorCode = "cdata-in-html-content"
	ErrCharacterReferenceOutsideUnicodeRange            ErrorCode = "character-reference-outside-unicode-range"
	ErrControlCharacterReference                        ErrorCode = "control-character-reference"
	ErrDuplicateAttribute                               ErrorCode = "duplicate-attribute"
	ErrEndTagWithAttributes                             ErrorCode = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus                        ErrorCode = "end-tag-with-trailing-solidus"
	ErrEOFBeforeTagName                                 ErrorCode = "eof-before-tag-name"
	ErrEOFInComment                                     ErrorCode = "eof-in-comment"
	ErrEOFInDoctype                                     ErrorCode = "eof-in-doctype"
	ErrEOFInTag                                         ErrorCode = "eof-in-tag"
	ErrIncorrectlyClosedComment                         ErrorCode = "incorrectly-closed-comment"
	ErrIncorrectlyOpenedComment                         ErrorCode = "incorrectly-opened-comment"
	ErrInvalidCharacterSequenceAfterDoctypeName         ErrorCode = "invalid-character-sequence-after-doctype-name"
	ErrInvalidFirstCharacterOfTagName                   ErrorCode = "invalid-first-character-of-tag-name"
	ErrMissingAttributeValue                            ErrorCode = "missing-attribute-value"
	ErrMissingDoctypeName                               ErrorCode = "missing-doctype-name"
	ErrMissingDoctypePublicIdentifier                   ErrorCode = "missing-doctype-public-identifier"
	ErrMissingDoctypeSystemIdentifier                   ErrorCode = "missing-doctype-system-identifier"
	ErrMissingEndTagName                                ErrorCode = "missing-end-tag-name"
	ErrMissingQuoteBeforeDoctypePublicIdentifier        ErrorCode = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeDoctypeSystemIdentifier        ErrorCode = "missing-quote-before-doctype-system-identifier"
	ErrMissingSemicolonAfterCharacterReference          ErrorCode = "missing-semicolon-after-character-reference"
	ErrMissingWhitespaceAfterDoctypePublicKeyword       ErrorCode = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterDoctypeSystemKeyword       ErrorCode = "missing-whitespace-after-doctype-system-keyword"
	ErrMissingWhitespaceBeforeDoctypeName               ErrorCode = "missing-whitespace-before-doctype-name"
	ErrMissingWhitespaceBetweenAttributes               ErrorCode = "missing-whitespace-between-attributes"
	ErrMissingWhitespaceBetweenDoctypePublicAndSystem   ErrorCode = "missing-whitespace-between-doctype-public-and-system-identifiers"
	ErrNestedComment                                    ErrorCode = "nested-comment"
	ErrNoncharacterCharacterReference                   ErrorCode = "noncharacter-character-reference"
	ErrNullCharacterReference                           ErrorCode = "null-character-reference"
	ErrSurrogateCharacterReference                      ErrorCode = "surrogate-character-reference"
	ErrUnexpectedCharacterAfterDoctypeSystemIdentifier  ErrorCode = "unexpected-character-after-doctype-system-identifier"
	ErrUnexpectedCharacterInAttributeName               ErrorCode = "unexpected-character-in-attribute-name"
	ErrUnexpectedCharacterInUnquotedAttributeValue      ErrorCode = "unexpected-character-in-unquoted-attribute-value"
	ErrUnexpectedEqualsSignBeforeAttributeName          ErrorCode = "unexpected-equals-sign-before-attribute-name"
	ErrUnexpectedNullCharacter                          ErrorCode = "unexpected-null-character"
	ErrUnexpectedQuestionMarkInsteadOfTagName           ErrorCode = "unexpected-question-mark-instead-of-tag-name"
	ErrUnexpectedSolidusInTag                           ErrorCode = "unexpected-solidus-in-tag"
	ErrUnknownNamedCharacterReference                   ErrorCode = "unknown-named-character-reference"
)

// ParseError is a classified, recoverable deviation from well-formed
// input, located by absolute code point offset.
type ParseError struct {
	Code ErrorCode
	Pos  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Code, e.Pos)
}

// ErrorHandler receives each parse error as it is classified. Handlers run
// synchronously on the tokenizing goroutine and must not retain the
// tokenizer.
type ErrorHandler func(ParseError)

// LogReporter adapts a logrus logger into an ErrorHandler.
func LogReporter(log logrus.FieldLogger) ErrorHandler {
	return func(err ParseError) {
		log.WithFields(logrus.Fields{
			"code":   err.Code,
			"offset": err.Pos,
		}).Debug("parse error")
	}
}
