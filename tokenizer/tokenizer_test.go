package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains the tokenizer and returns every token including the final
// end-of-file token, plus all reported parse errors.
func collect(t *testing.T, input string, opts ...Option) ([]Token, []ParseError) {
	t.Helper()
	var errs []ParseError
	opts = append(opts, WithErrorHandler(func(e ParseError) {
		errs = append(errs, e)
	}))
	z := New(input, opts...)
	var tokens []Token
	for {
		tok, err := z.Next()
		require.NoError(t, err)
		tokens = append(tokens, *tok)
		if tok.Type == EndOfFileToken {
			return tokens, errs
		}
	}
}

// chars expands a string into one character token per code point.
func chars(s string) []Token {
	var tokens []Token
	for _, r := range s {
		tokens = append(tokens, Token{Type: CharacterToken, Data: string(r)})
	}
	return tokens
}

func eof() Token {
	return Token{Type: EndOfFileToken}
}

func codes(errs []ParseError) []ErrorCode {
	var out []ErrorCode
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []Token
		wantErrs []ErrorCode
	}{
		{
			name:  "plain text",
			input: "hi",
			want:  append(chars("hi"), eof()),
		},
		{
			name:  "start tag",
			input: "<div>",
			want:  []Token{{Type: StartTagToken, Name: "div"}, eof()},
		},
		{
			name:  "end tag",
			input: "</div>",
			want:  []Token{{Type: EndTagToken, Name: "div"}, eof()},
		},
		{
			name:  "self closing tag",
			input: "<br/>",
			want:  []Token{{Type: StartTagToken, Name: "br", SelfClosing: true}, eof()},
		},
		{
			name:  "tag and attribute names are lowercased",
			input: `<DIV CLASS="x">`,
			want: []Token{
				{Type: StartTagToken, Name: "div", Attributes: []Attribute{{Name: "class", Value: "x"}}},
				eof(),
			},
		},
		{
			name:  "double quoted attribute",
			input: `<a href="/x">`,
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{{Name: "href", Value: "/x"}}},
				eof(),
			},
		},
		{
			name:  "single quoted attribute",
			input: "<a href='/x'>",
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{{Name: "href", Value: "/x"}}},
				eof(),
			},
		},
		{
			name:  "unquoted attribute",
			input: "<a b = c >",
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{{Name: "b", Value: "c"}}},
				eof(),
			},
		},
		{
			name:  "valueless attribute",
			input: "<input disabled>",
			want: []Token{
				{Type: StartTagToken, Name: "input", Attributes: []Attribute{{Name: "disabled"}}},
				eof(),
			},
		},
		{
			name:  "multiple attributes keep source order",
			input: `<a c="3" a="1" b="2">`,
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{
					{Name: "c", Value: "3"},
					{Name: "a", Value: "1"},
					{Name: "b", Value: "2"},
				}},
				eof(),
			},
		},
		{
			name:  "duplicate attribute is kept and classified",
			input: `<a x="1" x="2">`,
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{
					{Name: "x", Value: "1"},
					{Name: "x", Value: "2"},
				}},
				eof(),
			},
			wantErrs: []ErrorCode{ErrDuplicateAttribute},
		},
		{
			name:  "missing attribute value",
			input: "<a b=>",
			want: []Token{
				{Type: StartTagToken, Name: "a", Attributes: []Attribute{{Name: "b"}}},
				eof(),
			},
			wantErrs: []ErrorCode{ErrMissingAttributeValue},
		},
		{
			name:  "end tag attributes are stripped",
			input: `</div class="x">`,
			want:  []Token{{Type: EndTagToken, Name: "div"}, eof()},
			wantErrs: []ErrorCode{
				ErrEndTagWithAttributes,
			},
		},
		{
			name:     "end tag trailing solidus is stripped",
			input:    "</div/>",
			want:     []Token{{Type: EndTagToken, Name: "div"}, eof()},
			wantErrs: []ErrorCode{ErrEndTagWithTrailingSolidus},
		},
		{
			name:  "comment",
			input: "<!--a-b-->",
			want:  []Token{{Type: CommentToken, Data: "a-b"}, eof()},
		},
		{
			name:  "empty comment",
			input: "<!---->",
			want:  []Token{{Type: CommentToken, Data: ""}, eof()},
		},
		{
			name:     "abrupt empty comment",
			input:    "<!-->",
			want:     []Token{{Type: CommentToken, Data: ""}, eof()},
			wantErrs: []ErrorCode{ErrAbruptClosingOfEmptyComment},
		},
		{
			name:     "incorrectly closed comment",
			input:    "<!--a--!>",
			want:     []Token{{Type: CommentToken, Data: "a"}, eof()},
			wantErrs: []ErrorCode{ErrIncorrectlyClosedComment},
		},
		{
			name:     "nested comment open",
			input:    "<!--a<!--b-->",
			want:     []Token{{Type: CommentToken, Data: "a<!--b"}, eof()},
			wantErrs: []ErrorCode{ErrNestedComment},
		},
		{
			name:     "comment cut off at eof",
			input:    "<!--a",
			want:     []Token{{Type: CommentToken, Data: "a"}, eof()},
			wantErrs: []ErrorCode{ErrEOFInComment},
		},
		{
			name:     "bogus comment from question mark",
			input:    "<?php ?>",
			want:     []Token{{Type: CommentToken, Data: "?php ?"}, eof()},
			wantErrs: []ErrorCode{ErrUnexpectedQuestionMarkInsteadOfTagName},
		},
		{
			name:     "cdata degrades to bogus comment",
			input:    "<![CDATA[x]]>",
			want:     []Token{{Type: CommentToken, Data: "[CDATA[x]]"}, eof()},
			wantErrs: []ErrorCode{ErrCDATAInHTMLContent},
		},
		{
			name:     "malformed markup declaration",
			input:    "<!ELEMENT br EMPTY>",
			want:     []Token{{Type: CommentToken, Data: "ELEMENT br EMPTY"}, eof()},
			wantErrs: []ErrorCode{ErrIncorrectlyOpenedComment},
		},
		{
			name:  "doctype",
			input: "<!DOCTYPE html>",
			want:  []Token{{Type: DoctypeToken, Name: "html"}, eof()},
		},
		{
			name:  "doctype keyword is case insensitive",
			input: "<!doctype HTML>",
			want:  []Token{{Type: DoctypeToken, Name: "html"}, eof()},
		},
		{
			name:  "doctype with public and system identifiers",
			input: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
			want: []Token{
				{
					Type:        DoctypeToken,
					Name:        "html",
					PublicID:    "-//W3C//DTD HTML 4.01//EN",
					SystemID:    "http://www.w3.org/TR/html4/strict.dtd",
					HasPublicID: true,
					HasSystemID: true,
				},
				eof(),
			},
		},
		{
			name:  "doctype with system identifier only",
			input: `<!DOCTYPE html SYSTEM "about:legacy-compat">`,
			want: []Token{
				{Type: DoctypeToken, Name: "html", SystemID: "about:legacy-compat", HasSystemID: true},
				eof(),
			},
		},
		{
			name:     "doctype missing name",
			input:    "<!DOCTYPE>",
			want:     []Token{{Type: DoctypeToken, ForceQuirks: true}, eof()},
			wantErrs: []ErrorCode{ErrMissingDoctypeName},
		},
		{
			name:     "doctype cut off at eof",
			input:    "<!DOCTYPE html",
			want:     []Token{{Type: DoctypeToken, Name: "html", ForceQuirks: true}, eof()},
			wantErrs: []ErrorCode{ErrEOFInDoctype},
		},
		{
			name:  "bogus doctype swallows junk",
			input: "<!DOCTYPE html BLAH blah>",
			want:  []Token{{Type: DoctypeToken, Name: "html", ForceQuirks: true}, eof()},
			wantErrs: []ErrorCode{
				ErrInvalidCharacterSequenceAfterDoctypeName,
			},
		},
		{
			name:     "lone less-than at eof",
			input:    "x<",
			want:     append(chars("x<"), eof()),
			wantErrs: []ErrorCode{ErrEOFBeforeTagName},
		},
		{
			name:     "less-than before non-tag character",
			input:    "a < b",
			want:     append(chars("a < b"), eof()),
			wantErrs: []ErrorCode{ErrInvalidFirstCharacterOfTagName},
		},
		{
			name:     "empty end tag",
			input:    "</>x",
			want:     append(chars("x"), eof()),
			wantErrs: []ErrorCode{ErrMissingEndTagName},
		},
		{
			name:     "tag cut off at eof",
			input:    "<div",
			want:     []Token{eof()},
			wantErrs: []ErrorCode{ErrEOFInTag},
		},
		{
			name:     "null character in text is replaced by nothing",
			input:    "a\x00b",
			want:     append(chars("a\x00b"), eof()),
			wantErrs: []ErrorCode{ErrUnexpectedNullCharacter},
		},
		{
			name:     "null character in tag name",
			input:    "<di\x00v>",
			want:     []Token{{Type: StartTagToken, Name: "di�v"}, eof()},
			wantErrs: []ErrorCode{ErrUnexpectedNullCharacter},
		},
		{
			name:  "text around tags",
			input: "a<b>c</b>d",
			want: []Token{
				{Type: CharacterToken, Data: "a"},
				{Type: StartTagToken, Name: "b"},
				{Type: CharacterToken, Data: "c"},
				{Type: EndTagToken, Name: "b"},
				{Type: CharacterToken, Data: "d"},
				eof(),
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Token{eof()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := collect(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantErrs, codes(errs))
		})
	}
}

func TestNextAfterEndOfFile(t *testing.T) {
	z := New("a")

	tok, err := z.Next()
	require.NoError(t, err)
	assert.Equal(t, CharacterToken, tok.Type)

	tok, err = z.Next()
	require.NoError(t, err)
	assert.Equal(t, EndOfFileToken, tok.Type)

	for i := 0; i < 3; i++ {
		again, err := z.Next()
		require.NoError(t, err)
		assert.Equal(t, EndOfFileToken, again.Type)
	}
}

func TestParseErrorOffsets(t *testing.T) {
	var errs []ParseError
	z := New("ab\x00", WithErrorHandler(func(e ParseError) {
		errs = append(errs, e)
	}))
	for {
		tok, err := z.Next()
		require.NoError(t, err)
		if tok.Type == EndOfFileToken {
			break
		}
	}

	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnexpectedNullCharacter, errs[0].Code)
	assert.Equal(t, 3, errs[0].Pos)
	assert.Equal(t, "unexpected-null-character at offset 3", errs[0].Error())
}

func TestWhitespaceSeparatesAttributes(t *testing.T) {
	got, errs := collect(t, "<a\tb\nc\fd e>")
	want := []Token{
		{Type: StartTagToken, Name: "a", Attributes: []Attribute{
			{Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
		}},
		eof(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, errs)
}
