package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagTokenKeepsAttributeOrder(t *testing.T) {
	b := newTokenBuilder()
	b.NewTag(startTag)
	b.WriteName('a')
	for _, name := range []string{"z", "y", "z"} {
		b.StartAttribute()
		for _, r := range name {
			b.WriteAttributeName(r)
		}
	}

	tok := b.TagToken()
	assert.Equal(t, StartTagToken, tok.Type)
	assert.Equal(t, "a", tok.Name)
	assert.Equal(t, []Attribute{{Name: "z"}, {Name: "y"}, {Name: "z"}}, tok.Attributes)
}

func TestFinishAttributeNameDetectsDuplicates(t *testing.T) {
	b := newTokenBuilder()
	b.NewTag(startTag)

	b.StartAttribute()
	b.WriteAttributeName('x')
	assert.False(t, b.FinishAttributeName())

	b.StartAttribute()
	b.WriteAttributeName('y')
	assert.False(t, b.FinishAttributeName())

	b.StartAttribute()
	b.WriteAttributeName('x')
	assert.True(t, b.FinishAttributeName())
}

func TestAttributeWritesRequireStartAttribute(t *testing.T) {
	b := newTokenBuilder()
	b.NewTag(startTag)

	assert.Panics(t, func() { b.WriteAttributeName('x') })
	assert.Panics(t, func() { b.WriteAttributeValue('x') })
	assert.Panics(t, func() { b.FinishAttributeName() })
}

func TestNewTagResetsTagState(t *testing.T) {
	b := newTokenBuilder()
	b.NewTag(startTag)
	b.WriteName('a')
	b.StartAttribute()
	b.WriteAttributeName('x')
	b.SetSelfClosing()

	b.NewTag(endTag)
	b.WriteName('b')

	tok := b.TagToken()
	assert.Equal(t, EndTagToken, tok.Type)
	assert.Equal(t, "b", tok.Name)
	assert.Empty(t, tok.Attributes)
	assert.False(t, tok.SelfClosing)
}

func TestDoctypeTokenIdentifierPresence(t *testing.T) {
	b := newTokenBuilder()
	b.NewDoctype()
	b.WriteName('h')

	tok := b.DoctypeToken()
	assert.False(t, tok.HasPublicID)
	assert.False(t, tok.HasSystemID)

	b.StartPublicID()
	tok = b.DoctypeToken()
	assert.True(t, tok.HasPublicID)
	assert.Equal(t, "", tok.PublicID)

	b.WritePublicID('p')
	b.StartSystemID()
	b.WriteSystemID('s')
	tok = b.DoctypeToken()
	assert.Equal(t, "p", tok.PublicID)
	assert.Equal(t, "s", tok.SystemID)
	assert.True(t, tok.HasSystemID)
}

func TestCharRefAccumulatorClamps(t *testing.T) {
	b := newTokenBuilder()
	b.SetCharRef(0)
	for i := 0; i < 40; i++ {
		b.MulCharRef(16)
		b.AddCharRef(15)
	}
	assert.Equal(t, maxCodePoint+1, b.CharRef())
}

func TestTempBufferCharTokens(t *testing.T) {
	b := newTokenBuilder()
	b.ResetTempBuffer()
	b.WriteTempBuffer('a')
	b.WriteTempBuffer('b')

	require.Equal(t, []rune{'a', 'b'}, b.TempBuffer())
	tokens := b.TempBufferCharTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Data)
	assert.Equal(t, "b", tokens[1].Data)

	b.ResetTempBuffer()
	assert.Empty(t, b.TempBufferCharTokens())
}
