package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeIdent struct{ name string }

func (f fakeIdent) Name() string { return f.name }

func TestResetClearsToUnknownToken(t *testing.T) {
	var tok Token
	tok.SetKind(Identifier)
	tok.SetFlag(StartOfLine)
	tok.Reset()

	assert.True(t, tok.Is(Unknown))
	assert.Equal(t, Flags(0), tok.Flags())
}

func TestIdentifierPayloadRoundTrip(t *testing.T) {
	var tok Token
	tok.SetKind(Identifier)
	tok.SetIdentifierInfo(fakeIdent{name: "foo"})

	ii := tok.IdentifierInfo()
	assert.NotNil(t, ii)
	assert.Equal(t, "foo", ii.Name())
}

func TestLiteralPayloadPanicsOnWrongKind(t *testing.T) {
	var tok Token
	tok.SetKind(Identifier)
	assert.Panics(t, func() {
		tok.LiteralData()
	})
}

func TestLiteralPayloadRoundTrip(t *testing.T) {
	var tok Token
	tok.SetKind(StringLiteral)
	tok.SetLiteralData([]byte(`"hi"`))
	assert.Equal(t, `"hi"`, string(tok.LiteralData()))
}

func TestLengthPanicsOnAnnotation(t *testing.T) {
	var tok Token
	tok.SetKind(annotTypename)
	assert.Panics(t, func() {
		tok.Length()
	})
}

func TestFlagHelpers(t *testing.T) {
	var tok Token
	tok.SetFlag(StartOfLine)
	tok.SetFlag(LeadingSpace)
	assert.True(t, tok.IsAtStartOfLine())
	assert.True(t, tok.HasLeadingSpace())
	assert.False(t, tok.IsExpandDisabled())

	tok.ClearFlag(StartOfLine)
	assert.False(t, tok.IsAtStartOfLine())

	tok.SetFlagValue(NeedsCleaning, true)
	assert.True(t, tok.NeedsCleaning())
}

func TestIsLiteralDelegatesToKind(t *testing.T) {
	var tok Token
	tok.SetKind(NumericConstant)
	assert.True(t, tok.IsLiteral())
}
