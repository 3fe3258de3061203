package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameKnownKinds(t *testing.T) {
	assert.Equal(t, "l_square", Name(LSquare))
	assert.Equal(t, "identifier", Name(Identifier))
	assert.Equal(t, "eof", Name(EOF))
}

func TestSimpleSpellingPunctuators(t *testing.T) {
	spelling, ok := SimpleSpelling(LessLessEqual)
	assert.True(t, ok)
	assert.Equal(t, "<<=", spelling)
}

func TestSimpleSpellingMissingForIdentifier(t *testing.T) {
	_, ok := SimpleSpelling(Identifier)
	assert.False(t, ok)
}

func TestLookupKeywordPlainC(t *testing.T) {
	kind, ok := LookupKeyword("return", LangGate{})
	assert.True(t, ok)
	assert.Equal(t, KwReturn, kind)
}

func TestLookupKeywordGatedByC99(t *testing.T) {
	_, ok := LookupKeyword("inline", LangGate{C99: false})
	assert.False(t, ok)

	kind, ok := LookupKeyword("inline", LangGate{C99: true})
	assert.True(t, ok)
	assert.Equal(t, KwInline, kind)
}

func TestLookupKeywordGatedByBool(t *testing.T) {
	_, ok := LookupKeyword("_Bool", LangGate{Bool: false})
	assert.False(t, ok)

	kind, ok := LookupKeyword("_Bool", LangGate{Bool: true})
	assert.True(t, ok)
	assert.Equal(t, KwBool, kind)
}

func TestLookupKeywordRejectsNonKeyword(t *testing.T) {
	_, ok := LookupKeyword("frobnicate", LangGate{C99: true, Bool: true})
	assert.False(t, ok)
}

func TestIsKeywordRange(t *testing.T) {
	assert.True(t, IsKeyword(KwWhile))
	assert.False(t, IsKeyword(Identifier))
}
