package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericLiteralIntegerSuffixes(t *testing.T) {
	cases := []struct {
		spelling string
		kind     NumericKind
	}{
		{"42", IntConstant},
		{"42u", UIntConstant},
		{"42L", LongConstant},
		{"42UL", ULongConstant},
		{"42LL", LongLongConstant},
		{"42ULL", ULongLongConstant},
	}
	for _, c := range cases {
		val, err := ParseNumericLiteral(c.spelling)
		require.NoError(t, err, c.spelling)
		assert.Equal(t, c.kind, val.Kind, c.spelling)
		assert.Equal(t, uint64(42), val.IntVal, c.spelling)
	}
}

func TestParseNumericLiteralBases(t *testing.T) {
	val, err := ParseNumericLiteral("0x1F")
	require.NoError(t, err)
	assert.Equal(t, uint64(31), val.IntVal)

	val, err = ParseNumericLiteral("017")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), val.IntVal)
}

func TestParseNumericLiteralFloatSuffixes(t *testing.T) {
	val, err := ParseNumericLiteral("1.5f")
	require.NoError(t, err)
	assert.Equal(t, FloatConstant, val.Kind)
	assert.True(t, floatsEqual(1.5, val.FltVal, 1e-6))

	val, err = ParseNumericLiteral("1.5L")
	require.NoError(t, err)
	assert.Equal(t, LDoubleConstant, val.Kind)

	val, err = ParseNumericLiteral("1.5")
	require.NoError(t, err)
	assert.Equal(t, DoubleConstant, val.Kind)
}

func TestDecodeEscapeSequences(t *testing.T) {
	cases := map[byte]byte{
		'n': '\n', 't': '\t', 'r': '\r', '0': 0, '\\': '\\', '\'': '\'', '"': '"',
	}
	for letter, want := range cases {
		val, n, ok := DecodeEscape([]byte{'\\', letter})
		require.True(t, ok)
		assert.Equal(t, 2, n)
		assert.Equal(t, want, val)
	}
}

func TestDecodeEscapeUnknownMapsToLiteralByte(t *testing.T) {
	val, n, ok := DecodeEscape([]byte{'\\', 'q'})
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, byte('q'), val)
}

func TestDecodeCharLiteralValue(t *testing.T) {
	val, err := DecodeCharLiteralValue([]byte("'a'"))
	require.NoError(t, err)
	assert.Equal(t, int64('a'), val)

	val, err = DecodeCharLiteralValue([]byte(`'\n'`))
	require.NoError(t, err)
	assert.Equal(t, int64('\n'), val)
}
