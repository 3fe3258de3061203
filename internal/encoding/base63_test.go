package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase63EncodeDecodeRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 62, 63, 1000, 1 << 32, ^uint64(0)}
	for _, v := range values {
		encoded := Base63Encode(v)
		decoded, err := Base63Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded, "round trip for %d", v)
	}
}

func TestBase63EncodeZero(t *testing.T) {
	assert.Equal(t, "A", Base63Encode(0))
	assert.Equal(t, "", Base63EncodeNoZero(0))
}

func TestBase63DecodeEmpty(t *testing.T) {
	_, err := Base63Decode("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestBase63DecodeInvalidChar(t *testing.T) {
	_, err := Base63Decode("abc-def")
	assert.ErrorIs(t, err, ErrInvalidChar)
}

func TestBase63DecodeOverflow(t *testing.T) {
	_, err := Base63Decode("zzzzzzzzzzzzzzzzzzzzzzzzzz")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestBase63IsValid(t *testing.T) {
	assert.True(t, Base63IsValid("Hello_World0"))
	assert.False(t, Base63IsValid(""))
	assert.False(t, Base63IsValid("has space"))
}

func TestPackUnpackUint32Pair(t *testing.T) {
	packed := PackUint32Pair(42, 7)
	lower, upper := UnpackUint32Pair(packed)
	assert.Equal(t, uint32(42), lower)
	assert.Equal(t, uint32(7), upper)
}
