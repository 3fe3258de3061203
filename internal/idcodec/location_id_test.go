package idcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cptoyc/internal/types"
)

func TestEncodeDecodeFileLoc(t *testing.T) {
	encoded := EncodeFileLoc(types.FileID(3), 128)
	fid, offset, err := DecodeFileLoc(encoded)
	require.NoError(t, err)
	assert.Equal(t, types.FileID(3), fid)
	assert.Equal(t, uint32(128), offset)
}

func TestDecodeFileLocEmpty(t *testing.T) {
	_, _, err := DecodeFileLoc("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestEncodeDecodeInstantiationLoc(t *testing.T) {
	encoded := EncodeInstantiationLoc(17)
	assert.Equal(t, byte('~'), encoded[0])

	index, err := DecodeInstantiationLoc(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint32(17), index)
}

func TestDecodeInstantiationLocRejectsUntagged(t *testing.T) {
	_, err := DecodeInstantiationLoc("NoTilde")
	assert.Error(t, err)
}

func TestPackUnpackFileLoc(t *testing.T) {
	packed := PackFileLoc(types.FileID(9), 55)
	fid, offset := UnpackFileLoc(packed)
	assert.Equal(t, types.FileID(9), fid)
	assert.Equal(t, uint32(55), offset)
}
