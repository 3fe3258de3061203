package srcmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileLocationTagBit(t *testing.T) {
	loc := fileLocation(12345)
	assert.True(t, loc.IsFileLocation())
	assert.False(t, loc.IsInstantiationLocation())
	assert.Equal(t, uint32(12345), loc.globalOffset())
}

func TestInstantiationLocationTagBit(t *testing.T) {
	loc := instantiationLocation(99)
	assert.True(t, loc.IsInstantiationLocation())
	assert.False(t, loc.IsFileLocation())
	assert.Equal(t, uint32(99), loc.instantiationIndex())
}

func TestWithOffsetAddsToGlobalOffset(t *testing.T) {
	loc := fileLocation(10)
	moved := loc.withOffset(5)
	assert.Equal(t, uint32(15), moved.globalOffset())
}
