package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlabAllocatorGetReusesCapacity(t *testing.T) {
	sa := NewSpellingSlabAllocator[byte]()

	buf := sa.Get(8)
	assert.Equal(t, 0, len(buf))
	assert.GreaterOrEqual(t, cap(buf), 8)

	buf = append(buf, []byte("spelling")...)
	sa.Put(buf)

	reused := sa.Get(8)
	assert.GreaterOrEqual(t, cap(reused), 8)

	stats := sa.GetStats()
	assert.Equal(t, int64(1), stats.Reuses)
}

func TestSlabAllocatorGetOversizeFallsThrough(t *testing.T) {
	sa := NewSlabAllocator[byte](SpellingTierConfigs)
	buf := sa.Get(4096)
	assert.GreaterOrEqual(t, cap(buf), 4096)

	stats := sa.GetStats()
	assert.Equal(t, int64(1), stats.PoolMisses)
}

func TestSlabAllocatorPutDiscardsUnmatchedCapacity(t *testing.T) {
	sa := NewSpellingSlabAllocator[byte]()
	odd := make([]byte, 0, 7)
	sa.Put(odd)

	stats := sa.GetStats()
	assert.Equal(t, int64(1), stats.PoolMisses)
}

func TestSlabAllocatorGrowSlice(t *testing.T) {
	sa := NewSpellingSlabAllocator[byte]()
	buf := sa.Get(4)
	buf = append(buf, 'a', 'b')

	grown := sa.GrowSlice(buf, 64)
	assert.GreaterOrEqual(t, cap(grown), 66)
	assert.Equal(t, []byte("ab"), grown)
}

func TestSlabAllocatorResetStats(t *testing.T) {
	sa := NewSpellingSlabAllocator[byte]()
	sa.Get(8)
	sa.ResetStats()
	stats := sa.GetStats()
	assert.Equal(t, AllocatorStats{}, stats)
}
