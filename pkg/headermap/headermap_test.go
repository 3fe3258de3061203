package headermap

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMap assembles a minimal valid header map file in memory with one
// entry: name -> prefix+suffix. numBuckets must be a power of two and
// large enough that the entry's probe never wraps past an empty slot.
func buildMap(t *testing.T, name, prefix, suffix string, numBuckets uint32) []byte {
	t.Helper()

	// String-pool offset 0 holds a lone NUL: a bucket Key of 0 marks an
	// empty slot, so no real key may be stored there.
	strings := []byte{0}
	intern := func(s string) uint32 {
		off := uint32(len(strings))
		strings = append(strings, s...)
		strings = append(strings, 0)
		return off
	}

	keyOff := intern(name)
	prefixOff := intern(prefix)
	suffixOff := intern(suffix)

	stringsOffset := headerSize + int(numBuckets)*bucketSize
	buckets := make([]bucket, numBuckets)
	idx := hashKey(name) & (numBuckets - 1)
	buckets[idx] = bucket{Key: keyOff, Prefix: prefixOff, Suffix: suffixOff}

	buf := make([]byte, stringsOffset+len(strings))
	copy(buf[0:4], magicForward[:])
	binary.LittleEndian.PutUint16(buf[4:6], 1)
	binary.LittleEndian.PutUint16(buf[6:8], 0)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(stringsOffset))
	binary.LittleEndian.PutUint32(buf[12:16], 1)
	binary.LittleEndian.PutUint32(buf[16:20], numBuckets)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(len(prefix)+len(suffix)))

	for i, b := range buckets {
		off := headerSize + i*bucketSize
		binary.LittleEndian.PutUint32(buf[off:off+4], b.Key)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], b.Prefix)
		binary.LittleEndian.PutUint32(buf[off+8:off+12], b.Suffix)
	}

	copy(buf[stringsOffset:], strings)
	return buf
}

func TestParseAndLookupRoundTrip(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)

	m, err := Parse("test.hmap", data)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumEntries())
	assert.Equal(t, 16, m.NumBuckets())

	path, ok := m.Lookup("foo.h")
	require.True(t, ok)
	assert.Equal(t, "/usr/include/foo.h", path)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	data := buildMap(t, "Foo.h", "/usr/include/", "Foo.h", 16)
	m, err := Parse("test.hmap", data)
	require.NoError(t, err)

	path, ok := m.Lookup("FOO.H")
	require.True(t, ok)
	assert.Equal(t, "/usr/include/Foo.h", path)
}

func TestLookupMissReturnsFalse(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)
	m, err := Parse("test.hmap", data)
	require.NoError(t, err)

	_, ok := m.Lookup("bar.h")
	assert.False(t, ok)
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)
	data[0] = 'x'

	_, err := Parse("test.hmap", data)
	assert.ErrorIs(t, err, ErrNotAHeaderMap)
}

func TestParseRejectsTruncatedFile(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)

	_, err := Parse("test.hmap", data[:headerSize+4])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseAcceptsByteSwappedMagic(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)
	data[0], data[1], data[2], data[3] = 'h', 'm', 'a', 'p'
	// Every multi-byte field of a byte-swapped file is read big-endian,
	// so rewrite the header fields buildMap wrote little-endian.
	le, be := binary.LittleEndian, binary.BigEndian
	be.PutUint16(data[4:6], le.Uint16(data[4:6]))
	be.PutUint16(data[6:8], le.Uint16(data[6:8]))
	for off := 8; off < headerSize; off += 4 {
		be.PutUint32(data[off:off+4], le.Uint32(data[off:off+4]))
	}

	m, err := Parse("test.hmap", data)
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, 16, m.NumBuckets())
}

func TestStringTooShort(t *testing.T) {
	data := buildMap(t, "foo.h", "/usr/include/", "foo.h", 16)
	// Corrupt the strings-offset field to point at the very end of the
	// file, so every getString read runs off the end.
	binary.LittleEndian.PutUint32(data[8:12], uint32(len(data)))

	_, err := Parse("test.hmap", data)
	require.NoError(t, err) // header parses fine; only Lookup touches strings

	m, _ := Parse("test.hmap", data)
	_, ok := m.Lookup("foo.h")
	assert.False(t, ok)
}
