// Package headermap reads Apple-style header map files: a dense,
// read-only on-disk table mapping a header name to a real file path via
// a "prefix + suffix" concatenation, used by #include resolution as a
// stand-in for a directory of symlinks (spec §6). Header-search policy
// that would consume a HeaderMap is out of scope; this package only
// loads the format faithfully, per spec §12.
//
// Grounded on Basic/HeaderMap.h for the type shapes (HMapHeader,
// HMapBucket, the Create/LookupFile/getString surface) and on spec §6's
// byte-layout table for the parts original_source didn't retain
// (HeaderMap.cpp itself wasn't in the retrieved sources). The case-fold
// probe hash is the same one real header maps use: sum of
// 13*tolower(byte) over the key, which is how Clang's HeaderMap.cpp
// hashes lookup keys against this exact on-disk format.
package headermap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/standardbeagle/cptoyc/internal/filemgr"
)

// ErrNotAHeaderMap is returned when the first four bytes don't spell
// either magic, forward or byte-swapped.
var ErrNotAHeaderMap = errors.New("headermap: not a header map file")

// ErrTruncated is returned when the file is shorter than its own header
// or bucket table claims.
var ErrTruncated = errors.New("headermap: truncated file")

const (
	headerSize = 24 // magic(4) + version(2) + reserved(2) + stringsOffset(4) + numEntries(4) + numBuckets(4) + maxValueLength(4)
	bucketSize = 12 // key(4) + prefix(4) + suffix(4)
)

// magicForward is "pamh" in file order; a byte-swapped producer writes
// "hmap" instead, matched directly in Parse.
var magicForward = [4]byte{'p', 'a', 'm', 'h'}

// header mirrors HMapHeader.
type header struct {
	Magic          uint32
	Version        uint16
	Reserved       uint16
	StringsOffset  uint32
	NumEntries     uint32
	NumBuckets     uint32
	MaxValueLength uint32
}

// bucket mirrors HMapBucket. A zero Key marks an empty slot.
type bucket struct {
	Key    uint32
	Prefix uint32
	Suffix uint32
}

// Map is a parsed, read-only header map.
type Map struct {
	name    string
	data    []byte
	order   binary.ByteOrder
	hdr     header
	buckets []bucket
}

// Name returns the header map's own file name (spec's getFileName).
func (m *Map) Name() string { return m.name }

// NumEntries returns the number of live string-table entries.
func (m *Map) NumEntries() int { return int(m.hdr.NumEntries) }

// NumBuckets returns the number of hash buckets (always a power of two).
func (m *Map) NumBuckets() int { return int(m.hdr.NumBuckets) }

// Parse attempts to load data as a header map. Returns ErrNotAHeaderMap
// if the magic doesn't match in either byte order, and ErrTruncated if
// the declared bucket table or string pool runs past the end of data.
func Parse(name string, data []byte) (*Map, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}

	var rawMagic [4]byte
	copy(rawMagic[:], data[0:4])

	var order binary.ByteOrder
	switch rawMagic {
	case magicForward:
		order = binary.LittleEndian
	case [4]byte{'h', 'm', 'a', 'p'}:
		order = binary.BigEndian
	default:
		return nil, ErrNotAHeaderMap
	}

	hdr := header{
		Magic:          order.Uint32(data[0:4]),
		Version:        order.Uint16(data[4:6]),
		Reserved:       order.Uint16(data[6:8]),
		StringsOffset:  order.Uint32(data[8:12]),
		NumEntries:     order.Uint32(data[12:16]),
		NumBuckets:     order.Uint32(data[16:20]),
		MaxValueLength: order.Uint32(data[20:24]),
	}

	bucketsEnd := headerSize + int(hdr.NumBuckets)*bucketSize
	if bucketsEnd > len(data) || int(hdr.StringsOffset) > len(data) {
		return nil, ErrTruncated
	}

	buckets := make([]bucket, hdr.NumBuckets)
	for i := range buckets {
		off := headerSize + i*bucketSize
		buckets[i] = bucket{
			Key:    order.Uint32(data[off : off+4]),
			Prefix: order.Uint32(data[off+4 : off+8]),
			Suffix: order.Uint32(data[off+8 : off+12]),
		}
	}

	return &Map{name: name, data: data, order: order, hdr: hdr, buckets: buckets}, nil
}

// getString reads a NUL-terminated string starting at a byte offset
// into the string pool region.
func (m *Map) getString(offset uint32) (string, error) {
	start := int(offset)
	if start < 0 || start >= len(m.data) {
		return "", ErrTruncated
	}
	end := start
	for end < len(m.data) && m.data[end] != 0 {
		end++
	}
	if end >= len(m.data) {
		return "", ErrTruncated
	}
	return string(m.data[start:end]), nil
}

// hashKey is the case-folded probe hash: 13*tolower(byte) summed over
// the key, matching the hash real header maps are built and probed
// with.
func hashKey(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h += uint32(c) * 13
	}
	return h
}

// Lookup resolves name (case-insensitively, like the filesystem this
// format stands in for) to its recorded "prefix + suffix" path, probing
// buckets starting at hash mod num_buckets and stopping at the first
// empty (Key == 0) slot, matching spec §6's probe algorithm. Returns
// ("", false) on a miss.
func (m *Map) Lookup(name string) (string, bool) {
	if m.hdr.NumBuckets == 0 {
		return "", false
	}

	mask := m.hdr.NumBuckets - 1 // NumBuckets is a power of two
	idx := hashKey(name) & mask

	for i := uint32(0); i < m.hdr.NumBuckets; i++ {
		b := m.buckets[idx]
		if b.Key == 0 {
			return "", false // empty bucket terminates the probe
		}

		key, err := m.getString(m.hdr.StringsOffset + b.Key)
		if err == nil && equalFold(key, name) {
			prefix, err1 := m.getString(m.hdr.StringsOffset + b.Prefix)
			suffix, err2 := m.getString(m.hdr.StringsOffset + b.Suffix)
			if err1 == nil && err2 == nil {
				return prefix + suffix, true
			}
			return "", false
		}

		idx = (idx + 1) & mask
	}
	return "", false
}

// LookupFile resolves name against the map and, on a hit, resolves the
// resulting path through fm.
func (m *Map) LookupFile(name string, fm *filemgr.Manager) (*filemgr.FileEntry, bool) {
	path, ok := m.Lookup(name)
	if !ok {
		return nil, false
	}
	return fm.GetFile(path)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// String renders a compact one-line summary, used by debug output.
func (m *Map) String() string {
	return fmt.Sprintf("headermap(%s: %d entries, %d buckets)", m.name, m.hdr.NumEntries, m.hdr.NumBuckets)
}
