// Package srcbuf owns the in-memory, NUL-terminated bytes of one source
// or scratch file (spec §3 "Source buffer"). A Buffer is immutable after
// construction, except through the WriteAt/WriteBytesAt pair the scratch
// buffer uses; callers build one and hand it to the source manager,
// which owns it once registered.
//
// Grounded on the original MemoryBuffer.cpp/.h: file buffers are either
// memory-mapped (at least mmapThreshold bytes) or read onto the heap, both
// paths ending with the same invariant the original asserts in
// MemoryBuffer::init — the byte one past BufferEnd is 0.
package srcbuf

import (
	"os"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sys/unix"

	"github.com/standardbeagle/cptoyc/internal/cerrors"
)

// mmapThreshold mirrors the original's MapInFilePages size heuristic:
// only files at least this large are worth the mmap call overhead.
// Whether the file size is page-aligned is not checked.
const mmapThreshold = 4096 * 4

// Buffer is an immutable byte range [0, len(data)) with a trailing NUL
// sentinel, plus an identifying name (a real path or a synthetic tag
// like "<scratch space>" or "<built-in>").
type Buffer struct {
	name string
	data []byte // data[len(data)-1] == 0; content is data[:len(data)-1]

	fastHash  uint64
	hashValid bool
}

// Name returns the buffer's identifying name.
func (b *Buffer) Name() string { return b.name }

// Bytes returns the buffer's content, not including the trailing NUL
// sentinel. Callers must not retain slices across the source manager's
// destruction (spec §5).
func (b *Buffer) Bytes() []byte {
	return b.data[:len(b.data)-1]
}

// Len returns the content length, excluding the trailing NUL.
func (b *Buffer) Len() int {
	return len(b.data) - 1
}

// ByteAt returns the byte at offset i, where i == Len() yields the
// trailing NUL sentinel (valid per spec §3's "*end == 0" invariant, used
// by one-past-the-end lookahead in the lexer).
func (b *Buffer) ByteAt(i int) byte {
	return b.data[i]
}

// FastHash returns an xxhash of the buffer's content, computed lazily
// and cached. Used by content-identity checks that want a cheap
// equality test without re-reading the whole buffer.
func (b *Buffer) FastHash() uint64 {
	if !b.hashValid {
		b.fastHash = xxhash.Sum64(b.Bytes())
		b.hashValid = true
	}
	return b.fastHash
}

// NewFromBytes wraps caller-supplied bytes as a Buffer, copying them and
// appending the NUL sentinel. Used for synthetic/builtin buffers.
func NewFromBytes(name string, content []byte) *Buffer {
	data := make([]byte, len(content)+1)
	copy(data, content)
	return &Buffer{name: name, data: data}
}

// NewUninitialized allocates size+1 zeroed bytes under name, for callers
// (the scratch buffer) that fill the content in afterward.
func NewUninitialized(name string, size int) *Buffer {
	return &Buffer{name: name, data: make([]byte, size+1)}
}

// WriteAt overwrites the content byte at offset. The only sanctioned
// exception to Buffer's immutability: the scratch buffer registers a
// chunk's full size as a FileID up front, then fills it in as tokens
// are synthesized (spec §4.4). Invalidates any cached FastHash.
func (b *Buffer) WriteAt(offset int, value byte) {
	b.data[offset] = value
	b.hashValid = false
}

// WriteBytesAt copies content into the buffer starting at offset.
func (b *Buffer) WriteBytesAt(offset int, content []byte) {
	copy(b.data[offset:], content)
	b.hashValid = false
}

// NewFromFile loads path's contents into a Buffer. Large files are
// memory-mapped via golang.org/x/sys/unix; anything mmap can't or
// shouldn't handle falls back to a heap read via os.ReadFile, matching
// the original's MapInFilePages-with-fallback strategy.
func NewFromFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.NewSourceError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, cerrors.NewSourceError("stat", path, err)
	}
	size := info.Size()

	if size >= mmapThreshold {
		if buf, err := newFromMmap(path, f, size); err == nil {
			return buf, nil
		}
		// mmap failed (device file, unsupported fs, etc.) - fall through.
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.NewSourceError("read", path, err)
	}
	return NewFromBytes(path, content), nil
}

func newFromMmap(path string, f *os.File, size int64) (*Buffer, error) {
	region, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, cerrors.NewSourceError("mmap", path, err)
	}

	// The mapped region has no trailing NUL; append our own sentinel in a
	// fresh one-byte-longer slice rather than writing past the mapping,
	// then unmap immediately since nothing aliases the mapping afterward.
	data := make([]byte, len(region)+1)
	copy(data, region)
	_ = unix.Munmap(region)

	return &Buffer{name: path, data: data}, nil
}
