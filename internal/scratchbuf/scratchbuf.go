// Package scratchbuf gives synthesized tokens (from stringizing `#`,
// token-pasting `##`, __LINE__, __COUNTER__, etc.) real SourceLocations
// by writing their text into a chunk the source manager owns (spec
// §4.4).
//
// Grounded on ScratchBuffer.cpp/.h: the 4060-byte chunk size, the
// leading-'\n'/trailing-'\0' framing around each token's text, and the
// "allocate a fresh chunk and re-register when the current one can't
// fit the request" fallback are all carried over as-is.
package scratchbuf

import (
	"github.com/standardbeagle/cptoyc/internal/srcbuf"
	"github.com/standardbeagle/cptoyc/internal/srcmgr"
	"github.com/standardbeagle/cptoyc/internal/types"
)

// chunkSize mirrors the original's ScratchBufSize.
const chunkSize = 4060

// Buffer synthesizes SourceLocations for arbitrary byte strings by
// writing them into chunks registered with a srcmgr.Manager.
type Buffer struct {
	mgr *srcmgr.Manager

	curFileID types.FileID
	curBuf    *srcbuf.Buffer
	startLoc  srcmgr.SourceLocation
	bytesUsed int
}

// New creates a scratch buffer that registers its chunks with mgr. The
// first chunk is allocated lazily, on the first call to GetToken.
func New(mgr *srcmgr.Manager) *Buffer {
	// BytesUsed pre-set to chunkSize forces the first GetToken call to
	// see "no room left" and allocate the first real chunk, matching
	// the original's lazy-init trick.
	return &Buffer{mgr: mgr, bytesUsed: chunkSize}
}

// GetToken writes content into the current chunk (allocating a fresh
// one if there isn't room), framed as '\n' + content + '\0', and
// returns the location of content's first byte.
func (s *Buffer) GetToken(content []byte) srcmgr.SourceLocation {
	length := len(content)
	if s.bytesUsed+length+2 > chunkSize {
		s.allocChunk(length)
	}

	offset := s.bytesUsed
	s.curBuf.WriteAt(offset, '\n')
	s.curBuf.WriteBytesAt(offset+1, content)
	s.curBuf.WriteAt(offset+1+length, 0)

	// The trailing '\0' at offset+1+length is reused as the NEXT token's
	// leading '\n', so only the '\n' + content span counts against
	// bytesUsed; that next call overwrites the '\0'.
	s.bytesUsed += length + 1

	tokenStart := s.mgr.GetFileLocWithOffset(s.startLoc, uint32(offset+1))
	return tokenStart
}

// allocChunk starts a new chunk sized to fit at least requestLen bytes
// (clamped up to chunkSize for small requests), registers it as a
// fresh FileID, and resets the cursor.
func (s *Buffer) allocChunk(requestLen int) {
	size := requestLen + 2
	if size < chunkSize {
		size = chunkSize
	}

	buf := srcbuf.NewUninitialized("<scratch space>", size)
	fid := s.mgr.CreateFileIDForMemoryBuffer(buf, srcmgr.InvalidLocation)

	s.curFileID = fid
	s.curBuf = buf
	s.startLoc = s.mgr.GetLocationForStartOfFile(fid)
	s.bytesUsed = 1
}
