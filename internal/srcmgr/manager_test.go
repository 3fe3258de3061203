package srcmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cptoyc/internal/srcbuf"
)

func TestCreateMainFileIDTwicePanics(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("int x;\n"))
	m.CreateMainFileID(nil, buf)

	assert.Panics(t, func() {
		m.CreateMainFileID(nil, buf)
	})
}

func TestGetLocationForStartOfFileIsOffsetZero(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("abc"))
	fid := m.CreateMainFileID(nil, buf)

	loc := m.GetLocationForStartOfFile(fid)
	require.True(t, loc.IsFileLocation())
	assert.Equal(t, byte('a'), m.GetCharacterData(loc))
}

func TestGetFileLocWithOffsetWalksBuffer(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("abcdef"))
	fid := m.CreateMainFileID(nil, buf)

	start := m.GetLocationForStartOfFile(fid)
	loc := m.GetFileLocWithOffset(start, 3)
	assert.Equal(t, byte('d'), m.GetCharacterData(loc))
}

func TestSecondFileGetsDistinctOffsetSpace(t *testing.T) {
	m := New()
	bufA := srcbuf.NewFromBytes("a.c", []byte("aaaa"))
	bufB := srcbuf.NewFromBytes("b.c", []byte("bbbb"))

	fidA := m.CreateMainFileID(nil, bufA)
	fidB := m.CreateFileIDForMemoryBuffer(bufB, m.GetLocationForStartOfFile(fidA))

	locA := m.GetLocationForStartOfFile(fidA)
	locB := m.GetLocationForStartOfFile(fidB)

	assert.Equal(t, byte('a'), m.GetCharacterData(locA))
	assert.Equal(t, byte('b'), m.GetCharacterData(locB))
	assert.NotEqual(t, locA, locB)
}

func TestLineAndColumnNumbers(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("int x;\nint y;\nint z;\n"))
	fid := m.CreateMainFileID(nil, buf)
	start := m.GetLocationForStartOfFile(fid)

	locLine2 := m.GetFileLocWithOffset(start, 7) // 'i' of "int y;"
	assert.Equal(t, 2, m.GetLineNumber(locLine2))
	assert.Equal(t, 1, m.GetColumnNumber(locLine2))

	locMidLine2 := m.GetFileLocWithOffset(start, 11) // 'y'
	assert.Equal(t, 2, m.GetLineNumber(locMidLine2))
	assert.Equal(t, 5, m.GetColumnNumber(locMidLine2))
}

func TestNewlineByteBelongsToLineItEnds(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("abc\ndef\n"))
	fid := m.CreateMainFileID(nil, buf)
	start := m.GetLocationForStartOfFile(fid)

	newlineLoc := m.GetFileLocWithOffset(start, 3) // the '\n' itself
	assert.Equal(t, 1, m.GetLineNumber(newlineLoc))
	assert.Equal(t, 4, m.GetColumnNumber(newlineLoc))

	nextLineStart := m.GetFileLocWithOffset(start, 4) // 'd'
	assert.Equal(t, 2, m.GetLineNumber(nextLineStart))
	assert.Equal(t, 1, m.GetColumnNumber(nextLineStart))
}

func TestInstantiationLocRoundTrip(t *testing.T) {
	m := New()
	spellingBuf := srcbuf.NewFromBytes("<scratch space>", []byte("42"))
	useBuf := srcbuf.NewFromBytes("main.c", []byte("FOO"))

	fidSpelling := m.CreateMainFileID(nil, spellingBuf)
	spellingLoc := m.GetLocationForStartOfFile(fidSpelling)

	fidUse := m.CreateFileIDForMemoryBuffer(useBuf, InvalidLocation)
	useLoc := m.GetLocationForStartOfFile(fidUse)

	instLoc := m.CreateInstantiationLoc(spellingLoc, useLoc, useLoc, 2)
	require.True(t, instLoc.IsInstantiationLocation())

	assert.Equal(t, spellingLoc, m.GetSpellingLoc(instLoc))
	assert.Equal(t, useLoc, m.GetInstantiationLoc(instLoc))
}

func TestGetPresumedLocReportsFilenameAndIncludeLoc(t *testing.T) {
	m := New()
	mainBuf := srcbuf.NewFromBytes("main.c", []byte("#include \"h.h\"\n"))
	mainFid := m.CreateMainFileID(nil, mainBuf)
	includeLoc := m.GetFileLocWithOffset(m.GetLocationForStartOfFile(mainFid), 10)

	headerBuf := srcbuf.NewFromBytes("h.h", []byte("int x;\n"))
	headerFid := m.CreateFileIDForMemoryBuffer(headerBuf, includeLoc)
	headerStart := m.GetLocationForStartOfFile(headerFid)

	presumed := m.GetPresumedLoc(headerStart)
	assert.Equal(t, "h.h", presumed.Filename)
	assert.Equal(t, 1, presumed.Line)
	assert.Equal(t, 1, presumed.Column)
	assert.Equal(t, includeLoc, presumed.IncludeLoc)
}

func TestLocationStringDistinguishesInstantiation(t *testing.T) {
	m := New()
	buf := srcbuf.NewFromBytes("main.c", []byte("abc"))
	fid := m.CreateMainFileID(nil, buf)
	fileLoc := m.GetLocationForStartOfFile(fid)

	instLoc := m.CreateInstantiationLoc(fileLoc, fileLoc, fileLoc, 1)

	assert.NotContains(t, m.LocationString(fileLoc), "~")
	assert.Contains(t, m.LocationString(instLoc), "~")
}

func TestInvalidLocationIsZeroValue(t *testing.T) {
	assert.False(t, InvalidLocation.IsValid())
	var loc SourceLocation
	assert.False(t, loc.IsValid())
}
