package srcmgr

import (
	"errors"
	"sort"

	"github.com/standardbeagle/cptoyc/internal/cerrors"
	"github.com/standardbeagle/cptoyc/internal/filemgr"
	"github.com/standardbeagle/cptoyc/internal/srcbuf"
	"github.com/standardbeagle/cptoyc/internal/types"
)

var errFileNotFound = errors.New("file not found")

// fileInfo is everything the manager remembers about one registered
// FileID: its buffer, the file-manager entry it came from (nil for
// synthetic buffers), the location of the #include that pulled it in
// (invalid for the main file), and its base offset in the global
// address space.
type fileInfo struct {
	buffer     *srcbuf.Buffer
	entry      *filemgr.FileEntry
	includeLoc SourceLocation
	baseOffset uint32

	lineStarts []uint32 // lazily computed, byte offset of each line's first char
}

// instantiationInfo records one macro-instantiation location: where the
// expansion text actually lives (SpellingLoc) plus the use-site range it
// stands for (InstantiationStart/End) and how many characters of source
// text it covers.
type instantiationInfo struct {
	spellingLoc        SourceLocation
	instantiationStart SourceLocation
	instantiationEnd   SourceLocation
	length             uint32
}

// PresumedLoc is the decoded, human-facing form of a location: the
// filename, 1-based line and column, and the location of the #include
// that brought the containing file in (invalid for the main file).
type PresumedLoc struct {
	Filename   string
	Line       int
	Column     int
	IncludeLoc SourceLocation
}

// Manager owns every buffer for one translation unit and is the sole
// mint for SourceLocation values; a location from one Manager must
// never be decoded by another.
type Manager struct {
	files       []fileInfo // index i corresponds to types.FileID(i+1)
	instantiations []instantiationInfo

	mainFileID types.FileID
	nextOffset uint32 // 0 is reserved for the invalid location
}

// New creates an empty Manager. Offset 0 is reserved so the zero
// SourceLocation is always invalid.
func New() *Manager {
	return &Manager{nextOffset: 1}
}

// CreateFileID registers buf, entry's already-loaded content, mints a fresh
// FileID, and records includeLoc as the location of the #include that
// pulled it in (pass InvalidLocation for the main file).
func (m *Manager) CreateFileID(entry *filemgr.FileEntry, buf *srcbuf.Buffer, includeLoc SourceLocation) types.FileID {
	return m.register(buf, entry, includeLoc)
}

// CreateFileIDForMemoryBuffer registers an already-owned synthetic
// buffer (scratch space, <built-in>, stdin) with no backing FileEntry.
func (m *Manager) CreateFileIDForMemoryBuffer(buf *srcbuf.Buffer, includeLoc SourceLocation) types.FileID {
	return m.register(buf, nil, includeLoc)
}

func (m *Manager) register(buf *srcbuf.Buffer, entry *filemgr.FileEntry, includeLoc SourceLocation) types.FileID {
	base := m.nextOffset
	// Reserve Len()+1 offsets: one per content byte plus one for the
	// trailing NUL, so a one-past-the-end location never aliases the
	// next file's base offset.
	m.nextOffset += uint32(buf.Len()) + 1

	m.files = append(m.files, fileInfo{
		buffer:     buf,
		entry:      entry,
		includeLoc: includeLoc,
		baseOffset: base,
	})
	return types.FileID(len(m.files))
}

// GetMainFileID returns the translation unit's main file. Returns
// InvalidFileID if CreateMainFileID hasn't run yet.
func (m *Manager) GetMainFileID() types.FileID {
	return m.mainFileID
}

// CreateMainFileID registers entry/buf as the main file. Calling this
// twice is a precondition violation (spec §4.2): re-entering the main
// file is never valid.
func (m *Manager) CreateMainFileID(entry *filemgr.FileEntry, buf *srcbuf.Buffer) types.FileID {
	if m.mainFileID.IsValid() {
		panic("srcmgr: CreateMainFileID called more than once")
	}
	fid := m.register(buf, entry, InvalidLocation)
	m.mainFileID = fid
	return fid
}

func (m *Manager) info(fid types.FileID) *fileInfo {
	if !fid.IsValid() || int(fid) > len(m.files) {
		panic("srcmgr: invalid FileID")
	}
	return &m.files[fid-1]
}

// GetLocationForStartOfFile returns the file location of byte 0 of fid's
// buffer.
func (m *Manager) GetLocationForStartOfFile(fid types.FileID) SourceLocation {
	return fileLocation(m.info(fid).baseOffset)
}

// GetFileLocWithOffset returns a file location n bytes past loc, within
// the same logical file. Panics if loc isn't a file location (spec
// §4.2: "valid only for file locations").
func (m *Manager) GetFileLocWithOffset(loc SourceLocation, n uint32) SourceLocation {
	if !loc.IsFileLocation() {
		panic("srcmgr: GetFileLocWithOffset on a non-file location")
	}
	return loc.withOffset(n)
}

// CreateInstantiationLoc records a new macro-instantiation range and
// returns a fresh instantiation location referring to it.
func (m *Manager) CreateInstantiationLoc(spelling, instStart, instEnd SourceLocation, length uint32) SourceLocation {
	idx := uint32(len(m.instantiations))
	m.instantiations = append(m.instantiations, instantiationInfo{
		spellingLoc:        spelling,
		instantiationStart: instStart,
		instantiationEnd:   instEnd,
		length:             length,
	})
	return instantiationLocation(idx)
}

// GetInstantiationLoc decodes loc to the use-site location it stands
// for: itself if loc is already a file location, otherwise the
// recorded instantiation start (following the chain if an
// instantiation's start is itself an instantiation location).
func (m *Manager) GetInstantiationLoc(loc SourceLocation) SourceLocation {
	for loc.IsInstantiationLocation() {
		loc = m.instantiations[loc.instantiationIndex()].instantiationStart
	}
	return loc
}

// GetSpellingLoc decodes loc to the location where its text is actually
// spelled: itself if loc is already a file location, otherwise the
// recorded spelling location (following the chain as for
// GetInstantiationLoc).
func (m *Manager) GetSpellingLoc(loc SourceLocation) SourceLocation {
	for loc.IsInstantiationLocation() {
		loc = m.instantiations[loc.instantiationIndex()].spellingLoc
	}
	return loc
}

// GetPresumedLoc fully decodes loc to a human-facing (filename, line,
// column, includeLoc) tuple, resolving through instantiation first.
func (m *Manager) GetPresumedLoc(loc SourceLocation) PresumedLoc {
	resolved := m.GetInstantiationLoc(loc)
	fid, offset := m.decompose(resolved)
	info := m.info(fid)

	name := "<memory buffer>"
	if info.entry != nil {
		name = info.entry.Name
	} else {
		name = info.buffer.Name()
	}

	return PresumedLoc{
		Filename:   name,
		Line:       m.lineNumber(fid, offset),
		Column:     m.columnNumber(fid, offset),
		IncludeLoc: info.includeLoc,
	}
}

// Decompose exposes decompose for callers that need the (FileID,
// local-offset) pair, e.g. to print a compact id via internal/idcodec.
func (m *Manager) Decompose(loc SourceLocation) (types.FileID, uint32) {
	return m.decompose(m.GetSpellingLoc(loc))
}

// decompose finds the FileID owning loc's global offset and the
// within-file byte offset, via binary search over base offsets (the
// files slice is populated in strictly increasing base-offset order).
func (m *Manager) decompose(loc SourceLocation) (types.FileID, uint32) {
	if !loc.IsFileLocation() {
		panic("srcmgr: decompose called on a non-file location")
	}
	target := loc.globalOffset()

	idx := sort.Search(len(m.files), func(i int) bool {
		return m.files[i].baseOffset > target
	}) - 1
	if idx < 0 {
		panic("srcmgr: location does not belong to any registered file")
	}
	return types.FileID(idx + 1), target - m.files[idx].baseOffset
}

// GetCharacterData returns the byte at loc (after resolving through
// spelling, since only file locations address real bytes).
func (m *Manager) GetCharacterData(loc SourceLocation) byte {
	spelling := m.GetSpellingLoc(loc)
	fid, offset := m.decompose(spelling)
	return m.info(fid).buffer.ByteAt(int(offset))
}

// GetBuffer returns fid's underlying buffer.
func (m *Manager) GetBuffer(fid types.FileID) *srcbuf.Buffer {
	return m.info(fid).buffer
}

// GetFileEntryForID returns fid's backing FileEntry, or nil for a
// synthetic (memory-buffer-only) FileID.
func (m *Manager) GetFileEntryForID(fid types.FileID) *filemgr.FileEntry {
	return m.info(fid).entry
}

// GetLineNumber returns loc's 1-based line number within its owning
// file, resolving through spelling first.
func (m *Manager) GetLineNumber(loc SourceLocation) int {
	fid, offset := m.decompose(m.GetSpellingLoc(loc))
	return m.lineNumber(fid, offset)
}

// GetColumnNumber returns loc's 1-based column number within its line.
func (m *Manager) GetColumnNumber(loc SourceLocation) int {
	fid, offset := m.decompose(m.GetSpellingLoc(loc))
	return m.columnNumber(fid, offset)
}

func (m *Manager) lineNumber(fid types.FileID, offset uint32) int {
	info := m.info(fid)
	m.ensureLineStarts(info)
	return lineForOffset(info.lineStarts, offset) + 1
}

func (m *Manager) columnNumber(fid types.FileID, offset uint32) int {
	info := m.info(fid)
	m.ensureLineStarts(info)
	line := lineForOffset(info.lineStarts, offset)
	return int(offset-info.lineStarts[line]) + 1
}

// ensureLineStarts lazily builds the newline index for info's buffer:
// byte offset 0 starts line 1, and each '\n' starts the following line.
// A location sitting ON a newline byte still resolves to the line that
// ends there, since its offset falls below the next entry's start.
func (m *Manager) ensureLineStarts(info *fileInfo) {
	if info.lineStarts != nil {
		return
	}
	starts := []uint32{0}
	data := info.buffer.Bytes()
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			starts = append(starts, uint32(i+1))
		}
	}
	info.lineStarts = starts
}

func lineForOffset(lineStarts []uint32, offset uint32) int {
	idx := sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}

// LoadFile is a convenience wrapper tying filemgr and srcbuf together:
// stat+read path through fm, wrap the content, and register it.
func (m *Manager) LoadFile(fm *filemgr.Manager, path string, includeLoc SourceLocation) (types.FileID, error) {
	entry, ok := fm.GetFile(path)
	if !ok {
		return types.InvalidFileID, cerrors.NewSourceError("stat", path, errFileNotFound)
	}
	buf, err := srcbuf.NewFromFile(path)
	if err != nil {
		return types.InvalidFileID, err
	}
	return m.CreateFileID(entry, buf, includeLoc), nil
}
