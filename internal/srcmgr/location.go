// Package srcmgr owns every source and scratch buffer for one
// translation unit, mints FileIDs, and converts between SourceLocation
// and (file, line, column) (spec §4.2 "Source manager").
//
// Grounded on the original SourceLocation.cpp/.h and SourceManager's
// documented behavior (SourceLocation.h itself wasn't in the retrieved
// sources, so the packed layout below is reconstructed from spec §9's
// "single machine-word integer with one tag bit" note): real Clang
// reserves a global, monotonically increasing offset address space and
// hands each FileID a contiguous slice of it, so decoding a location is
// a binary search over slice start offsets rather than a direct index.
package srcmgr

// SourceLocation is an opaque, comparable handle into one Manager's
// address space. The zero value is the invalid location, matching
// types.InvalidFileID's "zero is reserved" convention.
type SourceLocation struct {
	raw uint64
}

// instantiationTag marks the top bit of raw: 0 selects a file location
// (raw's low bits are a global offset), 1 selects an instantiation
// location (raw's low bits index the Manager's instantiation table).
const instantiationTag = uint64(1) << 63

// InvalidLocation is the reserved "no location" sentinel.
var InvalidLocation = SourceLocation{}

// IsValid reports whether loc was ever produced by a Manager operation.
func (loc SourceLocation) IsValid() bool {
	return loc.raw != 0
}

// IsFileLocation reports whether loc addresses a buffer byte directly,
// as opposed to being a macro-instantiation location.
func (loc SourceLocation) IsFileLocation() bool {
	return loc.raw&instantiationTag == 0
}

// IsInstantiationLocation reports the complement of IsFileLocation.
func (loc SourceLocation) IsInstantiationLocation() bool {
	return loc.raw&instantiationTag != 0
}

func fileLocation(globalOffset uint32) SourceLocation {
	return SourceLocation{raw: uint64(globalOffset)}
}

func (loc SourceLocation) globalOffset() uint32 {
	return uint32(loc.raw)
}

func instantiationLocation(index uint32) SourceLocation {
	return SourceLocation{raw: instantiationTag | uint64(index)}
}

func (loc SourceLocation) instantiationIndex() uint32 {
	return uint32(loc.raw &^ instantiationTag)
}

// withOffset returns a new file location n bytes further into the same
// logical file. Valid only when loc is already a file location; callers
// must check IsFileLocation first (spec §4.2 get_file_loc_with_offset).
func (loc SourceLocation) withOffset(n uint32) SourceLocation {
	return fileLocation(loc.globalOffset() + n)
}
