package idcodec

import (
	"github.com/standardbeagle/cptoyc/internal/encoding"
	"github.com/standardbeagle/cptoyc/internal/types"
)

// SourceLocation rendering.
//
// A srcmgr.SourceLocation is, per spec §9, a single machine word with one
// tag bit distinguishing a file location (whose remaining bits are a
// global offset) from an instantiation location (whose remaining bits
// index the instantiation side table). This package never reads that
// word; it encodes the parts srcmgr has already decoded:
//
//   - a file location as its FileID (lower 32 bits) paired with the
//     byte offset (upper 32 bits) into that file's buffer;
//   - an instantiation location as its side-table index, prefixed "~".
//
// This package only knows how to pack/unpack/print those parts; srcmgr owns
// the meaning of "file location" vs "instantiation location" and decides
// which encoder to call.

// EncodeFileLoc encodes a (FileID, offset) file location as a base-63
// string, used for debug/log output such as -dump-raw-tokens.
func EncodeFileLoc(fileID types.FileID, offset uint32) string {
	return EncodeNoZero(PackFileLoc(fileID, offset))
}

// DecodeFileLoc decodes a string produced by EncodeFileLoc.
func DecodeFileLoc(encoded string) (types.FileID, uint32, error) {
	if encoded == "" {
		return 0, 0, ErrEmptyString
	}
	packed, err := Decode(encoded)
	if err != nil {
		return 0, 0, err
	}
	fid, offset := UnpackFileLoc(packed)
	return fid, offset, nil
}

// PackFileLoc packs a FileID and byte offset into a single uint64: the
// FileID occupies the lower 32 bits, the offset the upper 32.
func PackFileLoc(fileID types.FileID, offset uint32) uint64 {
	return encoding.PackUint32Pair(uint32(fileID), offset)
}

// UnpackFileLoc reverses PackFileLoc.
func UnpackFileLoc(packed uint64) (types.FileID, uint32) {
	lower, upper := encoding.UnpackUint32Pair(packed)
	return types.FileID(lower), upper
}

// EncodeInstantiationLoc encodes an instantiation-side-table index as a
// base-63 string, tagged so it is visually distinguishable from a file
// location in debug output (prefixed with "~").
func EncodeInstantiationLoc(index uint32) string {
	return "~" + Encode(uint64(index))
}

// DecodeInstantiationLoc decodes a string produced by
// EncodeInstantiationLoc.
func DecodeInstantiationLoc(encoded string) (uint32, error) {
	if len(encoded) < 2 || encoded[0] != '~' {
		return 0, ErrInvalidChar
	}
	packed, err := Decode(encoded[1:])
	if err != nil {
		return 0, err
	}
	return uint32(packed), nil
}
