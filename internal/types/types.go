// Package types holds the small handle types shared across the front-end:
// the kind of opaque, dense identifiers that let the rest of the system
// avoid passing raw pointers or strings around.
package types

// FileID identifies one source registered with the source manager. The
// zero value is reserved as "invalid" — no buffer is ever registered at
// FileID(0).
type FileID uint32

// IsValid reports whether fid refers to a registered source.
func (fid FileID) IsValid() bool {
	return fid != 0
}

// InvalidFileID is the reserved "no file" sentinel.
const InvalidFileID FileID = 0
