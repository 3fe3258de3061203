package token

import "github.com/standardbeagle/cptoyc/internal/srcmgr"

// Flags are the per-token bits the original tracks in an 8-bit field
// (spec §9 "Unions in Token.payload" neighbor note; grounded on
// token.h's TokenFlags enum).
type Flags uint8

const (
	StartOfLine   Flags = 1 << iota // at start of line, or only preceded by whitespace
	LeadingSpace                    // whitespace exists before this token
	DisableExpand                   // this identifier must never be macro-expanded again
	NeedsCleaning                   // spans a trigraph or escaped newline; re-read via getSpelling
)

// IdentifierInfo is the minimal surface Token needs from an interned
// identifier. Defined here (rather than importing internal/ident) to
// break the mutual dependency the original has between Token and
// IdentifierInfo: ident.IdentifierInfo satisfies this interface
// structurally, and internal/ident is the only package that
// constructs one.
type IdentifierInfo interface {
	Name() string
}

// payloadKind tags which field of Token's payload union is live,
// modeling the original's void* PtrData as a Go tagged variant per
// spec §9.
type payloadKind uint8

const (
	payloadNone payloadKind = iota
	payloadIdentifier
	payloadLiteral
	payloadAnnotation
)

// Token is a single lexical token: its location, kind, flags, and a
// payload whose meaning depends on kind (spec §4.6 / §9). Zero value is
// an "unknown" token at the invalid location, matching startToken()'s
// reset semantics.
type Token struct {
	loc    srcmgr.SourceLocation
	kind   Kind
	length uint32 // byte length of the token's spelling; meaningless for annotations
	flags  Flags

	payloadTag  payloadKind
	identInfo   IdentifierInfo
	literalData []byte // start of the token's spelling in its owning buffer
	annotation  any
	annotEnd    srcmgr.SourceLocation
}

// Reset clears t to an unknown token with no flags, no payload, and an
// invalid location, mirroring Token::startToken.
func (t *Token) Reset() {
	*t = Token{}
}

func (t *Token) Kind() Kind        { return t.kind }
func (t *Token) SetKind(k Kind)    { t.kind = k }
func (t *Token) Is(k Kind) bool    { return t.kind == k }
func (t *Token) IsNot(k Kind) bool { return t.kind != k }

func (t *Token) IsLiteral() bool    { return IsLiteral(t.kind) }
func (t *Token) IsAnnotation() bool { return t.kind == annotTypename }

func (t *Token) Location() srcmgr.SourceLocation     { return t.loc }
func (t *Token) SetLocation(l srcmgr.SourceLocation) { t.loc = l }

// Length returns the token's spelling length. Panics on an annotation
// token, which has no length field (token.h: "Annotation tokens have
// no length field").
func (t *Token) Length() uint32 {
	if t.IsAnnotation() {
		panic("token: Length called on an annotation token")
	}
	return t.length
}

func (t *Token) SetLength(n uint32) {
	if t.IsAnnotation() {
		panic("token: SetLength called on an annotation token")
	}
	t.length = n
}

// IdentifierInfo returns the token's interned identifier, or nil for a
// literal/annotation/punctuator token.
func (t *Token) IdentifierInfo() IdentifierInfo {
	if t.IsAnnotation() || t.IsLiteral() {
		return nil
	}
	if t.payloadTag != payloadIdentifier {
		return nil
	}
	return t.identInfo
}

// SetIdentifierInfo installs ii as the token's payload and tags it as
// an identifier payload.
func (t *Token) SetIdentifierInfo(ii IdentifierInfo) {
	t.payloadTag = payloadIdentifier
	t.identInfo = ii
}

// LiteralData returns the start of the token's raw spelling in its
// owning buffer. Panics if t isn't a literal.
func (t *Token) LiteralData() []byte {
	if !t.IsLiteral() {
		panic("token: LiteralData called on a non-literal token")
	}
	return t.literalData
}

func (t *Token) SetLiteralData(data []byte) {
	if !t.IsLiteral() {
		panic("token: SetLiteralData called on a non-literal token")
	}
	t.payloadTag = payloadLiteral
	t.literalData = data
}

// AnnotationValue returns the parser-attached semantic payload.
// Panics if t isn't an annotation token.
func (t *Token) AnnotationValue() any {
	if !t.IsAnnotation() {
		panic("token: AnnotationValue called on a non-annotation token")
	}
	return t.annotation
}

func (t *Token) SetAnnotationValue(v any) {
	if !t.IsAnnotation() {
		panic("token: SetAnnotationValue called on a non-annotation token")
	}
	t.payloadTag = payloadAnnotation
	t.annotation = v
}

// AnnotationEndLoc and SetAnnotationEndLoc support annotation tokens, which
// stash the end of the spanned range where a normal token stores its
// length.
func (t *Token) AnnotationEndLoc() srcmgr.SourceLocation {
	if !t.IsAnnotation() {
		panic("token: AnnotationEndLoc called on a non-annotation token")
	}
	return t.annotEnd
}

func (t *Token) SetAnnotationEndLoc(loc srcmgr.SourceLocation) {
	if !t.IsAnnotation() {
		panic("token: SetAnnotationEndLoc called on a non-annotation token")
	}
	t.annotEnd = loc
}

func (t *Token) SetFlag(f Flags)            { t.flags |= f }
func (t *Token) ClearFlag(f Flags)          { t.flags &^= f }
func (t *Token) SetFlagValue(f Flags, v bool) {
	if v {
		t.SetFlag(f)
	} else {
		t.ClearFlag(f)
	}
}
func (t *Token) Flags() Flags { return t.flags }

func (t *Token) IsAtStartOfLine() bool    { return t.flags&StartOfLine != 0 }
func (t *Token) HasLeadingSpace() bool    { return t.flags&LeadingSpace != 0 }
func (t *Token) IsExpandDisabled() bool   { return t.flags&DisableExpand != 0 }
func (t *Token) NeedsCleaning() bool      { return t.flags&NeedsCleaning != 0 }

// annotTypename is the one annotation kind this front end produces,
// reserved past the closed lexical enumeration so IsAnnotation can
// distinguish it without widening Kind's normal range.
const annotTypename Kind = numKinds
