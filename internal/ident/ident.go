// Package ident canonicalizes every identifier spelling in a
// translation unit to a single IdentifierInfo, carries keyword
// classification and preprocessor-relevant flags, and allows
// interception by an external identifier source (spec §4.3).
//
// Grounded on Basic/IdentifierTable.h: IdentifierInfo's bit-field
// layout (TokenID, HasMacro, IsExtension, IsPoisoned,
// NeedsHandleIdentifier) and IdentifierTable's get/CreateIdentifierInfo
// pair are carried over almost field-for-field. The back-reference this
// package's spelling accessors use is internal/alloc.Arena's stable
// index (spec §9 design note (a), option (a)); unlike the original's
// StringMapEntry pointer recovery dance, Name/Length here are plain Go
// string/len on a field set once at construction, since Go strings are
// already a cheap value type with O(1) length.
package ident

import (
	"errors"

	"github.com/standardbeagle/cptoyc/internal/alloc"
	"github.com/standardbeagle/cptoyc/internal/token"
)

// ErrEmptyName is returned for a zero-length identifier spelling,
// which spec §4.3 rejects outright.
var ErrEmptyName = errors.New("ident: identifier spelling must not be empty")

// IdentifierInfo is the canonical record for one distinct identifier
// spelling. It satisfies token.IdentifierInfo.
type IdentifierInfo struct {
	name       string
	arenaIndex uint32

	tokenKind token.Kind // tok::identifier until add_keywords retags it

	hasMacro     bool
	isExtension  bool
	isPoisoned   bool
	needsHandle  bool
	feTokenInfo  any
}

// Name returns the identifier's spelling.
func (ii *IdentifierInfo) Name() string { return ii.name }

// Length returns len(Name()).
func (ii *IdentifierInfo) Length() int { return len(ii.name) }

// ArenaIndex returns the stable handle the owning Table minted for this
// identifier; used to cheaply recover the *IdentifierInfo later (e.g.
// from a serialized external-source reference) without a string
// lookup.
func (ii *IdentifierInfo) ArenaIndex() uint32 { return ii.arenaIndex }

func (ii *IdentifierInfo) TokenKind() token.Kind     { return ii.tokenKind }
func (ii *IdentifierInfo) SetTokenKind(k token.Kind) { ii.tokenKind = k }

func (ii *IdentifierInfo) HasMacroDefinition() bool { return ii.hasMacro }

// SetHasMacroDefinition toggles macro-defined status and recomputes
// NeedsHandleIdentifier.
func (ii *IdentifierInfo) SetHasMacroDefinition(val bool) {
	ii.hasMacro = val
	ii.recomputeNeedsHandle()
}

func (ii *IdentifierInfo) IsExtensionToken() bool { return ii.isExtension }

func (ii *IdentifierInfo) SetIsExtensionToken(val bool) {
	ii.isExtension = val
	ii.recomputeNeedsHandle()
}

func (ii *IdentifierInfo) IsPoisoned() bool { return ii.isPoisoned }

func (ii *IdentifierInfo) SetIsPoisoned(val bool) {
	ii.isPoisoned = val
	ii.recomputeNeedsHandle()
}

// recomputeNeedsHandle resolves the spec §9-flagged disagreement
// between setIsPoisoned (which sets NeedsHandleIdentifier directly)
// and the original's RecomputeNeedsHandleIdentifier (which only looks
// at HasMacro): here NeedsHandleIdentifier is consistently the OR of
// all three flags, so toggling any one of them off only drops the flag
// once none of the others still require it.
func (ii *IdentifierInfo) recomputeNeedsHandle() {
	ii.needsHandle = ii.hasMacro || ii.isExtension || ii.isPoisoned
}

// NeedsHandleIdentifier reports whether Preprocessor::HandleIdentifier
// (or its equivalent) must inspect this identifier at all.
func (ii *IdentifierInfo) NeedsHandleIdentifier() bool { return ii.needsHandle }

func (ii *IdentifierInfo) FETokenInfo() any        { return ii.feTokenInfo }
func (ii *IdentifierInfo) SetFETokenInfo(v any)    { ii.feTokenInfo = v }

// IsKeyword reports whether add_keywords has retagged this identifier
// away from tok::identifier.
func (ii *IdentifierInfo) IsKeyword() bool {
	return token.IsKeyword(ii.tokenKind)
}

// ExternalLookup is the capability trait an embedder plugs in to
// resolve identifier spellings from outside the table (spec §4.3 /
// §9's "dynamic dispatch for external identifier lookup" note).
type ExternalLookup interface {
	Get(name string) (*IdentifierInfo, bool)
}

// Table interns identifier spellings to a single IdentifierInfo each.
type Table struct {
	arena    *alloc.Arena[string, *IdentifierInfo]
	external ExternalLookup
}

// NewTable creates an empty table with no external lookup installed.
func NewTable() *Table {
	return &Table{arena: alloc.NewArena[string, *IdentifierInfo]()}
}

// SetExternalLookup installs (or clears, with nil) the external
// identifier source consulted on a local miss.
func (t *Table) SetExternalLookup(ext ExternalLookup) {
	t.external = ext
}

// Get returns the canonical IdentifierInfo for name, creating it (after
// consulting the external lookup) if this is the first time name has
// been seen. Panics if name is empty, since a zero-length spelling
// should never reach the table (the lexer never emits one).
func (t *Table) Get(name string) *IdentifierInfo {
	if name == "" {
		panic(ErrEmptyName)
	}

	if idx, ok := t.arena.Lookup(name); ok {
		return t.arena.At(idx)
	}

	if t.external != nil {
		if ii, ok := t.external.Get(name); ok {
			idx := t.arena.Intern(name, func() *IdentifierInfo { return ii })
			ii.arenaIndex = idx
			return ii
		}
	}

	idx := t.arena.Intern(name, func() *IdentifierInfo {
		return &IdentifierInfo{name: name, tokenKind: token.Identifier}
	})
	ii := t.arena.At(idx)
	ii.arenaIndex = idx
	return ii
}

// Create unconditionally inserts a fresh IdentifierInfo for name.
// Precondition: no prior entry for this spelling (used by external
// sources bootstrapping their own identifiers without recursing back
// into Get). Panics on a pre-existing entry or an empty name.
func (t *Table) Create(name string) *IdentifierInfo {
	if name == "" {
		panic(ErrEmptyName)
	}
	if _, ok := t.arena.Lookup(name); ok {
		panic("ident: Create called for an already-interned spelling: " + name)
	}

	idx := t.arena.Intern(name, func() *IdentifierInfo {
		return &IdentifierInfo{name: name, tokenKind: token.Identifier}
	})
	ii := t.arena.At(idx)
	ii.arenaIndex = idx
	return ii
}

// Len returns the number of distinct identifiers interned so far.
func (t *Table) Len() int { return t.arena.Len() }

// AddKeywords retags every keyword spelling's IdentifierInfo from
// tok::identifier to its specific keyword kind, gated by opts. An
// IdentifierInfo retrieved via Get before AddKeywords runs is the same
// object AddKeywords mutates, so the retag is visible everywhere
// (spec §4.3 tie-break).
func (t *Table) AddKeywords(opts LangOptions) {
	for _, name := range keywordSpellings {
		kind, ok := token.LookupKeyword(name, token.LangGate{C99: opts.C99, Bool: opts.Bool})
		if !ok {
			continue
		}
		t.Get(name).SetTokenKind(kind)
	}
}

// LangOptions is the subset of configuration that gates keyword
// recognition (mirrors internal/config.LangOptions without importing
// it, to keep this package usable standalone).
type LangOptions struct {
	C99  bool
	Bool bool
}

var keywordSpellings = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"int", "long", "register", "return", "short", "signed", "sizeof",
	"static", "struct", "switch", "typedef", "union", "unsigned", "void",
	"volatile", "while", "_Bool", "inline", "restrict",
}
