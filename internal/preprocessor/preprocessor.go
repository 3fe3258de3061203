// Package preprocessor is the boundary of the core (spec §4.7): the
// include-macro stack that threads lexers together, identifier lookup
// for raw-mode tokens, spelling recovery, and scratch-token synthesis.
// Full directive handling (macro expansion, conditional compilation,
// #include resolution) is out of scope; this is the glue a directive
// handler would sit on top of.
//
// Grounded on Preprocessor.cpp (EnterMainSourceFile, LookUpIdentifierInfo,
// getSpelling, CreateString) and PreprocessorLexer.h (the per-lexer
// ParsingPreprocessorDirective/ParsingFilename/LexingRawMode flags and
// the conditional-directive stack each frame in IncludeMacroStack owns).
package preprocessor

import (
	"github.com/standardbeagle/cptoyc/internal/cerrors"
	"github.com/standardbeagle/cptoyc/internal/debug"
	"github.com/standardbeagle/cptoyc/internal/ident"
	"github.com/standardbeagle/cptoyc/internal/lexer"
	"github.com/standardbeagle/cptoyc/internal/scratchbuf"
	"github.com/standardbeagle/cptoyc/internal/srcmgr"
	"github.com/standardbeagle/cptoyc/internal/token"
	"github.com/standardbeagle/cptoyc/internal/types"
)

// tokenSource is anything the top of the include-macro stack can pull
// the next token from: a real file lexer today, and (were macro
// expansion in scope) a token-lexer replaying a macro's expansion —
// both share Lex's "fill tok, signal exhaustion via tok.Kind() ==
// token.EOF" contract, so the stack doesn't need to know which kind of
// frame it's popping.
type tokenSource interface {
	Lex(tok *token.Token)
}

// frame is one level of Preprocessor.IncludeMacroStack: the lexer (or
// macro replay, out of scope) currently supplying tokens, the file it
// came from, and the cursor a #include header search would resume from
// when looking for the next directory on the search path. That search
// itself is out of scope (spec §12); the cursor is carried so a future
// directive handler has somewhere to keep its position.
type frame struct {
	src                   tokenSource
	fileID                types.FileID
	directoryLookupCursor int
}

// Preprocessor threads a Manager, an identifier Table, and a scratch
// buffer together behind the stack-of-lexers model spec §4.7 describes.
type Preprocessor struct {
	mgr     *srcmgr.Manager
	ids     *ident.Table
	scratch *scratchbuf.Buffer
	sink    cerrors.Sink

	stack []frame

	langC99, langBool bool
	enteredMainFile   bool
}

// New creates a Preprocessor over mgr, with its own scratch buffer and
// diagnostics discarded until SetSink installs a real one.
func New(mgr *srcmgr.Manager, ids *ident.Table) *Preprocessor {
	return &Preprocessor{
		mgr:     mgr,
		ids:     ids,
		scratch: scratchbuf.New(mgr),
		sink:    cerrors.NopSink{},
	}
}

// SetLangOptions records the dialect flags handed to every lexer this
// Preprocessor creates from here on (EnterSourceFile,
// EnterMainSourceFile). Keyword recognition itself follows the
// identifier table's AddKeywords; the lexers do not consult the flags.
func (pp *Preprocessor) SetLangOptions(c99, boolKeyword bool) {
	pp.langC99 = c99
	pp.langBool = boolKeyword
}

// SetSink installs the diagnostics sink lexers created by EnterSourceFile
// report to from here on.
func (pp *Preprocessor) SetSink(sink cerrors.Sink) {
	if sink == nil {
		sink = cerrors.NopSink{}
	}
	pp.sink = sink
}

// EnterMainSourceFile pushes the translation unit's main file as the
// bottommost stack frame. Calling this twice is a precondition
// violation, matching the original's "Cannot reenter the main file!"
// assertion.
func (pp *Preprocessor) EnterMainSourceFile() {
	if pp.enteredMainFile {
		panic("preprocessor: EnterMainSourceFile called more than once")
	}
	pp.enteredMainFile = true
	pp.EnterSourceFile(pp.mgr.GetMainFileID())
}

// EnterSourceFile pushes fid as a new top-of-stack frame, modeling
// #include nesting.
func (pp *Preprocessor) EnterSourceFile(fid types.FileID) {
	lx := lexer.New(pp.mgr, pp.ids, pp.sink, fid)
	lx.SetLangOptions(pp.langC99, pp.langBool)
	pp.stack = append(pp.stack, frame{src: lx, fileID: fid})
	debug.LogPP("entered source file %d, stack depth %d", fid, len(pp.stack))
}

// top returns the current (innermost) frame, or nil if the stack is
// empty.
func (pp *Preprocessor) top() *frame {
	if len(pp.stack) == 0 {
		return nil
	}
	return &pp.stack[len(pp.stack)-1]
}

// Lex dispatches to the top-of-stack lexer. On EOF it pops the frame
// (popping back out of a nested #include) and retries the frame
// beneath it, unless the stack is now empty, in which case the EOF
// token is the translation unit's final token and is returned as-is.
func (pp *Preprocessor) Lex(tok *token.Token) {
	for {
		f := pp.top()
		if f == nil {
			tok.Reset()
			tok.SetKind(token.EOF)
			return
		}

		f.src.Lex(tok)
		if tok.Kind() != token.EOF {
			pp.maybeHandleIdentifier(tok)
			return
		}

		if len(pp.stack) == 1 {
			// Bottommost frame (the main file) exhausted: this EOF is
			// the translation unit's.
			return
		}
		pp.stack = pp.stack[:len(pp.stack)-1]
		debug.LogPP("popped source file, stack depth %d", len(pp.stack))
	}
}

// maybeHandleIdentifier is the fast-path gate spec §4.3 describes:
// NeedsHandleIdentifier tells the preprocessor whether this identifier
// is worth inspecting at all (macro-defined, an extension keyword, or
// poisoned). Macro expansion itself is out of scope; this only logs the
// hook point a directive handler would occupy.
func (pp *Preprocessor) maybeHandleIdentifier(tok *token.Token) {
	ii := tok.IdentifierInfo()
	if ii == nil {
		return
	}
	real, ok := ii.(*ident.IdentifierInfo)
	if !ok || !real.NeedsHandleIdentifier() {
		return
	}
	debug.LogPP("identifier %q needs handling (macro=%v ext=%v poisoned=%v)",
		real.Name(), real.HasMacroDefinition(), real.IsExtensionToken(), real.IsPoisoned())
}

// LookUpIdentifierInfo resolves ident, an identifier token the lexer
// produced in raw mode (so it carries no IdentifierInfo yet), against
// buf, the raw bytes the lexer left at the token's position. If the
// token needs cleaning (spans an escaped newline), or buf is nil, buf is
// not used: the name is GetSpelling's cleaned spelling, read from the
// token's own location in the source manager.
func (pp *Preprocessor) LookUpIdentifierInfo(tok *token.Token, buf []byte) *ident.IdentifierInfo {
	if tok.Kind() != token.Identifier {
		panic("preprocessor: LookUpIdentifierInfo called on a non-identifier token")
	}
	if tok.IdentifierInfo() != nil {
		panic("preprocessor: LookUpIdentifierInfo called on a token that already has one")
	}

	var name string
	if buf != nil && !tok.NeedsCleaning() {
		name = string(buf[:tok.Length()])
	} else {
		name = pp.GetSpelling(tok)
	}

	ii := pp.ids.Get(name)
	tok.SetIdentifierInfo(ii)
	return ii
}

// GetSpelling returns tok's cleaned spelling: its raw source bytes
// unless NeedsCleaning is set, in which case escaped line-continuations
// ("\\\n" or "\\\r\n") are spliced out.
//
// The original asserts Result.size() != Tok.getLength() after cleaning,
// which spec §9 flags backwards: a NeedsCleaning token can clean down to
// the *same* length (e.g. nothing left to splice once trigraphs are
// disabled) without that being a bug, but cleaning can never make the
// result *longer* than the raw span. That's the invariant checked here.
func (pp *Preprocessor) GetSpelling(tok *token.Token) string {
	raw := pp.rawSpelling(tok)
	if !tok.NeedsCleaning() {
		return string(raw)
	}

	cleaned := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == '\n' {
			i++
			continue
		}
		if raw[i] == '\\' && i+2 < len(raw) && raw[i+1] == '\r' && raw[i+2] == '\n' {
			i += 2
			continue
		}
		cleaned = append(cleaned, raw[i])
	}

	if len(cleaned) > len(raw) {
		panic("preprocessor: cleaned spelling longer than raw token span")
	}
	return string(cleaned)
}

// rawSpelling slices tok's raw bytes directly out of its owning buffer.
func (pp *Preprocessor) rawSpelling(tok *token.Token) []byte {
	fid, offset := pp.mgr.Decompose(tok.Location())
	buf := pp.mgr.GetBuffer(fid)
	return buf.Bytes()[offset : offset+tok.Length()]
}

// CreateString synthesizes a token of the given kind wrapping content,
// writing content into the scratch buffer and pointing the token at the
// resulting location. When instLoc is valid, the scratch location is
// wrapped as the spelling of a fresh instantiation location standing
// for instLoc (e.g. the use site of a stringized macro argument);
// otherwise the token's location is simply the scratch spelling
// location.
func (pp *Preprocessor) CreateString(content []byte, kind token.Kind, instLoc srcmgr.SourceLocation) token.Token {
	loc := pp.scratch.GetToken(content)
	if instLoc.IsValid() {
		loc = pp.mgr.CreateInstantiationLoc(loc, instLoc, instLoc, uint32(len(content)))
	}

	var tok token.Token
	tok.SetKind(kind)
	tok.SetLength(uint32(len(content)))
	tok.SetLocation(loc)
	if tok.IsLiteral() {
		tok.SetLiteralData(content)
	}
	return tok
}

// SetParsingPreprocessorDirective toggles directive sub-mode on the
// current top-of-stack lexer, turning a raw newline into an eom token.
// No-op if the stack is empty.
func (pp *Preprocessor) SetParsingPreprocessorDirective(v bool) {
	f := pp.top()
	if f == nil {
		return
	}
	if lx, ok := f.src.(*lexer.Lexer); ok {
		lx.SetParsingPreprocessorDirective(v)
	}
}

// LexIncludeFilename lexes the filename following a #include by
// flipping ParsingFilename on the current lexer for the duration of a
// single Lex call, so a leading '<' is recognized as the start of an
// angle_string_literal instead of a relational operator.
func (pp *Preprocessor) LexIncludeFilename(tok *token.Token) {
	f := pp.top()
	if f == nil {
		tok.Reset()
		tok.SetKind(token.EOF)
		return
	}
	lx, ok := f.src.(*lexer.Lexer)
	if !ok {
		pp.Lex(tok)
		return
	}
	lx.SetParsingFilename(true)
	pp.Lex(tok)
	lx.SetParsingFilename(false)
}

// CurrentFileID returns the FileID of the top-of-stack frame, or
// types.InvalidFileID if the stack is empty.
func (pp *Preprocessor) CurrentFileID() types.FileID {
	f := pp.top()
	if f == nil {
		return types.InvalidFileID
	}
	return f.fileID
}

// DirectoryLookupCursor returns the top frame's saved #include search
// position. Returns 0 (start of search path) if the stack is empty.
func (pp *Preprocessor) DirectoryLookupCursor() int {
	f := pp.top()
	if f == nil {
		return 0
	}
	return f.directoryLookupCursor
}

// SetDirectoryLookupCursor records where a #include header search
// should resume from on the top frame.
func (pp *Preprocessor) SetDirectoryLookupCursor(cursor int) {
	f := pp.top()
	if f == nil {
		return
	}
	f.directoryLookupCursor = cursor
}

// StackDepth returns how many frames are currently on the include-macro
// stack.
func (pp *Preprocessor) StackDepth() int {
	return len(pp.stack)
}
