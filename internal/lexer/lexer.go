// Package lexer turns one source buffer into a stream of tokens (spec
// §4.6). Grounded on the original Lexer's LexTokenInternal switch and
// on the three bugs spec §9 flags and requires fixed here: IsHexDigit
// no longer accepts G-Z (see charclass.go), ellipsis detection checks
// that the third byte really is '.', and the char-literal scanner
// tolerates an embedded NUL instead of asserting on it (documented
// policy decision below).
package lexer

import (
	"github.com/standardbeagle/cptoyc/internal/cerrors"
	"github.com/standardbeagle/cptoyc/internal/debug"
	"github.com/standardbeagle/cptoyc/internal/ident"
	"github.com/standardbeagle/cptoyc/internal/srcbuf"
	"github.com/standardbeagle/cptoyc/internal/srcmgr"
	"github.com/standardbeagle/cptoyc/internal/token"
	"github.com/standardbeagle/cptoyc/internal/types"
)

// Lexer scans one registered file's buffer, one token per Lex call.
type Lexer struct {
	mgr  *srcmgr.Manager
	ids  *ident.Table
	sink cerrors.Sink

	fid      types.FileID
	buf      *srcbuf.Buffer
	data     []byte
	fileBase srcmgr.SourceLocation

	cur         int
	atLineStart bool

	rawMode                      bool
	keepWhitespace               bool
	pendingLeadingSpace          bool
	parsingPreprocessorDirective bool
	parsingFilename              bool

	langC99  bool
	langBool bool
}

// New creates a Lexer over fid's buffer, starting at byte offset 0.
func New(mgr *srcmgr.Manager, ids *ident.Table, sink cerrors.Sink, fid types.FileID) *Lexer {
	if sink == nil {
		sink = cerrors.NopSink{}
	}
	buf := mgr.GetBuffer(fid)
	return &Lexer{
		mgr:         mgr,
		ids:         ids,
		sink:        sink,
		fid:         fid,
		buf:         buf,
		data:        buf.Bytes(),
		fileBase:    mgr.GetLocationForStartOfFile(fid),
		atLineStart: true,
	}
}

// SetRawMode toggles raw mode: no identifier interning, no keyword
// mapping, no '#'-directive handling, no diagnostics. Used for
// -dump-raw-tokens and for skipping inactive conditional regions.
func (l *Lexer) SetRawMode(v bool) { l.rawMode = v }

// SetKeepWhitespaceMode toggles whitespace-preserving mode: instead of
// silently skipping inter-token spaces/newlines/comments, Lex returns
// them as their own Whitespace/Comment tokens, so concatenating every
// returned token's spelling reproduces the source byte-for-byte (spec
// §8's round-trip property). Meant to be paired with raw mode.
func (l *Lexer) SetKeepWhitespaceMode(v bool) { l.keepWhitespace = v }

// SetLangOptions records the dialect flags. The lexer does not consult
// them: a non-raw identifier takes its kind from its IdentifierInfo,
// which the identifier table's AddKeywords has already retagged.
func (l *Lexer) SetLangOptions(c99, boolKeyword bool) {
	l.langC99 = c99
	l.langBool = boolKeyword
}

// SetParsingPreprocessorDirective toggles directive sub-mode, where a
// raw newline is emitted as an eom token instead of being skipped.
func (l *Lexer) SetParsingPreprocessorDirective(v bool) { l.parsingPreprocessorDirective = v }

// SetParsingFilename toggles '<' being scanned as the start of an
// angle_string_literal (#include <foo.h>) instead of a relational
// operator.
func (l *Lexer) SetParsingFilename(v bool) { l.parsingFilename = v }

func (l *Lexer) loc(offset int) srcmgr.SourceLocation {
	return l.mgr.GetFileLocWithOffset(l.fileBase, uint32(offset))
}

func (l *Lexer) at(i int) byte {
	if i >= len(l.data) {
		return 0
	}
	return l.data[i]
}

// Lex scans and fills in tok with the next token.
func (l *Lexer) Lex(tok *token.Token) {
	tok.Reset()

	if l.keepWhitespace && l.lexTriviaToken(tok) {
		return
	}

	leadingSpace := l.skipWhitespaceAndComments(tok) || l.pendingLeadingSpace
	l.pendingLeadingSpace = false
	if tok.Kind() != token.Unknown {
		// skipWhitespaceAndComments already emitted an eom token. The
		// newline it consumed leaves atLineStart set, so StartOfLine goes
		// to the first token of the next line rather than to the eom.
		if leadingSpace {
			tok.SetFlag(token.LeadingSpace)
		}
		return
	}

	start := l.cur
	c := l.at(start)

	switch {
	case c == 0 && start >= len(l.data):
		tok.SetKind(token.EOF)
		tok.SetLength(0)
		tok.SetLocation(l.loc(start))
	case IsIdentifierHead(c):
		l.lexIdentifier(tok, start)
	case IsDigit(c) || (c == '.' && IsDigit(l.at(start+1))):
		l.lexNumber(tok, start)
	case c == '\'':
		l.lexCharLiteral(tok, start)
	case c == '"':
		l.lexStringLiteral(tok, start, token.StringLiteral, '"')
	case c == '<' && l.parsingFilename:
		l.lexStringLiteral(tok, start, token.AngleStringLiteral, '>')
	default:
		l.lexOperator(tok, start)
	}

	l.applyFlags(tok, leadingSpace)
	if start == 0 {
		tok.SetFlag(token.StartOfLine)
	}
}

func (l *Lexer) applyFlags(tok *token.Token, leadingSpace bool) {
	if l.atLineStart {
		tok.SetFlag(token.StartOfLine)
		l.atLineStart = false
	}
	if leadingSpace {
		tok.SetFlag(token.LeadingSpace)
	}
}

// skipWhitespaceAndComments advances past spaces, comments, and (in
// directive mode) stops at a newline by emitting an eom token in tok.
// Returns whether any whitespace/comment was actually skipped.
func (l *Lexer) skipWhitespaceAndComments(tok *token.Token) bool {
	sawSpace := false
	for {
		c := l.at(l.cur)
		switch {
		case c == ' ' || c == '\t' || IsVerticalWhitespace(c):
			l.cur++
			sawSpace = true
		case c == '\n' || c == '\r':
			l.consumeNewline()
			l.atLineStart = true
			if l.parsingPreprocessorDirective {
				tok.SetKind(token.EOM)
				tok.SetLength(0)
				tok.SetLocation(l.loc(l.cur))
				return sawSpace
			}
			sawSpace = true
		case c == '/' && l.at(l.cur+1) == '/':
			l.skipLineComment()
			sawSpace = true
		case c == '/' && l.at(l.cur+1) == '*':
			l.skipBlockComment()
			sawSpace = true
		default:
			return sawSpace
		}
	}
}

// lexTriviaToken emits a single run of whitespace, or a single comment,
// as its own token when keepWhitespace mode is on. Returns false (tok
// left untouched) when the lexer isn't positioned at trivia, so the
// caller falls through to ordinary token scanning. Directive sub-mode's
// eom-on-newline behavior is bypassed here: keepWhitespace is meant to
// pair with raw mode, which never parses directives to begin with.
func (l *Lexer) lexTriviaToken(tok *token.Token) bool {
	start := l.cur
	c := l.at(start)
	startOfLine := l.atLineStart

	switch {
	case c == ' ' || c == '\t' || IsVerticalWhitespace(c) || c == '\n' || c == '\r':
		sawNewline := false
	whitespace:
		for {
			switch c := l.at(l.cur); {
			case c == ' ' || c == '\t' || IsVerticalWhitespace(c):
				l.cur++
			case c == '\n' || c == '\r':
				l.consumeNewline()
				sawNewline = true
			default:
				break whitespace
			}
		}
		tok.SetKind(token.Whitespace)
		l.atLineStart = sawNewline
	case c == '/' && l.at(start+1) == '/':
		l.skipLineComment()
		tok.SetKind(token.Comment)
		l.atLineStart = false
	case c == '/' && l.at(start+1) == '*':
		l.skipBlockComment()
		tok.SetKind(token.Comment)
		l.atLineStart = false
	default:
		return false
	}

	tok.SetLength(uint32(l.cur - start))
	tok.SetLocation(l.loc(start))
	if startOfLine {
		tok.SetFlag(token.StartOfLine)
	}
	if l.pendingLeadingSpace {
		tok.SetFlag(token.LeadingSpace)
	}
	l.pendingLeadingSpace = true
	return true
}

func (l *Lexer) consumeNewline() {
	if l.at(l.cur) == '\r' && l.at(l.cur+1) == '\n' {
		l.cur += 2
		return
	}
	l.cur++
}

func (l *Lexer) skipLineComment() {
	for l.cur < len(l.data) && l.data[l.cur] != '\n' {
		l.cur++
	}
}

// skipBlockComment advances past a non-nesting /* ... */ comment. An
// unclosed comment at EOF is reported and the lexer recovers there,
// per spec §4.6.
func (l *Lexer) skipBlockComment() {
	start := l.cur
	l.cur += 2 // "/*"
	for {
		if l.cur >= len(l.data) {
			l.report(start, "unterminated /* comment")
			return
		}
		if l.data[l.cur] == '*' && l.at(l.cur+1) == '/' {
			l.cur += 2
			return
		}
		l.cur++
	}
}

func (l *Lexer) lexIdentifier(tok *token.Token, start int) {
	l.cur = start
	for IsIdentifierBody(l.at(l.cur)) {
		l.cur++
	}
	name := string(l.data[start:l.cur])

	if l.rawMode {
		tok.SetKind(token.Identifier)
	} else {
		ii := l.ids.Get(name)
		tok.SetKind(ii.TokenKind())
		tok.SetIdentifierInfo(ii)
	}
	tok.SetLength(uint32(l.cur - start))
	tok.SetLocation(l.loc(start))
}

// lexOperator performs greedy maximal-munch punctuator recognition,
// plus the '#' directive-start and unknown-byte fallback.
func (l *Lexer) lexOperator(tok *token.Token, start int) {
	kind, length := classifyPunctuator(l.data, start)
	if kind == token.Unknown {
		l.report(start, "unexpected character")
		tok.SetKind(token.Unknown)
		tok.SetLength(1)
		tok.SetLocation(l.loc(start))
		l.cur = start + 1
		return
	}
	l.cur = start + length
	tok.SetKind(kind)
	tok.SetLength(uint32(length))
	tok.SetLocation(l.loc(start))
}

// report builds a structured LexError for offset (so debug logging sees
// a proper line:column, not just a raw byte offset) and forwards it to
// the sink as a Diagnostic; formatting and exit-code policy are a
// collaborator's concern (spec §6), so the sink only ever sees the
// plain message. In raw mode nothing is reported.
func (l *Lexer) report(offset int, message string) {
	if l.rawMode {
		return
	}
	loc := l.loc(offset)
	lexErr := cerrors.NewLexError(l.fid, l.mgr.GetLineNumber(loc), l.mgr.GetColumnNumber(loc), message)
	debug.LogLex("%v", lexErr)

	l.sink.Report(cerrors.Diagnostic{
		File:    l.fid,
		Offset:  offset,
		Kind:    cerrors.KindError,
		Message: message,
	})
}
