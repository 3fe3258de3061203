package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cptoyc/internal/cerrors"
	"github.com/standardbeagle/cptoyc/internal/ident"
	"github.com/standardbeagle/cptoyc/internal/srcbuf"
	"github.com/standardbeagle/cptoyc/internal/srcmgr"
	"github.com/standardbeagle/cptoyc/internal/token"
)

func newLexer(t *testing.T, src string) (*Lexer, *srcmgr.Manager, *cerrors.CollectingSink) {
	t.Helper()
	mgr := srcmgr.New()
	fid := mgr.CreateMainFileID(nil, srcbuf.NewFromBytes("t.c", []byte(src)))
	ids := ident.NewTable()
	ids.AddKeywords(ident.LangOptions{C99: true, Bool: true})
	sink := cerrors.NewCollectingSink()
	return New(mgr, ids, sink, fid), mgr, sink
}

func lexAll(t *testing.T, src string) ([]token.Token, *cerrors.CollectingSink) {
	t.Helper()
	l, _, sink := newLexer(t, src)
	var toks []token.Token
	for {
		var tok token.Token
		l.Lex(&tok)
		toks = append(toks, tok)
		if tok.Is(token.EOF) {
			break
		}
	}
	return toks, sink
}

func TestIdentifierVsKeyword(t *testing.T) {
	toks, _ := lexAll(t, "int x;")
	require.Len(t, toks, 4) // int, x, ;, eof
	assert.Equal(t, token.KwInt, toks[0].Kind())
	assert.Equal(t, token.Identifier, toks[1].Kind())
	assert.Equal(t, "x", toks[1].IdentifierInfo().Name())
	assert.Equal(t, token.Semi, toks[2].Kind())
}

func TestIntegerBaseAndSuffixClassification(t *testing.T) {
	cases := []struct {
		src   string
		base  string
		value uint64
		kind  NumericKind
	}{
		{"0x1F", "hex", 31, IntConstant},
		{"017", "oct", 15, IntConstant},
		{"42", "dec", 42, IntConstant},
		{"42UL", "dec", 42, ULongConstant},
	}
	for _, c := range cases {
		toks, sink := lexAll(t, c.src)
		require.False(t, sink.HasErrors(), c.src)
		require.Equal(t, token.NumericConstant, toks[0].Kind(), c.src)
		assert.Equal(t, c.src, string(toks[0].LiteralData()), c.src)

		val, err := ParseNumericLiteral(string(toks[0].LiteralData()))
		require.NoError(t, err, c.src)
		assert.Equal(t, c.value, val.IntVal, "%s (%s)", c.src, c.base)
		assert.Equal(t, c.kind, val.Kind, c.src)
	}
}

func TestHexFloatLiteralValue(t *testing.T) {
	toks, sink := lexAll(t, "0x1.8p+1f")
	require.False(t, sink.HasErrors())
	require.Equal(t, token.NumericConstant, toks[0].Kind())

	val, err := ParseNumericLiteral(string(toks[0].LiteralData()))
	require.NoError(t, err)
	assert.True(t, val.IsFloat)
	assert.Equal(t, FloatConstant, val.Kind)
	assert.True(t, floatsEqual(3.0, val.FltVal, 1e-9))
}

func TestStringLiteralEscapes(t *testing.T) {
	toks, sink := lexAll(t, `"a\tb\n"`)
	require.False(t, sink.HasErrors())
	require.Equal(t, token.StringLiteral, toks[0].Kind())

	decoded := DecodeStringLiteralValue(toks[0].LiteralData())
	assert.Equal(t, "a\tb\n", string(decoded))
}

func TestUnclosedCommentDiagnosesAndRecoversAtEOF(t *testing.T) {
	toks, sink := lexAll(t, "int x;\n/* oops\n")
	assert.True(t, sink.HasErrors())
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind())
}

func TestHexDigitRejectsGThroughZ(t *testing.T) {
	assert.True(t, IsHexDigit('a'))
	assert.True(t, IsHexDigit('F'))
	assert.False(t, IsHexDigit('g'))
	assert.False(t, IsHexDigit('Z'))
}

func TestEllipsisRequiresThreeDots(t *testing.T) {
	toks, _ := lexAll(t, "..x")
	assert.Equal(t, token.Period, toks[0].Kind())
	assert.Equal(t, token.Period, toks[1].Kind())
}

func TestEllipsisRecognizedWithThreeDots(t *testing.T) {
	toks, _ := lexAll(t, "...")
	assert.Equal(t, token.Ellipsis, toks[0].Kind())
}

func TestStartOfLineAndLeadingSpaceFlags(t *testing.T) {
	toks, _ := lexAll(t, "a  b\nc")
	assert.True(t, toks[0].IsAtStartOfLine())
	assert.False(t, toks[0].HasLeadingSpace())

	assert.True(t, toks[1].HasLeadingSpace())
	assert.False(t, toks[1].IsAtStartOfLine())

	assert.True(t, toks[2].IsAtStartOfLine())
}

func TestCharLiteralToleratesEmbeddedNul(t *testing.T) {
	src := "'\x00'"
	toks, sink := lexAll(t, src)
	require.False(t, sink.HasErrors())
	require.Equal(t, token.CharConstant, toks[0].Kind())
	assert.Equal(t, 3, int(toks[0].Length())) // opening quote, embedded NUL, closing quote
}

func TestUnterminatedStringDiagnoses(t *testing.T) {
	_, sink := lexAll(t, "\"abc\n")
	assert.True(t, sink.HasErrors())
}

func TestPreprocessorDirectiveModeEmitsEom(t *testing.T) {
	l, _, _ := newLexer(t, "#define FOO\nbar")

	var hash token.Token
	l.Lex(&hash)
	assert.Equal(t, token.Hash, hash.Kind())
	assert.True(t, hash.IsAtStartOfLine())

	l.SetParsingPreprocessorDirective(true)

	var define token.Token
	l.Lex(&define)
	assert.Equal(t, token.Identifier, define.Kind())
	assert.Equal(t, "define", define.IdentifierInfo().Name())

	var foo token.Token
	l.Lex(&foo)
	assert.Equal(t, "FOO", foo.IdentifierInfo().Name())

	var eom token.Token
	l.Lex(&eom)
	assert.Equal(t, token.EOM, eom.Kind())

	l.SetParsingPreprocessorDirective(false)

	var bar token.Token
	l.Lex(&bar)
	assert.Equal(t, "bar", bar.IdentifierInfo().Name())
	assert.True(t, bar.IsAtStartOfLine())
}

func TestKeepWhitespaceModeRoundTripsSourceByteForByte(t *testing.T) {
	src := "int  x; // comment\n/* block */\ny;\n"
	l, _, _ := newLexer(t, src)
	l.SetRawMode(true)
	l.SetKeepWhitespaceMode(true)

	var spelling string
	for {
		var tok token.Token
		l.Lex(&tok)
		if tok.Is(token.EOF) {
			break
		}
		fid, offset := l.mgr.Decompose(tok.Location())
		require.Equal(t, l.fid, fid)
		spelling += string(l.mgr.GetBuffer(fid).Bytes()[offset : offset+tok.Length()])
	}
	assert.Equal(t, src, spelling)
}

func TestKeepWhitespaceModeEmitsWhitespaceAndCommentKinds(t *testing.T) {
	l, _, _ := newLexer(t, "x /* c */ y")
	l.SetRawMode(true)
	l.SetKeepWhitespaceMode(true)

	toks := lexAllFrom(l)
	require.Len(t, toks, 6) // x, ws, comment, ws, y, eof
	assert.Equal(t, token.Identifier, toks[0].Kind())
	assert.Equal(t, token.Whitespace, toks[1].Kind())
	assert.Equal(t, token.Comment, toks[2].Kind())
	assert.Equal(t, token.Whitespace, toks[3].Kind())
	assert.Equal(t, token.Identifier, toks[4].Kind())
	assert.Equal(t, token.EOF, toks[5].Kind())
}

func lexAllFrom(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		var tok token.Token
		l.Lex(&tok)
		toks = append(toks, tok)
		if tok.Is(token.EOF) {
			break
		}
	}
	return toks
}
