package lexer

import "github.com/standardbeagle/cptoyc/internal/token"

// lexCharLiteral scans 'c' (with escapes), emitting a char_constant
// token whose literal data is the raw spelling between (and including)
// the quotes.
//
// Policy decision (spec §9's flagged ambiguity): the original asserts
// the byte at the current position is never '\0' while scanning a char
// literal, which would misfire on a real embedded NUL since real C
// permits one inside single quotes. Here an embedded NUL is just
// another character byte; only a literal end of buffer or an
// unescaped newline terminates the literal early (as "unterminated
// character constant").
func (l *Lexer) lexCharLiteral(tok *token.Token, start int) {
	l.cur = start + 1 // past the opening '

	closed := false
	for l.cur < len(l.data) {
		c := l.data[l.cur]
		if c == '\'' {
			l.cur++
			closed = true
			break
		}
		if c == '\n' {
			break
		}
		if c == '\\' && l.cur+1 < len(l.data) {
			l.cur += 2
			continue
		}
		l.cur++
	}

	if !closed {
		l.report(start, "unterminated character constant")
	}

	tok.SetKind(token.CharConstant)
	tok.SetLength(uint32(l.cur - start))
	tok.SetLocation(l.loc(start))
	tok.SetLiteralData(l.data[start:l.cur])
}

// lexStringLiteral scans a string or angle-bracketed header name,
// delimited by the given closing byte, stopping (with a diagnostic) at
// an unescaped newline.
func (l *Lexer) lexStringLiteral(tok *token.Token, start int, kind token.Kind, closing byte) {
	l.cur = start + 1 // past the opening quote/angle

	closed := false
	for l.cur < len(l.data) {
		c := l.data[l.cur]
		if c == closing {
			l.cur++
			closed = true
			break
		}
		if c == '\n' {
			break
		}
		if c == '\\' && closing == '"' && l.cur+1 < len(l.data) {
			l.cur += 2
			continue
		}
		l.cur++
	}

	if !closed {
		l.report(start, "unterminated string literal")
	}

	tok.SetKind(kind)
	tok.SetLength(uint32(l.cur - start))
	tok.SetLocation(l.loc(start))
	tok.SetLiteralData(l.data[start:l.cur])
}

// DecodeCharLiteralValue decodes a char_constant's spelling (quotes
// included) to the character code spec §4.6 says it's emitted as — the
// lexer itself just recognizes the span; value decoding happens here,
// separately, the same split ParseNumericLiteral makes for numbers.
func DecodeCharLiteralValue(spelling []byte) (int64, error) {
	inner := spelling[1 : len(spelling)-1]
	if len(inner) == 0 {
		return 0, errEmptyCharLiteral
	}
	if inner[0] == '\\' {
		val, _, ok := DecodeEscape(inner)
		if !ok {
			return 0, errEmptyCharLiteral
		}
		return int64(val), nil
	}
	return int64(inner[0]), nil
}

// DecodeStringLiteralValue decodes a string_literal's spelling (quotes
// included) to its byte content, resolving escapes.
func DecodeStringLiteralValue(spelling []byte) []byte {
	inner := spelling[1 : len(spelling)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); {
		if inner[i] == '\\' && i+1 < len(inner) {
			val, n, ok := DecodeEscape(inner[i:])
			if ok {
				out = append(out, val)
				i += n
				continue
			}
		}
		out = append(out, inner[i])
		i++
	}
	return out
}

var errEmptyCharLiteral = charLiteralError("lexer: empty character constant")

type charLiteralError string

func (e charLiteralError) Error() string { return string(e) }
