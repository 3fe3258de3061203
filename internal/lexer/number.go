package lexer

import "github.com/standardbeagle/cptoyc/internal/token"

// lexNumber scans a numeric_constant: integer or floating, decimal,
// octal, or hex (spec §4.6 "Integer constants" / "Floating constants").
// The lexer only recognizes the spelling; internal/lexer.ParseNumericLiteral
// decodes its value afterward.
func (l *Lexer) lexNumber(tok *token.Token, start int) {
	l.cur = start
	base := 10

	if l.at(l.cur) == '0' && (l.at(l.cur+1) == 'x' || l.at(l.cur+1) == 'X') {
		base = 16
		l.cur += 2
		l.scanWhile(IsHexDigit)
	} else if l.at(l.cur) == '0' {
		base = 8
		l.cur++
		l.scanWhile(IsOctDigit)
	} else {
		l.scanWhile(IsDigit)
	}

	isFloat := false
	if l.at(l.cur) == '.' {
		isFloat = true
		l.cur++
		if base == 16 {
			l.scanWhile(IsHexDigit)
		} else {
			l.scanWhile(IsDigit)
		}
	}

	if base == 16 {
		if l.at(l.cur) == 'p' || l.at(l.cur) == 'P' {
			isFloat = true
			l.scanExponent()
		} else if isFloat {
			l.report(start, "hexadecimal floating constant requires an exponent")
		}
	} else if l.at(l.cur) == 'e' || l.at(l.cur) == 'E' {
		isFloat = true
		l.scanExponent()
	}

	if isFloat {
		if l.at(l.cur) == 'f' || l.at(l.cur) == 'F' || l.at(l.cur) == 'l' || l.at(l.cur) == 'L' {
			l.cur++
		}
	} else {
		l.scanIntegerSuffix()
	}

	tok.SetKind(token.NumericConstant)
	tok.SetLength(uint32(l.cur - start))
	tok.SetLocation(l.loc(start))
	tok.SetLiteralData(l.data[start:l.cur])
}

func (l *Lexer) scanWhile(pred func(byte) bool) {
	for pred(l.at(l.cur)) {
		l.cur++
	}
}

// scanExponent consumes the 'e'/'E'/'p'/'P' marker, an optional sign,
// and the required digit sequence.
func (l *Lexer) scanExponent() {
	l.cur++ // the e/E/p/P itself
	if l.at(l.cur) == '+' || l.at(l.cur) == '-' {
		l.cur++
	}
	l.scanWhile(IsDigit)
}

// scanIntegerSuffix consumes [uU], [lL], or [lL][lL] in any valid
// order (spec §4.6).
func (l *Lexer) scanIntegerSuffix() {
	sawU, longCount := false, 0
	for {
		c := l.at(l.cur)
		switch {
		case (c == 'u' || c == 'U') && !sawU:
			sawU = true
			l.cur++
		case (c == 'l' || c == 'L') && longCount < 2:
			longCount++
			l.cur++
		default:
			return
		}
	}
}
