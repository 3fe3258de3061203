package lexer

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsOctDigit reports whether c is an octal digit.
func IsOctDigit(c byte) bool { return c >= '0' && c <= '7' }

// IsHexDigit reports whether c is a hex digit. Spec §9 flags the
// original's IsHexDigit as accepting the whole A-Z range; this
// implementation only accepts A-F/a-f, the faithful fix.
func IsHexDigit(c byte) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsIdentifierHead reports whether c can start an identifier.
func IsIdentifierHead(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdentifierBody reports whether c can continue an identifier.
func IsIdentifierBody(c byte) bool {
	return IsIdentifierHead(c) || IsDigit(c)
}

// IsHorizontalWhitespace reports whether c is a space or tab.
func IsHorizontalWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsVerticalWhitespace reports whether c is form-feed or vertical tab,
// treated as horizontal whitespace for column purposes but never a
// line terminator.
func IsVerticalWhitespace(c byte) bool {
	return c == '\f' || c == '\v'
}
