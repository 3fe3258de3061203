package lexer

import "github.com/standardbeagle/cptoyc/internal/token"

// classifyPunctuator performs greedy maximal-munch recognition of the
// punctuator starting at data[start], returning its kind and spelling
// length, or (token.Unknown, 0) if the byte isn't a punctuator at all.
//
// Spec §9 flags the original's ellipsis detection as reading
// data[start+2] without checking it equals '.'; this implementation
// verifies all three bytes before emitting Ellipsis, falling back to a
// lone Period otherwise.
func classifyPunctuator(data []byte, start int) (token.Kind, int) {
	at := func(i int) byte {
		if start+i >= len(data) {
			return 0
		}
		return data[start+i]
	}

	switch at(0) {
	case '[':
		return token.LSquare, 1
	case ']':
		return token.RSquare, 1
	case '(':
		return token.LParen, 1
	case ')':
		return token.RParen, 1
	case '{':
		return token.LBrace, 1
	case '}':
		return token.RBrace, 1
	case '?':
		return token.Question, 1
	case ':':
		return token.Colon, 1
	case ';':
		return token.Semi, 1
	case ',':
		return token.Comma, 1
	case '~':
		return token.Tilde, 1

	case '.':
		if at(1) == '.' && at(2) == '.' {
			return token.Ellipsis, 3
		}
		return token.Period, 1

	case '&':
		if at(1) == '&' {
			return token.AmpAmp, 2
		}
		if at(1) == '=' {
			return token.AmpEqual, 2
		}
		return token.Amp, 1

	case '*':
		if at(1) == '=' {
			return token.StarEqual, 2
		}
		return token.Star, 1

	case '+':
		if at(1) == '+' {
			return token.PlusPlus, 2
		}
		if at(1) == '=' {
			return token.PlusEqual, 2
		}
		return token.Plus, 1

	case '-':
		if at(1) == '-' {
			return token.MinusMinus, 2
		}
		if at(1) == '=' {
			return token.MinusEqual, 2
		}
		if at(1) == '>' {
			return token.Arrow, 2
		}
		return token.Minus, 1

	case '!':
		if at(1) == '=' {
			return token.ExclaimEqual, 2
		}
		return token.Exclaim, 1

	case '/':
		if at(1) == '=' {
			return token.SlashEqual, 2
		}
		return token.Slash, 1

	case '%':
		if at(1) == '=' {
			return token.PercentEqual, 2
		}
		return token.Percent, 1

	case '<':
		if at(1) == '<' && at(2) == '=' {
			return token.LessLessEqual, 3
		}
		if at(1) == '<' {
			return token.LessLess, 2
		}
		if at(1) == '=' {
			return token.LessEqual, 2
		}
		return token.Less, 1

	case '>':
		if at(1) == '>' && at(2) == '=' {
			return token.GreaterGreaterEqual, 3
		}
		if at(1) == '>' {
			return token.GreaterGreater, 2
		}
		if at(1) == '=' {
			return token.GreaterEqual, 2
		}
		return token.Greater, 1

	case '^':
		if at(1) == '=' {
			return token.CaretEqual, 2
		}
		return token.Caret, 1

	case '|':
		if at(1) == '|' {
			return token.PipePipe, 2
		}
		if at(1) == '=' {
			return token.PipeEqual, 2
		}
		return token.Pipe, 1

	case '=':
		if at(1) == '=' {
			return token.EqualEqual, 2
		}
		return token.Equal, 1

	case '#':
		if at(1) == '#' {
			return token.HashHash, 2
		}
		return token.Hash, 1
	}

	return token.Unknown, 0
}
