// Package token defines the closed set of lexical token kinds, the
// Token value itself, and its per-token flag bits (spec §4.5 "Token
// kind registry" and the Token payload described in §4.6/§9).
//
// Grounded on TokenKinds.h/token.h: the enum ordering groups kinds by
// category (punctuators, keywords, literals, misc) purely for
// readability; nothing depends on numeric values beyond them being
// distinct and fitting in a byte, as the original's `KindLL : 8` bit
// field requires.
package token

// Kind identifies one lexical category. The zero value, Unknown, is
// never a meaningful token on its own; it is what a freshly
// default-constructed Token carries until the lexer fills it in.
type Kind uint8

const (
	Unknown Kind = iota
	EOF
	EOM // end of preprocessor directive ("end of macro" in the original)

	Identifier
	NumericConstant
	CharConstant
	StringLiteral
	WideStringLiteral
	AngleStringLiteral // <foo.h> spelling, only meaningful inside #include

	Comment    // only produced when SetKeepWhitespaceMode(true) is set
	Whitespace // run of spaces/tabs/newlines, only produced under the same mode

	// Punctuators.
	LSquare    // [
	RSquare    // ]
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	Period     // .
	Ellipsis   // ...
	Amp        // &
	AmpAmp     // &&
	AmpEqual   // &=
	Star       // *
	StarEqual  // *=
	Plus       // +
	PlusPlus   // ++
	PlusEqual  // +=
	Minus      // -
	MinusMinus // --
	MinusEqual // -=
	Arrow      // ->
	Tilde      // ~
	Exclaim    // !
	ExclaimEqual
	Slash
	SlashEqual
	Percent
	PercentEqual
	Less
	LessLess
	LessEqual
	LessLessEqual
	Greater
	GreaterGreater
	GreaterEqual
	GreaterGreaterEqual
	Caret
	CaretEqual
	Pipe
	PipePipe
	PipeEqual
	Question
	Colon
	Semi
	Equal
	EqualEqual
	Comma
	Hash     // #
	HashHash // ##

	// Keywords, retagged onto an Identifier's IdentifierInfo by AddKeywords.
	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInt
	KwLong
	KwRegister
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwBool     // _Bool, gated on LangOptions.Bool
	KwInline   // gated on LangOptions.C99
	KwRestrict // gated on LangOptions.C99

	numKinds
)

var names = [numKinds]string{
	Unknown:            "unknown",
	EOF:                "eof",
	EOM:                "eom",
	Identifier:         "identifier",
	NumericConstant:    "numeric_constant",
	CharConstant:       "char_constant",
	StringLiteral:      "string_literal",
	WideStringLiteral:  "wide_string_literal",
	AngleStringLiteral: "angle_string_literal",
	Comment:            "comment",
	Whitespace:         "whitespace",
	LSquare:            "l_square",
	RSquare:            "r_square",
	LParen:             "l_paren",
	RParen:             "r_paren",
	LBrace:             "l_brace",
	RBrace:             "r_brace",
	Period:             "period",
	Ellipsis:           "ellipsis",
	Amp:                "amp",
	AmpAmp:             "ampamp",
	AmpEqual:           "ampequal",
	Star:               "star",
	StarEqual:          "starequal",
	Plus:               "plus",
	PlusPlus:           "plusplus",
	PlusEqual:          "plusequal",
	Minus:              "minus",
	MinusMinus:         "minusminus",
	MinusEqual:         "minusequal",
	Arrow:              "arrow",
	Tilde:              "tilde",
	Exclaim:            "exclaim",
	ExclaimEqual:       "exclaimequal",
	Slash:              "slash",
	SlashEqual:         "slashequal",
	Percent:            "percent",
	PercentEqual:       "percentequal",
	Less:               "less",
	LessLess:           "lessless",
	LessEqual:          "lessequal",
	LessLessEqual:      "lesslessequal",
	Greater:            "greater",
	GreaterGreater:     "greatergreater",
	GreaterEqual:       "greaterequal",
	GreaterGreaterEqual: "greatergreaterequal",
	Caret:              "caret",
	CaretEqual:         "caretequal",
	Pipe:               "pipe",
	PipePipe:           "pipepipe",
	PipeEqual:          "pipeequal",
	Question:           "question",
	Colon:              "colon",
	Semi:               "semi",
	Equal:              "equal",
	EqualEqual:         "equalequal",
	Comma:              "comma",
	Hash:               "hash",
	HashHash:           "hashhash",
	KwAuto:             "auto",
	KwBreak:            "break",
	KwCase:             "case",
	KwChar:             "char",
	KwConst:            "const",
	KwContinue:         "continue",
	KwDefault:          "default",
	KwDo:               "do",
	KwDouble:           "double",
	KwElse:             "else",
	KwEnum:             "enum",
	KwExtern:           "extern",
	KwFloat:            "float",
	KwFor:              "for",
	KwGoto:             "goto",
	KwIf:               "if",
	KwInt:              "int",
	KwLong:             "long",
	KwRegister:         "register",
	KwReturn:           "return",
	KwShort:            "short",
	KwSigned:           "signed",
	KwSizeof:           "sizeof",
	KwStatic:           "static",
	KwStruct:           "struct",
	KwSwitch:           "switch",
	KwTypedef:          "typedef",
	KwUnion:            "union",
	KwUnsigned:         "unsigned",
	KwVoid:             "void",
	KwVolatile:         "volatile",
	KwWhile:            "while",
	KwBool:             "_Bool",
	KwInline:           "inline",
	KwRestrict:         "restrict",
}

var simpleSpellings = map[Kind]string{
	LSquare: "[", RSquare: "]", LParen: "(", RParen: ")",
	LBrace: "{", RBrace: "}", Period: ".", Ellipsis: "...",
	Amp: "&", AmpAmp: "&&", AmpEqual: "&=",
	Star: "*", StarEqual: "*=",
	Plus: "+", PlusPlus: "++", PlusEqual: "+=",
	Minus: "-", MinusMinus: "--", MinusEqual: "-=", Arrow: "->",
	Tilde: "~", Exclaim: "!", ExclaimEqual: "!=",
	Slash: "/", SlashEqual: "/=",
	Percent: "%", PercentEqual: "%=",
	Less: "<", LessLess: "<<", LessEqual: "<=", LessLessEqual: "<<=",
	Greater: ">", GreaterGreater: ">>", GreaterEqual: ">=", GreaterGreaterEqual: ">>=",
	Caret: "^", CaretEqual: "^=",
	Pipe: "|", PipePipe: "||", PipeEqual: "|=",
	Question: "?", Colon: ":", Semi: ";",
	Equal: "=", EqualEqual: "==", Comma: ",",
	Hash: "#", HashHash: "##",
}

var keywordKinds = map[string]Kind{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar,
	"const": KwConst, "continue": KwContinue, "default": KwDefault, "do": KwDo,
	"double": KwDouble, "else": KwElse, "enum": KwEnum, "extern": KwExtern,
	"float": KwFloat, "for": KwFor, "goto": KwGoto, "if": KwIf,
	"int": KwInt, "long": KwLong, "register": KwRegister, "return": KwReturn,
	"short": KwShort, "signed": KwSigned, "sizeof": KwSizeof, "static": KwStatic,
	"struct": KwStruct, "switch": KwSwitch, "typedef": KwTypedef, "union": KwUnion,
	"unsigned": KwUnsigned, "void": KwVoid, "volatile": KwVolatile, "while": KwWhile,
	"_Bool": KwBool, "inline": KwInline, "restrict": KwRestrict,
}

// Name returns kind's internal name (e.g. "l_square"). Used in dumps
// and tests, never in user-facing diagnostics.
func Name(kind Kind) string {
	if int(kind) >= len(names) {
		return "unknown"
	}
	return names[kind]
}

// SimpleSpelling returns the literal spelling of a punctuator kind, or
// ("", false) for identifier/literal/keyword/annotation kinds whose
// spelling must be read from the source text.
func SimpleSpelling(kind Kind) (string, bool) {
	s, ok := simpleSpellings[kind]
	return s, ok
}

// LookupKeyword returns the keyword kind for name gated by opts, or
// (Identifier, false) if name isn't a keyword under opts.
func LookupKeyword(name string, opts LangGate) (Kind, bool) {
	kind, ok := keywordKinds[name]
	if !ok {
		return Identifier, false
	}
	switch kind {
	case KwBool:
		if !opts.Bool {
			return Identifier, false
		}
	case KwInline, KwRestrict:
		if !opts.C99 {
			return Identifier, false
		}
	}
	return kind, true
}

// LangGate is the subset of language options that affects keyword
// recognition, kept minimal to avoid this package depending on
// internal/config.
type LangGate struct {
	C99  bool
	Bool bool
}

// IsLiteral reports whether kind carries literal text data rather than
// an IdentifierInfo or nothing.
func IsLiteral(kind Kind) bool {
	switch kind {
	case NumericConstant, CharConstant, StringLiteral, WideStringLiteral, AngleStringLiteral:
		return true
	}
	return false
}

// IsKeyword reports whether kind is one of the KwXxx constants.
func IsKeyword(kind Kind) bool {
	return kind >= KwAuto && kind < numKinds
}
