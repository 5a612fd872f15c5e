package types

import (
	"strconv"

	"github.com/pontaoski/envyc/interner"
)

type TokenKind int

const (
	EOF TokenKind = iota
	Whitespace

	VoidKeyword
	IntKeyword
	FloatKeyword
	BooleanKeyword
	StringKeyword
	CharKeyword

	IntegerLiteral
	FloatLiteral
	BooleanLiteral
	StringLiteral
	CharLiteral
	Identifier

	LeftParenthesis
	RightParenthesis
	LeftCurlyBrace
	RightCurlyBrace
	LeftAngleBracket
	RightAngleBracket
	Plus
	Minus
	Star
	Slash
	PercentSign
	EqualSign
	ColonEqualSign
	ExclamationEqualSign
	LessThanEqualSign
	GreaterThanEqualSign
	Comma
	Colon
	ColonColon

	Not
	Or
	And
	Let
	If
	Then
	Else
	While
	Define
)

var kindNames = map[TokenKind]string{
	EOF:                  "end of file",
	Whitespace:           "whitespace",
	VoidKeyword:          "Void",
	IntKeyword:           "Int",
	FloatKeyword:         "Float",
	BooleanKeyword:       "Boolean",
	StringKeyword:        "String",
	CharKeyword:          "Char",
	IntegerLiteral:       "integer literal",
	FloatLiteral:         "float literal",
	BooleanLiteral:       "boolean literal",
	StringLiteral:        "string literal",
	CharLiteral:          "char literal",
	Identifier:           "identifier",
	LeftParenthesis:      "(",
	RightParenthesis:     ")",
	LeftCurlyBrace:       "{",
	RightCurlyBrace:      "}",
	LeftAngleBracket:     "<",
	RightAngleBracket:    ">",
	Plus:                 "+",
	Minus:                "-",
	Star:                 "*",
	Slash:                "/",
	PercentSign:          "%",
	EqualSign:            "=",
	ColonEqualSign:       ":=",
	ExclamationEqualSign: "!=",
	LessThanEqualSign:    "<=",
	GreaterThanEqualSign: ">=",
	Comma:                ",",
	Colon:                ":",
	ColonColon:           "::",
	Not:                  "not",
	Or:                   "or",
	And:                  "and",
	Let:                  "let",
	If:                   "if",
	Then:                 "then",
	Else:                 "else",
	While:                "while",
	Define:               "define",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return "TokenKind(" + strconv.Itoa(int(t)) + ")"
}

// Token is a spanned token. Only the payload field matching Kind is set:
// Int, Float, Bool, Rune (char literals and whitespace) or ID (strings and
// identifiers, as interner ids).
type Token struct {
	Kind     TokenKind
	Location Span

	Int   int64
	Float float64
	Bool  bool
	Rune  rune
	ID    interner.ID

	// Raw is the literal as written, set for numbers so "007" and "1.50"
	// render unchanged.
	Raw string
}

// Text renders the token back to source form.
func (t Token) Text(names *interner.Interner[string]) string {
	switch t.Kind {
	case EOF:
		return ""
	case Whitespace:
		return string(t.Rune)
	case IntegerLiteral:
		if t.Raw != "" {
			return t.Raw
		}
		return strconv.FormatInt(t.Int, 10)
	case FloatLiteral:
		if t.Raw != "" {
			return t.Raw
		}
		text := strconv.FormatFloat(t.Float, 'f', -1, 64)
		for _, r := range text {
			if r == '.' {
				return text
			}
		}
		return text + ".0"
	case BooleanLiteral:
		return strconv.FormatBool(t.Bool)
	case CharLiteral:
		return "'" + string(t.Rune) + "'"
	case StringLiteral:
		return `"` + names.Get(t.ID) + `"`
	case Identifier:
		return names.Get(t.ID)
	}
	return t.Kind.String()
}
