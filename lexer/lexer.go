package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "lexer")

var keywords = map[string]types.TokenKind{
	"Void":    types.VoidKeyword,
	"Int":     types.IntKeyword,
	"Float":   types.FloatKeyword,
	"Boolean": types.BooleanKeyword,
	"String":  types.StringKeyword,
	"Char":    types.CharKeyword,
	"not":     types.Not,
	"or":      types.Or,
	"and":     types.And,
	"let":     types.Let,
	"if":      types.If,
	"then":    types.Then,
	"else":    types.Else,
	"while":   types.While,
	"define":  types.Define,
}

var operators = map[string]types.TokenKind{
	":=": types.ColonEqualSign,
	"::": types.ColonColon,
	"!=": types.ExclamationEqualSign,
	"<=": types.LessThanEqualSign,
	">=": types.GreaterThanEqualSign,
}

var punctuation = map[rune]types.TokenKind{
	'(': types.LeftParenthesis,
	')': types.RightParenthesis,
	'{': types.LeftCurlyBrace,
	'}': types.RightCurlyBrace,
	'<': types.LeftAngleBracket,
	'>': types.RightAngleBracket,
	'+': types.Plus,
	'-': types.Minus,
	'*': types.Star,
	'/': types.Slash,
	'%': types.PercentSign,
	'=': types.EqualSign,
	',': types.Comma,
	':': types.Colon,
}

// Lexer scans a source buffer into tokens. Lexical errors are collected and
// scanning carries on past them.
type Lexer struct {
	src   []byte
	pos   types.Position
	names *interner.Interner[string]
	errs  []error
}

func NewLexer(src []byte, filename string, names *interner.Interner[string]) *Lexer {
	return &Lexer{
		src:   src,
		pos:   types.Position{Line: 1, Column: 1, Offset: 0, Filename: filename},
		names: names,
	}
}

// Tokens scans the whole buffer. Whitespace is kept as tokens; the final EOF
// token is not included.
func (l *Lexer) Tokens() ([]types.Token, []error) {
	var toks []types.Token
	for {
		tok := l.Lex()
		if tok.Kind == types.EOF {
			break
		}
		toks = append(toks, tok)
	}

	plog.Debugf("%s: %d tokens, %d errors", l.pos.Filename, len(toks), len(l.errs))
	return toks, l.errs
}

func (l *Lexer) peek() (rune, int) {
	if l.pos.Offset >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRune(l.src[l.pos.Offset:])
}

func (l *Lexer) peekSecond() (rune, int) {
	_, size := l.peek()
	if size == 0 || l.pos.Offset+size >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRune(l.src[l.pos.Offset+size:])
}

func (l *Lexer) advance() rune {
	r, size := l.peek()
	l.pos.Offset += size
	if r == '\n' {
		l.newline()
	} else {
		l.pos.Column++
	}
	return r
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 1
}

func (l *Lexer) span(from types.Position) types.Span {
	return types.Span{From: from, To: l.pos}
}

func (l *Lexer) kinded(from types.Position, t types.TokenKind) types.Token {
	return types.Token{
		Kind:     t,
		Location: l.span(from),
	}
}

func (l *Lexer) fail(err error) {
	plog.Debugf("%v", err)
	l.errs = append(l.errs, err)
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Lex returns the next token, or an EOF token once the buffer is exhausted.
func (l *Lexer) Lex() types.Token {
	for {
		from := l.pos
		r, size := l.peek()
		if size == 0 {
			return l.kinded(from, types.EOF)
		}

		switch {
		case unicode.IsSpace(r):
			l.advance()
			tok := l.kinded(from, types.Whitespace)
			tok.Rune = r
			return tok
		case firstChar(r):
			return l.lexIdent(from)
		case isDigit(r):
			if tok, ok := l.lexNumber(from); ok {
				return tok
			}
			continue
		case r == '"':
			if tok, ok := l.lexString(from); ok {
				return tok
			}
			continue
		case r == '\'':
			if tok, ok := l.lexChar(from); ok {
				return tok
			}
			continue
		}

		if second, n := l.peekSecond(); n > 0 {
			if kind, ok := operators[string([]rune{r, second})]; ok {
				l.advance()
				l.advance()
				return l.kinded(from, kind)
			}
		}
		if kind, ok := punctuation[r]; ok {
			l.advance()
			return l.kinded(from, kind)
		}

		l.advance()
		l.fail(errors.UnrecognizedCharacter{
			Char:     r,
			Location: l.span(from),
		})
	}
}

func (l *Lexer) lexIdent(from types.Position) types.Token {
	for {
		r, size := l.peek()
		if size == 0 || !otherChar(r) {
			break
		}
		l.advance()
	}

	lit := string(l.src[from.Offset:l.pos.Offset])
	switch lit {
	case "true", "false":
		tok := l.kinded(from, types.BooleanLiteral)
		tok.Bool = lit == "true"
		return tok
	}
	if kind, ok := keywords[lit]; ok {
		return l.kinded(from, kind)
	}

	tok := l.kinded(from, types.Identifier)
	tok.ID = l.names.Insert(lit)
	return tok
}

// lexNumber scans digits with at most one '.', which must be followed by a
// digit to count as part of the literal.
func (l *Lexer) lexNumber(from types.Position) (types.Token, bool) {
	isFloat := false
	for {
		r, size := l.peek()
		if size == 0 {
			break
		}
		if isDigit(r) {
			l.advance()
			continue
		}
		if r == '.' && !isFloat {
			if next, n := l.peekSecond(); n > 0 && isDigit(next) {
				isFloat = true
				l.advance()
				continue
			}
		}
		break
	}

	lit := string(l.src[from.Offset:l.pos.Offset])
	if isFloat {
		value, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			l.fail(errors.InvalidLiteral{Kind: types.FloatLiteral, Text: lit, Location: l.span(from)})
			return types.Token{}, false
		}
		tok := l.kinded(from, types.FloatLiteral)
		tok.Float = value
		tok.Raw = lit
		return tok, true
	}

	value, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		l.fail(errors.InvalidLiteral{Kind: types.IntegerLiteral, Text: lit, Location: l.span(from)})
		return types.Token{}, false
	}
	tok := l.kinded(from, types.IntegerLiteral)
	tok.Int = value
	tok.Raw = lit
	return tok, true
}

func (l *Lexer) lexString(from types.Position) (types.Token, bool) {
	l.advance()
	for {
		r, size := l.peek()
		if size == 0 {
			l.fail(errors.UnterminatedLiteral{Kind: types.StringLiteral, Location: l.span(from)})
			return types.Token{}, false
		}
		l.advance()
		if r == '"' {
			break
		}
	}

	lit := string(l.src[from.Offset+1 : l.pos.Offset-1])
	tok := l.kinded(from, types.StringLiteral)
	tok.ID = l.names.Insert(lit)
	return tok, true
}

func (l *Lexer) lexChar(from types.Position) (types.Token, bool) {
	l.advance()
	r, size := l.peek()
	if size == 0 || r == '\'' {
		if size != 0 {
			l.advance()
		}
		l.fail(errors.UnterminatedLiteral{Kind: types.CharLiteral, Location: l.span(from)})
		return types.Token{}, false
	}
	l.advance()

	if closing, n := l.peek(); n == 0 || closing != '\'' {
		l.fail(errors.UnterminatedLiteral{Kind: types.CharLiteral, Location: l.span(from)})
		return types.Token{}, false
	}
	l.advance()

	tok := l.kinded(from, types.CharLiteral)
	tok.Rune = r
	return tok, true
}
