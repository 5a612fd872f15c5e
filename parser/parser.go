// Package parser turns a whitespace-free token slice into an untyped tree.
//
// Expressions are parsed by precedence climbing over a registry of
// parselets: every token kind has at most one prefix parselet, which starts
// an expression, and at most one infix parselet, which extends the
// expression to its left. New operators are added by registering a parselet;
// the core loop in ParseExpression never changes.
package parser

import (
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "parser")

// PrefixParselet builds an expression starting at tok, which has already
// been consumed.
type PrefixParselet interface {
	Parse(p *Parser, tok types.Token) (ast.Expression, error)
}

// InfixParselet extends left with the operator tok, which has already been
// consumed.
type InfixParselet interface {
	Parse(p *Parser, left ast.Expression, tok types.Token) (ast.Expression, error)
	Precedence() int
	RightAssociative() bool
}

type Parser struct {
	tokens []types.Token
	pos    int
	names  *interner.Interner[string]

	prefix map[types.TokenKind]PrefixParselet
	infix  map[types.TokenKind]InfixParselet
}

// NewParser returns a parser over tokens with the default grammar
// registered. tokens must not contain whitespace.
func NewParser(tokens []types.Token, names *interner.Interner[string]) *Parser {
	p := &Parser{
		tokens: tokens,
		names:  names,
		prefix: make(map[types.TokenKind]PrefixParselet),
		infix:  make(map[types.TokenKind]InfixParselet),
	}
	registerDefaults(p)
	return p
}

// RegisterPrefix sets the prefix parselet for kind, replacing any earlier one.
func (p *Parser) RegisterPrefix(kind types.TokenKind, parselet PrefixParselet) {
	p.prefix[kind] = parselet
}

// RegisterInfix sets the infix parselet for kind, replacing any earlier one.
func (p *Parser) RegisterInfix(kind types.TokenKind, parselet InfixParselet) {
	p.infix[kind] = parselet
}

func (p *Parser) Names() *interner.Interner[string] {
	return p.names
}

func (p *Parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) eofSpan() types.Span {
	if len(p.tokens) == 0 {
		return types.Span{}
	}
	end := p.tokens[len(p.tokens)-1].Location.To
	return types.Span{From: end, To: end}
}

func fail(err error) error {
	plog.Debugf("%v", err)
	return tracerr.Wrap(err)
}

// Peek returns the next token without consuming it.
func (p *Parser) Peek() (types.Token, bool) {
	if p.done() {
		return types.Token{Kind: types.EOF, Location: p.eofSpan()}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	tok, ok := p.Peek()
	if !ok {
		return false
	}
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// Consume returns the next token, failing at the end of input.
func (p *Parser) Consume(expected string) (types.Token, error) {
	tok, ok := p.Peek()
	if !ok {
		return tok, fail(errors.UnexpectedEOF{Expected: expected, Location: tok.Location})
	}
	p.pos++
	return tok, nil
}

// Expect consumes the next token if it has kind k.
func (p *Parser) Expect(k types.TokenKind) (types.Token, error) {
	tok, ok := p.Peek()
	if !ok {
		return tok, fail(errors.UnexpectedEOF{Expected: k.String(), Location: tok.Location})
	}
	if tok.Kind != k {
		return tok, fail(errors.ExpectedKindGotKind{
			Expected: k,
			Got:      tok.Kind,
			Location: tok.Location,
		})
	}
	p.pos++
	return tok, nil
}

// ExpectOneOf consumes the next token if its kind is any of k.
func (p *Parser) ExpectOneOf(k ...types.TokenKind) (types.Token, error) {
	tok, ok := p.Peek()
	if !ok {
		return tok, fail(errors.UnexpectedEOF{Expected: "one of " + kindList(k), Location: tok.Location})
	}
	for _, kind := range k {
		if tok.Kind == kind {
			p.pos++
			return tok, nil
		}
	}
	return tok, fail(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func kindList(k []types.TokenKind) string {
	names := make([]string, 0, len(k))
	for _, kind := range k {
		names = append(names, kind.String())
	}
	return strings.Join(names, ", ")
}

// ParseExpression parses an expression whose infix operators all bind
// tighter than precedence. An operator of equal precedence is only absorbed
// when it is right-associative.
func (p *Parser) ParseExpression(precedence int) (ast.Expression, error) {
	tok, ok := p.Peek()
	if !ok {
		return ast.Expression{}, fail(errors.UnexpectedEOF{Expected: "expression", Location: tok.Location})
	}
	prefix, ok := p.prefix[tok.Kind]
	if !ok {
		return ast.Expression{}, fail(errors.UnexpectedToken{Got: tok.Kind, Location: tok.Location})
	}
	p.pos++

	left, err := prefix.Parse(p, tok)
	if err != nil {
		return ast.Expression{}, err
	}

	for {
		next, ok := p.Peek()
		if !ok {
			break
		}
		infix, ok := p.infix[next.Kind]
		if !ok {
			break
		}
		prec := infix.Precedence()
		if prec < precedence || (prec == precedence && !infix.RightAssociative()) {
			break
		}
		p.pos++

		left, err = infix.Parse(p, left, next)
		if err != nil {
			return ast.Expression{}, err
		}
	}

	return left, nil
}

// ParseExpressions parses a sequence of top-level expressions. A failed
// expression is recorded and parsing resumes after it.
func (p *Parser) ParseExpressions() ([]ast.Expression, []error) {
	var exprs []ast.Expression
	var errs []error

	for !p.done() {
		start := p.pos
		expr, err := p.ParseExpression(PrecedenceLowest)
		if err != nil {
			errs = append(errs, err)
			if p.pos == start {
				p.pos++
			}
			continue
		}
		exprs = append(exprs, expr)
	}

	return exprs, errs
}
