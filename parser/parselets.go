package parser

import (
	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/types"
)

// Binding powers, lowest first.
const (
	PrecedenceLowest = iota
	PrecedenceSum
	PrecedenceProduct
	PrecedencePrefix
)

func registerDefaults(p *Parser) {
	p.RegisterPrefix(types.IntegerLiteral, IntParselet{})
	p.RegisterPrefix(types.FloatLiteral, FloatParselet{})
	p.RegisterPrefix(types.BooleanLiteral, BooleanParselet{})
	p.RegisterPrefix(types.StringLiteral, StringParselet{})
	p.RegisterPrefix(types.CharLiteral, CharParselet{})
	p.RegisterPrefix(types.Identifier, IdentifierParselet{})
	p.RegisterPrefix(types.LeftParenthesis, GroupParselet{})
	p.RegisterPrefix(types.LeftCurlyBrace, BlockParselet{})
	p.RegisterPrefix(types.If, IfParselet{})
	p.RegisterPrefix(types.Let, LetParselet{})

	p.RegisterPrefix(types.Plus, UnaryParselet{ast.UnaryPlus})
	p.RegisterPrefix(types.Minus, UnaryParselet{ast.UnaryMinus})
	p.RegisterPrefix(types.Not, UnaryParselet{ast.UnaryNot})

	p.RegisterInfix(types.Plus, BinaryParselet{Operation: ast.BinaryPlus, Binding: PrecedenceSum})
	p.RegisterInfix(types.Minus, BinaryParselet{Operation: ast.BinaryMinus, Binding: PrecedenceSum})
	p.RegisterInfix(types.Star, BinaryParselet{Operation: ast.BinaryMultiply, Binding: PrecedenceProduct})
	p.RegisterInfix(types.Slash, BinaryParselet{Operation: ast.BinaryDivide, Binding: PrecedenceProduct})
}

type IntParselet struct{}

func (IntParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.Int(tok.Int)}, nil
}

type FloatParselet struct{}

func (FloatParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.Float(tok.Float)}, nil
}

type BooleanParselet struct{}

func (BooleanParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.Boolean(tok.Bool)}, nil
}

type StringParselet struct{}

func (StringParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.String(tok.ID)}, nil
}

type CharParselet struct{}

func (CharParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.Char(tok.Rune)}, nil
}

type IdentifierParselet struct{}

func (IdentifierParselet) Parse(_ *Parser, tok types.Token) (ast.Expression, error) {
	return ast.Expression{Location: tok.Location, Kind: ast.Identifier(tok.ID)}, nil
}

// GroupParselet parses `( expression )` and yields the inner expression.
type GroupParselet struct{}

func (GroupParselet) Parse(p *Parser, _ types.Token) (ast.Expression, error) {
	inner, err := p.ParseExpression(PrecedenceLowest)
	if err != nil {
		return ast.Expression{}, err
	}
	if _, err := p.Expect(types.RightParenthesis); err != nil {
		return ast.Expression{}, err
	}
	return inner, nil
}

// BlockParselet parses `{ expression* }`.
type BlockParselet struct{}

func (BlockParselet) Parse(p *Parser, tok types.Token) (ast.Expression, error) {
	var body ast.Block
	for !p.PeekIs(types.RightCurlyBrace) {
		if p.done() {
			_, err := p.Expect(types.RightCurlyBrace)
			return ast.Expression{}, err
		}
		expr, err := p.ParseExpression(PrecedenceLowest)
		if err != nil {
			return ast.Expression{}, err
		}
		body = append(body, expr)
	}
	p.pos++

	return ast.Expression{Location: tok.Location, Kind: body}, nil
}

type UnaryParselet struct {
	Operation ast.UnaryOperation
}

func (u UnaryParselet) Parse(p *Parser, tok types.Token) (ast.Expression, error) {
	operand, err := p.ParseExpression(PrecedencePrefix)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{
		Location: tok.Location,
		Kind:     ast.Unary{Operation: u.Operation, Expression: operand},
	}, nil
}

type BinaryParselet struct {
	Operation ast.BinaryOperation
	Binding   int
	Right     bool
}

func (b BinaryParselet) Precedence() int        { return b.Binding }
func (b BinaryParselet) RightAssociative() bool { return b.Right }

func (b BinaryParselet) Parse(p *Parser, left ast.Expression, tok types.Token) (ast.Expression, error) {
	right, err := p.ParseExpression(b.Binding)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{
		Location: tok.Location,
		Kind:     ast.Binary{Operation: b.Operation, Left: left, Right: right},
	}, nil
}

// IfParselet parses `if c then a` with an optional `else b`.
type IfParselet struct{}

func (IfParselet) Parse(p *Parser, tok types.Token) (ast.Expression, error) {
	condition, err := p.ParseExpression(PrecedenceLowest)
	if err != nil {
		return ast.Expression{}, err
	}
	if _, err := p.Expect(types.Then); err != nil {
		return ast.Expression{}, err
	}
	then, err := p.ParseExpression(PrecedenceLowest)
	if err != nil {
		return ast.Expression{}, err
	}

	node := ast.If{Condition: condition, Then: then}
	if p.PeekIs(types.Else) {
		p.pos++
		elseExpr, err := p.ParseExpression(PrecedenceLowest)
		if err != nil {
			return ast.Expression{}, err
		}
		node.Else = &elseExpr
	}

	return ast.Expression{Location: tok.Location, Kind: node}, nil
}

// LetParselet parses `let name = value` and `let name: Type = value`.
type LetParselet struct{}

func (LetParselet) Parse(p *Parser, tok types.Token) (ast.Expression, error) {
	nameTok, err := p.Expect(types.Identifier)
	if err != nil {
		return ast.Expression{}, err
	}

	node := ast.Let{Name: ast.Name{Location: nameTok.Location, ID: nameTok.ID}}
	if p.PeekIs(types.Colon) {
		p.pos++
		given, _, err := p.parseType()
		if err != nil {
			return ast.Expression{}, err
		}
		node.GivenType = &given
	}

	if _, err := p.Expect(types.EqualSign); err != nil {
		return ast.Expression{}, err
	}
	node.Value, err = p.ParseExpression(PrecedenceLowest)
	if err != nil {
		return ast.Expression{}, err
	}

	return ast.Expression{Location: tok.Location, Kind: node}, nil
}
