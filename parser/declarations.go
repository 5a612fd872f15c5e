package parser

import (
	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/types"
)

var typeKeywords = []types.TokenKind{
	types.VoidKeyword,
	types.IntKeyword,
	types.FloatKeyword,
	types.BooleanKeyword,
	types.StringKeyword,
	types.CharKeyword,
}

func (p *Parser) parseType() (types.Type, types.Span, error) {
	tok, err := p.ExpectOneOf(typeKeywords...)
	if err != nil {
		return types.Void, tok.Location, err
	}
	ty, _ := types.TypeOfKeyword(tok.Kind)
	return ty, tok.Location, nil
}

// parseParameter parses `name: Type`.
func (p *Parser) parseParameter() (ast.Parameter, error) {
	name, err := p.Expect(types.Identifier)
	if err != nil {
		return ast.Parameter{}, err
	}
	if _, err := p.Expect(types.Colon); err != nil {
		return ast.Parameter{}, err
	}
	ty, _, err := p.parseType()
	if err != nil {
		return ast.Parameter{}, err
	}
	return ast.Parameter{Location: name.Location, Name: name.ID, Type: ty}, nil
}

// ParseFunction parses `define name(a: Type, ...) = body`.
func (p *Parser) ParseFunction() (ast.Function, error) {
	if _, err := p.Expect(types.Define); err != nil {
		return ast.Function{}, err
	}
	name, err := p.Expect(types.Identifier)
	if err != nil {
		return ast.Function{}, err
	}
	if _, err := p.Expect(types.LeftParenthesis); err != nil {
		return ast.Function{}, err
	}

	proto := ast.Prototype{Location: name.Location, Name: name.ID}
	if p.PeekIs(types.RightParenthesis) {
		p.pos++
	} else {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return ast.Function{}, err
			}
			proto.Parameters = append(proto.Parameters, param)

			sep, err := p.ExpectOneOf(types.Comma, types.RightParenthesis)
			if err != nil {
				return ast.Function{}, err
			}
			if sep.Kind == types.RightParenthesis {
				break
			}
		}
	}

	if _, err := p.Expect(types.EqualSign); err != nil {
		return ast.Function{}, err
	}
	body, err := p.ParseExpression(PrecedenceLowest)
	if err != nil {
		return ast.Function{}, err
	}

	plog.Debugf("parsed function %s with %d parameters", p.names.Get(name.ID), len(proto.Parameters))
	return ast.Function{Prototype: proto, Body: body}, nil
}

// ParseProgram parses every top-level declaration. A structural error aborts
// only the declaration it occurs in; parsing resumes at the next `define`.
func (p *Parser) ParseProgram() (ast.Program, []error) {
	var program ast.Program
	var errs []error

	for !p.done() {
		start := p.pos
		fn, err := p.ParseFunction()
		if err != nil {
			errs = append(errs, err)
			p.skipToDefine(start)
			continue
		}
		program.Functions = append(program.Functions, fn)
	}

	return program, errs
}

func (p *Parser) skipToDefine(start int) {
	if p.pos == start {
		p.pos++
	}
	for !p.done() && !p.PeekIs(types.Define) {
		p.pos++
	}
}
