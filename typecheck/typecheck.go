// Package typecheck resolves the type of every node of a parsed program and
// builds the typed tree.
//
// Independent top-level items are all checked and their errors collected;
// inside one item the first error stops the check.
package typecheck

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/hashicorp/go-set/v2"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/environment"
	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "typecheck")

// numeric types accept unary +/- and the four arithmetic operators.
var numeric = set.From([]types.Type{types.Int, types.Float})

type Checker struct {
	env   *environment.Environment[types.Type]
	names *interner.Interner[string]
}

// New returns a checker whose environment holds a single root scope. Each
// function is checked in its own scope on top of it; top-level expressions
// bind into the root scope.
func New(names *interner.Interner[string]) *Checker {
	env := environment.New[types.Type]()
	env.NewScope()
	return &Checker{env: env, names: names}
}

func (c *Checker) Environment() *environment.Environment[types.Type] {
	return c.env
}

// CheckProgram checks every function, even after one fails. When errs is
// non-empty the program as a whole failed; the returned program then holds
// only the functions that checked.
func (c *Checker) CheckProgram(program ast.Program) (typed ast.TypedProgram, errs []error) {
	for _, fn := range program.Functions {
		checked, err := c.CheckFunction(fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		typed.Functions = append(typed.Functions, checked)
	}
	return typed, errs
}

// CheckFunction checks fn in a fresh scope holding its parameters. The
// return type is the type of the body.
func (c *Checker) CheckFunction(fn ast.Function) (ast.TypedFunction, error) {
	c.env.NewScope()
	defer c.env.RemoveTopScope()

	proto := ast.TypedPrototype{
		Location: fn.Prototype.Location,
		Name:     fn.Prototype.Name,
	}
	for _, param := range fn.Prototype.Parameters {
		if param.Type == types.Void {
			return ast.TypedFunction{}, errors.IllegalType{Type: param.Type, Location: param.Location}
		}
		c.env.Define(param.Name, param.Type)
		proto.Parameters = append(proto.Parameters, ast.TypedParameter(param))
	}

	body, err := c.CheckExpression(fn.Body)
	if err != nil {
		return ast.TypedFunction{}, err
	}
	proto.ReturnType = body.Type

	plog.Debugf("checked %s", proto.Signature(c.names))
	return ast.TypedFunction{Prototype: proto, Body: body}, nil
}

// CheckExpression checks expr in the current scope.
func (c *Checker) CheckExpression(expr ast.Expression) (ast.TypedExpression, error) {
	typed := ast.TypedExpression{Location: expr.Location}

	switch kind := expr.Kind.(type) {
	case ast.Int:
		typed.Type, typed.Kind = types.Int, kind
	case ast.Float:
		typed.Type, typed.Kind = types.Float, kind
	case ast.Boolean:
		typed.Type, typed.Kind = types.Boolean, kind
	case ast.Char:
		typed.Type, typed.Kind = types.Char, kind
	case ast.String:
		typed.Type, typed.Kind = types.String, kind
	case ast.Identifier:
		ty, ok := c.env.Get(interner.ID(kind))
		if !ok {
			return typed, errors.UndefinedVariable{
				Name:     c.names.Get(interner.ID(kind)),
				Location: expr.Location,
			}
		}
		typed.Type, typed.Kind = ty, kind
	case ast.Unary:
		return c.checkUnary(expr.Location, kind)
	case ast.Binary:
		return c.checkBinary(expr.Location, kind)
	case ast.If:
		return c.checkIf(expr.Location, kind)
	case ast.Let:
		return c.checkLet(expr.Location, kind)
	case ast.Block:
		return c.checkBlock(expr.Location, kind)
	default:
		panic("typecheck: unhandled expression kind")
	}

	return typed, nil
}

func (c *Checker) checkUnary(span types.Span, node ast.Unary) (ast.TypedExpression, error) {
	operand, err := c.CheckExpression(node.Expression)
	if err != nil {
		return ast.TypedExpression{}, err
	}

	ok := false
	switch node.Operation {
	case ast.UnaryPlus, ast.UnaryMinus:
		ok = numeric.Contains(operand.Type)
	case ast.UnaryNot:
		ok = operand.Type == types.Boolean
	}
	if !ok {
		return ast.TypedExpression{}, errors.UnsupportedOperation{
			Operation: node.Operation.String(),
			Location:  span,
			Operands:  []errors.Operand{{Location: operand.Location, Type: operand.Type}},
		}
	}

	return ast.TypedExpression{
		Location: span,
		Type:     operand.Type,
		Kind:     ast.TypedUnary{Operation: node.Operation, Expression: operand},
	}, nil
}

// checkBinary allows arithmetic on two Ints or two Floats. There is no
// implicit conversion between them.
func (c *Checker) checkBinary(span types.Span, node ast.Binary) (ast.TypedExpression, error) {
	left, err := c.CheckExpression(node.Left)
	if err != nil {
		return ast.TypedExpression{}, err
	}
	right, err := c.CheckExpression(node.Right)
	if err != nil {
		return ast.TypedExpression{}, err
	}

	if left.Type != right.Type || !numeric.Contains(left.Type) {
		return ast.TypedExpression{}, errors.UnsupportedOperation{
			Operation: node.Operation.String(),
			Location:  span,
			Operands: []errors.Operand{
				{Location: left.Location, Type: left.Type},
				{Location: right.Location, Type: right.Type},
			},
		}
	}

	return ast.TypedExpression{
		Location: span,
		Type:     left.Type,
		Kind:     ast.TypedBinary{Operation: node.Operation, Left: left, Right: right},
	}, nil
}

func (c *Checker) checkIf(span types.Span, node ast.If) (ast.TypedExpression, error) {
	condition, err := c.CheckExpression(node.Condition)
	if err != nil {
		return ast.TypedExpression{}, err
	}
	if condition.Type != types.Boolean {
		return ast.TypedExpression{}, errors.TypeMismatch{
			Expected: types.Boolean,
			Actual:   condition.Type,
			Location: condition.Location,
		}
	}

	then, err := c.CheckExpression(node.Then)
	if err != nil {
		return ast.TypedExpression{}, err
	}

	typed := ast.TypedIf{Condition: condition, Then: then}
	if node.Else == nil {
		return ast.TypedExpression{Location: span, Type: types.Void, Kind: typed}, nil
	}

	elseExpr, err := c.CheckExpression(*node.Else)
	if err != nil {
		return ast.TypedExpression{}, err
	}
	if then.Type != elseExpr.Type {
		return ast.TypedExpression{}, errors.ConflictingType{
			First:          then.Type,
			FirstLocation:  then.Location,
			Second:         elseExpr.Type,
			SecondLocation: elseExpr.Location,
		}
	}
	typed.Else = &elseExpr

	return ast.TypedExpression{Location: span, Type: then.Type, Kind: typed}, nil
}

func (c *Checker) checkLet(span types.Span, node ast.Let) (ast.TypedExpression, error) {
	value, err := c.CheckExpression(node.Value)
	if err != nil {
		return ast.TypedExpression{}, err
	}
	if node.GivenType != nil && *node.GivenType != value.Type {
		return ast.TypedExpression{}, errors.ConflictingType{
			First:          *node.GivenType,
			FirstLocation:  node.Name.Location,
			Second:         value.Type,
			SecondLocation: value.Location,
		}
	}

	c.env.Define(node.Name.ID, value.Type)
	return ast.TypedExpression{
		Location: span,
		Type:     value.Type,
		Kind:     ast.TypedLet{Name: node.Name, GivenType: node.GivenType, Value: value},
	}, nil
}

// checkBlock checks each expression in order and stops at the first error.
// A block does not open a scope of its own.
func (c *Checker) checkBlock(span types.Span, node ast.Block) (ast.TypedExpression, error) {
	block := make(ast.TypedBlock, 0, len(node))
	for _, expr := range node {
		typed, err := c.CheckExpression(expr)
		if err != nil {
			return ast.TypedExpression{}, err
		}
		block = append(block, typed)
	}

	ty := types.Void
	if len(block) > 0 {
		ty = block[len(block)-1].Type
	}
	return ast.TypedExpression{Location: span, Type: ty, Kind: block}, nil
}
