// Package artifact serializes a checked program with msgpack so later stages
// can pick it up without re-running the front end.
package artifact

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

// SchemaVersion is written into every payload. Read rejects any other value.
const SchemaVersion uint16 = 1

type Payload struct {
	Schema    uint16
	Source    string
	Functions []Function
}

type Function struct {
	Name       string
	Location   Span
	Parameters []Parameter
	ReturnType types.Type
	Body       Node
}

type Parameter struct {
	Name     string
	Location Span
	Type     types.Type
}

type Span struct {
	File                             string
	FromLine, FromColumn, FromOffset int
	ToLine, ToColumn, ToOffset       int
}

type NodeKind uint8

const (
	IntNode NodeKind = iota
	FloatNode
	BooleanNode
	CharNode
	StringNode
	IdentifierNode
	UnaryNode
	BinaryNode
	IfNode
	LetNode
	BlockNode
)

// Node is one typed expression. Only the fields its Kind uses are set;
// Text carries string literals, identifiers and let names.
type Node struct {
	Kind     NodeKind
	Type     types.Type
	Location Span

	Int       int64
	Float     float64
	Bool      bool
	Char      rune
	Text      string
	Operation uint8
	GivenType *types.Type
	// NameLocation is the span of a let's bound name.
	NameLocation Span
	// Children holds operands, the if's condition/then/else and block items.
	Children []Node
}

// Write encodes program as the payload for source.
func Write(w io.Writer, source string, program ast.TypedProgram, names *interner.Interner[string]) error {
	payload := Payload{Schema: SchemaVersion, Source: source}
	for _, fn := range program.Functions {
		payload.Functions = append(payload.Functions, fromFunction(fn, names))
	}
	return msgpack.NewEncoder(w).Encode(&payload)
}

// Read decodes a payload and rebuilds the typed program, interning every
// name into a fresh table.
func Read(r io.Reader) (source string, program ast.TypedProgram, names *interner.Interner[string], err error) {
	var payload Payload
	if err = msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return
	}
	if payload.Schema != SchemaVersion {
		err = fmt.Errorf("artifact schema %d, expected %d", payload.Schema, SchemaVersion)
		return
	}

	names = interner.New[string]()
	for _, fn := range payload.Functions {
		var typed ast.TypedFunction
		typed, err = fn.toFunction(names)
		if err != nil {
			return
		}
		program.Functions = append(program.Functions, typed)
	}
	return payload.Source, program, names, nil
}

func fromSpan(s types.Span) Span {
	return Span{
		File:     s.From.Filename,
		FromLine: s.From.Line, FromColumn: s.From.Column, FromOffset: s.From.Offset,
		ToLine: s.To.Line, ToColumn: s.To.Column, ToOffset: s.To.Offset,
	}
}

func (s Span) toSpan() types.Span {
	return types.Span{
		From: types.Position{Filename: s.File, Line: s.FromLine, Column: s.FromColumn, Offset: s.FromOffset},
		To:   types.Position{Filename: s.File, Line: s.ToLine, Column: s.ToColumn, Offset: s.ToOffset},
	}
}

func fromFunction(fn ast.TypedFunction, names *interner.Interner[string]) Function {
	out := Function{
		Name:       names.Get(fn.Prototype.Name),
		Location:   fromSpan(fn.Prototype.Location),
		ReturnType: fn.Prototype.ReturnType,
		Body:       fromExpression(fn.Body, names),
	}
	for _, param := range fn.Prototype.Parameters {
		out.Parameters = append(out.Parameters, Parameter{
			Name:     names.Get(param.Name),
			Location: fromSpan(param.Location),
			Type:     param.Type,
		})
	}
	return out
}

func fromExpression(e ast.TypedExpression, names *interner.Interner[string]) Node {
	n := Node{Type: e.Type, Location: fromSpan(e.Location)}

	switch expr := e.Kind.(type) {
	case ast.Int:
		n.Kind, n.Int = IntNode, int64(expr)
	case ast.Float:
		n.Kind, n.Float = FloatNode, float64(expr)
	case ast.Boolean:
		n.Kind, n.Bool = BooleanNode, bool(expr)
	case ast.Char:
		n.Kind, n.Char = CharNode, rune(expr)
	case ast.String:
		n.Kind, n.Text = StringNode, names.Get(interner.ID(expr))
	case ast.Identifier:
		n.Kind, n.Text = IdentifierNode, names.Get(interner.ID(expr))
	case ast.TypedUnary:
		n.Kind, n.Operation = UnaryNode, uint8(expr.Operation)
		n.Children = []Node{fromExpression(expr.Expression, names)}
	case ast.TypedBinary:
		n.Kind, n.Operation = BinaryNode, uint8(expr.Operation)
		n.Children = []Node{fromExpression(expr.Left, names), fromExpression(expr.Right, names)}
	case ast.TypedIf:
		n.Kind = IfNode
		n.Children = []Node{fromExpression(expr.Condition, names), fromExpression(expr.Then, names)}
		if expr.Else != nil {
			n.Children = append(n.Children, fromExpression(*expr.Else, names))
		}
	case ast.TypedLet:
		n.Kind = LetNode
		n.Text = names.Get(expr.Name.ID)
		n.NameLocation = fromSpan(expr.Name.Location)
		n.GivenType = expr.GivenType
		n.Children = []Node{fromExpression(expr.Value, names)}
	case ast.TypedBlock:
		n.Kind = BlockNode
		for _, item := range expr {
			n.Children = append(n.Children, fromExpression(item, names))
		}
	}
	return n
}

func (fn Function) toFunction(names *interner.Interner[string]) (ast.TypedFunction, error) {
	body, err := fn.Body.toExpression(names)
	if err != nil {
		return ast.TypedFunction{}, err
	}

	proto := ast.TypedPrototype{
		Location:   fn.Location.toSpan(),
		Name:       names.Insert(fn.Name),
		ReturnType: fn.ReturnType,
	}
	for _, param := range fn.Parameters {
		proto.Parameters = append(proto.Parameters, ast.TypedParameter{
			Location: param.Location.toSpan(),
			Name:     names.Insert(param.Name),
			Type:     param.Type,
		})
	}
	return ast.TypedFunction{Prototype: proto, Body: body}, nil
}

func (n Node) children(names *interner.Interner[string], least, most int) ([]ast.TypedExpression, error) {
	if len(n.Children) < least || (most >= 0 && len(n.Children) > most) {
		return nil, fmt.Errorf("node kind %d at %s has %d children", n.Kind, n.Location.toSpan(), len(n.Children))
	}
	out := make([]ast.TypedExpression, 0, len(n.Children))
	for _, child := range n.Children {
		expr, err := child.toExpression(names)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func (n Node) toExpression(names *interner.Interner[string]) (ast.TypedExpression, error) {
	e := ast.TypedExpression{Type: n.Type, Location: n.Location.toSpan()}

	switch n.Kind {
	case IntNode:
		e.Kind = ast.Int(n.Int)
	case FloatNode:
		e.Kind = ast.Float(n.Float)
	case BooleanNode:
		e.Kind = ast.Boolean(n.Bool)
	case CharNode:
		e.Kind = ast.Char(n.Char)
	case StringNode:
		e.Kind = ast.String(names.Insert(n.Text))
	case IdentifierNode:
		e.Kind = ast.Identifier(names.Insert(n.Text))
	case UnaryNode:
		kids, err := n.children(names, 1, 1)
		if err != nil {
			return e, err
		}
		e.Kind = ast.TypedUnary{Operation: ast.UnaryOperation(n.Operation), Expression: kids[0]}
	case BinaryNode:
		kids, err := n.children(names, 2, 2)
		if err != nil {
			return e, err
		}
		e.Kind = ast.TypedBinary{Operation: ast.BinaryOperation(n.Operation), Left: kids[0], Right: kids[1]}
	case IfNode:
		kids, err := n.children(names, 2, 3)
		if err != nil {
			return e, err
		}
		cond := ast.TypedIf{Condition: kids[0], Then: kids[1]}
		if len(kids) == 3 {
			cond.Else = &kids[2]
		}
		e.Kind = cond
	case LetNode:
		kids, err := n.children(names, 1, 1)
		if err != nil {
			return e, err
		}
		e.Kind = ast.TypedLet{
			Name:      ast.Name{Location: n.NameLocation.toSpan(), ID: names.Insert(n.Text)},
			GivenType: n.GivenType,
			Value:     kids[0],
		}
	case BlockNode:
		kids, err := n.children(names, 0, -1)
		if err != nil {
			return e, err
		}
		e.Kind = ast.TypedBlock(kids)
	default:
		return e, fmt.Errorf("unknown node kind %d at %s", n.Kind, n.Location.toSpan())
	}
	return e, nil
}
