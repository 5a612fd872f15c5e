// Package ast holds the untyped tree built by the parser and the typed tree
// built by the checker. Both are strict trees: every node owns its children.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/kinds.adt ../ast/kinds_gen.go ast"

import (
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

type UnaryOperation int

const (
	UnaryPlus UnaryOperation = iota
	UnaryMinus
	UnaryNot
)

func (o UnaryOperation) String() string {
	switch o {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "not"
	}
	return "?"
}

type BinaryOperation int

const (
	BinaryPlus BinaryOperation = iota
	BinaryMinus
	BinaryMultiply
	BinaryDivide
)

func (o BinaryOperation) String() string {
	switch o {
	case BinaryPlus:
		return "+"
	case BinaryMinus:
		return "-"
	case BinaryMultiply:
		return "*"
	case BinaryDivide:
		return "/"
	}
	return "?"
}

// Expression is a spanned node. Composite nodes are anchored at their
// introducing token. The members of ExpressionKind are listed in kinds.adt.
type Expression struct {
	Location types.Span
	Kind     ExpressionKind
}

type Int int64

type Float float64

type Boolean bool

type Char rune

// String holds the interner id of the literal's contents.
type String interner.ID

type Identifier interner.ID

type Unary struct {
	Operation  UnaryOperation
	Expression Expression
}

type Binary struct {
	Operation BinaryOperation
	Left      Expression
	Right     Expression
}

type If struct {
	Condition Expression
	Then      Expression
	Else      *Expression
}

// Name is an identifier together with its own span.
type Name struct {
	Location types.Span
	ID       interner.ID
}

type Let struct {
	Name      Name
	GivenType *types.Type
	Value     Expression
}

type Block []Expression

