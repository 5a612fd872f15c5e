package ast

import (
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

// TypedExpression mirrors Expression with the resolved type attached.
type TypedExpression struct {
	Location types.Span
	Type     types.Type
	Kind     TypedExpressionKind
}

type TypedUnary struct {
	Operation  UnaryOperation
	Expression TypedExpression
}

type TypedBinary struct {
	Operation BinaryOperation
	Left      TypedExpression
	Right     TypedExpression
}

type TypedIf struct {
	Condition TypedExpression
	Then      TypedExpression
	Else      *TypedExpression
}

type TypedLet struct {
	Name      Name
	GivenType *types.Type
	Value     TypedExpression
}

type TypedBlock []TypedExpression

type TypedParameter struct {
	Location types.Span
	Name     interner.ID
	Type     types.Type
}

type TypedPrototype struct {
	Location   types.Span
	Name       interner.ID
	Parameters []TypedParameter
	ReturnType types.Type
}

type TypedFunction struct {
	Prototype TypedPrototype
	Body      TypedExpression
}

type TypedProgram struct {
	Functions []TypedFunction
}
