package ast

import (
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

type Parameter struct {
	Location types.Span
	Name     interner.ID
	Type     types.Type
}

type Prototype struct {
	Location   types.Span
	Name       interner.ID
	Parameters []Parameter
}

type Function struct {
	Prototype Prototype
	Body      Expression
}

type Program struct {
	Functions []Function
}
