package types

import "strconv"

// Type is the resolved type of an expression. Types compare with ==.
type Type int

const (
	Void Type = iota
	Int
	Float
	Boolean
	Char
	String
)

func (t Type) String() string {
	switch t {
	case Void:
		return "Void"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Char:
		return "Char"
	case String:
		return "String"
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// TypeOfKeyword maps a primitive type keyword to its Type.
func TypeOfKeyword(k TokenKind) (Type, bool) {
	switch k {
	case VoidKeyword:
		return Void, true
	case IntKeyword:
		return Int, true
	case FloatKeyword:
		return Float, true
	case BooleanKeyword:
		return Boolean, true
	case StringKeyword:
		return String, true
	case CharKeyword:
		return Char, true
	}
	return Void, false
}
