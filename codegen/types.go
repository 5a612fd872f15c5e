package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/pontaoski/envyc/types"
)

var (
	Int     = lltypes.I64
	Float   = lltypes.Double
	Boolean = lltypes.I1
	Char    = lltypes.I32
	String  = lltypes.NewPointer(lltypes.I8)
	Void    = lltypes.Void
)

// llvmType maps a checked type to its machine representation.
func llvmType(t types.Type) lltypes.Type {
	switch t {
	case types.Int:
		return Int
	case types.Float:
		return Float
	case types.Boolean:
		return Boolean
	case types.Char:
		return Char
	case types.String:
		return String
	case types.Void:
		return Void
	}
	panic(unsupported("type %s", t))
}
