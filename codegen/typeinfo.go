package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

// TypeInfoSymbol names the global holding the JSON signature table.
const TypeInfoSymbol = "__envy_types"

// TypeInfo maps each emitted function to its checked signature.
type TypeInfo struct {
	Functions map[string]string `json:"functions"`
}

func registerTypeInfo(t TypeInfo, m *ir.Module) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

// ReadTypeInfo parses the textual IR at path and decodes its signature table.
func ReadTypeInfo(path string) (TypeInfo, error) {
	m, err := asm.ParseFile(path)
	if err != nil {
		return TypeInfo{}, err
	}
	return TypeInfoOf(m)
}

func TypeInfoOf(m *ir.Module) (t TypeInfo, err error) {
	for _, g := range m.Globals {
		if g.Name() != TypeInfoSymbol {
			continue
		}
		data, ok := g.Init.(*constant.CharArray)
		if !ok {
			return TypeInfo{}, fmt.Errorf("%s is not a character array", TypeInfoSymbol)
		}
		err = json.Unmarshal(bytes.TrimRight(data.X, "\x00"), &t)
		return
	}
	return TypeInfo{}, fmt.Errorf("module has no %s global", TypeInfoSymbol)
}
