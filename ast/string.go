package ast

import (
	"fmt"
	"strings"

	"github.com/pontaoski/envyc/interner"
)

// Signature renders a checked prototype as `name(a: Int, b: Float) Int`.
func (p TypedPrototype) Signature(names *interner.Interner[string]) string {
	var params []string
	for _, param := range p.Parameters {
		params = append(params, fmt.Sprintf("%s: %s", names.Get(param.Name), param.Type))
	}
	return fmt.Sprintf("%s(%s) %s", names.Get(p.Name), strings.Join(params, ", "), p.ReturnType)
}
