package ast

import (
	"testing"

	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

func TestSignature(t *testing.T) {
	names := interner.New[string]()
	proto := TypedPrototype{
		Name: names.Insert("scale"),
		Parameters: []TypedParameter{
			{Name: names.Insert("x"), Type: types.Float},
			{Name: names.Insert("n"), Type: types.Int},
		},
		ReturnType: types.Float,
	}

	if got, want := proto.Signature(names), "scale(x: Float, n: Int) Float"; got != want {
		t.Fatalf("Signature() = %q, want %q", got, want)
	}

	empty := TypedPrototype{Name: names.Insert("main"), ReturnType: types.Void}
	if got, want := empty.Signature(names), "main() Void"; got != want {
		t.Fatalf("Signature() = %q, want %q", got, want)
	}
}
