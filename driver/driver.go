// Package driver runs the front end over one source file: lex, drop
// whitespace, parse, check.
package driver

import (
	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/lexer"
	"github.com/pontaoski/envyc/parser"
	"github.com/pontaoski/envyc/typecheck"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "driver")

type Result struct {
	Name   string
	Source []byte
	Names  *interner.Interner[string]

	// Tokens is the full stream, whitespace included.
	Tokens  []types.Token
	Program ast.Program
	// Partial holds every function that checked, even when others did not.
	Partial ast.TypedProgram
	// Typed is nil unless every stage succeeded.
	Typed *ast.TypedProgram

	LexErrors   []error
	ParseErrors []error
	CheckErrors []error
}

// Errors returns lexical, parse and semantic errors in that order.
func (r *Result) Errors() []error {
	errs := make([]error, 0, len(r.LexErrors)+len(r.ParseErrors)+len(r.CheckErrors))
	errs = append(errs, r.LexErrors...)
	errs = append(errs, r.ParseErrors...)
	return append(errs, r.CheckErrors...)
}

func (r *Result) OK() bool {
	return len(r.LexErrors) == 0 && len(r.ParseErrors) == 0 && len(r.CheckErrors) == 0
}

// FilterWhitespace drops whitespace tokens, which the parser never expects.
func FilterWhitespace(tokens []types.Token) []types.Token {
	filtered := make([]types.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != types.Whitespace {
			filtered = append(filtered, tok)
		}
	}
	return filtered
}

// Compile runs every stage even after an earlier one reported errors, so a
// single run surfaces as many diagnostics as possible.
func Compile(name string, src []byte) *Result {
	r := &Result{
		Name:   name,
		Source: src,
		Names:  interner.New[string](),
	}

	r.Tokens, r.LexErrors = lexer.NewLexer(src, name, r.Names).Tokens()
	plog.Infof("%s: %d tokens, %d lexical errors", name, len(r.Tokens), len(r.LexErrors))

	p := parser.NewParser(FilterWhitespace(r.Tokens), r.Names)
	r.Program, r.ParseErrors = p.ParseProgram()
	plog.Infof("%s: %d functions, %d parse errors", name, len(r.Program.Functions), len(r.ParseErrors))

	r.Partial, r.CheckErrors = typecheck.New(r.Names).CheckProgram(r.Program)
	plog.Infof("%s: %d semantic errors", name, len(r.CheckErrors))

	if r.OK() {
		r.Typed = &r.Partial
	}
	return r
}
