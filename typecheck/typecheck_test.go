package typecheck

import (
	"testing"

	"github.com/alecthomas/repr"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/lexer"
	"github.com/pontaoski/envyc/parser"
	"github.com/pontaoski/envyc/types"
)

func parseSource(t *testing.T, src string) (*parser.Parser, *interner.Interner[string]) {
	t.Helper()
	names := interner.New[string]()
	toks, errs := lexer.NewLexer([]byte(src), "test.envy", names).Tokens()
	if len(errs) != 0 {
		t.Fatalf("lexical errors: %v", errs)
	}
	var filtered []types.Token
	for _, tok := range toks {
		if tok.Kind != types.Whitespace {
			filtered = append(filtered, tok)
		}
	}
	return parser.NewParser(filtered, names), names
}

func checkExpression(t *testing.T, src string) (ast.TypedExpression, error) {
	t.Helper()
	p, names := parseSource(t, src)
	expr, err := p.ParseExpression(parser.PrecedenceLowest)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return New(names).CheckExpression(expr)
}

func checkProgram(t *testing.T, src string) (ast.TypedProgram, []error, *interner.Interner[string]) {
	t.Helper()
	p, names := parseSource(t, src)
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	typed, errs := New(names).CheckProgram(program)
	return typed, errs, names
}

func TestWellTypedExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"1 + 1", types.Int},
		{"1.5 * 2.0 - 0.5", types.Float},
		{"-3", types.Int},
		{"+2.5", types.Float},
		{"not false", types.Boolean},
		{"'c'", types.Char},
		{`"text"`, types.String},
		{"if true then 1 else 2", types.Int},
		{"if true then 1", types.Void},
		{`if false then "a" else "b"`, types.String},
		{"let x = 4 / 2", types.Int},
		{"let f: Float = 1.0", types.Float},
		{"{ let x = 1 let y = x + 1 y * 2 }", types.Int},
		{"{ 1 true }", types.Boolean},
		{"{}", types.Void},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			typed, err := checkExpression(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if typed.Type != tt.want {
				t.Fatalf("type = %s, want %s", typed.Type, tt.want)
			}
		})
	}
}

func TestBinaryRejectsMixedOperands(t *testing.T) {
	_, err := checkExpression(t, "1 + 1.0")
	got, ok := err.(errors.UnsupportedOperation)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if len(got.Operands) != 2 || got.Operands[0].Type != types.Int || got.Operands[1].Type != types.Float {
		t.Fatalf("operands = %s", repr.String(got.Operands))
	}
	if got.Operands[1].Location.From.Column != 5 {
		t.Fatalf("right operand span = %v", got.Operands[1].Location)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	tests := []string{
		"true + false",
		`"a" + "b"`,
		"'a' * 'b'",
		"-true",
		`+"s"`,
		"not 1",
		"not 1.0",
		"(if true then 1) + 1",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := checkExpression(t, src)
			if _, ok := err.(errors.UnsupportedOperation); !ok {
				t.Fatalf("error = %T %v", err, err)
			}
		})
	}
}

func TestUnaryOperandIsReported(t *testing.T) {
	_, err := checkExpression(t, "not 7")
	got := err.(errors.UnsupportedOperation)
	if len(got.Operands) != 1 || got.Operands[0].Type != types.Int {
		t.Fatalf("operands = %s", repr.String(got.Operands))
	}
	if got.Operation != "not" {
		t.Fatalf("operation = %q", got.Operation)
	}
}

func TestIfBranchesMustAgree(t *testing.T) {
	_, err := checkExpression(t, "if true then 1 else false")
	got, ok := err.(errors.ConflictingType)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if got.First != types.Int || got.Second != types.Boolean {
		t.Fatalf("conflict = %+v", got)
	}
	if got.FirstLocation.From.Column != 14 || got.SecondLocation.From.Column != 21 {
		t.Fatalf("spans = %v, %v", got.FirstLocation, got.SecondLocation)
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	_, err := checkExpression(t, "if 1 then 1 else 2")
	got, ok := err.(errors.TypeMismatch)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if got.Expected != types.Boolean || got.Actual != types.Int {
		t.Fatalf("mismatch = %+v", got)
	}
}

func TestLetAnnotationMustMatch(t *testing.T) {
	_, err := checkExpression(t, "let x: Float = 1")
	got, ok := err.(errors.ConflictingType)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if got.First != types.Float || got.Second != types.Int {
		t.Fatalf("conflict = %+v", got)
	}
	if got.FirstLocation.From.Column != 5 {
		t.Fatalf("declared span = %v", got.FirstLocation)
	}
}

func TestLetDefinesInCurrentScope(t *testing.T) {
	p, names := parseSource(t, "let x = 'q' x")
	exprs, errs := p.ParseExpressions()
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	c := New(names)
	for _, expr := range exprs {
		if _, err := c.CheckExpression(expr); err != nil {
			t.Fatal(err)
		}
	}
	id, _ := names.Find("x")
	if ty, ok := c.Environment().Get(id); !ok || ty != types.Char {
		t.Fatalf("x bound to %v, %v", ty, ok)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := checkExpression(t, "1 + missing")
	got, ok := err.(errors.UndefinedVariable)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if got.Name != "missing" || got.Location.From.Column != 5 {
		t.Fatalf("error = %+v", got)
	}
}

func TestFirstErrorInsideExpressionWins(t *testing.T) {
	_, err := checkExpression(t, "{ a b }")
	got, ok := err.(errors.UndefinedVariable)
	if !ok || got.Name != "a" {
		t.Fatalf("error = %v", err)
	}
}

func TestFunctionReturnTypeIsBodyType(t *testing.T) {
	typed, errs, names := checkProgram(t, `
define half(x: Float) = x / 2.0
define flag(b: Boolean) = not b
define unit() = {}
`)
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	want := []string{
		"half(x: Float) Float",
		"flag(b: Boolean) Boolean",
		"unit() Void",
	}
	for i, fn := range typed.Functions {
		if got := fn.Prototype.Signature(names); got != want[i] {
			t.Errorf("signature %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestVoidParameterIsIllegal(t *testing.T) {
	_, errs, _ := checkProgram(t, "define f(a: Int, v: Void) = undefined_thing")
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	got, ok := errs[0].(errors.IllegalType)
	if !ok {
		t.Fatalf("error = %T %v", errs[0], errs[0])
	}
	if got.Type != types.Void || got.Location.From.Column != 18 {
		t.Fatalf("error = %+v", got)
	}
}

func TestProgramCollectsErrorsFromEveryFunction(t *testing.T) {
	typed, errs, names := checkProgram(t, `
define bad() = 1 + 1.0
define good(n: Int) = n * 2
`)
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	if _, ok := errs[0].(errors.UnsupportedOperation); !ok {
		t.Fatalf("error = %T", errs[0])
	}
	if len(typed.Functions) != 1 || names.Get(typed.Functions[0].Prototype.Name) != "good" {
		t.Fatalf("checked functions = %s", repr.String(typed.Functions))
	}

	_, errs, _ = checkProgram(t, `
define a() = x
define b() = if 1 then 2
define c() = let y: Int = true
`)
	if len(errs) != 3 {
		t.Fatalf("errors = %v", errs)
	}
}

func TestFunctionScopesDoNotLeak(t *testing.T) {
	p, names := parseSource(t, `
define first(p: Int) = let local = p
define second() = local
define third() = p
`)
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	c := New(names)
	_, errs = c.CheckProgram(program)
	if len(errs) != 2 {
		t.Fatalf("errors = %v", errs)
	}
	for _, err := range errs {
		if _, ok := err.(errors.UndefinedVariable); !ok {
			t.Fatalf("error = %T %v", err, err)
		}
	}
	if depth := c.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after program = %d", depth)
	}
}

func TestTypedTreeMirrorsInput(t *testing.T) {
	typed, err := checkExpression(t, "if not false then -1 else 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	node, ok := typed.Kind.(ast.TypedIf)
	if !ok {
		t.Fatalf("kind = %s", repr.String(typed.Kind))
	}
	if node.Condition.Type != types.Boolean {
		t.Fatalf("condition type = %s", node.Condition.Type)
	}
	if _, ok := node.Then.Kind.(ast.TypedUnary); !ok {
		t.Fatalf("then = %s", repr.String(node.Then.Kind))
	}
	bin, ok := node.Else.Kind.(ast.TypedBinary)
	if !ok || bin.Left.Type != types.Int || bin.Right.Type != types.Int {
		t.Fatalf("else = %s", repr.String(node.Else))
	}
}
