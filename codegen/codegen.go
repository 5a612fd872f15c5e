// Package codegen lowers a checked program to an LLVM IR module.
package codegen

import (
	"fmt"
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/envyc/ast"
	"github.com/pontaoski/envyc/environment"
	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "codegen")

// UnsupportedError is returned when the typed tree holds something that has
// no lowering. A tree produced by the checker never does.
type UnsupportedError struct {
	What string
}

func (u UnsupportedError) Error() string {
	return "codegen: unsupported " + u.What
}

// DuplicateFunction is returned when two functions share a name; a module
// can only hold one symbol per name.
type DuplicateFunction struct {
	Name          string
	Location      types.Span
	FirstLocation types.Span
}

func (d DuplicateFunction) Message() string {
	return "function " + d.Name + " is already defined"
}

func (d DuplicateFunction) Error() string {
	return d.Message() + ". " + d.Location.String()
}

func (d DuplicateFunction) Locate() types.Span { return d.Location }

func (d DuplicateFunction) Notes() []errors.Note {
	return []errors.Note{{Location: d.FirstLocation, Message: "first defined here"}}
}

func unsupported(msg string, fmts ...interface{}) UnsupportedError {
	return UnsupportedError{What: fmt.Sprintf(msg, fmts...)}
}

type namedThing interface{ isNamedThing() }

// llvmValue is a binding used as is: parameters, and lets of Void type.
type llvmValue struct {
	value.Value
}

// llvmSlot is a let binding. It lives in an entry-block alloca so it stays
// valid in every block that follows the let, including after an if joins.
type llvmSlot struct {
	*ir.InstAlloca
}

func (llvmValue) isNamedThing() {}
func (llvmSlot) isNamedThing()  {}

type ctx struct {
	names   *environment.Environment[namedThing]
	strings map[interner.ID]constant.Constant
	module  *ir.Module
	fn      *ir.Func
	entry   *ir.Block
	block   *ir.Block
	symbols *interner.Interner[string]
	ifs     int
}

func (c *ctx) pushScope() {
	c.names.NewScope()
}

func (c *ctx) popScope() {
	c.names.RemoveTopScope()
}

func (c *ctx) lookup(id interner.ID) value.Value {
	v, _ := c.names.Get(id)
	switch v := v.(type) {
	case llvmValue:
		return v.Value
	case llvmSlot:
		return c.block.NewLoad(v.ElemType, v.InstAlloca)
	}
	panic(unsupported("reference to unbound %s", c.symbols.Get(id)))
}

// bind stores val into the slot for id, allocating one on first use. A
// rebinding of the same type reuses the slot, so lets of one name in both
// branches of an if meet in a single place.
func (c *ctx) bind(id interner.ID, t types.Type, val value.Value) {
	if t == types.Void {
		c.names.Define(id, llvmValue{val})
		return
	}

	ty := llvmType(t)
	slot, ok := c.names.Get(id)
	existing, isSlot := slot.(llvmSlot)
	if !ok || !isSlot || !existing.ElemType.Equal(ty) {
		alloca := c.entry.NewAlloca(ty)
		// keep allocas ahead of everything else in the entry block
		insts := c.entry.Insts
		c.entry.Insts = append([]ir.Instruction{alloca}, insts[:len(insts)-1]...)
		existing = llvmSlot{alloca}
		c.names.Define(id, existing)
	}
	c.block.NewStore(val, existing.InstAlloca)
}

func (c *ctx) stringConstant(id interner.ID) constant.Constant {
	if val, ok := c.strings[id]; ok {
		return val
	}

	text := c.symbols.Get(id)
	global := c.module.NewGlobalDef("str."+strconv.Itoa(int(id)), constant.NewCharArrayFromString(text+"\x00"))
	global.Immutable = true
	global.Linkage = enum.LinkagePrivate

	val := constant.NewBitCast(global, String)
	c.strings[id] = val
	return val
}

func (c *ctx) expression(e ast.TypedExpression) value.Value {
	switch expr := e.Kind.(type) {
	case ast.Int:
		return constant.NewInt(Int, int64(expr))
	case ast.Float:
		return constant.NewFloat(Float, float64(expr))
	case ast.Boolean:
		return constant.NewBool(bool(expr))
	case ast.Char:
		return constant.NewInt(Char, int64(expr))
	case ast.String:
		return c.stringConstant(interner.ID(expr))
	case ast.Identifier:
		return c.lookup(interner.ID(expr))
	case ast.TypedUnary:
		return c.unary(expr)
	case ast.TypedBinary:
		return c.binary(expr)
	case ast.TypedIf:
		return c.conditional(e.Type, expr)
	case ast.TypedLet:
		val := c.expression(expr.Value)
		c.bind(expr.Name.ID, expr.Value.Type, val)
		return val
	case ast.TypedBlock:
		var last value.Value
		for _, statement := range expr {
			last = c.expression(statement)
		}
		return last
	}
	panic(unsupported("expression %T", e.Kind))
}

func (c *ctx) unary(expr ast.TypedUnary) value.Value {
	operand := c.expression(expr.Expression)
	isFloat := expr.Expression.Type == types.Float

	switch expr.Operation {
	case ast.UnaryPlus:
		return operand
	case ast.UnaryMinus:
		if isFloat {
			return c.block.NewFNeg(operand)
		}
		return c.block.NewSub(constant.NewInt(Int, 0), operand)
	case ast.UnaryNot:
		return c.block.NewXor(operand, constant.True)
	}
	panic(unsupported("unary %s", expr.Operation))
}

func (c *ctx) binary(expr ast.TypedBinary) value.Value {
	left := c.expression(expr.Left)
	right := c.expression(expr.Right)

	if expr.Left.Type == types.Float {
		switch expr.Operation {
		case ast.BinaryPlus:
			return c.block.NewFAdd(left, right)
		case ast.BinaryMinus:
			return c.block.NewFSub(left, right)
		case ast.BinaryMultiply:
			return c.block.NewFMul(left, right)
		case ast.BinaryDivide:
			return c.block.NewFDiv(left, right)
		}
	} else {
		switch expr.Operation {
		case ast.BinaryPlus:
			return c.block.NewAdd(left, right)
		case ast.BinaryMinus:
			return c.block.NewSub(left, right)
		case ast.BinaryMultiply:
			return c.block.NewMul(left, right)
		case ast.BinaryDivide:
			return c.block.NewSDiv(left, right)
		}
	}
	panic(unsupported("binary %s", expr.Operation))
}

// conditional branches into numbered then/else blocks that rejoin in an
// ifcont block. The phi takes each value from the block its branch ended in,
// which is not the block it started in when a branch nests another if.
func (c *ctx) conditional(t types.Type, expr ast.TypedIf) value.Value {
	cond := c.expression(expr.Condition)

	c.ifs++
	n := strconv.Itoa(c.ifs)
	thenBloc := c.fn.NewBlock("then." + n)
	mergeBloc := c.fn.NewBlock("ifcont." + n)
	elseBloc := mergeBloc
	if expr.Else != nil {
		elseBloc = c.fn.NewBlock("else." + n)
	}
	c.block.NewCondBr(cond, thenBloc, elseBloc)

	c.block = thenBloc
	thenValue := c.expression(expr.Then)
	thenEnd := c.block
	thenEnd.NewBr(mergeBloc)

	var elseValue value.Value
	elseEnd := c.block
	if expr.Else != nil {
		c.block = elseBloc
		elseValue = c.expression(*expr.Else)
		elseEnd = c.block
		elseEnd.NewBr(mergeBloc)
	}

	// blocks are printed in creation order; keep the join point last
	moveLast(c.fn, mergeBloc)
	c.block = mergeBloc

	if t == types.Void || expr.Else == nil {
		return nil
	}
	return mergeBloc.NewPhi(ir.NewIncoming(thenValue, thenEnd), ir.NewIncoming(elseValue, elseEnd))
}

func moveLast(fn *ir.Func, block *ir.Block) {
	for i, b := range fn.Blocks {
		if b == block {
			fn.Blocks = append(append(fn.Blocks[:i:i], fn.Blocks[i+1:]...), block)
			return
		}
	}
}

func (c *ctx) function(fn ast.TypedFunction) {
	proto := fn.Prototype
	plog.Debugf("emitting %s", c.symbols.Get(proto.Name))

	var params []*ir.Param
	for _, param := range proto.Parameters {
		params = append(params, ir.NewParam(c.symbols.Get(param.Name), llvmType(param.Type)))
	}

	c.fn = c.module.NewFunc(c.symbols.Get(proto.Name), llvmType(proto.ReturnType), params...)
	c.entry = c.fn.NewBlock("entry")
	c.block = c.entry

	c.pushScope()
	defer c.popScope()
	for i, param := range proto.Parameters {
		c.names.Define(param.Name, llvmValue{c.fn.Params[i]})
	}

	ret := c.expression(fn.Body)
	if proto.ReturnType == types.Void {
		c.block.NewRet(nil)
	} else {
		c.block.NewRet(ret)
	}
}

// Emit lowers every function of program into a new module and embeds the
// program's signature table as TypeInfo.
func Emit(program ast.TypedProgram, names *interner.Interner[string]) (m *ir.Module, err error) {
	defer func() {
		if v := recover(); v != nil {
			if uerr, ok := v.(UnsupportedError); ok {
				m, err = nil, uerr
				return
			}
			panic(v)
		}
	}()

	c := &ctx{
		names:   environment.New[namedThing](),
		strings: map[interner.ID]constant.Constant{},
		module:  ir.NewModule(),
		symbols: names,
	}

	seen := make(map[interner.ID]types.Span)
	for _, fn := range program.Functions {
		if first, ok := seen[fn.Prototype.Name]; ok {
			return nil, DuplicateFunction{
				Name:          names.Get(fn.Prototype.Name),
				Location:      fn.Prototype.Location,
				FirstLocation: first,
			}
		}
		seen[fn.Prototype.Name] = fn.Prototype.Location
	}

	info := TypeInfo{Functions: map[string]string{}}
	for _, fn := range program.Functions {
		c.function(fn)
		info.Functions[names.Get(fn.Prototype.Name)] = fn.Prototype.Signature(names)
	}

	if err := registerTypeInfo(info, c.module); err != nil {
		return nil, err
	}
	return c.module, nil
}
