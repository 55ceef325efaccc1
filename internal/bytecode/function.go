package bytecode

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// Function is a compiled function value: the VM's callable, used in
// place of the tree-walker's UserFunction whenever Compile succeeds.
// Every parameter is a plain required identifier (no defaults or rest),
// so ArityMin and ArityMax always agree and named arguments are
// rejected by the evaluator the same way they are for builtins.
type Function struct {
	id      uint64
	name    string
	params  []string
	chunk   *Chunk
	closure *environment.Environment
	isArrow bool
	thisVal value.Value
	hasThis bool
}

// New wraps a chunk Compile produced into a callable closed over env.
// Arrow functions capture `this` out of env at construction, exactly as
// the tree-walker's UserFunction does.
func New(fn *ast.FunctionLiteral, chunk *Chunk, params []string, env *environment.Environment) *Function {
	f := &Function{
		id:      value.NextFunctionID(),
		name:    fn.Name,
		params:  params,
		chunk:   chunk,
		closure: env,
		isArrow: fn.IsArrow,
	}
	if fn.IsArrow {
		if this, err := env.Get("this"); err == nil {
			f.thisVal, f.hasThis = this, true
		}
	}
	return f
}

func (f *Function) Kind() value.Kind { return value.KindFunction }
func (f *Function) Truthy() bool     { return true }
func (f *Function) String() string {
	if f.name != "" {
		return "<function " + f.name + ">"
	}
	return "<anonymous function>"
}

func (f *Function) ID() uint64       { return f.id }
func (f *Function) FuncName() string { return f.name }
func (f *Function) ArityMin() int    { return len(f.params) }
func (f *Function) ArityMax() int    { return len(f.params) }

// BindThis returns a receiver-bound clone sharing f's identity. Arrow
// functions ignore the receiver, since they already captured `this`
// lexically at construction.
func (f *Function) BindThis(recv value.Value) value.Callable {
	if f.isArrow {
		return f
	}
	clone := *f
	clone.thisVal = recv
	clone.hasThis = true
	return &clone
}

// Call runs the compiled chunk with args bound positionally to f's
// parameters. Arity is validated by the caller before Call is reached.
func (f *Function) Call(host Host, args []value.Value, pos token.Position) (value.Value, error) {
	activation := environment.NewFunctionRoot(f.closure)
	if f.hasThis {
		if err := activation.DefineConst("this", f.thisVal); err != nil {
			return nil, err
		}
	}

	locals := make([]value.Value, f.chunk.NumLocals)
	for i := range locals {
		locals[i] = value.NilValue
	}
	copy(locals, args)

	return run(f.chunk, locals, activation, host, pos)
}
