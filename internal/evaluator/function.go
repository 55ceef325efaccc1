package evaluator

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/bytecode"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// UserFunction is a closure over an AST function body: the tree-walker's
// callable. Arrow functions capture `this` lexically at construction;
// ordinary functions pick one up only via a method-call receiver bind
// (bindThis), which clones the value but preserves its identity so
// self-tail-call detection survives the bind.
type UserFunction struct {
	id       uint64
	name     string
	params   []ast.Param
	body     ast.Statement
	exprBody bool
	closure  *environment.Environment
	isArrow  bool
	thisVal  value.Value
	hasThis  bool
	arityMin int
	arityMax int
}

func (f *UserFunction) Kind() value.Kind { return value.KindFunction }
func (f *UserFunction) Truthy() bool     { return true }

func (f *UserFunction) String() string {
	if f.name != "" {
		return "<function " + f.name + ">"
	}
	return "<anonymous function>"
}

func (f *UserFunction) ID() uint64       { return f.id }
func (f *UserFunction) FuncName() string { return f.name }
func (f *UserFunction) ArityMin() int    { return f.arityMin }
func (f *UserFunction) ArityMax() int    { return f.arityMax }

// makeUserFunction builds a closure over fn's body in env. When fn falls
// inside the compilable subset (no defaulted/rest/destructured
// parameters, and a body built only from the statement and expression
// forms the bytecode compiler supports) it is compiled once here and
// runs on the VM from then on; otherwise it falls back to the
// tree-walker. Arrow functions read `this` out of env at construction
// time (nil/absent if none is in scope, e.g. at module top level).
func (e *Evaluator) makeUserFunction(fn *ast.FunctionLiteral, env *environment.Environment) value.Callable {
	if chunk, params, ok := bytecode.Compile(fn); ok {
		return bytecode.New(fn, chunk, params, env)
	}

	min, max := paramArity(fn.Params)
	uf := &UserFunction{
		id:       value.NextFunctionID(),
		name:     fn.Name,
		params:   fn.Params,
		body:     fn.Body,
		exprBody: fn.ExprBody,
		closure:  env,
		isArrow:  fn.IsArrow,
		arityMin: min,
		arityMax: max,
	}
	if fn.IsArrow {
		if this, err := env.Get("this"); err == nil {
			uf.thisVal, uf.hasThis = this, true
		}
	}
	return uf
}

func paramArity(params []ast.Param) (min, max int) {
	for _, p := range params {
		if p.Rest {
			max = -1
			continue
		}
		max++
		if p.Default == nil {
			min++
		}
	}
	return min, max
}

func paramName(p ast.Param) string {
	if id, ok := p.Pattern.(*ast.IdentifierPattern); ok {
		return id.Name
	}
	return ""
}

// bindThis returns a receiver-bound clone of f sharing f's identity, per
// the method-call contract: `recv.m(args)` binds a `this` constant in the
// clone's activation environment without disturbing tail-call detection,
// which compares callee identity rather than pointer equality.
func (f *UserFunction) bindThis(recv value.Value) *UserFunction {
	clone := *f
	clone.thisVal = recv
	clone.hasThis = true
	return &clone
}

// BindThis is the value.Callable-level form bindThis the bytecode VM's
// method-call opcode uses: arrow functions ignore the receiver entirely.
func (f *UserFunction) BindThis(recv value.Value) value.Callable {
	if f.isArrow {
		return f
	}
	return f.bindThis(recv)
}

// Call binds args to f's declared parameters and runs the body,
// trampolining through successive flowTailCall signals instead of
// recursing at the Go-stack level: a self-tail-call rebuilds the
// activation environment and loops rather than pushing another Go frame.
func (f *UserFunction) Call(e *Evaluator, args EvaluatedArgs, callSite token.Position) (value.Value, error) {
	if err := e.pushFrame(Frame{FuncID: f.id, FuncName: f.name, CallSite: callSite}); err != nil {
		return nil, err
	}
	defer e.popFrame()

	for {
		activation := environment.NewFunctionRoot(f.closure)
		if f.hasThis {
			if err := activation.DefineConst("this", f.thisVal); err != nil {
				return nil, e.runtimeErrorf(callSite, "%s", err.Error())
			}
		}
		if err := f.bindParams(e, args, activation, callSite); err != nil {
			return nil, err
		}

		sig, err := f.runBody(e, activation)
		if err != nil {
			return nil, err
		}

		switch sig.kind {
		case flowTailCall:
			args = sig.tailArgs
			continue
		case flowReturn:
			return sig.value, nil
		default:
			return value.NilValue, nil
		}
	}
}

func (f *UserFunction) runBody(e *Evaluator, activation *environment.Environment) (signal, error) {
	if f.exprBody {
		es := f.body.(*ast.ExpressionStatement)
		v, err := e.evalExpression(es.Expr, activation)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: flowReturn, value: v}, nil
	}
	block := f.body.(*ast.BlockStatement)
	return e.evalBlockIn(block, activation)
}

// bindParams implements the argument-binding algorithm: validate named
// arguments against declared (non-rest) parameter names, then bind each
// non-rest parameter left to right from its named argument, else the next
// positional, else its default (evaluated at that point, so only earlier
// parameters are bound), then collect any remainder into a declared rest
// parameter (or error on excess).
func (f *UserFunction) bindParams(e *Evaluator, args EvaluatedArgs, activation *environment.Environment, pos token.Position) error {
	declared := map[string]bool{}
	for _, p := range f.params {
		if !p.Rest {
			declared[paramName(p)] = true
		}
	}
	for name := range args.Named {
		if !declared[name] {
			return e.runtimeErrorf(pos, "unknown named argument %q", name)
		}
	}

	posIdx := 0
	var restParam *ast.Param
	for i := range f.params {
		p := f.params[i]
		if p.Rest {
			restParam = &f.params[i]
			continue
		}
		name := paramName(p)
		var v value.Value
		have := false
		if nv, ok := args.Named[name]; ok {
			v, have = nv, true
		} else if posIdx < len(args.Positional) {
			v, have = args.Positional[posIdx], true
			posIdx++
		}
		if !have {
			if p.Default == nil {
				return e.runtimeErrorf(pos, "missing required argument %q", name)
			}
			dv, err := e.evalExpression(p.Default, activation)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := activation.DefineLet(name, v, true); err != nil {
			return e.runtimeErrorf(pos, "%s", err.Error())
		}
	}

	if restParam != nil {
		var rest []value.Value
		if posIdx < len(args.Positional) {
			rest = append(rest, args.Positional[posIdx:]...)
		}
		if err := activation.DefineLet(paramName(*restParam), value.NewArray(rest), true); err != nil {
			return e.runtimeErrorf(pos, "%s", err.Error())
		}
	} else if posIdx < len(args.Positional) {
		return e.runtimeErrorf(pos, "too many arguments")
	}

	return nil
}
