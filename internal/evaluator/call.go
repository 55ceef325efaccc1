package evaluator

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/bytecode"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// bindable is implemented by callables that accept a method-call
// receiver (UserFunction and bytecode.Function); arrow functions ignore
// the bind and return themselves unchanged.
type bindable interface {
	value.Callable
	BindThis(recv value.Value) value.Callable
}

// prepareCall resolves a call expression's callee (including method-call
// receiver binding and optional short-circuiting) and evaluates its
// argument list, without invoking it. evalReturnStatement uses this to
// compare the resolved callee's identity against the active frame before
// deciding whether to perform a normal call or emit a tail-call signal.
func (e *Evaluator) prepareCall(call *ast.CallExpression, env *environment.Environment) (value.Callable, EvaluatedArgs, bool, error) {
	callee, shortCircuit, err := e.resolveCallee(call, env)
	if err != nil || shortCircuit {
		return nil, EvaluatedArgs{}, shortCircuit, err
	}

	args, err := e.evalArgs(call.Args, env)
	if err != nil {
		return nil, EvaluatedArgs{}, false, err
	}
	return callee, args, false, nil
}

// resolveCallee evaluates the callee expression, binding a receiver for a
// non-arrow method call (`recv.m`/`recv[k]`) and short-circuiting an
// optional method call whose receiver is nil before any arguments are
// evaluated.
func (e *Evaluator) resolveCallee(call *ast.CallExpression, env *environment.Environment) (value.Callable, bool, error) {
	member, isMethod := call.Callee.(*ast.MemberExpression)
	if !isMethod {
		calleeVal, err := e.evalExpression(call.Callee, env)
		if err != nil {
			return nil, false, err
		}
		fn, ok := calleeVal.(value.Callable)
		if !ok {
			return nil, false, e.runtimeErrorf(call.Pos(), "value is not callable")
		}
		return fn, false, nil
	}

	recv, err := e.evalExpression(member.Object, env)
	if err != nil {
		return nil, false, err
	}
	if member.Optional {
		if _, isNil := recv.(value.Nil); isNil {
			return nil, true, nil
		}
	}

	var fnVal value.Value
	if !member.Computed {
		key := member.Property.(*ast.Identifier).Name
		fnVal, err = e.getProperty(recv, key, member.Pos())
	} else {
		idxVal, ierr := e.evalExpression(member.Property, env)
		if ierr != nil {
			return nil, false, ierr
		}
		fnVal, err = e.getIndexed(recv, idxVal, member.Pos())
	}
	if err != nil {
		return nil, false, err
	}

	fn, ok := fnVal.(value.Callable)
	if !ok {
		return nil, false, e.runtimeErrorf(call.Pos(), "value is not callable")
	}
	if b, ok := fn.(bindable); ok {
		return b.BindThis(recv), false, nil
	}
	return fn, false, nil
}

// EvaluatedArgs is a call's argument list after evaluation: positional
// values in call order, plus named arguments keyed by parameter name.
type EvaluatedArgs struct {
	Positional []value.Value
	Named      map[string]value.Value
}

// evalArgs evaluates a call's argument list left to right, positional and
// named intermixed exactly as written.
func (e *Evaluator) evalArgs(argList []ast.Argument, env *environment.Environment) (EvaluatedArgs, error) {
	var out EvaluatedArgs
	for _, a := range argList {
		v, err := e.evalExpression(a.Value, env)
		if err != nil {
			return EvaluatedArgs{}, err
		}
		if a.Name == "" {
			out.Positional = append(out.Positional, v)
			continue
		}
		if out.Named == nil {
			out.Named = make(map[string]value.Value)
		}
		out.Named[a.Name] = v
	}
	return out, nil
}

// invoke dispatches a resolved call to its concrete callable kind, after
// an arity pre-check shared by every callable family.
func (e *Evaluator) invoke(callee value.Callable, args EvaluatedArgs, pos token.Position) (value.Value, error) {
	total := len(args.Positional) + len(args.Named)
	if total < callee.ArityMin() || (callee.ArityMax() >= 0 && total > callee.ArityMax()) {
		return nil, e.runtimeErrorf(pos, "%s: arity violation (got %d arguments)", callee.FuncName(), total)
	}

	switch fn := callee.(type) {
	case *UserFunction:
		return fn.Call(e, args, pos)
	case *bytecode.Function:
		if len(args.Named) > 0 {
			return nil, e.runtimeErrorf(pos, "named arguments not allowed for compiled function %q", fn.FuncName())
		}
		if err := e.pushFrame(Frame{FuncID: fn.ID(), FuncName: fn.FuncName(), CallSite: pos}); err != nil {
			return nil, err
		}
		defer e.popFrame()
		return fn.Call(e, args.Positional, pos)
	case *value.Builtin:
		if len(args.Named) > 0 {
			return nil, e.runtimeErrorf(pos, "named arguments not allowed for built-in function %q", fn.FuncName())
		}
		v, err := fn.Fn(args.Positional)
		if err != nil {
			return nil, e.runtimeErrorf(pos, "%s", err.Error())
		}
		return v, nil
	default:
		return nil, e.runtimeErrorf(pos, "value is not callable")
	}
}

// evalCallExpression is the general (non-tail-position) call path.
func (e *Evaluator) evalCallExpression(call *ast.CallExpression, env *environment.Environment) (value.Value, error) {
	callee, args, shortCircuit, err := e.prepareCall(call, env)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return value.NilValue, nil
	}
	return e.invoke(callee, args, call.Pos())
}
