package evaluator

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

func (e *Evaluator) evalStatement(stmt ast.Statement, env *environment.Environment) (signal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if s.Expr == nil {
			return noSignal, nil
		}
		_, err := e.evalExpression(s.Expr, env)
		return noSignal, err
	case *ast.BlockStatement:
		return e.evalBlockNewScope(s, env)
	case *ast.DeclarationStatement:
		return noSignal, e.evalDeclaration(s, env)
	case *ast.FunctionDeclaration:
		fn := e.makeUserFunction(s.Function, env)
		return noSignal, env.DefineVar(s.Function.Name, fn)
	case *ast.DestructuringAssignStatement:
		return noSignal, e.evalDestructuringAssignStatement(s, env)
	case *ast.IfStatement:
		return e.evalIfStatement(s, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(s, env)
	case *ast.ForStatement:
		return e.evalForStatement(s, env)
	case *ast.ForEachStatement:
		return e.evalForEachStatement(s, env)
	case *ast.BreakStatement:
		return signal{kind: flowBreak}, nil
	case *ast.ContinueStatement:
		return signal{kind: flowContinue}, nil
	case *ast.ReturnStatement:
		return e.evalReturnStatement(s, env)
	case *ast.ThrowStatement:
		return e.evalThrowStatement(s, env)
	case *ast.TryStatement:
		return e.evalTryStatement(s, env)
	default:
		return noSignal, e.runtimeErrorf(stmt.Pos(), "unsupported statement %T", stmt)
	}
}

// evalBlockNewScope runs block in a fresh block-scoped child of env.
func (e *Evaluator) evalBlockNewScope(block *ast.BlockStatement, env *environment.Environment) (signal, error) {
	return e.evalBlockIn(block, environment.NewEnclosed(env))
}

// evalBlockIn runs block's statements directly in env (no new scope),
// used for function bodies whose activation environment already is the
// block's scope.
func (e *Evaluator) evalBlockIn(block *ast.BlockStatement, env *environment.Environment) (signal, error) {
	for _, stmt := range block.Statements {
		sig, err := e.evalStatement(stmt, env)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != flowNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (e *Evaluator) evalDeclaration(decl *ast.DeclarationStatement, env *environment.Environment) error {
	for _, d := range decl.Declarators {
		var v value.Value = value.NilValue
		hasInit := d.Value != nil
		if hasInit {
			ev, err := e.evalExpression(d.Value, env)
			if err != nil {
				return err
			}
			v = ev
		}
		var strategy binder
		switch decl.Kind {
		case token.VAR:
			strategy = varBinder{env: env}
		case token.LET:
			strategy = letBinder{env: env, hasInit: hasInit}
		case token.CONST:
			strategy = constBinder{env: env}
		}
		if err := e.bindPattern(d.Pattern, v, strategy, env); err != nil {
			return e.runtimeErrorf(decl.Pos(), "%s", err.Error())
		}
	}
	return nil
}

func (e *Evaluator) evalDestructuringAssignStatement(s *ast.DestructuringAssignStatement, env *environment.Environment) error {
	v, err := e.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	if err := e.bindPattern(s.Pattern, v, assignBinder{env: env}, env); err != nil {
		return e.runtimeErrorf(s.Pos(), "%s", err.Error())
	}
	return nil
}

func (e *Evaluator) evalIfStatement(s *ast.IfStatement, env *environment.Environment) (signal, error) {
	cond, err := e.evalExpression(s.Cond, env)
	if err != nil {
		return noSignal, err
	}
	if cond.Truthy() {
		return e.evalStatement(s.Then, env)
	}
	if s.Else != nil {
		return e.evalStatement(s.Else, env)
	}
	return noSignal, nil
}

func (e *Evaluator) evalWhileStatement(s *ast.WhileStatement, env *environment.Environment) (signal, error) {
	for {
		cond, err := e.evalExpression(s.Cond, env)
		if err != nil {
			return noSignal, err
		}
		if !cond.Truthy() {
			return noSignal, nil
		}
		sig, err := e.evalStatement(s.Body, env)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case flowBreak:
			return noSignal, nil
		case flowContinue, flowNone:
			// fall through to next iteration
		default:
			return sig, nil
		}
	}
}

func (e *Evaluator) evalForStatement(s *ast.ForStatement, env *environment.Environment) (signal, error) {
	loopEnv := environment.NewEnclosed(env)
	if s.Init != nil {
		if _, err := e.evalStatement(s.Init, loopEnv); err != nil {
			return noSignal, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := e.evalExpression(s.Cond, loopEnv)
			if err != nil {
				return noSignal, err
			}
			if !cond.Truthy() {
				return noSignal, nil
			}
		}
		sig, err := e.evalStatement(s.Body, loopEnv)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case flowBreak:
			return noSignal, nil
		case flowContinue, flowNone:
			// fall through to post-clause
		default:
			return sig, nil
		}
		if s.Post != nil {
			if _, err := e.evalStatement(s.Post, loopEnv); err != nil {
				return noSignal, err
			}
		}
	}
}

func (e *Evaluator) evalForEachStatement(s *ast.ForEachStatement, env *environment.Environment) (signal, error) {
	iterable, err := e.evalExpression(s.Iterable, env)
	if err != nil {
		return noSignal, err
	}

	items, err := forEachItems(iterable, s.IsOf)
	if err != nil {
		return noSignal, e.runtimeErrorf(s.Pos(), "%s", err.Error())
	}

	for _, item := range items {
		// A fresh environment every iteration so `let`/`const` heads
		// (and any declarations in the body) capture per-iteration
		// bindings; `var`'s own binder still targets the function-root
		// frame regardless of which frame we declare it from.
		iterEnv := environment.NewEnclosed(env)
		var strategy binder
		switch s.Kind {
		case token.VAR:
			strategy = varBinder{env: iterEnv}
		case token.LET:
			strategy = letBinder{env: iterEnv, hasInit: true}
		case token.CONST:
			strategy = constBinder{env: iterEnv}
		default:
			strategy = assignBinder{env: env}
		}
		if err := e.bindPattern(s.Pattern, item, strategy, iterEnv); err != nil {
			return noSignal, e.runtimeErrorf(s.Pos(), "%s", err.Error())
		}

		sig, err := e.evalStatement(s.Body, iterEnv)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case flowBreak:
			return noSignal, nil
		case flowContinue, flowNone:
			continue
		default:
			return sig, nil
		}
	}
	return noSignal, nil
}

func (e *Evaluator) evalReturnStatement(s *ast.ReturnStatement, env *environment.Environment) (signal, error) {
	if s.Value == nil {
		return signal{kind: flowReturn, value: value.NilValue}, nil
	}

	if call, ok := s.Value.(*ast.CallExpression); ok {
		callee, args, shortCircuit, err := e.prepareCall(call, env)
		if err != nil {
			return noSignal, err
		}
		if shortCircuit {
			return signal{kind: flowReturn, value: value.NilValue}, nil
		}
		if fr, ok := e.currentFrame(); ok && callee.ID() == fr.FuncID {
			return signal{kind: flowTailCall, tailArgs: args}, nil
		}
		v, err := e.invoke(callee, args, call.Pos())
		if err != nil {
			return noSignal, err
		}
		return signal{kind: flowReturn, value: v}, nil
	}

	v, err := e.evalExpression(s.Value, env)
	if err != nil {
		return noSignal, err
	}
	return signal{kind: flowReturn, value: v}, nil
}

func (e *Evaluator) evalThrowStatement(s *ast.ThrowStatement, env *environment.Environment) (signal, error) {
	v, err := e.evalExpression(s.Value, env)
	if err != nil {
		return noSignal, err
	}
	return noSignal, &ThrownValue{Value: v, Pos: s.Pos(), Frames: e.snapshotFrames()}
}

// evalTryStatement runs the protected block, routing any fault (runtime
// error or thrown value) into the catch block if present, and always
// running finally on every exit path. A control-flow effect or fault
// produced by finally itself supersedes whatever the try/catch path was
// carrying.
func (e *Evaluator) evalTryStatement(s *ast.TryStatement, env *environment.Environment) (signal, error) {
	sig, err := e.evalBlockNewScope(s.Block, env)

	if err != nil && s.HasCatch {
		thrown := errorToValue(err)
		catchEnv := environment.NewEnclosed(env)
		if s.CatchParam != "" {
			if derr := catchEnv.DefineLet(s.CatchParam, thrown, true); derr != nil {
				return noSignal, e.runtimeErrorf(s.Pos(), "%s", derr.Error())
			}
		}
		sig, err = e.evalBlockIn(s.CatchBlock, catchEnv)
	}

	if s.FinallyBlock != nil {
		fsig, ferr := e.evalBlockNewScope(s.FinallyBlock, env)
		if ferr != nil || fsig.kind != flowNone {
			return fsig, ferr
		}
	}

	return sig, err
}

// errorToValue converts a fault into the value a `catch` binds: a
// ThrownValue's payload directly, or a fresh RuntimeError error object.
func errorToValue(err error) value.Value {
	switch e := err.(type) {
	case *ThrownValue:
		return e.Value
	case *RuntimeError:
		return ErrorObject(e)
	default:
		obj := value.NewObject()
		obj.Set("name", value.String("RuntimeError"))
		obj.Set("message", value.String(err.Error()))
		return obj
	}
}
