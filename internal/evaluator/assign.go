package evaluator

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// lvalue is the write-back handle resolveLValue produces: get/set share
// whatever sub-expressions (object, index) were already evaluated while
// resolving the target, so a compound assignment evaluates them once.
type lvalue interface {
	get() (value.Value, error)
	set(v value.Value) error
}

type identLValue struct {
	env  *environment.Environment
	name string
}

func (l identLValue) get() (value.Value, error) { return l.env.Get(l.name) }
func (l identLValue) set(v value.Value) error   { return l.env.Assign(l.name, v) }

// propLValue is a non-computed `.prop` target.
type propLValue struct {
	e   *Evaluator
	obj value.Value
	key string
	pos token.Position
}

func (l propLValue) get() (value.Value, error) { return l.e.getProperty(l.obj, l.key, l.pos) }
func (l propLValue) set(v value.Value) error   { return l.e.setProperty(l.obj, l.key, v, l.pos) }

// indexLValue is a computed `[idx]` target over an array, string, or
// object base.
type indexLValue struct {
	e   *Evaluator
	obj value.Value
	idx value.Value
	pos token.Position
}

func (l indexLValue) get() (value.Value, error) { return l.e.getIndexed(l.obj, l.idx, l.pos) }
func (l indexLValue) set(v value.Value) error   { return l.e.setIndexed(l.obj, l.idx, v, l.pos) }

// resolveLValue evaluates whatever sub-expressions a target needs (object,
// computed key) exactly once, returning a handle for both reading the
// current value and writing the new one. shortCircuit reports an optional
// member target (`?.`) whose base evaluated to nil: the whole assignment is
// a no-op that must not evaluate the right-hand side.
func (e *Evaluator) resolveLValue(target ast.Expression, env *environment.Environment) (lvalue, bool, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return identLValue{env: env, name: t.Name}, false, nil
	case *ast.MemberExpression:
		objVal, err := e.evalExpression(t.Object, env)
		if err != nil {
			return nil, false, err
		}
		if t.Optional {
			if _, isNil := objVal.(value.Nil); isNil {
				return nil, true, nil
			}
		}
		if !t.Computed {
			key := t.Property.(*ast.Identifier).Name
			return propLValue{e: e, obj: objVal, key: key, pos: t.Pos()}, false, nil
		}
		idxVal, err := e.evalExpression(t.Property, env)
		if err != nil {
			return nil, false, err
		}
		return indexLValue{e: e, obj: objVal, idx: idxVal, pos: t.Pos()}, false, nil
	default:
		return nil, false, e.runtimeErrorf(target.Pos(), "invalid assignment target")
	}
}

// assignLValue is the single-shot write used by destructuring aliases
// (`{a: x.y} = obj`): no prior read is needed, so it resolves and sets in
// one step.
func (e *Evaluator) assignLValue(target ast.Expression, v value.Value, env *environment.Environment) error {
	lv, shortCircuit, err := e.resolveLValue(target, env)
	if err != nil {
		return err
	}
	if shortCircuit {
		return nil
	}
	return lv.set(v)
}

func (e *Evaluator) getProperty(obj value.Value, key string, pos token.Position) (value.Value, error) {
	o, ok := obj.(*value.Object)
	if !ok {
		return nil, e.runtimeErrorf(pos, "Expected object")
	}
	v, ok := o.Get(key)
	if !ok {
		return value.NilValue, nil
	}
	return v, nil
}

func (e *Evaluator) setProperty(obj value.Value, key string, v value.Value, pos token.Position) error {
	o, ok := obj.(*value.Object)
	if !ok {
		return e.runtimeErrorf(pos, "Expected object")
	}
	o.Set(key, v)
	return nil
}

func (e *Evaluator) getIndexed(obj value.Value, idxVal value.Value, pos token.Position) (value.Value, error) {
	switch b := obj.(type) {
	case *value.Array:
		n, ok := idxVal.(value.Number)
		if !ok {
			return nil, e.runtimeErrorf(pos, "Expected number")
		}
		v, ok := b.At(numberToIndex(n))
		if !ok {
			return nil, e.runtimeErrorf(pos, "index out of range")
		}
		return v, nil
	case value.String:
		n, ok := idxVal.(value.Number)
		if !ok {
			return nil, e.runtimeErrorf(pos, "Expected number")
		}
		r := []rune(string(b))
		i := numberToIndex(n)
		if i < 0 {
			i += int64(len(r))
		}
		if i < 0 || i >= int64(len(r)) {
			return nil, e.runtimeErrorf(pos, "index out of range")
		}
		return value.String(string(r[i])), nil
	case *value.Object:
		key := value.CanonicalKey(idxVal)
		v, ok := b.Get(key)
		if !ok {
			return value.NilValue, nil
		}
		return v, nil
	default:
		return nil, e.runtimeErrorf(pos, "Expected object")
	}
}

func (e *Evaluator) setIndexed(obj value.Value, idxVal value.Value, v value.Value, pos token.Position) error {
	switch b := obj.(type) {
	case *value.Array:
		n, ok := idxVal.(value.Number)
		if !ok {
			return e.runtimeErrorf(pos, "Expected number")
		}
		if !b.SetAt(numberToIndex(n), v) {
			return e.runtimeErrorf(pos, "index out of range")
		}
		return nil
	case value.String:
		return e.runtimeErrorf(pos, "cannot assign into a string index")
	case *value.Object:
		b.Set(value.CanonicalKey(idxVal), v)
		return nil
	default:
		return e.runtimeErrorf(pos, "Expected object")
	}
}

// numberToIndex truncates a Number to the int64 index arrays/strings use;
// float indices truncate toward zero the same way AsBig does for the rest
// of the numeric tower.
func numberToIndex(n value.Number) int64 {
	return n.AsBig().Int64()
}

// evalMember evaluates a member-access expression, reporting whether an
// optional (`?.`/`?.[`) access short-circuited on a nil base.
func (e *Evaluator) evalMember(ex *ast.MemberExpression, env *environment.Environment) (value.Value, bool, error) {
	objVal, err := e.evalExpression(ex.Object, env)
	if err != nil {
		return nil, false, err
	}
	if ex.Optional {
		if _, isNil := objVal.(value.Nil); isNil {
			return value.NilValue, true, nil
		}
	}
	if !ex.Computed {
		key := ex.Property.(*ast.Identifier).Name
		v, err := e.getProperty(objVal, key, ex.Pos())
		return v, false, err
	}
	idxVal, err := e.evalExpression(ex.Property, env)
	if err != nil {
		return nil, false, err
	}
	v, err := e.getIndexed(objVal, idxVal, ex.Pos())
	return v, false, err
}

// evalAssignment implements `=`, `??=`, and the compound arithmetic
// assignment operators. Assigning through an optional-chain target whose
// base evaluated to nil is a no-op that evaluates to nil without ever
// evaluating the right-hand side.
func (e *Evaluator) evalAssignment(ex *ast.AssignmentExpression, env *environment.Environment) (value.Value, error) {
	lv, shortCircuit, err := e.resolveLValue(ex.Target, env)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return value.NilValue, nil
	}

	switch ex.Operator {
	case "=":
		v, err := e.evalExpression(ex.Value, env)
		if err != nil {
			return nil, err
		}
		if err := lv.set(v); err != nil {
			return nil, err
		}
		return v, nil
	case "??=":
		cur, err := lv.get()
		if err != nil {
			return nil, err
		}
		if _, isNil := cur.(value.Nil); !isNil {
			return cur, nil
		}
		v, err := e.evalExpression(ex.Value, env)
		if err != nil {
			return nil, err
		}
		if err := lv.set(v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		cur, err := lv.get()
		if err != nil {
			return nil, err
		}
		rhs, err := e.evalExpression(ex.Value, env)
		if err != nil {
			return nil, err
		}
		op := ex.Operator[:len(ex.Operator)-1] // "+=" -> "+"
		result, err := e.applyBinaryOp(op, cur, rhs, ex.Pos())
		if err != nil {
			return nil, err
		}
		if err := lv.set(result); err != nil {
			return nil, err
		}
		return result, nil
	}
}
