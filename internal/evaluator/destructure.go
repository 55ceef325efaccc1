package evaluator

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/value"
)

// binder is the strategy parameter of bindPattern: declaring a fresh
// var/let/const, or assigning into an already-declared target. This is
// the single "bind" operation the closed pattern family shares, per the
// polymorphism used throughout the destructuring forms (declarations,
// parameters, assignment statements, for-heads).
type binder interface {
	bindName(name string, v value.Value) error
}

type varBinder struct{ env *environment.Environment }

func (b varBinder) bindName(name string, v value.Value) error { return b.env.DefineVar(name, v) }

type letBinder struct {
	env     *environment.Environment
	hasInit bool
}

func (b letBinder) bindName(name string, v value.Value) error {
	return b.env.DefineLet(name, v, b.hasInit)
}

type constBinder struct{ env *environment.Environment }

func (b constBinder) bindName(name string, v value.Value) error { return b.env.DefineConst(name, v) }

// assignBinder writes into an existing binding (identifier) or lvalue
// chain (property/index) rather than declaring anything new.
type assignBinder struct{ env *environment.Environment }

func (b assignBinder) bindName(name string, v value.Value) error { return b.env.Assign(name, v) }

// bindPattern implements the single recursive "bind" operation over the
// pattern family: identifier, lvalue-chain alias, array pattern, object
// pattern. evalEnv is the environment expressions embedded in the
// pattern (defaults, lvalue targets) evaluate against.
func (e *Evaluator) bindPattern(pat ast.Pattern, v value.Value, strat binder, evalEnv *environment.Environment) error {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		return strat.bindName(p.Name, v)
	case *ast.LValuePattern:
		return e.assignLValue(p.Target, v, evalEnv)
	case *ast.ArrayPattern:
		return e.bindArrayPattern(p, v, strat, evalEnv)
	case *ast.ObjectPattern:
		return e.bindObjectPattern(p, v, strat, evalEnv)
	default:
		return fmt.Errorf("invalid destructuring target")
	}
}

// bindArrayPattern implements: consume elements positionally; a
// defaulted element fires its default when the source has no value or
// the value is nil; rest collects remaining as a new array; a
// not-an-array source is treated as empty (all defaults/nils apply).
func (e *Evaluator) bindArrayPattern(p *ast.ArrayPattern, v value.Value, strat binder, evalEnv *environment.Environment) error {
	arr, _ := v.(*value.Array)

	at := func(i int) (value.Value, bool) {
		if arr == nil || i >= len(arr.Elements) {
			return nil, false
		}
		return arr.Elements[i], true
	}

	idx := 0
	for _, el := range p.Elements {
		if el.Rest {
			var rest []value.Value
			if arr != nil {
				for ; idx < len(arr.Elements); idx++ {
					rest = append(rest, arr.Elements[idx])
				}
			}
			if el.Pattern != nil {
				if err := e.bindPattern(el.Pattern, value.NewArray(rest), strat, evalEnv); err != nil {
					return err
				}
			}
			continue
		}
		elemVal, present := at(idx)
		idx++
		if el.Pattern == nil {
			// Elided hole: consumes a position, binds nothing.
			continue
		}
		if !present {
			elemVal = value.NilValue
		}
		if _, isNil := elemVal.(value.Nil); (isNil || !present) && el.Default != nil {
			dv, err := e.evalExpression(el.Default, evalEnv)
			if err != nil {
				return err
			}
			elemVal = dv
		}
		if err := e.bindPattern(el.Pattern, elemVal, strat, evalEnv); err != nil {
			return err
		}
	}
	return nil
}

// bindObjectPattern implements: match by source-key; missing key
// triggers default or nil; rest collects all unmatched keys into a new
// object preserving insertion order.
func (e *Evaluator) bindObjectPattern(p *ast.ObjectPattern, v value.Value, strat binder, evalEnv *environment.Environment) error {
	obj, _ := v.(*value.Object)

	matched := map[string]bool{}
	for _, prop := range p.Properties {
		if prop.Rest {
			continue
		}
		matched[prop.Key] = true
	}

	for _, prop := range p.Properties {
		if prop.Rest {
			rest := value.NewObject()
			if obj != nil {
				for _, k := range obj.Keys() {
					if matched[k] {
						continue
					}
					rv, _ := obj.Get(k)
					rest.Set(k, rv)
				}
			}
			if err := e.bindPattern(prop.Alias, rest, strat, evalEnv); err != nil {
				return err
			}
			continue
		}

		var propVal value.Value = value.NilValue
		present := false
		if obj != nil {
			if pv, ok := obj.Get(prop.Key); ok {
				propVal, present = pv, true
			}
		}
		if _, isNil := propVal.(value.Nil); (isNil || !present) && prop.Default != nil {
			dv, err := e.evalExpression(prop.Default, evalEnv)
			if err != nil {
				return err
			}
			propVal = dv
		}
		if err := e.bindPattern(prop.Alias, propVal, strat, evalEnv); err != nil {
			return err
		}
	}
	return nil
}
