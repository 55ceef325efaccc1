package evaluator

import (
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// The exported methods below satisfy bytecode.Host: they let the VM
// delegate property/index access, operator application, name
// resolution, and calls back to the same logic the tree-walker uses,
// so both engines agree on value semantics by construction.

func (e *Evaluator) GetProperty(obj value.Value, key string, pos token.Position) (value.Value, error) {
	return e.getProperty(obj, key, pos)
}

func (e *Evaluator) SetProperty(obj value.Value, key string, v value.Value, pos token.Position) error {
	return e.setProperty(obj, key, v, pos)
}

func (e *Evaluator) GetIndexed(obj, idx value.Value, pos token.Position) (value.Value, error) {
	return e.getIndexed(obj, idx, pos)
}

func (e *Evaluator) SetIndexed(obj, idx, v value.Value, pos token.Position) error {
	return e.setIndexed(obj, idx, v, pos)
}

func (e *Evaluator) ApplyBinaryOp(op string, left, right value.Value, pos token.Position) (value.Value, error) {
	return e.applyBinaryOp(op, left, right, pos)
}

func (e *Evaluator) GetName(env *environment.Environment, name string, pos token.Position) (value.Value, error) {
	v, err := env.Get(name)
	if err != nil {
		return nil, e.runtimeErrorf(pos, "%s", err.Error())
	}
	return v, nil
}

func (e *Evaluator) SetName(env *environment.Environment, name string, v value.Value, pos token.Position) error {
	if err := env.Assign(name, v); err != nil {
		return e.runtimeErrorf(pos, "%s", err.Error())
	}
	return nil
}

// InvokePositional calls a resolved callable with purely positional
// arguments, the only form bytecode call sites can produce.
func (e *Evaluator) InvokePositional(callee value.Callable, args []value.Value, pos token.Position) (value.Value, error) {
	return e.invoke(callee, EvaluatedArgs{Positional: args}, pos)
}
