package bytecode

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// Host is the slice of the evaluator the VM delegates value semantics
// and calls to, so property/index access, operator application, and
// error formatting stay defined in exactly one place regardless of
// which engine (tree-walker or VM) is running.
type Host interface {
	GetProperty(obj value.Value, key string, pos token.Position) (value.Value, error)
	SetProperty(obj value.Value, key string, v value.Value, pos token.Position) error
	GetIndexed(obj, idx value.Value, pos token.Position) (value.Value, error)
	SetIndexed(obj, idx, v value.Value, pos token.Position) error
	ApplyBinaryOp(op string, left, right value.Value, pos token.Position) (value.Value, error)
	GetName(env *environment.Environment, name string, pos token.Position) (value.Value, error)
	SetName(env *environment.Environment, name string, v value.Value, pos token.Position) error
	InvokePositional(callee value.Callable, args []value.Value, pos token.Position) (value.Value, error)
}

// bindable is implemented by callables that accept a method-call receiver
// (UserFunction and Function); arrow functions ignore the bind.
type bindable interface {
	value.Callable
	BindThis(recv value.Value) value.Callable
}

// run executes chunk starting with locals pre-populated with bound
// parameters, returning the value of the chunk's OpReturn.
func run(chunk *Chunk, locals []value.Value, env *environment.Environment, host Host, pos token.Position) (value.Value, error) {
	var stack []value.Value
	pop := func() value.Value {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}
	push := func(v value.Value) { stack = append(stack, v) }

	ip := 0
	for ip < len(chunk.Code) {
		ins := chunk.Code[ip]
		line := ins.Line
		ip++

		switch ins.Op {
		case OpNoop:
		case OpLoadConst:
			push(chunk.Constants[ins.A])
		case OpLoadNil:
			push(value.NilValue)
		case OpLoadTrue:
			push(value.Bool(true))
		case OpLoadFalse:
			push(value.Bool(false))
		case OpLoadLocal:
			push(locals[ins.A])
		case OpStoreLocal:
			locals[ins.A] = stack[len(stack)-1]
		case OpLoadName:
			name := string(chunk.Constants[ins.A].(value.String))
			v, err := host.GetName(env, name, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpStoreName:
			name := string(chunk.Constants[ins.A].(value.String))
			if err := host.SetName(env, name, stack[len(stack)-1], withLine(pos, line)); err != nil {
				return nil, err
			}
		case OpPop:
			pop()
		case OpDup:
			push(stack[len(stack)-1])
		case OpDupTop2:
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			push(a)
			push(b)
		case OpNeg:
			n, ok := pop().(value.Number)
			if !ok {
				return nil, fmt.Errorf("Expected number")
			}
			push(value.NumNeg(n))
		case OpNot:
			push(value.Bool(!pop().Truthy()))
		case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
			right := pop()
			left := pop()
			v, err := host.ApplyBinaryOp(opSymbol(ins.Op), left, right, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpJump:
			ip = int(ins.A)
		case OpJumpIfFalse:
			if !pop().Truthy() {
				ip = int(ins.A)
			}
		case OpJumpIfTruthy:
			if pop().Truthy() {
				ip = int(ins.A)
			}
		case OpJumpIfNotNil:
			v := pop()
			if _, isNil := v.(value.Nil); !isNil {
				ip = int(ins.A)
			}
		case OpGetProp:
			obj := pop()
			key := string(chunk.Constants[ins.A].(value.String))
			v, err := host.GetProperty(obj, key, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpSetProp:
			v := pop()
			obj := pop()
			key := string(chunk.Constants[ins.A].(value.String))
			if err := host.SetProperty(obj, key, v, withLine(pos, line)); err != nil {
				return nil, err
			}
			push(v)
		case OpGetIndex:
			idx := pop()
			obj := pop()
			v, err := host.GetIndexed(obj, idx, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpSetIndex:
			v := pop()
			idx := pop()
			obj := pop()
			if err := host.SetIndexed(obj, idx, v, withLine(pos, line)); err != nil {
				return nil, err
			}
			push(v)
		case OpCall:
			n := int(ins.A)
			args := append([]value.Value(nil), stack[len(stack)-n:]...)
			stack = stack[:len(stack)-n]
			fnv := pop()
			fn, ok := fnv.(value.Callable)
			if !ok {
				return nil, fmt.Errorf("value is not callable")
			}
			v, err := host.InvokePositional(fn, args, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpMethodCall:
			n := int(ins.A)
			args := append([]value.Value(nil), stack[len(stack)-n:]...)
			stack = stack[:len(stack)-n]
			fnv := pop()
			recv := pop()
			fn, ok := fnv.(value.Callable)
			if !ok {
				return nil, fmt.Errorf("value is not callable")
			}
			if b, ok := fn.(bindable); ok {
				fn = b.BindThis(recv)
			}
			v, err := host.InvokePositional(fn, args, withLine(pos, line))
			if err != nil {
				return nil, err
			}
			push(v)
		case OpReturn:
			return pop(), nil
		default:
			return nil, fmt.Errorf("unhandled opcode %s", ins.Op)
		}
	}
	return value.NilValue, nil
}

func withLine(pos token.Position, line int) token.Position {
	if line == 0 {
		return pos
	}
	pos.Line = line
	return pos
}

func opSymbol(op OpCode) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	default:
		return ">="
	}
}
