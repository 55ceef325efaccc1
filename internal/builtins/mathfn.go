package builtins

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/minidyn/minidyn/internal/value"
)

// registerMath wires the numeric helpers over stdlib math — the
// retrieval pack carries no third-party math library, so this is the one
// numeric category left on the standard library (noted in DESIGN.md).
func (r *Registry) registerMath() {
	r.register("abs", 1, 1, "math", "absolute value, preserving numeric kind", mathAbs)
	r.register("floor", 1, 1, "math", "round toward negative infinity", mathUnary(math.Floor))
	r.register("ceil", 1, 1, "math", "round toward positive infinity", mathUnary(math.Ceil))
	r.register("round", 1, 1, "math", "round to nearest, ties away from zero", mathUnary(math.Round))
	r.register("sqrt", 1, 1, "math", "square root", mathUnary(math.Sqrt))
	r.register("pow", 2, 2, "math", "exponentiation", mathPow)
	r.register("min", 1, -1, "math", "smallest of its numeric arguments", mathMin)
	r.register("max", 1, -1, "math", "largest of its numeric arguments", mathMax)
	r.register("random", 0, 0, "math", "a double in [0, 1)", mathRandom)
}

func requireNumber(args []value.Value, i int) (value.Number, error) {
	n, ok := args[i].(value.Number)
	if !ok {
		return value.Number{}, fmt.Errorf("expected number argument")
	}
	return n, nil
}

func mathAbs(args []value.Value) (value.Value, error) {
	n, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	if value.NumCompare(n, value.Int(0)) < 0 {
		return value.NumNeg(n), nil
	}
	return n, nil
}

func mathUnary(fn func(float64) float64) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		n, err := requireNumber(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(fn(n.AsFloat())), nil
	}
}

func mathPow(args []value.Value) (value.Value, error) {
	base, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := requireNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return value.Float(math.Pow(base.AsFloat(), exp.AsFloat())), nil
}

func mathMin(args []value.Value) (value.Value, error) {
	return mathExtreme(args, -1)
}

func mathMax(args []value.Value) (value.Value, error) {
	return mathExtreme(args, 1)
}

func mathExtreme(args []value.Value, want int) (value.Value, error) {
	best, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		n, err := requireNumber(args, i)
		if err != nil {
			return nil, err
		}
		if value.NumCompare(n, best) == want {
			best = n
		}
	}
	return best, nil
}

func mathRandom(_ []value.Value) (value.Value, error) {
	return value.Float(rand.Float64()), nil
}
