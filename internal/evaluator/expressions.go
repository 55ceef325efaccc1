package evaluator

import (
	"strings"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

func (e *Evaluator) evalExpression(expr ast.Expression, env *environment.Environment) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.NilLiteral:
		return value.NilValue, nil
	case *ast.BoolLiteral:
		return value.Bool(ex.Value), nil
	case *ast.IntLiteral:
		return value.Int(ex.Value), nil
	case *ast.BigIntLiteral:
		return value.BigInt(ex.Value), nil
	case *ast.FloatLiteral:
		return value.Float(ex.Value), nil
	case *ast.StringLiteral:
		return value.String(ex.Value), nil
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(ex, env)
	case *ast.Identifier:
		v, err := env.Get(ex.Name)
		if err != nil {
			return nil, e.runtimeErrorf(ex.Pos(), "%s", err.Error())
		}
		return v, nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(ex, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(ex, env)
	case *ast.FunctionLiteral:
		return e.makeUserFunction(ex, env), nil
	case *ast.UnaryExpression:
		return e.evalUnary(ex, env)
	case *ast.BinaryExpression:
		return e.evalBinary(ex, env)
	case *ast.TernaryExpression:
		return e.evalTernary(ex, env)
	case *ast.AssignmentExpression:
		return e.evalAssignment(ex, env)
	case *ast.MemberExpression:
		v, _, err := e.evalMember(ex, env)
		return v, err
	case *ast.CallExpression:
		return e.evalCallExpression(ex, env)
	default:
		return nil, e.runtimeErrorf(expr.Pos(), "unsupported expression %T", expr)
	}
}

func (e *Evaluator) evalInterpolatedString(is *ast.InterpolatedString, env *environment.Environment) (value.Value, error) {
	var sb strings.Builder
	for _, part := range is.Parts {
		v, err := e.evalExpression(part, env)
		if err != nil {
			return nil, err
		}
		sb.WriteString(value.CanonicalKey(v))
	}
	return value.String(sb.String()), nil
}

func (e *Evaluator) evalArrayLiteral(lit *ast.ArrayLiteral, env *environment.Environment) (value.Value, error) {
	elems := make([]value.Value, len(lit.Elements))
	for i, el := range lit.Elements {
		if _, ok := el.(*ast.Hole); ok {
			elems[i] = value.NilValue
			continue
		}
		v, err := e.evalExpression(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalObjectLiteral(lit *ast.ObjectLiteral, env *environment.Environment) (value.Value, error) {
	obj := value.NewObject()
	for _, prop := range lit.Properties {
		key := prop.Key
		if prop.Computed {
			kv, err := e.evalExpression(prop.KeyExpr, env)
			if err != nil {
				return nil, err
			}
			key = value.CanonicalKey(kv)
		}
		v, err := e.evalExpression(prop.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (e *Evaluator) evalUnary(ex *ast.UnaryExpression, env *environment.Environment) (value.Value, error) {
	v, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}
	switch ex.Operator {
	case "-":
		n, ok := v.(value.Number)
		if !ok {
			return nil, e.runtimeErrorf(ex.Pos(), "Expected number")
		}
		return value.NumNeg(n), nil
	case "!":
		return value.Bool(!v.Truthy()), nil
	default:
		return nil, e.runtimeErrorf(ex.Pos(), "unknown unary operator %q", ex.Operator)
	}
}

func (e *Evaluator) evalBinary(ex *ast.BinaryExpression, env *environment.Environment) (value.Value, error) {
	switch ex.Operator {
	case "&&":
		left, err := e.evalExpression(ex.Left, env)
		if err != nil {
			return nil, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return e.evalExpression(ex.Right, env)
	case "||":
		left, err := e.evalExpression(ex.Left, env)
		if err != nil {
			return nil, err
		}
		if left.Truthy() {
			return left, nil
		}
		return e.evalExpression(ex.Right, env)
	case "??":
		left, err := e.evalExpression(ex.Left, env)
		if err != nil {
			return nil, err
		}
		if _, isNil := left.(value.Nil); !isNil {
			return left, nil
		}
		return e.evalExpression(ex.Right, env)
	}

	left, err := e.evalExpression(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}
	return e.applyBinaryOp(ex.Operator, left, right, ex.Pos())
}

func (e *Evaluator) applyBinaryOp(op string, left, right value.Value, pos token.Position) (value.Value, error) {
	switch op {
	case "+":
		v, err := value.Add(left, right)
		if err != nil {
			return nil, e.runtimeErrorf(pos, "%s", err.Error())
		}
		return v, nil
	case "-", "*", "/", "%":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, e.runtimeErrorf(pos, "Expected number")
		}
		switch op {
		case "-":
			return value.NumSub(ln, rn), nil
		case "*":
			return value.NumMul(ln, rn), nil
		case "/":
			v, err := value.NumDiv(ln, rn)
			if err != nil {
				return nil, e.runtimeErrorf(pos, "%s", err.Error())
			}
			return v, nil
		default:
			v, err := value.NumMod(ln, rn)
			if err != nil {
				return nil, e.runtimeErrorf(pos, "%s", err.Error())
			}
			return v, nil
		}
	case "==":
		return value.Bool(value.Equals(left, right)), nil
	case "!=":
		return value.Bool(!value.Equals(left, right)), nil
	case "<", "<=", ">", ">=":
		cmp, err := value.Compare(left, right)
		if err != nil {
			return nil, e.runtimeErrorf(pos, "%s", err.Error())
		}
		switch op {
		case "<":
			return value.Bool(cmp < 0), nil
		case "<=":
			return value.Bool(cmp <= 0), nil
		case ">":
			return value.Bool(cmp > 0), nil
		default:
			return value.Bool(cmp >= 0), nil
		}
	default:
		return nil, e.runtimeErrorf(pos, "unknown binary operator %q", op)
	}
}

func (e *Evaluator) evalTernary(ex *ast.TernaryExpression, env *environment.Environment) (value.Value, error) {
	cond, err := e.evalExpression(ex.Cond, env)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return e.evalExpression(ex.Then, env)
	}
	return e.evalExpression(ex.Else, env)
}
