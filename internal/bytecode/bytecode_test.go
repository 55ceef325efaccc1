package bytecode

import (
	"strings"
	"testing"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// stubHost satisfies Host for the arithmetic-only functions these tests
// compile: only ApplyBinaryOp is reached, since none of them touch names,
// properties, indices, or calls.
type stubHost struct{}

func (stubHost) GetProperty(value.Value, string, token.Position) (value.Value, error) {
	panic("not reached")
}
func (stubHost) SetProperty(value.Value, string, value.Value, token.Position) error {
	panic("not reached")
}
func (stubHost) GetIndexed(value.Value, value.Value, token.Position) (value.Value, error) {
	panic("not reached")
}
func (stubHost) SetIndexed(value.Value, value.Value, value.Value, token.Position) error {
	panic("not reached")
}
func (stubHost) ApplyBinaryOp(op string, left, right value.Value, _ token.Position) (value.Value, error) {
	switch op {
	case "+":
		return value.NumAdd(left.(value.Number), right.(value.Number)), nil
	default:
		panic("not reached")
	}
}
func (stubHost) GetName(*environment.Environment, string, token.Position) (value.Value, error) {
	panic("not reached")
}
func (stubHost) SetName(*environment.Environment, string, value.Value, token.Position) error {
	panic("not reached")
}
func (stubHost) InvokePositional(value.Callable, []value.Value, token.Position) (value.Value, error) {
	panic("not reached")
}

func ident(name string) ast.Pattern {
	return &ast.IdentifierPattern{Name: name}
}

// addFn builds the AST for `fn(a, b) => a + b` directly, sidestepping the
// parser so the test exercises only the compiler and VM.
func addFn() *ast.FunctionLiteral {
	return &ast.FunctionLiteral{
		Params: []ast.Param{
			{Pattern: ident("a")},
			{Pattern: ident("b")},
		},
		ExprBody: true,
		Body: &ast.ExpressionStatement{
			Expr: &ast.BinaryExpression{
				Left:     &ast.Identifier{Name: "a"},
				Operator: "+",
				Right:    &ast.Identifier{Name: "b"},
			},
		},
	}
}

func TestCompileSimpleArithmeticFunction(t *testing.T) {
	chunk, params, ok := Compile(addFn())
	if !ok {
		t.Fatal("Compile reported a form it should support as unsupported")
	}
	if len(params) != 2 || params[0] != "a" || params[1] != "b" {
		t.Errorf("params = %v, want [a b]", params)
	}
	if len(chunk.Code) == 0 {
		t.Error("expected a non-empty compiled chunk")
	}
}

func TestCompileRejectsDefaultParameters(t *testing.T) {
	fn := addFn()
	fn.Params[1].Default = &ast.IntLiteral{Value: 2}
	if _, _, ok := Compile(fn); ok {
		t.Error("expected Compile to refuse a default parameter")
	}
}

func TestCompileRejectsRestParameters(t *testing.T) {
	fn := addFn()
	fn.Params[1].Rest = true
	if _, _, ok := Compile(fn); ok {
		t.Error("expected Compile to refuse a rest parameter")
	}
}

func TestFunctionCallRunsCompiledChunk(t *testing.T) {
	chunk, params, ok := Compile(addFn())
	if !ok {
		t.Fatal("Compile failed")
	}
	global := environment.New()
	fn := New(addFn(), chunk, params, global)

	got, err := fn.Call(stubHost{}, []value.Value{value.Int(2), value.Int(3)}, token.Position{})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(5)) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestDisassembleMentionsFunctionNameAndOpcodes(t *testing.T) {
	chunk, _, ok := Compile(addFn())
	if !ok {
		t.Fatal("Compile failed")
	}
	out := Disassemble("add", chunk)
	if !strings.Contains(out, "add") {
		t.Errorf("disassembly missing function name: %s", out)
	}
	if !strings.Contains(out, "OpAdd") && !strings.Contains(out, "ADD") {
		t.Errorf("disassembly missing an add opcode mnemonic: %s", out)
	}
}
