package runtime

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minidyn/minidyn/internal/parser"
)

func evalSource(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	rt := New(&out, strings.NewReader(""))
	if err := rt.Prepare("<test>"); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	prog, errs := parser.ParseProgram(source, "<test>")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := rt.Eval.EvalProgram(prog, rt.Global); err != nil {
		t.Fatalf("EvalProgram returned error: %v", err)
	}
	return out.String()
}

// TestPrintlnArithmeticScenario exercises spec.md's first end-to-end
// scenario: println(1+2*3) must print 7.
func TestPrintlnArithmeticScenario(t *testing.T) {
	got := evalSource(t, `println(1+2*3);`)
	if got != "7\n" {
		t.Errorf("got %q, want %q", got, "7\n")
	}
}

// TestRestParameterLengthScenario exercises spec.md's third end-to-end
// scenario: a rest parameter plus the length built-in.
func TestRestParameterLengthScenario(t *testing.T) {
	got := evalSource(t, `fn f(x=1,y=2,...r){ return x+y+length(r) } println(f(3,4,5,6));`)
	if got != "9\n" {
		t.Errorf("got %q, want %q", got, "9\n")
	}
}

func TestBuiltinsAreReachableFromGlobalEnvironment(t *testing.T) {
	got := evalSource(t, `println(map([1,2,3], fn(x){ return x * 2; }));`)
	if got != "[2, 4, 6]\n" {
		t.Errorf("got %q, want %q", got, "[2, 4, 6]\n")
	}
}

// TestCompoundPropertyAssignmentScenario exercises spec.md's second
// end-to-end scenario: compound assignment through a property access.
func TestCompoundPropertyAssignmentScenario(t *testing.T) {
	got := evalSource(t, `let o = { a: 1 }; o.a += 5; println(o.a);`)
	if got != "6\n" {
		t.Errorf("got %q, want %q", got, "6\n")
	}
}

// TestOptionalChainingScenario exercises spec.md's fourth end-to-end
// scenario: optional chaining short-circuits to nil through a nil base.
func TestOptionalChainingScenario(t *testing.T) {
	got := evalSource(t, `let u = nil; println(u?.p?.q);`)
	if got != "nil\n" {
		t.Errorf("got %q, want %q", got, "nil\n")
	}
}

// TestDestructuringWithDefaultsHolesAndRestScenario exercises spec.md's
// fifth end-to-end scenario: array destructuring with a default, a hole,
// and a rest pattern.
func TestDestructuringWithDefaultsHolesAndRestScenario(t *testing.T) {
	got := evalSource(t, `let [a,b=2,...r] = [1, , 3, 4]; println(a, b, r);`)
	if got != "1 2 [3, 4]\n" {
		t.Errorf("got %q, want %q", got, "1 2 [3, 4]\n")
	}
}

// TestDeepTailRecursionScenario exercises spec.md's sixth end-to-end
// scenario: tail-recursive accumulation must not overflow the call stack.
func TestDeepTailRecursionScenario(t *testing.T) {
	got := evalSource(t, `fn sum(n, acc){ if (n==0) return acc; return sum(n-1, acc+n) } println(sum(100000, 0));`)
	if got != "5000050000\n" {
		t.Errorf("got %q, want %q", got, "5000050000\n")
	}
}
