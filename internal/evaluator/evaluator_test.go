package evaluator

import (
	"bytes"
	"testing"

	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/parser"
	"github.com/minidyn/minidyn/internal/value"
)

func mustEval(t *testing.T, source string) value.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(source, "<test>")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := New()
	env := environment.New()
	got, err := ev.EvalProgram(prog, env)
	if err != nil {
		t.Fatalf("EvalProgram returned error: %v", err)
	}
	return got
}

func TestUndefinedNameIsRuntimeError(t *testing.T) {
	prog, errs := parser.ParseProgram(`missingName;`, "<test>")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := New()
	_, err := ev.EvalProgram(prog, environment.New())
	if err == nil {
		t.Fatal("expected a runtime error for an undefined name")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Errorf("error type = %T, want *RuntimeError", err)
	}
}

func TestThrowProducesThrownValue(t *testing.T) {
	prog, errs := parser.ParseProgram(`throw "boom";`, "<test>")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := New()
	_, err := ev.EvalProgram(prog, environment.New())
	thrown, ok := err.(*ThrownValue)
	if !ok {
		t.Fatalf("error type = %T, want *ThrownValue", err)
	}
	if thrown.Value.(value.String) != "boom" {
		t.Errorf("thrown value = %v, want %q", thrown.Value, "boom")
	}
}

func TestTryCatchHandlesThrow(t *testing.T) {
	got := mustEval(t, `
		let result = 0;
		try {
			throw "oops";
		} catch (e) {
			result = 1;
		}
		result;
	`)
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(1)) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestCallStackDepthIsBounded(t *testing.T) {
	prog, errs := parser.ParseProgram(`
		fn recurse(n) { return 1 + recurse(n+1); }
		recurse(0);
	`, "<test>")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := New()
	_, err := ev.EvalProgram(prog, environment.New())
	if err == nil {
		t.Fatal("expected non-tail-call recursion to eventually exceed the call depth limit")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Errorf("error type = %T, want *RuntimeError", err)
	}
}

func TestTraceWritesCallAndReturnLines(t *testing.T) {
	var buf bytes.Buffer
	ev := New()
	ev.Trace = &buf
	env := environment.New()

	prog, errs := parser.ParseProgram(`fn f(x){ return x; } f(1);`, "<test>")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := ev.EvalProgram(prog, env); err != nil {
		t.Fatalf("EvalProgram returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected trace output for a function call")
	}
}
