package value

import "testing"

func TestNextFunctionIDIsUniqueAndMonotonic(t *testing.T) {
	a := NextFunctionID()
	b := NextFunctionID()
	if a == b {
		t.Error("expected two calls to NextFunctionID to differ")
	}
	if b <= a {
		t.Errorf("expected IDs to increase: %d then %d", a, b)
	}
}

func TestNewBuiltinArityAndIdentity(t *testing.T) {
	b := NewBuiltin("double", 1, 1, func(args []Value) (Value, error) {
		return NumAdd(args[0].(Number), args[0].(Number)), nil
	})
	if b.FuncName() != "double" {
		t.Errorf("FuncName = %q, want %q", b.FuncName(), "double")
	}
	if b.ArityMin() != 1 || b.ArityMax() != 1 {
		t.Errorf("arity = [%d,%d], want [1,1]", b.ArityMin(), b.ArityMax())
	}
	got, err := b.Fn([]Value{Int(2)})
	if err != nil {
		t.Fatalf("Fn returned error: %v", err)
	}
	if CanonicalKey(got) != CanonicalKey(Int(4)) {
		t.Errorf("got %v, want 4", got)
	}
}
