package value

import "testing"

func TestObjectSetPreservesInsertionOrderOnReassignment(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	o.Set("a", Int(99))

	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", keys)
	}
	got, _ := o.Get("a")
	if CanonicalKey(got) != CanonicalKey(Int(99)) {
		t.Errorf("a = %v, want 99", got)
	}
}

func TestObjectDeletePreservesRemainingOrder(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	o.Set("c", Int(3))
	o.Delete("b")

	if o.Has("b") {
		t.Error("b should have been deleted")
	}
	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("keys = %v, want [a c]", keys)
	}
}

func TestObjectCloneIsIndependent(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))
	clone := o.Clone()
	clone.Set("a", Int(2))
	got, _ := o.Get("a")
	if CanonicalKey(got) != CanonicalKey(Int(1)) {
		t.Error("Clone did not produce an independent copy")
	}
}

func TestObjectDeleteOfMissingKeyIsNoop(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))
	o.Delete("missing")
	if o.Len() != 1 {
		t.Errorf("Len = %d, want 1", o.Len())
	}
}

func TestEmptyObjectIsTruthy(t *testing.T) {
	if !NewObject().Truthy() {
		t.Error("expected an empty object to be truthy")
	}
}
