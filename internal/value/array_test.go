package value

import "testing"

func TestArrayAtNegativeIndexing(t *testing.T) {
	a := NewArray([]Value{Int(1), Int(2), Int(3)})
	got, ok := a.At(-1)
	if !ok {
		t.Fatal("At(-1) reported out of range")
	}
	if CanonicalKey(got) != CanonicalKey(Int(3)) {
		t.Errorf("At(-1) = %v, want 3", got)
	}
	if _, ok := a.At(3); ok {
		t.Error("At(3) should be out of range for a 3-element array")
	}
}

func TestArraySetAtNeverAutoExtends(t *testing.T) {
	a := NewArray([]Value{Int(1)})
	if a.SetAt(5, Int(9)) {
		t.Error("SetAt past the end should not succeed")
	}
	if !a.SetAt(0, Int(9)) {
		t.Fatal("SetAt(0) should succeed")
	}
	got, _ := a.At(0)
	if CanonicalKey(got) != CanonicalKey(Int(9)) {
		t.Errorf("got %v, want 9", got)
	}
}

func TestArrayConcat(t *testing.T) {
	a := NewArray([]Value{Int(1), Int(2)})
	b := NewArray([]Value{Int(3)})
	out := a.Concat(b)
	if out.Len() != 3 {
		t.Fatalf("concat length = %d, want 3", out.Len())
	}
	if &out.Elements[0] == &a.Elements[0] {
		t.Error("Concat should allocate a fresh backing slice")
	}
}

func TestArrayCloneIsIndependent(t *testing.T) {
	a := NewArray([]Value{Int(1)})
	clone := a.Clone()
	clone.Elements[0] = Int(2)
	got, _ := a.At(0)
	if CanonicalKey(got) != CanonicalKey(Int(1)) {
		t.Error("Clone did not produce an independent copy")
	}
}

func TestEmptyArrayIsTruthy(t *testing.T) {
	if !NewArray(nil).Truthy() {
		t.Error("expected an empty array to be truthy")
	}
}
