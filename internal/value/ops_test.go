package value

import "testing"

func TestAddNumbers(t *testing.T) {
	got, err := Add(Int(2), Int(3))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if CanonicalKey(got) != CanonicalKey(Int(5)) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestAddStringConcatenationCoercesNonString(t *testing.T) {
	got, err := Add(String("count: "), Int(5))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if got.(String) != "count: 5" {
		t.Errorf("got %q, want %q", got, "count: 5")
	}
}

func TestAddArrayConcatenation(t *testing.T) {
	a := NewArray([]Value{Int(1)})
	b := NewArray([]Value{Int(2)})
	got, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if got.(*Array).Len() != 2 {
		t.Errorf("got length %d, want 2", got.(*Array).Len())
	}
}

func TestAddIncompatibleTypesErrors(t *testing.T) {
	if _, err := Add(Bool(true), NewObject()); err == nil {
		t.Error("expected an error adding a bool and an object")
	}
}

func TestCompareNumbersAndStrings(t *testing.T) {
	cmp, err := Compare(Int(1), Int(2))
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if cmp != -1 {
		t.Errorf("got %d, want -1", cmp)
	}

	cmp, err = Compare(String("a"), String("b"))
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if cmp != -1 {
		t.Errorf("got %d, want -1", cmp)
	}
}

func TestCompareMismatchedTypesErrors(t *testing.T) {
	if _, err := Compare(Int(1), String("a")); err == nil {
		t.Error("expected an error comparing a number and a string")
	}
	if _, err := Compare(Bool(true), Bool(false)); err == nil {
		t.Error("expected an error comparing two bools (unordered type)")
	}
}

func TestRequireNumber(t *testing.T) {
	if _, err := RequireNumber(Int(1)); err != nil {
		t.Errorf("RequireNumber(Int(1)) returned error: %v", err)
	}
	if _, err := RequireNumber(String("1")); err == nil {
		t.Error("expected RequireNumber to reject a string")
	}
}
