package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func intArray(vals ...int64) *value.Array {
	elems := make([]value.Value, len(vals))
	for i, v := range vals {
		elems[i] = value.Int(v)
	}
	return value.NewArray(elems)
}

func TestRangeFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("range")

	got, err := info.Func([]value.Value{value.Int(0), value.Int(5)})
	if err != nil {
		t.Fatalf("range returned error: %v", err)
	}
	arr := got.(*value.Array)
	if arr.Len() != 5 {
		t.Fatalf("range(0,5) has %d elements, want 5", arr.Len())
	}

	if _, err := info.Func([]value.Value{value.Int(0), value.Int(5), value.Int(0)}); err == nil {
		t.Error("expected an error for a zero step")
	}
}

func TestSliceFnNegativeIndices(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("slice")

	arr := intArray(1, 2, 3, 4, 5)
	got, err := info.Func([]value.Value{arr, value.Int(-2)})
	if err != nil {
		t.Fatalf("slice returned error: %v", err)
	}
	out := got.(*value.Array)
	if out.Len() != 2 {
		t.Fatalf("slice(-2) length = %d, want 2", out.Len())
	}
	first, _ := out.At(0)
	if value.CanonicalKey(first) != value.CanonicalKey(value.Int(4)) {
		t.Errorf("slice(-2)[0] = %v, want 4", first)
	}
}

func TestUniqueFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("unique")

	arr := intArray(1, 2, 2, 3, 1)
	got, err := info.Func([]value.Value{arr})
	if err != nil {
		t.Fatalf("unique returned error: %v", err)
	}
	if got.(*value.Array).Len() != 3 {
		t.Fatalf("unique length = %d, want 3", got.(*value.Array).Len())
	}
}

func TestJoinFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("join")

	arr := intArray(1, 2, 3)
	got, err := info.Func([]value.Value{arr, value.String("-")})
	if err != nil {
		t.Fatalf("join returned error: %v", err)
	}
	if got.(value.String) != "1-2-3" {
		t.Errorf("join = %v, want 1-2-3", got)
	}
}

func TestObjectHelpers(t *testing.T) {
	r := newTestRegistry()
	keysInfo, _ := r.Lookup("keys")
	valuesInfo, _ := r.Lookup("values")
	hasKeyInfo, _ := r.Lookup("has_key")
	removeKeyInfo, _ := r.Lookup("remove_key")
	mergeInfo, _ := r.Lookup("merge")

	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.Int(2))

	keys, err := keysInfo.Func([]value.Value{obj})
	if err != nil {
		t.Fatalf("keys returned error: %v", err)
	}
	if keys.(*value.Array).Len() != 2 {
		t.Fatalf("keys length = %d, want 2", keys.(*value.Array).Len())
	}

	vals, err := valuesInfo.Func([]value.Value{obj})
	if err != nil {
		t.Fatalf("values returned error: %v", err)
	}
	if vals.(*value.Array).Len() != 2 {
		t.Fatalf("values length = %d, want 2", vals.(*value.Array).Len())
	}

	has, err := hasKeyInfo.Func([]value.Value{obj, value.String("a")})
	if err != nil {
		t.Fatalf("has_key returned error: %v", err)
	}
	if has != value.Bool(true) {
		t.Errorf("has_key(a) = %v, want true", has)
	}

	removed, err := removeKeyInfo.Func([]value.Value{obj, value.String("a")})
	if err != nil {
		t.Fatalf("remove_key returned error: %v", err)
	}
	if removed.(*value.Object).Has("a") {
		t.Error("remove_key did not remove \"a\"")
	}
	if !obj.Has("a") {
		t.Error("remove_key mutated its input object; expected a copy")
	}

	other := value.NewObject()
	other.Set("c", value.Int(3))
	merged, err := mergeInfo.Func([]value.Value{obj, other})
	if err != nil {
		t.Fatalf("merge returned error: %v", err)
	}
	if merged.(*value.Object).Len() != 3 {
		t.Errorf("merge length = %d, want 3", merged.(*value.Object).Len())
	}
}
