package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestJSONRoundTrip(t *testing.T) {
	r := newTestRegistry()
	encodeInfo, _ := r.Lookup("json_encode")
	decodeInfo, _ := r.Lookup("json_decode")

	obj := value.NewObject()
	obj.Set("name", value.String("ada"))
	obj.Set("age", value.Int(36))
	arr := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	obj.Set("tags", arr)

	encoded, err := encodeInfo.Func([]value.Value{obj})
	if err != nil {
		t.Fatalf("json_encode returned error: %v", err)
	}

	decoded, err := decodeInfo.Func([]value.Value{encoded})
	if err != nil {
		t.Fatalf("json_decode returned error: %v", err)
	}

	out, ok := decoded.(*value.Object)
	if !ok {
		t.Fatalf("decoded value is not an object: %T", decoded)
	}
	name, _ := out.Get("name")
	if name.(value.String) != "ada" {
		t.Errorf("name = %v, want ada", name)
	}
	age, _ := out.Get("age")
	if value.CanonicalKey(age) != value.CanonicalKey(value.Int(36)) {
		t.Errorf("age = %v, want 36", age)
	}
}

func TestJSONGetSet(t *testing.T) {
	r := newTestRegistry()
	getInfo, _ := r.Lookup("json_get")
	setInfo, _ := r.Lookup("json_set")

	doc := value.String(`{"a":{"b":1}}`)

	got, err := getInfo.Func([]value.Value{doc, value.String("a.b")})
	if err != nil {
		t.Fatalf("json_get returned error: %v", err)
	}
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(1)) {
		t.Errorf("json_get a.b = %v, want 1", got)
	}

	updated, err := setInfo.Func([]value.Value{doc, value.String("a.b"), value.Int(2)})
	if err != nil {
		t.Fatalf("json_set returned error: %v", err)
	}

	got2, err := getInfo.Func([]value.Value{updated, value.String("a.b")})
	if err != nil {
		t.Fatalf("json_get after set returned error: %v", err)
	}
	if value.CanonicalKey(got2) != value.CanonicalKey(value.Int(2)) {
		t.Errorf("json_get a.b after set = %v, want 2", got2)
	}
}
