package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestRegexMatchFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("regex_match")

	got, err := info.Func([]value.Value{value.String("hello123"), value.String(`\d+`)})
	if err != nil {
		t.Fatalf("regex_match returned error: %v", err)
	}
	if got != value.Bool(true) {
		t.Errorf("regex_match = %v, want true", got)
	}

	if _, err := info.Func([]value.Value{value.String("x"), value.String(`(`)}); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}

func TestRegexReplaceFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("regex_replace")

	got, err := info.Func([]value.Value{value.String("a1b2c3"), value.String(`\d`), value.String("_")})
	if err != nil {
		t.Fatalf("regex_replace returned error: %v", err)
	}
	if got.(value.String) != "a_b_c_" {
		t.Errorf("regex_replace = %q, want %q", got, "a_b_c_")
	}
}

func TestRegexFindAllFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("regex_find_all")

	got, err := info.Func([]value.Value{value.String("a1 b22 c333"), value.String(`\d+`)})
	if err != nil {
		t.Fatalf("regex_find_all returned error: %v", err)
	}
	arr := got.(*value.Array)
	if arr.Len() != 3 {
		t.Fatalf("regex_find_all found %d matches, want 3", arr.Len())
	}
	third, _ := arr.At(2)
	if third.(value.String) != "333" {
		t.Errorf("regex_find_all[2] = %q, want %q", third, "333")
	}
}
