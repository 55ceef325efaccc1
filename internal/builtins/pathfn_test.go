package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestPathHelpers(t *testing.T) {
	r := newTestRegistry()
	joinInfo, _ := r.Lookup("path_join")
	dirInfo, _ := r.Lookup("path_dir")
	baseInfo, _ := r.Lookup("path_base")
	extInfo, _ := r.Lookup("path_ext")

	joined, err := joinInfo.Func([]value.Value{value.String("a"), value.String("b"), value.String("c.txt")})
	if err != nil {
		t.Fatalf("path_join returned error: %v", err)
	}
	if joined.(value.String) != "a/b/c.txt" {
		t.Errorf("path_join = %q, want %q", joined, "a/b/c.txt")
	}

	dir, err := dirInfo.Func([]value.Value{value.String("a/b/c.txt")})
	if err != nil {
		t.Fatalf("path_dir returned error: %v", err)
	}
	if dir.(value.String) != "a/b" {
		t.Errorf("path_dir = %q, want %q", dir, "a/b")
	}

	base, err := baseInfo.Func([]value.Value{value.String("a/b/c.txt")})
	if err != nil {
		t.Fatalf("path_base returned error: %v", err)
	}
	if base.(value.String) != "c.txt" {
		t.Errorf("path_base = %q, want %q", base, "c.txt")
	}

	ext, err := extInfo.Func([]value.Value{value.String("a/b/c.txt")})
	if err != nil {
		t.Fatalf("path_ext returned error: %v", err)
	}
	if ext.(value.String) != ".txt" {
		t.Errorf("path_ext = %q, want %q", ext, ".txt")
	}
}
