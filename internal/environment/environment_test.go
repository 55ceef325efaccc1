package environment

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestDefineAndGetVarLetConst(t *testing.T) {
	env := New()
	if err := env.DefineVar("a", value.Int(1)); err != nil {
		t.Fatalf("DefineVar: %v", err)
	}
	if err := env.DefineLet("b", value.Int(2), true); err != nil {
		t.Fatalf("DefineLet: %v", err)
	}
	if err := env.DefineConst("c", value.Int(3)); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}

	for name, want := range map[string]int64{"a": 1, "b": 2, "c": 3} {
		got, err := env.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if value.CanonicalKey(got) != value.CanonicalKey(value.Int(want)) {
			t.Errorf("Get(%q) = %v, want %d", name, got, want)
		}
	}
}

func TestAssignToConstErrors(t *testing.T) {
	env := New()
	if err := env.DefineConst("c", value.Int(1)); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}
	if err := env.Assign("c", value.Int(2)); err == nil {
		t.Error("expected assigning to a const to error")
	}
}

func TestLetTemporalDeadZone(t *testing.T) {
	env := New()
	if err := env.DefineLet("x", value.NilValue, false); err != nil {
		t.Fatalf("DefineLet: %v", err)
	}
	if _, err := env.Get("x"); err == nil {
		t.Error("expected reading an uninitialized let to error")
	}
	if err := env.Assign("x", value.Int(5)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got, err := env.Get("x")
	if err != nil {
		t.Fatalf("Get after assign: %v", err)
	}
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(5)) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestVarRedeclarationOverwritesButNotOverLetConst(t *testing.T) {
	env := New()
	if err := env.DefineVar("a", value.Int(1)); err != nil {
		t.Fatalf("DefineVar: %v", err)
	}
	if err := env.DefineVar("a", value.Int(2)); err != nil {
		t.Fatalf("re-declaring var: %v", err)
	}
	got, _ := env.Get("a")
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(2)) {
		t.Errorf("got %v, want 2", got)
	}

	if err := env.DefineConst("b", value.Int(1)); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}
	if err := env.DefineVar("b", value.Int(2)); err == nil {
		t.Error("expected redeclaring a const as var to error")
	}
}

func TestVarDeclarationSkipsToFunctionRoot(t *testing.T) {
	root := New()
	block := NewEnclosed(root)
	if err := block.DefineVar("x", value.Int(1)); err != nil {
		t.Fatalf("DefineVar: %v", err)
	}
	if block.HasLocally("x") {
		t.Error("var landed in the block frame, want the function-root frame")
	}
	if !root.HasLocally("x") {
		t.Error("var did not land in the function-root frame")
	}
}

func TestNewFunctionRootStopsVarSkipping(t *testing.T) {
	root := New()
	fnRoot := NewFunctionRoot(root)
	block := NewEnclosed(fnRoot)
	if err := block.DefineVar("x", value.Int(1)); err != nil {
		t.Fatalf("DefineVar: %v", err)
	}
	if !fnRoot.HasLocally("x") {
		t.Error("var did not land in the nearest function-root frame")
	}
	if root.HasLocally("x") {
		t.Error("var skipped past the function-root frame into the outer root")
	}
}

func TestGetWalksOuterChain(t *testing.T) {
	root := New()
	if err := root.DefineConst("g", value.Int(42)); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}
	child := NewEnclosed(root)
	got, err := child.Get("g")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(42)) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestGetUndefinedNameErrors(t *testing.T) {
	env := New()
	if _, err := env.Get("missing"); err == nil {
		t.Error("expected Get of an undefined name to error")
	}
}

func TestDuplicateLetOrConstInSameScopeErrors(t *testing.T) {
	env := New()
	if err := env.DefineLet("x", value.Int(1), true); err != nil {
		t.Fatalf("DefineLet: %v", err)
	}
	if err := env.DefineLet("x", value.Int(2), true); err == nil {
		t.Error("expected redeclaring a let in the same scope to error")
	}
	if err := env.DefineConst("x", value.Int(2)); err == nil {
		t.Error("expected declaring a const over an existing let to error")
	}
}
