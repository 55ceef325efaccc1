package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minidyn/minidyn/internal/environment"
	"github.com/minidyn/minidyn/internal/evaluator"
	"github.com/minidyn/minidyn/internal/value"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestRequireResolvesExtensionCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.mdl", `module.exports = { two: 1 + 1 };`)

	eval := evaluator.New()
	global := environment.New()
	l := New(eval, global)
	eval.Modules = l

	entry := filepath.Join(dir, "main.mdl")
	exports, err := l.Require("./math", entry)
	if err != nil {
		t.Fatalf("Require returned error: %v", err)
	}

	two, ok := exports.Get("two")
	if !ok {
		t.Fatal("exports has no \"two\" key")
	}
	if value.CanonicalKey(two) != value.CanonicalKey(value.Int(2)) {
		t.Errorf("two = %v, want 2", two)
	}
}

func TestRequireCachesByAbsolutePathCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "counter.mdl", `module.exports = { n: 1 };`)

	eval := evaluator.New()
	global := environment.New()
	l := New(eval, global)
	eval.Modules = l

	entry := filepath.Join(dir, "main.mdl")
	first, err := l.Require("./counter", entry)
	if err != nil {
		t.Fatalf("first Require returned error: %v", err)
	}
	second, err := l.Require("./COUNTER", entry)
	if err != nil {
		t.Fatalf("second Require returned error: %v", err)
	}
	if first != second {
		t.Error("expected the same exports object from a case-differing re-require")
	}
}

func TestRequireIndexFallback(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "index.mdl", `module.exports = { loaded: true };`)

	eval := evaluator.New()
	global := environment.New()
	l := New(eval, global)
	eval.Modules = l

	entry := filepath.Join(dir, "main.mdl")
	exports, err := l.Require("./pkg", entry)
	if err != nil {
		t.Fatalf("Require returned error: %v", err)
	}
	loaded, ok := exports.Get("loaded")
	if !ok || loaded != value.Bool(true) {
		t.Errorf("loaded = %v, want true", loaded)
	}
}

func TestRequireMissingModuleErrors(t *testing.T) {
	dir := t.TempDir()
	eval := evaluator.New()
	global := environment.New()
	l := New(eval, global)
	eval.Modules = l

	entry := filepath.Join(dir, "main.mdl")
	if _, err := l.Require("./does-not-exist", entry); err == nil {
		t.Error("expected an error for a missing module")
	}
}
