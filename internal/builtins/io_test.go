package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestPrintlnJoinsArgsWithSpaces(t *testing.T) {
	var out bytes.Buffer
	r := New(directInvoker{}, &out, strings.NewReader(""))

	info, _ := r.Lookup("println")
	if _, err := info.Func([]value.Value{value.Int(1), value.String("two"), value.Bool(true)}); err != nil {
		t.Fatalf("println returned error: %v", err)
	}

	if got := out.String(); got != "1 two true\n" {
		t.Errorf("got %q, want %q", got, "1 two true\n")
	}
}

func TestGetsReadsOneLineAtATime(t *testing.T) {
	r := New(directInvoker{}, &bytes.Buffer{}, strings.NewReader("first\nsecond\n"))
	info, _ := r.Lookup("gets")

	first, err := info.Func(nil)
	if err != nil {
		t.Fatalf("gets returned error: %v", err)
	}
	if first.(value.String) != "first" {
		t.Errorf("first gets() = %v, want \"first\"", first)
	}

	second, err := info.Func(nil)
	if err != nil {
		t.Fatalf("gets returned error: %v", err)
	}
	if second.(value.String) != "second" {
		t.Errorf("second gets() = %v, want \"second\"", second)
	}
}
