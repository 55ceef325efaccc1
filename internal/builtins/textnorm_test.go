package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestNormalizeFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("normalize")

	got, err := info.Func([]value.Value{value.String("é"), value.String("NFC")})
	if err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if got.(value.String) != "é" {
		t.Errorf("normalize(e + combining acute, NFC) = %q, want %q", got, "é")
	}

	if _, err := info.Func([]value.Value{value.String("a"), value.String("bogus")}); err == nil {
		t.Error("expected an error for an unknown normalization form")
	}
}

func TestFoldCaseFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("fold_case")

	got, err := info.Func([]value.Value{value.String("STRASSE")})
	if err != nil {
		t.Fatalf("fold_case returned error: %v", err)
	}
	if got.(value.String) == "STRASSE" {
		t.Errorf("fold_case did not change case: %q", got)
	}
}
