package builtins

import (
	"os"
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestGetenvSetenvRoundTrip(t *testing.T) {
	r := newTestRegistry()
	getInfo, _ := r.Lookup("getenv")
	setInfo, _ := r.Lookup("setenv")

	const key = "MINIDYN_BUILTINS_TEST_VAR"
	defer os.Unsetenv(key)

	missing, err := getInfo.Func([]value.Value{value.String(key)})
	if err != nil {
		t.Fatalf("getenv returned error: %v", err)
	}
	if missing != value.NilValue {
		t.Errorf("getenv of an unset variable = %v, want nil", missing)
	}

	if _, err := setInfo.Func([]value.Value{value.String(key), value.String("set-value")}); err != nil {
		t.Fatalf("setenv returned error: %v", err)
	}

	got, err := getInfo.Func([]value.Value{value.String(key)})
	if err != nil {
		t.Fatalf("getenv returned error: %v", err)
	}
	if got.(value.String) != "set-value" {
		t.Errorf("getenv = %q, want %q", got, "set-value")
	}
}
