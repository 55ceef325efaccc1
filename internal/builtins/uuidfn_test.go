package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestUUIDV4FnProducesDistinctValidUUIDs(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("uuid_v4")

	a, err := info.Func(nil)
	if err != nil {
		t.Fatalf("uuid_v4 returned error: %v", err)
	}
	b, err := info.Func(nil)
	if err != nil {
		t.Fatalf("uuid_v4 returned error: %v", err)
	}
	if a == b {
		t.Error("two uuid_v4 calls returned the same value")
	}
	if len(string(a.(value.String))) != 36 {
		t.Errorf("uuid_v4 length = %d, want 36", len(string(a.(value.String))))
	}
}

func TestUUIDV5FnIsDeterministic(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("uuid_v5")

	ns := value.String("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	name := value.String("example.com")

	a, err := info.Func([]value.Value{ns, name})
	if err != nil {
		t.Fatalf("uuid_v5 returned error: %v", err)
	}
	b, err := info.Func([]value.Value{ns, name})
	if err != nil {
		t.Fatalf("uuid_v5 returned error: %v", err)
	}
	if a != b {
		t.Errorf("uuid_v5 was not deterministic: %v != %v", a, b)
	}

	if _, err := info.Func([]value.Value{value.String("not-a-uuid"), name}); err == nil {
		t.Error("expected an error for an invalid namespace UUID")
	}
}
