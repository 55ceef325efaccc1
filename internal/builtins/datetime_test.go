package builtins

import (
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestFormatAndParseDateRoundTrip(t *testing.T) {
	r := newTestRegistry()
	formatInfo, _ := r.Lookup("format_date")
	parseInfo, _ := r.Lookup("parse_date")

	layout := value.String("2006-01-02T15:04:05Z")
	ts := value.Int(1700000000)

	formatted, err := formatInfo.Func([]value.Value{ts, layout})
	if err != nil {
		t.Fatalf("format_date returned error: %v", err)
	}

	parsed, err := parseInfo.Func([]value.Value{formatted, layout})
	if err != nil {
		t.Fatalf("parse_date returned error: %v", err)
	}
	if value.CanonicalKey(parsed) != value.CanonicalKey(ts) {
		t.Errorf("round trip = %v, want %v", parsed, ts)
	}
}

func TestAddDurationFn(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("add_duration")

	got, err := info.Func([]value.Value{value.Int(1000), value.Int(60)})
	if err != nil {
		t.Fatalf("add_duration returned error: %v", err)
	}
	if value.CanonicalKey(got) != value.CanonicalKey(value.Int(1060)) {
		t.Errorf("add_duration = %v, want 1060", got)
	}
}

func TestNowFnReturnsPositiveTimestamp(t *testing.T) {
	r := newTestRegistry()
	info, _ := r.Lookup("now")

	got, err := info.Func(nil)
	if err != nil {
		t.Fatalf("now returned error: %v", err)
	}
	if got.(value.Number).AsFloat() <= 0 {
		t.Errorf("now() = %v, want a positive timestamp", got)
	}
}
