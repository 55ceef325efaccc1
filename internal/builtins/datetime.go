package builtins

import (
	"fmt"
	"time"

	"github.com/minidyn/minidyn/internal/value"
)

// registerDateTime wires the date/time built-ins over stdlib time; the
// retrieval pack carries no third-party date/time library (noted in
// DESIGN.md). Timestamps are Unix seconds as a MiniDyn number;
// format/parse use Go's reference-time layout strings directly rather
// than inventing a template mini-language.
func (r *Registry) registerDateTime() {
	r.register("now", 0, 0, "datetime", "current Unix timestamp in seconds", nowFn)
	r.register("format_date", 2, 2, "datetime", "format a Unix timestamp with a Go reference-time layout", formatDateFn)
	r.register("parse_date", 2, 2, "datetime", "parse a timestamp string with a Go reference-time layout", parseDateFn)
	r.register("add_duration", 2, 2, "datetime", "add a number of seconds to a Unix timestamp", addDurationFn)
}

func nowFn(_ []value.Value) (value.Value, error) {
	return value.Int(time.Now().Unix()), nil
}

func formatDateFn(args []value.Value) (value.Value, error) {
	ts, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	layout, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("format_date: expected layout string")
	}
	t := time.Unix(ts.AsBig().Int64(), 0).UTC()
	return value.String(t.Format(string(layout))), nil
}

func parseDateFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("parse_date: expected timestamp string")
	}
	layout, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("parse_date: expected layout string")
	}
	t, err := time.Parse(string(layout), string(s))
	if err != nil {
		return nil, fmt.Errorf("parse_date: %w", err)
	}
	return value.Int(t.Unix()), nil
}

func addDurationFn(args []value.Value) (value.Value, error) {
	ts, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	secs, err := requireNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return value.NumAdd(ts, secs), nil
}
