package builtins

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// registerText wires Unicode normalization and case-folding over
// golang.org/x/text, the teacher's own library for this (its string
// helpers normalize identifiers the same way).
func (r *Registry) registerText() {
	r.register("normalize", 2, 2, "text", "Unicode-normalize a string to one of \"NFC\"/\"NFD\"/\"NFKC\"/\"NFKD\"", normalizeFn)
	r.register("fold_case", 1, 1, "text", "Unicode case-fold a string for caseless comparison", foldCaseFn)
}

func normalizeFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("normalize: expected string")
	}
	form, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("normalize: expected form string")
	}
	var f norm.Form
	switch form {
	case "NFC":
		f = norm.NFC
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		return nil, fmt.Errorf("normalize: unknown form %q", form)
	}
	return value.String(f.String(string(s))), nil
}

func foldCaseFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("fold_case: expected string")
	}
	return value.String(cases.Fold().String(string(s))), nil
}
