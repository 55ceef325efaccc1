package builtins

import (
	"fmt"
	"regexp"

	"github.com/minidyn/minidyn/internal/value"
)

// registerRegex wires the pattern-matching built-ins over stdlib regexp;
// the retrieval pack carries no third-party regex engine, so this stays
// on the standard library (noted in DESIGN.md).
func (r *Registry) registerRegex() {
	r.register("regex_match", 2, 2, "regex", "whether a string matches a pattern", regexMatchFn)
	r.register("regex_replace", 3, 3, "regex", "replace every pattern match with a replacement string", regexReplaceFn)
	r.register("regex_find_all", 2, 2, "regex", "array of every non-overlapping pattern match", regexFindAllFn)
}

func compileArgs(args []value.Value) (string, *regexp.Regexp, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return "", nil, fmt.Errorf("expected string subject")
	}
	pattern, ok := args[1].(value.String)
	if !ok {
		return "", nil, fmt.Errorf("expected string pattern")
	}
	re, err := regexp.Compile(string(pattern))
	if err != nil {
		return "", nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return string(s), re, nil
}

func regexMatchFn(args []value.Value) (value.Value, error) {
	s, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	return value.Bool(re.MatchString(s)), nil
}

func regexReplaceFn(args []value.Value) (value.Value, error) {
	s, re, err := compileArgs(args[:2])
	if err != nil {
		return nil, err
	}
	repl, ok := args[2].(value.String)
	if !ok {
		return nil, fmt.Errorf("regex_replace: expected string replacement")
	}
	return value.String(re.ReplaceAllString(s, string(repl))), nil
}

func regexFindAllFn(args []value.Value) (value.Value, error) {
	s, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(s, -1)
	out := make([]value.Value, len(matches))
	for i, m := range matches {
		out[i] = value.String(m)
	}
	return value.NewArray(out), nil
}
