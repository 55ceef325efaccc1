package value

import "strings"

// Inspect renders an array or object, guarding against cycles the way a
// program can construct them (`let a = []; a[0] = a;`). A structure
// currently being printed re-enters as `[<cycle>]` / `{<cycle>}` instead
// of recursing forever.
func Inspect(v Value) string {
	return inspect(v, map[any]bool{})
}

func inspect(v Value, visiting map[any]bool) string {
	switch t := v.(type) {
	case *Array:
		if visiting[t] {
			return "[<cycle>]"
		}
		visiting[t] = true
		defer delete(visiting, t)

		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = inspectElement(e, visiting)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Object:
		if visiting[t] {
			return "{<cycle>}"
		}
		visiting[t] = true
		defer delete(visiting, t)

		keys := t.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			val, _ := t.Get(k)
			parts[i] = k + ": " + inspectElement(val, visiting)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.String()
	}
}

// inspectElement renders a nested value the way an array/object element
// is shown: strings get quoted so `println([1, "a"])` reads as
// `[1, "a"]` rather than `[1, a]`, while top-level String() stays bare so
// `println("a")` still prints `a`.
func inspectElement(v Value, visiting map[any]bool) string {
	switch t := v.(type) {
	case String:
		return "\"" + string(t) + "\""
	case *Array, *Object:
		return inspect(v, visiting)
	default:
		return v.String()
	}
}
