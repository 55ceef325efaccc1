package evaluator

import (
	"fmt"
	"strconv"

	"github.com/minidyn/minidyn/internal/value"
)

// forEachItems materializes the sequence a for-of (isOf) or for-in
// (!isOf) head walks: for-of yields values (array elements in index
// order, one-char strings per rune, object values in insertion
// order), for-in yields keys (stringified indices for arrays/strings,
// insertion-order keys for objects). nil yields zero iterations in
// either mode; any other source is an error.
func forEachItems(iterable value.Value, isOf bool) ([]value.Value, error) {
	switch v := iterable.(type) {
	case value.Nil:
		return nil, nil
	case *value.Array:
		if isOf {
			out := make([]value.Value, len(v.Elements))
			copy(out, v.Elements)
			return out, nil
		}
		out := make([]value.Value, len(v.Elements))
		for i := range v.Elements {
			out[i] = value.String(strconv.Itoa(i))
		}
		return out, nil
	case value.String:
		r := []rune(string(v))
		out := make([]value.Value, len(r))
		for i, c := range r {
			if isOf {
				out[i] = value.String(string(c))
			} else {
				out[i] = value.String(strconv.Itoa(i))
			}
		}
		return out, nil
	case *value.Object:
		keys := v.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			if isOf {
				ev, _ := v.Get(k)
				out[i] = ev
			} else {
				out[i] = value.String(k)
			}
		}
		return out, nil
	default:
		kw := "for-in"
		if isOf {
			kw = "for-of"
		}
		return nil, fmt.Errorf("%s requires an array, string, or object, got %s", kw, iterable.Kind())
	}
}
