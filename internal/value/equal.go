package value

import "strconv"

// CanonicalKey stringifies v the way object-index coercion (`o[k]`) and
// `+` string-concatenation do: scalars print bare, arrays/objects go
// through the cycle-safe Inspect form.
func CanonicalKey(v Value) string {
	switch v.(type) {
	case *Array, *Object:
		return Inspect(v)
	default:
		return v.String()
	}
}

// Equals implements MiniDyn's equality rules: same-type values compare
// by numeric/ordinal/identity value; cross-type number/string compares
// attempt to parse the string numerically, otherwise false.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		switch bv := b.(type) {
		case Number:
			return NumEqual(av, bv)
		case String:
			n, ok := TryParseNumber(string(bv))
			return ok && NumEqual(av, n)
		default:
			return false
		}
	case String:
		switch bv := b.(type) {
		case String:
			return av == bv
		case Number:
			n, ok := TryParseNumber(string(av))
			return ok && NumEqual(n, bv)
		default:
			return false
		}
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case Callable:
		bv, ok := b.(Callable)
		return ok && av.ID() == bv.ID()
	default:
		return false
	}
}

// TryParseNumber parses s as a MiniDyn number literal for cross-type
// equality coercion. It accepts plain decimal integers and floats; it
// does not accept the lexer's `_`-separated or `0x`/`0b` literal forms,
// since those are source-syntax concerns, not runtime string contents.
func TryParseNumber(s string) (Number, bool) {
	if s == "" {
		return Number{}, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), true
	}
	if n, err := ParseIntLiteral(s); err == nil {
		return n, true
	}
	return Number{}, false
}

// DeepEqual recursively compares values, including array/object
// structure, terminating on cyclic inputs by tracking visited pointer
// pairs.
func DeepEqual(a, b Value) bool {
	return deepEqual(a, b, map[[2]any]bool{})
}

func deepEqual(a, b Value, visiting map[[2]any]bool) bool {
	aArr, aIsArr := a.(*Array)
	bArr, bIsArr := b.(*Array)
	if aIsArr && bIsArr {
		if aArr == bArr {
			return true
		}
		key := [2]any{aArr, bArr}
		if visiting[key] {
			return true
		}
		if len(aArr.Elements) != len(bArr.Elements) {
			return false
		}
		visiting[key] = true
		defer delete(visiting, key)
		for i := range aArr.Elements {
			if !deepEqual(aArr.Elements[i], bArr.Elements[i], visiting) {
				return false
			}
		}
		return true
	}

	aObj, aIsObj := a.(*Object)
	bObj, bIsObj := b.(*Object)
	if aIsObj && bIsObj {
		if aObj == bObj {
			return true
		}
		key := [2]any{aObj, bObj}
		if visiting[key] {
			return true
		}
		if aObj.Len() != bObj.Len() {
			return false
		}
		visiting[key] = true
		defer delete(visiting, key)
		for _, k := range aObj.Keys() {
			av, _ := aObj.Get(k)
			bv, ok := bObj.Get(k)
			if !ok || !deepEqual(av, bv, visiting) {
				return false
			}
		}
		return true
	}

	if aIsArr != bIsArr || aIsObj != bIsObj {
		return false
	}

	return Equals(a, b)
}

// CloneDeep returns a structurally independent deep copy of v, safe on
// cyclic inputs (shared substructure is preserved per original pointer
// identity, matching typical deep-clone semantics).
func CloneDeep(v Value) Value {
	return cloneDeep(v, map[any]Value{})
}

func cloneDeep(v Value, seen map[any]Value) Value {
	switch t := v.(type) {
	case *Array:
		if c, ok := seen[t]; ok {
			return c
		}
		out := NewArray(make([]Value, len(t.Elements)))
		seen[t] = out
		for i, e := range t.Elements {
			out.Elements[i] = cloneDeep(e, seen)
		}
		return out
	case *Object:
		if c, ok := seen[t]; ok {
			return c
		}
		out := NewObject()
		seen[t] = out
		for _, k := range t.Keys() {
			ev, _ := t.Get(k)
			out.Set(k, cloneDeep(ev, seen))
		}
		return out
	default:
		return v
	}
}
