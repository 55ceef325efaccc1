package value

import "fmt"

// Add implements `+`: number+number is numeric add; if either operand is
// a string the other is stringified and concatenated; array+array
// concatenates into a new array; anything else is an error.
func Add(a, b Value) (Value, error) {
	an, aIsNum := a.(Number)
	bn, bIsNum := b.(Number)
	if aIsNum && bIsNum {
		return NumAdd(an, bn), nil
	}
	_, aIsStr := a.(String)
	_, bIsStr := b.(String)
	if aIsStr || bIsStr {
		return String(CanonicalKey(a) + CanonicalKey(b)), nil
	}
	aArr, aIsArr := a.(*Array)
	bArr, bIsArr := b.(*Array)
	if aIsArr && bIsArr {
		return aArr.Concat(bArr), nil
	}
	return nil, fmt.Errorf("invalid operands for '+': %s and %s", a.Kind(), b.Kind())
}

// Compare implements ordered comparison (`< <= > >=`): defined only for
// two numbers or two strings.
func Compare(a, b Value) (int, error) {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s and %s", a.Kind(), b.Kind())
		}
		return NumCompare(av, bv), nil
	case String:
		bv, ok := b.(String)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s and %s", a.Kind(), b.Kind())
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("cannot compare %s and %s", a.Kind(), b.Kind())
	}
}

// RequireNumber asserts v is a Number, for arithmetic operators that
// (unlike `+`) are numeric-only.
func RequireNumber(v Value) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return Number{}, fmt.Errorf("expected number, got %s", v.Kind())
	}
	return n, nil
}
