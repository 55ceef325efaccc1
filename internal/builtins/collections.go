package builtins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// registerCollections wires the array/object/string combinators as
// native Value-tower code: these are language-level operations, not a
// host wrapper around any library, per spec.md §4.H.
func (r *Registry) registerCollections() {
	r.register("length", 1, 1, "collections", "element/key/rune count of an array, object, or string", lengthFn)
	r.register("map", 2, 2, "collections", "new array of fn(element, index) per element", r.mapFn)
	r.register("filter", 2, 2, "collections", "new array of elements for which fn(element, index) is truthy", r.filterFn)
	r.register("reduce", 3, 3, "collections", "fold fn(acc, element, index) left to right from init", r.reduceFn)
	r.register("sort", 1, 2, "collections", "new sorted array, by an optional fn(a, b) comparator", r.sortFn)
	r.register("unique", 1, 1, "collections", "new array with duplicate elements (by equality) removed", uniqueFn)
	r.register("range", 1, 3, "collections", "array of numbers from start to end (exclusive) by step", rangeFn)
	r.register("slice", 2, 3, "collections", "sub-array between (possibly negative) start and end", sliceFn)
	r.register("join", 2, 2, "collections", "array elements stringified and joined by a separator", joinFn)
	r.register("at", 2, 2, "collections", "array element at a (possibly negative) index, nil if out of range", atFn)
	r.register("set_at", 3, 3, "collections", "write an array element at a (possibly negative) index", setAtFn)
	r.register("clone", 1, 1, "collections", "shallow copy of an array or object", cloneFn)
	r.register("deep_equal", 2, 2, "collections", "structural equality, cycle-safe", deepEqualFn)
	r.register("keys", 1, 1, "collections", "object keys in insertion order", keysFn)
	r.register("values", 1, 1, "collections", "object values in key insertion order", valuesFn)
	r.register("entries", 1, 1, "collections", "array of [key, value] pairs in insertion order", entriesFn)
	r.register("from_entries", 1, 1, "collections", "object built from an array of [key, value] pairs", fromEntriesFn)
	r.register("has_key", 2, 2, "collections", "whether an object has a key", hasKeyFn)
	r.register("remove_key", 2, 2, "collections", "new object with a key removed", removeKeyFn)
	r.register("merge", 0, -1, "collections", "new object with all argument objects' keys merged left to right", mergeFn)
}

func requireArray(v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("expected array, got %s", v.Kind())
	}
	return a, nil
}

func requireObject(v value.Value) (*value.Object, error) {
	o, ok := v.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %s", v.Kind())
	}
	return o, nil
}

func requireCallable(v value.Value) (value.Callable, error) {
	c, ok := v.(value.Callable)
	if !ok {
		return nil, fmt.Errorf("expected function, got %s", v.Kind())
	}
	return c, nil
}

func lengthFn(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case *value.Array:
		return value.Int(int64(v.Len())), nil
	case *value.Object:
		return value.Int(int64(v.Len())), nil
	case value.String:
		return value.Int(int64(len([]rune(string(v))))), nil
	default:
		return nil, fmt.Errorf("length: expected array, object, or string, got %s", v.Kind())
	}
}

func (r *Registry) mapFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := requireCallable(args[1])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(arr.Elements))
	for i, el := range arr.Elements {
		v, err := r.inv.InvokePositional(fn, []value.Value{el, value.Int(int64(i))}, token.Position{})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewArray(out), nil
}

func (r *Registry) filterFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := requireCallable(args[1])
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for i, el := range arr.Elements {
		keep, err := r.inv.InvokePositional(fn, []value.Value{el, value.Int(int64(i))}, token.Position{})
		if err != nil {
			return nil, err
		}
		if keep.Truthy() {
			out = append(out, el)
		}
	}
	return value.NewArray(out), nil
}

func (r *Registry) reduceFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := requireCallable(args[1])
	if err != nil {
		return nil, err
	}
	acc := args[2]
	for i, el := range arr.Elements {
		acc, err = r.inv.InvokePositional(fn, []value.Value{acc, el, value.Int(int64(i))}, token.Position{})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (r *Registry) sortFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	out := arr.Clone()

	if len(args) == 2 {
		fn, err := requireCallable(args[1])
		if err != nil {
			return nil, err
		}
		var cmpErr error
		sort.SliceStable(out.Elements, func(i, j int) bool {
			if cmpErr != nil {
				return false
			}
			v, err := r.inv.InvokePositional(fn, []value.Value{out.Elements[i], out.Elements[j]}, token.Position{})
			if err != nil {
				cmpErr = err
				return false
			}
			n, ok := v.(value.Number)
			if !ok {
				cmpErr = fmt.Errorf("sort: comparator must return a number")
				return false
			}
			return value.NumCompare(n, value.Int(0)) < 0
		})
		if cmpErr != nil {
			return nil, cmpErr
		}
		return out, nil
	}

	var cmpErr error
	sort.SliceStable(out.Elements, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		c, err := value.Compare(out.Elements[i], out.Elements[j])
		if err != nil {
			cmpErr = err
			return false
		}
		return c < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return out, nil
}

func uniqueFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, el := range arr.Elements {
		dup := false
		for _, seen := range out {
			if value.Equals(el, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, el)
		}
	}
	return value.NewArray(out), nil
}

func rangeFn(args []value.Value) (value.Value, error) {
	start, err := requireNumber(args, 0)
	if err != nil {
		return nil, err
	}
	end := start
	if len(args) == 1 {
		start = value.Int(0)
	} else if end, err = requireNumber(args, 1); err != nil {
		return nil, err
	}
	step := int64(1)
	if len(args) == 3 {
		s, err := requireNumber(args, 2)
		if err != nil {
			return nil, err
		}
		step = s.AsBig().Int64()
	}
	if step == 0 {
		return nil, fmt.Errorf("range: step must not be zero")
	}
	from, to := start.AsBig().Int64(), end.AsBig().Int64()
	var out []value.Value
	if step > 0 {
		for i := from; i < to; i += step {
			out = append(out, value.Int(i))
		}
	} else {
		for i := from; i > to; i += step {
			out = append(out, value.Int(i))
		}
	}
	return value.NewArray(out), nil
}

// normalizeSliceBound clamps a possibly-negative bound into [0, n].
func normalizeSliceBound(n value.Number, length int) int {
	i := n.AsBig().Int64()
	if i < 0 {
		i += int64(length)
	}
	switch {
	case i < 0:
		return 0
	case i > int64(length):
		return length
	default:
		return int(i)
	}
}

func sliceFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	start, err := requireNumber(args, 1)
	if err != nil {
		return nil, err
	}
	from := normalizeSliceBound(start, arr.Len())
	to := arr.Len()
	if len(args) == 3 {
		end, err := requireNumber(args, 2)
		if err != nil {
			return nil, err
		}
		to = normalizeSliceBound(end, arr.Len())
	}
	if to < from {
		to = from
	}
	out := make([]value.Value, to-from)
	copy(out, arr.Elements[from:to])
	return value.NewArray(out), nil
}

func joinFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	sep, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("join: expected string separator")
	}
	parts := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		parts[i] = value.CanonicalKey(el)
	}
	return value.String(strings.Join(parts, string(sep))), nil
}

func atFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	n, err := requireNumber(args, 1)
	if err != nil {
		return nil, err
	}
	v, ok := arr.At(n.AsBig().Int64())
	if !ok {
		return value.NilValue, nil
	}
	return v, nil
}

func setAtFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	n, err := requireNumber(args, 1)
	if err != nil {
		return nil, err
	}
	if !arr.SetAt(n.AsBig().Int64(), args[2]) {
		return nil, fmt.Errorf("set_at: index out of range")
	}
	return arr, nil
}

func cloneFn(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case *value.Array:
		return v.Clone(), nil
	case *value.Object:
		return v.Clone(), nil
	default:
		return v, nil
	}
}

func deepEqualFn(args []value.Value) (value.Value, error) {
	return value.Bool(value.DeepEqual(args[0], args[1])), nil
}

func keysFn(args []value.Value) (value.Value, error) {
	o, err := requireObject(args[0])
	if err != nil {
		return nil, err
	}
	keys := o.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.String(k)
	}
	return value.NewArray(out), nil
}

func valuesFn(args []value.Value) (value.Value, error) {
	o, err := requireObject(args[0])
	if err != nil {
		return nil, err
	}
	keys := o.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := o.Get(k)
		out[i] = v
	}
	return value.NewArray(out), nil
}

func entriesFn(args []value.Value) (value.Value, error) {
	o, err := requireObject(args[0])
	if err != nil {
		return nil, err
	}
	keys := o.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := o.Get(k)
		out[i] = value.NewArray([]value.Value{value.String(k), v})
	}
	return value.NewArray(out), nil
}

func fromEntriesFn(args []value.Value) (value.Value, error) {
	arr, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	obj := value.NewObject()
	for _, el := range arr.Elements {
		pair, ok := el.(*value.Array)
		if !ok || pair.Len() != 2 {
			return nil, fmt.Errorf("from_entries: expected array of [key, value] pairs")
		}
		key, _ := pair.At(0)
		val, _ := pair.At(1)
		obj.Set(value.CanonicalKey(key), val)
	}
	return obj, nil
}

func hasKeyFn(args []value.Value) (value.Value, error) {
	o, err := requireObject(args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("has_key: expected string key")
	}
	return value.Bool(o.Has(string(key))), nil
}

func removeKeyFn(args []value.Value) (value.Value, error) {
	o, err := requireObject(args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("remove_key: expected string key")
	}
	out := o.Clone()
	out.Delete(string(key))
	return out, nil
}

func mergeFn(args []value.Value) (value.Value, error) {
	out := value.NewObject()
	for _, a := range args {
		o, err := requireObject(a)
		if err != nil {
			return nil, err
		}
		for _, k := range o.Keys() {
			v, _ := o.Get(k)
			out.Set(k, v)
		}
	}
	return out, nil
}
