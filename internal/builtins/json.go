package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minidyn/minidyn/internal/value"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// registerJSON wires the JSON codec over gjson (query/decode) and sjson
// (path-based patch), the teacher's own indirect deps promoted to direct
// use here: json_decode/json_get read through gjson's path syntax;
// json_set patches raw JSON text through sjson rather than round-tripping
// a whole document through a decode/re-encode cycle.
func (r *Registry) registerJSON() {
	r.register("json_encode", 1, 1, "json", "encode a value as a JSON string", jsonEncodeFn)
	r.register("json_decode", 1, 1, "json", "decode a JSON string into a value", jsonDecodeFn)
	r.register("json_get", 2, 2, "json", "read a gjson path out of a JSON string", jsonGetFn)
	r.register("json_set", 3, 3, "json", "write a value at an sjson path into a JSON string", jsonSetFn)
}

func jsonEncodeFn(args []value.Value) (value.Value, error) {
	var sb strings.Builder
	if err := encodeJSON(&sb, args[0]); err != nil {
		return nil, err
	}
	return value.String(sb.String()), nil
}

func encodeJSON(sb *strings.Builder, v value.Value) error {
	switch t := v.(type) {
	case value.Nil:
		sb.WriteString("null")
	case value.Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case value.Number:
		sb.WriteString(t.String())
	case value.String:
		sb.WriteString(strconv.Quote(string(t)))
	case *value.Array:
		sb.WriteByte('[')
		for i, el := range t.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := encodeJSON(sb, el); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *value.Object:
		sb.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			ev, _ := t.Get(k)
			if err := encodeJSON(sb, ev); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("json_encode: cannot encode %s", v.Kind())
	}
	return nil
}

func jsonDecodeFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("json_decode: expected string")
	}
	if !gjson.Valid(string(s)) {
		return nil, fmt.Errorf("json_decode: invalid JSON")
	}
	return resultToValue(gjson.Parse(string(s))), nil
}

func resultToValue(res gjson.Result) value.Value {
	switch res.Type {
	case gjson.Null:
		return value.NilValue
	case gjson.True:
		return value.Bool(true)
	case gjson.False:
		return value.Bool(false)
	case gjson.Number:
		return numberFromFloat(res.Num)
	case gjson.String:
		return value.String(res.Str)
	case gjson.JSON:
		if res.IsArray() {
			items := res.Array()
			out := make([]value.Value, len(items))
			for i, it := range items {
				out[i] = resultToValue(it)
			}
			return value.NewArray(out)
		}
		obj := value.NewObject()
		res.ForEach(func(key, val gjson.Result) bool {
			obj.Set(key.String(), resultToValue(val))
			return true
		})
		return obj
	default:
		return value.NilValue
	}
}

// numberFromFloat tags a JSON number as int64 when it round-trips
// exactly, matching the numeric tower's "smallest exact kind" preference.
func numberFromFloat(f float64) value.Number {
	if i := int64(f); float64(i) == f {
		return value.Int(i)
	}
	return value.Float(f)
}

func jsonGetFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("json_get: expected JSON string")
	}
	path, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("json_get: expected path string")
	}
	res := gjson.Get(string(s), string(path))
	if !res.Exists() {
		return value.NilValue, nil
	}
	return resultToValue(res), nil
}

func jsonSetFn(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("json_set: expected JSON string")
	}
	path, ok := args[1].(value.String)
	if !ok {
		return nil, fmt.Errorf("json_set: expected path string")
	}
	var raw strings.Builder
	if err := encodeJSON(&raw, args[2]); err != nil {
		return nil, err
	}
	out, err := sjson.SetRaw(string(s), string(path), raw.String())
	if err != nil {
		return nil, fmt.Errorf("json_set: %w", err)
	}
	return value.String(out), nil
}
