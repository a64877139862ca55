package document

import (
	"fmt"
	"sort"
)

// FromNative converts values produced by other decoders (map[string]any, []any,
// integer types, time values rendered by callers) into document values. Map keys
// are sorted because native maps carry no order.
func FromNative(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string:
		return t, nil
	case float64:
		return t, nil
	case Object:
		out := make(Object, len(t))
		for i, m := range t {
			val, err := FromNative(m.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.Key, err)
			}
			out[i] = Member{Key: m.Key, Value: val}
		}
		return out, nil
	case Array:
		return fromSlice([]any(t))
	case []any:
		return fromSlice(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Object, 0, len(keys))
		for _, k := range keys {
			val, err := FromNative(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out = append(out, Member{Key: k, Value: val})
		}
		return out, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return FromNative(m)
	case []map[string]any:
		out := make(Array, len(t))
		for i, m := range t {
			val, err := FromNative(m)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = val
		}
		return out, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		if f, ok := ToFloat(v); ok {
			return f, nil
		}
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

func fromSlice(in []any) (Array, error) {
	out := make(Array, len(in))
	for i, elem := range in {
		val, err := FromNative(elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// ToNative converts a document value into map[string]any / []any form for
// libraries that do not understand ordered objects (CEL, TOML). Member order is
// lost.
func ToNative(v any) any {
	switch t := v.(type) {
	case Object:
		m := make(map[string]any, len(t))
		for _, mem := range t {
			m[mem.Key] = ToNative(mem.Value)
		}
		return m
	case Array:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = ToNative(elem)
		}
		return out
	default:
		return v
	}
}
