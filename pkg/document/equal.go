package document

// Equal reports whether a and b are the same JSON value. Object member order is
// ignored; array order is not. Native maps and slices compare equal to their
// ordered counterparts.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindNumber:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return fa == fb
	case KindString:
		return a.(string) == b.(string)
	case KindObject:
		oa, ob := AsObject(a), AsObject(b)
		if len(oa) != len(ob) {
			return false
		}
		for _, m := range oa {
			other, ok := ob.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	case KindArray:
		aa, ab := AsArray(a), AsArray(b)
		if len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ab[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AsObject returns v as an Object. Native maps are converted with sorted keys;
// anything else yields nil.
func AsObject(v any) Object {
	switch t := v.(type) {
	case Object:
		return t
	case map[string]any:
		return objectFromMap(t)
	default:
		return nil
	}
}

// AsArray returns v as an Array, or nil when v is not an array.
func AsArray(v any) Array {
	switch t := v.(type) {
	case Array:
		return t
	case []any:
		return Array(t)
	default:
		return nil
	}
}

// ToFloat converts any numeric kind to float64.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
