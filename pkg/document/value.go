// Package document holds the ordered JSON value model edited by jsonedit.
//
// A document value is one of:
//
//	nil      -> null
//	bool     -> boolean
//	float64  -> number
//	string   -> string
//	Object   -> object (members keep their source order)
//	Array    -> array
//
// Values are treated as immutable. Every edit helper in this package returns a new
// container and leaves the receiver untouched, so callers can keep references to
// earlier versions of a document.
package document

// Member is a single key/value pair inside an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an ordered JSON object.
type Object []Member

// Array is a JSON array.
type Array []any

// Kind classifies a document value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
	KindInvalid
)

// String returns the JSON type name used for type badges.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of v. Native Go maps and slices produced by other
// decoders are classified as objects and arrays.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case Object, map[string]any:
		return KindObject
	case Array, []any:
		return KindArray
	default:
		return KindInvalid
	}
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v any) bool {
	k := KindOf(v)
	return k == KindObject || k == KindArray
}

// Len returns the number of members or elements of a container, or 0 for scalars.
func Len(v any) int {
	switch t := v.(type) {
	case Object:
		return len(t)
	case Array:
		return len(t)
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

// Index returns the position of key in o, or -1.
func (o Object) Index(key string) int {
	for i, m := range o {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	if i := o.Index(key); i >= 0 {
		return o[i].Value, true
	}
	return nil, false
}

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// With returns a copy of o where key holds v. An existing key keeps its position;
// a new key is appended.
func (o Object) With(key string, v any) Object {
	out := make(Object, len(o), len(o)+1)
	copy(out, o)
	if i := out.Index(key); i >= 0 {
		out[i].Value = v
		return out
	}
	return append(out, Member{Key: key, Value: v})
}

// Without returns a copy of o with key removed.
func (o Object) Without(key string) Object {
	out := make(Object, 0, len(o))
	for _, m := range o {
		if m.Key != key {
			out = append(out, m)
		}
	}
	return out
}

// Rename returns a copy of o where the member named from is renamed to to. The
// member keeps its position. If to already exists elsewhere it is dropped.
func (o Object) Rename(from, to string) Object {
	if from == to {
		return append(Object(nil), o...)
	}
	out := make(Object, 0, len(o))
	for _, m := range o {
		switch m.Key {
		case to:
			continue
		case from:
			out = append(out, Member{Key: to, Value: m.Value})
		default:
			out = append(out, m)
		}
	}
	return out
}

// With returns a copy of a where element i holds v.
func (a Array) With(i int, v any) Array {
	out := make(Array, len(a))
	copy(out, a)
	out[i] = v
	return out
}

// Without returns a copy of a with element i removed.
func (a Array) Without(i int) Array {
	out := make(Array, 0, len(a))
	out = append(out, a[:i]...)
	return append(out, a[i+1:]...)
}

// Append returns a copy of a with v appended.
func (a Array) Append(v any) Array {
	out := make(Array, len(a), len(a)+1)
	copy(out, a)
	return append(out, v)
}
