package loader

import (
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

const maxDecodeDepth = 20

// ExpandStrings replaces string leaves that hold serialized JSON objects or
// arrays, or JWTs, with the decoded structure. Decoded values are expanded
// again, so nested encodings unwrap too. The input is not modified.
func ExpandStrings(v any) any {
	return expand(v, 0)
}

func expand(v any, depth int) any {
	if depth > maxDecodeDepth {
		return v
	}
	switch t := v.(type) {
	case document.Object:
		out := make(document.Object, len(t))
		for i, m := range t {
			out[i] = document.Member{Key: m.Key, Value: expand(m.Value, depth+1)}
		}
		return out
	case document.Array:
		out := make(document.Array, len(t))
		for i, item := range t {
			out[i] = expand(item, depth+1)
		}
		return out
	case string:
		if decoded, ok := tryDecode(t); ok {
			return expand(decoded, depth+1)
		}
		return t
	default:
		return v
	}
}

// tryDecode decodes s when it holds a JSON container or a JWT.
func tryDecode(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if IsJWT(trimmed) {
		v, err := DecodeJWT(trimmed)
		return v, err == nil
	}
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	v, err := document.ParseString(trimmed)
	if err != nil || !document.IsContainer(v) {
		return nil, false
	}
	return v, true
}
