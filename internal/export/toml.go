package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// ErrTOMLRoot is returned when a non-object document is exported as TOML.
var ErrTOMLRoot = errors.New("toml export needs an object at the root")

// RenderTOML renders an object document as TOML. TOML has no null, so null
// members and array elements are dropped. Tables are written with sorted keys.
func RenderTOML(v any) (string, error) {
	if document.KindOf(v) != document.KindObject {
		return "", ErrTOMLRoot
	}
	out, err := toml.Marshal(tomlValue(v))
	if err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return string(out), nil
}

func tomlValue(v any) any {
	switch document.KindOf(v) {
	case document.KindObject:
		m := map[string]any{}
		for _, mem := range document.AsObject(v) {
			if mem.Value == nil {
				continue
			}
			m[mem.Key] = tomlValue(mem.Value)
		}
		return m
	case document.KindArray:
		out := []any{}
		for _, item := range document.AsArray(v) {
			if item == nil {
				continue
			}
			out = append(out, tomlValue(item))
		}
		return out
	case document.KindNumber:
		f, _ := document.ToFloat(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	default:
		return v
	}
}
