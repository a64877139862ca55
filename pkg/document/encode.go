package document

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DefaultIndent is the indentation used for pretty output.
const DefaultIndent = "  "

// Marshal encodes v as minified JSON.
func Marshal(v any) ([]byte, error) {
	return encode(v, "")
}

// MarshalIndent encodes v with one indent unit (spaces or tabs) per nesting
// level. The layout matches JSON.stringify(v, null, indent): empty containers
// stay on one line and keys are followed by ": ". An empty indent is Marshal.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return encode(v, indent)
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	opts := []jsontext.Options{jsontext.AllowDuplicateNames(true)}
	if indent != "" {
		opts = append(opts, jsontext.WithIndent(indent), jsontext.SpaceAfterColon(true))
	}
	enc := jsontext.NewEncoder(&buf, opts...)
	if err := writeValue(enc, v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Pretty returns v as 2-space indented JSON. Values that cannot be encoded (for
// example strings with invalid UTF-8) yield an empty string.
func Pretty(v any) string {
	b, err := MarshalIndent(v, DefaultIndent)
	if err != nil {
		return ""
	}
	return string(b)
}

// Compact returns v as minified JSON, or an empty string when v cannot be encoded.
func Compact(v any) string {
	b, err := Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Serialize renders v pretty or minified.
func Serialize(v any, minified bool) string {
	if minified {
		return Compact(v)
	}
	return Pretty(v)
}

// FormatNumber renders f the way JavaScript's Number#toString does. Non-finite
// values have no JSON form and are rendered as null.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	b, err := json.Marshal(f)
	if err != nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return string(b)
}

// writeValue streams v through enc. Numbers are written in JavaScript form.
func writeValue(enc *jsontext.Encoder, v any) error {
	switch t := v.(type) {
	case nil:
		return enc.WriteToken(jsontext.Null)
	case bool:
		return enc.WriteToken(jsontext.Bool(t))
	case float64:
		return enc.WriteValue(jsontext.Value(FormatNumber(t)))
	case float32:
		return enc.WriteValue(jsontext.Value(FormatNumber(float64(t))))
	case int:
		return enc.WriteToken(jsontext.Int(int64(t)))
	case int8:
		return enc.WriteToken(jsontext.Int(int64(t)))
	case int16:
		return enc.WriteToken(jsontext.Int(int64(t)))
	case int32:
		return enc.WriteToken(jsontext.Int(int64(t)))
	case int64:
		return enc.WriteToken(jsontext.Int(t))
	case uint:
		return enc.WriteToken(jsontext.Uint(uint64(t)))
	case uint8:
		return enc.WriteToken(jsontext.Uint(uint64(t)))
	case uint16:
		return enc.WriteToken(jsontext.Uint(uint64(t)))
	case uint32:
		return enc.WriteToken(jsontext.Uint(uint64(t)))
	case uint64:
		return enc.WriteToken(jsontext.Uint(t))
	case string:
		return enc.WriteToken(jsontext.String(t))
	case Object:
		return writeObject(enc, t)
	case map[string]any:
		return writeObject(enc, objectFromMap(t))
	case Array:
		return writeArray(enc, t)
	case []any:
		return writeArray(enc, Array(t))
	default:
		return fmt.Errorf("unsupported value of type %T", v)
	}
}

func writeObject(enc *jsontext.Encoder, o Object) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, m := range o {
		if err := enc.WriteToken(jsontext.String(m.Key)); err != nil {
			return fmt.Errorf("key %q: %w", m.Key, err)
		}
		if err := writeValue(enc, m.Value); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

func writeArray(enc *jsontext.Encoder, a Array) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	for _, elem := range a {
		if err := writeValue(enc, elem); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndArray)
}

func objectFromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Object, 0, len(keys))
	for _, k := range keys {
		out = append(out, Member{Key: k, Value: m[k]})
	}
	return out
}
