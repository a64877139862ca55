package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/jsonc"
)

// ErrEmpty is returned when the input contains no JSON value at all.
var ErrEmpty = errors.New("empty input")

// SyntaxError reports text that is not valid JSON. It is the only domain error of
// the editor: callers keep their last valid document and surface Error() inline.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsSyntaxError reports whether err is (or wraps) a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// ParseOptions tunes Parse.
type ParseOptions struct {
	// Lenient strips comments and trailing commas (JSONC) before decoding.
	Lenient bool
}

// Parse decodes a single JSON value, keeping object members in source order.
// Duplicate keys are accepted; the last value wins and the first position is kept.
// Escaped lone surrogates such as "\ud800" decode to U+FFFD.
func Parse(data []byte) (any, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseString is Parse for string input.
func ParseString(s string) (any, error) {
	return Parse([]byte(s))
}

// ParseWithOptions decodes data according to opts.
func ParseWithOptions(data []byte, opts ParseOptions) (any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &SyntaxError{Err: ErrEmpty}
	}
	if opts.Lenient {
		data = jsonc.ToJSON(data)
	}
	var v any
	if err := json.Unmarshal(data, &v,
		json.WithUnmarshalers(unmarshalers()),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return v, nil
}

// Valid reports whether text parses as JSON.
func Valid(text string) bool {
	_, err := ParseString(text)
	return err == nil
}

func unmarshalers() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			obj, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = obj
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = arr
			return nil
		default:
			return json.SkipFunc
		}
	})
}

func decodeObject(dec *jsontext.Decoder) (Object, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	obj := Object{}
	var seen map[string]int
	for dec.PeekKind() != '}' {
		var key string
		if err := json.UnmarshalDecode(dec, &key); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var val any
		if err := json.UnmarshalDecode(dec, &val); err != nil {
			return nil, fmt.Errorf("read value for key %q: %w", key, err)
		}
		if seen == nil {
			seen = make(map[string]int)
		}
		if i, ok := seen[key]; ok {
			obj[i].Value = val
			continue
		}
		seen[key] = len(obj)
		obj = append(obj, Member{Key: key, Value: val})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return obj, nil
}

func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
