// Package valuefmt converts document values to display strings and parses edit
// buffers back into values, inferring the replacement type from context.
package valuefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// summaryStringLimit is the length after which summary strings are truncated.
const summaryStringLimit = 20

// Display renders a value the way the tree shows it: strings quoted, null as
// "null", numbers in JavaScript notation. Containers are summarized.
func Display(v any) string {
	if s, ok := v.(string); ok {
		return `"` + s + `"`
	}
	return Plain(v)
}

// Plain renders a value for table cells: like Display but strings are not quoted.
func Plain(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	default:
		if f, ok := document.ToFloat(v); ok {
			return document.FormatNumber(f)
		}
		if document.IsContainer(v) {
			return Summary(v)
		}
		return fmt.Sprint(v)
	}
}

// EditText is the initial content of an edit buffer for v. Containers are
// rendered as pretty JSON so small objects can be edited as text.
func EditText(v any) string {
	if document.IsContainer(v) {
		return document.Pretty(v)
	}
	return Plain(v)
}

// TypeName is the type badge shown next to values.
func TypeName(v any) string {
	return document.KindOf(v).String()
}

// Summary renders a one-line description of a value. Arrays become "[N items]";
// small objects list their members; bigger objects list the first two keys.
func Summary(v any) string {
	switch document.KindOf(v) {
	case document.KindArray:
		return fmt.Sprintf("[%d items]", document.Len(v))
	case document.KindObject:
		obj := document.AsObject(v)
		switch {
		case len(obj) == 0:
			return "{}"
		case len(obj) <= 2:
			parts := make([]string, len(obj))
			for i, m := range obj {
				parts[i] = m.Key + ": " + shortValue(m.Value)
			}
			return "{" + strings.Join(parts, ", ") + "}"
		default:
			return fmt.Sprintf("{%d keys: %s, %s...}", len(obj), obj[0].Key, obj[1].Key)
		}
	default:
		return shortValue(v)
	}
}

// shortValue renders scalars compactly and nested containers as a marker.
func shortValue(v any) string {
	switch document.KindOf(v) {
	case document.KindString:
		s := v.(string)
		if len([]rune(s)) > summaryStringLimit {
			s = string([]rune(s)[:summaryStringLimit]) + "..."
		}
		return `"` + s + `"`
	case document.KindArray:
		return fmt.Sprintf("[%d]", document.Len(v))
	case document.KindObject:
		return "{...}"
	default:
		return Plain(v)
	}
}

// ParseLeaf converts a tree edit buffer into a value. "null", "true" and "false"
// become their JSON literals; numeric text becomes a number only when the
// previous value was a number; everything else stays a string.
func ParseLeaf(text string, previous any) any {
	switch text {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if document.KindOf(previous) == document.KindNumber {
		if f, ok := parseNumber(text); ok {
			return f
		}
	}
	return text
}

// ParseCell converts a table cell edit buffer into a value. It extends ParseLeaf:
// empty text is the empty string and text that looks like an object or array is
// decoded as JSON, falling back to the raw string when it does not parse.
func ParseCell(text string, previous any) any {
	if text == "" {
		return ""
	}
	switch text {
	case "null", "true", "false":
		return ParseLeaf(text, previous)
	}
	if document.KindOf(previous) == document.KindNumber {
		if f, ok := parseNumber(text); ok {
			return f
		}
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if v, err := document.ParseString(trimmed); err == nil {
			return v
		}
	}
	return text
}

// parseNumber accepts what JavaScript's Number() accepts for finite values,
// except that blank text is never a number: decimal literals with an optional
// sign and exponent, and unsigned 0x, 0o and 0b integers. Digit separators and
// hex floats are rejected.
func parseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		if base := prefixBase(s[1]); base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
