package valuefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

func TestDisplayAndPlain(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		display string
		plain   string
		badge   string
	}{
		{name: "null", in: nil, display: "null", plain: "null", badge: "null"},
		{name: "string", in: "hi", display: `"hi"`, plain: "hi", badge: "string"},
		{name: "int-like number", in: 3.0, display: "3", plain: "3", badge: "number"},
		{name: "fraction", in: 0.5, display: "0.5", plain: "0.5", badge: "number"},
		{name: "bool", in: false, display: "false", plain: "false", badge: "boolean"},
		{name: "array", in: document.Array{1.0, 2.0}, display: "[2 items]", plain: "[2 items]", badge: "array"},
		{name: "object", in: document.Object{}, display: "{}", plain: "{}", badge: "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, Display(tt.in))
			assert.Equal(t, tt.plain, Plain(tt.in))
			assert.Equal(t, tt.badge, TypeName(tt.in))
		})
	}
}

func TestSummary(t *testing.T) {
	small := document.Object{
		{Key: "name", Value: "a very long string value indeed"},
		{Key: "tags", Value: document.Array{1.0}},
	}
	assert.Equal(t, `{name: "a very long string va...", tags: [1]}`, Summary(small))

	big := document.Object{
		{Key: "a", Value: 1.0},
		{Key: "b", Value: document.Object{}},
		{Key: "c", Value: nil},
	}
	assert.Equal(t, "{3 keys: a, b...}", Summary(big))
	assert.Equal(t, "{a: {...}}", Summary(document.Object{{Key: "a", Value: document.Object{}}}))
	assert.Equal(t, "[0 items]", Summary(document.Array{}))
}

func TestEditText(t *testing.T) {
	assert.Equal(t, "null", EditText(nil))
	assert.Equal(t, "abc", EditText("abc"))
	assert.Equal(t, "{\n  \"a\": 1\n}", EditText(document.Object{{Key: "a", Value: 1.0}}))
}

func TestParseLeaf(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		previous any
		want     any
	}{
		{name: "null literal", text: "null", previous: "x", want: nil},
		{name: "true literal", text: "true", previous: 1.0, want: true},
		{name: "false literal", text: "false", previous: nil, want: false},
		{name: "number stays number", text: "42", previous: 1.0, want: 42.0},
		{name: "number text on string stays string", text: "42", previous: "old", want: "42"},
		{name: "hex on number", text: "0x10", previous: 1.0, want: 16.0},
		{name: "octal and binary", text: "0o17", previous: 1.0, want: 15.0},
		{name: "binary", text: "0B101", previous: 1.0, want: 5.0},
		{name: "exponent", text: "1.5e3", previous: 1.0, want: 1500.0},
		{name: "leading dot", text: ".5", previous: 1.0, want: 0.5},
		{name: "digit separators stay string", text: "1_000", previous: 1.0, want: "1_000"},
		{name: "prefixed separators stay string", text: "0x1_0", previous: 1.0, want: "0x1_0"},
		{name: "hex float stays string", text: "0x1p-2", previous: 1.0, want: "0x1p-2"},
		{name: "signed hex float stays string", text: "-0x1p-2", previous: 1.0, want: "-0x1p-2"},
		{name: "signed hex stays string", text: "-0x10", previous: 1.0, want: "-0x10"},
		{name: "nan stays string", text: "NaN", previous: 1.0, want: "NaN"},
		{name: "blank on number is string", text: " ", previous: 1.0, want: " "},
		{name: "non numeric on number is string", text: "abc", previous: 1.0, want: "abc"},
		{name: "infinity is not a number", text: "Infinity", previous: 1.0, want: "Infinity"},
		{name: "json text stays string", text: `{"a":1}`, previous: "s", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLeaf(tt.text, tt.previous))
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		previous any
		want     any
	}{
		{name: "empty", text: "", previous: 1.0, want: ""},
		{name: "null", text: "null", previous: 1.0, want: nil},
		{name: "number", text: "7.5", previous: 1.0, want: 7.5},
		{name: "object json", text: ` {"a": 1}`, previous: "x", want: document.Object{{Key: "a", Value: 1.0}}},
		{name: "array json", text: `[1, 2]`, previous: nil, want: document.Array{1.0, 2.0}},
		{name: "broken json stays string", text: `{"a":`, previous: nil, want: `{"a":`},
		{name: "plain text", text: "hello", previous: 2.0, want: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCell(tt.text, tt.previous))
		})
	}
}
