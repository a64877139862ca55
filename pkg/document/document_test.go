package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesOrder(t *testing.T) {
	v, err := ParseString(`{"z": 1, "a": {"y": true, "b": null}, "m": [1, "two", false]}`)
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok, "root should decode as Object, got %T", v)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	inner, ok := obj[1].Value.(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.Keys())
	assert.Nil(t, inner[1].Value)

	arr, ok := obj[2].Value.(Array)
	require.True(t, ok)
	assert.Equal(t, Array{1.0, "two", false}, arr)
}

func TestParseScalarsAndEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "number", input: `42`, want: 42.0},
		{name: "string", input: `"hi"`, want: "hi"},
		{name: "null", input: `null`, want: nil},
		{name: "bool", input: ` true `, want: true},
		{name: "empty object", input: `{}`, want: Object{}},
		{name: "empty array", input: `[]`, want: Array{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)
	assert.Equal(t, Object{{Key: "a", Value: 3.0}, {Key: "b", Value: 2.0}}, v)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "blank", input: "   "},
		{name: "unterminated", input: `{"a": 1`},
		{name: "trailing comma", input: `[1, 2,]`},
		{name: "trailing data", input: `{} {}`},
		{name: "bare word", input: `hello`},
		{name: "single quotes", input: `{'a': 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, IsSyntaxError(err))
			assert.False(t, Valid(tt.input))
		})
	}
}

func TestParseLenient(t *testing.T) {
	input := []byte("{\n  // comment\n  \"a\": [1, 2,],\n}")
	_, err := Parse(input)
	require.Error(t, err)

	v, err := ParseWithOptions(input, ParseOptions{Lenient: true})
	require.NoError(t, err)
	assert.Equal(t, Object{{Key: "a", Value: Array{1.0, 2.0}}}, v)
}

func TestPrettyMatchesStringifyLayout(t *testing.T) {
	v, err := ParseString(`{"name":"x","tags":[],"meta":{},"list":[1,{"k":null}],"ok":true}`)
	require.NoError(t, err)

	want := `{
  "name": "x",
  "tags": [],
  "meta": {},
  "list": [
    1,
    {
      "k": null
    }
  ],
  "ok": true
}`
	assert.Equal(t, want, Pretty(v))
	assert.Equal(t, `{"name":"x","tags":[],"meta":{},"list":[1,{"k":null}],"ok":true}`, Compact(v))
	assert.Equal(t, Compact(v), Serialize(v, true))
	assert.Equal(t, Pretty(v), Serialize(v, false))
}

func TestMarshalIndentWidths(t *testing.T) {
	v := Object{{Key: "a", Value: Array{1.5, Object{}}}, {Key: "b", Value: "é"}}
	tests := []struct {
		indent string
		want   string
	}{
		{"", `{"a":[1.5,{}],"b":"é"}`},
		{"    ", "{\n    \"a\": [\n        1.5,\n        {}\n    ],\n    \"b\": \"é\"\n}"},
		{"\t", "{\n\t\"a\": [\n\t\t1.5,\n\t\t{}\n\t],\n\t\"b\": \"é\"\n}"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.indent), func(t *testing.T) {
			b, err := MarshalIndent(v, tt.indent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}

	_, err := Marshal(Object{{Key: "k", Value: map[string]any{"x": struct{}{}}}})
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 1, want: "1"},
		{in: 1.5, want: "1.5"},
		{in: -0.25, want: "-0.25"},
		{in: 100000, want: "100000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":[true,false,null],"c":{"d":"e\n\"quoted\"","f":-1.25e-3}}`,
		`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`,
		`"just a string"`,
		`[[],[[]],{}]`,
		`{"unicode":"héllo ☃","esc":"tab\tslash\\"}`,
		`{"a":"\ud800"}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := ParseString(in)
			require.NoError(t, err)
			for _, text := range []string{Pretty(first), Compact(first)} {
				second, err := ParseString(text)
				require.NoError(t, err)
				assert.True(t, Equal(first, second))
				assert.Equal(t, first, second, "order must survive the round trip")
			}
		})
	}
}

func TestParseLoneSurrogate(t *testing.T) {
	v, err := ParseString(`{"a":"x\udc00y"}`)
	require.NoError(t, err)
	assert.Equal(t, Object{{Key: "a", Value: "x\uFFFDy"}}, v)
}

func TestParseLargeObject(t *testing.T) {
	const n = 100000
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `"key%06d":%d,`, i, i)
	}
	sb.WriteString(`"key000000":-1}`)

	start := time.Now()
	v, err := ParseString(sb.String())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	obj := v.(Object)
	require.Len(t, obj, n)
	assert.Equal(t, "key000000", obj[0].Key)
	assert.Equal(t, -1.0, obj[0].Value, "a repeated key keeps its first position and takes the last value")
	assert.Equal(t, "key099999", obj[n-1].Key)
}

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{name: "root", path: Path{}, want: ""},
		{name: "dotted", path: Path{}.Key("a").Key("b").Index(2).Key("c"), want: "a.b[2].c"},
		{name: "root index", path: Path{}.Index(0).Key("id"), want: "[0].id"},
		{name: "quoted key", path: Path{}.Key("a").Key("odd key"), want: `a["odd key"]`},
		{name: "leading digit", path: Path{}.Key("1st"), want: `["1st"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
			back, err := ParsePath(tt.want)
			require.NoError(t, err)
			assert.Equal(t, len(tt.path), len(back))
			for i := range tt.path {
				assert.Equal(t, tt.path[i], back[i])
			}
		})
	}
	assert.Equal(t, "root", Path{}.Label())
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"a[", "a[x]", `a["x`, "a..b", "a[-1]"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			assert.Error(t, err)
		})
	}
	p, err := ParsePath("_.items[0]")
	require.NoError(t, err)
	assert.Equal(t, "items[0]", p.String())
}

func TestPathDoesNotAlias(t *testing.T) {
	base := Path{}.Key("a")
	left := base.Key("x")
	right := base.Key("y")
	assert.Equal(t, "a.x", left.String())
	assert.Equal(t, "a.y", right.String())
	assert.True(t, left.HasPrefix(base))
	assert.False(t, left.HasPrefix(right))
	assert.Equal(t, "a", left.Parent().String())
}

func TestSetAtChangesOnlyOnePath(t *testing.T) {
	orig, err := ParseString(`{"a":{"b":[1,2,{"c":"old"}],"keep":true},"z":0}`)
	require.NoError(t, err)
	before := Pretty(orig)

	p, err := ParsePath("a.b[2].c")
	require.NoError(t, err)
	updated, err := SetAt(orig, p, "new")
	require.NoError(t, err)

	// the original is untouched
	assert.Equal(t, before, Pretty(orig))

	got, err := Get(updated, p)
	require.NoError(t, err)
	assert.Equal(t, "new", got)

	// every other node is unchanged
	Walk(orig, func(wp Path, v any) bool {
		if wp.HasPrefix(p) || p.HasPrefix(wp) {
			return true
		}
		other, err := Get(updated, wp)
		require.NoError(t, err)
		assert.True(t, Equal(v, other), "node %s changed", wp.Label())
		return true
	})
}

func TestSetAtAndDeleteAtErrors(t *testing.T) {
	doc, err := ParseString(`{"a":[1,2],"s":"x"}`)
	require.NoError(t, err)

	_, err = SetAt(doc, Path{}.Key("a").Index(5), 1)
	assert.True(t, errors.Is(err, ErrPathNotFound))

	_, err = SetAt(doc, Path{}.Key("s").Key("deeper").Key("x"), 1)
	assert.True(t, errors.Is(err, ErrNotContainer))

	_, err = DeleteAt(doc, Path{})
	assert.True(t, errors.Is(err, ErrPathNotFound))

	out, err := DeleteAt(doc, Path{}.Key("a").Index(0))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[2],"s":"x"}`, Compact(out))

	out, err = SetAt(doc, Path{}, "replaced")
	require.NoError(t, err)
	assert.Equal(t, "replaced", out)
}

func TestEqual(t *testing.T) {
	a, _ := ParseString(`{"x":1,"y":[1,2]}`)
	b, _ := ParseString(`{"y":[1,2],"x":1}`)
	c, _ := ParseString(`{"y":[2,1],"x":1}`)
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.True(t, Equal(map[string]any{"x": 1, "y": []any{1, 2}}, a))
	assert.False(t, Equal(nil, false))
	assert.False(t, Equal("1", 1.0))
}

func TestFromNativeAndToNative(t *testing.T) {
	v, err := FromNative(map[string]any{"b": int64(2), "a": []any{uint8(1), "x"}})
	require.NoError(t, err)
	assert.Equal(t, Object{{Key: "a", Value: Array{1.0, "x"}}, {Key: "b", Value: 2.0}}, v)

	native := ToNative(v)
	assert.Equal(t, map[string]any{"a": []any{1.0, "x"}, "b": 2.0}, native)

	_, err = FromNative(make(chan int))
	assert.Error(t, err)
}

func TestObjectHelpers(t *testing.T) {
	o := Object{{Key: "a", Value: 1.0}, {Key: "b", Value: 2.0}}
	assert.Equal(t, Object{{Key: "a", Value: 9.0}, {Key: "b", Value: 2.0}}, o.With("a", 9.0))
	assert.Equal(t, Object{{Key: "a", Value: 1.0}, {Key: "b", Value: 2.0}, {Key: "c", Value: 3.0}}, o.With("c", 3.0))
	assert.Equal(t, Object{{Key: "b", Value: 2.0}}, o.Without("a"))
	assert.Equal(t, Object{{Key: "z", Value: 1.0}, {Key: "b", Value: 2.0}}, o.Rename("a", "z"))
	assert.Equal(t, Object{{Key: "b", Value: 1.0}}, o.Rename("a", "b"))
	// receiver untouched
	assert.Equal(t, Object{{Key: "a", Value: 1.0}, {Key: "b", Value: 2.0}}, o)

	a := Array{1.0, 2.0, 3.0}
	assert.Equal(t, Array{1.0, 3.0}, a.Without(1))
	assert.Equal(t, Array{1.0, 2.0, 3.0, 4.0}, a.Append(4.0))
	assert.Equal(t, Array{0.0, 2.0, 3.0}, a.With(0, 0.0))
	assert.Equal(t, Array{1.0, 2.0, 3.0}, a)
}
