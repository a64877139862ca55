package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in      string
		want    Source
		wantErr bool
	}{
		{"", JSON, false},
		{"YAML", YAML, false},
		{"yml", YAML, false},
		{"jsonl", NDJSON, false},
		{"auto", Auto, false},
		{"jwt", JWT, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceForPath(t *testing.T) {
	assert.Equal(t, JSON, SourceForPath("a/b.JSON"))
	assert.Equal(t, YAML, SourceForPath("x.yml"))
	assert.Equal(t, TOML, SourceForPath("Cargo.toml"))
	assert.Equal(t, NDJSON, SourceForPath("events.jsonl"))
	assert.Equal(t, JSONC, SourceForPath("tsconfig.jsonc"))
	assert.Equal(t, Auto, SourceForPath("README"))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Source
	}{
		{"object", `{"name": "test"}`, JSON},
		{"pretty object", "{\n  \"url\": \"a=b\"\n}", JSON},
		{"array", `[1, 2]`, JSON},
		{"scalar", `42`, JSON},
		{"jsonc", "{\n  \"a\": 1, // note\n}", JSONC},
		{"ndjson", "{\"a\":1}\n{\"a\":2}\n", NDJSON},
		{"toml section", "[server]\nhost = \"localhost\"\n", TOML},
		{"toml pairs", "name = \"x\"\nport = 8080\n", TOML},
		{"yaml", "name: x\nitems:\n  - 1\n", YAML},
		{"yaml stream", "---\na: 1\n---\na: 2\n", YAML},
		{"jwt", validJWT, JWT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestLoadJSONKeepsOrder(t *testing.T) {
	v, err := Load([]byte(`{"z": 1, "a": [true, null]}`), JSON)
	require.NoError(t, err)
	obj := document.AsObject(v)
	assert.Equal(t, []string{"z", "a"}, obj.Keys())
}

func TestLoadJSONInvalid(t *testing.T) {
	_, err := Load([]byte(`{"a":`), JSON)
	require.Error(t, err)
	assert.True(t, document.IsSyntaxError(err))
}

func TestLoadJSONC(t *testing.T) {
	v, err := Load([]byte("{\n  // comment\n  \"a\": 1,\n}"), JSONC)
	require.NoError(t, err)
	assert.Equal(t, document.Object{{Key: "a", Value: 1.0}}, v)
}

func TestLoadYAML(t *testing.T) {
	input := `
zeta: 1
alpha:
  - one
  - 2.5
  - true
  - ~
base: &base
  x: 1
derived:
  <<: *base
  y: 2
`
	v, err := Load([]byte(input), YAML)
	require.NoError(t, err)
	obj := document.AsObject(v)
	assert.Equal(t, []string{"zeta", "alpha", "base", "derived"}, obj.Keys())
	alpha, _ := obj.Get("alpha")
	assert.Equal(t, document.Array{"one", 2.5, true, nil}, alpha)
	derived, _ := obj.Get("derived")
	assert.Equal(t, document.Object{{Key: "x", Value: 1.0}, {Key: "y", Value: 2.0}}, derived)
}

func TestLoadYAMLMergeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  document.Object
	}{
		{
			name:  "sequence merge keeps the first mapping's values",
			input: "a: &a {x: 1, y: 1}\nb: &b {y: 2, z: 2}\nc:\n  <<: [*a, *b]\n  z: 3\n",
			want:  document.Object{{Key: "x", Value: 1.0}, {Key: "y", Value: 1.0}, {Key: "z", Value: 3.0}},
		},
		{
			name:  "explicit key before the merge wins",
			input: "a: &a {x: 1, y: 1}\nc:\n  x: 0\n  <<: *a\n",
			want:  document.Object{{Key: "x", Value: 0.0}, {Key: "y", Value: 1.0}},
		},
		{
			name:  "explicit key after the merge wins",
			input: "a: &a {x: 1}\nc:\n  <<: *a\n  x: 5\n",
			want:  document.Object{{Key: "x", Value: 5.0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load([]byte(tt.input), YAML)
			require.NoError(t, err)
			c, ok := document.AsObject(v).Get("c")
			require.True(t, ok)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestLoadYAMLLargeMapping(t *testing.T) {
	const n = 50000
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "key%06d: %d\n", i, i)
	}
	start := time.Now()
	v, err := Load([]byte(sb.String()), YAML)
	require.NoError(t, err)
	assert.Len(t, document.AsObject(v), n)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoadYAMLStream(t *testing.T) {
	v, err := Load([]byte("---\na: 1\n---\na: 2\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, document.Array{
		document.Object{{Key: "a", Value: 1.0}},
		document.Object{{Key: "a", Value: 2.0}},
	}, v)
}

func TestLoadYAMLErrors(t *testing.T) {
	_, err := Load([]byte("a: [1, 2"), YAML)
	require.Error(t, err)
	_, err = Load([]byte(""), YAML)
	require.ErrorIs(t, err, document.ErrEmpty)
}

func TestLoadTOML(t *testing.T) {
	input := `
title = "demo"

[server]
port = 8080
hosts = ["a", "b"]
`
	v, err := Load([]byte(input), TOML)
	require.NoError(t, err)
	want := document.Object{
		{Key: "server", Value: document.Object{
			{Key: "hosts", Value: document.Array{"a", "b"}},
			{Key: "port", Value: 8080.0},
		}},
		{Key: "title", Value: "demo"},
	}
	assert.Equal(t, want, v)

	_, err = Load([]byte("= broken"), TOML)
	require.Error(t, err)
}

func TestLoadNDJSON(t *testing.T) {
	v, err := Load([]byte("{\"a\":1}\n\nnot json\n[2]\n"), NDJSON)
	require.NoError(t, err)
	assert.Equal(t, document.Array{
		document.Object{{Key: "a", Value: 1.0}},
		"not json",
		document.Array{2.0},
	}, v)

	_, err = Load([]byte("\n\n"), NDJSON)
	require.ErrorIs(t, err, document.ErrEmpty)
}

func TestLoadAuto(t *testing.T) {
	v, err := Load([]byte("name: x\n"), Auto)
	require.NoError(t, err)
	assert.Equal(t, document.Object{{Key: "name", Value: "x"}}, v)
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load([]byte("{}"), Source("xml"))
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("b: 1\na: 2\n"), 0o600))

	v, err := LoadFile(path, Auto)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, document.AsObject(v).Keys())

	_, err = LoadFile(filepath.Join(dir, "missing.json"), Auto)
	require.Error(t, err)
}

func TestExpandStrings(t *testing.T) {
	in := document.Object{
		{Key: "plain", Value: "hello"},
		{Key: "nested", Value: `{"b": 2, "a": "[1, 2]"}`},
		{Key: "brace", Value: "{not json"},
		{Key: "scalar", Value: "42"},
		{Key: "token", Value: validJWT},
	}
	out := document.AsObject(ExpandStrings(in))

	plain, _ := out.Get("plain")
	assert.Equal(t, "hello", plain)
	nested, _ := out.Get("nested")
	assert.Equal(t, document.Object{
		{Key: "b", Value: 2.0},
		{Key: "a", Value: document.Array{1.0, 2.0}},
	}, nested)
	brace, _ := out.Get("brace")
	assert.Equal(t, "{not json", brace)
	scalar, _ := out.Get("scalar")
	assert.Equal(t, "42", scalar)
	token, _ := out.Get("token")
	assert.Equal(t, []string{"header", "payload", "signature"}, document.AsObject(token).Keys())

	orig, _ := in.Get("nested")
	assert.IsType(t, "", orig, "input must not change")
}
