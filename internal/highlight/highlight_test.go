package highlight

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestStringColorsAndKeepsText(t *testing.T) {
	src := "{\n  \"a\": 1,\n  \"b\": [true, null]\n}\n"
	tests := []struct {
		name string
		opts Options
	}{
		{"defaults", Options{}},
		{"named style", Options{Style: "github", Formatter: "terminal16m"}},
		{"unknown style", Options{Style: "no-such-style", Formatter: "terminal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := String(src, "json", tt.opts)
			require.NoError(t, err)
			assert.Contains(t, out, "\x1b[")
			assert.Equal(t, src, ansi.ReplaceAllString(out, ""))
		})
	}
}

func TestUnknownFormatter(t *testing.T) {
	_, err := String("{}", "json", Options{Formatter: "nope"})
	require.ErrorContains(t, err, "unknown formatter")
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	out, err := String("plain words\n", "no-such-lang", Options{})
	require.NoError(t, err)
	assert.Equal(t, "plain words\n", ansi.ReplaceAllString(out, ""))
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "json", Language("json-min"))
	assert.Equal(t, "javascript", Language("js"))
	assert.Equal(t, "toml", Language("toml"))
	assert.Equal(t, "plaintext", Language("xml"))
}

func TestStyles(t *testing.T) {
	assert.Contains(t, Styles(), DefaultStyle)
}
