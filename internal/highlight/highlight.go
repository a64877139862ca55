// Package highlight colors JSON, YAML and other export text for terminals.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style or an unknown one is named.
const DefaultStyle = "monokai"

// Options selects the chroma style and formatter.
type Options struct {
	// Style is a chroma style name such as "monokai" or "github".
	Style string
	// Formatter is "terminal", "terminal256" or "terminal16m". Empty means
	// terminal256.
	Formatter string
}

// Write tokenizes source in language lang and writes it colored to w. Unknown
// languages are written through the plain-text lexer.
func Write(w io.Writer, source, lang string, opts Options) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style, ok := styles.Registry[opts.Style]
	if !ok {
		style = styles.Get(DefaultStyle)
	}
	name := opts.Formatter
	if name == "" {
		name = "terminal256"
	}
	formatter, ok := formatters.Registry[name]
	if !ok {
		return fmt.Errorf("unknown formatter %q", name)
	}

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", lang, err)
	}
	return formatter.Format(w, style, it)
}

// String is Write into a string.
func String(source, lang string, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, source, lang, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Language maps an export format name to a lexer name.
func Language(format string) string {
	switch format {
	case "json", "json-min", "text":
		return "json"
	case "js":
		return "javascript"
	case "php":
		return "php"
	case "yaml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "plaintext"
	}
}

// Styles lists the registered style names.
func Styles() []string {
	return styles.Names()
}
