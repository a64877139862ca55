// Package export renders a document in the formats the editor can save or copy.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Format names an export rendering.
type Format string

const (
	JSON       Format = "json"
	JSONMin    Format = "json-min"
	JavaScript Format = "js"
	PHP        Format = "php"
	Text       Format = "text"
	YAML       Format = "yaml"
	TOML       Format = "toml"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

var formats = []Format{JSON, JSONMin, JavaScript, PHP, Text, YAML, TOML}

// Formats lists every supported format.
func Formats() []Format { return slices.Clone(formats) }

// ParseFormat resolves a format name. "javascript" and "txt" are accepted as
// aliases.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "javascript":
		return JavaScript, nil
	case "txt":
		return Text, nil
	case "yml":
		return YAML, nil
	default:
		if slices.Contains(formats, f) {
			return f, nil
		}
		return "", fmt.Errorf("%q: %w (want one of %s)", name, ErrUnknownFormat, formatList())
	}
}

func formatList() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// FileName is the default download name for the format.
func (f Format) FileName() string {
	switch f {
	case JSONMin:
		return "data.min.json"
	case JavaScript:
		return "data.js"
	case PHP:
		return "data.php"
	case Text:
		return "data.txt"
	case YAML:
		return "data.yaml"
	case TOML:
		return "data.toml"
	default:
		return "data.json"
	}
}

// Clipboard reports whether the editor copies this format instead of saving it.
func (f Format) Clipboard() bool {
	return f == JavaScript || f == PHP
}

// Render produces the export text for v.
func Render(v any, f Format) (string, error) {
	switch f {
	case JSON, Text:
		return document.Pretty(v), nil
	case JSONMin:
		return document.Compact(v), nil
	case JavaScript:
		return RenderJS(v), nil
	case PHP:
		return RenderPHP(v), nil
	case YAML:
		return RenderYAML(v)
	case TOML:
		return RenderTOML(v)
	default:
		return "", fmt.Errorf("%q: %w", string(f), ErrUnknownFormat)
	}
}

// RenderJS wraps the pretty JSON in a constant declaration.
func RenderJS(v any) string {
	return "const data = " + document.Pretty(v) + ";"
}
