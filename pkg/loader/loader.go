// Package loader turns input in several data formats into ordered documents.
// JSON is the native format; YAML, TOML, NDJSON and JWT input is converted.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Source names an input format.
type Source string

const (
	Auto   Source = "auto"
	JSON   Source = "json"
	JSONC  Source = "jsonc"
	YAML   Source = "yaml"
	TOML   Source = "toml"
	NDJSON Source = "ndjson"
	JWT    Source = "jwt"
)

// ErrUnknownSource is returned for an unsupported --from value.
var ErrUnknownSource = errors.New("unknown input format")

// Sources lists the accepted format names.
var Sources = []Source{Auto, JSON, JSONC, YAML, TOML, NDJSON, JWT}

// ParseSource resolves a format name. The empty string means JSON.
func ParseSource(name string) (Source, error) {
	switch s := Source(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return JSON, nil
	case "yml":
		return YAML, nil
	case "jsonl":
		return NDJSON, nil
	case Auto, JSON, JSONC, YAML, TOML, NDJSON, JWT:
		return s, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownSource)
	}
}

// SourceForPath guesses the format from a file extension, or Auto.
func SourceForPath(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".jsonc", ".json5":
		return JSONC
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	case ".ndjson", ".jsonl":
		return NDJSON
	case ".jwt":
		return JWT
	default:
		return Auto
	}
}

// Load converts input into a document.
func Load(input []byte, from Source) (any, error) {
	if from == Auto {
		from = Detect(string(input))
	}
	switch from {
	case JSON:
		return document.Parse(input)
	case JSONC:
		return document.ParseWithOptions(input, document.ParseOptions{Lenient: true})
	case YAML:
		return loadYAML(input)
	case TOML:
		return loadTOML(input)
	case NDJSON:
		return loadNDJSON(string(input))
	case JWT:
		return DecodeJWT(string(input))
	default:
		return nil, fmt.Errorf("%q: %w", string(from), ErrUnknownSource)
	}
}

// LoadFile reads path and converts it. Auto picks the format from the file
// extension first and the content second.
func LoadFile(path string, from Source) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if from == Auto {
		from = SourceForPath(path)
	}
	return Load(data, from)
}

// Detect guesses the format of input.
func Detect(input string) Source {
	input = strings.TrimSpace(input)
	switch {
	case IsJWT(input):
		return JWT
	case document.Valid(input):
		return JSON
	case strings.HasPrefix(input, "---") || strings.Contains(input, "\n---"):
		return YAML
	case isLikelyNDJSON(strings.Split(input, "\n")):
		return NDJSON
	case isLikelyTOML(input):
		return TOML
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		return JSONC
	default:
		return YAML
	}
}

// loadNDJSON parses one JSON value per line into an array. Lines that are not
// JSON are kept as strings.
func loadNDJSON(input string) (any, error) {
	out := document.Array{}
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := document.ParseString(line)
		if err != nil {
			out = append(out, line)
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, &document.SyntaxError{Err: document.ErrEmpty}
	}
	return out, nil
}

// loadTOML parses TOML. TOML tables decode to Go maps, so member order is
// sorted by key rather than kept from the source.
func loadTOML(input []byte) (any, error) {
	var data map[string]any
	if err := toml.Unmarshal(input, &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return document.FromNative(data)
}

// isLikelyNDJSON reports whether most non-empty lines, and more than one,
// start like a JSON object or array.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
			(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !tomlSection.MatchString(trimmed)) {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

var (
	// [server], [[items]], ["table name"], [database.credentials]
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// name = "value", database.host = "localhost"
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML reports whether input has a TOML section header or is mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (nonEmpty > 0 && pairs > nonEmpty/2)
}
