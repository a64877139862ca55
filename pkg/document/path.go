package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment builds an object-key segment.
func KeySegment(key string) Segment { return Segment{Key: key} }

// IndexSegment builds an array-index segment.
func IndexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Path locates a node inside a document. It is a bookkeeping key for expansion
// state and a display label; it is not a stable identity across edits that
// change array lengths.
type Path []Segment

// Key returns a new path extended with an object key.
func (p Path) Key(key string) Path {
	return p.with(KeySegment(key))
}

// Index returns a new path extended with an array index.
func (p Path) Index(i int) Path {
	return p.with(IndexSegment(i))
}

func (p Path) with(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Parent returns the path without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// String renders the path as a.b[2].c. Keys that are not plain identifiers are
// written as ["key"]. The root renders as an empty string.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		switch {
		case s.IsIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(s.Index))
			sb.WriteByte(']')
		case isPlainKey(s.Key):
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(s.Key)
		default:
			sb.WriteByte('[')
			sb.WriteString(strconv.Quote(s.Key))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Label is String with "root" for the empty path.
func (p Path) Label() string {
	if len(p) == 0 {
		return "root"
	}
	return p.String()
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_' || r == '$' || r == '-':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ParsePath parses the syntax produced by Path.String: dotted keys, [n] indexes
// and ["quoted"] keys. A leading "_" or "_." (the expression root) is ignored.
func ParsePath(input string) (Path, error) {
	s := strings.TrimSpace(input)
	if s == "_" {
		return Path{}, nil
	}
	s = strings.TrimPrefix(s, "_.")
	if strings.HasPrefix(s, "_[") {
		s = s[1:]
	}
	var p Path
	i := 0
	for i < len(s) {
		switch ch := s[i]; ch {
		case '.':
			i++
			if i >= len(s) || s[i] == '.' || s[i] == '[' {
				return nil, fmt.Errorf("path %q: empty key at offset %d", input, i)
			}
		case '[':
			end, seg, err := parseBracket(s, i)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", input, err)
			}
			p = append(p, seg)
			i = end
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			p = append(p, KeySegment(s[i:j]))
			i = j
		}
	}
	return p, nil
}

// parseBracket parses the bracket group starting at s[start] == '['. It returns
// the offset just past the closing bracket.
func parseBracket(s string, start int) (int, Segment, error) {
	body := s[start+1:]
	if strings.HasPrefix(body, `"`) {
		// find the closing quote, honoring escapes
		j := 1
		for j < len(body) {
			if body[j] == '\\' {
				j += 2
				continue
			}
			if body[j] == '"' {
				break
			}
			j++
		}
		if j >= len(body) || j+1 >= len(body) || body[j+1] != ']' {
			return 0, Segment{}, fmt.Errorf("unterminated quoted key at offset %d", start)
		}
		key, err := strconv.Unquote(body[:j+1])
		if err != nil {
			return 0, Segment{}, fmt.Errorf("bad quoted key at offset %d: %w", start, err)
		}
		return start + 1 + j + 2, KeySegment(key), nil
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return 0, Segment{}, fmt.Errorf("unterminated index at offset %d", start)
	}
	n, err := strconv.Atoi(strings.TrimSpace(body[:end]))
	if err != nil || n < 0 {
		return 0, Segment{}, fmt.Errorf("bad index %q at offset %d", body[:end], start)
	}
	return start + 1 + end + 1, IndexSegment(n), nil
}
