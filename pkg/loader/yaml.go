package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// loadYAML decodes YAML into a document, keeping mapping order. A stream of
// several documents becomes an array.
func loadYAML(input []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(input))
	var docs document.Array
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		v, err := fromYAML(&n)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	switch len(docs) {
	case 0:
		return nil, &document.SyntaxError{Err: document.ErrEmpty}
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		obj := make(document.Object, 0, len(n.Content)/2)
		seen := make(map[string]int, len(n.Content)/2)
		// Explicit keys replace earlier values. Merged keys never replace.
		set := func(key string, val any, replace bool) {
			if i, ok := seen[key]; ok {
				if replace {
					obj[i].Value = val
				}
				return
			}
			seen[key] = len(obj)
			obj = append(obj, document.Member{Key: key, Value: val})
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Tag == "!!merge" {
				merged, err := fromYAML(v)
				if err != nil {
					return nil, err
				}
				for _, src := range mergeSources(merged) {
					for _, m := range src {
						set(m.Key, m.Value, false)
					}
				}
				continue
			}
			val, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			set(k.Value, val, true)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make(document.Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

// mergeSources lists the mappings of a merge value: one mapping, or each
// mapping of a sequence such as [*a, *b]. Earlier mappings take precedence.
func mergeSources(v any) []document.Object {
	if arr, ok := v.(document.Array); ok {
		out := make([]document.Object, 0, len(arr))
		for _, item := range arr {
			if obj := document.AsObject(item); obj != nil {
				out = append(out, obj)
			}
		}
		return out
	}
	if obj := document.AsObject(v); obj != nil {
		return []document.Object{obj}
	}
	return nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
