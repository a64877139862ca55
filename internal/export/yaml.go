package export

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// RenderYAML renders v as YAML, keeping object member order.
func RenderYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(YAMLNode(v)); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// YAMLNode converts v into a yaml.v3 node tree.
func YAMLNode(v any) *yaml.Node {
	switch document.KindOf(v) {
	case document.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range document.AsObject(v) {
			n.Content = append(n.Content, scalar("!!str", m.Key), YAMLNode(m.Value))
		}
		return n
	case document.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range document.AsArray(v) {
			n.Content = append(n.Content, YAMLNode(item))
		}
		return n
	case document.KindString:
		return scalar("!!str", v.(string))
	case document.KindBool:
		return scalar("!!bool", strconv.FormatBool(v.(bool)))
	case document.KindNumber:
		f, _ := document.ToFloat(v)
		s := document.FormatNumber(f)
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			return scalar("!!int", s)
		}
		return scalar("!!float", s)
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
