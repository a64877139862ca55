package export

import (
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// RenderPHP renders v as a PHP script assigning an array literal to $data.
func RenderPHP(v any) string {
	return "<?php\n$data = " + phpValue(v, 0) + ";\n?>"
}

func phpValue(v any, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch document.KindOf(v) {
	case document.KindArray:
		arr := document.AsArray(v)
		if len(arr) == 0 {
			return "array()"
		}
		items := make([]string, len(arr))
		for i, item := range arr {
			items[i] = pad + "  " + phpValue(item, depth+1)
		}
		return "array(\n" + strings.Join(items, ",\n") + "\n" + pad + ")"
	case document.KindObject:
		obj := document.AsObject(v)
		if len(obj) == 0 {
			return "array()"
		}
		items := make([]string, len(obj))
		for i, m := range obj {
			items[i] = pad + "  " + phpString(m.Key) + " => " + phpValue(m.Value, depth+1)
		}
		return "array(\n" + strings.Join(items, ",\n") + "\n" + pad + ")"
	case document.KindString:
		return phpString(v.(string))
	case document.KindBool:
		if v.(bool) {
			return "true"
		}
		return "false"
	case document.KindNumber:
		f, _ := document.ToFloat(v)
		return document.FormatNumber(f)
	default:
		return "null"
	}
}

func phpString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
