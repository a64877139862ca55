package query

import (
	"sort"
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Complete returns replacements for input that finish its trailing path or
// function name. Members of the value the path points at come first, then
// matching functions written as "name(". Each candidate is the whole input.
func (e *Evaluator) Complete(input string, doc any) []string {
	head, tail := splitTrailingPath(input)
	dot := strings.LastIndex(tail, ".")

	var out []string
	if dot < 0 {
		partial := tail
		if strings.HasPrefix(Root, partial) && partial != Root {
			out = append(out, head+Root)
		}
		for _, fn := range e.names(false) {
			if partial != "" && strings.HasPrefix(fn, partial) {
				out = append(out, head+fn+"(")
			}
		}
		return out
	}

	base, partial := tail[:dot], tail[dot+1:]
	if base != Root && !strings.HasPrefix(base, Root+".") && !strings.HasPrefix(base, Root+"[") {
		return nil
	}
	p, err := document.ParsePath(base)
	if err != nil {
		return nil
	}
	v, err := document.Get(doc, p)
	if err != nil {
		return nil
	}
	if obj, ok := v.(document.Object); ok {
		for _, k := range obj.Keys() {
			if strings.HasPrefix(k, partial) && k != partial {
				out = append(out, head+rootPrefix(p.Key(k)))
			}
		}
	}
	for _, fn := range e.names(true) {
		if partial != "" && strings.HasPrefix(fn, partial) {
			out = append(out, head+base+"."+fn+"(")
		}
	}
	return out
}

// CommonPrefix is the longest prefix shared by every candidate.
func CommonPrefix(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0]
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func rootPrefix(p document.Path) string {
	s := p.String()
	if strings.HasPrefix(s, "[") {
		return Root + s
	}
	return Root + "." + s
}

// splitTrailingPath separates the path expression at the end of input from
// the text before it.
func splitTrailingPath(input string) (head, tail string) {
	i := len(input)
	for i > 0 && isPathByte(input[i-1]) {
		i--
	}
	return input[:i], input[i:]
}

func isPathByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '_' || c == '.' || c == '[' || c == ']'
}

// names lists function and macro names, sorted. With member set only those
// callable as receiver.name() are included.
func (e *Evaluator) names(member bool) []string {
	seen := make(map[string]bool)
	for _, fn := range e.env.Functions() {
		if isOperator(fn.Name()) || strings.Contains(fn.Name(), ".") {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			if o.IsMemberFunction() == member {
				seen[fn.Name()] = true
			}
		}
	}
	for _, m := range e.env.Macros() {
		if !isOperator(m.Function()) && m.IsReceiverStyle() == member {
			seen[m.Function()] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
