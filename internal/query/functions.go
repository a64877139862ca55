package query

import (
	"sort"
	"strings"

	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
)

// Functions lists the callable functions and macros of the environment as
// "name() - usage" lines, sorted.
func (e *Evaluator) Functions() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 100)
	add := func(entry string) {
		if !seen[entry] {
			seen[entry] = true
			out = append(out, entry)
		}
	}
	for _, fn := range e.env.Functions() {
		if isOperator(fn.Name()) {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			add(fn.Name() + "() - " + usage(fn.Name(), o))
		}
	}
	for _, m := range e.env.Macros() {
		if isOperator(m.Function()) {
			continue
		}
		add(m.Function() + "() - macro")
	}
	sort.Strings(out)
	return out
}

var operators = map[string]bool{
	"!_": true, "-_": true, "@in": true,
	"_!=_": true, "_%_": true, "_&&_": true,
	"_*_": true, "_+_": true, "_-_": true,
	"_/_": true, "_<=_": true, "_<_": true,
	"_==_": true, "_>=_": true, "_>_": true,
	"_?_:_": true, "_[_]": true, "_||_": true,
	"_in_": true,
}

func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") || (strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_")) {
		return true
	}
	return operators[name]
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "any"
	}
	if name := t.DeclaredTypeName(); name != "" {
		return name
	}
	if name := t.TypeName(); name != "" {
		return name
	}
	return "any"
}

func typeList(params []*types.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = typeLabel(p)
	}
	return strings.Join(parts, ", ")
}

// usage renders an overload as "recv.name(args) -> result" or
// "name(args) -> result".
func usage(name string, o *decls.OverloadDecl) string {
	params := o.ArgTypes()
	call := name + "(" + typeList(params) + ")"
	if o.IsMemberFunction() && len(params) > 0 {
		call = typeLabel(params[0]) + "." + name + "(" + typeList(params[1:]) + ")"
	}
	if o.ResultType() == nil {
		return call
	}
	return call + " -> " + typeLabel(o.ResultType())
}
