// Package query evaluates CEL expressions against a document. The document is
// bound to the variable "_".
package query

import (
	"encoding/base64"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Root is the variable the document is bound to.
const Root = "_"

// Evaluator compiles and runs expressions.
type Evaluator struct {
	env *cel.Env
}

// New returns an evaluator with the standard extensions loaded.
func New(opts ...cel.EnvOption) (*Evaluator, error) {
	env, err := newEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	all := make([]cel.EnvOption, 0, 5+len(opts))
	all = append(all,
		cel.Variable(Root, cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	all = append(all, opts...)
	return cel.NewEnv(all...)
}

// Env exposes the environment for function discovery.
func (e *Evaluator) Env() *cel.Env {
	return e.env
}

// Check compiles expr without running it.
func (e *Evaluator) Check(expr string) error {
	_, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile: %w", issues.Err())
	}
	return nil
}

// Evaluate runs expr against doc and returns the result as a document value.
// Objects built by the expression have their keys sorted since CEL maps carry
// no order.
func (e *Evaluator) Evaluate(expr string, doc any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	out, _, err := prg.Eval(map[string]any{Root: document.ToNative(doc)})
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	v, err := document.FromNative(ToGo(out))
	if err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	return v, nil
}

// Match evaluates a boolean expression. Non-boolean results are an error.
func (e *Evaluator) Match(expr string, doc any) (bool, error) {
	v, err := e.Evaluate(expr, doc)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %s, want boolean", document.KindOf(v))
	}
	return b, nil
}

// ToGo converts a CEL value to plain Go values: maps, slices and scalars.
// Bytes become base64 text.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Null:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return base64.StdEncoding.EncodeToString(v)
	case traits.Mapper:
		out := make(map[string]any)
		for it := v.Iterator(); it.HasNext() == types.True; {
			k := it.Next()
			out[fmt.Sprint(ToGo(k))] = ToGo(v.Get(k))
		}
		return out
	case traits.Lister:
		n, _ := v.Size().(types.Int)
		out := make([]any, 0, int(n))
		for i := types.Int(0); i < n; i++ {
			out = append(out, ToGo(v.Get(i)))
		}
		return out
	}
	return val.Value()
}
