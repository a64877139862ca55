package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

func sampleDoc(t *testing.T) any {
	t.Helper()
	v, err := document.ParseString(`{
		"name": "shop",
		"items": [
			{"name": "apple", "price": 1.5, "available": true},
			{"name": "pear", "price": 3, "available": false}
		]
	}`)
	require.NoError(t, err)
	return v
}

func TestEvaluate(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	doc := sampleDoc(t)

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"field", `_.name`, "shop"},
		{"index", `_.items[1].name`, "pear"},
		{"size", `_.items.size()`, 2.0},
		{"filter map", `_.items.filter(x, x.available).map(x, x.name)`, document.Array{"apple"}},
		{"arithmetic", `_.items[1].price * 2.0`, 6.0},
		{"string ext", `_.name.upperAscii()`, "SHOP"},
		{"map literal", `{"z": 1, "a": _.name}`, document.Object{{Key: "a", Value: "shop"}, {Key: "z", Value: 1.0}}},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.expr, doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, err = e.Evaluate(`_.items[`, sampleDoc(t))
	require.ErrorContains(t, err, "compile")

	_, err = e.Evaluate(`_.missing.name`, sampleDoc(t))
	require.ErrorContains(t, err, "eval")

	require.Error(t, e.Check(`1 +`))
	require.NoError(t, e.Check(`_.a == 1`))
}

func TestMatch(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ok, err := e.Match(`_.items.exists(x, x.name == "pear")`, sampleDoc(t))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.Match(`_.name`, sampleDoc(t))
	require.ErrorContains(t, err, "want boolean")
}

func TestFunctions(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	fns := e.Functions()
	require.NotEmpty(t, fns)

	joined := strings.Join(fns, "\n")
	assert.Contains(t, joined, "size()")
	assert.Contains(t, joined, "filter() - macro")
	assert.NotContains(t, joined, "_+_")
}
