package table

import (
	"errors"
	"fmt"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var (
	// ErrNoTable is returned when a row operation targets a scalar.
	ErrNoTable = errors.New("value is not an object or array")
	// ErrRowRange is returned for a row index outside the table.
	ErrRowRange = errors.New("row index out of range")
)

// newKeyBase names members added to an object table.
const newKeyBase = "newKey"

// AddRow returns v with one more row. Homogeneous arrays get an object with
// every column set to the empty string, other arrays get null and objects get
// a fresh key holding null.
func AddRow(v any) (any, error) {
	switch Classify(v) {
	case LayoutHomogeneous:
		arr := document.AsArray(v)
		cols := Columns(arr)
		row := make(document.Object, len(cols))
		for i, c := range cols {
			row[i] = document.Member{Key: c, Value: ""}
		}
		return arr.Append(row), nil
	case LayoutGeneric:
		return document.AsArray(v).Append(nil), nil
	case LayoutObject:
		obj := document.AsObject(v)
		return obj.With(freeKey(obj), nil), nil
	default:
		return nil, ErrNoTable
	}
}

// DeleteRow returns v without row i. For objects the row is the i-th member.
func DeleteRow(v any, i int) (any, error) {
	switch document.KindOf(v) {
	case document.KindArray:
		arr := document.AsArray(v)
		if i < 0 || i >= len(arr) {
			return nil, fmt.Errorf("delete row %d of %d: %w", i, len(arr), ErrRowRange)
		}
		return arr.Without(i), nil
	case document.KindObject:
		obj := document.AsObject(v)
		if i < 0 || i >= len(obj) {
			return nil, fmt.Errorf("delete row %d of %d: %w", i, len(obj), ErrRowRange)
		}
		return obj.Without(obj[i].Key), nil
	default:
		return nil, ErrNoTable
	}
}

// SetCell returns arr with column col of row i set to v.
func SetCell(arr document.Array, i int, col string, v any) (document.Array, error) {
	if i < 0 || i >= len(arr) {
		return nil, fmt.Errorf("set cell %d/%s: %w", i, col, ErrRowRange)
	}
	row := document.AsObject(arr[i])
	if row == nil {
		return nil, fmt.Errorf("set cell %d/%s: %w", i, col, document.ErrNotContainer)
	}
	return arr.With(i, row.With(col, v)), nil
}

// SetItem returns arr with element i set to v.
func SetItem(arr document.Array, i int, v any) (document.Array, error) {
	if i < 0 || i >= len(arr) {
		return nil, fmt.Errorf("set item %d: %w", i, ErrRowRange)
	}
	return arr.With(i, v), nil
}

// SetEntry returns obj with key set to v.
func SetEntry(obj document.Object, key string, v any) document.Object {
	return obj.With(key, v)
}

func freeKey(obj document.Object) string {
	if obj.Index(newKeyBase) < 0 {
		return newKeyBase
	}
	for n := 1; ; n++ {
		k := fmt.Sprintf("%s%d", newKeyBase, n)
		if obj.Index(k) < 0 {
			return k
		}
	}
}
