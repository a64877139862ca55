// Package table presents objects and arrays as editable tables. Arrays of
// objects sharing one key set get a column per key; other arrays and objects
// get index or key rows with a type badge. Complex cells expand inline into
// nested tables.
package table

import (
	"slices"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Layout is the table shape chosen for a value.
type Layout int

const (
	// LayoutScalar is a primitive; it has no table.
	LayoutScalar Layout = iota
	// LayoutObject lists an object's members as key, type and value.
	LayoutObject
	// LayoutHomogeneous lists an array of like-shaped objects with one column per key.
	LayoutHomogeneous
	// LayoutGeneric lists any other array as index, type and value.
	LayoutGeneric
)

func (l Layout) String() string {
	switch l {
	case LayoutObject:
		return "object"
	case LayoutHomogeneous:
		return "homogeneous"
	case LayoutGeneric:
		return "generic"
	default:
		return "scalar"
	}
}

// Classify picks the layout for v.
func Classify(v any) Layout {
	switch document.KindOf(v) {
	case document.KindObject:
		return LayoutObject
	case document.KindArray:
		if IsHomogeneous(document.AsArray(v)) {
			return LayoutHomogeneous
		}
		return LayoutGeneric
	default:
		return LayoutScalar
	}
}

// IsHomogeneous reports whether arr is non-empty and every element is an
// object with the same set of keys. Key order does not matter.
func IsHomogeneous(arr document.Array) bool {
	if len(arr) == 0 {
		return false
	}
	first, ok := arr[0].(document.Object)
	if !ok {
		return false
	}
	want := sortedKeys(first)
	for _, item := range arr[1:] {
		obj, ok := item.(document.Object)
		if !ok || !slices.Equal(want, sortedKeys(obj)) {
			return false
		}
	}
	return true
}

// Columns returns the column keys of a homogeneous array: the first element's
// keys in document order.
func Columns(arr document.Array) []string {
	if !IsHomogeneous(arr) {
		return nil
	}
	return arr[0].(document.Object).Keys()
}

func sortedKeys(o document.Object) []string {
	keys := o.Keys()
	slices.Sort(keys)
	return keys
}
