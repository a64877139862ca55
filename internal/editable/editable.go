// Package editable holds the in-place edit state of a single value.
package editable

import (
	"github.com/oakwood-commons/jsonedit/internal/valuefmt"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Mode selects the rule used to turn the buffer back into a value.
type Mode int

const (
	// Leaf is used by tree leaves.
	Leaf Mode = iota
	// Cell is used by table cells; it also accepts JSON containers.
	Cell
)

// SmallObjectKeys is the largest object that a table cell edits as JSON text.
const SmallObjectKeys = 3

// Field is one editable value. The zero value is an idle leaf field holding null.
type Field struct {
	Value   any
	Buffer  string
	Editing bool
	Mode    Mode
}

// New returns an idle field for v.
func New(v any, mode Mode) Field {
	return Field{Value: v, Mode: mode}
}

// CanEdit reports whether the field's value can be edited in place. Primitives
// always can; in Cell mode small objects can too.
func (f *Field) CanEdit() bool {
	switch document.KindOf(f.Value) {
	case document.KindArray, document.KindInvalid:
		return false
	case document.KindObject:
		return f.Mode == Cell && document.Len(f.Value) <= SmallObjectKeys
	default:
		return true
	}
}

// Begin starts editing with the buffer set to the value's edit text.
func (f *Field) Begin() bool {
	if !f.CanEdit() {
		return false
	}
	f.Buffer = valuefmt.EditText(f.Value)
	f.Editing = true
	return true
}

// SetBuffer replaces the buffer while editing.
func (f *Field) SetBuffer(s string) {
	if f.Editing {
		f.Buffer = s
	}
}

// Commit parses the buffer and ends editing. It returns the new value and
// whether it differs from the old one. Committing an idle field does nothing.
func (f *Field) Commit() (any, bool) {
	if !f.Editing {
		return f.Value, false
	}
	var next any
	if f.Mode == Cell {
		next = valuefmt.ParseCell(f.Buffer, f.Value)
	} else {
		next = valuefmt.ParseLeaf(f.Buffer, f.Value)
	}
	f.Editing = false
	f.Buffer = ""
	changed := !document.Equal(f.Value, next)
	f.Value = next
	return next, changed
}

// Cancel discards the buffer and ends editing.
func (f *Field) Cancel() {
	f.Editing = false
	f.Buffer = ""
}
