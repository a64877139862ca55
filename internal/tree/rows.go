// Package tree flattens a document into expandable rows and edits it one leaf
// at a time.
package tree

import (
	"fmt"
	"sort"

	"github.com/oakwood-commons/jsonedit/internal/valuefmt"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Expansion is the set of expanded container paths, keyed by Path.String().
type Expansion map[string]bool

// IsExpanded reports whether the container at p is open.
func (e Expansion) IsExpanded(p document.Path) bool {
	return e[p.String()]
}

// Set opens or closes the container at p.
func (e Expansion) Set(p document.Path, open bool) {
	if open {
		e[p.String()] = true
		return
	}
	delete(e, p.String())
}

// Toggle flips the container at p and returns its new state.
func (e Expansion) Toggle(p document.Path) bool {
	open := !e.IsExpanded(p)
	e.Set(p, open)
	return open
}

// Paths returns the expanded path strings in sorted order.
func (e Expansion) Paths() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Row is one visible line of the tree.
type Row struct {
	Path       document.Path
	Depth      int
	Label      string
	Kind       document.Kind
	Value      any
	Text       string
	Children   int
	Expandable bool
	Expanded   bool
}

// IsArray reports whether the row can be opened in a table view.
func (r Row) IsArray() bool { return r.Kind == document.KindArray }

// Rows flattens the visible part of doc. The root container's own children are
// always shown; deeper containers show children only when expanded. A scalar
// root yields a single row labelled "root".
func Rows(doc any, exp Expansion) []Row {
	if !document.IsContainer(doc) {
		return []Row{leafRow(nil, 0, "root", doc)}
	}
	var rows []Row
	appendChildren(&rows, doc, nil, 0, exp)
	return rows
}

func appendChildren(rows *[]Row, v any, p document.Path, depth int, exp Expansion) {
	switch document.KindOf(v) {
	case document.KindObject:
		for _, m := range document.AsObject(v) {
			appendValue(rows, m.Value, p.Key(m.Key), depth, m.Key, exp)
		}
	case document.KindArray:
		for i, item := range document.AsArray(v) {
			appendValue(rows, item, p.Index(i), depth, fmt.Sprintf("[%d]", i), exp)
		}
	}
}

func appendValue(rows *[]Row, v any, p document.Path, depth int, label string, exp Expansion) {
	if !document.IsContainer(v) {
		*rows = append(*rows, leafRow(p, depth, label, v))
		return
	}
	open := exp.IsExpanded(p)
	*rows = append(*rows, Row{
		Path:       p,
		Depth:      depth,
		Label:      label,
		Kind:       document.KindOf(v),
		Value:      v,
		Text:       containerText(v),
		Children:   document.Len(v),
		Expandable: true,
		Expanded:   open,
	})
	if open {
		appendChildren(rows, v, p, depth+1, exp)
	}
}

func leafRow(p document.Path, depth int, label string, v any) Row {
	return Row{
		Path:  p,
		Depth: depth,
		Label: label,
		Kind:  document.KindOf(v),
		Value: v,
		Text:  valuefmt.Display(v),
	}
}

func containerText(v any) string {
	if document.KindOf(v) == document.KindArray {
		return fmt.Sprintf("[%d items]", document.Len(v))
	}
	return fmt.Sprintf("{%d keys}", document.Len(v))
}

// containerPaths lists every container path below the root, in document order.
func containerPaths(doc any) []document.Path {
	var out []document.Path
	document.Walk(doc, func(p document.Path, v any) bool {
		if !p.IsRoot() && document.IsContainer(v) {
			out = append(out, p)
		}
		return true
	})
	return out
}
