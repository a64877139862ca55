package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakwood-commons/jsonedit/internal/valuefmt"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Sections is the set of expanded nested tables, keyed by path string.
type Sections map[string]document.Path

// Open reports whether the nested table at p is expanded.
func (s Sections) Open(p document.Path) bool {
	_, ok := s[p.String()]
	return ok
}

// Toggle flips the nested table at p and returns its new state.
func (s Sections) Toggle(p document.Path) bool {
	key := p.String()
	if _, ok := s[key]; ok {
		delete(s, key)
		return false
	}
	s[key] = p
	return true
}

// DropBelow forgets every section strictly inside p.
func (s Sections) DropBelow(p document.Path) {
	for key, sp := range s {
		if len(sp) > len(p) && sp.HasPrefix(p) {
			delete(s, key)
		}
	}
}

// AllSections expands every nested container of v.
func AllSections(v any) Sections {
	s := Sections{}
	document.Walk(v, func(p document.Path, node any) bool {
		if !p.IsRoot() && document.IsContainer(node) {
			s[p.String()] = p
		}
		return true
	})
	return s
}

// LineKind distinguishes the lines of a flattened table.
type LineKind int

const (
	// LineTitle opens a section, e.g. "Array Table (2 items)".
	LineTitle LineKind = iota
	// LineHeader holds column names.
	LineHeader
	// LineRow is one editable row.
	LineRow
)

// Cell is one value cell of a row.
type Cell struct {
	Path     document.Path
	Value    any
	Text     string
	Complex  bool
	Expanded bool
}

// Line is one line of a flattened table. Section is the path of the table the
// line belongs to; nested sections follow the row that opened them.
type Line struct {
	Kind    LineKind
	Depth   int
	Section document.Path
	Layout  Layout
	Title   string
	Columns []string
	Index   int
	Label   string
	Type    string
	Cells   []Cell
}

// Lines flattens v and the expanded nested tables into display lines.
func Lines(v any, open Sections) []Line {
	var out []Line
	appendSection(&out, v, nil, 0, open)
	return out
}

func appendSection(out *[]Line, v any, p document.Path, depth int, open Sections) {
	layout := Classify(v)
	*out = append(*out, Line{
		Kind:    LineTitle,
		Depth:   depth,
		Section: p,
		Layout:  layout,
		Title:   sectionTitle(v, layout),
	})
	if layout == LayoutScalar {
		return
	}
	*out = append(*out, Line{
		Kind:    LineHeader,
		Depth:   depth,
		Section: p,
		Layout:  layout,
		Columns: headerColumns(v, layout),
	})
	for _, row := range sectionRows(v, p, depth, layout, open) {
		*out = append(*out, row)
		for _, c := range row.Cells {
			if c.Complex && c.Expanded {
				appendSection(out, c.Value, c.Path, depth+1, open)
			}
		}
	}
}

func sectionTitle(v any, layout Layout) string {
	switch layout {
	case LayoutHomogeneous:
		return fmt.Sprintf("Array Table (%d items)", document.Len(v))
	case LayoutGeneric:
		return fmt.Sprintf("Array Items (%d items)", document.Len(v))
	case LayoutObject:
		return fmt.Sprintf("Object Properties (%d keys)", document.Len(v))
	default:
		return "Simple value: " + valuefmt.Plain(v)
	}
}

func headerColumns(v any, layout Layout) []string {
	switch layout {
	case LayoutHomogeneous:
		return append([]string{"#"}, Columns(document.AsArray(v))...)
	case LayoutGeneric:
		return []string{"INDEX", "TYPE", "VALUE"}
	default:
		return []string{"KEY", "TYPE", "VALUE"}
	}
}

func sectionRows(v any, p document.Path, depth int, layout Layout, open Sections) []Line {
	var rows []Line
	switch layout {
	case LayoutHomogeneous:
		arr := document.AsArray(v)
		cols := Columns(arr)
		for i, item := range arr {
			obj := document.AsObject(item)
			cells := make([]Cell, len(cols))
			for j, col := range cols {
				val, _ := obj.Get(col)
				cells[j] = newCell(p.Index(i).Key(col), val, open, false)
			}
			rows = append(rows, Line{Kind: LineRow, Depth: depth, Section: p, Layout: layout, Columns: cols, Index: i, Label: strconv.Itoa(i), Cells: cells})
		}
	case LayoutGeneric:
		for i, item := range document.AsArray(v) {
			rows = append(rows, Line{
				Kind: LineRow, Depth: depth, Section: p, Layout: layout, Index: i,
				Label: fmt.Sprintf("[%d]", i),
				Type:  valuefmt.TypeName(item),
				Cells: []Cell{newCell(p.Index(i), item, open, true)},
			})
		}
	case LayoutObject:
		for i, m := range document.AsObject(v) {
			rows = append(rows, Line{
				Kind: LineRow, Depth: depth, Section: p, Layout: layout, Index: i,
				Label: m.Key,
				Type:  valuefmt.TypeName(m.Value),
				Cells: []Cell{newCell(p.Key(m.Key), m.Value, open, true)},
			})
		}
	}
	return rows
}

// newCell renders a cell. Keyed rows label complex values by kind; homogeneous
// columns show a summary of their content instead.
func newCell(p document.Path, v any, open Sections, keyed bool) Cell {
	c := Cell{Path: p, Value: v, Complex: document.IsContainer(v)}
	switch {
	case !c.Complex:
		c.Text = strings.ReplaceAll(valuefmt.Plain(v), "\n", `\n`)
	case keyed && document.KindOf(v) == document.KindArray:
		c.Text = fmt.Sprintf("Array (%d items)", document.Len(v))
	case keyed:
		c.Text = "Object"
	default:
		c.Text = valuefmt.Summary(v)
	}
	if c.Complex {
		c.Expanded = open.Open(p)
	}
	return c
}
