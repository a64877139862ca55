package table

import (
	"fmt"

	"github.com/oakwood-commons/jsonedit/internal/editable"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Model is an editable table over one value. The cursor moves over row lines;
// in homogeneous tables a column cursor selects the cell.
type Model struct {
	// OnChange receives the new value after every mutation.
	OnChange func(v any)

	root   any
	open   Sections
	lines  []Line
	cursor int
	col    int

	field    editable.Field
	editPath document.Path
}

// New returns a table over v with every nested table collapsed.
func New(v any) *Model {
	m := &Model{open: Sections{}}
	m.SetRoot(v)
	return m
}

// SetRoot replaces the value, keeping expansion state.
func (m *Model) SetRoot(v any) {
	m.root = v
	m.field.Cancel()
	m.refresh()
}

// Root returns the current value.
func (m *Model) Root() any { return m.root }

// Sections exposes the expanded nested tables.
func (m *Model) Sections() Sections { return m.open }

// Lines returns the flattened table.
func (m *Model) Lines() []Line { return m.lines }

// Cursor returns the index of the selected line.
func (m *Model) Cursor() int { return m.cursor }

// Column returns the selected cell index within the current row.
func (m *Model) Column() int {
	line, ok := m.Current()
	if !ok {
		return 0
	}
	return clampInt(m.col, 0, len(line.Cells)-1)
}

// Current returns the selected row line.
func (m *Model) Current() (Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) || m.lines[m.cursor].Kind != LineRow {
		return Line{}, false
	}
	return m.lines[m.cursor], true
}

// CurrentCell returns the selected cell.
func (m *Model) CurrentCell() (Cell, bool) {
	line, ok := m.Current()
	if !ok || len(line.Cells) == 0 {
		return Cell{}, false
	}
	return line.Cells[m.Column()], true
}

func (m *Model) refresh() {
	m.lines = Lines(m.root, m.open)
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if _, ok := m.Current(); !ok {
		if !m.seek(m.cursor, 1) {
			m.seek(m.cursor, -1)
		}
	}
}

// seek moves the cursor to the nearest row line from start in direction dir.
func (m *Model) seek(start, dir int) bool {
	for i := start; i >= 0 && i < len(m.lines); i += dir {
		if m.lines[i].Kind == LineRow {
			m.cursor = i
			return true
		}
	}
	return false
}

// MoveUp selects the previous row.
func (m *Model) MoveUp() { m.seek(m.cursor-1, -1) }

// MoveDown selects the next row.
func (m *Model) MoveDown() { m.seek(m.cursor+1, 1) }

// MoveLeft selects the previous cell of the row.
func (m *Model) MoveLeft() {
	m.col = m.Column()
	if m.col > 0 {
		m.col--
	}
}

// MoveRight selects the next cell of the row.
func (m *Model) MoveRight() {
	line, ok := m.Current()
	if !ok {
		return
	}
	m.col = m.Column()
	if m.col < len(line.Cells)-1 {
		m.col++
	}
}

// Toggle expands or collapses the nested table of the selected complex cell.
func (m *Model) Toggle() bool {
	cell, ok := m.CurrentCell()
	if !ok || !cell.Complex {
		return false
	}
	m.open.Toggle(cell.Path)
	m.refresh()
	return true
}

// Editing reports whether a cell is being edited.
func (m *Model) Editing() bool { return m.field.Editing }

// Buffer returns the edit buffer.
func (m *Model) Buffer() string { return m.field.Buffer }

// BeginEdit starts editing the selected cell. Arrays and objects with more
// than a few keys cannot be edited as text.
func (m *Model) BeginEdit() bool {
	cell, ok := m.CurrentCell()
	if !ok {
		return false
	}
	m.field = editable.New(cell.Value, editable.Cell)
	if !m.field.Begin() {
		return false
	}
	m.editPath = cell.Path
	return true
}

// SetBuffer replaces the edit buffer.
func (m *Model) SetBuffer(s string) { m.field.SetBuffer(s) }

// CommitEdit writes the edited cell back. It reports whether the value changed.
func (m *Model) CommitEdit() (bool, error) {
	if !m.field.Editing {
		return false, nil
	}
	v, changed := m.field.Commit()
	if !changed {
		return false, nil
	}
	return true, m.apply(m.editPath, v)
}

// CancelEdit abandons the edit.
func (m *Model) CancelEdit() { m.field.Cancel() }

// section returns the path of the table holding the cursor. With no rows it is
// the root table.
func (m *Model) section() document.Path {
	if m.cursor >= 0 && m.cursor < len(m.lines) {
		return m.lines[m.cursor].Section
	}
	return nil
}

// AddRow appends a row to the table holding the cursor and selects it.
func (m *Model) AddRow() error {
	p := m.section()
	cur, err := document.Get(m.root, p)
	if err != nil {
		return err
	}
	next, err := AddRow(cur)
	if err != nil {
		return fmt.Errorf("add row at %s: %w", p.Label(), err)
	}
	if err := m.apply(p, next); err != nil {
		return err
	}
	m.selectRow(p, document.Len(next)-1)
	return nil
}

// DeleteRow removes the selected row.
func (m *Model) DeleteRow() error {
	line, ok := m.Current()
	if !ok {
		return ErrRowRange
	}
	cur, err := document.Get(m.root, line.Section)
	if err != nil {
		return err
	}
	next, err := DeleteRow(cur, line.Index)
	if err != nil {
		return err
	}
	m.open.DropBelow(line.Section)
	return m.apply(line.Section, next)
}

// RenameKey renames the selected object member.
func (m *Model) RenameKey(to string) error {
	line, ok := m.Current()
	if !ok || line.Layout != LayoutObject {
		return ErrNoTable
	}
	if to == "" || to == line.Label {
		return nil
	}
	cur, err := document.Get(m.root, line.Section)
	if err != nil {
		return err
	}
	m.open.DropBelow(line.Section)
	return m.apply(line.Section, document.AsObject(cur).Rename(line.Label, to))
}

func (m *Model) apply(p document.Path, v any) error {
	root, err := document.SetAt(m.root, p, v)
	if err != nil {
		return err
	}
	m.root = root
	m.refresh()
	if m.OnChange != nil {
		m.OnChange(root)
	}
	return nil
}

func (m *Model) selectRow(section document.Path, index int) {
	want := section.String()
	for i, line := range m.lines {
		if line.Kind == LineRow && line.Index == index && line.Section.String() == want {
			m.cursor = i
			return
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
