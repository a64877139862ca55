package tree

import (
	"github.com/sahilm/fuzzy"

	"github.com/oakwood-commons/jsonedit/internal/editable"
	"github.com/oakwood-commons/jsonedit/internal/valuefmt"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// TableRequest asks the UI to open the array at Path in a table view.
type TableRequest struct {
	Path  document.Path
	Value document.Array
}

// Model is the editable tree state: the document, which containers are open,
// the cursor and the leaf being edited.
type Model struct {
	// OnChange receives the new root after every committed edit.
	OnChange func(root any)

	root     any
	expanded Expansion
	rows     []Row
	cursor   int

	field    editable.Field
	editPath document.Path

	query    string
	matches  []document.Path
	matchPos int
}

// New returns a model showing root with every nested container collapsed.
func New(root any) *Model {
	m := &Model{expanded: Expansion{}}
	m.SetRoot(root)
	return m
}

// SetRoot replaces the document. Expansion state is kept so an edit does not
// fold the tree; the cursor is clamped to the new row count.
func (m *Model) SetRoot(root any) {
	m.root = root
	m.field.Cancel()
	m.refresh()
}

// Root returns the current document.
func (m *Model) Root() any { return m.root }

// Expansion exposes the set of open containers.
func (m *Model) Expansion() Expansion { return m.expanded }

// Rows returns the visible rows.
func (m *Model) Rows() []Row { return m.rows }

// Cursor returns the index of the selected row.
func (m *Model) Cursor() int { return m.cursor }

// SetCursor selects row i, clamped to the visible range.
func (m *Model) SetCursor(i int) {
	m.cursor = i
	m.clamp()
}

// Current returns the selected row.
func (m *Model) Current() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) refresh() {
	m.rows = Rows(m.root, m.expanded)
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveUp selects the previous row.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown selects the next row.
func (m *Model) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

// Page moves the cursor by n rows, negative n moving up.
func (m *Model) Page(n int) {
	m.cursor += n
	m.clamp()
}

// Top selects the first row.
func (m *Model) Top() { m.cursor = 0 }

// Bottom selects the last row.
func (m *Model) Bottom() {
	m.cursor = len(m.rows) - 1
	m.clamp()
}

// Toggle opens or closes the selected container. It reports false when the
// selected row is a leaf.
func (m *Model) Toggle() bool {
	row, ok := m.Current()
	if !ok || !row.Expandable {
		return false
	}
	m.expanded.Toggle(row.Path)
	m.refresh()
	return true
}

// Collapse closes the selected container, or moves to the parent row when the
// selection is already closed or a leaf.
func (m *Model) Collapse() {
	row, ok := m.Current()
	if !ok {
		return
	}
	if row.Expandable && row.Expanded {
		m.expanded.Set(row.Path, false)
		m.refresh()
		return
	}
	if len(row.Path) > 1 {
		m.selectPath(row.Path.Parent())
	}
}

// ExpandAll opens every container in the document.
func (m *Model) ExpandAll() {
	for _, p := range containerPaths(m.root) {
		m.expanded.Set(p, true)
	}
	m.refresh()
}

// CollapseAll closes every container and returns to the first row.
func (m *Model) CollapseAll() {
	m.expanded = Expansion{}
	m.cursor = 0
	m.refresh()
}

// Editing reports whether a leaf is being edited.
func (m *Model) Editing() bool { return m.field.Editing }

// Buffer returns the edit buffer.
func (m *Model) Buffer() string { return m.field.Buffer }

// EditPath returns the path of the leaf being edited.
func (m *Model) EditPath() document.Path { return m.editPath }

// BeginEdit starts editing the selected leaf.
func (m *Model) BeginEdit() bool {
	row, ok := m.Current()
	if !ok || row.Expandable {
		return false
	}
	m.field = editable.New(row.Value, editable.Leaf)
	if !m.field.Begin() {
		return false
	}
	m.editPath = row.Path
	return true
}

// SetBuffer replaces the edit buffer.
func (m *Model) SetBuffer(s string) { m.field.SetBuffer(s) }

// CommitEdit writes the edited leaf back into the document and notifies
// OnChange. It reports whether the document changed.
func (m *Model) CommitEdit() (bool, error) {
	if !m.field.Editing {
		return false, nil
	}
	v, changed := m.field.Commit()
	if !changed {
		return false, nil
	}
	return true, m.SetAt(m.editPath, v)
}

// CancelEdit abandons the edit.
func (m *Model) CancelEdit() {
	m.field.Cancel()
}

// SetAt replaces the value at p and notifies OnChange. The table view writes
// its edits back through here.
func (m *Model) SetAt(p document.Path, v any) error {
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

// TableRequest returns a request to open the selected array, or the root
// array when the selection is not an array.
func (m *Model) TableRequest() (TableRequest, bool) {
	if row, ok := m.Current(); ok && row.IsArray() {
		return TableRequest{Path: row.Path, Value: document.AsArray(row.Value)}, true
	}
	if arr := document.AsArray(m.root); arr != nil {
		return TableRequest{Path: document.Path{}, Value: arr}, true
	}
	return TableRequest{}, false
}

// searchSource adapts candidate nodes to fuzzy.Source.
type searchSource []searchItem

type searchItem struct {
	path document.Path
	text string
}

func (s searchSource) String(i int) string { return s[i].text }
func (s searchSource) Len() int            { return len(s) }

// Search fuzzy-matches query against every key path and leaf value, opens the
// ancestors of each match and selects the best one. It returns the number of
// matches. An empty query clears the search.
func (m *Model) Search(query string) int {
	m.query = query
	m.matches = nil
	m.matchPos = 0
	if query == "" {
		return 0
	}
	var src searchSource
	document.Walk(m.root, func(p document.Path, v any) bool {
		if p.IsRoot() {
			return true
		}
		text := p.String()
		if !document.IsContainer(v) {
			text += " " + valuefmt.Plain(v)
		}
		src = append(src, searchItem{path: p, text: text})
		return true
	})
	for _, match := range fuzzy.FindFrom(query, src) {
		m.matches = append(m.matches, src[match.Index].path)
	}
	for _, p := range m.matches {
		m.reveal(p)
	}
	m.refresh()
	if len(m.matches) > 0 {
		m.selectPath(m.matches[0])
	}
	return len(m.matches)
}

// Query returns the active search text.
func (m *Model) Query() string { return m.query }

// Matches returns the paths found by the last search, best first.
func (m *Model) Matches() []document.Path { return m.matches }

// NextMatch selects the next search match, wrapping around.
func (m *Model) NextMatch() bool {
	if len(m.matches) == 0 {
		return false
	}
	m.matchPos = (m.matchPos + 1) % len(m.matches)
	m.selectPath(m.matches[m.matchPos])
	return true
}

// Select opens the ancestors of p and moves the cursor to it. It reports
// false when p does not exist in the document.
func (m *Model) Select(p document.Path) bool {
	if _, err := document.Get(m.root, p); err != nil {
		return false
	}
	if p.IsRoot() {
		m.cursor = 0
		return true
	}
	m.reveal(p)
	m.refresh()
	m.selectPath(p)
	return true
}

func (m *Model) reveal(p document.Path) {
	for anc := p.Parent(); !anc.IsRoot(); anc = anc.Parent() {
		m.expanded.Set(anc, true)
	}
}

func (m *Model) selectPath(p document.Path) {
	want := p.String()
	for i, row := range m.rows {
		if row.Path.String() == want {
			m.cursor = i
			return
		}
	}
}
