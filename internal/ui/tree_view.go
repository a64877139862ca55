package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jsonedit/internal/query"
	"github.com/oakwood-commons/jsonedit/internal/tree"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

type treeMode int

const (
	treeBrowse treeMode = iota
	treeEditing
	treeSearching
	treeQuerying
)

// TreeView is the tree pane: document rows with a cursor, inline leaf edits,
// fuzzy search and CEL jumps.
type TreeView struct {
	tree    *tree.Model
	input   textinput.Model
	mode    treeMode
	eval    *query.Evaluator
	styles  *Styles
	width   int
	height  int
	offset  int
	focused bool
}

// NewTreeView returns a pane over t. eval may be nil, which disables queries.
func NewTreeView(t *tree.Model, eval *query.Evaluator, st *Styles) *TreeView {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 0
	return &TreeView{tree: t, input: in, eval: eval, styles: st, width: 40, height: 10}
}

func (v *TreeView) Init() tea.Cmd { return nil }

func (v *TreeView) Title() string { return "Tree" }

func (v *TreeView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.input.SetWidth(max(width-4, 1))
}

func (v *TreeView) Focus() tea.Cmd {
	v.focused = true
	return nil
}

func (v *TreeView) Blur() {
	v.focused = false
	v.stopInput()
}

func (v *TreeView) Focused() bool { return v.focused }

// Capturing reports whether an inline input owns the keyboard.
func (v *TreeView) Capturing() bool { return v.mode != treeBrowse }

func (v *TreeView) startInput(mode treeMode, value string) tea.Cmd {
	v.mode = mode
	v.input.SetValue(value)
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *TreeView) stopInput() {
	if v.mode == treeEditing {
		v.tree.CancelEdit()
	}
	v.mode = treeBrowse
	v.input.Blur()
}

func (v *TreeView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return v, nil
	}
	if v.mode != treeBrowse {
		return v, v.updateInput(key)
	}
	return v, v.browse(key)
}

func (v *TreeView) browse(key tea.KeyPressMsg) tea.Cmd {
	switch TreeKeys.Lookup(key) {
	case ActionUp:
		v.tree.MoveUp()
	case ActionDown:
		v.tree.MoveDown()
	case ActionPageUp:
		v.tree.Page(-v.bodyHeight())
	case ActionPageDown:
		v.tree.Page(v.bodyHeight())
	case ActionTop:
		v.tree.Top()
	case ActionBottom:
		v.tree.Bottom()
	case ActionOpen:
		if !v.tree.Toggle() {
			return v.beginEdit()
		}
	case ActionCollapse:
		v.tree.Collapse()
	case ActionEdit:
		return v.beginEdit()
	case ActionExpandAll:
		v.tree.ExpandAll()
	case ActionCollapseAll:
		v.tree.CollapseAll()
	case ActionSearch:
		return v.startInput(treeSearching, v.tree.Query())
	case ActionNextMatch:
		if !v.tree.NextMatch() {
			return statusCmd(StatusInfo, "No search matches")
		}
	case ActionTable:
		req, ok := v.tree.TableRequest()
		if !ok {
			return statusCmd(StatusInfo, "Select an array to open it as a table")
		}
		return func() tea.Msg { return openTableMsg{req: req} }
	case ActionQuery:
		if v.eval == nil {
			return statusCmd(StatusError, "Queries are unavailable")
		}
		return v.startInput(treeQuerying, "")
	}
	return nil
}

func (v *TreeView) beginEdit() tea.Cmd {
	if !v.tree.BeginEdit() {
		return nil
	}
	return v.startInput(treeEditing, v.tree.Buffer())
}

func (v *TreeView) updateInput(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		v.stopInput()
		return nil
	case "enter":
		return v.submit()
	case "tab":
		if v.mode == treeQuerying {
			return v.complete()
		}
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(key)
	if v.mode == treeEditing {
		v.tree.SetBuffer(v.input.Value())
	}
	return cmd
}

func (v *TreeView) submit() tea.Cmd {
	text := v.input.Value()
	mode := v.mode
	v.mode = treeBrowse
	v.input.Blur()
	switch mode {
	case treeEditing:
		v.tree.SetBuffer(text)
		if _, err := v.tree.CommitEdit(); err != nil {
			return errorCmd(err)
		}
	case treeSearching:
		n := v.tree.Search(text)
		switch {
		case text == "":
			return statusCmd(StatusInfo, "Search cleared")
		case n == 0:
			return statusCmd(StatusError, fmt.Sprintf("No matches for %q", text))
		default:
			return statusCmd(StatusInfo, fmt.Sprintf("%d matches for %q (n for next)", n, text))
		}
	case treeQuerying:
		return v.runQuery(text)
	}
	return nil
}

// runQuery jumps to a path expression, or evaluates CEL and shows the result.
func (v *TreeView) runQuery(expr string) tea.Cmd {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	if p, err := document.ParsePath(expr); err == nil && v.tree.Select(p) {
		return statusCmd(StatusInfo, "Jumped to "+p.Label())
	}
	out, err := v.eval.Evaluate(expr, v.tree.Root())
	if err != nil {
		return errorCmd(err)
	}
	return statusCmd(StatusSuccess, "= "+document.Compact(out))
}

// complete finishes the query under the cursor. Several candidates fill in
// their shared prefix and are listed on the status line.
func (v *TreeView) complete() tea.Cmd {
	cands := v.eval.Complete(v.input.Value(), v.tree.Root())
	switch len(cands) {
	case 0:
		return statusCmd(StatusInfo, "No completions")
	case 1:
		v.input.SetValue(cands[0])
		v.input.CursorEnd()
		return nil
	}
	v.input.SetValue(query.CommonPrefix(cands))
	v.input.CursorEnd()
	return statusCmd(StatusInfo, completionList(cands, 8))
}

// completionList shows the last path segment of each candidate.
func completionList(cands []string, limit int) string {
	names := make([]string, 0, min(len(cands), limit)+1)
	for i, c := range cands {
		if i == limit {
			names = append(names, fmt.Sprintf("+%d more", len(cands)-limit))
			break
		}
		if dot := strings.LastIndex(c, "."); dot >= 0 {
			c = c[dot+1:]
		}
		names = append(names, c)
	}
	return strings.Join(names, "  ")
}

func (v *TreeView) bodyHeight() int {
	h := v.height
	if v.mode != treeBrowse {
		h--
	}
	return max(h, 1)
}

func (v *TreeView) scroll() {
	h := v.bodyHeight()
	cur := v.tree.Cursor()
	if cur < v.offset {
		v.offset = cur
	}
	if cur >= v.offset+h {
		v.offset = cur - h + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *TreeView) View() string {
	rows := v.tree.Rows()
	if len(rows) == 0 {
		return v.styles.Muted.Render("(empty)")
	}
	v.scroll()
	h := v.bodyHeight()
	lines := make([]string, 0, h+1)
	end := min(v.offset+h, len(rows))
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(rows[i], i == v.tree.Cursor()))
	}
	switch v.mode {
	case treeSearching:
		lines = append(lines, "/"+v.input.View())
	case treeQuerying:
		lines = append(lines, ":"+v.input.View())
	}
	return strings.Join(lines, "\n")
}

func (v *TreeView) renderRow(row tree.Row, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)
	marker := "  "
	if row.Expandable {
		marker = "▸ "
		if row.Expanded {
			marker = "▾ "
		}
	}
	prefix := indent + marker + row.Label + ": "
	if selected && v.mode == treeEditing {
		return prefix + v.input.View()
	}
	avail := v.width - runewidth.StringWidth(prefix)
	text := runewidth.Truncate(row.Text, max(avail, 1), "…")
	if selected && v.focused {
		return v.styles.Selected.Render(runewidth.FillRight(prefix+text, v.width))
	}
	if selected {
		return v.styles.Title.Render(prefix) + v.styles.Value(row.Value, text)
	}
	return indent + marker + v.styles.Key.Render(row.Label) + ": " + v.styles.Value(row.Value, text)
}

// hints lists the keys for the footer.
func (v *TreeView) hints() []hint {
	switch v.mode {
	case treeEditing:
		return []hint{{"enter", "save"}, {"esc", "cancel"}}
	case treeQuerying:
		return []hint{{"enter", "run"}, {"tab", "complete"}, {"esc", "cancel"}}
	case treeSearching:
		return []hint{{"enter", "run"}, {"esc", "cancel"}}
	}
	return []hint{
		{"↑↓", "move"}, {"enter", "open/edit"}, {"←", "close"}, {"E/C", "expand/collapse all"},
		{"/", "search"}, {"t", "table"}, {":", "query"},
	}
}
