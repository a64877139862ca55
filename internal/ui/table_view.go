package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonedit/internal/table"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

type tableMode int

const (
	tableBrowse tableMode = iota
	tableEditing
	tableRenaming
)

// TableView shows one array of the document as an editable table. It is
// opened from the tree and writes every mutation back through write.
type TableView struct {
	table  *table.Model
	path   document.Path
	write  func(p document.Path, v any) error
	input  textinput.Model
	mode   tableMode
	styles *Styles
	colors table.Colors
	width  int
	height int
	offset int

	writeErr error
}

// NewTableView opens a table over v, the value found at p.
func NewTableView(p document.Path, v any, st *Styles, colors table.Colors, write func(document.Path, any) error) *TableView {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 0
	tv := &TableView{table: table.New(v), path: p, write: write, input: in, styles: st, colors: colors, width: 60, height: 10}
	tv.table.OnChange = func(next any) {
		if tv.write != nil {
			tv.writeErr = tv.write(tv.path, next)
		}
	}
	return tv
}

func (v *TableView) Init() tea.Cmd { return nil }

func (v *TableView) Title() string { return "Table " + v.path.Label() }

// Path returns the location of the shown array.
func (v *TableView) Path() document.Path { return v.path }

// Sync replaces the shown value after the document changed elsewhere. It
// reports false when the path no longer holds an array.
func (v *TableView) Sync(doc any) bool {
	cur, err := document.Get(doc, v.path)
	if err != nil || document.AsArray(cur) == nil {
		return false
	}
	if v.mode == tableBrowse {
		v.table.SetRoot(cur)
	}
	return true
}

func (v *TableView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.input.SetWidth(max(width/3, 8))
}

// Capturing reports whether an input owns the keyboard.
func (v *TableView) Capturing() bool { return v.mode != tableBrowse }

func (v *TableView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return v, nil
	}
	v.writeErr = nil
	var cmd tea.Cmd
	if v.mode != tableBrowse {
		cmd = v.updateInput(key)
	} else {
		cmd = v.browse(key)
	}
	if v.writeErr != nil {
		return v, errorCmd(v.writeErr)
	}
	return v, cmd
}

func (v *TableView) browse(key tea.KeyPressMsg) tea.Cmd {
	switch TableKeys.Lookup(key) {
	case ActionUp:
		v.table.MoveUp()
	case ActionDown:
		v.table.MoveDown()
	case ActionLeft:
		v.table.MoveLeft()
	case ActionRight:
		v.table.MoveRight()
	case ActionToggle:
		v.table.Toggle()
	case ActionEdit:
		if !v.table.BeginEdit() {
			if v.table.Toggle() {
				return nil
			}
			return statusCmd(StatusInfo, "This cell cannot be edited as text")
		}
		return v.startInput(tableEditing, v.table.Buffer())
	case ActionAddRow:
		if err := v.table.AddRow(); err != nil {
			return errorCmd(err)
		}
	case ActionDeleteRow:
		if err := v.table.DeleteRow(); err != nil {
			return errorCmd(err)
		}
	case ActionRename:
		line, ok := v.table.Current()
		if !ok || line.Layout != table.LayoutObject {
			return statusCmd(StatusInfo, "Only object keys can be renamed")
		}
		return v.startInput(tableRenaming, line.Label)
	case ActionClose:
		return func() tea.Msg { return closeTableMsg{} }
	}
	return nil
}

func (v *TableView) startInput(mode tableMode, value string) tea.Cmd {
	v.mode = mode
	v.input.SetValue(value)
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *TableView) updateInput(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		v.table.CancelEdit()
		v.mode = tableBrowse
		v.input.Blur()
		return nil
	case "enter":
		mode := v.mode
		text := v.input.Value()
		v.mode = tableBrowse
		v.input.Blur()
		if mode == tableRenaming {
			if err := v.table.RenameKey(strings.TrimSpace(text)); err != nil {
				return errorCmd(err)
			}
			return nil
		}
		v.table.SetBuffer(text)
		if _, err := v.table.CommitEdit(); err != nil {
			return errorCmd(err)
		}
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(key)
	if v.mode == tableEditing {
		v.table.SetBuffer(v.input.Value())
	}
	return cmd
}

func (v *TableView) scroll(total int) {
	h := max(v.height, 1)
	cur := v.table.Cursor()
	if cur < v.offset {
		v.offset = cur
	}
	if cur >= v.offset+h {
		v.offset = cur - h + 1
	}
	v.offset = max(min(v.offset, total-h), 0)
}

func (v *TableView) View() string {
	lines := v.table.Lines()
	if len(lines) == 0 {
		return v.styles.Muted.Render("(empty array, press a to add a row)")
	}
	opts := table.RenderOptions{
		Width:   v.width,
		NoColor: v.styles.NoColor,
		Colors:  v.colors,
		Cursor:  v.table.Cursor(),
		Column:  v.table.Column(),
	}
	if v.mode == tableEditing {
		opts.EditView = v.input.View()
	}
	out := table.RenderLines(lines, opts)
	if v.mode == tableRenaming {
		out = append(out, "rename: "+v.input.View())
	}
	v.scroll(len(out))
	end := min(v.offset+max(v.height, 1), len(out))
	return strings.Join(out[v.offset:end], "\n")
}

func (v *TableView) hints() []hint {
	if v.mode != tableBrowse {
		return []hint{{"enter", "save"}, {"esc", "cancel"}}
	}
	return []hint{
		{"↑↓←→", "move"}, {"enter", "edit"}, {"space", "expand"}, {"a", "add row"},
		{"d", "delete row"}, {"r", "rename"}, {"esc", "close"},
	}
}
