package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonedit/internal/controller"
)

// ImportView is the import box: a paste area that imports as soon as its
// content parses, and a file path field.
type ImportView struct {
	area    textarea.Model
	path    textinput.Model
	onPath  bool
	ctl     *controller.Controller
	changed func()
	styles  *Styles
	width   int
	height  int
	focused bool
}

// NewImportView returns the import box.
func NewImportView(ctl *controller.Controller, st *Styles, changed func()) *ImportView {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Placeholder = "Paste JSON here"
	ti := textinput.New()
	ti.Prompt = "File: "
	ti.Placeholder = "path/to/data.json (enter to load)"
	return &ImportView{area: ta, path: ti, ctl: ctl, changed: changed, styles: st, width: 40, height: 6}
}

func (v *ImportView) Init() tea.Cmd { return nil }

func (v *ImportView) Title() string { return "Import JSON" }

func (v *ImportView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.area.SetWidth(max(width, 1))
	v.area.SetHeight(max(height-2, 1))
	v.path.SetWidth(max(width-len(v.path.Prompt)-1, 1))
}

func (v *ImportView) Focus() tea.Cmd {
	v.focused = true
	if v.onPath {
		return v.path.Focus()
	}
	return v.area.Focus()
}

func (v *ImportView) Blur() {
	v.focused = false
	v.area.Blur()
	v.path.Blur()
}

func (v *ImportView) Focused() bool { return v.focused }

// Reset empties both fields.
func (v *ImportView) Reset() {
	v.area.SetValue("")
	v.path.SetValue("")
}

func (v *ImportView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+p":
			v.onPath = !v.onPath
			v.Blur()
			return v, v.Focus()
		case "enter":
			if v.onPath {
				return v, v.loadFile()
			}
		case "esc":
			if v.onPath {
				v.onPath = false
				v.Blur()
				return v, v.Focus()
			}
		}
	}
	var cmd tea.Cmd
	if v.onPath {
		v.path, cmd = v.path.Update(msg)
		return v, cmd
	}
	before := v.area.Value()
	v.area, cmd = v.area.Update(msg)
	if text := v.area.Value(); text != before {
		v.ctl.ImportText(text)
		v.notify()
	}
	return v, cmd
}

func (v *ImportView) loadFile() tea.Cmd {
	p := strings.TrimSpace(v.path.Value())
	if p == "" {
		return nil
	}
	if err := v.ctl.ImportFile(p); err != nil {
		v.notify()
		return statusCmd(StatusError, v.ctl.ImportErr)
	}
	v.notify()
	return statusCmd(StatusSuccess, "Loaded "+p)
}

func (v *ImportView) notify() {
	if v.changed != nil {
		v.changed()
	}
}

func (v *ImportView) View() string {
	lines := []string{v.area.View(), v.path.View()}
	if v.ctl.ImportErr != "" {
		lines = append(lines, v.styles.Error.Render(v.ctl.ImportErr))
	}
	return strings.Join(lines, "\n")
}

func (v *ImportView) hints() []hint {
	if v.onPath {
		return []hint{{"enter", "load file"}, {"esc", "back to paste"}}
	}
	return []hint{{"paste", "import"}, {"ctrl+p", "file path"}, {"ctrl+o", "hide"}}
}
