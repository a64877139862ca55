package ui

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonedit/internal/controller"
)

// TextView is the raw text pane. Every edit goes through the controller; text
// that does not parse is kept but leaves the document alone.
type TextView struct {
	area    textarea.Model
	ctl     *controller.Controller
	changed func()
	styles  *Styles
	width   int
	height  int
}

// NewTextView returns the pane. changed runs after every edit that reached the
// controller.
func NewTextView(ctl *controller.Controller, st *Styles, lineNumbers bool, changed func()) *TextView {
	ta := textarea.New()
	ta.ShowLineNumbers = lineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Placeholder = "JSON text"
	ta.SetValue(ctl.Text)
	return &TextView{area: ta, ctl: ctl, changed: changed, styles: st, width: 40, height: 10}
}

func (v *TextView) Init() tea.Cmd { return nil }

func (v *TextView) Title() string {
	if v.ctl.Minified {
		return "Text (minified)"
	}
	return "Text"
}

func (v *TextView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.area.SetWidth(max(width, 1))
	h := height
	if v.ctl.EditorErr != "" {
		h--
	}
	v.area.SetHeight(max(h, 1))
}

func (v *TextView) Focus() tea.Cmd { return v.area.Focus() }

func (v *TextView) Blur() { v.area.Blur() }

func (v *TextView) Focused() bool { return v.area.Focused() }

// Sync loads the controller text when it changed elsewhere.
func (v *TextView) Sync() {
	if v.area.Value() != v.ctl.Text {
		v.area.SetValue(v.ctl.Text)
	}
	v.SetSize(v.width, v.height)
}

// Value returns the editor content.
func (v *TextView) Value() string { return v.area.Value() }

func (v *TextView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if cmd, handled := v.shortcut(TextKeys.Lookup(key)); handled {
			return v, cmd
		}
	}
	var cmd tea.Cmd
	v.area, cmd = v.area.Update(msg)
	if text := v.area.Value(); text != v.ctl.Text {
		v.ctl.SetText(text)
		v.notify()
	}
	return v, cmd
}

func (v *TextView) shortcut(a Action) (tea.Cmd, bool) {
	switch a {
	case ActionFormat:
		if !v.ctl.FormatText() {
			return statusCmd(StatusError, "Cannot format invalid JSON"), true
		}
	case ActionMinify:
		if !v.ctl.MinifyText() {
			return statusCmd(StatusError, "Cannot minify invalid JSON"), true
		}
	case ActionToggleFormat:
		if !v.ctl.ToggleFormat() {
			return nil, true
		}
	case ActionCopy:
		if err := v.ctl.CopyText(); err != nil {
			return errorCmd(err), true
		}
		return statusCmd(StatusSuccess, "JSON copied to clipboard"), true
	default:
		return nil, false
	}
	v.Sync()
	v.notify()
	return nil, true
}

func (v *TextView) notify() {
	if v.changed != nil {
		v.changed()
	}
}

func (v *TextView) View() string {
	out := v.area.View()
	if v.ctl.EditorErr != "" {
		out += "\n" + v.styles.Error.Render("✗ "+v.ctl.EditorErr)
	}
	return out
}

func (v *TextView) hints() []hint {
	toggle := "minify"
	if v.ctl.Minified {
		toggle = "format"
	}
	return []hint{{"ctrl+f", "format"}, {"alt+m", "minify"}, {"ctrl+g", toggle}, {"ctrl+y", "copy"}}
}
