package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
)

type helpSection struct {
	title string
	keys  []hint
}

var helpSections = []helpSection{
	{"Global", []hint{
		{"ctrl+t", "switch between editor and compare"},
		{"tab/shift+tab", "next/previous pane"},
		{"ctrl+o", "show or hide the import box"},
		{"ctrl+e", "export"},
		{"ctrl+k", "send original and current text to compare"},
		{"ctrl+x", "clear everything"},
		{"f1", "this help"},
		{"ctrl+c/ctrl+q", "quit"},
	}},
	{"Import", []hint{
		{"paste/type", "import as soon as the text is valid"},
		{"ctrl+p", "switch to the file path field"},
	}},
	{"Tree", []hint{
		{"↑↓/jk", "move"},
		{"enter/→", "expand or edit"},
		{"←/h", "collapse"},
		{"e", "edit value"},
		{"E/C", "expand/collapse all"},
		{"/ and n", "fuzzy search, next match"},
		{"t", "open array as table"},
		{":", "jump to a path or evaluate a CEL expression (_ is the root)"},
		{"tab", "complete keys and functions in the query bar"},
	}},
	{"Table", []hint{
		{"↑↓←→", "move"},
		{"enter", "edit cell"},
		{"space", "expand nested table"},
		{"a/d", "add/delete row"},
		{"r", "rename key"},
		{"esc", "close"},
	}},
	{"Text", []hint{
		{"ctrl+f", "format"},
		{"alt+m", "minify"},
		{"ctrl+g", "toggle minified"},
		{"ctrl+y", "copy"},
	}},
	{"Compare", []hint{
		{"tab", "switch side"},
		{"ctrl+f", "format both"},
		{"ctrl+d", "show differences"},
		{"ctrl+u", "unified or split diff"},
		{"ctrl+l", "clear both sides"},
	}},
}

// HelpView lists every key binding. Any key closes it.
type HelpView struct {
	styles *Styles
	width  int
	height int
	offset int
}

func NewHelpView(st *Styles) *HelpView { return &HelpView{styles: st} }

func (v *HelpView) Init() tea.Cmd { return nil }

func (v *HelpView) Title() string { return "Help" }

func (v *HelpView) SetSize(width, height int) { v.width, v.height = width, height }

func (v *HelpView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return v, nil
	}
	switch key.String() {
	case "down", "j":
		v.offset++
	case "up", "k":
		v.offset = max(v.offset-1, 0)
	default:
		return v, func() tea.Msg { return closeHelpMsg{} }
	}
	return v, nil
}

func (v *HelpView) lines() []string {
	keyW := 0
	for _, s := range helpSections {
		for _, k := range s.keys {
			keyW = max(keyW, runewidth.StringWidth(k.key))
		}
	}
	var out []string
	for i, s := range helpSections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, v.styles.Title.Render(s.title))
		for _, k := range s.keys {
			out = append(out, "  "+v.styles.Key.Render(runewidth.FillRight(k.key, keyW))+"  "+k.label)
		}
	}
	return out
}

func (v *HelpView) View() string {
	all := v.lines()
	h := max(v.height, 1)
	v.offset = max(min(v.offset, len(all)-h), 0)
	return strings.Join(all[v.offset:min(v.offset+h, len(all))], "\n")
}
