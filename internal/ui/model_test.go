package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonedit/internal/controller"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var specialKeys = map[string]tea.KeyPressMsg{
	"enter":     {Code: tea.KeyEnter},
	"esc":       {Code: tea.KeyEsc},
	"tab":       {Code: tea.KeyTab},
	"backspace": {Code: tea.KeyBackspace},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"f1":        {Code: tea.KeyF1},
}

// key builds a key press from its String form: a special name, "ctrl+<r>"
// or a single printable rune.
func key(s string) tea.KeyPressMsg {
	if k, ok := specialKeys[s]; ok {
		return k
	}
	if len(s) == 6 && s[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(s[5]), Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// deliver runs a command known to produce one of the model's own messages.
func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func newTestModel(t *testing.T, text string) (*Model, *controller.Controller) {
	t.Helper()
	ctl := controller.New(controller.Options{})
	if text != "" {
		require.True(t, ctl.ImportText(text))
	}
	m := NewModel(t.Context(), Options{Controller: ctl, Theme: DefaultTheme(), ExportDir: t.TempDir()})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, ctl
}

func field(t *testing.T, doc any, path string) any {
	t.Helper()
	p, err := document.ParsePath(path)
	require.NoError(t, err)
	v, err := document.Get(doc, p)
	require.NoError(t, err)
	return v
}

func TestModelStartsOnImportWithoutDocument(t *testing.T) {
	m, ctl := newTestModel(t, "")
	assert.Equal(t, paneImport, m.focus)

	typeText(m, "1")
	assert.True(t, ctl.HasDoc)
	assert.Equal(t, 1.0, ctl.Doc)
	assert.False(t, ctl.ImportExpanded)
	assert.Equal(t, paneTree, m.focus)
}

func TestModelImportShowsError(t *testing.T) {
	m, ctl := newTestModel(t, "")
	typeText(m, "{")
	assert.False(t, ctl.HasDoc)
	assert.Equal(t, controller.MsgInvalidText, ctl.ImportErr)
	assert.Contains(t, m.render(), controller.MsgInvalidText)
}

func TestModelTreeEditSyncsText(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1, "s": "x"}`)
	require.Equal(t, paneTree, m.focus)

	press(m, "e", "backspace", "5", "enter")
	assert.Equal(t, 5.0, field(t, ctl.Doc, "n"))
	assert.Contains(t, ctl.Text, `"n": 5`)
	assert.Equal(t, ctl.Text, m.textView.Value())
}

func TestModelTreeEditEscapeCancels(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "e", "backspace", "9", "esc")
	assert.Equal(t, 1.0, field(t, ctl.Doc, "n"))
	assert.False(t, m.treeView.Capturing())
}

func TestModelInvalidTextKeepsDocument(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	before := ctl.Doc
	press(m, "tab")
	require.Equal(t, paneText, m.focus)

	typeText(m, "x")
	assert.NotEqual(t, ctl.OriginalText, ctl.Text)
	assert.NotEmpty(t, ctl.EditorErr)
	assert.True(t, document.Equal(before, ctl.Doc))
	assert.Contains(t, m.render(), "✗")
}

func TestModelPaneCycle(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "tab")
	assert.Equal(t, paneText, m.focus)
	press(m, "tab")
	assert.Equal(t, paneTree, m.focus)

	press(m, "ctrl+o")
	assert.True(t, ctl.ImportExpanded)
	assert.Equal(t, paneImport, m.focus)
	press(m, "ctrl+o")
	assert.False(t, ctl.ImportExpanded)
	assert.Equal(t, paneTree, m.focus)
}

func TestModelTableEditWritesBack(t *testing.T) {
	m, ctl := newTestModel(t, `{"users": [{"a": 1}, {"a": 2}]}`)

	deliver(t, m, press(m, "t"))
	require.NotNil(t, m.tableView)
	assert.Contains(t, m.render(), "Table users")

	press(m, "enter", "backspace", "7", "enter")
	assert.Equal(t, 7.0, field(t, ctl.Doc, "users[0].a"))
	assert.Contains(t, ctl.Text, `"a": 7`)

	press(m, "a")
	assert.Len(t, document.AsArray(field(t, ctl.Doc, "users")), 3)
	press(m, "d")
	assert.Len(t, document.AsArray(field(t, ctl.Doc, "users")), 2)

	deliver(t, m, press(m, "esc"))
	assert.Nil(t, m.tableView)
}

func TestModelTableClosesWhenArrayDisappears(t *testing.T) {
	m, ctl := newTestModel(t, `{"users": [1, 2]}`)
	deliver(t, m, press(m, "t"))
	require.NotNil(t, m.tableView)

	ctl.SetText(`{"users": 1}`)
	m.changed()
	assert.Nil(t, m.tableView)
}

func TestModelTableOnNonArray(t *testing.T) {
	m, _ := newTestModel(t, `{"n": 1}`)
	deliver(t, m, press(m, "t"))
	assert.Nil(t, m.tableView)
	assert.Contains(t, m.Status(), "array")
}

func TestModelQuery(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{name: "cel", expr: "_.n+1", want: "= 2"},
		{name: "path jump", expr: "s", want: "Jumped to s"},
		{name: "error", expr: "_.(", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, `{"n": 1, "s": "x"}`)
			press(m, ":")
			typeText(m, tt.expr)
			deliver(t, m, press(m, "enter"))
			if tt.want == "" {
				assert.Equal(t, StatusError, m.status.Kind)
				return
			}
			assert.Equal(t, tt.want, m.Status())
		})
	}
}

func TestModelQueryCompletion(t *testing.T) {
	m, _ := newTestModel(t, `{"name": 1, "nested": {"a": 1}}`)
	press(m, ":")
	typeText(m, "_.nam")
	assert.Nil(t, press(m, "tab"))
	assert.Equal(t, "_.name", m.treeView.input.Value())

	press(m, "esc", ":")
	typeText(m, "_.n")
	deliver(t, m, press(m, "tab"))
	assert.Equal(t, "_.n", m.treeView.input.Value())
	assert.Contains(t, m.Status(), "nested")

	typeText(m, "e")
	press(m, "tab")
	assert.Equal(t, "_.nested", m.treeView.input.Value())
	deliver(t, m, press(m, "enter"))
	assert.Equal(t, "Jumped to nested", m.Status())
}

func TestModelSearch(t *testing.T) {
	m, _ := newTestModel(t, `{"alpha": 1, "beta": 2}`)
	press(m, "/")
	typeText(m, "beta")
	deliver(t, m, press(m, "enter"))
	row, ok := m.tree.Current()
	require.True(t, ok)
	assert.Equal(t, "beta", row.Label)
	assert.Contains(t, m.Status(), "1 matches")
}

func TestModelTextShortcuts(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "tab", "ctrl+g")
	assert.True(t, ctl.Minified)
	assert.Equal(t, `{"n":1}`, ctl.Text)
	assert.Equal(t, `{"n":1}`, m.textView.Value())

	press(m, "ctrl+f")
	assert.False(t, ctl.Minified)
	assert.Equal(t, "{\n  \"n\": 1\n}", ctl.Text)
}

func TestModelExport(t *testing.T) {
	m, _ := newTestModel(t, `{"n": 1}`)
	press(m, "ctrl+e")
	assert.Equal(t, modeExport, m.mode)
	press(m, "j")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, StatusSuccess, m.status.Kind)

	data, err := os.ReadFile(filepath.Join(m.exportDir, "data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"n": 1`)

	press(m, "ctrl+e", "esc")
	assert.Equal(t, "Export cancelled", m.Status())
}

func TestModelExportWithoutDocument(t *testing.T) {
	m, _ := newTestModel(t, "")
	press(m, "ctrl+e")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Nothing to export", m.Status())
}

func TestModelClearAll(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "ctrl+x", "n")
	assert.True(t, ctl.HasDoc)
	assert.Equal(t, "Clear cancelled", m.Status())

	press(m, "ctrl+x", "y")
	assert.False(t, ctl.HasDoc)
	assert.Empty(t, ctl.Text)
	assert.True(t, ctl.ImportExpanded)
	assert.Equal(t, paneImport, m.focus)
	assert.Empty(t, m.textView.Value())
}

func TestModelSwitchTab(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "ctrl+t")
	assert.Equal(t, controller.TabCompare, ctl.Tab)
	assert.Contains(t, m.render(), "Original")
	press(m, "ctrl+t")
	assert.Equal(t, controller.TabEditor, ctl.Tab)
}

func TestModelSendToCompare(t *testing.T) {
	m, ctl := newTestModel(t, `{"n": 1}`)
	press(m, "ctrl+k")
	assert.Equal(t, controller.TabEditor, ctl.Tab, "nothing changed yet")

	press(m, "e", "backspace", "2", "enter", "ctrl+k")
	assert.Equal(t, controller.TabCompare, ctl.Tab)
	assert.Equal(t, ctl.OriginalText, ctl.Compare.Left)
	assert.Equal(t, ctl.Text, ctl.Compare.Right)

	deliverable := press(m, "ctrl+d")
	assert.Nil(t, deliverable)
	assert.True(t, m.compareView.diffVisible())
	out := m.render()
	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "-1")

	press(m, "esc")
	assert.False(t, m.compareView.diffVisible())
}

func TestModelCompareNeedsBothSides(t *testing.T) {
	m, ctl := newTestModel(t, "")
	press(m, "ctrl+t")
	ctl.Compare.SetLeft(`{"a": 1}`)
	m.changed()
	deliver(t, m, press(m, "ctrl+d"))
	assert.Equal(t, StatusError, m.status.Kind)
	assert.False(t, m.compareView.diffVisible())

	press(m, "tab")
	typeText(m, `{"a": 2}`)
	assert.Equal(t, `{"a": 2}`, ctl.Compare.Right)
	assert.True(t, ctl.Compare.Ready())

	press(m, "ctrl+l")
	assert.Empty(t, ctl.Compare.Left)
	assert.Empty(t, ctl.Compare.Right)
}

func TestModelHelp(t *testing.T) {
	m, _ := newTestModel(t, `{"n": 1}`)
	press(m, "f1")
	assert.Equal(t, modeHelp, m.mode)
	assert.Contains(t, m.render(), "open array as table")
	deliver(t, m, press(m, "x"))
	assert.Equal(t, modeNormal, m.mode)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, `{"n": 1}`)
	cmd := press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelViewUsesAltScreen(t *testing.T) {
	m, _ := newTestModel(t, `{"n": 1}`)
	v := m.View()
	assert.True(t, v.AltScreen)
}
