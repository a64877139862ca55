package ui

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonedit/internal/controller"
	"github.com/oakwood-commons/jsonedit/internal/export"
	"github.com/oakwood-commons/jsonedit/internal/query"
	"github.com/oakwood-commons/jsonedit/internal/tree"
)

type pane int

const (
	paneImport pane = iota
	paneTree
	paneText
)

type mode int

const (
	modeNormal mode = iota
	modeConfirmClear
	modeExport
	modeHelp
)

const importHeight = 7

// Options configures the root model.
type Options struct {
	Controller *controller.Controller
	Theme      Theme
	NoColor    bool
	// LineNumbers shows line numbers in the text pane.
	LineNumbers bool
	// ExportDir receives exported files. Empty means the working directory.
	ExportDir string
	Log       logr.Logger
}

// Model is the root of the editor UI. It owns the panes, routes keys to the
// focused one and keeps them in step with the controller.
type Model struct {
	ctx context.Context
	ctl *controller.Controller
	log logr.Logger

	styles Styles
	theme  Theme

	tree        *tree.Model
	treeView    *TreeView
	textView    *TextView
	importView  *ImportView
	compareView *CompareView
	tableView   *TableView
	helpView    *HelpView

	focus     pane
	mode      mode
	status    StatusModel
	footer    FooterModel
	exportDir string

	width, height int
}

// NewModel builds the UI over the controller's current state.
func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ctl := opts.Controller
	m := &Model{
		ctx:       ctx,
		ctl:       ctl,
		log:       opts.Log,
		theme:     opts.Theme,
		styles:    NewStyles(opts.Theme, opts.NoColor),
		exportDir: opts.ExportDir,
		width:     80,
		height:    24,
	}
	eval, err := query.New()
	if err != nil {
		m.log.Error(err, "query evaluator unavailable")
		eval = nil
	}
	m.tree = tree.New(ctl.Doc)
	m.tree.OnChange = func(root any) {
		ctl.UpdateDocument(root)
		m.changed()
	}
	m.treeView = NewTreeView(m.tree, eval, &m.styles)
	m.textView = NewTextView(ctl, &m.styles, opts.LineNumbers, m.changed)
	m.importView = NewImportView(ctl, &m.styles, m.changed)
	m.compareView = NewCompareView(ctl, &m.styles, m.changed)
	m.helpView = NewHelpView(&m.styles)
	m.layout()
	if ctl.ImportExpanded && !ctl.HasDoc {
		m.setFocus(paneImport)
	} else {
		m.setFocus(paneTree)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.focusCmd()
}

// changed brings every pane in line with the controller and persists the
// session. Children call it after they changed the controller.
func (m *Model) changed() {
	m.tree.SetRoot(m.ctl.Doc)
	m.textView.Sync()
	m.compareView.Sync()
	if m.tableView != nil && (!m.ctl.HasDoc || !m.tableView.Sync(m.ctl.Doc)) {
		m.tableView = nil
	}
	if !m.ctl.ImportExpanded {
		m.importView.Reset()
		if m.focus == paneImport {
			m.setFocus(paneTree)
		}
	}
	m.layout()
	if err := m.ctl.Save(m.ctx); err != nil {
		m.log.Error(err, "save session")
		m.status.Set(StatusError, err.Error())
	}
}

// panes lists the focusable panes of the editor tab in tab order.
func (m *Model) panes() []pane {
	if m.ctl.ImportExpanded {
		return []pane{paneImport, paneTree, paneText}
	}
	return []pane{paneTree, paneText}
}

// pane children take focus and keys.
type paneModel interface {
	ChildModel
	ModelWithFocus
	ModelWithSize
}

func (m *Model) child(p pane) paneModel {
	switch p {
	case paneImport:
		return m.importView
	case paneText:
		return m.textView
	default:
		return m.treeView
	}
}

func (m *Model) setFocus(p pane) tea.Cmd {
	m.importView.Blur()
	m.treeView.Blur()
	m.textView.Blur()
	m.compareView.Blur()
	m.focus = p
	return m.focusCmd()
}

func (m *Model) focusCmd() tea.Cmd {
	if m.ctl.Tab == controller.TabCompare {
		return m.compareView.Focus()
	}
	return m.child(m.focus).Focus()
}

func (m *Model) cyclePane(step int) tea.Cmd {
	if m.ctl.Tab == controller.TabCompare {
		return m.compareView.NextSide()
	}
	ps := m.panes()
	idx := 0
	for i, p := range ps {
		if p == m.focus {
			idx = i
		}
	}
	idx = (idx + step + len(ps)) % len(ps)
	return m.setFocus(ps[idx])
}

// layout hands every child its share of the screen.
func (m *Model) layout() {
	m.status.Width = m.width
	m.footer.Width = m.width
	body := m.bodyHeight()
	inner := func(w, h int) (int, int) { return max(w-2, 1), max(h-3, 1) }

	if m.ctl.ImportExpanded {
		w, h := inner(m.width, importHeight)
		m.importView.SetSize(w, h)
		body -= importHeight
	}
	left := m.width / 2
	w, h := inner(left, body)
	m.treeView.SetSize(w, h)
	w, h = inner(m.width-left, body)
	m.textView.SetSize(w, h)

	full := m.bodyHeight()
	w, h = inner(m.width, full)
	m.compareView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	if m.tableView != nil {
		m.tableView.SetSize(w, h)
	}
}

// bodyHeight is the screen minus the tab bar, the status line and the footer.
func (m *Model) bodyHeight() int {
	return max(m.height-3, 4)
}

func (m *Model) capturing() bool {
	if m.tableView != nil {
		return m.tableView.Capturing()
	}
	return m.ctl.Tab == controller.TabEditor && m.focus == paneTree && m.treeView.Capturing()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case statusMsg:
		m.status.Set(msg.kind, msg.text)
		if msg.kind == StatusError {
			m.log.V(1).Info("status", "error", msg.text)
		}
		return m, nil
	case openTableMsg:
		m.openTable(msg.req)
		return m, nil
	case closeTableMsg:
		m.tableView = nil
		return m, m.focusCmd()
	case closeHelpMsg:
		m.mode = modeNormal
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, m.forward(msg)
}

// forward passes non-key messages such as pastes and cursor blinks to the
// focused input.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.mode != modeNormal || m.tableView != nil {
		return nil
	}
	var cmd tea.Cmd
	if m.ctl.Tab == controller.TabCompare {
		_, cmd = m.compareView.Update(msg)
		return cmd
	}
	switch m.focus {
	case paneImport:
		_, cmd = m.importView.Update(msg)
	case paneText:
		_, cmd = m.textView.Update(msg)
	}
	return cmd
}

func (m *Model) openTable(req tree.TableRequest) {
	m.tableView = NewTableView(req.Path, req.Value, &m.styles, m.theme.TableColors(), m.tree.SetAt)
	m.layout()
}

func (m *Model) handleKey(key tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeHelp:
		_, cmd := m.helpView.Update(key)
		return cmd
	case modeConfirmClear:
		m.mode = modeNormal
		if key.String() != "y" && key.String() != "Y" {
			m.status.Set(StatusInfo, "Clear cancelled")
			return nil
		}
		return m.clearAll()
	case modeExport:
		m.mode = modeNormal
		name, ok := ExportKeys[key.String()]
		if !ok {
			m.status.Set(StatusInfo, "Export cancelled")
			return nil
		}
		return m.export(export.Format(name))
	}

	m.status.Clear()
	if m.capturing() {
		return m.toChild(key)
	}
	if cmd, handled := m.global(GlobalKeys.Lookup(key)); handled {
		return cmd
	}
	return m.toChild(key)
}

func (m *Model) toChild(key tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.tableView != nil:
		_, cmd = m.tableView.Update(key)
	case m.ctl.Tab == controller.TabCompare:
		_, cmd = m.compareView.Update(key)
	default:
		_, cmd = m.child(m.focus).Update(key)
	}
	return cmd
}

func (m *Model) global(a Action) (tea.Cmd, bool) {
	switch a {
	case ActionQuit:
		return tea.Quit, true
	case ActionHelp:
		m.mode = modeHelp
		m.helpView.offset = 0
	case ActionSwitchTab:
		if m.ctl.Tab == controller.TabEditor {
			m.ctl.SetTab(controller.TabCompare)
		} else {
			m.ctl.SetTab(controller.TabEditor)
		}
		m.tableView = nil
		m.changed()
		return m.setFocus(m.focus), true
	case ActionNextPane:
		if m.tableView != nil {
			return nil, true
		}
		return m.cyclePane(1), true
	case ActionPrevPane:
		if m.tableView != nil {
			return nil, true
		}
		return m.cyclePane(-1), true
	case ActionToggleImport:
		if m.ctl.Tab != controller.TabEditor {
			return nil, true
		}
		m.ctl.ImportExpanded = !m.ctl.ImportExpanded
		m.layout()
		if m.ctl.ImportExpanded {
			return m.setFocus(paneImport), true
		}
		if m.focus == paneImport {
			return m.setFocus(paneTree), true
		}
	case ActionClearAll:
		m.mode = modeConfirmClear
		m.status.Set(StatusError, "Clear all data and the saved session? (y/n)")
	case ActionExport:
		if !m.ctl.HasDoc {
			m.status.Set(StatusError, "Nothing to export")
			return nil, true
		}
		m.mode = modeExport
		m.status.Set(StatusInfo, "Export as: [j]son  [m]inified  [s] js  [p]hp  [t]ext  [y]aml  t[o]ml  (esc cancels)")
	case ActionSendToCompare:
		if !m.ctl.SendToCompare() {
			m.status.Set(StatusInfo, "Nothing to compare: edit the document first")
			return nil, true
		}
		m.tableView = nil
		m.changed()
		m.status.Set(StatusSuccess, "Original and current text sent to compare")
		return m.setFocus(m.focus), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) clearAll() tea.Cmd {
	if err := m.ctl.ClearAll(m.ctx); err != nil {
		m.log.Error(err, "clear session")
		m.status.Set(StatusError, err.Error())
	} else {
		m.status.Set(StatusSuccess, "All data cleared")
	}
	m.tableView = nil
	m.importView.Reset()
	m.changed()
	return m.setFocus(paneImport)
}

func (m *Model) export(f export.Format) tea.Cmd {
	msg, err := m.ctl.Deliver(f, m.exportDir)
	if err != nil {
		m.log.Error(err, "export", "format", string(f))
		m.status.Set(StatusError, err.Error())
		return nil
	}
	m.log.Info("exported", "format", string(f))
	m.status.Set(StatusSuccess, msg)
	return nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	parts := []string{m.tabBar(), m.body(), m.status.View(m.styles), m.footer.View(m.styles, m.hints())}
	return strings.Join(parts, "\n")
}

func (m *Model) tabBar() string {
	tab := func(label string, on bool) string {
		if on {
			return m.styles.TabOn.Render(label)
		}
		return m.styles.TabOff.Render(label)
	}
	bar := m.styles.Title.Render("jsonedit") + "  " +
		tab("Editor", m.ctl.Tab == controller.TabEditor) +
		tab("Compare", m.ctl.Tab == controller.TabCompare)
	if m.ctl.CanCompare() && m.ctl.Tab == controller.TabEditor {
		bar += "  " + m.styles.Muted.Render("ctrl+k compare changes")
	}
	return bar
}

func (m *Model) body() string {
	full := m.bodyHeight()
	switch {
	case m.mode == modeHelp:
		return m.panel(m.helpView, m.width, full, true)
	case m.tableView != nil:
		return m.panel(m.tableView, m.width, full, true)
	case m.ctl.Tab == controller.TabCompare:
		return m.panel(m.compareView, m.width, full, true)
	}
	var rows []string
	body := full
	if m.ctl.ImportExpanded {
		rows = append(rows, m.panel(m.importView, m.width, importHeight, m.focus == paneImport))
		body -= importHeight
	}
	left := m.width / 2
	treeText := m.treeView.View()
	if !m.ctl.HasDoc {
		treeText = m.styles.Muted.Render("No document. Paste JSON or open a file.")
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.box(m.treeView.Title(), treeText, left, body, m.focus == paneTree),
		m.panel(m.textView, m.width-left, body, m.focus == paneText),
	)
	rows = append(rows, panes)
	return strings.Join(rows, "\n")
}

// panel boxes a child under its title.
func (m *Model) panel(c ChildModel, width, height int, focused bool) string {
	title := ""
	if t, ok := c.(ModelWithTitle); ok {
		title = t.Title()
	}
	return m.box(title, c.View(), width, height, focused)
}

// box draws content inside a titled border of exactly width by height cells.
func (m *Model) box(title, content string, width, height int, focused bool) string {
	iw, ih := max(width-2, 1), max(height-2, 1)
	lines := strings.Split(content, "\n")
	head := m.styles.Muted.Render(title)
	if focused {
		head = m.styles.Title.Render(title)
	}
	lines = append([]string{head}, lines...)
	if len(lines) > ih {
		lines = lines[:ih]
	}
	for len(lines) < ih {
		lines = append(lines, "")
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w < iw {
			lines[i] = l + strings.Repeat(" ", iw-w)
		} else if w > iw {
			lines[i] = ansi.Truncate(l, iw, "")
		}
	}
	border := m.styles.Border
	if focused {
		border = m.styles.Focused
	}
	return border.Render(strings.Join(lines, "\n"))
}

func (m *Model) hints() []hint {
	switch m.mode {
	case modeHelp:
		return []hint{{"any key", "close help"}}
	case modeConfirmClear:
		return []hint{{"y", "clear"}, {"any key", "cancel"}}
	case modeExport:
		return []hint{{"j m s p t y o", "format"}, {"esc", "cancel"}}
	}
	var hs []hint
	switch {
	case m.tableView != nil:
		hs = m.tableView.hints()
	case m.ctl.Tab == controller.TabCompare:
		hs = m.compareView.hints()
	case m.focus == paneImport:
		hs = m.importView.hints()
	case m.focus == paneText:
		hs = m.textView.hints()
	default:
		hs = m.treeView.hints()
	}
	return append(hs, hint{"f1", "help"}, hint{"ctrl+t", "tab"}, hint{"ctrl+q", "quit"})
}

// Status returns the status line text.
func (m *Model) Status() string { return m.status.Text }

// Document returns the current document for callers that render it after the
// program exits.
func (m *Model) Document() (any, bool) { return m.ctl.Doc, m.ctl.HasDoc }
