package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonedit/internal/compare"
	"github.com/oakwood-commons/jsonedit/internal/controller"
)

type compareSide int

const (
	sideLeft compareSide = iota
	sideRight
)

// CompareView is the compare tab: an original and a modified buffer, each
// validated on its own, and a line diff shown on request.
type CompareView struct {
	left, right textarea.Model
	side        compareSide
	ctl         *controller.Controller
	changed     func()
	styles      *Styles

	showDiff bool
	split    bool
	offset   int

	width, height int
}

// NewCompareView returns the compare tab over ctl.Compare.
func NewCompareView(ctl *controller.Controller, st *Styles, changed func()) *CompareView {
	newArea := func(placeholder string) textarea.Model {
		ta := textarea.New()
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.MaxWidth = 0
		ta.Placeholder = placeholder
		return ta
	}
	v := &CompareView{
		left:    newArea("Original JSON"),
		right:   newArea("Modified JSON"),
		ctl:     ctl,
		changed: changed,
		styles:  st,
		width:   80,
		height:  20,
	}
	v.Sync()
	return v
}

func (v *CompareView) Init() tea.Cmd { return nil }

func (v *CompareView) Title() string { return "Compare" }

func (v *CompareView) SetSize(width, height int) {
	v.width, v.height = width, height
	half := max((width-1)/2, 1)
	v.left.SetWidth(half)
	v.right.SetWidth(half)
	h := v.editorHeight()
	v.left.SetHeight(h)
	v.right.SetHeight(h)
}

// editorHeight leaves room for the error line, the stats line and the diff.
func (v *CompareView) editorHeight() int {
	h := v.height - 3
	if v.diffVisible() {
		h = (v.height - 3) / 2
	}
	return max(h, 1)
}

func (v *CompareView) diffHeight() int {
	return max(v.height-3-v.editorHeight(), 1)
}

func (v *CompareView) diffVisible() bool { return v.showDiff && v.ctl.Compare.Ready() }

func (v *CompareView) Focus() tea.Cmd {
	if v.side == sideRight {
		return v.right.Focus()
	}
	return v.left.Focus()
}

func (v *CompareView) Blur() {
	v.left.Blur()
	v.right.Blur()
}

func (v *CompareView) Focused() bool { return v.left.Focused() || v.right.Focused() }

// NextSide moves the cursor to the other buffer.
func (v *CompareView) NextSide() tea.Cmd {
	v.Blur()
	if v.side == sideLeft {
		v.side = sideRight
	} else {
		v.side = sideLeft
	}
	return v.Focus()
}

// Sync reloads both buffers from the controller.
func (v *CompareView) Sync() {
	p := &v.ctl.Compare
	if v.left.Value() != p.Left {
		v.left.SetValue(p.Left)
	}
	if v.right.Value() != p.Right {
		v.right.SetValue(p.Right)
	}
	v.SetSize(v.width, v.height)
}

func (v *CompareView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if v.diffVisible() {
			if a := DiffKeys.Lookup(key); a != ActionNone {
				v.scrollDiff(a)
				return v, nil
			}
		}
		switch CompareKeys.Lookup(key) {
		case ActionFormatBoth:
			v.ctl.Compare.FormatBoth()
			v.Sync()
			v.notify()
			return v, nil
		case ActionShowDiff:
			if !v.ctl.Compare.Ready() {
				return v, statusCmd(StatusError, "Both sides need valid JSON to compare")
			}
			v.showDiff = true
			v.offset = 0
			v.SetSize(v.width, v.height)
			return v, nil
		case ActionClearPair:
			v.ctl.Compare.Clear()
			v.showDiff = false
			v.Sync()
			v.notify()
			return v, nil
		case ActionDiffLayout:
			v.split = !v.split
			return v, nil
		}
	}
	var cmd tea.Cmd
	p := &v.ctl.Compare
	if v.side == sideLeft {
		v.left, cmd = v.left.Update(msg)
		if text := v.left.Value(); text != p.Left {
			p.SetLeft(text)
			v.edited()
		}
	} else {
		v.right, cmd = v.right.Update(msg)
		if text := v.right.Value(); text != p.Right {
			p.SetRight(text)
			v.edited()
		}
	}
	return v, cmd
}

func (v *CompareView) edited() {
	if !v.ctl.Compare.Ready() {
		v.showDiff = false
	}
	v.SetSize(v.width, v.height)
	v.notify()
}

func (v *CompareView) scrollDiff(a Action) {
	page := v.diffHeight()
	switch a {
	case ActionUp:
		v.offset--
	case ActionDown:
		v.offset++
	case ActionPageUp:
		v.offset -= page
	case ActionPageDown:
		v.offset += page
	case ActionTop:
		v.offset = 0
	case ActionBottom:
		v.offset = len(v.ctl.Compare.Diff())
	case ActionClose:
		v.showDiff = false
		v.SetSize(v.width, v.height)
	}
}

func (v *CompareView) notify() {
	if v.changed != nil {
		v.changed()
	}
}

func (v *CompareView) View() string {
	p := &v.ctl.Compare
	half := max((v.width-1)/2, 1)
	title := func(name string, side compareSide) string {
		if v.side == side && v.Focused() {
			return v.styles.Title.Render(name)
		}
		return v.styles.Muted.Render(name)
	}
	status := func(errText, text string) string {
		switch {
		case errText != "":
			return v.styles.Error.Render("✗ " + errText)
		case strings.TrimSpace(text) == "":
			return v.styles.Muted.Render("empty")
		default:
			return v.styles.Success.Render("✓ valid")
		}
	}
	col := func(name string, side compareSide, area textarea.Model, errText, text string) string {
		box := lipgloss.NewStyle().Width(half).MaxWidth(half)
		return box.Render(strings.Join([]string{title(name, side), area.View(), status(errText, text)}, "\n"))
	}
	editors := lipgloss.JoinHorizontal(lipgloss.Top,
		col("Original", sideLeft, v.left, p.LeftErr, p.Left),
		" ",
		col("Modified", sideRight, v.right, p.RightErr, p.Right),
	)
	if !v.diffVisible() {
		return editors
	}
	return editors + "\n" + v.statsLine() + "\n" + v.diffView()
}

func (v *CompareView) statsLine() string {
	s := v.ctl.Compare.Stats()
	if s.Identical() {
		return v.styles.Success.Render("Documents are identical")
	}
	layout := "unified"
	if v.split {
		layout = "split"
	}
	return fmt.Sprintf("%s %s  %s",
		v.styles.Insert.Render(fmt.Sprintf("+%d", s.Added)),
		v.styles.Delete.Render(fmt.Sprintf("-%d", s.Removed)),
		v.styles.Muted.Render(fmt.Sprintf("%d unchanged, %s view", s.Unchanged, layout)))
}

// diffLines renders the whole diff in the current layout.
func (v *CompareView) diffLines() []string {
	lines := v.ctl.Compare.Diff()
	if v.split {
		out := compare.Split(lines, v.width)
		for i, r := range compare.Rows(lines) {
			switch {
			case r.Left.Op == compare.Delete && r.Right.Op == compare.Insert:
				out[i] = v.styles.Title.Render(out[i])
			case r.Left.Op == compare.Delete:
				out[i] = v.styles.Delete.Render(out[i])
			case r.Right.Op == compare.Insert:
				out[i] = v.styles.Insert.Render(out[i])
			}
		}
		return out
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		text := l.Op.Prefix() + " " + l.Text
		switch l.Op {
		case compare.Insert:
			out[i] = v.styles.Insert.Render(text)
		case compare.Delete:
			out[i] = v.styles.Delete.Render(text)
		default:
			out[i] = text
		}
	}
	return out
}

func (v *CompareView) diffView() string {
	all := v.diffLines()
	h := v.diffHeight()
	v.offset = max(min(v.offset, len(all)-h), 0)
	end := min(v.offset+h, len(all))
	return strings.Join(all[v.offset:end], "\n")
}

func (v *CompareView) hints() []hint {
	hs := []hint{{"tab", "switch side"}, {"ctrl+f", "format both"}, {"ctrl+d", "diff"}, {"ctrl+l", "clear"}}
	if v.diffVisible() {
		hs = append(hs, hint{"ctrl+u", "unified/split"}, hint{"pgup/pgdn", "scroll"}, hint{"esc", "hide diff"})
	}
	return hs
}
