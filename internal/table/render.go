package table

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

const (
	sepWidth     = 2
	minColWidth  = 3
	maxColWidth  = 40
	indentWidth  = 2
	cursorMarker = "> "
)

// Colors controls the rendered table colors. Nil fields use the defaults.
type Colors struct {
	Title     color.Color
	HeaderFG  color.Color
	HeaderBG  color.Color
	Key       color.Color
	Separator color.Color
	String    color.Color
	Number    color.Color
	Boolean   color.Color
	Null      color.Color
	Container color.Color
}

// DefaultColors mirrors the type badge palette of the editor.
func DefaultColors() Colors {
	return Colors{
		Title:     lipgloss.Color("15"),
		HeaderFG:  lipgloss.Color("12"),
		HeaderBG:  lipgloss.Color("236"),
		Key:       lipgloss.Color("14"),
		Separator: lipgloss.Color("240"),
		String:    lipgloss.Color("2"),
		Number:    lipgloss.Color("12"),
		Boolean:   lipgloss.Color("5"),
		Null:      lipgloss.Color("245"),
		Container: lipgloss.Color("208"),
	}
}

type styles struct {
	title, header, key, sep, selected lipgloss.Style
	kinds                             map[document.Kind]lipgloss.Style
}

func newStyles(c Colors) styles {
	d := DefaultColors()
	pick := func(v, def color.Color) color.Color {
		if v == nil {
			return def
		}
		return v
	}
	container := lipgloss.NewStyle().Foreground(pick(c.Container, d.Container))
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(pick(c.Title, d.Title)),
		header:   lipgloss.NewStyle().Bold(true).Foreground(pick(c.HeaderFG, d.HeaderFG)).Background(pick(c.HeaderBG, d.HeaderBG)),
		key:      lipgloss.NewStyle().Foreground(pick(c.Key, d.Key)),
		sep:      lipgloss.NewStyle().Foreground(pick(c.Separator, d.Separator)),
		selected: lipgloss.NewStyle().Reverse(true),
		kinds: map[document.Kind]lipgloss.Style{
			document.KindString: lipgloss.NewStyle().Foreground(pick(c.String, d.String)),
			document.KindNumber: lipgloss.NewStyle().Foreground(pick(c.Number, d.Number)),
			document.KindBool:   lipgloss.NewStyle().Foreground(pick(c.Boolean, d.Boolean)),
			document.KindNull:   lipgloss.NewStyle().Foreground(pick(c.Null, d.Null)).Italic(true),
			document.KindObject: container,
			document.KindArray:  container,
		},
	}
}

// RenderOptions configures Render and RenderLines.
type RenderOptions struct {
	// Width is the total width available. 0 disables shrinking.
	Width int
	// NoColor disables styling.
	NoColor bool
	// Colors overrides the default palette.
	Colors Colors
	// ExpandAll opens every nested table. Only used by Render.
	ExpandAll bool
	// Cursor is the selected line index, or -1 for none.
	Cursor int
	// Column is the selected cell within the cursor row.
	Column int
	// EditView, when set, replaces the selected cell's text.
	EditView string
}

// Render draws v as a table for terminal output.
func Render(v any, opts RenderOptions) string {
	open := Sections{}
	if opts.ExpandAll {
		open = AllSections(v)
	}
	opts.Cursor = -1
	return strings.Join(RenderLines(Lines(v, open), opts), "\n") + "\n"
}

// RenderLines draws already flattened lines, one string per line.
func RenderLines(lines []Line, opts RenderOptions) []string {
	st := newStyles(opts.Colors)
	paint := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}
	widths := sectionWidths(lines, opts.Width)

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		indent := strings.Repeat(" ", line.Depth*indentWidth)
		marker := strings.Repeat(" ", len(cursorMarker))
		if i == opts.Cursor {
			marker = cursorMarker
		}
		w := widths[line.Section.String()]
		switch line.Kind {
		case LineTitle:
			out = append(out, marker+indent+paint(st.title, line.Title))
		case LineHeader:
			parts := make([]string, len(line.Columns))
			for j, col := range line.Columns {
				parts[j] = paint(st.header, fit(strings.ToUpper(col), w[j]))
			}
			out = append(out, marker+indent+strings.Join(parts, strings.Repeat(" ", sepWidth)))
		case LineRow:
			parts := make([]string, 0, len(line.Cells)+2)
			parts = append(parts, paint(st.key, fit(line.Label, w[0])))
			next := 1
			if line.Layout != LayoutHomogeneous {
				parts = append(parts, paint(st.kinds[document.KindOf(line.Cells[0].Value)], fit(line.Type, w[1])))
				next = 2
			}
			for j, c := range line.Cells {
				text := cellText(c)
				selected := i == opts.Cursor && j == opts.Column
				if selected && opts.EditView != "" {
					text = opts.EditView
				}
				cw := 0
				if next+j < len(w) {
					cw = w[next+j]
				}
				text = fit(text, cw)
				switch {
				case selected:
					text = paint(st.selected, text)
				default:
					text = paint(st.kinds[document.KindOf(c.Value)], text)
				}
				parts = append(parts, text)
			}
			out = append(out, marker+indent+strings.Join(parts, strings.Repeat(" ", sepWidth)))
		}
	}
	return out
}

func cellText(c Cell) string {
	if !c.Complex {
		return c.Text
	}
	if c.Expanded {
		return "▾ " + c.Text
	}
	return "▸ " + c.Text
}

// sectionWidths computes column widths per section from its header and rows.
func sectionWidths(lines []Line, total int) map[string][]int {
	widths := map[string][]int{}
	depth := map[string]int{}
	grow := func(key string, i, w int) {
		ws := widths[key]
		for len(ws) <= i {
			ws = append(ws, 0)
		}
		if w > ws[i] {
			ws[i] = w
		}
		widths[key] = ws
	}
	for _, line := range lines {
		key := line.Section.String()
		depth[key] = line.Depth
		switch line.Kind {
		case LineHeader:
			for i, col := range line.Columns {
				grow(key, i, runewidth.StringWidth(col))
			}
		case LineRow:
			grow(key, 0, runewidth.StringWidth(line.Label))
			next := 1
			if line.Layout != LayoutHomogeneous {
				grow(key, 1, runewidth.StringWidth(line.Type))
				next = 2
			}
			for j, c := range line.Cells {
				grow(key, next+j, runewidth.StringWidth(cellText(c)))
			}
		}
	}
	if total <= 0 {
		return widths
	}
	for key, ws := range widths {
		avail := total - len(cursorMarker) - depth[key]*indentWidth
		widths[key] = shrink(ws, avail)
	}
	return widths
}

// shrink fits column widths into avail: long columns are capped first, then
// every column is scaled down proportionally, never below minColWidth.
func shrink(widths []int, avail int) []int {
	usable := avail - (len(widths)-1)*sepWidth
	if usable <= 0 || sum(widths) <= usable {
		return widths
	}
	out := append([]int(nil), widths...)
	for i := range out {
		if out[i] > maxColWidth {
			out[i] = maxColWidth
		}
	}
	if total := sum(out); total > usable {
		for i := range out {
			out[i] = max(minColWidth, out[i]*usable/total)
		}
		for sum(out) > usable {
			widest := 0
			for i := range out {
				if out[i] > out[widest] {
					widest = i
				}
			}
			if out[widest] <= minColWidth {
				break
			}
			out[widest]--
		}
	}
	return out
}

func sum(ws []int) int {
	n := 0
	for _, w := range ws {
		n += w
	}
	return n
}

// fit truncates s to width w with an ellipsis and pads it to w.
func fit(s string, w int) string {
	if w <= 0 {
		return s
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "...")
	}
	return runewidth.FillRight(s, w)
}
