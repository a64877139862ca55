package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonedit/internal/config"
	"github.com/oakwood-commons/jsonedit/internal/table"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Theme is the resolved UI palette.
type Theme struct {
	Accent     color.Color
	Key        color.Color
	String     color.Color
	Number     color.Color
	Boolean    color.Color
	Null       color.Color
	Container  color.Color
	Muted      color.Color
	Error      color.Color
	Success    color.Color
	SelectedFG color.Color
	SelectedBG color.Color
	HeaderFG   color.Color
	HeaderBG   color.Color
	Insert     color.Color
	Delete     color.Color
}

// DefaultTheme is the "dark" theme of the embedded configuration.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.Default().Theme())
}

// ThemeFromConfig converts configured color strings.
func ThemeFromConfig(c config.Theme) Theme {
	col := func(s string) color.Color {
		if s == "" {
			return nil
		}
		return lipgloss.Color(s)
	}
	return Theme{
		Accent:     col(c.Accent),
		Key:        col(c.Key),
		String:     col(c.String),
		Number:     col(c.Number),
		Boolean:    col(c.Boolean),
		Null:       col(c.Null),
		Container:  col(c.Container),
		Muted:      col(c.Muted),
		Error:      col(c.Error),
		Success:    col(c.Success),
		SelectedFG: col(c.SelectedFG),
		SelectedBG: col(c.SelectedBG),
		HeaderFG:   col(c.HeaderFG),
		HeaderBG:   col(c.HeaderBG),
		Insert:     col(c.Insert),
		Delete:     col(c.Delete),
	}
}

// TableColors maps the theme onto the table renderer palette.
func (t Theme) TableColors() table.Colors {
	return table.Colors{
		Title:     t.Accent,
		HeaderFG:  t.HeaderFG,
		HeaderBG:  t.HeaderBG,
		Key:       t.Key,
		Separator: t.Muted,
		String:    t.String,
		Number:    t.Number,
		Boolean:   t.Boolean,
		Null:      t.Null,
		Container: t.Container,
	}
}

// Styles are the lipgloss styles derived from a theme. With NoColor every
// style is plain except for reverse video on the selection.
type Styles struct {
	NoColor  bool
	Title    lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Border   lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Key      lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Insert   lipgloss.Style
	Delete   lipgloss.Style
	Footer   lipgloss.Style
	kinds    map[document.Kind]lipgloss.Style
}

// NewStyles builds styles for t.
func NewStyles(t Theme, noColor bool) Styles {
	plain := lipgloss.NewStyle()
	border := plain.Border(lipgloss.NormalBorder())
	if noColor {
		return Styles{
			NoColor:  true,
			Title:    plain.Bold(true),
			TabOn:    plain.Bold(true).Underline(true).Padding(0, 1),
			TabOff:   plain.Padding(0, 1),
			Border:   border,
			Focused:  plain.Border(lipgloss.ThickBorder()),
			Selected: plain.Reverse(true),
			Key:      plain,
			Muted:    plain,
			Error:    plain.Bold(true),
			Success:  plain,
			Insert:   plain,
			Delete:   plain,
			Footer:   plain.Reverse(true),
			kinds:    map[document.Kind]lipgloss.Style{},
		}
	}
	fg := func(c color.Color) lipgloss.Style {
		if c == nil {
			return plain
		}
		return plain.Foreground(c)
	}
	container := fg(t.Container)
	return Styles{
		Title:    fg(t.Accent).Bold(true),
		TabOn:    fg(t.HeaderFG).Background(t.HeaderBG).Bold(true).Padding(0, 1),
		TabOff:   fg(t.Muted).Padding(0, 1),
		Border:   border.BorderForeground(t.Muted),
		Focused:  border.BorderForeground(t.Accent),
		Selected: fg(t.SelectedFG).Background(t.SelectedBG),
		Key:      fg(t.Key),
		Muted:    fg(t.Muted),
		Error:    fg(t.Error).Bold(true),
		Success:  fg(t.Success),
		Insert:   fg(t.Insert),
		Delete:   fg(t.Delete),
		Footer:   fg(t.HeaderFG).Background(t.HeaderBG),
		kinds: map[document.Kind]lipgloss.Style{
			document.KindString: fg(t.String),
			document.KindNumber: fg(t.Number),
			document.KindBool:   fg(t.Boolean),
			document.KindNull:   fg(t.Null).Italic(true),
			document.KindObject: container,
			document.KindArray:  container,
		},
	}
}

// Value styles text by the kind of v.
func (s Styles) Value(v any, text string) string {
	st, ok := s.kinds[document.KindOf(v)]
	if !ok {
		return text
	}
	return st.Render(text)
}
