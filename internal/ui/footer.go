package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// hint is one "key label" pair in the footer.
type hint struct {
	key   string
	label string
}

// FooterModel lists the keys of the focused context.
type FooterModel struct {
	Width int
}

// View renders hints separated by two spaces, cut to the width and padded so
// the background spans the whole line.
func (f FooterModel) View(st Styles, hints []hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.key + " " + h.label
	}
	line := " " + strings.Join(parts, "  ")
	if f.Width > 0 {
		line = runewidth.FillRight(runewidth.Truncate(line, f.Width, "…"), f.Width)
	}
	return st.Footer.Render(line)
}
