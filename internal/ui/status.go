package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// StatusKind selects the status line color.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// StatusModel is the one-line message under the panes.
type StatusModel struct {
	Text  string
	Kind  StatusKind
	Width int
}

// Set replaces the message.
func (s *StatusModel) Set(kind StatusKind, text string) {
	s.Kind, s.Text = kind, text
}

// Clear removes the message.
func (s *StatusModel) Clear() {
	s.Text = ""
	s.Kind = StatusInfo
}

// View renders the message truncated to the width.
func (s StatusModel) View(st Styles) string {
	text := s.Text
	if s.Width > 0 {
		text = runewidth.Truncate(text, s.Width, "…")
	}
	var style lipgloss.Style
	switch s.Kind {
	case StatusError:
		style = st.Error
	case StatusSuccess:
		style = st.Success
	default:
		style = st.Muted
	}
	return style.Render(text)
}
