package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonedit/internal/tree"
)

// statusMsg sets the status line.
type statusMsg struct {
	kind StatusKind
	text string
}

func statusCmd(kind StatusKind, text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{kind: kind, text: text} }
}

func errorCmd(err error) tea.Cmd {
	return statusCmd(StatusError, err.Error())
}

// openTableMsg asks the root to show the table view for an array.
type openTableMsg struct {
	req tree.TableRequest
}

// closeTableMsg hides the table view.
type closeTableMsg struct{}

// closeHelpMsg hides the help overlay.
type closeHelpMsg struct{}
