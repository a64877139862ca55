package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is a pane or overlay owned by the root Model. The root routes
// key messages to the focused child and composes their views.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithSize is implemented by children that react to resizes.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithFocus is implemented by children that take keyboard focus.
type ModelWithFocus interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

// ModelWithTitle is implemented by children that label their pane border.
type ModelWithTitle interface {
	Title() string
}
