package ui

import tea "charm.land/bubbletea/v2"

// Action is what a key does in a given context.
type Action string

const (
	ActionNone Action = ""

	// global
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionSwitchTab     Action = "switch_tab"
	ActionNextPane      Action = "next_pane"
	ActionPrevPane      Action = "prev_pane"
	ActionToggleImport  Action = "toggle_import"
	ActionClearAll      Action = "clear_all"
	ActionExport        Action = "export"
	ActionSendToCompare Action = "send_to_compare"

	// tree
	ActionUp          Action = "up"
	ActionDown        Action = "down"
	ActionPageUp      Action = "page_up"
	ActionPageDown    Action = "page_down"
	ActionTop         Action = "top"
	ActionBottom      Action = "bottom"
	ActionOpen        Action = "open"
	ActionCollapse    Action = "collapse"
	ActionEdit        Action = "edit"
	ActionExpandAll   Action = "expand_all"
	ActionCollapseAll Action = "collapse_all"
	ActionSearch      Action = "search"
	ActionNextMatch   Action = "next_match"
	ActionTable       Action = "table"
	ActionQuery       Action = "query"

	// table
	ActionLeft      Action = "left"
	ActionRight     Action = "right"
	ActionToggle    Action = "toggle"
	ActionAddRow    Action = "add_row"
	ActionDeleteRow Action = "delete_row"
	ActionRename    Action = "rename"
	ActionClose     Action = "close"

	// text pane
	ActionFormat       Action = "format"
	ActionMinify       Action = "minify"
	ActionToggleFormat Action = "toggle_format"
	ActionCopy         Action = "copy"

	// compare
	ActionFormatBoth Action = "format_both"
	ActionShowDiff   Action = "show_diff"
	ActionClearPair  Action = "clear_pair"
	ActionDiffLayout Action = "diff_layout"
)

// Bindings maps key strings, as tea.KeyPressMsg.String reports them, to
// actions.
type Bindings map[string]Action

// Lookup returns the action bound to msg.
func (b Bindings) Lookup(msg tea.KeyPressMsg) Action {
	return b[msg.String()]
}

// GlobalKeys apply in every pane unless an input has captured the keyboard.
var GlobalKeys = Bindings{
	"ctrl+c":    ActionQuit,
	"ctrl+q":    ActionQuit,
	"f1":        ActionHelp,
	"ctrl+t":    ActionSwitchTab,
	"tab":       ActionNextPane,
	"shift+tab": ActionPrevPane,
	"ctrl+o":    ActionToggleImport,
	"ctrl+x":    ActionClearAll,
	"ctrl+e":    ActionExport,
	"ctrl+k":    ActionSendToCompare,
}

// TreeKeys drive the tree pane.
var TreeKeys = Bindings{
	"up":       ActionUp,
	"k":        ActionUp,
	"down":     ActionDown,
	"j":        ActionDown,
	"pgup":     ActionPageUp,
	"pgdown":   ActionPageDown,
	"home":     ActionTop,
	"g":        ActionTop,
	"end":      ActionBottom,
	"G":        ActionBottom,
	"enter":    ActionOpen,
	"right":    ActionOpen,
	"l":        ActionOpen,
	"space":    ActionOpen,
	"left":     ActionCollapse,
	"h":        ActionCollapse,
	"e":        ActionEdit,
	"E":        ActionExpandAll,
	"C":        ActionCollapseAll,
	"/":        ActionSearch,
	"n":        ActionNextMatch,
	"t":        ActionTable,
	":":        ActionQuery,
}

// TableKeys drive the table view.
var TableKeys = Bindings{
	"up":     ActionUp,
	"k":      ActionUp,
	"down":   ActionDown,
	"j":      ActionDown,
	"left":   ActionLeft,
	"h":      ActionLeft,
	"right":  ActionRight,
	"l":      ActionRight,
	"enter":  ActionEdit,
	"space":  ActionToggle,
	"a":      ActionAddRow,
	"d":      ActionDeleteRow,
	"delete": ActionDeleteRow,
	"r":      ActionRename,
	"esc":    ActionClose,
	"q":      ActionClose,
}

// TextKeys are the text pane shortcuts. Everything else goes to the editor.
var TextKeys = Bindings{
	"ctrl+f": ActionFormat,
	"alt+m":  ActionMinify,
	"ctrl+g": ActionToggleFormat,
	"ctrl+y": ActionCopy,
}

// CompareKeys are the compare tab shortcuts.
var CompareKeys = Bindings{
	"ctrl+f": ActionFormatBoth,
	"ctrl+d": ActionShowDiff,
	"ctrl+l": ActionClearPair,
	"ctrl+u": ActionDiffLayout,
}

// DiffKeys scroll the diff output. Plain letters and arrows stay with the
// editors, which keep the keyboard while the diff is shown.
var DiffKeys = Bindings{
	"pgup":      ActionPageUp,
	"pgdown":    ActionPageDown,
	"alt+up":    ActionUp,
	"alt+down":  ActionDown,
	"ctrl+home": ActionTop,
	"ctrl+end":  ActionBottom,
	"esc":       ActionClose,
}

// ExportKeys pick a format in the export prompt.
var ExportKeys = map[string]string{
	"j": "json",
	"m": "json-min",
	"s": "js",
	"p": "php",
	"t": "text",
	"y": "yaml",
	"o": "toml",
}
