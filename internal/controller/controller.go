// Package controller owns the editor's document state: the parsed document, its
// text, the comparison buffers and the active tab. Every UI action is a method
// that moves the state from one consistent value to the next.
package controller

import (
	"errors"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonedit/internal/compare"
	"github.com/oakwood-commons/jsonedit/internal/store"
	"github.com/oakwood-commons/jsonedit/pkg/document"
	"github.com/oakwood-commons/jsonedit/pkg/loader"
)

// Tab is the active top-level view.
type Tab string

const (
	TabEditor  Tab = "editor"
	TabCompare Tab = "compare"
)

// Messages shown next to the import box.
const (
	MsgInvalidText = "Invalid JSON format"
	MsgInvalidFile = "Invalid JSON file. Please check your file format."
)

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// Options configures a Controller.
type Options struct {
	// Store persists the session slots. Nil disables persistence.
	Store store.Store
	Log   logr.Logger
	// Source is the format of imported text and files. Empty means JSON.
	Source loader.Source
	// Lenient accepts comments and trailing commas in JSON input.
	Lenient bool
	// Indent is the pretty-print unit. Empty means two spaces.
	Indent string
	// Minified starts the text pane in minified form.
	Minified bool
}

// Controller is the editor state.
type Controller struct {
	Doc            any
	HasDoc         bool
	Text           string
	OriginalText   string
	Minified       bool
	Tab            Tab
	ImportErr      string
	EditorErr      string
	Compare        compare.Pair
	ImportExpanded bool

	store   store.Store
	log     logr.Logger
	source  loader.Source
	lenient bool
	indent  string

	startMinified bool
}

// New returns an empty controller with the import section open.
func New(opts Options) *Controller {
	indent := opts.Indent
	if indent == "" {
		indent = document.DefaultIndent
	}
	source := opts.Source
	if source == "" {
		source = loader.JSON
	}
	return &Controller{
		Minified:       opts.Minified,
		Tab:            TabEditor,
		ImportExpanded: true,
		store:          opts.Store,
		log:            opts.Log,
		source:         source,
		lenient:        opts.Lenient,
		indent:         indent,
		startMinified:  opts.Minified,
	}
}

// ImportText replaces the document with pasted text. Blank text clears the
// document. Text that does not parse leaves everything but ImportErr alone.
func (c *Controller) ImportText(text string) bool {
	if strings.TrimSpace(text) == "" {
		c.Doc, c.HasDoc = nil, false
		c.Text, c.OriginalText = "", ""
		c.ImportErr = ""
		return true
	}
	v, err := loader.Load([]byte(text), c.importSource(c.source))
	if err != nil {
		c.log.V(1).Info("import rejected", "error", err.Error())
		c.ImportErr = MsgInvalidText
		return false
	}
	c.imported(v)
	return true
}

// ImportFile reads and imports a file. The configured source format applies;
// Auto picks it from the file name and content.
func (c *Controller) ImportFile(path string) error {
	v, err := loader.LoadFile(path, c.importSource(c.source))
	if err != nil {
		c.log.Error(err, "import file", "path", path)
		c.ImportErr = MsgInvalidFile
		return err
	}
	c.imported(v)
	c.log.V(1).Info("imported file", "path", path)
	return nil
}

func (c *Controller) importSource(s loader.Source) loader.Source {
	if c.lenient && s == loader.JSON {
		return loader.JSONC
	}
	return s
}

// imported installs a freshly imported document. Imports always start pretty.
func (c *Controller) imported(v any) {
	text := c.serialize(v, false)
	c.Doc, c.HasDoc = v, true
	c.Text, c.OriginalText = text, text
	c.Minified = false
	c.ImportErr, c.EditorErr = "", ""
	c.ImportExpanded = false
}

// Open installs a document loaded outside the import box, such as a file named
// on the command line. The text starts minified when the controller was
// created with Minified set.
func (c *Controller) Open(v any) {
	c.imported(v)
	if c.startMinified {
		c.Minified = true
		c.Text = c.serialize(v, true)
		c.OriginalText = c.Text
	}
}

// UpdateDocument installs an edited document and re-serializes the text in the
// current pretty or minified form.
func (c *Controller) UpdateDocument(v any) {
	c.Doc, c.HasDoc = v, true
	c.Text = c.serialize(v, c.Minified)
	c.EditorErr = ""
}

// SetText stores an edit from the text pane. The document follows only when the
// text parses; otherwise EditorErr holds the parse message.
func (c *Controller) SetText(text string) bool {
	c.Text = text
	v, err := document.ParseString(text)
	if err != nil {
		c.EditorErr = err.Error()
		return false
	}
	c.Doc, c.HasDoc = v, true
	c.ImportErr, c.EditorErr = "", ""
	return true
}

// ToggleFormat flips between pretty and minified text. It needs a document.
func (c *Controller) ToggleFormat() bool {
	if !c.HasDoc {
		return false
	}
	c.Minified = !c.Minified
	c.Text = c.serialize(c.Doc, c.Minified)
	return true
}

// FormatText pretty-prints the current text. Invalid text is left as is.
func (c *Controller) FormatText() bool {
	return c.reformat(false)
}

// MinifyText minifies the current text. Invalid text is left as is.
func (c *Controller) MinifyText() bool {
	return c.reformat(true)
}

func (c *Controller) reformat(minified bool) bool {
	v, err := document.ParseString(c.Text)
	if err != nil {
		return false
	}
	c.SetText(c.serialize(v, minified))
	c.Minified = minified
	return true
}

// CanCompare reports whether the text differs from what was imported.
func (c *Controller) CanCompare() bool {
	return c.OriginalText != "" && c.Text != "" && c.OriginalText != c.Text
}

// SendToCompare loads the original text on the left and the current text on
// the right, then switches to the compare tab.
func (c *Controller) SendToCompare() bool {
	if c.OriginalText == "" || c.Text == "" {
		return false
	}
	c.Compare.Load(c.OriginalText, c.Text)
	c.Tab = TabCompare
	return true
}

// SetTab switches the active view.
func (c *Controller) SetTab(t Tab) {
	if t != TabCompare {
		t = TabEditor
	}
	c.Tab = t
}

func (c *Controller) serialize(v any, minified bool) string {
	if minified {
		return document.Compact(v)
	}
	if c.indent == document.DefaultIndent {
		return document.Pretty(v)
	}
	b, err := document.MarshalIndent(v, c.indent)
	if err != nil {
		return ""
	}
	return string(b)
}
