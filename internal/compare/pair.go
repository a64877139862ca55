// Package compare holds two independently validated JSON buffers and produces
// line diffs and merge patches between them.
package compare

import (
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Pair is the comparison state. Left is the original, Right the modified
// document. Each side carries its own parse error; an invalid side never
// blocks editing the other.
type Pair struct {
	Left     string
	Right    string
	LeftErr  string
	RightErr string
}

// SetLeft stores and validates the original side.
func (p *Pair) SetLeft(text string) bool {
	p.Left = text
	p.LeftErr = validate(text)
	return p.LeftErr == ""
}

// SetRight stores and validates the modified side.
func (p *Pair) SetRight(text string) bool {
	p.Right = text
	p.RightErr = validate(text)
	return p.RightErr == ""
}

// Load sets both sides without validating them, clearing both errors.
func (p *Pair) Load(left, right string) {
	*p = Pair{Left: left, Right: right}
}

// FormatBoth re-indents every side that parses. Sides that do not parse are
// left as typed.
func (p *Pair) FormatBoth() {
	p.Left = Format(p.Left)
	p.Right = Format(p.Right)
}

// Clear empties both sides and their errors.
func (p *Pair) Clear() {
	*p = Pair{}
}

// Ready reports whether both sides hold valid, non-blank JSON so a diff can be
// shown.
func (p *Pair) Ready() bool {
	return strings.TrimSpace(p.Left) != "" && strings.TrimSpace(p.Right) != "" &&
		p.LeftErr == "" && p.RightErr == ""
}

// Diff compares the formatted sides line by line without changing the buffers.
func (p *Pair) Diff() []Line {
	return Lines(Format(p.Left), Format(p.Right))
}

// Format pretty-prints text when it parses and returns it unchanged otherwise.
func Format(text string) string {
	v, err := document.ParseString(text)
	if err != nil {
		return text
	}
	return document.Pretty(v)
}

// validate returns the parse error message for text. Blank text is valid.
func validate(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if _, err := document.ParseString(text); err != nil {
		return err.Error()
	}
	return ""
}
