package tree

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/jsonedit/internal/valuefmt"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

const defaultInlineItems = 3

// TextOptions controls RenderText output.
type TextOptions struct {
	// NoValues hides leaf values and prints structure only.
	NoValues bool
	// MaxDepth stops descending below this depth. 0 means unlimited.
	MaxDepth int
	// ExpandArrays lists every scalar array element instead of inlining or
	// summarizing short and long scalar arrays.
	ExpandArrays bool
	// InlineItems is the longest scalar array printed inline (default 3).
	InlineItems int
	// MaxStringLen truncates leaf text. 0 or negative disables truncation.
	MaxStringLen int
}

// RenderText draws doc as a static ASCII tree for terminal output.
func RenderText(doc any, opts TextOptions) string {
	if opts.InlineItems == 0 {
		opts.InlineItems = defaultInlineItems
	}
	root := treeprint.New()
	if !document.IsContainer(doc) {
		root.AddNode(leafText(doc, opts))
		return root.String()
	}
	addChildren(root, doc, opts, 0)
	return root.String()
}

func addChildren(branch treeprint.Tree, v any, opts TextOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode("...")
		return
	}
	switch document.KindOf(v) {
	case document.KindObject:
		for _, m := range document.AsObject(v) {
			addEntry(branch, m.Key, m.Value, opts, depth)
		}
	case document.KindArray:
		for i, item := range document.AsArray(v) {
			addEntry(branch, fmt.Sprintf("[%d]", i), item, opts, depth)
		}
	}
}

func addEntry(branch treeprint.Tree, label string, v any, opts TextOptions, depth int) {
	switch document.KindOf(v) {
	case document.KindObject:
		if document.Len(v) == 0 {
			branch.AddNode(entryText(label, "{}", opts))
			return
		}
		addChildren(branch.AddBranch(label), v, opts, depth+1)
	case document.KindArray:
		arr := document.AsArray(v)
		switch {
		case len(arr) == 0:
			branch.AddNode(entryText(label, "[]", opts))
		case !opts.ExpandArrays && scalarsOnly(arr) && len(arr) <= opts.InlineItems:
			branch.AddNode(entryText(label, inlineArray(arr), opts))
		case !opts.ExpandArrays && scalarsOnly(arr):
			branch.AddNode(entryText(label, valuefmt.Summary(arr), opts))
		default:
			addChildren(branch.AddBranch(label), arr, opts, depth+1)
		}
	default:
		branch.AddNode(entryText(label, leafText(v, opts), opts))
	}
}

func entryText(label, value string, opts TextOptions) string {
	if opts.NoValues {
		return label
	}
	return label + ": " + value
}

func leafText(v any, opts TextOptions) string {
	s := valuefmt.Display(v)
	if opts.MaxStringLen <= 0 || len([]rune(s)) <= opts.MaxStringLen {
		return s
	}
	if opts.MaxStringLen <= 3 {
		return "..."
	}
	return string([]rune(s)[:opts.MaxStringLen-3]) + "..."
}

func scalarsOnly(arr document.Array) bool {
	for _, item := range arr {
		if document.IsContainer(item) {
			return false
		}
	}
	return true
}

func inlineArray(arr document.Array) string {
	parts := make([]string, len(arr))
	for i, item := range arr {
		parts[i] = valuefmt.Display(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
