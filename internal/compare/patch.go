package compare

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// MergePatch returns the RFC 7396 merge patch that turns left into right.
func MergePatch(left, right string) ([]byte, error) {
	l, err := canonical(left)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	r, err := canonical(right)
	if err != nil {
		return nil, fmt.Errorf("modified: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(l, r)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return patch, nil
}

// MergePatch returns the merge patch from the pair's left side to its right.
func (p *Pair) MergePatch() ([]byte, error) {
	return MergePatch(p.Left, p.Right)
}

// Equivalent reports whether both sides hold the same JSON value, ignoring
// formatting and object member order.
func (p *Pair) Equivalent() (bool, error) {
	l, err := canonical(p.Left)
	if err != nil {
		return false, fmt.Errorf("original: %w", err)
	}
	r, err := canonical(p.Right)
	if err != nil {
		return false, fmt.Errorf("modified: %w", err)
	}
	return jsonpatch.Equal(l, r), nil
}

// canonical parses text and re-encodes it compactly.
func canonical(text string) ([]byte, error) {
	v, err := document.ParseString(text)
	if err != nil {
		return nil, err
	}
	return document.Marshal(v)
}
