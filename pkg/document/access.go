package document

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound is returned when a path segment does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotContainer is returned when a path walks through a scalar.
	ErrNotContainer = errors.New("not an object or array")
)

// Get returns the value at p.
func Get(root any, p Path) (any, error) {
	cur := root
	for i, seg := range p {
		next, err := child(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p[:i+1].Label(), err)
		}
		cur = next
	}
	return cur, nil
}

// SetAt returns a copy of root in which the node at p is replaced by v. Every
// container along the path is shallow-copied; untouched siblings are shared.
// An empty path replaces the whole document.
func SetAt(root any, p Path, v any) (any, error) {
	if len(p) == 0 {
		return v, nil
	}
	return rebuild(root, p, 0, func(parent any, seg Segment) (any, error) {
		return replaceChild(parent, seg, v)
	})
}

// DeleteAt returns a copy of root with the node at p removed from its parent.
func DeleteAt(root any, p Path) (any, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("root: %w", ErrPathNotFound)
	}
	return rebuild(root, p, 0, func(parent any, seg Segment) (any, error) {
		switch t := parent.(type) {
		case Object:
			if seg.IsIndex || t.Index(seg.Key) < 0 {
				return nil, ErrPathNotFound
			}
			return t.Without(seg.Key), nil
		case Array:
			if !seg.IsIndex || seg.Index >= len(t) {
				return nil, ErrPathNotFound
			}
			return t.Without(seg.Index), nil
		default:
			return nil, ErrNotContainer
		}
	})
}

// rebuild walks to the parent of p[len(p)-1], applies leaf to it, and rebuilds
// every container on the way back up.
func rebuild(cur any, p Path, depth int, leaf func(parent any, seg Segment) (any, error)) (any, error) {
	seg := p[depth]
	if depth == len(p)-1 {
		out, err := leaf(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Label(), err)
		}
		return out, nil
	}
	next, err := child(cur, seg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p[:depth+1].Label(), err)
	}
	updated, err := rebuild(next, p, depth+1, leaf)
	if err != nil {
		return nil, err
	}
	return replaceChild(cur, seg, updated)
}

func child(cur any, seg Segment) (any, error) {
	switch t := cur.(type) {
	case Object:
		if seg.IsIndex {
			return nil, ErrPathNotFound
		}
		v, ok := t.Get(seg.Key)
		if !ok {
			return nil, ErrPathNotFound
		}
		return v, nil
	case Array:
		if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(t) {
			return nil, ErrPathNotFound
		}
		return t[seg.Index], nil
	default:
		return nil, ErrNotContainer
	}
}

func replaceChild(parent any, seg Segment, v any) (any, error) {
	switch t := parent.(type) {
	case Object:
		if seg.IsIndex {
			return nil, ErrPathNotFound
		}
		return t.With(seg.Key, v), nil
	case Array:
		if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(t) {
			return nil, ErrPathNotFound
		}
		return t.With(seg.Index, v), nil
	default:
		return nil, ErrNotContainer
	}
}

// WalkFunc is called for every node visited by Walk. Returning false skips the
// node's children.
type WalkFunc func(p Path, v any) bool

// Walk visits root and its descendants depth-first in document order.
func Walk(root any, fn WalkFunc) {
	walk(Path{}, root, fn)
}

func walk(p Path, v any, fn WalkFunc) {
	if !fn(p, v) {
		return
	}
	switch t := v.(type) {
	case Object:
		for _, m := range t {
			walk(p.Key(m.Key), m.Value, fn)
		}
	case Array:
		for i, elem := range t {
			walk(p.Index(i), elem, fn)
		}
	}
}
