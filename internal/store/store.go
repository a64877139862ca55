// Package store persists the editor's named session slots.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// Slot names. They match the keys the editor has always saved its state under.
const (
	KeyData     = "json-editor-data"
	KeyText     = "json-editor-text"
	KeyOriginal = "json-editor-original"
	KeyTab      = "json-editor-tab"
	KeyLeft     = "json-editor-left"
	KeyRight    = "json-editor-right"
)

// Keys lists every slot in save order.
var Keys = []string{KeyData, KeyText, KeyOriginal, KeyTab, KeyLeft, KeyRight}

// ErrNoSlot is returned by Get for a slot that has never been saved.
var ErrNoSlot = errors.New("slot not found")

// Slots is a set of slot values keyed by slot name.
type Slots map[string]string

// Names returns the slot names in sorted order.
func (s Slots) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Entry is one stored slot with the session that wrote it.
type Entry struct {
	Key     string
	Value   string
	Session string
	Updated string
}

// Store reads and writes slots.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, slots Slots) error
	Load(ctx context.Context) (Slots, error)
	Entries(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// DefaultPath is the session database location: $XDG_STATE_HOME/jsonedit/session.db,
// falling back to ~/.local/state.
func DefaultPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "jsonedit", "session.db")
}
