package controller

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/jsonedit/internal/store"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// Snapshot returns the persisted form of the state.
func (c *Controller) Snapshot() store.Slots {
	data := "null"
	if c.HasDoc {
		data = document.Compact(c.Doc)
	}
	return store.Slots{
		store.KeyData:     data,
		store.KeyText:     c.Text,
		store.KeyOriginal: c.OriginalText,
		store.KeyTab:      string(c.Tab),
		store.KeyLeft:     c.Compare.Left,
		store.KeyRight:    c.Compare.Right,
	}
}

// Restore applies saved slots. The document is restored only when both its data
// and text were saved; the other slots apply individually when non-empty.
func (c *Controller) Restore(slots store.Slots) error {
	var errs []error
	if data, text := slots[store.KeyData], slots[store.KeyText]; data != "" && text != "" {
		v, err := document.ParseString(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", store.KeyData, err))
		} else {
			c.Doc, c.HasDoc = v, true
			c.Text = text
			c.ImportExpanded = false
		}
	}
	if s := slots[store.KeyOriginal]; s != "" {
		c.OriginalText = s
	}
	if s := slots[store.KeyTab]; s != "" {
		c.SetTab(Tab(s))
	}
	if s := slots[store.KeyLeft]; s != "" {
		c.Compare.Left = s
	}
	if s := slots[store.KeyRight]; s != "" {
		c.Compare.Right = s
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// hasState reports whether anything is worth saving.
func (c *Controller) hasState() bool {
	return c.HasDoc || c.Text != "" || c.OriginalText != "" ||
		c.Compare.Left != "" || c.Compare.Right != ""
}

// Load restores the state from the store.
func (c *Controller) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	slots, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return c.Restore(slots)
}

// Save writes the state to the store when there is any.
func (c *Controller) Save(ctx context.Context) error {
	if c.store == nil || !c.hasState() {
		return nil
	}
	if err := c.store.Save(ctx, c.Snapshot()); err != nil {
		c.log.Error(err, "save session")
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearAll resets every field to its initial value and deletes the saved slots.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.Doc, c.HasDoc = nil, false
	c.Text, c.OriginalText = "", ""
	c.Tab = TabEditor
	c.Compare.Clear()
	c.ImportErr, c.EditorErr = "", ""
	c.ImportExpanded = true
	if c.store == nil {
		return nil
	}
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
