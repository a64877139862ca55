package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oakwood-commons/jsonedit/internal/export"
)

// Export renders the document in format f.
func (c *Controller) Export(f export.Format) (string, error) {
	if !c.HasDoc {
		return "", ErrNoDocument
	}
	return export.Render(c.Doc, f)
}

// CopyText puts the text pane content on the clipboard.
func (c *Controller) CopyText() error {
	return export.Copy(c.Text)
}

// CopyExport puts the rendering in format f on the clipboard.
func (c *Controller) CopyExport(f export.Format) error {
	out, err := c.Export(f)
	if err != nil {
		return err
	}
	return export.Copy(out)
}

// SaveExport writes the rendering in format f to its default file name in dir
// and returns the written path.
func (c *Controller) SaveExport(f export.Format, dir string) (string, error) {
	out, err := c.Export(f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, f.FileName())
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	c.log.V(1).Info("exported", "format", string(f), "path", path)
	return path, nil
}

// Deliver exports the document the way the editor does for f: JavaScript and
// PHP go to the clipboard, every other format is saved into dir. The returned
// message describes what happened.
func (c *Controller) Deliver(f export.Format, dir string) (string, error) {
	if f.Clipboard() {
		if err := c.CopyExport(f); err != nil {
			return "", err
		}
		switch f {
		case export.JavaScript:
			return "JavaScript object copied to clipboard!", nil
		case export.PHP:
			return "PHP array copied to clipboard!", nil
		default:
			return "Copied to clipboard", nil
		}
	}
	path, err := c.SaveExport(f, dir)
	if err != nil {
		return "", err
	}
	return "Saved " + path, nil
}
