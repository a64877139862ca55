package compare

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Palette colors unified diff output.
type Palette struct {
	Insert *color.Color
	Delete *color.Color
	Header *color.Color
}

// NewPalette returns the diff colors, disabled when enabled is false.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Insert: color.New(color.FgGreen),
		Delete: color.New(color.FgRed),
		Header: color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.Insert, p.Delete, p.Header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WriteUnified writes a unified diff with file headers. With onlyChanges set,
// unchanged lines are omitted.
func WriteUnified(w io.Writer, lines []Line, leftName, rightName string, onlyChanges bool, p Palette) error {
	if _, err := p.Header.Fprintf(w, "--- %s\n+++ %s\n", leftName, rightName); err != nil {
		return err
	}
	for _, l := range lines {
		var err error
		switch l.Op {
		case Insert:
			_, err = p.Insert.Fprintln(w, "+"+l.Text)
		case Delete:
			_, err = p.Delete.Fprintln(w, "-"+l.Text)
		default:
			if onlyChanges {
				continue
			}
			_, err = fmt.Fprintln(w, " "+l.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
