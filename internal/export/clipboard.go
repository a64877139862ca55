package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Copy places text on the system clipboard.
func Copy(text string) error {
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// SetClipboardWriter replaces the clipboard backend and returns a function
// restoring the previous one.
func SetClipboardWriter(fn func(string) error) (restore func()) {
	prev := clipboardWrite
	clipboardWrite = fn
	return func() { clipboardWrite = prev }
}
