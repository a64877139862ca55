package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/highlight"
)

// colorOutput reports whether output written by cmd goes to a color terminal.
func colorOutput(cmd *cobra.Command) bool {
	if runSettings(cmd).NoColor {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && f == os.Stdout && stdoutIsTerminal()
}

// printSource writes text followed by a newline, highlighted as lang when the
// output is a color terminal.
func printSource(cmd *cobra.Command, text, lang string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	w := cmd.OutOrStdout()
	if colorOutput(cmd) {
		err := highlight.Write(w, text, lang, highlight.Options{Style: cfg.UI.HighlightStyle})
		if err == nil {
			return nil
		}
		// An unknown formatter or lexer failure falls back to plain text.
	}
	_, err := io.WriteString(w, text)
	return err
}

// writeFile writes text to path, or prints it when path is empty or "-".
func writeFile(cmd *cobra.Command, path, text, lang string) error {
	if path == "" || path == "-" {
		return printSource(cmd, text, lang)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
