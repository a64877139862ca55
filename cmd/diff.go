package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/compare"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var (
	diffPatch       bool
	diffChangesOnly bool
	diffSplit       bool
	diffWidth       int
)

var diffCmd = &cobra.Command{
	Use:   "diff <original> <modified>",
	Short: "Compare two JSON documents line by line",
	Long: `Both documents are pretty-printed before comparing, so formatting
differences do not show up. Use "-" for one of them to read stdin.

With --patch the RFC 7396 merge patch that turns the original into the
modified document is printed instead.`,
	Example: "  jsonedit diff before.json after.json\n  jsonedit diff --split before.json after.json\n  jsonedit diff --patch before.json after.json",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := loadDocument(cmd, args[:1])
		if err != nil {
			return err
		}
		right, err := loadDocument(cmd, args[1:])
		if err != nil {
			return err
		}
		var pair compare.Pair
		pair.Load(document.Pretty(left), document.Pretty(right))

		if diffPatch {
			patch, err := pair.MergePatch()
			if err != nil {
				return err
			}
			return printSource(cmd, string(patch), "json")
		}
		return writeDiff(cmd, &pair, args[0], args[1])
	},
}

func writeDiff(cmd *cobra.Command, pair *compare.Pair, leftName, rightName string) error {
	w := cmd.OutOrStdout()
	lines := pair.Diff()
	stats := compare.Count(lines)
	if stats.Identical() {
		_, err := fmt.Fprintln(w, "Documents are identical")
		return err
	}
	if diffSplit {
		width := diffWidth
		if width <= 0 {
			width = terminalWidth(defaultTableWidth)
		}
		if diffChangesOnly {
			lines = compare.Changed(lines)
		}
		if _, err := io.WriteString(w, strings.Join(compare.Split(lines, width), "\n")+"\n"); err != nil {
			return err
		}
	} else if err := compare.WriteUnified(w, lines, leftName, rightName, diffChangesOnly, compare.NewPalette(colorOutput(cmd))); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "%d added, %d removed, %d unchanged\n", stats.Added, stats.Removed, stats.Unchanged)
	return err
}

func init() { //nolint:gochecknoinits
	diffCmd.Flags().BoolVar(&diffPatch, "patch", false, "print the JSON merge patch instead of a line diff")
	diffCmd.Flags().BoolVar(&diffChangesOnly, "changes-only", false, "omit unchanged lines")
	diffCmd.Flags().BoolVar(&diffSplit, "split", false, "show the documents side by side")
	diffCmd.Flags().IntVar(&diffWidth, "width", 0, "side-by-side width (default: terminal width)")
	rootCmd.AddCommand(diffCmd)
}
