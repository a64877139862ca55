package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/table"
	"github.com/oakwood-commons/jsonedit/internal/tree"
	"github.com/oakwood-commons/jsonedit/internal/ui"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

const defaultTableWidth = 120

var (
	treeOpts    tree.TextOptions
	tablePath   string
	tableExpand bool
	tableWidth  int
)

var treeCmd = &cobra.Command{
	Use:     "tree [file]",
	Short:   "Print a JSON document as a tree",
	Example: "  jsonedit tree data.json\n  jsonedit tree --depth 2 --no-values data.json",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadDocument(cmd, args)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), tree.RenderText(v, treeOpts))
		return err
	},
}

var tableCmd = &cobra.Command{
	Use:   "table [file]",
	Short: "Print a JSON document, or the value at --path, as a table",
	Long: `Arrays of objects with the same keys get one column per key. Other arrays
and objects list index or key, type and value. Nested containers are
summarized unless --expand is given.`,
	Example: "  jsonedit table users.json\n  jsonedit table --path _.items --expand data.json",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadDocument(cmd, args)
		if err != nil {
			return err
		}
		if tablePath != "" {
			p, err := document.ParsePath(tablePath)
			if err != nil {
				return err
			}
			if v, err = document.Get(v, p); err != nil {
				return err
			}
		}
		width := tableWidth
		if width <= 0 {
			width = terminalWidth(defaultTableWidth)
		}
		out := table.Render(v, table.RenderOptions{
			Width:     width,
			NoColor:   !colorOutput(cmd),
			Colors:    ui.ThemeFromConfig(cfg.Themes[params.Theme]).TableColors(),
			ExpandAll: tableExpand,
		})
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

func init() { //nolint:gochecknoinits
	treeCmd.Flags().BoolVar(&treeOpts.NoValues, "no-values", false, "show structure only")
	treeCmd.Flags().IntVar(&treeOpts.MaxDepth, "depth", 0, "limit the depth (0 means unlimited)")
	treeCmd.Flags().BoolVar(&treeOpts.ExpandArrays, "expand-arrays", false, "list every array element")
	treeCmd.Flags().IntVar(&treeOpts.MaxStringLen, "max-string", 0, "truncate values longer than this (0 means no limit)")
	rootCmd.AddCommand(treeCmd)

	tableCmd.Flags().StringVar(&tablePath, "path", "", "path of the value to show, such as _.items or users[0]")
	tableCmd.Flags().BoolVar(&tableExpand, "expand", false, "expand nested tables")
	tableCmd.Flags().IntVar(&tableWidth, "width", 0, "table width (default: terminal width)")
	rootCmd.AddCommand(tableCmd)
}
