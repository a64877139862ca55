package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/export"
	"github.com/oakwood-commons/jsonedit/internal/highlight"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var (
	exportFormat    string
	exportOutput    string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Render a JSON document as JSON, JavaScript, PHP, text, YAML or TOML",
	Example: "  jsonedit export -f php data.json\n  jsonedit export -f yaml data.json -o data.yaml\n" +
		"  jsonedit export -f js --clipboard data.json",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		v, err := loadDocument(cmd, args)
		if err != nil {
			return err
		}
		out, err := export.Render(v, f)
		if err != nil {
			return err
		}
		if exportClipboard {
			if err := export.Copy(out); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s copied to clipboard (%d top-level items)\n", f, document.Len(v))
			return err
		}
		return writeFile(cmd, exportOutput, out, highlight.Language(string(f)))
	},
}

func init() { //nolint:gochecknoinits
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.JSON), "output format: json|json-min|js|php|text|yaml|toml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	rootCmd.AddCommand(exportCmd)
}
