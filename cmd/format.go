package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var (
	formatMinify bool
	formatOutput string
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Pretty-print or minify a JSON document",
	Long: `Parse the input and print it again, pretty with the configured indent or
minified. Key order is kept. With --from the input is converted first, so
format also turns YAML, TOML or NDJSON into JSON.`,
	Example: "  jsonedit format data.json\n  jsonedit format --minify data.json -o data.min.json\n  jsonedit format --from yaml config.yaml",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadDocument(cmd, args)
		if err != nil {
			return err
		}
		out := document.Compact(v)
		if !formatMinify {
			b, err := document.MarshalIndent(v, runSettings(cmd).Indent)
			if err != nil {
				return err
			}
			out = string(b)
		}
		return writeFile(cmd, formatOutput, out, "json")
	},
}

func init() { //nolint:gochecknoinits
	formatCmd.Flags().BoolVarP(&formatMinify, "minify", "m", false, "print without whitespace")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(formatCmd)
}
