package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/query"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var (
	queryFunctions bool
	queryRaw       bool
)

var queryCmd = &cobra.Command{
	Use:   "query <expression> [file]",
	Short: "Evaluate a CEL expression over a JSON document",
	Long: `The document is bound to _. The result is printed as JSON, or as plain
text with --raw when it is a string.`,
	Example: "  jsonedit query '_.items.filter(i, i.price > 10).map(i, i.name)' data.json\n" +
		"  jsonedit query 'size(_.users)' users.json\n  jsonedit query --functions",
	Args: func(cmd *cobra.Command, args []string) error {
		if queryFunctions {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(1, 2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		eval, err := query.New()
		if err != nil {
			return err
		}
		if queryFunctions {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(eval.Functions(), "\n"))
			return err
		}
		expr := args[0]
		if err := eval.Check(expr); err != nil {
			return err
		}
		v, err := loadDocument(cmd, args[1:])
		if err != nil {
			return err
		}
		out, err := eval.Evaluate(expr, v)
		if err != nil {
			return err
		}
		if s, ok := out.(string); ok && queryRaw {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		}
		b, err := document.MarshalIndent(out, runSettings(cmd).Indent)
		if err != nil {
			return err
		}
		return printSource(cmd, string(b), "json")
	},
}

func init() { //nolint:gochecknoinits
	queryCmd.Flags().BoolVar(&queryFunctions, "functions", false, "list the available functions and exit")
	queryCmd.Flags().BoolVarP(&queryRaw, "raw", "r", false, "print string results without quotes")
	rootCmd.AddCommand(queryCmd)
}
