package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonedit/internal/config"
	"github.com/oakwood-commons/jsonedit/internal/highlight"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration, or the built-in defaults with --defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configDefaults {
			return printSource(cmd, string(config.DefaultYAML()), "yaml")
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return printSource(cmd, string(out), "yaml")
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := params.ConfigFile
		if path == "" {
			path = config.DefaultPath()
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the UI themes and the highlight styles for CLI output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		for _, name := range cfg.ThemeNames() {
			marker := "  "
			if name == params.Theme {
				marker = "* "
			}
			if _, err := fmt.Fprintln(w, marker+name); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\nhighlight styles (ui.highlight_style):\n  %s\n", strings.Join(highlight.Styles(), " "))
		return err
	},
}

func init() { //nolint:gochecknoinits
	configShowCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the built-in defaults")
	configCmd.AddCommand(configShowCmd, configPathCmd, configThemesCmd)
	rootCmd.AddCommand(configCmd)
}
