package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/jsonedit/internal/config"
	"github.com/oakwood-commons/jsonedit/internal/controller"
	"github.com/oakwood-commons/jsonedit/internal/store"
	"github.com/oakwood-commons/jsonedit/internal/ui"
	"github.com/oakwood-commons/jsonedit/pkg/document"
	"github.com/oakwood-commons/jsonedit/pkg/loader"
	"github.com/oakwood-commons/jsonedit/pkg/logger"
	"github.com/oakwood-commons/jsonedit/pkg/settings"
)

// errNoInput is returned when a command needs a document and none was given.
var errNoInput = errors.New("no input: pass a file or pipe JSON on stdin")

var (
	params  = settings.NewCliParams()
	cfg     = config.Default()
	rootCtx = context.Background()

	indentWidth int
	sessionFlag string
	noSession   bool
	exportDir   string
	decode      bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Edit, format, convert and compare JSON in the terminal",
	Long: `jsonedit opens a JSON document in a terminal editor with a tree, a table
view for arrays and a raw text pane kept in sync, plus a compare tab.

Without a file it restores the last session. The subcommands cover the same
operations for scripts: format, export, tree, table, diff and query.`,
	Example:       "  jsonedit data.json\n  curl -s https://api.example.com/items | jsonedit\n  jsonedit format --minify data.json\n  jsonedit diff before.json after.json",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

// setup layers flags over the config file, starts logging and stores both in
// the command context.
func setup(cmd *cobra.Command) error {
	c, err := config.Load(params.ConfigFile)
	if err != nil {
		return err
	}
	cfg = c
	if err := applyConfig(cmd.Flags(), cfg, params); err != nil {
		return err
	}

	logPath := params.LogFile
	if logPath == "" && cmd == rootCmd {
		logPath = logger.DefaultPath()
	}
	lgr, err := logger.Setup(logger.Options{Level: params.MinLogLevel, Path: logPath})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	lgr = logger.WithValues(lgr, logger.CommandKey, cmd.CommandPath())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rootCtx = logger.WithLogger(settings.IntoContext(ctx, params), lgr)
	cmd.SetContext(rootCtx)
	return nil
}

// applyConfig fills every setting whose flag was not given from the config.
func applyConfig(flags *pflag.FlagSet, c config.Config, p *settings.Run) error {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if !changed("no-color") {
		p.NoColor = c.UI.NoColor || os.Getenv("NO_COLOR") != ""
	}
	if !changed("lenient") {
		p.Lenient = c.Editor.Lenient
	}
	if !changed("from") {
		p.From = c.Editor.From
	}
	if !changed("minified") {
		p.Minified = c.Editor.Minified
	}
	if changed("indent") {
		if indentWidth < 0 || indentWidth > 8 {
			return fmt.Errorf("--indent %d: must be between 0 and 8", indentWidth)
		}
		p.Indent = strings.Repeat(" ", indentWidth)
	} else {
		p.Indent = c.IndentString()
	}
	if !changed("theme") {
		p.Theme = c.UI.Theme
	}
	if _, ok := c.Themes[p.Theme]; !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", p.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	switch {
	case noSession:
		p.SessionPath = ""
	case changed("session"):
		p.SessionPath = sessionFlag
	default:
		p.SessionPath = c.SessionPath(store.DefaultPath())
	}
	if _, err := loader.ParseSource(p.From); err != nil {
		return err
	}
	return nil
}

// runSettings returns the settings setup stored on the command context.
func runSettings(cmd *cobra.Command) *settings.Run {
	if s, ok := settings.FromContext(cmd.Context()); ok {
		return s
	}
	return params
}

// source is the import format after --lenient is applied.
func source() loader.Source {
	s, err := loader.ParseSource(params.From)
	if err != nil {
		s = loader.JSON
	}
	if s == loader.JSON && params.Lenient {
		return loader.JSONC
	}
	return s
}

// readInput returns the raw input: the named file, stdin when the name is "-"
// or absent and stdin is piped.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return data, args[0], nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin && len(args) == 0 && !stdinIsPiped() {
		return nil, "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, "stdin", nil
}

// loadDocument reads and converts the input.
func loadDocument(cmd *cobra.Command, args []string) (any, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	from := source()
	if from == loader.Auto && name != "stdin" {
		if s := loader.SourceForPath(name); s != loader.Auto {
			from = s
		}
	}
	v, err := loader.Load(data, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if decode {
		v = loader.ExpandStrings(v)
	}
	return v, nil
}

// openStore opens the session database, or returns nil when sessions are off.
func openStore() (store.Store, error) {
	if params.SessionPath == "" {
		return nil, nil
	}
	st, err := store.Open(params.SessionPath)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	st, err := openStore()
	if err != nil {
		lgr.Error(err, "session store unavailable")
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, continuing without a saved session\n", err)
		st = nil
	}
	if st != nil {
		defer st.Close()
	}

	ctl := controller.New(controller.Options{
		Store:    st,
		Log:      *lgr,
		Source:   source(),
		Lenient:  params.Lenient,
		Indent:   params.Indent,
		Minified: params.Minified,
	})
	if len(args) > 0 || stdinIsPiped() {
		v, err := loadDocument(cmd, args)
		if err != nil {
			return err
		}
		ctl.Open(v)
		lgr.Info("loaded document", "kind", document.KindOf(v).String())
	}

	theme := ui.ThemeFromConfig(cfg.Themes[params.Theme])
	progOpts, cleanup := programOptions(ctx)
	defer cleanup()
	_, err = ui.Run(ctx, ui.Options{
		Controller:  ctl,
		Theme:       theme,
		NoColor:     params.NoColor,
		LineNumbers: cfg.UI.ShowLineNumbers,
		ExportDir:   exportDir,
		Log:         *lgr,
	}, progOpts...)
	return err
}

func init() { //nolint:gochecknoinits
	// Assigned here rather than in the literal: setup refers to rootCmd,
	// which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&params.ConfigFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/jsonedit/config.yaml)")
	pf.StringVar(&params.LogFile, "log-file", "", "write logs to this file (the editor defaults to $XDG_STATE_HOME/jsonedit/jsonedit.log)")
	pf.Int8Var(&params.MinLogLevel, "log-level", 0, "minimum log level: -1 debug, 0 info, 1 warn, 2 error")
	pf.BoolVar(&params.NoColor, "no-color", false, "disable color output")
	pf.BoolVar(&params.Lenient, "lenient", false, "accept comments and trailing commas in JSON input")
	pf.StringVar(&params.From, "from", "json", "input format: "+sourceNames())
	pf.IntVar(&indentWidth, "indent", 2, "spaces per indent level in pretty output")
	pf.StringVar(&sessionFlag, "session", "", "session database path (default $XDG_STATE_HOME/jsonedit/session.db)")
	pf.BoolVar(&noSession, "no-session", false, "do not restore or save the session")
	pf.BoolVar(&decode, "decode", false, "expand strings holding JSON documents or JWTs")

	rootCmd.Flags().BoolVar(&params.Minified, "minified", false, "start the text pane minified")
	rootCmd.Flags().StringVar(&params.Theme, "theme", "dark", "color theme defined in the config")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for files exported from the editor")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func sourceNames() string {
	names := make([]string, len(loader.Sources))
	for i, s := range loader.Sources {
		names[i] = string(s)
	}
	return strings.Join(names, "|")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}
