package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonedit/internal/store"
	"github.com/oakwood-commons/jsonedit/internal/table"
	"github.com/oakwood-commons/jsonedit/internal/ui"
	"github.com/oakwood-commons/jsonedit/pkg/document"
)

var errSessionsOff = errors.New("sessions are disabled (session.enabled is false or --no-session was given)")

var sessionSlot string

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the saved editor session",
}

var sessionShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "List the saved slots, or print one with --slot",
	Example: "  jsonedit session show\n  jsonedit session show --slot json-editor-text",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if sessionSlot != "" {
			v, err := st.Get(cmd.Context(), sessionSlot)
			if err != nil {
				return fmt.Errorf("%s: %w", sessionSlot, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		}
		entries, err := st.Entries(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No saved session")
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), table.Render(entriesDocument(entries), table.RenderOptions{
			Width:   terminalWidth(defaultTableWidth),
			NoColor: !colorOutput(cmd),
			Colors:  ui.ThemeFromConfig(cfg.Themes[params.Theme]).TableColors(),
		}))
		return err
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Clear(cmd.Context()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
		return err
	},
}

var sessionPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the session database path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if params.SessionPath == "" {
			return errSessionsOff
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), params.SessionPath)
		return err
	},
}

func requireStore() (store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errSessionsOff
	}
	return st, nil
}

// entriesDocument lists slots as rows of key, size, session and update time.
func entriesDocument(entries []store.Entry) document.Array {
	rows := make(document.Array, len(entries))
	for i, e := range entries {
		rows[i] = document.Object{
			{Key: "slot", Value: e.Key},
			{Key: "bytes", Value: float64(len(e.Value))},
			{Key: "session", Value: e.Session},
			{Key: "updated", Value: e.Updated},
		}
	}
	return rows
}

func init() { //nolint:gochecknoinits
	sessionShowCmd.Flags().StringVar(&sessionSlot, "slot", "", "print the value of one slot")
	sessionCmd.AddCommand(sessionShowCmd, sessionClearCmd, sessionPathCmd)
	rootCmd.AddCommand(sessionCmd)
}
