package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/jsonedit/pkg/logger"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Run restores the saved session when the controller has no document yet,
// then runs the editor until the user quits. Extra options such as custom IO
// are passed to tea.NewProgram.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) (*Model, error) {
	lgr := logger.FromContext(ctx)
	if opts.Log.GetSink() == nil {
		opts.Log = *lgr
	}
	ctl := opts.Controller
	if !ctl.HasDoc {
		if err := ctl.Load(ctx); err != nil {
			opts.Log.Error(err, "restore session")
		}
	}

	m := NewModel(ctx, opts)
	m.width, m.height = terminalSize()
	m.layout()

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	prog := tea.NewProgram(m, progOpts...)
	final, err := prog.Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	if saveErr := ctl.Save(ctx); saveErr != nil {
		opts.Log.Error(saveErr, "save session on exit")
	}
	return m, err
}

func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}
