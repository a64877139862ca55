package cmd

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResizeTicker struct {
	ch <-chan time.Time
}

func (f *fakeResizeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeResizeTicker) Stop()               {}

// stubTerminal replaces the terminal hooks for one test.
func stubTerminal(t *testing.T, piped bool, open func() (*os.File, *os.File, error)) {
	t.Helper()
	origPiped, origOpen := stdinIsPiped, openTerminalIOFn
	stdinIsPiped = func() bool { return piped }
	if open != nil {
		openTerminalIOFn = open
	}
	t.Cleanup(func() {
		stdinIsPiped, openTerminalIOFn = origPiped, origOpen
	})
}

// stubResize feeds sizes to the watcher and collects what it sends.
func stubResize(t *testing.T, sizes ...int) (chan time.Time, chan tea.WindowSizeMsg) {
	t.Helper()
	origSize, origTicker, origSend := termGetSize, newResizeTicker, sendWindowSize
	t.Cleanup(func() {
		termGetSize, newResizeTicker, sendWindowSize = origSize, origTicker, origSend
	})

	var calls atomic.Int32
	termGetSize = func(int) (int, int, error) {
		i := int(calls.Add(1)) - 1
		if i >= len(sizes) {
			i = len(sizes) - 1
		}
		return sizes[i], 24, nil
	}
	ticks := make(chan time.Time, len(sizes))
	newResizeTicker = func(time.Duration) resizeTicker { return &fakeResizeTicker{ch: ticks} }
	msgs := make(chan tea.WindowSizeMsg, len(sizes))
	sendWindowSize = func(_ *tea.Program, msg tea.WindowSizeMsg) { msgs <- msg }
	return ticks, msgs
}

func recvSize(t *testing.T, msgs <-chan tea.WindowSizeMsg) tea.WindowSizeMsg {
	t.Helper()
	select {
	case m := <-msgs:
		return m
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for resize message")
		return tea.WindowSizeMsg{}
	}
}

func pipeFile(t *testing.T) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return w
}

func TestTerminalDeviceNames(t *testing.T) {
	tests := map[string][2]string{
		"windows": {"CONIN$", "CONOUT$"},
		"linux":   {"/dev/tty", "/dev/tty"},
		"darwin":  {"/dev/tty", "/dev/tty"},
		"freebsd": {"/dev/tty", "/dev/tty"},
	}
	for goos, want := range tests {
		t.Run(goos, func(t *testing.T) {
			in, out := terminalDeviceNames(goos)
			assert.Equal(t, want[0], in)
			assert.Equal(t, want[1], out)
		})
	}
}

func TestProgramOptionsPipedReopensTerminal(t *testing.T) {
	in, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	out, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)
	stubTerminal(t, true, func() (*os.File, *os.File, error) { return in, out, nil })

	opts, cleanup := programOptions(context.Background())
	require.Len(t, opts, 3)

	cleanup()
	assert.Error(t, in.Close(), "cleanup closes the input")
	assert.Error(t, out.Close(), "cleanup closes the output")
}

func TestProgramOptionsDefaults(t *testing.T) {
	tests := []struct {
		name  string
		piped bool
		open  func() (*os.File, *os.File, error)
	}{
		{
			name:  "not piped",
			piped: false,
			open: func() (*os.File, *os.File, error) {
				return nil, nil, errors.New("should not be called")
			},
		},
		{
			name:  "no terminal",
			piped: true,
			open: func() (*os.File, *os.File, error) {
				return nil, nil, errors.New("no tty")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.piped, tt.open)
			opts, cleanup := programOptions(context.Background())
			assert.Nil(t, opts)
			require.NotNil(t, cleanup)
			assert.NotPanics(t, cleanup)
		})
	}
}

func TestResizeWatcherSendsOnChange(t *testing.T) {
	ticks, msgs := stubResize(t, 80, 80, 81)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var p tea.Program
	withTTYResizeWatcher(ctx, pipeFile(t))(&p)

	ticks <- time.Now()
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, recvSize(t, msgs))

	ticks <- time.Now()
	select {
	case m := <-msgs:
		t.Fatalf("unexpected resize message on unchanged size: %+v", m)
	case <-time.After(150 * time.Millisecond):
	}

	ticks <- time.Now()
	assert.Equal(t, tea.WindowSizeMsg{Width: 81, Height: 24}, recvSize(t, msgs))
}

func TestResizeWatcherStopsWithContext(t *testing.T) {
	ticks, msgs := stubResize(t, 80, 90)
	ctx, cancel := context.WithCancel(context.Background())

	var p tea.Program
	withTTYResizeWatcher(ctx, pipeFile(t))(&p)
	ticks <- time.Now()
	recvSize(t, msgs)

	cancel()
	time.Sleep(50 * time.Millisecond)
	ticks <- time.Now()
	select {
	case m := <-msgs:
		t.Fatalf("watcher kept running after cancel: %+v", m)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	orig := termGetSize
	t.Cleanup(func() { termGetSize = orig })

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	assert.Equal(t, 120, terminalWidth(120))

	termGetSize = func(int) (int, int, error) { return 100, 30, nil }
	assert.Equal(t, 100, terminalWidth(120))
}
