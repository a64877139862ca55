package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupReturnsSameLogger(t *testing.T) {
	l1, err := Setup(Options{})
	require.NoError(t, err)
	require.NotNil(t, l1)
	l2, err := Setup(Options{Level: -1})
	require.NoError(t, err)
	assert.Same(t, l1, l2)
	assert.Same(t, l1, Global())
}

func TestGlobalBeforeSetupIsNoop(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Global())
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestWithLoggerAndFromContext(t *testing.T) {
	ctx := context.Background()
	l := logr.Discard()

	withL := WithLogger(ctx, &l)
	assert.Same(t, &l, FromContext(withL))
	assert.Equal(t, withL, WithLogger(withL, &l), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(withL, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestOpenSinkWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	sink, err := openSink(path)
	require.NoError(t, err)
	defer func() {
		_ = logFile.Close()
		logFile = nil
	}()

	_, err = sink.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, sink.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(b))
}

func TestOpenSinkStderr(t *testing.T) {
	sink, err := openSink("")
	require.NoError(t, err)
	assert.NotNil(t, sink)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, filepath.Join("/tmp/state", "jsonedit", "jsonedit.log"), DefaultPath())
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"enotty", syscall.ENOTTY, true},
		{"wrapped einval", &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}, true},
		{"windows handle", errors.New("sync: The handle is invalid."), true},
		{"other", errors.New("disk full"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isIgnorableSyncError(tt.err))
		})
	}
}

func TestWithValues(t *testing.T) {
	l := logr.Discard()
	got := WithValues(&l, "k", "v")
	require.NotNil(t, got)
	assert.NotSame(t, &l, got)
}

func TestSyncWithoutSetupDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, Sync)
}
