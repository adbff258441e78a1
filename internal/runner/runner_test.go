// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestLookPath_Missing(t *testing.T) {
	e := New()
	_, err := e.LookPath("dotctl-no-such-tool-xyz")

	var missing *MissingToolError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "dotctl-no-such-tool-xyz", missing.Tool)
	assert.Contains(t, err.Error(), "missing dependency")
}

func TestRequire(t *testing.T) {
	skipOnWindows(t)
	e := New()

	assert.NoError(t, Require(e, "sh"))

	err := Require(e, "sh", "dotctl-no-such-tool-xyz")
	var missing *MissingToolError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "dotctl-no-such-tool-xyz", missing.Tool)
}

func TestRun_ToolError(t *testing.T) {
	skipOnWindows(t)
	var stdout, stderr bytes.Buffer
	e := &Exec{Stdout: &stdout, Stderr: &stderr}

	err := e.Run(context.Background(), "sh", "-c", "echo out; echo first >&2; echo oops >&2; exit 3")

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "sh", toolErr.Tool)
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.Contains(t, toolErr.Stderr, "oops")
	assert.Equal(t, "sh failed (exit 3): first; oops", err.Error())
	assert.Equal(t, "out\n", stdout.String())
	assert.Contains(t, stderr.String(), "oops", "stderr is still streamed")
}

func TestRun_Success(t *testing.T) {
	skipOnWindows(t)
	var stdout bytes.Buffer
	e := &Exec{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	require.NoError(t, e.Run(context.Background(), "sh", "-c", "echo ok"))
	assert.Equal(t, "ok\n", stdout.String())
}

func TestOutput(t *testing.T) {
	skipOnWindows(t)
	e := New()

	out, err := e.Output(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	_, err = e.Output(context.Background(), "sh", "-c", "exit 2")
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 2, toolErr.ExitCode)
}

func TestStartAndTerminate(t *testing.T) {
	skipOnWindows(t)
	e := New()

	pid, err := e.Start(context.Background(), "sleep", "30")
	require.NoError(t, err)
	assert.Greater(t, pid, 0)
	assert.True(t, Alive(pid))
	assert.NoError(t, Terminate(pid))
}

func TestStart_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Start(ctx, "sleep", "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAlive(t *testing.T) {
	assert.True(t, Alive(os.Getpid()))
	assert.False(t, Alive(0))
	assert.False(t, Alive(-1))
	assert.False(t, Alive(2147480000))
}

func TestTerminate_Gone(t *testing.T) {
	assert.NoError(t, Terminate(0))
	assert.NoError(t, Terminate(2147480000))
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "", lastLines("", 3))
	assert.Equal(t, "a", lastLines("a\n\n", 3))
	assert.Equal(t, "b; c; d", lastLines("a\nb\n  \nc\nd\n", 3))
}
