// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dotctl/dotctl/internal/log"
)

// Runner is the seam between commands and the external programs they drive.
type Runner interface {
	// LookPath resolves an executable the way exec.LookPath does.
	LookPath(name string) (string, error)
	// Run executes name in the foreground, streaming its output.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes name and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches name detached in the background and returns its pid.
	Start(ctx context.Context, name string, args ...string) (int, error)
}

// Exec is the os/exec backed Runner.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Exec wired to the process's stdout and stderr.
func New() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

// LookPath implements Runner.
func (e *Exec) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", &MissingToolError{Tool: name}
	}
	return p, nil
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	if _, err := e.LookPath(name); err != nil {
		return err
	}
	log.Debugf("run: %s %v", name, args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = io.MultiWriter(e.Stderr, &stderr)

	return classify(name, args, cmd.Run(), stderr.String())
}

// Output implements Runner.
func (e *Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := e.LookPath(name); err != nil {
		return nil, err
	}
	log.Debugf("output: %s %v", name, args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	return out, classify(name, args, err, stderr.String())
}

// Start implements Runner. The child is placed in its own process group so it
// survives dotctl exiting and can be signalled as a group later. ctx is only
// consulted before launch.
func (e *Exec) Start(ctx context.Context, name string, args ...string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := e.LookPath(name); err != nil {
		return 0, err
	}
	log.Debugf("start: %s %v", name, args)

	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		log.Debugf("release %d: %v", pid, err)
	}
	return pid, nil
}

// Require returns a MissingToolError for the first tool not found.
func Require(r Runner, tools ...string) error {
	for _, t := range tools {
		if _, err := r.LookPath(t); err != nil {
			var missing *MissingToolError
			if errors.As(err, &missing) {
				return err
			}
			return &MissingToolError{Tool: t}
		}
	}
	return nil
}

func classify(name string, args []string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{
			Tool:     name,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
			Err:      err,
		}
	}
	return fmt.Errorf("failed to run %s: %w", name, err)
}
