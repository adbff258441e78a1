// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runnertest provides a recording Runner for tests.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/dotctl/dotctl/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Mode string // run, output, start
	Name string
	Args []string
}

// Line renders the call as a shell-ish command line.
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake records calls and answers from canned tables. Tools not listed in
// Missing resolve to /usr/bin/<name>.
type Fake struct {
	mu sync.Mutex

	Missing map[string]bool
	Errors  map[string]error
	Outputs map[string][]byte
	PID     int
	// OnRun, when set, is invoked for Run calls before the canned error is
	// returned. Tests use it to fake side effects such as output files.
	OnRun func(name string, args []string) error

	Calls []Call
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Missing: map[string]bool{},
		Errors:  map[string]error{},
		Outputs: map[string][]byte{},
		PID:     4242,
	}
}

// LookPath implements runner.Runner.
func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", &runner.MissingToolError{Tool: name}
	}
	if strings.Contains(name, "/") {
		return name, nil
	}
	return "/usr/bin/" + name, nil
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	if err := f.record("run", name, args); err != nil {
		return err
	}
	if f.OnRun != nil {
		if err := f.OnRun(name, args); err != nil {
			return err
		}
	}
	return f.Errors[name]
}

// Output implements runner.Runner.
func (f *Fake) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	if err := f.record("output", name, args); err != nil {
		return nil, err
	}
	return f.Outputs[name], f.Errors[name]
}

// Start implements runner.Runner.
func (f *Fake) Start(_ context.Context, name string, args ...string) (int, error) {
	if err := f.record("start", name, args); err != nil {
		return 0, err
	}
	if err := f.Errors[name]; err != nil {
		return 0, err
	}
	return f.PID, nil
}

// Lines returns every recorded call rendered with Line.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Line()
	}
	return out
}

func (f *Fake) record(mode, name string, args []string) error {
	if _, err := f.LookPath(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Mode: mode, Name: name, Args: append([]string(nil), args...)})
	return nil
}
