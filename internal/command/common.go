// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/output"
	"github.com/dotctl/dotctl/internal/runner"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// getRunner returns the Runner carried by meta, falling back to os/exec.
func getRunner(m meta.Meta) runner.Runner {
	if m.Runner != nil {
		return m.Runner
	}
	return runner.New()
}

// stdout is where command results are written. Tests replace the root
// command's Writer to capture it.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// isTerminal reports whether both stdin and stdout are attached to a TTY.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// outputOptions collects the global output flags.
func outputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Sort:    cmd.String("sort"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: 2, //nolint:mnd
	}
}
