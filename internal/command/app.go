// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/runner"
	"github.com/dotctl/dotctl/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the dotctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is normal.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		StateDir:    util.StateDir(),
		Runner:      runner.New(),
	}

	return NewApp(m), nil
}

// NewApp assembles the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "dotctl",
		Usage: "dotfiles control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "dotctl version info",
				HideDefault: true,
			},
		},
		Metadata: map[string]any{"meta": m},
	}

	app.Commands = append(app.Commands,
		backupCommandBuilder(m),
		doctorCommandBuilder(m),
		lapseCommandBuilder(m),
		paletteCommandBuilder(m),
		themeCommandBuilder(m),
		toneCommandBuilder(m),
		transcribeCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	var sortFlags func(cmds []*cli.Command)
	sortFlags = func(cmds []*cli.Command) {
		for _, cmd := range cmds {
			sort.Slice(cmd.Flags, func(i, j int) bool {
				return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
			})
			sortFlags(cmd.Commands)
		}
	}
	sortFlags(app.Commands)

	return app
}

// RepeatableFlags returns the dashed names and aliases of every slice flag in
// the command tree. Repeating one of these accumulates values, so argument
// preprocessing must leave every occurrence in place.
func RepeatableFlags() map[string]bool {
	names := map[string]bool{}
	var walk func(cmds []*cli.Command)
	walk = func(cmds []*cli.Command) {
		for _, cmd := range cmds {
			for _, f := range cmd.Flags {
				if _, ok := f.(*cli.StringSliceFlag); !ok {
					continue
				}
				for _, n := range f.Names() {
					if len(n) == 1 {
						names["-"+n] = true
					} else {
						names["--"+n] = true
					}
				}
			}
			walk(cmd.Commands)
		}
	}
	walk(NewApp(meta.Meta{}).Commands)
	return names
}
