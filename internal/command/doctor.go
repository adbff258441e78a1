// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/output"
	"github.com/dotctl/dotctl/internal/transcribe"
	"github.com/dotctl/dotctl/internal/util"
)

// tool is an external program some command depends on.
type tool struct {
	name    string
	command string
	usedBy  string
}

func doctorTools(venv string) []tool {
	return []tool{
		{"ffmpeg", "ffmpeg", "lapse"},
		{"play", "play", "tone"},
		{"kitty", "kitty", "theme"},
		{"tmux", "tmux", "theme"},
		{"python3", "python3", "transcribe install"},
		{"whisper", transcribe.Config{Venv: venv}.WhisperPath(), "transcribe run"},
	}
}

var doctorColumns = []output.Column{
	{Key: "tool", Title: "TOOL"},
	{Key: "status", Title: "STATUS"},
	{Key: "path", Title: "PATH"},
	{Key: "used_by", Title: "USED BY"},
}

func doctorCommandAction(ctx context.Context, cmd *cli.Command) error {
	r := getRunner(GetMeta(cmd))
	tools := doctorTools(util.ExpandHome(cmd.String("venv")))

	required := cmd.StringSlice("require")
	for _, name := range required {
		if !slices.ContainsFunc(tools, func(t tool) bool { return t.name == name }) {
			return usageErrorf("unknown tool %q", name)
		}
	}

	var rows []map[string]interface{}
	var missing []string
	for _, t := range tools {
		status := "found"
		p, err := r.LookPath(t.command)
		if err != nil {
			status = "missing"
			p = ""
			if slices.Contains(required, t.name) {
				missing = append(missing, t.name)
			}
		}
		rows = append(rows, map[string]interface{}{
			"tool":    t.name,
			"status":  status,
			"path":    p,
			"used_by": t.usedBy,
		})
	}

	if err := output.Write(stdout(cmd), rows, doctorColumns, outputOptions(cmd)); err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tool(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// doctorCommandBuilder constructs the "doctor" subcommand.
func doctorCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	return &cli.Command{
		Name:      "doctor",
		Usage:     "check which external tools are installed",
		UsageText: "dotctl doctor [--require TOOL,...] [--output text|json|yaml]",
		Metadata:  map[string]any{"meta": m},
		Flags: append(NewGlobalFlags("doctor", path),
			&cli.StringSliceFlag{
				Name:    "require",
				Aliases: []string{"r"},
				Usage:   "fail when any of these tools is missing",
				Sources: Sources("doctor", "require", path),
			},
			&cli.StringFlag{
				Name:    "venv",
				Usage:   "whisper virtual environment",
				Sources: Sources("transcribe", "venv", path),
				Value:   transcribe.DefaultVenv,
			},
		),
		Action: doctorCommandAction,
	}
}
