// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/transcribe"
	"github.com/dotctl/dotctl/internal/util"
)

func transcribeInstallAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	rc := cmd.String("rc")
	if rc == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		rc = transcribe.DefaultRC(os.Getenv("SHELL"), home)
	}

	inst := transcribe.Installer{
		Runner:  getRunner(m),
		Venv:    util.ExpandHome(cmd.String("venv")),
		RC:      util.ExpandHome(rc),
		Package: cmd.String("package"),
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "Installing %s into %s...\n", cmd.String("package"), inst.Venv)

	rep, err := inst.Install(ctx)
	if err != nil {
		return err
	}

	if rep.CreatedVenv {
		fmt.Fprintf(w, "✓ Created virtual environment: %s\n", inst.Venv)
	}
	fmt.Fprintf(w, "✓ Installed %s\n", cmd.String("package"))
	if rep.AddedAlias {
		fmt.Fprintf(w, "✓ Added transcribe alias to %s (restart your shell or run: source %s)\n", inst.RC, inst.RC)
	} else {
		fmt.Fprintf(w, "- transcribe alias already present in %s\n", inst.RC)
	}
	return nil
}

func transcribeRunAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	files := cmd.Args().Slice()

	cfg := transcribe.Config{
		Venv:       util.ExpandHome(cmd.String("venv")),
		Model:      cmd.String("model"),
		Device:     cmd.String("device"),
		Timestamps: cmd.Bool("timestamps"),
		Verbose:    cmd.Bool("verbose"),
		Batch:      cmd.Bool("batch"),
		Output:     cmd.String("output"),
	}
	if err := cfg.Validate(len(files)); err != nil {
		return asUsage(err)
	}
	if err := transcribe.ValidateInputs(files); err != nil {
		return asUsage(err)
	}
	if cfg.Batch && len(files) == 1 {
		log.Warnf("--batch with a single file; writing %s", cfg.Output)
	}

	headroom, err := config.GetFloat("transcribe.disk_headroom_gb", transcribe.DefaultHeadroomGB)
	if err != nil {
		log.Warnf("ignoring transcribe.disk_headroom_gb: %v", err)
		headroom = transcribe.DefaultHeadroomGB
	}

	svc := transcribe.Service{
		Config:     cfg,
		Runner:     getRunner(m),
		Out:        stdout(cmd),
		HeadroomGB: headroom,
	}
	results, err := svc.Run(ctx, files)
	if err != nil {
		return err
	}
	log.Debugf("transcribed %d of %d file(s)", len(results), len(files))
	return nil
}

// transcribeCommandBuilder constructs the "transcribe" command and its
// subcommands.
func transcribeCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	md := map[string]any{"meta": m}

	venvFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "venv",
			Usage:   "whisper virtual environment",
			Sources: Sources("transcribe", "venv", path),
			Value:   transcribe.DefaultVenv,
		}
	}

	return &cli.Command{
		Name:     "transcribe",
		Usage:    "transcribe MP3 files with whisper",
		Metadata: md,
		Commands: []*cli.Command{
			{
				Name:      "install",
				Usage:     "set up the whisper virtual environment and shell alias",
				UsageText: "dotctl transcribe install [--venv DIR] [--rc FILE] [--package PKG]",
				Metadata:  md,
				Flags: []cli.Flag{
					venvFlag(),
					&cli.StringFlag{
						Name:  "rc",
						Usage: "shell rc file for the alias (default ~/.zshrc, ~/.bashrc for bash)",
					},
					&cli.StringFlag{
						Name:    "package",
						Usage:   "pip package providing whisper",
						Sources: Sources("transcribe", "package", path),
						Value:   transcribe.DefaultPackage,
					},
				},
				Action: transcribeInstallAction,
			},
			{
				Name:      "run",
				Usage:     "transcribe one or more MP3 files",
				UsageText: "dotctl transcribe run [--model M] [--timestamps] [--batch --output FILE] <file.mp3>...",
				Metadata:  md,
				Flags: []cli.Flag{
					venvFlag(),
					&cli.StringFlag{
						Name:    "model",
						Aliases: []string{"m"},
						Usage:   "whisper model (tiny, base, small, medium, large)",
						Sources: Sources("transcribe", "model", path),
						Value:   transcribe.DefaultModel,
						Validator: func(value string) error {
							return FlagValidators(value, oneOf(transcribe.Models))
						},
					},
					&cli.StringFlag{
						Name:    "device",
						Usage:   "compute device (auto, cpu, cuda, mps)",
						Sources: Sources("transcribe", "device", path),
						Value:   transcribe.DefaultDevice,
						Validator: func(value string) error {
							return FlagValidators(value, oneOf(transcribe.Devices))
						},
					},
					&cli.BoolFlag{
						Name:    "timestamps",
						Aliases: []string{"t"},
						Usage:   "prefix lines with [MM:SS -> MM:SS]",
						Sources: Sources("transcribe", "timestamps", path),
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Usage:   "let whisper print segments while decoding",
						Sources: Sources("transcribe", "verbose", path),
					},
					&cli.BoolFlag{
						Name:    "batch",
						Aliases: []string{"b"},
						Usage:   "concatenate all transcripts into --output",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file",
					},
				},
				Action: transcribeRunAction,
			},
		},
	}
}
