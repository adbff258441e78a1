// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/timelapse"
)

// lapseCommandAction is the action handler for the "lapse" subcommand. It
// speeds up a video with ffmpeg and reports the resulting file.
func lapseCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.Args().Len() != 1 {
		return usageErrorf("usage: %s", cmd.UsageText)
	}

	speed, err := timelapse.ParseSpeed(cmd.String("speed"))
	if err != nil {
		return asUsage(err)
	}

	preset := timelapse.PresetQuality
	if cmd.Bool("fast") {
		preset = timelapse.PresetFast
	}

	opts := timelapse.Options{
		Input:  cmd.Args().First(),
		Output: cmd.String("output"),
		Speed:  speed,
		FPS:    cmd.Int("fps"),
		Preset: preset,
	}
	if err := opts.Validate(); err != nil {
		return asUsage(err)
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "Creating %sx time-lapse (%s preset)...\n", timelapse.FormatSpeed(speed), preset)

	out, err := timelapse.Run(ctx, getRunner(m), opts)
	if err != nil {
		return err
	}

	if info, err := os.Stat(out); err == nil {
		fmt.Fprintf(w, "✓ Time-lapse created: %s (%s)\n", out, humanize.Bytes(uint64(info.Size())))
	} else {
		fmt.Fprintf(w, "✓ Time-lapse created: %s\n", out)
	}
	return nil
}

// lapseCommandBuilder constructs the "lapse" subcommand.
func lapseCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	return &cli.Command{
		Name:      "lapse",
		Usage:     "turn a video into a time-lapse",
		UsageText: "dotctl lapse [--speed N] [--fast] [--fps N] [--output FILE] <video>",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "speed",
				Aliases: []string{"s"},
				Usage:   "speed-up factor",
				Sources: Sources("lapse", "speed", path),
				Value:   timelapse.FormatSpeed(timelapse.DefaultSpeed),
			},
			&cli.BoolFlag{
				Name:    "fast",
				Aliases: []string{"f"},
				Usage:   "use the fast encoder preset instead of the quality one",
				Sources: Sources("lapse", "fast", path),
			},
			&cli.IntFlag{
				Name:    "fps",
				Usage:   "output frame rate",
				Sources: Sources("lapse", "fps", path),
				Value:   timelapse.DefaultFPS,
				Validator: func(value int) error {
					if value < 1 || value > timelapse.MaxFPS {
						return fmt.Errorf("must be between 1 and %d", timelapse.MaxFPS)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default <stem>_<speed>x<ext>)",
			},
		},
		Action: lapseCommandAction,
	}
}
