// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/binaural"
	"github.com/dotctl/dotctl/internal/meta"
)

func toneController(cmd *cli.Command) *binaural.Controller {
	m := GetMeta(cmd)
	return binaural.NewController(m.StateDir, getRunner(m))
}

func toneStartAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return usageErrorf("usage: %s", cmd.UsageText)
	}

	t := binaural.Tone{
		Carrier:  cmd.Float("carrier"),
		Beat:     cmd.Float("beat"),
		Duration: cmd.Duration("duration"),
		Volume:   cmd.Float("volume"),
	}
	if err := t.Validate(); err != nil {
		return asUsage(err)
	}

	st, err := toneController(cmd).Start(ctx, t)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "Playing binaural beat: left %s Hz, right %s Hz (beat %s Hz)\n",
		hz(t.Carrier), hz(t.Right()), hz(t.Beat))
	if t.Duration > 0 {
		fmt.Fprintf(w, "Duration: %s\n", t.Duration)
	} else {
		fmt.Fprintln(w, "Duration: until stopped")
	}
	fmt.Fprintf(w, "PID: %d (stop with 'dotctl tone stop')\n", st.PID)
	return nil
}

func toneStopAction(ctx context.Context, cmd *cli.Command) error {
	stopped, err := toneController(cmd).Stop()
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if !stopped {
		fmt.Fprintln(w, "no tone running")
		return nil
	}
	fmt.Fprintln(w, "✓ tone stopped")
	return nil
}

func toneStatusAction(ctx context.Context, cmd *cli.Command) error {
	st, running, err := toneController(cmd).Status()
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if !running {
		fmt.Fprintln(w, "not running")
		return nil
	}

	fmt.Fprintf(w, "running: pid %d, carrier %s Hz, beat %s Hz", st.PID, hz(st.Carrier), hz(st.Beat))
	if !st.StartedAt.IsZero() {
		fmt.Fprintf(w, ", started %s", humanize.Time(st.StartedAt))
	}
	fmt.Fprintln(w)
	return nil
}

func hz(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toneCommandBuilder constructs the "tone" command and its subcommands.
func toneCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	md := map[string]any{"meta": m}

	return &cli.Command{
		Name:     "tone",
		Usage:    "play a binaural beat in the background",
		Metadata: md,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "start playing (replaces a running tone)",
				UsageText: "dotctl tone start [--carrier HZ] [--beat HZ] [--duration D] [--volume V]",
				Metadata:  md,
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:    "carrier",
						Aliases: []string{"c"},
						Usage:   "left channel frequency in Hz",
						Sources: Sources("tone", "carrier", path),
						Value:   binaural.DefaultCarrier,
					},
					&cli.FloatFlag{
						Name:    "beat",
						Aliases: []string{"b"},
						Usage:   "beat frequency in Hz, added to the carrier for the right channel",
						Sources: Sources("tone", "beat", path),
						Value:   binaural.DefaultBeat,
					},
					&cli.DurationFlag{
						Name:    "duration",
						Aliases: []string{"d"},
						Usage:   "how long to play, 0 plays until stopped",
						Sources: Sources("tone", "duration", path),
						Value:   binaural.DefaultDuration,
					},
					&cli.FloatFlag{
						Name:    "volume",
						Usage:   "volume between 0 and 1",
						Sources: Sources("tone", "volume", path),
						Value:   binaural.DefaultVolume,
					},
				},
				Action: toneStartAction,
			},
			{
				Name:      "stop",
				Usage:     "stop the running tone",
				UsageText: "dotctl tone stop",
				Metadata:  md,
				Action:    toneStopAction,
			},
			{
				Name:      "status",
				Usage:     "show whether a tone is playing",
				UsageText: "dotctl tone status",
				Metadata:  md,
				Action:    toneStatusAction,
			},
		},
	}
}
