// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package timelapse

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/runner"
	"github.com/dotctl/dotctl/internal/util"
)

// Preset selects one of the two fixed encoder flag sets.
type Preset string

const (
	PresetQuality Preset = "quality"
	PresetFast    Preset = "fast"
)

const (
	DefaultSpeed = 10.0
	DefaultFPS   = 30
	MaxSpeed     = 1000.0
	MaxFPS       = 240
)

var presetArgs = map[Preset][]string{
	PresetQuality: {"-c:v", "libx264", "-preset", "slow", "-crf", "18", "-pix_fmt", "yuv420p"},
	PresetFast:    {"-c:v", "libx264", "-preset", "ultrafast", "-crf", "26", "-pix_fmt", "yuv420p"},
}

// Options describes one time-lapse encode.
type Options struct {
	Input  string
	Output string
	Speed  float64
	FPS    int
	Preset Preset
}

// ParseSpeed parses a speed factor such as "10" or "2.5".
func ParseSpeed(s string) (float64, error) {
	speed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "x"), 64)
	if err != nil || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, fmt.Errorf("speed must be a number, got %q", s)
	}
	if speed <= 0 || speed > MaxSpeed {
		return 0, fmt.Errorf("speed must be greater than 0 and at most %s, got %q", FormatSpeed(MaxSpeed), s)
	}
	return speed, nil
}

// FormatSpeed renders a speed without trailing zeros: 10 -> "10", 2.5 -> "2.5".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

// OutputName derives "<dir>/<stem>_<speed>x<ext>" from the input path. Inputs
// without an extension produce an .mp4.
func OutputName(input string, speed float64) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".mp4"
	}
	return stem + "_" + FormatSpeed(speed) + "x" + ext
}

// Validate checks the options without touching ffmpeg.
func (o Options) Validate() error {
	if o.Input == "" {
		return errors.New("an input video is required")
	}
	if !util.IsRegularFile(o.Input) {
		return fmt.Errorf("input file not found: %s", o.Input)
	}
	if o.Speed <= 0 || o.Speed > MaxSpeed {
		return fmt.Errorf("speed must be greater than 0 and at most %s", FormatSpeed(MaxSpeed))
	}
	if o.FPS < 1 || o.FPS > MaxFPS {
		return fmt.Errorf("fps must be between 1 and %d", MaxFPS)
	}
	if _, ok := presetArgs[o.Preset]; !ok {
		return fmt.Errorf("unknown preset %q", o.Preset)
	}

	in, _ := filepath.Abs(o.Input)
	out, _ := filepath.Abs(o.output())
	if in == out {
		return fmt.Errorf("output would overwrite the input: %s", o.Output)
	}
	return nil
}

// Filter is the ffmpeg video filter chain.
func (o Options) Filter() string {
	return fmt.Sprintf("setpts=PTS/%s,fps=%d", FormatSpeed(o.Speed), o.FPS)
}

// Args builds the complete ffmpeg argument vector. Audio is always dropped.
func (o Options) Args() []string {
	args := []string{"-hide_banner", "-y",
		"-i", o.Input,
		"-vf", o.Filter(),
	}
	args = append(args, presetArgs[o.Preset]...)
	return append(args, "-an", o.output())
}

func (o Options) output() string {
	if o.Output != "" {
		return o.Output
	}
	return OutputName(o.Input, o.Speed)
}

// Run validates o, checks for ffmpeg and encodes once. It returns the output
// path.
func Run(ctx context.Context, r runner.Runner, o Options) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := runner.Require(r, "ffmpeg"); err != nil {
		return "", err
	}

	out := o.output()
	log.Infof("timelapse: %s -> %s speed=%s preset=%s", o.Input, out, FormatSpeed(o.Speed), o.Preset)
	if err := r.Run(ctx, "ffmpeg", o.Args()...); err != nil {
		return "", err
	}
	return out, nil
}
