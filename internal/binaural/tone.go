// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binaural

import (
	"fmt"
	"strconv"
	"time"
)

const (
	DefaultCarrier  = 200.0
	DefaultBeat     = 10.0
	DefaultVolume   = 0.3
	DefaultDuration = 30 * time.Minute

	MinCarrier = 20.0
	MaxCarrier = 1500.0
	MaxBeat    = 40.0
	MaxAudible = 20000.0
)

// Tone describes one binaural beat.
type Tone struct {
	Carrier  float64
	Beat     float64
	Duration time.Duration
	Volume   float64
}

// Right returns the right-channel frequency.
func (t Tone) Right() float64 {
	return t.Carrier + t.Beat
}

// Validate checks the tone parameters.
func (t Tone) Validate() error {
	if t.Carrier <= MinCarrier || t.Carrier > MaxCarrier {
		return fmt.Errorf("carrier must be above %s Hz and at most %s Hz, got %s",
			hz(MinCarrier), hz(MaxCarrier), hz(t.Carrier))
	}
	if t.Beat <= 0 || t.Beat > MaxBeat {
		return fmt.Errorf("beat must be above 0 Hz and at most %s Hz, got %s", hz(MaxBeat), hz(t.Beat))
	}
	if t.Right() > MaxAudible {
		return fmt.Errorf("carrier+beat must not exceed %s Hz", hz(MaxAudible))
	}
	if t.Volume <= 0 || t.Volume > 1 {
		return fmt.Errorf("volume must be above 0 and at most 1, got %s", hz(t.Volume))
	}
	if t.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

// Args is the play(1) argument vector. A zero Duration plays until stopped.
func (t Tone) Args() []string {
	args := []string{"-q", "-n", "-c", "2", "synth"}
	if t.Duration > 0 {
		args = append(args, hz(t.Duration.Seconds()))
	}
	return append(args,
		"sine", hz(t.Carrier),
		"sine", hz(t.Right()),
		"vol", hz(t.Volume),
	)
}

func hz(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
