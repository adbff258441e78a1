// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package binaural

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotctl/dotctl/internal/runner"
	"github.com/dotctl/dotctl/internal/runner/runnertest"
)

func defaultTone() Tone {
	return Tone{Carrier: DefaultCarrier, Beat: DefaultBeat, Duration: DefaultDuration, Volume: DefaultVolume}
}

func TestToneValidate(t *testing.T) {
	assert.NoError(t, defaultTone().Validate())

	tests := []struct {
		name   string
		mutate func(*Tone)
		errMsg string
	}{
		{"carrier too low", func(t *Tone) { t.Carrier = 20 }, "carrier"},
		{"carrier too high", func(t *Tone) { t.Carrier = 1500.5 }, "carrier"},
		{"zero beat", func(t *Tone) { t.Beat = 0 }, "beat"},
		{"beat too high", func(t *Tone) { t.Beat = 41 }, "beat"},
		{"zero volume", func(t *Tone) { t.Volume = 0 }, "volume"},
		{"loud volume", func(t *Tone) { t.Volume = 1.5 }, "volume"},
		{"negative duration", func(t *Tone) { t.Duration = -time.Second }, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := defaultTone()
			tt.mutate(&tone)
			err := tone.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestToneArgs(t *testing.T) {
	tone := Tone{Carrier: 200, Beat: 7.5, Duration: 90 * time.Second, Volume: 0.3}
	assert.Equal(t, 207.5, tone.Right())
	assert.Equal(t, "-q -n -c 2 synth 90 sine 200 sine 207.5 vol 0.3", strings.Join(tone.Args(), " "))

	tone.Duration = 0
	assert.Equal(t, "-q -n -c 2 synth sine 200 sine 207.5 vol 0.3", strings.Join(tone.Args(), " "))
}

// newTestController returns a controller whose process table is a set of
// live pids managed by the test.
func newTestController(t *testing.T, fake *runnertest.Fake) (*Controller, map[int]bool, *[]int) {
	t.Helper()
	live := map[int]bool{}
	var killed []int

	c := NewController(t.TempDir(), fake)
	c.alive = func(pid int) bool { return live[pid] }
	c.terminate = func(pid int) error {
		killed = append(killed, pid)
		delete(live, pid)
		return nil
	}
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c, live, &killed
}

func TestStart(t *testing.T) {
	fake := runnertest.New()
	c, _, _ := newTestController(t, fake)

	st, err := c.Start(context.Background(), defaultTone())
	require.NoError(t, err)
	assert.Equal(t, 4242, st.PID)
	assert.Equal(t, 200.0, st.Carrier)

	b, err := os.ReadFile(c.PIDFile())
	require.NoError(t, err)
	assert.Equal(t, "4242\n", string(b))

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "start", fake.Calls[0].Mode)
	assert.Equal(t, "play -q -n -c 2 synth 1800 sine 200 sine 210 vol 0.3", fake.Calls[0].Line())
}

func TestStart_StopsPrevious(t *testing.T) {
	fake := runnertest.New()
	c, live, killed := newTestController(t, fake)

	fake.PID = 100
	_, err := c.Start(context.Background(), defaultTone())
	require.NoError(t, err)
	live[100] = true

	fake.PID = 200
	st, err := c.Start(context.Background(), defaultTone())
	require.NoError(t, err)
	assert.Equal(t, 200, st.PID)
	assert.Equal(t, []int{100}, *killed)
}

func TestStart_MissingPlayer(t *testing.T) {
	fake := runnertest.New()
	fake.Missing["play"] = true
	c, _, _ := newTestController(t, fake)

	_, err := c.Start(context.Background(), defaultTone())
	var missing *runner.MissingToolError
	require.True(t, errors.As(err, &missing))
	assert.NoFileExists(t, c.PIDFile())
}

func TestStart_InvalidTone(t *testing.T) {
	fake := runnertest.New()
	c, _, _ := newTestController(t, fake)

	tone := defaultTone()
	tone.Beat = 100
	_, err := c.Start(context.Background(), tone)
	assert.Error(t, err)
	assert.Empty(t, fake.Calls)
}

func TestStop(t *testing.T) {
	fake := runnertest.New()
	c, live, killed := newTestController(t, fake)

	stopped, err := c.Stop()
	assert.NoError(t, err)
	assert.False(t, stopped, "nothing running")

	_, err = c.Start(context.Background(), defaultTone())
	require.NoError(t, err)
	live[4242] = true

	stopped, err = c.Stop()
	assert.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, []int{4242}, *killed)
	assert.NoFileExists(t, c.PIDFile())
}

func TestStop_AlreadyGone(t *testing.T) {
	fake := runnertest.New()
	c, _, killed := newTestController(t, fake)

	_, err := c.Start(context.Background(), defaultTone())
	require.NoError(t, err)

	stopped, err := c.Stop()
	assert.NoError(t, err)
	assert.True(t, stopped)
	assert.Empty(t, *killed)
	assert.NoFileExists(t, c.PIDFile())
}

func TestStop_CorruptPIDFile(t *testing.T) {
	c, _, _ := newTestController(t, runnertest.New())
	require.NoError(t, os.MkdirAll(c.Dir, 0o755))
	require.NoError(t, os.WriteFile(c.PIDFile(), []byte("garbage"), 0o644))

	stopped, err := c.Stop()
	assert.False(t, stopped)
	assert.NoError(t, err)
	assert.NoFileExists(t, c.PIDFile())
}

func TestStatus_CorruptPIDFile(t *testing.T) {
	c, _, _ := newTestController(t, runnertest.New())
	require.NoError(t, os.MkdirAll(c.Dir, 0o755))
	require.NoError(t, os.WriteFile(c.PIDFile(), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, "tone.json"), []byte(`{"pid":1}`), 0o644))

	_, running, err := c.Status()
	assert.NoError(t, err)
	assert.False(t, running)
	assert.NoFileExists(t, c.PIDFile())
	assert.NoFileExists(t, filepath.Join(c.Dir, "tone.json"))
}

func TestStatus(t *testing.T) {
	fake := runnertest.New()
	c, live, _ := newTestController(t, fake)

	_, running, err := c.Status()
	assert.NoError(t, err)
	assert.False(t, running)

	_, err = c.Start(context.Background(), Tone{Carrier: 150, Beat: 4, Volume: 0.5})
	require.NoError(t, err)
	live[4242] = true

	st, running, err := c.Status()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 150.0, st.Carrier)
	assert.Equal(t, 4.0, st.Beat)
	assert.Equal(t, 2026, st.StartedAt.Year())

	delete(live, 4242)
	_, running, err = c.Status()
	assert.NoError(t, err)
	assert.False(t, running)
	assert.NoFileExists(t, c.PIDFile(), "stale pid file removed")
}
