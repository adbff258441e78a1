// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binaural

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/runner"
)

const (
	pidFileName   = "tone.pid"
	stateFileName = "tone.json"
	player        = "play"
)

var errCorruptPID = errors.New("corrupt pid file")

// State describes a running tone. It is persisted next to the PID file.
type State struct {
	PID       int           `json:"pid"`
	Carrier   float64       `json:"carrier"`
	Beat      float64       `json:"beat"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
}

// Controller starts, stops and inspects the background player.
type Controller struct {
	Dir    string
	Runner runner.Runner

	alive     func(int) bool
	terminate func(int) error
	now       func() time.Time
}

// NewController returns a Controller keeping its files in dir.
func NewController(dir string, r runner.Runner) *Controller {
	return &Controller{
		Dir:       dir,
		Runner:    r,
		alive:     runner.Alive,
		terminate: runner.Terminate,
		now:       time.Now,
	}
}

// PIDFile is the path of the PID file.
func (c *Controller) PIDFile() string {
	return filepath.Join(c.Dir, pidFileName)
}

func (c *Controller) stateFile() string {
	return filepath.Join(c.Dir, stateFileName)
}

// Start validates t, stops any tone that is still playing and launches a new
// one in the background.
func (c *Controller) Start(ctx context.Context, t Tone) (State, error) {
	if err := t.Validate(); err != nil {
		return State{}, err
	}
	if err := runner.Require(c.Runner, player); err != nil {
		return State{}, err
	}

	if prev, running, err := c.Status(); err == nil && running {
		log.Infof("stopping previous tone: pid=%d", prev.PID)
		if _, err := c.Stop(); err != nil {
			return State{}, err
		}
	}

	pid, err := c.Runner.Start(ctx, player, t.Args()...)
	if err != nil {
		return State{}, err
	}

	st := State{
		PID:       pid,
		Carrier:   t.Carrier,
		Beat:      t.Beat,
		Duration:  t.Duration,
		StartedAt: c.now(),
	}
	if err := c.write(st); err != nil {
		// The player is already running; do not leave it orphaned without a
		// PID file.
		_ = c.terminate(pid)
		return State{}, err
	}
	return st, nil
}

// Stop signals the recorded player and removes the PID file. It returns false
// when no usable PID file existed. A process that already exited is not an
// error.
func (c *Controller) Stop() (bool, error) {
	pid, err := c.readPID()
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if errors.Is(err, errCorruptPID) {
		log.WithError(err).Warnf("removing unreadable tone pid file")
		c.clear()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if c.alive(pid) {
		if err := c.terminate(pid); err != nil {
			log.WithError(err).Warnf("failed to signal tone pid=%d", pid)
		}
	} else {
		log.Debugf("tone pid=%d already gone", pid)
	}

	c.clear()
	return true, nil
}

// Status returns the recorded state and whether the player is still alive. A
// stale or corrupt PID file is cleaned up.
func (c *Controller) Status() (State, bool, error) {
	pid, err := c.readPID()
	if errors.Is(err, os.ErrNotExist) {
		return State{}, false, nil
	}
	if errors.Is(err, errCorruptPID) {
		log.WithError(err).Warnf("removing unreadable tone pid file")
		c.clear()
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}

	st := State{PID: pid}
	if b, err := os.ReadFile(c.stateFile()); err == nil {
		if err := json.Unmarshal(b, &st); err != nil {
			log.Debugf("tone state unreadable: %v", err)
		}
		st.PID = pid
	}

	if !c.alive(pid) {
		log.Debugf("removing stale tone pid file: pid=%d", pid)
		c.clear()
		return st, false, nil
	}
	return st, true, nil
}

func (c *Controller) readPID() (int, error) {
	b, err := os.ReadFile(c.PIDFile())
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%w %s", errCorruptPID, c.PIDFile())
	}
	return pid, nil
}

func (c *Controller) write(st State) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(c.PIDFile(), []byte(strconv.Itoa(st.PID)+"\n"), 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode tone state: %w", err)
	}
	if err := os.WriteFile(c.stateFile(), b, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write tone state: %w", err)
	}
	return nil
}

func (c *Controller) clear() {
	for _, p := range []string{c.PIDFile(), c.stateFile()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("failed to remove %s", p)
		}
	}
}
