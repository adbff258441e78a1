// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/runner"
	"github.com/dotctl/dotctl/internal/runner/runnertest"
)

// harness runs the command tree against a fake runner and a throwaway home.
type harness struct {
	t     *testing.T
	fake  *runnertest.Fake
	home  string
	state string
	cfg   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("DOTCTL_CFG_FILE", filepath.Join(home, "missing.yaml"))
	t.Setenv("DOTCTL_CACHE_DIR", filepath.Join(home, "cache"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	return &harness{
		t:     t,
		fake:  runnertest.New(),
		home:  home,
		state: filepath.Join(home, "state"),
	}
}

// withConfig writes a config file whose path feeds the flag value sources.
func (h *harness) withConfig(body string) {
	h.t.Helper()
	h.cfg = filepath.Join(h.home, "dotctl.yaml")
	require.NoError(h.t, os.WriteFile(h.cfg, []byte(body), 0o644))
	h.t.Setenv("DOTCTL_CFG_FILE", h.cfg)
	config.Config = config.Type{}
	_, err := config.Load()
	require.NoError(h.t, err)
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var cfg config.Type
	if h.cfg != "" {
		cfg = config.Config
	}
	m := meta.Meta{
		Args:        append([]string{"dotctl"}, args...),
		Config:      cfg,
		Context:     context.Background(),
		StartingDir: h.home,
		StateDir:    h.state,
		Runner:      h.fake,
	}

	var out bytes.Buffer
	app := NewApp(m)
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), m.Args)
	return out.String(), err
}

func (h *harness) file(name, body string) string {
	h.t.Helper()
	p := filepath.Join(h.home, name)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(h.t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func isUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func TestRepeatableFlags(t *testing.T) {
	got := RepeatableFlags()
	assert.True(t, got["--require"])
	assert.True(t, got["-r"])
	assert.False(t, got["--output"])
	assert.False(t, got["-o"])
}

func TestNewApp_Commands(t *testing.T) {
	app := NewApp(meta.Meta{})
	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"backup", "doctor", "lapse", "palette", "theme", "tone", "transcribe", "completion"}, names)

	for _, c := range app.Commands {
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], "flags of %s are sorted", c.Name)
		}
	}
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))

	app := NewApp(meta.Meta{StateDir: "/tmp/x"})
	assert.Equal(t, "/tmp/x", GetMeta(app).StateDir)
	assert.Equal(t, "/tmp/x", GetMeta(app.Commands[0]).StateDir)
}

func TestAsUsage(t *testing.T) {
	assert.NoError(t, asUsage(nil))

	err := asUsage(errors.New("bad"))
	assert.True(t, isUsage(err))
	assert.EqualError(t, err, "bad")

	again := asUsage(err)
	assert.Same(t, err, again)

	assert.False(t, isUsage(&runner.MissingToolError{Tool: "ffmpeg"}))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "DOTCTL_LAPSE_SPEED", EnvName("lapse", "speed"))
	assert.Equal(t, "DOTCTL_THEME_NO_RELOAD", EnvName("theme", "no-reload"))
	assert.Equal(t, "DOTCTL_OUTPUT", EnvName("", "output"))
}

func TestSources(t *testing.T) {
	chain := Sources("lapse", "speed", "")
	assert.Len(t, chain.Chain, 1)

	chain = Sources("lapse", "speed", "/etc/dotctl.yaml")
	assert.Len(t, chain.Chain, 3)

	chain = Sources("", "output", "/etc/dotctl.yaml")
	assert.Len(t, chain.Chain, 2)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("yaml"))
	assert.ErrorContains(t, OutputValidator("raw"), "must be one of")
	assert.NoError(t, FlagValidators(3, positive))
	assert.Error(t, FlagValidators(0, positive))
	assert.Error(t, oneOf([]string{"a"})("b"))
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _dotctl dotctl")

	out, err = h.run("completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef dotctl")

	t.Setenv("SHELL", "/bin/zsh")
	out, err = h.run("completion")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _dotctl dotctl")

	_, err = h.run("completion", "fish")
	assert.True(t, isUsage(err))
}
