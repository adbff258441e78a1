// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/util"
)

const currentPlaceholder = "{current}"

// Target is one program whose theme dotctl manages.
type Target struct {
	Name      string `yaml:"name" json:"name"`
	ThemesDir string `yaml:"themes_dir" json:"themes_dir"`
	Current   string `yaml:"current" json:"current"`
	Ext       string `yaml:"ext" json:"ext"`
	// Reload is the argv that makes the running program pick up Current.
	// "{current}" is replaced with the Current path.
	Reload []string `yaml:"reload" json:"reload"`
	// RequireEnv names an env var that must be set for Reload to run, such as
	// TMUX for a reload that only makes sense inside a tmux session.
	RequireEnv string `yaml:"require_env" json:"require_env"`
}

// DefaultTargets returns the kitty and tmux targets.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:      "kitty",
			ThemesDir: "~/.config/kitty/themes",
			Current:   "~/.config/kitty/current-theme.conf",
			Ext:       ".conf",
			Reload:    []string{"kitty", "@", "set-colors", "--all", "--configured", currentPlaceholder},
		},
		{
			Name:       "tmux",
			ThemesDir:  "~/.config/tmux/themes",
			Current:    "~/.config/tmux/current-theme.conf",
			Ext:        ".conf",
			Reload:     []string{"tmux", "source-file", currentPlaceholder},
			RequireEnv: "TMUX",
		},
	}
}

// LoadTargets returns theme.targets from the config file, or the defaults.
// Paths are expanded and a missing Ext defaults to ".conf".
func LoadTargets() ([]Target, error) {
	targets := DefaultTargets()

	var configured []Target
	found, err := config.Decode("theme.targets", &configured)
	if err != nil {
		return nil, err
	}
	if found && len(configured) > 0 {
		targets = configured
	}

	return normalize(targets)
}

// Only filters targets by name. An empty name returns all of them.
func Only(targets []Target, name string) ([]Target, error) {
	if name == "" {
		return targets, nil
	}
	var names []string
	for _, t := range targets {
		if t.Name == name {
			return []Target{t}, nil
		}
		names = append(names, t.Name)
	}
	return nil, fmt.Errorf("unknown theme target %q (have %s)", name, strings.Join(names, ", "))
}

func normalize(targets []Target) ([]Target, error) {
	out := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t.Name == "" || t.ThemesDir == "" || t.Current == "" {
			return nil, errors.New("theme targets need name, themes_dir and current")
		}
		t.ThemesDir = util.ExpandHome(t.ThemesDir)
		t.Current = util.ExpandHome(t.Current)
		if t.Ext == "" {
			t.Ext = ".conf"
		}
		out = append(out, t)
	}
	return out, nil
}

// reloadArgs substitutes the Current path into Reload.
func (t Target) reloadArgs() []string {
	args := make([]string, len(t.Reload))
	for i, a := range t.Reload {
		args[i] = strings.ReplaceAll(a, currentPlaceholder, t.Current)
	}
	return args
}
