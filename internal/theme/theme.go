// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/runner"
)

// Theme is one theme file belonging to a target.
type Theme struct {
	Target  string `json:"target"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Current bool   `json:"current"`
}

// List returns the themes of every target. A target whose themes directory
// does not exist contributes nothing. Current marks the theme whose content
// matches the target's current file.
func List(targets []Target) ([]Theme, error) {
	var themes []Theme
	for _, t := range targets {
		entries, err := os.ReadDir(t.ThemesDir)
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("theme dir missing: target=%s dir=%s", t.Name, t.ThemesDir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s themes: %w", t.Name, err)
		}

		current, _ := os.ReadFile(t.Current)
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != t.Ext {
				continue
			}
			p := filepath.Join(t.ThemesDir, e.Name())
			th := Theme{
				Target: t.Name,
				Name:   strings.TrimSuffix(e.Name(), t.Ext),
				Path:   p,
			}
			if len(current) > 0 {
				if b, err := os.ReadFile(p); err == nil && bytes.Equal(b, current) {
					th.Current = true
				}
			}
			themes = append(themes, th)
		}
	}
	return themes, nil
}

// Switch copies theme name over the current file of every target that has
// it and returns those targets. It fails if no target has the theme.
func Switch(targets []Target, name string) ([]Target, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	var switched []Target
	var searched []string
	for _, t := range targets {
		src := filepath.Join(t.ThemesDir, name+t.Ext)
		searched = append(searched, t.ThemesDir)

		data, err := os.ReadFile(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return switched, fmt.Errorf("failed to read %s: %w", src, err)
		}
		if err := writeAtomic(t.Current, data); err != nil {
			return switched, err
		}
		log.Infof("theme switched: target=%s theme=%s", t.Name, name)
		switched = append(switched, t)
	}

	if len(switched) == 0 {
		return nil, fmt.Errorf("theme %q not found in %s", name, strings.Join(searched, ", "))
	}
	return switched, nil
}

// ApplyResult reports what Apply did for one target.
type ApplyResult struct {
	Target  string
	Applied bool
	Reason  string
	Err     error
}

// Apply asks each target's running program to reload its current theme.
// Reload failures are reported per target, never returned as a single error,
// because a terminal that is not running simply has nothing to reload.
func Apply(ctx context.Context, r runner.Runner, targets []Target) []ApplyResult {
	results := make([]ApplyResult, 0, len(targets))
	for _, t := range targets {
		res := ApplyResult{Target: t.Name}
		switch {
		case len(t.Reload) == 0:
			res.Reason = "no reload command"
		case t.RequireEnv != "" && os.Getenv(t.RequireEnv) == "":
			res.Reason = "$" + t.RequireEnv + " not set"
		default:
			args := t.reloadArgs()
			if _, err := r.LookPath(args[0]); err != nil {
				res.Reason = args[0] + " not installed"
				break
			}
			if err := r.Run(ctx, args[0], args[1:]...); err != nil {
				res.Err = err
				break
			}
			res.Applied = true
		}
		results = append(results, res)
	}
	return results
}

func validName(name string) error {
	if name == "" {
		return errors.New("a theme name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid theme name %q", name)
	}
	return nil
}
