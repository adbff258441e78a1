// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/output"
	"github.com/dotctl/dotctl/internal/picker"
	"github.com/dotctl/dotctl/internal/theme"
)

// pickTheme is the interactive chooser used by "theme switch" without a name.
var pickTheme = picker.Select

var themeColumns = []output.Column{
	{Key: "mark", Title: " ", Blank: true},
	{Key: "target", Title: "TARGET"},
	{Key: "name", Title: "THEME"},
}

// themeTargets loads the configured targets and applies --target.
func themeTargets(cmd *cli.Command) ([]theme.Target, error) {
	targets, err := theme.LoadTargets()
	if err != nil {
		return nil, err
	}
	targets, err = theme.Only(targets, cmd.String("target"))
	return targets, asUsage(err)
}

func themeListAction(ctx context.Context, cmd *cli.Command) error {
	targets, err := themeTargets(cmd)
	if err != nil {
		return err
	}

	themes, err := theme.List(targets)
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, 0, len(themes))
	for _, th := range themes {
		mark := ""
		if th.Current {
			mark = "*"
		}
		rows = append(rows, map[string]interface{}{
			"mark":    mark,
			"target":  th.Target,
			"name":    th.Name,
			"path":    th.Path,
			"current": th.Current,
		})
	}

	o := outputOptions(cmd)
	if o.Format == "text" || o.Format == "" {
		for _, r := range rows {
			delete(r, "current")
			delete(r, "path")
		}
	} else {
		for _, r := range rows {
			delete(r, "mark")
		}
	}
	return output.Write(stdout(cmd), rows, themeColumns, o)
}

func themeSwitchAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	targets, err := themeTargets(cmd)
	if err != nil {
		return err
	}

	name := cmd.Args().First()
	if cmd.Args().Len() > 1 {
		return usageErrorf("usage: %s", cmd.UsageText)
	}
	if name == "" {
		if !isTerminal() {
			return usageErrorf("a theme name is required")
		}
		name, err = chooseTheme(targets)
		if err != nil || name == "" {
			return err
		}
	}

	switched, err := theme.Switch(targets, name)
	if err != nil {
		return asUsage(err)
	}

	w := stdout(cmd)
	for _, t := range switched {
		fmt.Fprintf(w, "✓ %s: %s\n", t.Name, name)
	}

	if cmd.Bool("no-reload") {
		return nil
	}
	reportApply(w, theme.Apply(ctx, getRunner(m), switched))
	return nil
}

// chooseTheme lists the themes of the first target that has any and lets the
// user pick one. An empty name means the user quit.
func chooseTheme(targets []theme.Target) (string, error) {
	for _, t := range targets {
		themes, err := theme.List([]theme.Target{t})
		if err != nil {
			return "", err
		}
		if len(themes) == 0 {
			continue
		}

		items := make([]picker.Item, len(themes))
		start := 0
		for i, th := range themes {
			items[i] = picker.Item{Label: th.Name}
			if th.Current {
				items[i].Mark = "current"
				start = i
			}
		}

		idx, ok, err := pickTheme("Select a "+t.Name+" theme", items, start)
		if err != nil || !ok {
			return "", err
		}
		return themes[idx].Name, nil
	}
	return "", usageErrorf("no themes found")
}

func themeApplyAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	targets, err := themeTargets(cmd)
	if err != nil {
		return err
	}
	reportApply(stdout(cmd), theme.Apply(ctx, getRunner(m), targets))
	return nil
}

// reportApply prints one line per target. Reload failures are warnings.
func reportApply(w io.Writer, results []theme.ApplyResult) {
	for _, r := range results {
		switch {
		case r.Applied:
			fmt.Fprintf(w, "✓ %s reloaded\n", r.Target)
		case r.Err != nil:
			log.Warnf("%s reload failed: %v", r.Target, r.Err)
			fmt.Fprintf(w, "! %s reload failed: %v\n", r.Target, r.Err)
		default:
			fmt.Fprintf(w, "- %s not reloaded: %s\n", r.Target, r.Reason)
		}
	}
}

func themeDiffAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 { //nolint:mnd
		return usageErrorf("usage: %s", cmd.UsageText)
	}

	targets, err := themeTargets(cmd)
	if err != nil {
		return err
	}

	a, err := resolveThemeFile(targets, cmd.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := resolveThemeFile(targets, cmd.Args().Get(1))
	if err != nil {
		return err
	}

	diff, changed, err := theme.DiffFiles(a, b, cmd.Bool("color"))
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if !changed {
		fmt.Fprintln(w, "no differences")
		return nil
	}
	fmt.Fprint(w, diff)
	return nil
}

// resolveThemeFile accepts either a path or the name of a theme in one of the
// targets' themes directories.
func resolveThemeFile(targets []theme.Target, arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}
	for _, t := range targets {
		p := filepath.Join(t.ThemesDir, arg+t.Ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", usageErrorf("theme file not found: %s", arg)
}

func themeWatchAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	targets, err := themeTargets(cmd)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	r := getRunner(m)
	watcher, err := theme.NewWatcher(targets, cmd.Duration("debounce"), func(t theme.Target) {
		log.Infof("current theme changed: target=%s", t.Name)
		reportApply(w, theme.Apply(ctx, r, []theme.Target{t}))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Watching current theme files (Ctrl-C to stop)...")
	return watcher.Run(ctx)
}

// themeCommandBuilder constructs the "theme" command and its subcommands.
func themeCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	md := map[string]any{"meta": m}

	targetFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "target",
			Usage: "limit to one theme target (e.g. kitty, tmux)",
		}
	}

	return &cli.Command{
		Name:     "theme",
		Usage:    "list, switch and reload terminal themes",
		Metadata: md,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "list available themes",
				UsageText: "dotctl theme list [--target NAME] [--output text|json|yaml]",
				Metadata:  md,
				Flags:     append(NewGlobalFlags("theme", path), targetFlag()),
				Action:    themeListAction,
			},
			{
				Name:      "switch",
				Usage:     "make a theme current and reload",
				UsageText: "dotctl theme switch [--no-reload] [--target NAME] [name]",
				Metadata:  md,
				Flags: []cli.Flag{
					targetFlag(),
					&cli.BoolFlag{
						Name:    "no-reload",
						Usage:   "only copy the theme, do not signal running programs",
						Sources: Sources("theme", "no-reload", path),
					},
				},
				Action: themeSwitchAction,
			},
			{
				Name:      "apply",
				Usage:     "reload the current theme in running programs",
				UsageText: "dotctl theme apply [--target NAME]",
				Metadata:  md,
				Flags:     []cli.Flag{targetFlag()},
				Action:    themeApplyAction,
			},
			{
				Name:      "diff",
				Usage:     "show changed keys between two theme files",
				UsageText: "dotctl theme diff [--color] <theme|file> <theme|file>",
				Metadata:  md,
				Flags: []cli.Flag{
					targetFlag(),
					&cli.BoolFlag{
						Name:    "color",
						Aliases: []string{"c"},
						Usage:   "enable colored diff output",
						Sources: Sources("theme", "color", path),
					},
				},
				Action: themeDiffAction,
			},
			{
				Name:      "watch",
				Usage:     "reload whenever a current theme file changes",
				UsageText: "dotctl theme watch [--debounce 500ms] [--target NAME]",
				Metadata:  md,
				Flags: []cli.Flag{
					targetFlag(),
					&cli.DurationFlag{
						Name:    "debounce",
						Usage:   "quiet period before reloading",
						Sources: Sources("theme", "debounce", path),
						Value:   theme.DefaultDebounce,
					},
				},
				Action: themeWatchAction,
			},
		},
	}
}
