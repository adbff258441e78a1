// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/output"
	"github.com/dotctl/dotctl/internal/palette"
	"github.com/dotctl/dotctl/internal/theme"
	"github.com/dotctl/dotctl/internal/util"
)

const (
	defaultKittyOutput = "colors-wallpaper.conf"
	tmuxOutput         = "colors-wallpaper.tmux.conf"
	swatchCount        = 8
)

type generated struct {
	kind string
	path string
}

func paletteCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.Args().Len() != 1 {
		return usageErrorf("usage: %s", cmd.UsageText)
	}
	image := cmd.Args().First()
	if !util.IsRegularFile(image) {
		return usageErrorf("image file not found: %s", image)
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "Generating color palette from: %s\n", image)

	colors, cached, err := palette.Load(image, cmd.Int("colors"))
	if err != nil {
		return err
	}
	log.Debugf("palette: colors=%d cached=%t", len(colors), cached)

	scheme, err := palette.NewScheme(colors)
	if err != nil {
		return err
	}

	name := cmd.String("theme-name")
	all := cmd.Bool("all")

	var files []generated
	write := func(kind string, f palette.Format, path string) error {
		if err := renderFile(f, scheme, name, path); err != nil {
			return err
		}
		files = append(files, generated{kind, path})
		return nil
	}

	tmux, nvim := cmd.Bool("tmux"), cmd.Bool("nvim")
	if all || !(tmux || nvim) {
		if err := write("kitty", palette.Kitty, cmd.String("output")); err != nil {
			return err
		}
	}
	if all || tmux {
		if err := write("tmux", palette.Tmux, tmuxOutput); err != nil {
			return err
		}
	}
	if all || nvim {
		if err := write("nvim", palette.Nvim, name+".vim"); err != nil {
			return err
		}
	}
	if cmd.Bool("install") {
		dir, err := kittyThemesDir()
		if err != nil {
			return err
		}
		if err := write("kitty theme", palette.Kitty, filepath.Join(dir, name+".conf")); err != nil {
			return err
		}
	}

	printPaletteSummary(w, scheme, files, name)
	return nil
}

// renderFile writes one theme file, creating its directory.
func renderFile(f palette.Format, s palette.Scheme, name, path string) error {
	var buf bytes.Buffer
	if err := palette.Render(&buf, f, s, name); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// kittyThemesDir returns the themes directory of the kitty target.
func kittyThemesDir() (string, error) {
	targets, err := theme.LoadTargets()
	if err != nil {
		return "", err
	}
	kitty, err := theme.Only(targets, "kitty")
	if err != nil {
		return "", err
	}
	return kitty[0].ThemesDir, nil
}

func printPaletteSummary(w io.Writer, s palette.Scheme, files []generated, name string) {
	ratio := s.Contrast()
	fmt.Fprintf(w, "✓ Extracted %d colors from wallpaper\n", len(s.Palette))
	fmt.Fprintf(w, "✓ Background: %s\n", s.Background)
	fmt.Fprintf(w, "✓ Foreground: %s\n", s.Foreground)
	fmt.Fprintf(w, "✓ Contrast ratio: %.2f:1 (WCAG %s)\n", ratio, palette.Grade(ratio))

	fmt.Fprintln(w, "\nColor palette:")
	color := output.IsTerminal(w)
	for i, hex := range s.PaletteHex() {
		if i == swatchCount {
			break
		}
		fmt.Fprintf(w, "  %d: %s\n", i+1, output.Swatch(hex, " "+hex+" ", color))
	}

	fmt.Fprintln(w, "\nGenerated files:")
	for _, f := range files {
		fmt.Fprintf(w, "  %s: %s\n", f.kind, f.path)
	}

	for _, f := range files {
		switch f.kind {
		case "kitty":
			fmt.Fprintf(w, "\nKitty: Add to your kitty.conf:\n  include %s\n", f.path)
		case "tmux":
			fmt.Fprintf(w, "\nTmux: Add to your ~/.tmux.conf:\n  source-file ~/%s\n", f.path)
		case "nvim":
			fmt.Fprintf(w, "\nNeovim: Copy to ~/.config/nvim/colors/ and add to init.vim:\n  colorscheme %s\n", name)
		case "kitty theme":
			fmt.Fprintf(w, "\nKitty theme installed: dotctl theme switch %s\n", name)
		}
	}
}

// paletteCommandBuilder constructs the "palette" subcommand.
func paletteCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	return &cli.Command{
		Name:      "palette",
		Usage:     "generate terminal color themes from a wallpaper",
		UsageText: "dotctl palette [--colors N] [--output FILE] [--tmux] [--nvim] [--all] [--install] <image>",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "colors",
				Aliases: []string{"c"},
				Usage:   "number of colors to extract",
				Sources: Sources("palette", "colors", path),
				Value:   palette.DefaultColors,
				Validator: func(value int) error {
					return FlagValidators(value, positive)
				},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file for the kitty theme",
				Value:   defaultKittyOutput,
			},
			&cli.BoolFlag{
				Name:  "tmux",
				Usage: "generate a tmux theme (kitty only with --all)",
			},
			&cli.BoolFlag{
				Name:  "nvim",
				Usage: "generate a neovim colorscheme (kitty only with --all)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "generate kitty, tmux and neovim themes",
			},
			&cli.BoolFlag{
				Name:    "install",
				Usage:   "also install the kitty theme for 'dotctl theme switch'",
				Sources: Sources("palette", "install", path),
			},
			&cli.StringFlag{
				Name:    "theme-name",
				Usage:   "theme name for neovim and the installed kitty theme",
				Sources: Sources("palette", "theme-name", path),
				Value:   palette.DefaultThemeName,
			},
		},
		Action: paletteCommandAction,
	}
}
