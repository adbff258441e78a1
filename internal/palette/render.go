// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"embed"
	"fmt"
	"io"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("").Option("missingkey=error").ParseFS(templatesFS, "templates/*.tmpl"))

// Format is a theme file flavor.
type Format string

const (
	Kitty Format = "kitty"
	Tmux  Format = "tmux"
	Nvim  Format = "nvim"
)

// DefaultThemeName names the Neovim colorscheme when none is given.
const DefaultThemeName = "wallpaper"

// Render writes s as a theme file of the given format. name is the
// colorscheme name used by the Neovim format.
func Render(w io.Writer, f Format, s Scheme, name string) error {
	t := templates.Lookup(string(f) + ".tmpl")
	if t == nil {
		return fmt.Errorf("unknown theme format %q", f)
	}
	if name == "" {
		name = DefaultThemeName
	}

	data := s.Map()
	data["name"] = name
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s theme: %w", f, err)
	}
	return nil
}
