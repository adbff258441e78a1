// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/dotctl/dotctl/internal/config"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// Column selects a row key for text output. Title defaults to Key.
type Column struct {
	Key   string
	Title string
	// Blank renders empty values as blank instead of "-".
	Blank bool
}

// Options controls rendering.
type Options struct {
	Format  string
	Sort    string
	Color   bool
	Titles  bool
	Padding int
	Header  string
	Footer  string
}

// Write sorts rows and renders them in the requested format. Structured
// formats emit whole rows; text shows only cols.
func Write(w io.Writer, rows []map[string]interface{}, cols []Column, o Options) error {
	if w == nil {
		w = os.Stdout
	}
	if o.Sort != "" {
		SortDataset(rows, o.Sort)
	}

	switch o.Format {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		TableWriter(w, rows, cols, o)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// TableWriter renders rows in tabular form honoring color, titles and
// padding options.
func TableWriter(w io.Writer, rows []map[string]interface{}, cols []Column, o Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if o.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var cells [][]string
	for _, row := range rows {
		line := make([]string, 0, len(cols))
		for _, c := range cols {
			empty := "-"
			if c.Blank {
				empty = ""
			}
			line = append(line, InterfaceToString(row[c.Key], empty))
		}
		cells = append(cells, line)
	}

	if o.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(o.Header))
	}

	pad := o.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if o.Titles {
		headers := make([]string, 0, len(cols))
		for _, c := range cols {
			if c.Title != "" {
				headers = append(headers, c.Title)
			} else {
				headers = append(headers, c.Key)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if o.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(o.Footer))
	}
}

// getColors returns configured color values for table rendering, falling
// back to defaults chosen for the terminal's background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Swatch renders text on a background color for terminal previews. Without
// color the text is returned as is.
func Swatch(hex, text string, color bool) string {
	if !color {
		return text
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(contrastText(hex))).
		Render(text)
}

// contrastText picks black or white text for a hex background.
func contrastText(hex string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return "#ffffff"
	}
	if r*299+g*587+b*114 > 128000 { //nolint:mnd
		return "#000000"
	}
	return "#ffffff"
}
