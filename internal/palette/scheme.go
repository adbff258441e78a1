// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"errors"
	"fmt"
	"sort"
)

// Scheme is a complete terminal color scheme.
type Scheme struct {
	Palette             []RGB
	Colors              [16]RGB
	Background          RGB
	Foreground          RGB
	Cursor              RGB
	CursorText          RGB
	SelectionBackground RGB
	SelectionForeground RGB
}

// NewScheme builds a scheme from a palette ordered most dominant first. The
// darkest color becomes the background and the brightest the foreground.
// Palette entries 1-6 fill the normal colors, wrapping when the palette is
// short, and their +30 variants fill the bright ones. Finally every colorN and
// the foreground are adjusted to AA contrast against the background.
func NewScheme(palette []RGB) (Scheme, error) {
	if len(palette) < 2 { //nolint:mnd
		return Scheme{}, errors.New("need at least 2 colors in palette")
	}

	byLum := append([]RGB(nil), palette...)
	sort.SliceStable(byLum, func(i, j int) bool { return byLum[i].Luminance() < byLum[j].Luminance() })
	bg, fg := byLum[0], byLum[len(byLum)-1]

	pick := func(i int) RGB { return palette[i%len(palette)] }

	s := Scheme{
		Palette:             palette,
		Background:          bg,
		Foreground:          fg,
		Cursor:              fg,
		CursorText:          bg,
		SelectionBackground: bg.Add(40), //nolint:mnd
		SelectionForeground: fg,
	}
	s.Colors[0] = bg
	s.Colors[7] = fg
	s.Colors[8] = bg.Add(50)  //nolint:mnd
	s.Colors[15] = fg.Add(30) //nolint:mnd
	for i := 1; i <= 6; i++ {
		s.Colors[i] = pick(i)
		s.Colors[i+8] = pick(i).Add(30) //nolint:mnd
	}

	s.ensureReadable()
	return s, nil
}

func (s *Scheme) ensureReadable() {
	lighten := s.Background.Luminance() < 0.5 //nolint:mnd
	for i, c := range s.Colors {
		s.Colors[i] = AdjustForContrast(c, s.Background, ContrastAA, lighten)
	}
	s.Foreground = AdjustForContrast(s.Foreground, s.Background, ContrastAA, lighten)
}

// Contrast is the foreground/background contrast ratio.
func (s Scheme) Contrast() float64 {
	return Contrast(s.Foreground, s.Background)
}

// Map returns the scheme keyed the way kitty names its color settings.
func (s Scheme) Map() map[string]string {
	m := map[string]string{
		"background":           s.Background.Hex(),
		"foreground":           s.Foreground.Hex(),
		"cursor":               s.Cursor.Hex(),
		"cursor_text_color":    s.CursorText.Hex(),
		"selection_background": s.SelectionBackground.Hex(),
		"selection_foreground": s.SelectionForeground.Hex(),
	}
	for i, c := range s.Colors {
		m[fmt.Sprintf("color%d", i)] = c.Hex()
	}
	return m
}

// PaletteHex returns the extracted palette as hex strings.
func (s Scheme) PaletteHex() []string {
	out := make([]string, len(s.Palette))
	for i, c := range s.Palette {
		out[i] = c.Hex()
	}
	return out
}
