// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Contrast thresholds from WCAG 2.x for normal text.
const (
	ContrastAA  = 4.5
	ContrastAAA = 7.0
)

// RGB is an 8-bit color. Channels are ints so arithmetic can overshoot before
// it is clamped.
type RGB struct {
	R, G, B int
}

// ParseHex reads "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, nil
}

// Hex formats the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) String() string { return c.Hex() }

func (c RGB) colorful() colorful.Color {
	c = c.clamp()
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255} //nolint:mnd
}

func (c RGB) clamp() RGB {
	return RGB{clamp8(c.R), clamp8(c.G), clamp8(c.B)}
}

// Add shifts every channel by n and clamps.
func (c RGB) Add(n int) RGB {
	return RGB{c.R + n, c.G + n, c.B + n}.clamp()
}

// Distance is the Euclidean distance in 0-255 RGB space.
func (c RGB) Distance(o RGB) float64 {
	return c.colorful().DistanceRgb(o.colorful()) * 255 //nolint:mnd
}

// Luminance is the WCAG relative luminance in [0, 1].
func (c RGB) Luminance() float64 {
	lin := func(v int) float64 {
		f := float64(v) / 255 //nolint:mnd
		if f <= 0.03928 {     //nolint:mnd
			return f / 12.92 //nolint:mnd
		}
		return math.Pow((f+0.055)/1.055, 2.4) //nolint:mnd
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B) //nolint:mnd
}

// Contrast is the WCAG contrast ratio between two colors, from 1 to 21.
func Contrast(a, b RGB) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05) //nolint:mnd
}

// Grade names the WCAG level a contrast ratio reaches.
func Grade(ratio float64) string {
	switch {
	case ratio >= ContrastAAA:
		return "AAA"
	case ratio >= ContrastAA:
		return "AA"
	default:
		return "Fail"
	}
}

// AdjustForContrast moves c toward white (lighten) or black until it reaches
// target against bg. The search takes eight halving steps starting at 128 and
// reverses direction after each step that meets the target, so it settles
// near the smallest change that still passes.
func AdjustForContrast(c, bg RGB, target float64, lighten bool) RGB {
	if Contrast(c, bg) >= target {
		return c
	}

	adjusted := c
	step := 128
	direction := 1
	if !lighten {
		direction = -1
	}
	for range 8 {
		test := adjusted.Add(direction * step)
		if Contrast(test, bg) >= target {
			adjusted = test
			direction = -direction
		}
		step /= 2
	}
	return adjusted.clamp()
}

func clamp8(v int) int {
	return max(0, min(255, v)) //nolint:mnd
}
