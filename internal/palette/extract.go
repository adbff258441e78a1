// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/dotctl/dotctl/internal/log"
)

const (
	// DefaultColors is how many clusters are extracted.
	DefaultColors = 16
	thumbSize     = 300
	// similarity is the RGB distance under which two colors count as one.
	similarity = 20
	nearBlack  = 10
	nearWhite  = 745
)

// Decode opens and decodes a PNG, JPEG, GIF or WebP image.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	log.Debugf("decoded %s: format=%s size=%v", path, format, img.Bounds().Size())
	return img, nil
}

// ExtractFile decodes path and extracts up to n dominant colors.
func ExtractFile(path string, n int) ([]RGB, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Extract(img, n)
}

// Extract returns up to n dominant colors of img, most common first, with
// near duplicates removed.
func Extract(img image.Image, n int) ([]RGB, error) {
	if n < 1 {
		return nil, fmt.Errorf("color count must be positive, got %d", n)
	}

	points := pixels(thumbnail(img, thumbSize))
	if len(points) == 0 {
		return nil, errors.New("image has no pixels")
	}

	k := min(n, distinct(points))
	var palette []RGB
	for _, c := range kmeans(points, k) {
		rgb := RGB{int(c.center[0]), int(c.center[1]), int(c.center[2])}
		if tooSimilar(rgb, palette) {
			continue
		}
		palette = append(palette, rgb)
		if len(palette) >= n {
			break
		}
	}
	log.Debugf("palette: clusters=%d kept=%d", k, len(palette))
	return palette, nil
}

func tooSimilar(c RGB, kept []RGB) bool {
	for _, k := range kept {
		if c.Distance(k) < similarity {
			return true
		}
	}
	return false
}

// thumbnail scales img down to fit size x size, keeping the aspect ratio.
func thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}

	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// pixels flattens img to RGB points, dropping near-black and near-white
// pixels unless nothing else would be left.
func pixels(img image.Image) []point {
	b := img.Bounds()
	all := make([]point, 0, b.Dx()*b.Dy())
	kept := make([]point, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p := point{float64(c.R), float64(c.G), float64(c.B)}
			all = append(all, p)
			if sum := int(c.R) + int(c.G) + int(c.B); sum >= nearBlack && sum <= nearWhite {
				kept = append(kept, p)
			}
		}
	}
	if len(kept) == 0 {
		return all
	}
	return kept
}

func distinct(points []point) int {
	seen := make(map[point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}
