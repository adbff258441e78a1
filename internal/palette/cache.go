// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotctl/dotctl/internal/cacheutil"
	"github.com/dotctl/dotctl/internal/log"
)

const cacheBucket = "palette"

// cacheKey identifies an extraction by file identity and color count, so an
// edited image misses.
func cacheKey(path string, n int) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d|%d", abs, fi.Size(), fi.ModTime().UnixNano(), n), nil
}

// Load extracts the palette of the image at path, consulting the on-disk
// cache first. cached reports whether the cache answered.
func Load(path string, n int) (colors []RGB, cached bool, err error) {
	key, err := cacheKey(path, n)
	if err != nil {
		return nil, false, err
	}

	var hexes []string
	if cacheutil.ReadJSON(cacheBucket, key, &hexes) {
		colors, err = fromHex(hexes)
		if err == nil {
			return colors, true, nil
		}
		log.Debugf("ignoring cached palette: %v", err)
	}

	colors, err = ExtractFile(path, n)
	if err != nil {
		return nil, false, err
	}

	hexes = make([]string, len(colors))
	for i, c := range colors {
		hexes[i] = c.Hex()
	}
	if err := cacheutil.WriteJSON(cacheBucket, key, hexes); err != nil {
		log.Warnf("palette not cached: %v", err)
	}
	return colors, false, nil
}

func fromHex(hexes []string) ([]RGB, error) {
	out := make([]RGB, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
