// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// commandKeys are leading words that are commands rather than keys. For these
// the first non-flag argument joins the key, so "set -g status-style x" maps
// to "set status-style".
var commandKeys = map[string]bool{
	"set":               true,
	"set-option":        true,
	"setw":              true,
	"set-window-option": true,
	"hi":                true,
	"highlight":         true,
}

// ParseFile reads a flat "key value" theme file.
func ParseFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads "key value" lines, skipping blanks and # comments. Later
// duplicates win.
func Parse(r io.Reader) (map[string]any, error) {
	out := map[string]any{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, `"`) {
			continue
		}

		fields := strings.Fields(line)
		key := fields[0]
		rest := fields[1:]
		if commandKeys[key] {
			for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
				rest = rest[1:]
			}
			if len(rest) > 0 {
				key += " " + rest[0]
				rest = rest[1:]
			}
		}
		out[key] = strings.Trim(strings.Join(rest, " "), `'"`)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading theme: %w", err)
	}
	return out, nil
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".dotctl-theme-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil { //nolint:mnd
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
