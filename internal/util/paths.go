// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths in any other form are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveDir expands and absolutizes dir and returns an error if the fs entry
// does not exist, is empty or is not a directory.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	dir = ExpandHome(dir)
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}

// StateDir resolves the directory that holds small pieces of runtime state
// such as the tone PID file.
// Precedence:
//  1. DOTCTL_STATE_DIR, if set and non-empty
//  2. os.UserCacheDir()/dotctl
//  3. os.TempDir()/dotctl
func StateDir() string {
	if d := os.Getenv("DOTCTL_STATE_DIR"); d != "" {
		return ExpandHome(d)
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dotctl")
	}
	return filepath.Join(os.TempDir(), "dotctl")
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
