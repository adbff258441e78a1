// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package theme manages pre-generated terminal and multiplexer color themes.
// Each Target (kitty, tmux, ...) has a directory of theme files and a single
// "current theme" file that the program includes from its main config.
// Switching copies a theme over the current file; applying asks the running
// program to reload it.
package theme
