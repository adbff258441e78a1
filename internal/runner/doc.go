// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runner wraps the external programs dotctl shells out to (ffmpeg,
// SoX, kitty, tmux, python, whisper). It separates a missing tool from a tool
// that ran and failed so commands can report each distinctly.
package runner
